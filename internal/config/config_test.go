package config

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
application:
  host: 127.0.0.1
  port: 8000
  base_url: http://127.0.0.1:8000
database:
  host: db
  port: 5432
  username: app
  password: from-file
  database_name: newsletter
  require_ssl: true
  connect_timeout_ms: 1500
email_client:
  base_url: http://mail
  sender_email: from@example.com
  timeout_ms: 250
`

func TestParse(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("EMAIL_AUTHORIZATION_TOKEN", "")
	t.Setenv("APP_BASE_URL", "")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8000", cfg.Application.Addr())
	assert.Equal(t, "host='db' port=5432 user='app' dbname='newsletter' sslmode=require password='from-file' connect_timeout=2",
		cfg.Database.DSN())
	assert.Equal(t, 250*time.Millisecond, cfg.EmailClient.Timeout())
}

func TestDSN_QuotesSpecialCharacters(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Username: "app user", Password: `p w'd\x`, DatabaseName: "news"}
	assert.Equal(t, `host='db' port=5432 user='app user' dbname='news' sslmode=prefer password='p w\'d\\x'`, d.DSN())

	parsed, err := pgconn.ParseConfig(d.DSN())
	require.NoError(t, err)
	assert.Equal(t, "app user", parsed.User)
	assert.Equal(t, `p w'd\x`, parsed.Password)
	assert.Equal(t, "news", parsed.Database)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_PASSWORD", "from-env")
	t.Setenv("EMAIL_AUTHORIZATION_TOKEN", "tok")
	t.Setenv("APP_BASE_URL", "https://news.example.com")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "tok", cfg.EmailClient.AuthorizationToken)
	assert.Equal(t, "https://news.example.com", cfg.Application.BaseURL)
}

func TestParse_RequiresBaseURLAndSender(t *testing.T) {
	t.Setenv("APP_BASE_URL", "")

	_, err := Parse([]byte("application:\n  port: 8000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
	assert.Contains(t, err.Error(), "sender_email")
}

func TestLoad_DefaultFile(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "postmark", cfg.EmailClient.Provider)
	assert.Equal(t, "subscription-events", cfg.Kafka.Topic)
}
