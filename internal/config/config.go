package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config top-level struct
type Config struct {
	Application ApplicationConfig `yaml:"application"`
	Database    DatabaseConfig    `yaml:"database"`
	EmailClient EmailClientConfig `yaml:"email_client"`
	Redis       RedisConfig       `yaml:"redis"`
	Kafka       KafkaConfig       `yaml:"kafka"`
	Log         LogConfig         `yaml:"log"`
}

type ApplicationConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

// Addr is the listen address for the HTTP server.
func (a ApplicationConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type DatabaseConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	Username         string `yaml:"username"`
	Password         string `yaml:"password"`
	DatabaseName     string `yaml:"database_name"`
	RequireSSL       bool   `yaml:"require_ssl"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	ConnectTimeoutMS int    `yaml:"connect_timeout_ms"`
}

// DSN builds a libpq key/value connection string. Values are single-quoted so
// spaces, quotes and backslashes survive parsing.
func (d DatabaseConfig) DSN() string {
	sslMode := "prefer"
	if d.RequireSSL {
		sslMode = "require"
	}
	parts := []string{
		"host=" + dsnQuote(d.Host),
		fmt.Sprintf("port=%d", d.Port),
		"user=" + dsnQuote(d.Username),
		"dbname=" + dsnQuote(d.DatabaseName),
		"sslmode=" + sslMode,
	}
	if d.Password != "" {
		parts = append(parts, "password="+dsnQuote(d.Password))
	}
	if d.ConnectTimeoutMS > 0 {
		// libpq only understands whole seconds here.
		secs := (d.ConnectTimeoutMS + 999) / 1000
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", secs))
	}
	return strings.Join(parts, " ")
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func dsnQuote(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

type EmailClientConfig struct {
	Provider           string `yaml:"provider"` // postmark | ses | log
	BaseURL            string `yaml:"base_url"`
	SenderEmail        string `yaml:"sender_email"`
	AuthorizationToken string `yaml:"authorization_token"`
	TimeoutMS          int    `yaml:"timeout_ms"`
	SESRegion          string `yaml:"ses_region"`
	SESAccessKey       string `yaml:"ses_access_key"`
	SESSecretKey       string `yaml:"ses_secret_key"`
}

func (e EmailClientConfig) Timeout() time.Duration {
	if e.TimeoutMS <= 0 {
		return 10 * time.Second
	}
	return time.Duration(e.TimeoutMS) * time.Millisecond
}

type RedisConfig struct {
	Addr            string `yaml:"addr"`
	Password        string `yaml:"password"`
	DB              int    `yaml:"db"`
	TokenTTLSeconds int    `yaml:"token_ttl_seconds"`
}

func (r RedisConfig) TokenTTL() time.Duration {
	return time.Duration(r.TokenTTLSeconds) * time.Second
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads yaml file and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes yaml bytes, applies environment overrides and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
		cfg.Database.Password = pw
	}
	if tok := os.Getenv("EMAIL_AUTHORIZATION_TOKEN"); tok != "" {
		cfg.EmailClient.AuthorizationToken = tok
	}
	if base := os.Getenv("APP_BASE_URL"); base != "" {
		cfg.Application.BaseURL = base
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Application.Port <= 0 {
		errs = append(errs, errors.New("application.port must be positive"))
	}
	if c.Application.BaseURL == "" {
		errs = append(errs, errors.New("application.base_url is required"))
	}
	if c.EmailClient.SenderEmail == "" {
		errs = append(errs, errors.New("email_client.sender_email is required"))
	}
	return errors.Join(errs...)
}
