package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/richardliu001/newsletter-service/internal/domain"
	"github.com/richardliu001/newsletter-service/internal/logger"
	"github.com/richardliu001/newsletter-service/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	db := newTestDB(t)
	return NewRepository(db, nil, nil, logger.NewNop()), db
}

func mustNewSubscriber(t *testing.T, name, email string) domain.NewSubscriber {
	t.Helper()
	ns, err := domain.NewSubscriberFromForm(name, email)
	require.NoError(t, err)
	return ns
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.WithContext(context.Background()).Model(m).Count(&n).Error)
	return n
}
