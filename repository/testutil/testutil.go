// Package testutil opens the Postgres instance used by store-backed tests.
// Tests run inside a transaction that rolls back on cleanup, so they leave
// no rows behind and can run in any order.
package testutil

import (
	"os"
	"sync"
	"testing"

	"github.com/tnqbao/gau-movie-service/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	openOnce sync.Once
	sharedDB *gorm.DB
	openErr  error
)

// DB returns a transaction-scoped handle to the test database. Tests are
// skipped when TEST_POSTGRES_DSN is not set.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping store-backed test")
	}

	openOnce.Do(func() {
		sharedDB, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if openErr != nil {
			return
		}
		openErr = sharedDB.AutoMigrate(
			&entity.Studio{},
			&entity.Director{},
			&entity.Actor{},
			&entity.Tag{},
			&entity.Movie{},
			&entity.ImportJob{},
		)
	})
	if openErr != nil {
		t.Fatalf("open test database: %v", openErr)
	}

	tx := sharedDB.Begin()
	if tx.Error != nil {
		t.Fatalf("begin test transaction: %v", tx.Error)
	}
	t.Cleanup(func() { tx.Rollback() })
	return tx
}
