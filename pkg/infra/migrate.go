package infra

import (
	"sync"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	postgres_wrapper "github.com/marketgrid/depthbook/pkg/infra/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var migrateMu sync.Mutex

// Migrate brings the journal schema up to the latest version. A dirty
// version is forced back one step and re-applied.
func Migrate(source string, connStr string) error {
	migrateMu.Lock()
	defer migrateMu.Unlock()

	zap.S().Infof("migrating from %s", source)

	mg, err := migrate.New(source, connStr)
	if err != nil {
		return err
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return err
	}

	if dirty {
		if err := mg.Force(int(version) - 1); err != nil {
			return err
		}
	}

	if err := mg.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	zap.S().Info("migration done")
	return nil
}

// ConnectAndMigrate waits for the database, then runs migrations. Used by
// the worker and by integration tests that need a fresh schema.
func ConnectAndMigrate(cfg *postgres_wrapper.Config, source string) (*gorm.DB, error) {
	db, err := postgres_wrapper.InitWithBackoff(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(source, cfg.MigrationConnURL); err != nil {
		return nil, err
	}
	return db, nil
}
