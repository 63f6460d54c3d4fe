package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres connection and runs migrations.
// TranslateError is enabled so uniqueness conflicts surface as
// gorm.ErrDuplicatedKey rather than driver-specific error codes; the
// checkout idempotency replay depends on that.
func Connect(dsn string, logger *zap.Logger, autoMigrateModels ...interface{}) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if len(autoMigrateModels) > 0 {
		if err := db.AutoMigrate(autoMigrateModels...); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	logger.Info("Connected to postgres")
	return db, nil
}

// DSN builds a postgres DSN from discrete config fields.
func DSN(host, user, password, dbname, port, sslmode, timezone string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone)
}
