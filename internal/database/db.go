package database

import (
	"fmt"
	"log/slog"

	"github.com/justsurfingit/job-board/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config is shared by every dialect so duplicate keys surface as
// gorm.ErrDuplicatedKey regardless of the driver underneath.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
}

// Connect opens the Postgres database described by dsn.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), Config())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("database connection established")
	return db, nil
}

// Migrate creates or updates the tables for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Company{}, &models.Job{}, &models.Application{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
