package config

import (
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yoockh/folio/internal/models"
)

var PostgresDB *gorm.DB

// InitPostgres opens the account database.
func InitPostgres(cfg *Config) error {
	if cfg.PostgresURI == "" {
		return errors.New("POSTGRES_URI is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// Connection Pooling settings
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	PostgresDB = db
	return nil
}

// EnsurePostgresSchema creates the users table when missing.
func EnsurePostgresSchema() error {
	if PostgresDB == nil {
		return errors.New("PostgresDB is nil; call InitPostgres() first")
	}
	return PostgresDB.AutoMigrate(&models.User{})
}
