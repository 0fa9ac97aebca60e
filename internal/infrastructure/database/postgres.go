package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/config"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Str("host", cfg.Host).Str("db", cfg.Name).Msg("connected to PostgreSQL")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},

		&entity.Vehicle{},
		&entity.Station{},
		&entity.Receipt{},
		&entity.ReceiptLineRecord{},

		&entity.MaintenanceEvent{},
		&entity.MaintenanceReminder{},

		// Projections
		&entity.MonthlyKPI{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("database migrations completed")
	return nil
}

// SeedDemoUser creates a login for local development when email and password are set.
// An existing user with the same email is left untouched.
func SeedDemoUser(db *gorm.DB, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var existing entity.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info().Str("email", email).Msg("demo user already exists")
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}
	if name == "" {
		name = "Demo Driver"
	}
	if err := db.Create(&entity.User{Name: name, Email: email, Password: hashed}).Error; err != nil {
		return fmt.Errorf("create demo user: %w", err)
	}
	log.Info().Str("email", email).Msg("demo user created")
	return nil
}
