package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds the settings needed to open the relational store.
type Config struct {
	DSN     string
	Timeout time.Duration
}

// Connect opens a GORM connection to Postgres and verifies it with a ping.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	return Open(ctx, postgres.Open(cfg.DSN), cfg.Timeout, log)
}

// Open wraps gorm.Open with the settings shared by every dialect.
func Open(ctx context.Context, dialector gorm.Dialector, timeout time.Duration, log zerolog.Logger) (*gorm.DB, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(log),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := Ping(db)(pingCtx); err != nil {
		return nil, fmt.Errorf("database ping: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the users and partners tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(&userModel{}, &partnerModel{})
}

// Ping returns a readiness probe for db.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Close releases the pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
