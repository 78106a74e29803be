package db

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedURL is returned for a DATABASE_URL with an unknown scheme.
var ErrUnsupportedURL = errors.New("invalid DATABASE_URL prefix: must start with 'postgres://', 'postgresql://' or 'sqlite://'")

// Open returns a GORM connection for dbURL.
// Postgres URLs are handed to the driver whole; sqlite:// is stripped to a file path or DSN.
func Open(dbURL string, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		dialector = postgres.Open(dbURL)
		log.Info().Str("driver", "postgres").Msg("connecting to database")
	case strings.HasPrefix(dbURL, "sqlite://"):
		dsn := strings.TrimPrefix(dbURL, "sqlite://")
		dialector = sqlite.Open(dsn)
		log.Info().Str("driver", "sqlite").Str("dsn", dsn).Msg("connecting to database")
	default:
		return nil, ErrUnsupportedURL
	}

	// gorm's own logger stays quiet unless we are debugging
	gormLevel := logger.Silent
	if log.GetLevel() <= zerolog.DebugLevel {
		gormLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info().Msg("database connection established")
	return db, nil
}

// Migrate creates or updates the confession table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&confessionRow{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
