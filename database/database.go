package database

import (
	"fmt"
	"time"

	"locallibrary/config"
	types "locallibrary/internal/domain/catalog"
	"locallibrary/internal/platform/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var DB *gorm.DB

// InitDB connects using config.DB_DRIVER/DB_URL, migrates and stores the
// handle in DB. Fatal on failure.
func InitDB(log *logger.Logger) *gorm.DB {
	db, err := Open(config.DB_DRIVER, config.DB_URL, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "driver", config.DB_DRIVER, "error", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatal("AutoMigrate error", "error", err)
	}

	DB = db
	log.Info("Connected and migrated successfully", "driver", config.DB_DRIVER)
	return db
}

// Open connects to the named driver. SQLite connections get foreign key
// enforcement and a single pooled connection so in-memory databases are
// shared by every query.
func Open(driver, dsn string, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(gormWriter{log: log.With("component", "gorm")}, gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}
	return db, nil
}

// Migrate creates or updates the catalog tables and their indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Genre{},
		&types.Language{},
		&types.Author{},
		&types.Book{},
		&types.BookGenre{},
		&types.BookInstance{},
	); err != nil {
		return err
	}
	return nil
}

type gormWriter struct {
	log *logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn(fmt.Sprintf(format, args...))
}
