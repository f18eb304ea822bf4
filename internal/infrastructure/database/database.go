package database

import (
	"strings"

	"rental-registry/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB from a Postgres DSN.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") behind connection poolers such as PgBouncer.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
}

// OpenSQLite opens an embedded SQLite database (file path or ":memory:").
// SQLite allows a single writer, so the pool is capped at one connection;
// this also keeps ":memory:" databases on one shared connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") && dsn != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate creates the registry, ledger and event tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.RegistryState{},
		&domain.PropertyLandlord{},
		&domain.PropertyTenant{},
		&domain.PropertyPrice{},
		&domain.Timespan{},
		&domain.PropertyShare{},
		&domain.Account{},
		&domain.Event{},
	)
}
