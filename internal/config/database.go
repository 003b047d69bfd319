package config

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new GORM connection to the SQLite shop database.
func NewDatabase(cfg *DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// SQLite allows one writer at a time; a single connection keeps
	// transactions from tripping over SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// DSN returns the SQLite DSN with busy timeout and foreign keys enabled.
func (d *DatabaseConfig) DSN() string {
	return d.Path + "?_busy_timeout=5000&_foreign_keys=on"
}
