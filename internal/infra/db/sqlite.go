package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/bill-center/backend/config"
)

// NewSQLiteConnection creates a SQLite connection for local runs and the CLI.
// SQLite serialises writers, so the pool is capped at one connection.
func NewSQLiteConnection(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(cfg.URL), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	pooled := *cfg
	pooled.MaxOpenConns = 1
	pooled.MaxIdleConns = 1
	return newDatabase(db, &pooled)
}
