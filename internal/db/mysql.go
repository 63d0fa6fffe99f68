package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/yigit/erp-migrator/internal/config"
)

// MySQLDB is the read-only handle on the legacy database.
type MySQLDB struct {
	DB *sql.DB
}

// NewMySQLDB opens and pings the legacy MySQL database.
func NewMySQLDB(cfg *config.Config) (*MySQLDB, error) {
	conn, err := sql.Open("mysql", cfg.GetLegacyDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.Legacy.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.Legacy.MaxOpenConns)
	conn.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to establish legacy database connection: %w", err)
	}

	return &MySQLDB{DB: conn}, nil
}

// Close closes the legacy connection pool.
func (m *MySQLDB) Close() error {
	if m.DB == nil {
		return nil
	}
	return m.DB.Close()
}
