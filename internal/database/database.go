// Package database provides MySQL connection management for the export sink.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/dbsmedya/fieldwalk/internal/config"
)

const (
	defaultMaxRetries = 3
	defaultBackoff    = time.Second
	connMaxLifetime   = 10 * time.Minute
)

// Manager owns the connection to the destination database.
type Manager struct {
	DB     *sql.DB
	config *config.DatabaseConfig

	maxRetries int
	backoff    time.Duration
	open       func(dsn string) (*sql.DB, error)
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.DatabaseConfig) *Manager {
	return &Manager{
		config:     cfg,
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
		open: func(dsn string) (*sql.DB, error) {
			return sql.Open("mysql", dsn)
		},
	}
}

// Connect establishes the destination connection.
func (m *Manager) Connect(ctx context.Context) error {
	if m.config == nil {
		return fmt.Errorf("database configuration is nil")
	}

	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to destination database: %w", err)
	}
	m.DB = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var err error
	backoff := m.backoff

	for i := 0; i < m.maxRetries; i++ {
		var db *sql.DB
		db, err = m.connect()
		if err == nil {
			// Verify connection
			if err = db.PingContext(ctx); err == nil {
				return db, nil
			}
			db.Close()
		}

		if i < m.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", m.maxRetries, err)
}

// connect opens a pool and applies the pool settings.
func (m *Manager) connect() (*sql.DB, error) {
	db, err := m.open(BuildDSN(m.config))
	if err != nil {
		return nil, err
	}

	if m.config.MaxConnections > 0 {
		db.SetMaxOpenConns(m.config.MaxConnections)
	}
	if m.config.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(m.config.MaxIdleConnections)
	}
	db.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "tcp"
	dc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dc.DBName = cfg.Database
	dc.ParseTime = true

	switch cfg.TLS {
	case "disable":
		dc.TLSConfig = "false"
	case "required":
		dc.TLSConfig = "true"
	default:
		dc.TLSConfig = "preferred"
	}

	return dc.FormatDSN()
}

// Close closes the connection pool.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("destination close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("destination is not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("destination ping failed: %w", err)
	}
	return nil
}
