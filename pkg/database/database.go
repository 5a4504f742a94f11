// Package database manages the PostgreSQL connection pool used by the
// postgres document store driver.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/tour-desk/pkg/lifecycle"
)

// ErrNotReady is returned when the connection is used before startup
// verified it.
var ErrNotReady = errors.New("database not ready")

// System owns a *sql.DB and ties its open and close to the lifecycle.
type System interface {
	Connection() *sql.DB
	Ready() error
	Start(lc *lifecycle.Coordinator) error
}

type database struct {
	conn   *sql.DB
	cfg    *Config
	logger *slog.Logger

	mu    sync.RWMutex
	ready bool
}

// New opens a pgx-backed pool configured from cfg. No connection is made
// until Start's startup hook pings the server.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	conn, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		conn:   conn,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (d *database) Connection() *sql.DB {
	return d.conn
}

func (d *database) Ready() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.ready {
		return ErrNotReady
	}
	return nil
}

func (d *database) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting database connection", "host", d.cfg.Host, "name", d.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := d.conn.PingContext(ctx); err != nil {
			d.logger.Error("database ping failed", "error", err)
			return
		}

		d.mu.Lock()
		d.ready = true
		d.mu.Unlock()

		d.logger.Info("database connection established")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.logger.Info("closing database connection")

		d.mu.Lock()
		d.ready = false
		d.mu.Unlock()

		if err := d.conn.Close(); err != nil {
			d.logger.Error("database close failed", "error", err)
			return
		}
		d.logger.Info("database connection closed")
	})

	return nil
}
