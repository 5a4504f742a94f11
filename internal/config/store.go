package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/JaimeStill/tour-desk/pkg/database"
	"github.com/JaimeStill/tour-desk/pkg/docstore/mongodb"
)

// Document store drivers.
const (
	StoreMemory    = "memory"
	StorePostgres  = "postgres"
	StoreMongoDB   = "mongodb"
	StoreFirestore = "firestore"
)

const EnvStoreDriver = "STORE_DRIVER"

var postgresEnv = &database.Env{
	Host:            "DATABASE_HOST",
	Port:            "DATABASE_PORT",
	Name:            "DATABASE_NAME",
	User:            "DATABASE_USER",
	Password:        "DATABASE_PASSWORD",
	SSLMode:         "DATABASE_SSL_MODE",
	MaxOpenConns:    "DATABASE_MAX_OPEN_CONNS",
	MaxIdleConns:    "DATABASE_MAX_IDLE_CONNS",
	ConnMaxLifetime: "DATABASE_CONN_MAX_LIFETIME",
	ConnTimeout:     "DATABASE_CONN_TIMEOUT",
}

var mongoEnv = &mongodb.Env{
	URI:         "MONGODB_URI",
	Database:    "MONGODB_DATABASE",
	Username:    "MONGODB_USERNAME",
	Password:    "MONGODB_PASSWORD",
	ConnTimeout: "MONGODB_CONN_TIMEOUT",
}

// StoreConfig selects the document store and holds each driver's settings.
// Only the selected driver's section is finalized.
type StoreConfig struct {
	Driver   string          `toml:"driver"`
	Postgres database.Config `toml:"postgres"`
	MongoDB  mongodb.Config  `toml:"mongodb"`
}

func (c *StoreConfig) Finalize() error {
	if c.Driver == "" {
		c.Driver = StoreMemory
	}
	if v := os.Getenv(EnvStoreDriver); v != "" {
		c.Driver = v
	}

	drivers := []string{StoreMemory, StorePostgres, StoreMongoDB, StoreFirestore}
	if !slices.Contains(drivers, c.Driver) {
		return fmt.Errorf("invalid driver %q: must be one of %v", c.Driver, drivers)
	}

	switch c.Driver {
	case StorePostgres:
		if err := c.Postgres.Finalize(postgresEnv); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	case StoreMongoDB:
		if err := c.MongoDB.Finalize(mongoEnv); err != nil {
			return fmt.Errorf("mongodb: %w", err)
		}
	}
	return nil
}

func (c *StoreConfig) Merge(overlay *StoreConfig) {
	if overlay.Driver != "" {
		c.Driver = overlay.Driver
	}
	c.Postgres.Merge(&overlay.Postgres)
	c.MongoDB.Merge(&overlay.MongoDB)
}
