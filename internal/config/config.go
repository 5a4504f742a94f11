// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/tour-desk/pkg/auth"
	"github.com/JaimeStill/tour-desk/pkg/compress"
	"github.com/JaimeStill/tour-desk/pkg/firebase"
	"github.com/JaimeStill/tour-desk/pkg/logging"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"

	EnvServiceVersion = "SERVICE_VERSION"
	EnvServiceDomain  = "SERVICE_DOMAIN"
)

var loggingEnv = &logging.Env{
	Level:     "LOGGING_LEVEL",
	Format:    "LOGGING_FORMAT",
	AddSource: "LOGGING_ADD_SOURCE",
}

var firebaseEnv = &firebase.Env{
	ProjectID:       "FIREBASE_PROJECT_ID",
	StorageBucket:   "FIREBASE_STORAGE_BUCKET",
	CredentialsFile: "GOOGLE_APPLICATION_CREDENTIALS",
}

var authEnv = &auth.Env{
	Mode:   "AUTH_MODE",
	Secret: "AUTH_SECRET",
	Issuer: "AUTH_ISSUER",
}

var imagesEnv = &compress.Env{
	MaxSize:      "IMAGES_MAX_SIZE",
	MaxDimension: "IMAGES_MAX_DIMENSION",
}

// Config represents the root service configuration.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Logging         logging.Config  `toml:"logging"`
	API             APIConfig       `toml:"api"`
	Store           StoreConfig     `toml:"store"`
	Blobs           BlobsConfig     `toml:"blobs"`
	Firebase        firebase.Config `toml:"firebase"`
	Auth            auth.Config     `toml:"auth"`
	Images          compress.Config `toml:"images"`
	View            ViewConfig      `toml:"view"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
	Domain          string          `toml:"domain"`
}

// Env returns the overlay environment name, if any.
func (c *Config) Env() string {
	return os.Getenv(EnvServiceEnv)
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads and parses the base configuration file and applies any environment-specific overlay.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		return nil, err
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Store.Finalize(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Blobs.Finalize(); err != nil {
		return fmt.Errorf("blobs: %w", err)
	}
	if err := c.Firebase.Finalize(firebaseEnv); err != nil {
		return fmt.Errorf("firebase: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if err := c.Images.Finalize(imagesEnv); err != nil {
		return fmt.Errorf("images: %w", err)
	}
	if err := c.View.Finalize(); err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return c.validateProviders()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.Domain != "" {
		c.Domain = overlay.Domain
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.API.Merge(&overlay.API)
	c.Store.Merge(&overlay.Store)
	c.Blobs.Merge(&overlay.Blobs)
	c.Firebase.Merge(&overlay.Firebase)
	c.Auth.Merge(&overlay.Auth)
	c.Images.Merge(&overlay.Images)
	c.View.Merge(&overlay.View)
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvServiceDomain); v != "" {
		c.Domain = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

// validateProviders checks that drivers relying on Firebase have a project.
func (c *Config) validateProviders() error {
	needsFirebase := c.Store.Driver == StoreFirestore ||
		c.Blobs.Driver == BlobsFirebase ||
		c.Auth.Mode == auth.ModeFirebase

	if needsFirebase && !c.Firebase.Enabled() {
		return fmt.Errorf("firebase.project_id is required by the configured store, blobs, or auth")
	}
	if c.Blobs.Driver == BlobsFirebase && c.Firebase.StorageBucket == "" {
		return fmt.Errorf("firebase.storage_bucket is required when blobs.driver is %q", BlobsFirebase)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
