package blobstore

import (
	"fmt"
	"os"
	"strings"

	"github.com/docker/go-units"
)

// Config contains filesystem blob storage configuration.
type Config struct {
	// BasePath is the root directory for stored objects.
	// Default: ".data/blobs"
	BasePath string `toml:"base_path"`

	// PublicURL is the externally reachable prefix objects are served under.
	// Default: "/blobs"
	PublicURL string `toml:"public_url"`

	MaxUploadSize    string `toml:"max_upload_size"`
	maxUploadSizeVal int64
}

// Env maps environment variable names for blob storage configuration.
type Env struct {
	BasePath      string
	PublicURL     string
	MaxUploadSize string
}

// MaxUploadSizeBytes returns the parsed upload limit.
func (c *Config) MaxUploadSizeBytes() int64 {
	return c.maxUploadSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the storage configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicURL != "" {
		c.PublicURL = overlay.PublicURL
	}
	if size, err := units.FromHumanSize(overlay.MaxUploadSize); err == nil {
		c.MaxUploadSize = overlay.MaxUploadSize
		c.maxUploadSizeVal = size
	}
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = ".data/blobs"
	}
	if c.PublicURL == "" {
		c.PublicURL = "/blobs"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BasePath != "" {
		if v := os.Getenv(env.BasePath); v != "" {
			c.BasePath = v
		}
	}
	if env.PublicURL != "" {
		if v := os.Getenv(env.PublicURL); v != "" {
			c.PublicURL = v
		}
	}
	if env.MaxUploadSize != "" {
		if v := os.Getenv(env.MaxUploadSize); v != "" {
			c.MaxUploadSize = v
		}
	}
}

func (c *Config) validate() error {
	if c.BasePath == "" {
		return fmt.Errorf("base_path required")
	}

	c.PublicURL = strings.TrimSuffix(c.PublicURL, "/")
	if c.PublicURL == "" {
		return fmt.Errorf("public_url required")
	}

	size, err := units.FromHumanSize(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	c.maxUploadSizeVal = size

	return nil
}
