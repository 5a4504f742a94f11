package cloudinary

import (
	"fmt"
	"os"
)

// Config holds Cloudinary account credentials.
type Config struct {
	CloudName string `toml:"cloud_name"`
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
}

// Env maps environment variable names for Cloudinary configuration.
type Env struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Finalize loads environment overrides and validates.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.CloudName != "" {
		c.CloudName = overlay.CloudName
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.APISecret != "" {
		c.APISecret = overlay.APISecret
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.CloudName != "" {
		if v := os.Getenv(env.CloudName); v != "" {
			c.CloudName = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.APISecret != "" {
		if v := os.Getenv(env.APISecret); v != "" {
			c.APISecret = v
		}
	}
}

func (c *Config) validate() error {
	if c.CloudName == "" {
		return fmt.Errorf("cloud_name required")
	}
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("api_key and api_secret required")
	}
	return nil
}
