package firebase

import (
	"fmt"
	"os"
)

// Config identifies the Firebase project and its credentials.
type Config struct {
	ProjectID       string `toml:"project_id"`
	StorageBucket   string `toml:"storage_bucket"`
	CredentialsFile string `toml:"credentials_file"`
}

// Env maps environment variable names for Firebase configuration.
type Env struct {
	ProjectID       string
	StorageBucket   string
	CredentialsFile string
}

// Enabled reports whether a project has been configured.
func (c *Config) Enabled() bool {
	return c.ProjectID != ""
}

// Finalize loads environment overrides and validates. A Config without a
// project id is valid and leaves Firebase-backed drivers unavailable.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.ProjectID != "" {
		c.ProjectID = overlay.ProjectID
	}
	if overlay.StorageBucket != "" {
		c.StorageBucket = overlay.StorageBucket
	}
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.ProjectID != "" {
		if v := os.Getenv(env.ProjectID); v != "" {
			c.ProjectID = v
		}
	}
	if env.StorageBucket != "" {
		if v := os.Getenv(env.StorageBucket); v != "" {
			c.StorageBucket = v
		}
	}
	if env.CredentialsFile != "" {
		if v := os.Getenv(env.CredentialsFile); v != "" {
			c.CredentialsFile = v
		}
	}
}

func (c *Config) validate() error {
	if c.StorageBucket != "" && c.ProjectID == "" {
		return fmt.Errorf("project_id required when storage_bucket is set")
	}
	return nil
}
