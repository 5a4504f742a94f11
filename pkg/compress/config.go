package compress

import (
	"fmt"
	"os"
	"strconv"

	"github.com/docker/go-units"
)

// Config bounds the size of stored images.
type Config struct {
	MaxSize      string `toml:"max_size"`
	MaxDimension int    `toml:"max_dimension"`
	Quality      int    `toml:"quality"`
	MinQuality   int    `toml:"min_quality"`
	maxSizeVal   int64
}

// Env maps environment variable names for compression configuration.
type Env struct {
	MaxSize      string
	MaxDimension string
}

// MaxSizeBytes returns the parsed size ceiling.
func (c *Config) MaxSizeBytes() int64 {
	return c.maxSizeVal
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.MaxSize != "" {
		c.MaxSize = overlay.MaxSize
	}
	if overlay.MaxDimension != 0 {
		c.MaxDimension = overlay.MaxDimension
	}
	if overlay.Quality != 0 {
		c.Quality = overlay.Quality
	}
	if overlay.MinQuality != 0 {
		c.MinQuality = overlay.MinQuality
	}
}

func (c *Config) loadDefaults() {
	if c.MaxSize == "" {
		c.MaxSize = "1MB"
	}
	if c.MaxDimension == 0 {
		c.MaxDimension = 800
	}
	if c.Quality == 0 {
		c.Quality = 85
	}
	if c.MinQuality == 0 {
		c.MinQuality = 40
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxSize != "" {
		if v := os.Getenv(env.MaxSize); v != "" {
			c.MaxSize = v
		}
	}
	if env.MaxDimension != "" {
		if v := os.Getenv(env.MaxDimension); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxDimension = n
			}
		}
	}
}

func (c *Config) validate() error {
	size, err := units.FromHumanSize(c.MaxSize)
	if err != nil {
		return fmt.Errorf("invalid max_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_size must be positive")
	}
	c.maxSizeVal = size

	if c.MaxDimension <= 0 {
		return fmt.Errorf("max_dimension must be positive")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100")
	}
	if c.MinQuality < 1 || c.MinQuality > c.Quality {
		return fmt.Errorf("min_quality must be between 1 and quality")
	}
	return nil
}
