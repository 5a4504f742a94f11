package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvViewTimezone   = "VIEW_TIMEZONE"
	EnvViewMaxScreens = "VIEW_MAX_SCREENS"
	EnvViewScreenTTL  = "VIEW_SCREEN_TTL"
)

// ViewConfig sets the calendar used by the day quick filters and bounds the
// screens kept mounted for clients.
type ViewConfig struct {
	// Timezone is an IANA zone name. Default: "Local"
	Timezone string `toml:"timezone"`

	// MaxScreens caps mounted screens; the least recently used idle screen is
	// evicted past it. Default: 256
	MaxScreens int `toml:"max_screens"`

	// ScreenTTL unmounts screens left untouched for this long. Default: "30m"
	ScreenTTL string `toml:"screen_ttl"`

	location *time.Location
}

func (c *ViewConfig) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

func (c *ViewConfig) ScreenTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.ScreenTTL)
	return d
}

func (c *ViewConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *ViewConfig) Merge(overlay *ViewConfig) {
	if overlay.Timezone != "" {
		c.Timezone = overlay.Timezone
	}
	if overlay.MaxScreens != 0 {
		c.MaxScreens = overlay.MaxScreens
	}
	if overlay.ScreenTTL != "" {
		c.ScreenTTL = overlay.ScreenTTL
	}
}

func (c *ViewConfig) loadDefaults() {
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	if c.MaxScreens == 0 {
		c.MaxScreens = 256
	}
	if c.ScreenTTL == "" {
		c.ScreenTTL = "30m"
	}
}

func (c *ViewConfig) loadEnv() {
	if v := os.Getenv(EnvViewTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvViewMaxScreens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxScreens = n
		}
	}
	if v := os.Getenv(EnvViewScreenTTL); v != "" {
		c.ScreenTTL = v
	}
}

func (c *ViewConfig) validate() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone: %w", err)
	}
	c.location = loc

	if c.MaxScreens < 1 {
		return fmt.Errorf("max_screens must be positive")
	}
	if d, err := time.ParseDuration(c.ScreenTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid screen_ttl: %s", c.ScreenTTL)
	}
	return nil
}
