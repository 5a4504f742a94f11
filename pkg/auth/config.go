package auth

import (
	"fmt"
	"os"
	"slices"
)

// Modes accepted by Config.Mode.
const (
	ModeDisabled = "disabled"
	ModeFirebase = "firebase"
	ModeJWT      = "jwt"
)

// Config selects how operator requests are authenticated.
type Config struct {
	Mode   string `toml:"mode"`
	Secret string `toml:"secret"`
	Issuer string `toml:"issuer"`
}

// Env maps environment variable names for auth configuration.
type Env struct {
	Mode   string
	Secret string
	Issuer string
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
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDisabled
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = v
		}
	}
	if env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
}

func (c *Config) validate() error {
	if !slices.Contains([]string{ModeDisabled, ModeFirebase, ModeJWT}, c.Mode) {
		return fmt.Errorf("invalid mode %q: must be disabled, firebase, or jwt", c.Mode)
	}
	if c.Mode == ModeJWT && len(c.Secret) < 16 {
		return fmt.Errorf("secret of at least 16 bytes required for jwt mode")
	}
	return nil
}
