// Package config loads runtime settings for the Moneta core.
//
// Sources are applied in order, later ones winning:
// built-in defaults, environment (optionally seeded from a .env file),
// a JSON config file, command-line flags.
package config

import "time"

// Config holds runtime settings for the Moneta core and CLI.
//
// Fields:
//   - DatabaseDSN: path/DSN of the local sqlite database.
//   - AutoProvisionOnUnknownEmail: login with an unknown email creates and
//     activates a placeholder account instead of failing.
//   - RegistrarTimeout: bounded wait for the external trigger registrar.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	DatabaseDSN                 string
	AutoProvisionOnUnknownEmail bool
	RegistrarTimeout            time.Duration
	LogLevel                    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "moneta.db"
	c.AutoProvisionOnUnknownEmail = true
	c.RegistrarTimeout = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
