package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/moneta-app/moneta/internal/flagx"
)

// parseEnv overlays Config with MONETA_* environment variables. If a .env
// file was named via -e/-env it is loaded first; a missing file is ignored
// so the variables can also come straight from the process environment.
func parseEnv(cfg *Config) {
	if envFile := flagx.EnvFileFlags(); envFile != "" {
		_ = godotenv.Load(envFile)
	}

	if v := os.Getenv("MONETA_DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("MONETA_AUTO_PROVISION"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoProvisionOnUnknownEmail = b
		}
	}
	if v := os.Getenv("MONETA_REGISTRAR_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RegistrarTimeout = d
		}
	}
	if v := os.Getenv("MONETA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
