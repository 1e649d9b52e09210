package config

import (
	"flag"
	"os"
	"time"

	"github.com/moneta-app/moneta/internal/flagx"
)

// parseFlags overlays Config with command-line flags. Flags are the last
// source applied and therefore win over the environment and the JSON file.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-d", "-dsn", "-auto-provision", "-registrar-timeout", "-log-level",
	})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	var (
		dsn              string
		autoProvision    bool
		registrarTimeout time.Duration
		logLevel         string
	)

	fs.StringVar(&dsn, "dsn", cfg.DatabaseDSN, "sqlite database DSN")
	fs.StringVar(&dsn, "d", cfg.DatabaseDSN, "sqlite database DSN (short)")
	fs.BoolVar(&autoProvision, "auto-provision", cfg.AutoProvisionOnUnknownEmail,
		"create a placeholder account when logging in with an unknown email")
	fs.DurationVar(&registrarTimeout, "registrar-timeout", cfg.RegistrarTimeout,
		"bounded wait for the external trigger registrar")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")

	_ = fs.Parse(args)

	cfg.DatabaseDSN = dsn
	cfg.AutoProvisionOnUnknownEmail = autoProvision
	cfg.RegistrarTimeout = registrarTimeout
	cfg.LogLevel = logLevel
}
