package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/moneta-app/moneta/internal/flagx"
	"github.com/moneta-app/moneta/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "3s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	DatabaseDSN                 string         `json:"database_dsn"`
	AutoProvisionOnUnknownEmail *bool          `json:"auto_provision_on_unknown_email"`
	RegistrarTimeout            timex.Duration `json:"registrar_timeout"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named via
// -c/-config. When no file is named the function returns without touching
// cfg. Read or unmarshal errors panic; a config file that exists but cannot
// be parsed is an initialization-time failure.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.AutoProvisionOnUnknownEmail != nil {
		cfg.AutoProvisionOnUnknownEmail = *jc.AutoProvisionOnUnknownEmail
	}
	if jc.RegistrarTimeout.Duration != 0 {
		cfg.RegistrarTimeout = time.Duration(jc.RegistrarTimeout.Duration)
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
