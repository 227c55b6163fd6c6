package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
)

// Duration accepts either a Go duration string ("30m") or integer
// nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case float64:
		*d = Duration(time.Duration(val))
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from zero values.
type JsonConfig struct {
	DatabasePath  *string   `json:"database_path"`
	KDFIterations *int      `json:"kdf_iterations"`
	LogLevel      *string   `json:"log_level"`
	LogFormat     *string   `json:"log_format"`
	SessionTTL    *Duration `json:"session_ttl"`
	HistoryLimit  *int      `json:"history_limit"`
}

// parseJson overlays cfg with the JSON file named by -c / -config. It does
// nothing when neither flag is given and panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.KDFIterations != nil {
		cfg.KDFIterations = *jc.KDFIterations
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = time.Duration(*jc.SessionTTL)
	}
	if jc.HistoryLimit != nil {
		cfg.HistoryLimit = *jc.HistoryLimit
	}
}
