package config

import (
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
)

// Config holds runtime settings for the vitalkeeper CLI.
type Config struct {
	// DatabasePath is the SQLite file holding all local data.
	DatabasePath string
	// KDFIterations is the PBKDF2 work factor for both credentials and
	// sealed health data. Changing it makes existing data unreadable.
	KDFIterations int
	LogLevel      string
	LogFormat     string
	// SessionTTL bounds how long a login keeps its secret; 0 disables expiry.
	SessionTTL   time.Duration
	HistoryLimit int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "vitalkeeper.db"
	c.KDFIterations = cryptox.DefaultIterations
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SessionTTL = 30 * time.Minute
	c.HistoryLimit = 90
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
