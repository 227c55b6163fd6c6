package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/vitalkeeper/internal/flagx"
)

// parseFlags populates Config fields from the command-line flags this package
// owns. Other flags in os.Args are filtered out by flagx.FilterArgs. It panics
// on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-l", "-f", "-t", "-n"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the database file")
	fs.IntVar(&cfg.KDFIterations, "k", cfg.KDFIterations, "PBKDF2 iterations")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text|json)")
	ttl := fs.Int("t", int(cfg.SessionTTL.Seconds()), "session TTL (in seconds, 0 disables)")
	fs.IntVar(&cfg.HistoryLimit, "n", cfg.HistoryLimit, "history length")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*ttl) * time.Second
}
