package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-d", "/tmp/x.db", "-k", "1000", "-l", "debug", "-f", "json", "-t", "60", "-n", "30"},
			expected: &Config{
				DatabasePath: "/tmp/x.db", KDFIterations: 1000, LogLevel: "debug", LogFormat: "json",
				SessionTTL: time.Minute, HistoryLimit: 30,
			},
		},
		{
			name: "ttl zero disables expiry, foreign flags ignored",
			args: []string{"cmd", "-t", "0", "-c", "conf.json", "-x"},
			expected: func() *Config {
				c := base()
				c.SessionTTL = 0
				return c
			}(),
		},
		{name: "bad iterations", args: []string{"cmd", "-k", "many"}, expectPanic: true},
		{name: "bad ttl", args: []string{"cmd", "-t", "5m"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := base()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
