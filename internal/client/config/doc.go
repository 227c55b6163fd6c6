// Package config loads runtime configuration for the vitalkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-k int      PBKDF2 iterations
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json)
//	-t int      session TTL in seconds, 0 disables expiry
//	-n int      number of check-ins shown by history
//
// # JSON schema
//
// Only keys present in the file override defaults. The session TTL is a Go
// duration string:
//
//	{
//	  "database_path": "vitalkeeper.db",
//	  "kdf_iterations": 100000,
//	  "log_level": "info",
//	  "log_format": "text",
//	  "session_ttl": "30m",
//	  "history_limit": 90
//	}
package config
