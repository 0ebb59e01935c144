// Package timeouts provides centralized timeout values for store calls.
//
// Every store call from a handler runs under context.WithTimeout using one
// of these values, so a stalled backend bounds the request instead of
// hanging it. Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-row/document reads, cache lookups
//   - Medium: list queries, single-store writes
//   - Long: coordinated multi-store write sequences
package timeouts

import (
	"os"
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-entity reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and single-store writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-store write sequences. A sequence
// cancelled mid-flight leaves already-issued steps applied; the partial
// state is the same as a best-effort step failure.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// Configure sets custom timeout values during startup, before handlers
// are registered. Zero values in the config are ignored.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Long > 0 {
		long = cfg.Long
	}
}

// Reset restores all timeouts to their defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}

// ConfigureFromEnv reads overrides from TIMEOUT_PING, TIMEOUT_SHORT,
// TIMEOUT_MEDIUM, and TIMEOUT_LONG (Go duration strings) and applies them
// through Configure. Invalid or unset values keep the current setting.
// Returns how many were applied.
func ConfigureFromEnv() int {
	var cfg Config
	configured := 0

	read := func(env string, dst *time.Duration) {
		if v := os.Getenv(env); v != "" {
			if d, err := time.ParseDuration(v); err == nil && d > 0 {
				*dst = d
				configured++
			}
		}
	}
	read("TIMEOUT_PING", &cfg.Ping)
	read("TIMEOUT_SHORT", &cfg.Short)
	read("TIMEOUT_MEDIUM", &cfg.Medium)
	read("TIMEOUT_LONG", &cfg.Long)

	Configure(cfg)
	return configured
}
