package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config selects and configures a storage backend.
type Config struct {
	Driver Driver
	// URL is the PostgreSQL connection string. A sqlite:// URL is also
	// accepted and overrides SQLitePath.
	URL        string
	SQLitePath string
	MaxConns   int
}

type opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]opener{}

// Register makes a backend available to Open. Driver packages call it from init.
func Register(d Driver, fn func(ctx context.Context, cfg Config) (Connection, error)) {
	openers[d] = fn
}

// Open connects to the backend named by cfg, detecting it from the URL when
// the driver is auto.
func Open(ctx context.Context, cfg Config) (Connection, error) {
	d := cfg.Driver
	if d == "" || d == DriverAuto {
		d = DetectDriver(cfg.URL)
	}
	if d == DriverSQLite && cfg.URL != "" && DetectDriver(cfg.URL) == DriverSQLite {
		cfg.SQLitePath = strings.TrimPrefix(cfg.URL, "sqlite://")
	}

	open, ok := openers[d]
	if !ok {
		return nil, fmt.Errorf("database driver %q is not registered", d)
	}
	return open(ctx, cfg)
}

// DefaultSQLitePath is where the local task store lives when nothing is configured.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".taskanalyzer", "tasks.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
