// Package migrations embeds the schema for both storage backends.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/database"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// Files lists the up migrations for driver in apply order.
func Files(driver database.Driver) ([]string, error) {
	entries, err := fs.ReadDir(files, driver.String())
	if err != nil {
		return nil, fmt.Errorf("no migrations for driver %s: %w", driver, err)
	}
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Apply runs every migration for the connection's driver. Statements use
// IF NOT EXISTS, so applying twice is harmless.
func Apply(ctx context.Context, conn database.Connection) error {
	driver := conn.Driver()
	names, err := Files(driver)
	if err != nil {
		return err
	}
	for _, name := range names {
		body, err := files.ReadFile(driver.String() + "/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := conn.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}
