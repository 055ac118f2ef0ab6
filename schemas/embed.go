// Package schemas provides embedded SQL migration files.
package schemas

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Migrations contains all SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// Statements returns the migration statements in file name order.
func Statements() ([]string, error) {
	entries, err := fs.ReadDir(Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("fs.ReadDir > %w", err)
	}

	statements := make([]string, 0, len(entries))
	for _, entry := range entries {
		content, err := fs.ReadFile(Migrations, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("fs.ReadFile(%s) > %w", entry.Name(), err)
		}
		statements = append(statements, strings.TrimSpace(string(content)))
	}
	return statements, nil
}
