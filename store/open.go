package store

import (
	"context"
	"path/filepath"
	"strings"
)

// Open picks a backend from path: empty keeps records in memory, .db/.sqlite/.sqlite3
// use SQLite, anything else is a JSON file.
func Open(ctx context.Context, path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(ctx, path)
	default:
		return NewJSONStore(path)
	}
}
