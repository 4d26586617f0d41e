package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// resolveQuery walks commands -> commands_map -> manifest -> ids.
//
// There is deliberately no ORDER BY. When a command is provided by several
// packages the first row SQLite produces for the join wins, which is the
// natural row order of the index. That order is stable for a given index file
// but may change when the package manager rebuilds the index.
const resolveQuery = `
	SELECT ids.id
	FROM commands, commands_map, manifest, ids
	WHERE commands.command = ?
		AND commands.rowid = commands_map.command
		AND manifest.rowid = commands_map.manifest
		AND ids.rowid = manifest.id
	LIMIT 1`

// SQLiteIndex implements Resolver over a read-only SQLite index file.
type SQLiteIndex struct {
	db      *sql.DB
	resolve *sql.Stmt
	path    string
}

// Open opens the index at path read-only and prepares the lookup. Any failure
// (missing file, not a database, missing tables) is reported as
// ErrIndexUnavailable wrapping the cause.
func Open(ctx context.Context, path string) (*SQLiteIndex, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrIndexUnavailable, path, err)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrIndexUnavailable, path, err)
	}

	// Preparing the join validates the file is a database with the expected
	// tables before we hand out a resolver.
	stmt, err := db.PrepareContext(ctx, resolveQuery)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: prepare lookup on %s: %v", ErrIndexUnavailable, path, err)
	}

	return &SQLiteIndex{db: db, resolve: stmt, path: path}, nil
}

// readOnlyDSN builds a file: URI for path opened read-only. The path is
// percent-escaped so '#', '?' and '%' in directory names stay part of the
// path instead of starting a fragment or query.
func readOnlyDSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path // C:/... on Windows
	}
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		RawQuery: "mode=ro&_pragma=query_only(1)&_pragma=busy_timeout(5000)",
	}
	return u.String()
}

// Path returns the file the index was opened from.
func (x *SQLiteIndex) Path() string {
	return x.path
}

// Resolve returns the first package id whose manifest declares commandName.
// It is safe for concurrent use.
func (x *SQLiteIndex) Resolve(ctx context.Context, commandName string) (string, bool, error) {
	if commandName == "" {
		return "", false, nil
	}
	var id string
	err := x.resolve.QueryRowContext(ctx, commandName).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("resolve %q: %w", commandName, err)
	}
	return id, true, nil
}

// CountCommands returns the number of distinct command names in the index.
func (x *SQLiteIndex) CountCommands(ctx context.Context) (int, error) {
	var n int
	if err := x.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT command) FROM commands").Scan(&n); err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return n, nil
}

// Close releases the prepared statement and the database handle.
func (x *SQLiteIndex) Close() error {
	x.resolve.Close()
	return x.db.Close()
}
