// Package indextest builds small package index files for tests.
package indextest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// Entry declares that PackageID provides Command. Entries are inserted in
// order, so earlier entries come first in the index's natural row order.
type Entry struct {
	Command   string
	PackageID string
}

const schema = `
CREATE TABLE ids (rowid INTEGER PRIMARY KEY, id TEXT NOT NULL UNIQUE);
CREATE TABLE manifest (rowid INTEGER PRIMARY KEY, id INTEGER NOT NULL, version TEXT NOT NULL DEFAULT '1.0');
CREATE TABLE commands (rowid INTEGER PRIMARY KEY, command TEXT NOT NULL UNIQUE);
CREATE TABLE commands_map (command INTEGER NOT NULL, manifest INTEGER NOT NULL, PRIMARY KEY (command, manifest));
`

// Build writes an index containing entries to a new file under t.TempDir()
// and returns its path.
func Build(t testing.TB, entries ...Entry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}
	for _, e := range entries {
		if _, err := db.Exec(`INSERT OR IGNORE INTO ids (id) VALUES (?)`, e.PackageID); err != nil {
			t.Fatalf("insert id %q: %v", e.PackageID, err)
		}
		res, err := db.Exec(`INSERT INTO manifest (id) SELECT rowid FROM ids WHERE id = ?`, e.PackageID)
		if err != nil {
			t.Fatalf("insert manifest %q: %v", e.PackageID, err)
		}
		manifest, err := res.LastInsertId()
		if err != nil {
			t.Fatalf("manifest rowid: %v", err)
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO commands (command) VALUES (?)`, e.Command); err != nil {
			t.Fatalf("insert command %q: %v", e.Command, err)
		}
		if _, err := db.Exec(`INSERT INTO commands_map (command, manifest)
			SELECT rowid, ? FROM commands WHERE command = ?`, manifest, e.Command); err != nil {
			t.Fatalf("insert mapping %q -> %q: %v", e.Command, e.PackageID, err)
		}
	}
	return path
}
