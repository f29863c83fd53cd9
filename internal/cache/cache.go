// Package cache stores per-file audit outcomes keyed by content hash, so
// unchanged files replay their issues without being parsed again.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/ranga291257/astra/internal/types"
)

// Entry is one cached file: the content hash it was computed from and the
// issues the rules produced.
type Entry struct {
	Hash   string        `json:"hash"`
	Issues []types.Issue `json:"issues,omitempty"`
}

type DB struct {
	// Path relative to the audit root -> cached outcome
	Entries map[string]Entry `json:"entries"`
}

// HashBytes returns the cache key for file content.
func HashBytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to the audit root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "astra_cache.json")
	}
	return filepath.Join(root, ".astra-cache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Entries: map[string]Entry{}}, err
	}
	if db.Entries == nil {
		db.Entries = map[string]Entry{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}
