package backup

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite"
)

const (
	filePrefix  = "inventory_"
	fileSuffix  = ".db"
	stampLayout = "20060102_150405"
)

// Snapshot copies the live store into a new timestamped file in dir and
// returns its path. The copy runs through SQLite's VACUUM INTO on a
// dedicated connection, which reads a consistent snapshot without
// blocking concurrent writers; a raw file copy of a live store could
// capture a torn image. The target file is never overwritten, so
// completed backups stay immutable.
func Snapshot(ctx context.Context, dbPath, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: create backup dir: %w", err)
	}
	target := filepath.Join(dir, filePrefix+time.Now().Format(stampLayout)+fileSuffix)

	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return "", fmt.Errorf("snapshot: open source: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `VACUUM INTO ?`, target); err != nil {
		// VACUUM INTO can leave a partial target behind on failure
		os.Remove(target)
		return "", fmt.Errorf("snapshot: %w", err)
	}
	return target, nil
}

// Prune deletes the oldest backup files beyond retention, ordered by
// the timestamp embedded in the filename, and returns the removed
// paths. A retention of zero or less disables pruning.
func Prune(dir string, retention int) ([]string, error) {
	if retention <= 0 {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("prune backups: %w", err)
	}
	sort.Strings(matches)
	if len(matches) <= retention {
		return nil, nil
	}

	var removed []string
	for _, path := range matches[:len(matches)-retention] {
		if err := os.Remove(path); err != nil {
			log.Printf("Unable to remove old backup %s: %v", path, err)
			continue
		}
		removed = append(removed, path)
	}
	return removed, nil
}
