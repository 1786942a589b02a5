package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestDB creates a small populated SQLite file and returns its path.
func newTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.db")

	db, err := sql.Open("sqlite",
		"file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE parts (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		_, err = db.Exec(`INSERT INTO parts (name) VALUES (?)`, fmt.Sprintf("part-%02d", i))
		require.NoError(t, err)
	}
	return path
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM parts`).Scan(&n))
	return n
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for backup event")
		return Event{}
	}
}

func TestSnapshotCopiesData(t *testing.T) {
	dbPath := newTestDB(t)
	dir := t.TempDir()

	target, err := Snapshot(context.Background(), dbPath, dir)
	require.NoError(t, err)
	require.FileExists(t, target)

	base := filepath.Base(target)
	require.Regexp(t, `^inventory_\d{8}_\d{6}\.db$`, base)
	require.Equal(t, 10, countRows(t, target))
}

func TestSnapshotCreatesDir(t *testing.T) {
	dbPath := newTestDB(t)
	dir := filepath.Join(t.TempDir(), "nested", "backups")

	_, err := Snapshot(context.Background(), dbPath, dir)
	require.NoError(t, err)
}

func TestSnapshotDuringWrites(t *testing.T) {
	dbPath := newTestDB(t)
	dir := t.TempDir()

	db, err := sql.Open("sqlite",
		"file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	defer db.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			if _, err := db.Exec(`INSERT INTO parts (name) VALUES (?)`,
				fmt.Sprintf("live-%04d", i)); err != nil {
				return
			}
		}
	}()

	target, err := Snapshot(context.Background(), dbPath, dir)
	close(stop)
	wg.Wait()
	require.NoError(t, err)

	// The copy must be a coherent database, whatever it caught.
	copied, err := sql.Open("sqlite", "file:"+target+"?mode=ro")
	require.NoError(t, err)
	defer copied.Close()

	var result string
	require.NoError(t, copied.QueryRow(`PRAGMA integrity_check`).Scan(&result))
	require.Equal(t, "ok", result)
}

func TestPruneKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"inventory_20260101_120000.db",
		"inventory_20260102_120000.db",
		"inventory_20260103_120000.db",
		"inventory_20260104_120000.db",
		"inventory_20260105_120000.db",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	// Unrelated files are never touched.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	removed, err := Prune(dir, 3)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, names[0]),
		filepath.Join(dir, names[1]),
	}, removed)

	for _, name := range names[2:] {
		require.FileExists(t, filepath.Join(dir, name))
	}
	require.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestPruneUnderRetention(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "inventory_20260101_120000.db"), []byte("x"), 0o644))

	removed, err := Prune(dir, 3)
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestPruneDisabled(t *testing.T) {
	removed, err := Prune(t.TempDir(), 0)
	require.NoError(t, err)
	require.Empty(t, removed)
}

func TestTriggerBackupDisabled(t *testing.T) {
	s := NewScheduler(newTestDB(t), Options{Enabled: false})
	require.False(t, s.TriggerBackup())
}

func TestTriggerBackupSingleFlight(t *testing.T) {
	s := NewScheduler(newTestDB(t), Options{
		Enabled:   true,
		Interval:  time.Hour,
		Dir:       t.TempDir(),
		Retention: 3,
	})

	// Simulate a backup in flight; a second trigger must be dropped.
	s.inflight.Lock()
	require.False(t, s.TriggerBackup())
	s.inflight.Unlock()

	require.True(t, s.TriggerBackup())

	ev := waitEvent(t, s.Events())
	require.Equal(t, EventStarted, ev.Type)
	ev = waitEvent(t, s.Events())
	require.Equal(t, EventFinished, ev.Type)
	require.FileExists(t, ev.Path)
}

func TestTriggerBackupFailure(t *testing.T) {
	s := NewScheduler(filepath.Join(t.TempDir(), "missing", "no.db"), Options{
		Enabled:  true,
		Interval: time.Hour,
		Dir:      t.TempDir(),
	})

	require.True(t, s.TriggerBackup())

	ev := waitEvent(t, s.Events())
	require.Equal(t, EventStarted, ev.Type)
	ev = waitEvent(t, s.Events())
	require.Equal(t, EventFailed, ev.Type)
	require.NotEmpty(t, ev.Message)

	// The gate is released after a failure. The failure event can land
	// just before the unlock, so poll rather than trigger once.
	require.Eventually(t, s.TriggerBackup, 5*time.Second, 10*time.Millisecond)
	waitEvent(t, s.Events())
	waitEvent(t, s.Events())
}

func TestSchedulerTimerFires(t *testing.T) {
	s := NewScheduler(newTestDB(t), Options{
		Enabled:   true,
		Interval:  50 * time.Millisecond,
		Dir:       t.TempDir(),
		Retention: 3,
	})
	s.Start()
	defer s.Stop()

	ev := waitEvent(t, s.Events())
	require.Equal(t, EventStarted, ev.Type)
	ev = waitEvent(t, s.Events())
	require.Equal(t, EventFinished, ev.Type)
}

func TestSchedulerStartDisabled(t *testing.T) {
	s := NewScheduler(newTestDB(t), Options{Enabled: false})
	s.Start()
	s.Stop() // must not panic or block when never started
}
