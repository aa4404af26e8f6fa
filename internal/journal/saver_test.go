package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"quire-cli/internal/mutate"
	"quire-cli/internal/store"
)

func waitFor(t *testing.T, d time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", d)
}

func TestDebouncedSaver_SavesAfterQuiescence(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(DebouncedSaverOpts{Store: st, Debounce: 20 * time.Millisecond, Interval: -1})
	defer d.Close()

	db := store.NewDB()
	mutate.Bootstrap(db)
	d.Notify(db)

	waitFor(t, 2*time.Second, func() bool {
		return len(st.Load(context.Background()).Notebooks) == 1
	})
}

func TestDebouncedSaver_CoalescesRapidNotifies(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(DebouncedSaverOpts{Store: st, Debounce: 30 * time.Millisecond, Interval: -1})
	defer d.Close()

	db := store.NewDB()
	mutate.Bootstrap(db)
	// Rapid edits keep pushing the debounce forward; the save that
	// eventually lands carries the newest snapshot.
	for i := 0; i < 5; i++ {
		mutate.UpdateCurrentPageContent(db, "draft "+string(rune('a'+i)))
		d.Notify(db)
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, 2*time.Second, func() bool {
		loaded := store.Store{Dir: st.Dir}.Load(context.Background())
		if len(loaded.Notebooks) != 1 {
			return false
		}
		return loaded.Notebooks[0].Pages[0].Content == "draft e"
	})
}

func TestDebouncedSaver_PeriodicTickBoundsStaleness(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	// Debounce far longer than the test; only the periodic tick can save.
	d := NewDebouncedSaver(DebouncedSaverOpts{Store: st, Debounce: time.Hour, Interval: 25 * time.Millisecond})
	defer d.Close()

	db := store.NewDB()
	mutate.Bootstrap(db)
	d.Notify(db)

	waitFor(t, 2*time.Second, func() bool {
		return len(st.Load(context.Background()).Notebooks) == 1
	})
}

func TestDebouncedSaver_FlushAndSaveErr(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocked, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	d := NewDebouncedSaver(DebouncedSaverOpts{Store: store.Store{Dir: blocked}, Debounce: time.Hour, Interval: -1})
	defer d.Close()

	db := store.NewDB()
	mutate.Bootstrap(db)
	d.Notify(db)

	if err := d.Flush(context.Background()); err == nil {
		t.Fatalf("expected flush into a file path to fail")
	}
	if d.SaveErr() == nil {
		t.Fatalf("expected SaveErr to report the failure")
	}
}

func TestDebouncedSaver_SnapshotIsImmutable(t *testing.T) {
	st := store.Store{Dir: t.TempDir()}
	d := NewDebouncedSaver(DebouncedSaverOpts{Store: st, Debounce: time.Hour, Interval: -1})
	defer d.Close()

	db := store.NewDB()
	mutate.Bootstrap(db)
	mutate.UpdateCurrentPageContent(db, "snapshot me")
	d.Notify(db)

	// Mutations after schedule time must not leak into the snapshot.
	mutate.UpdateCurrentPageContent(db, "after")

	if err := d.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	loaded := st.Load(context.Background())
	if got := loaded.Notebooks[0].Pages[0].Content; got != "snapshot me" {
		t.Fatalf("snapshot leaked later mutations: %q", got)
	}
}
