package journal

import (
	"context"
	"sync"
	"time"

	"quire-cli/internal/store"
)

// DebouncedSaver coalesces rapid mutations into infrequent writes. Each
// Notify cancels the previously scheduled save and schedules a new one
// after the debounce delay; an independent periodic tick saves
// unconditionally so continuous typing still hits disk within a bounded
// interval. Saves are fire-and-forget: the mutation path never blocks
// on persistence, and each save works from the immutable snapshot taken
// at schedule time.
type DebouncedSaver struct {
	store    store.Store
	debounce time.Duration
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  bool
	running  bool
	snapshot *store.DB
	lastErr  error

	done   chan struct{}
	closed bool
}

type DebouncedSaverOpts struct {
	Store    store.Store
	Debounce time.Duration // default 500ms
	Interval time.Duration // default 5s; <0 disables the periodic tick
}

func NewDebouncedSaver(opts DebouncedSaverOpts) *DebouncedSaver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	interval := opts.Interval
	if interval == 0 {
		interval = 5 * time.Second
	}
	d := &DebouncedSaver{
		store:    opts.Store,
		debounce: debounce,
		interval: interval,
		done:     make(chan struct{}),
	}
	if interval > 0 {
		go d.periodicLoop()
	}
	return d
}

// Notify records a snapshot of the collection and (re)schedules the
// debounced save.
func (d *DebouncedSaver) Notify(db *store.DB) {
	if d == nil || db == nil {
		return
	}
	snap := db.Clone()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.pending = true
	d.snapshot = snap
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.debounce)
	d.mu.Unlock()
}

func (d *DebouncedSaver) onTimer() {
	d.save(false)
}

func (d *DebouncedSaver) periodicLoop() {
	t := time.NewTicker(d.interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			// Unconditional: bounds staleness even while the debounce
			// keeps being pushed forward by continuous edits.
			d.save(true)
		case <-d.done:
			return
		}
	}
}

func (d *DebouncedSaver) save(periodic bool) {
	d.mu.Lock()
	if d.running {
		// A save is in flight; let the debounce pick up the newer
		// snapshot afterwards.
		if !periodic && d.timer != nil {
			d.timer.Reset(d.debounce)
		}
		d.mu.Unlock()
		return
	}
	if !d.pending && !periodic {
		d.mu.Unlock()
		return
	}
	snap := d.snapshot
	if snap == nil {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.running = true
	d.mu.Unlock()

	// Best-effort: a failed save is kept for inspection and retried
	// implicitly by the next debounce/periodic cycle.
	err := d.store.Save(context.Background(), snap)

	d.mu.Lock()
	d.running = false
	d.lastErr = err
	if err != nil {
		d.pending = true
	}
	if d.pending && d.timer != nil && !d.closed {
		d.timer.Reset(d.debounce)
	}
	d.mu.Unlock()
}

// SaveErr returns the outcome of the most recent save attempt.
func (d *DebouncedSaver) SaveErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastErr
}

// Flush writes the latest snapshot synchronously. Used at shutdown.
func (d *DebouncedSaver) Flush(ctx context.Context) error {
	d.mu.Lock()
	snap := d.snapshot
	d.pending = false
	d.mu.Unlock()
	if snap == nil {
		return nil
	}
	err := d.store.Save(ctx, snap)
	d.mu.Lock()
	d.lastErr = err
	d.mu.Unlock()
	return err
}

// Close stops the timers. A pending snapshot is flushed first.
func (d *DebouncedSaver) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.done)
	d.mu.Unlock()
	return d.Flush(context.Background())
}
