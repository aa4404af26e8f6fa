package journal

import (
	"context"
	"errors"
	"time"

	"quire-cli/internal/model"
	"quire-cli/internal/mutate"
	"quire-cli/internal/store"
)

// FeedbackTTL is how long hosts should display a transient signal
// before auto-clearing it.
const FeedbackTTL = 3 * time.Second

// Feedback is the transient user-facing side channel: a message to
// flash, never an error the caller must handle.
type Feedback struct {
	Message string
}

// Service is the orchestrator: it owns the notebook collection, routes
// every mutation through the mutate package, and schedules persistence.
// All mutation methods must be called from one goroutine; persistence is
// the only off-thread work and runs on snapshots.
type Service struct {
	st    store.Store
	db    *store.DB
	saver *DebouncedSaver

	onFeedback func(Feedback)
}

type Options struct {
	Store    store.Store
	Debounce time.Duration
	Interval time.Duration

	// OnFeedback receives transient signals (rejections, confirmations).
	// May be nil.
	OnFeedback func(Feedback)
}

// Open loads the collection (an empty or corrupt store yields a fresh
// one) and guarantees the default notebook exists.
func Open(opts Options) *Service {
	s := &Service{
		st:         opts.Store,
		onFeedback: opts.OnFeedback,
	}
	if s.onFeedback == nil {
		s.onFeedback = func(Feedback) {}
	}
	s.db = opts.Store.Load(context.Background())
	s.saver = NewDebouncedSaver(DebouncedSaverOpts{
		Store:    opts.Store,
		Debounce: opts.Debounce,
		Interval: opts.Interval,
	})
	if mutate.Bootstrap(s.db) {
		s.saver.Notify(s.db)
	}
	return s
}

// Close flushes pending state and stops the save timers.
func (s *Service) Close() error {
	return s.saver.Close()
}

// DB exposes the live collection for read-only views. Callers must not
// retain mutable aliases; all writes go through the service.
func (s *Service) DB() *store.DB {
	return s.db
}

// Current re-resolves the selected notebook from the collection; it is
// never a stale copy.
func (s *Service) Current() (model.Notebook, bool) {
	nb, _, ok := s.db.CurrentNotebook()
	return nb, ok
}

// SaveErr reports the most recent persistence outcome; persistence
// failures are never surfaced as blocking errors.
func (s *Service) SaveErr() error {
	return s.saver.SaveErr()
}

func (s *Service) CreateNotebook(name string) (model.Notebook, error) {
	res, err := mutate.CreateNotebook(s.db, name)
	if err != nil {
		if errors.Is(err, mutate.ErrEmptyName) {
			s.onFeedback(Feedback{Message: "notebook name cannot be empty"})
		}
		return model.Notebook{}, err
	}
	s.saver.Notify(s.db)
	return res.Notebook, nil
}

func (s *Service) DeleteNotebook(id string) error {
	if err := mutate.DeleteNotebook(s.db, id); err != nil {
		if errors.Is(err, mutate.ErrDefaultNotebook) {
			s.onFeedback(Feedback{Message: "the default notebook cannot be deleted"})
		}
		return err
	}
	s.saver.Notify(s.db)
	return nil
}

func (s *Service) SelectNotebook(id string) error {
	if err := mutate.SelectNotebook(s.db, id); err != nil {
		return err
	}
	s.saver.Notify(s.db)
	return nil
}

// UpdateCurrentPageContent forwards confirmed text into the current
// page. Content from this non-interactive channel is truncated to the
// cluster ceiling rather than rejected.
func (s *Service) UpdateCurrentPageContent(text string) error {
	if _, err := mutate.UpdateCurrentPageContent(s.db, text); err != nil {
		return err
	}
	s.saver.Notify(s.db)
	return nil
}

func (s *Service) Navigate(direction int) (model.Notebook, error) {
	res, err := mutate.Navigate(s.db, direction)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoPage):
			s.onFeedback(Feedback{Message: "no page in that direction"})
		case errors.Is(err, model.ErrNoAvailablePage):
			s.onFeedback(Feedback{Message: "no available page in that direction"})
		}
		return model.Notebook{}, err
	}
	s.saver.Notify(s.db)
	return res.Notebook, nil
}

func (s *Service) MoveToPage(index int) (model.Notebook, error) {
	res, err := mutate.MoveToPage(s.db, index)
	if err != nil {
		return model.Notebook{}, err
	}
	s.saver.Notify(s.db)
	return res.Notebook, nil
}

func (s *Service) TearCurrentPage() error {
	if _, err := mutate.TearCurrentPage(s.db); err != nil {
		if errors.Is(err, mutate.ErrCannotTear) {
			s.onFeedback(Feedback{Message: "this page cannot be torn"})
		}
		return err
	}
	s.onFeedback(Feedback{Message: "page torn"})
	s.saver.Notify(s.db)
	return nil
}

// LockCurrentPage applies loss-of-focus locking, the bridge from the
// edit controller's focus events to the aggregate.
func (s *Service) LockCurrentPage() {
	nb, i, ok := s.db.CurrentNotebook()
	if !ok {
		return
	}
	nb.LockCurrentPage()
	s.db.ReplaceNotebook(i, nb)
	s.saver.Notify(s.db)
}
