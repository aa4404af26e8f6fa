package tui

import (
	"sync"

	"quire-cli/internal/journal"
)

// feedbackSink collects transient signals from the journal service and
// the edit controller so the app can flash them in the minibuffer. Both
// emit synchronously from the update loop, but the saver may also report
// through the service at open time, so access is guarded.
type feedbackSink struct {
	mu   sync.Mutex
	msgs []string
}

func NewFeedbackSink() *feedbackSink {
	return &feedbackSink{}
}

// Push is shaped to plug straight into journal.Options.OnFeedback.
func (s *feedbackSink) Push(f journal.Feedback) {
	s.PushMessage(f.Message)
}

func (s *feedbackSink) PushMessage(msg string) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, msg)
	s.mu.Unlock()
}

// Drain returns the queued messages and empties the sink.
func (s *feedbackSink) Drain() []string {
	s.mu.Lock()
	out := s.msgs
	s.msgs = nil
	s.mu.Unlock()
	return out
}
