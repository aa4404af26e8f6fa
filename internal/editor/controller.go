package editor

// The controller mediates every mutation of the text buffer bound to the
// page being written. The contract is append-only: once a grapheme
// cluster is confirmed it can never change, except that the very last
// confirmed cluster may be deleted when the cursor sits at the end of
// the buffer. Provisional composition text at the tail is exempt until
// the session commits.
//
// The controller owns the authoritative buffer. Hosts feed it edit
// requests, echo the post-edit buffer through OnDidChangeText, and apply
// whatever corrected text/cursor the controller hands back.

type State int

const (
	// StateIdle: no composition in progress; the whole buffer is
	// confirmed.
	StateIdle State = iota
	// StateComposing: a provisional sequence sits at the tail of the
	// buffer and may be freely replaced until committed.
	StateComposing
	// StateDeleting: a cluster-wide delete correction is in flight;
	// the next buffer echo is verified against the expected text.
	StateDeleting
)

// Range is a half-open [Start, End) span in rune offsets.
type Range struct {
	Start int
	End   int
}

// DeleteResult reports how a deletion request was resolved. When the
// requested range covered only part of a composed cluster, Start/End
// widen to the full cluster.
type DeleteResult struct {
	Accepted bool
	Start    int // pre-delete rune offset where removal begins
	End      int // pre-delete rune offset where removal ends
	Cursor   int // rune offset of the cursor after the delete
}

type Controller struct {
	pageID string
	text   string

	// confirmed is the byte offset ending the immutable prefix.
	confirmed int

	state        State
	composeStart int    // byte offset of the provisional tail (StateComposing)
	expected     string // post-delete text to verify (StateDeleting)

	limit  int // grapheme cluster ceiling
	notify func(Feedback)
}

// New returns a controller with the given cluster ceiling. notify may be
// nil; it receives one signal per rejected edit.
func New(limit int, notify func(Feedback)) *Controller {
	if notify == nil {
		notify = func(Feedback) {}
	}
	return &Controller{limit: limit, notify: notify}
}

// Bind points the controller at a page's buffer. The entire incoming
// text is confirmed and all session state is dropped; this is the
// counterpart of the page-level lock-on-blur semantics.
func (c *Controller) Bind(pageID, text string) {
	c.pageID = pageID
	c.reset(text)
}

func (c *Controller) reset(text string) {
	c.text = text
	c.confirmed = len(text)
	c.state = StateIdle
	c.composeStart = 0
	c.expected = ""
}

func (c *Controller) PageID() string { return c.pageID }
func (c *Controller) Text() string   { return c.text }
func (c *Controller) State() State   { return c.state }

// ConfirmedLen returns the length of the immutable prefix in runes.
func (c *Controller) ConfirmedLen() int {
	return runeLen(c.text[:c.confirmed])
}

// Len returns the buffer length in runes.
func (c *Controller) Len() int {
	return runeLen(c.text)
}

// Clusters returns the buffer length in grapheme clusters.
func (c *Controller) Clusters() int {
	return clusterCount(c.text)
}

// Insert handles a plain keystroke (not part of a composition session).
// pos is a rune offset; only pos == end of buffer is accepted. While a
// composition session is open the text extends the provisional tail
// instead, still subject to the ceiling. On success outside composition
// the new end of buffer is immediately confirmed.
func (c *Controller) Insert(pos int, s string) bool {
	if s == "" {
		return false
	}
	if pos != c.Len() {
		c.notify(Feedback{Kind: FeedbackBlocked, Message: msgBlocked})
		return false
	}
	candidate := c.text + s
	if clusterCount(candidate) > c.limit {
		c.notify(Feedback{Kind: FeedbackLimit, Message: msgLimit})
		return false
	}
	c.text = candidate
	if c.state != StateComposing {
		c.confirmed = len(c.text)
		c.state = StateIdle
	}
	return true
}

// DeleteRange handles a deletion request for the half-open rune range
// [start, end). Only a range ending at the buffer end and reaching no
// further back than the final grapheme cluster is accepted; everything
// else protects confirmed history and is rejected. A request covering
// part of a composed cluster is widened to the whole cluster, and the
// controller enters StateDeleting so the next OnDidChangeText echo can
// be verified against the expected post-delete text (host frameworks
// have been seen regenerating composition artifacts right after such a
// correction).
func (c *Controller) DeleteRange(start, end int) DeleteResult {
	bufRunes := c.Len()
	if c.text == "" || start >= end || end != bufRunes {
		c.notify(Feedback{Kind: FeedbackBlocked, Message: msgBlocked})
		return DeleteResult{Cursor: bufRunes}
	}

	// Inside an open composition the provisional tail is fair game.
	if c.state == StateComposing {
		startBytes := byteOffset(c.text, start)
		if startBytes < c.composeStart {
			c.notify(Feedback{Kind: FeedbackBlocked, Message: msgBlocked})
			return DeleteResult{Cursor: bufRunes}
		}
		c.text = c.text[:startBytes]
		return DeleteResult{Accepted: true, Start: start, End: end, Cursor: c.Len()}
	}

	clusterBytes, clusterRunes := lastClusterStart(c.text)
	if start < clusterRunes {
		// Reaches past the final cluster into confirmed history.
		c.notify(Feedback{Kind: FeedbackBlocked, Message: msgBlocked})
		return DeleteResult{Cursor: bufRunes}
	}

	widened := start > clusterRunes
	c.expected = c.text[:clusterBytes]
	c.text = c.expected
	c.confirmed = len(c.text)
	if widened {
		// Partial delete of a composed cluster: remove the whole
		// cluster and verify the host's next echo.
		c.state = StateDeleting
	} else {
		c.expected = ""
		c.state = StateIdle
	}
	return DeleteResult{Accepted: true, Start: clusterRunes, End: end, Cursor: c.Len()}
}

// Paste rejects bulk clipboard injection; the only path into the buffer
// is single-step interactive insertion or composition.
func (c *Controller) Paste(string) bool {
	c.notify(Feedback{Kind: FeedbackBlocked, Message: msgNoPaste})
	return false
}

// Cut is rejected: it would delete confirmed text.
func (c *Controller) Cut(Range) bool {
	c.notify(Feedback{Kind: FeedbackBlocked, Message: msgNoCut})
	return false
}

// Copy never mutates, so it is always permitted.
func (c *Controller) Copy(Range) bool { return true }

// OnDidChangeText takes the host's post-edit buffer. The returned text
// is authoritative; reset reports whether the host must replace its
// buffer (it diverged from the controller, typically a re-composition
// artifact after a corrected delete).
func (c *Controller) OnDidChangeText(actual string) (text string, reset bool) {
	if c.state == StateDeleting {
		expected := c.expected
		c.expected = ""
		c.state = StateIdle
		if actual != expected {
			c.text = expected
			c.confirmed = len(expected)
			return expected, true
		}
		c.text = expected
		c.confirmed = len(expected)
		return expected, false
	}
	if actual != c.text {
		return c.text, true
	}
	return c.text, false
}

// OnSelectionChanged snaps a cursor that would land inside the confirmed
// prefix back to the end of the buffer. While a delete correction is in
// flight the host cursor is left alone so the correction is not fought.
func (c *Controller) OnSelectionChanged(pos int) int {
	if c.state == StateDeleting {
		return pos
	}
	if pos < c.ConfirmedLen() {
		return c.Len()
	}
	if pos > c.Len() {
		return c.Len()
	}
	return pos
}

// OnFocusGained re-confirms the whole buffer and clears session state.
func (c *Controller) OnFocusGained() {
	c.reset(c.text)
}

// OnFocusLost commits any open composition and re-confirms the buffer;
// the aggregate level locks the page separately.
func (c *Controller) OnFocusLost() {
	c.reset(c.text)
}

// OnWillChangeText is the generic host filter: replacement of range r
// with repl. It dispatches to the specific operations; hosts with
// richer event streams should call those directly.
func (c *Controller) OnWillChangeText(r Range, repl string) bool {
	if repl == "" {
		return c.DeleteRange(r.Start, r.End).Accepted
	}
	if r.Start == r.End {
		return c.Insert(r.Start, repl)
	}
	// Replacing a non-empty range is only legal for the provisional
	// tail of an open composition.
	if c.state == StateComposing {
		startBytes := byteOffset(c.text, r.Start)
		if startBytes == c.composeStart && r.End == c.Len() {
			return c.UpdateComposition(repl)
		}
	}
	c.notify(Feedback{Kind: FeedbackBlocked, Message: msgBlocked})
	return false
}
