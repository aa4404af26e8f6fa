package editor

// FeedbackKind distinguishes the two rejection classes so a host UI can
// render different affordances (shake vs "page is full" toast).
type FeedbackKind int

const (
	// FeedbackBlocked covers append-only violations: edits before the
	// confirmed prefix, paste/cut attempts, out-of-place insertions.
	FeedbackBlocked FeedbackKind = iota
	// FeedbackLimit fires when an insertion would exceed the page's
	// cluster ceiling.
	FeedbackLimit
)

type Feedback struct {
	Kind    FeedbackKind
	Message string
}

const (
	msgBlocked = "only the end of the page can be edited"
	msgLimit   = "page is full"
	msgNoPaste = "pasting is not allowed"
	msgNoCut   = "cutting is not allowed"
)
