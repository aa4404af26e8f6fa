package editor

// Composition session contract. Scripts that assemble a visible
// character from several input steps (Hangul jamo, dead keys, CJK
// conversion) hold a provisional sequence at the tail of the buffer;
// it is not subject to append-only until committed.

// BeginComposition opens a session at the current end of buffer. A
// session opened while one is already active is a no-op; a pending
// delete correction is resolved first by discarding its expectation.
func (c *Controller) BeginComposition() {
	if c.state == StateComposing {
		return
	}
	c.expected = ""
	c.composeStart = len(c.text)
	c.state = StateComposing
}

// UpdateComposition replaces the provisional tail with s. An update that
// would push the buffer past the cluster ceiling is rejected with a
// limit signal and the previous provisional text stays in place.
func (c *Controller) UpdateComposition(s string) bool {
	if c.state != StateComposing {
		// Treat a stray update as begin+update; hosts differ on
		// whether they announce session start separately.
		c.BeginComposition()
	}
	candidate := c.text[:c.composeStart] + s
	if clusterCount(candidate) > c.limit {
		c.notify(Feedback{Kind: FeedbackLimit, Message: msgLimit})
		return false
	}
	c.text = candidate
	return true
}

// CommitComposition confirms the provisional tail; the confirmed prefix
// advances to the new end of buffer.
func (c *Controller) CommitComposition() {
	if c.state != StateComposing {
		return
	}
	c.confirmed = len(c.text)
	c.state = StateIdle
	c.composeStart = 0
}

// CancelComposition drops the provisional tail entirely.
func (c *Controller) CancelComposition() {
	if c.state != StateComposing {
		return
	}
	c.text = c.text[:c.composeStart]
	c.confirmed = len(c.text)
	c.state = StateIdle
	c.composeStart = 0
}

// Composing reports whether a session is open (the host's
// hasMarkedRange).
func (c *Controller) Composing() bool {
	return c.state == StateComposing
}
