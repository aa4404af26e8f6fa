package model

import (
	"time"

	"github.com/rivo/uniseg"
)

// ClusterCount returns the number of grapheme clusters in s.
// Page limits are expressed in clusters so that multi-step composed
// characters count as one.
func ClusterCount(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// State derives the page lifecycle state. Torn wins over everything;
// a locked page with content is Completed and terminal for editing.
func (p *Page) State() PageState {
	switch {
	case p.Torn:
		return PageTorn
	case p.Content != "" && p.Locked:
		return PageCompleted
	case p.Content != "":
		return PageWriting
	default:
		return PageEmpty
	}
}

func (p *Page) CanEdit() bool {
	return !p.Torn && !p.Locked
}

// UpdateContent replaces the page content. It reports false (and mutates
// nothing) when the page is locked or torn, or when text exceeds the
// cluster ceiling.
func (p *Page) UpdateContent(text string) bool {
	if !p.CanEdit() {
		return false
	}
	if ClusterCount(text) > MaxPageClusters {
		return false
	}
	p.Content = text
	p.LastModified = time.Now().UTC()
	return true
}

// Lock makes a non-empty page permanently read-only. Locking an empty
// page is a no-op; locking twice is the same as locking once.
func (p *Page) Lock() {
	if p.Content == "" {
		return
	}
	p.Locked = true
}

// Tear destroys the page: content is cleared and the page is locked for
// good. Tearing fails on an already-torn or empty page. There is no
// transition out of Torn.
func (p *Page) Tear() bool {
	if p.Torn || p.Content == "" {
		return false
	}
	p.Torn = true
	p.Content = ""
	p.Locked = true
	p.LastModified = time.Now().UTC()
	return true
}
