package model

import (
	"errors"
	"time"
)

var (
	// ErrNoPage means the requested move would leave the 0..49 range.
	ErrNoPage = errors.New("no page in that direction")
	// ErrNoAvailablePage means every page between the cursor and the
	// boundary is torn.
	ErrNoAvailablePage = errors.New("no available page in that direction")
)

// NewNotebook allocates a notebook with its full fixed page run. newID is
// called once per page; callers supply the store's id generator.
func NewNotebook(id, name string, isDefault bool, newID func() string) Notebook {
	now := time.Now().UTC()
	nb := Notebook{
		ID:               id,
		Name:             name,
		Default:          isDefault,
		Pages:            make([]Page, PagesPerNotebook),
		CurrentPageIndex: 0,
		CreatedAt:        now,
	}
	for i := range nb.Pages {
		nb.Pages[i] = Page{
			ID:           newID(),
			PageNumber:   i + 1,
			CreatedAt:    now,
			LastModified: now,
		}
	}
	return nb
}

func (nb *Notebook) CurrentPage() *Page {
	if nb.CurrentPageIndex < 0 || nb.CurrentPageIndex >= len(nb.Pages) {
		return nil
	}
	return &nb.Pages[nb.CurrentPageIndex]
}

// LockCurrentPage applies loss-of-focus semantics: a non-empty page the
// cursor is leaving must never be abandoned unlocked.
func (nb *Notebook) LockCurrentPage() {
	if p := nb.CurrentPage(); p != nil && !p.Torn {
		p.Lock()
	}
}

// MoveToPage locks the outgoing page and moves the cursor. Out-of-range
// indexes are a no-op.
func (nb *Notebook) MoveToPage(index int) bool {
	if index < 0 || index >= len(nb.Pages) {
		return false
	}
	nb.LockCurrentPage()
	nb.CurrentPageIndex = index
	return true
}

// NavigateRelative moves the cursor one step in direction (-1 or +1),
// then keeps stepping in the same direction over torn pages. It fails
// without moving the cursor when the first step leaves the page range
// (ErrNoPage) or when only torn pages remain before the boundary
// (ErrNoAvailablePage).
func (nb *Notebook) NavigateRelative(direction int) error {
	target := nb.CurrentPageIndex + direction
	if target < 0 || target >= len(nb.Pages) {
		return ErrNoPage
	}
	for target >= 0 && target < len(nb.Pages) {
		if !nb.Pages[target].Torn {
			nb.LockCurrentPage()
			nb.CurrentPageIndex = target
			return nil
		}
		target += direction
	}
	return ErrNoAvailablePage
}

// TearCurrent tears the page under the cursor. On success the cursor
// always resets to the lowest-index non-torn page, not the nearest one.
func (nb *Notebook) TearCurrent() bool {
	p := nb.CurrentPage()
	if p == nil || !p.Tear() {
		return false
	}
	for i := range nb.Pages {
		if !nb.Pages[i].Torn {
			nb.CurrentPageIndex = i
			break
		}
	}
	return true
}

// UsedPagesCount counts pages holding content; torn pages never count.
func (nb *Notebook) UsedPagesCount() int {
	n := 0
	for i := range nb.Pages {
		if nb.Pages[i].Content != "" && !nb.Pages[i].Torn {
			n++
		}
	}
	return n
}

func (nb *Notebook) TornPagesCount() int {
	n := 0
	for i := range nb.Pages {
		if nb.Pages[i].Torn {
			n++
		}
	}
	return n
}
