package model

import (
	"errors"
	"fmt"
	"testing"
)

func testNotebook(t *testing.T) Notebook {
	t.Helper()
	n := 0
	nb := NewNotebook("nb-1", "Journal", true, func() string {
		n++
		return fmt.Sprintf("pg-%d", n)
	})
	if len(nb.Pages) != PagesPerNotebook {
		t.Fatalf("expected %d pages; got %d", PagesPerNotebook, len(nb.Pages))
	}
	return nb
}

func TestNewNotebook_AllPagesEmptyCursorAtZero(t *testing.T) {
	nb := testNotebook(t)
	if nb.CurrentPageIndex != 0 {
		t.Fatalf("expected cursor 0; got %d", nb.CurrentPageIndex)
	}
	for i := range nb.Pages {
		if got := nb.Pages[i].State(); got != PageEmpty {
			t.Fatalf("page %d: expected empty; got %s", i, got)
		}
		if nb.Pages[i].PageNumber != i+1 {
			t.Fatalf("page %d: wrong page number %d", i, nb.Pages[i].PageNumber)
		}
	}
}

func TestNotebook_MoveLocksOutgoingPage(t *testing.T) {
	nb := testNotebook(t)
	nb.CurrentPage().UpdateContent("hello")

	if !nb.MoveToPage(1) {
		t.Fatalf("MoveToPage(1) failed")
	}
	if got := nb.Pages[0].State(); got != PageCompleted {
		t.Fatalf("expected page 0 completed after move; got %s", got)
	}
	if nb.Pages[0].UpdateContent("more") {
		t.Fatalf("expected page 0 to reject edits after losing focus")
	}
	if nb.Pages[0].Content != "hello" {
		t.Fatalf("page 0 content changed: %q", nb.Pages[0].Content)
	}

	if nb.MoveToPage(PagesPerNotebook) {
		t.Fatalf("expected out-of-range move to fail")
	}
	if nb.CurrentPageIndex != 1 {
		t.Fatalf("cursor moved on failed MoveToPage: %d", nb.CurrentPageIndex)
	}
}

func TestNotebook_NavigateRelativeBoundaries(t *testing.T) {
	nb := testNotebook(t)

	if err := nb.NavigateRelative(-1); !errors.Is(err, ErrNoPage) {
		t.Fatalf("expected ErrNoPage at index 0; got %v", err)
	}
	if nb.CurrentPageIndex != 0 {
		t.Fatalf("cursor moved on failed navigation: %d", nb.CurrentPageIndex)
	}

	nb.CurrentPageIndex = PagesPerNotebook - 1
	if err := nb.NavigateRelative(+1); !errors.Is(err, ErrNoPage) {
		t.Fatalf("expected ErrNoPage at index 49; got %v", err)
	}
	if nb.CurrentPageIndex != PagesPerNotebook-1 {
		t.Fatalf("cursor moved on failed navigation: %d", nb.CurrentPageIndex)
	}
}

func TestNotebook_NavigateSkipsTornPages(t *testing.T) {
	nb := testNotebook(t)
	for _, i := range []int{1, 2} {
		nb.Pages[i].UpdateContent("x")
		if !nb.Pages[i].Tear() {
			t.Fatalf("tear page %d failed", i)
		}
	}

	if err := nb.NavigateRelative(+1); err != nil {
		t.Fatalf("NavigateRelative(+1): %v", err)
	}
	if nb.CurrentPageIndex != 3 {
		t.Fatalf("expected cursor 3 past torn run; got %d", nb.CurrentPageIndex)
	}

	// All pages behind the cursor torn except 0, which is also torn now:
	// navigating back must skip 2 and 1 and land on 0 ... unless 0 is torn
	// too, in which case the navigation fails in place.
	nb.Pages[0].UpdateContent("x")
	nb.Pages[0].Tear()
	if err := nb.NavigateRelative(-1); !errors.Is(err, ErrNoAvailablePage) {
		t.Fatalf("expected ErrNoAvailablePage; got %v", err)
	}
	if nb.CurrentPageIndex != 3 {
		t.Fatalf("cursor moved on failed navigation: %d", nb.CurrentPageIndex)
	}
}

func TestNotebook_TearCurrentResetsToLowestAvailable(t *testing.T) {
	nb := testNotebook(t)
	nb.MoveToPage(2)
	nb.CurrentPage().UpdateContent("x")

	if !nb.TearCurrent() {
		t.Fatalf("TearCurrent failed")
	}
	if got := nb.Pages[2].State(); got != PageTorn {
		t.Fatalf("expected page 2 torn; got %s", got)
	}
	// Lowest-index policy: cursor goes to page 0 even though page 1 and 3
	// are nearer neighbors of the torn page.
	if nb.CurrentPageIndex != 0 {
		t.Fatalf("expected cursor reset to 0; got %d", nb.CurrentPageIndex)
	}

	if nb.TearCurrent() {
		t.Fatalf("tearing the empty page 0 must fail")
	}
}

func TestNotebook_Counts(t *testing.T) {
	nb := testNotebook(t)
	nb.Pages[0].UpdateContent("a")
	nb.Pages[1].UpdateContent("b")
	nb.Pages[2].UpdateContent("c")
	nb.Pages[2].Tear()

	if got := nb.UsedPagesCount(); got != 2 {
		t.Fatalf("expected 2 used; got %d", got)
	}
	if got := nb.TornPagesCount(); got != 1 {
		t.Fatalf("expected 1 torn; got %d", got)
	}
}
