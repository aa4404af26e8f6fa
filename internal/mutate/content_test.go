package mutate

import (
	"errors"
	"strings"
	"testing"

	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

func TestUpdateCurrentPageContent_WriteNavigateBack(t *testing.T) {
	db := store.NewDB()
	Bootstrap(db)

	if _, err := UpdateCurrentPageContent(db, "hello"); err != nil {
		t.Fatalf("UpdateCurrentPageContent: %v", err)
	}
	if _, err := Navigate(db, +1); err != nil {
		t.Fatalf("Navigate(+1): %v", err)
	}
	if _, err := Navigate(db, -1); err != nil {
		t.Fatalf("Navigate(-1): %v", err)
	}

	nb, _, _ := db.CurrentNotebook()
	p := nb.CurrentPage()
	if p.State() != model.PageCompleted || p.Content != "hello" {
		t.Fatalf("expected completed page with hello; got %s %q", p.State(), p.Content)
	}
	if _, err := UpdateCurrentPageContent(db, "more"); !errors.Is(err, ErrPageNotEditable) {
		t.Fatalf("expected ErrPageNotEditable; got %v", err)
	}
	nb, _, _ = db.CurrentNotebook()
	if nb.CurrentPage().Content != "hello" {
		t.Fatalf("locked content changed")
	}
}

func TestUpdateCurrentPageContent_TruncatesNonInteractiveInput(t *testing.T) {
	db := store.NewDB()
	Bootstrap(db)

	res, err := UpdateCurrentPageContent(db, strings.Repeat("a", model.MaxPageClusters+40))
	if err != nil {
		t.Fatalf("UpdateCurrentPageContent: %v", err)
	}
	if got := model.ClusterCount(res.Page.Content); got != model.MaxPageClusters {
		t.Fatalf("expected truncation to %d clusters; got %d", model.MaxPageClusters, got)
	}
}

func TestTruncateClusters_NeverSplitsACluster(t *testing.T) {
	// Decomposed "e"+acute repeated: each pair is one visible character.
	s := strings.Repeat("é", 5)
	got := TruncateClusters(s, 3)
	if got != strings.Repeat("é", 3) {
		t.Fatalf("truncation split a cluster: %q", got)
	}
	if TruncateClusters("abc", 10) != "abc" {
		t.Fatalf("short input must pass through")
	}
	if TruncateClusters("abc", 0) != "" {
		t.Fatalf("zero limit must yield empty")
	}
}

func TestTearCurrentPage_ClearsAndRelocatesCursor(t *testing.T) {
	db := store.NewDB()
	Bootstrap(db)

	if _, err := MoveToPage(db, 2); err != nil {
		t.Fatalf("MoveToPage: %v", err)
	}
	if _, err := UpdateCurrentPageContent(db, "x"); err != nil {
		t.Fatalf("UpdateCurrentPageContent: %v", err)
	}

	res, err := TearCurrentPage(db)
	if err != nil {
		t.Fatalf("TearCurrentPage: %v", err)
	}
	if res.TornIndex != 2 {
		t.Fatalf("torn index = %d; want 2", res.TornIndex)
	}

	nb, _, _ := db.CurrentNotebook()
	if got := nb.Pages[2].State(); got != model.PageTorn {
		t.Fatalf("expected torn; got %s", got)
	}
	if nb.Pages[2].Content != "" {
		t.Fatalf("torn page kept content %q", nb.Pages[2].Content)
	}
	if nb.CurrentPageIndex != 0 {
		t.Fatalf("cursor = %d; want lowest-index available page 0", nb.CurrentPageIndex)
	}

	if _, err := TearCurrentPage(db); !errors.Is(err, ErrCannotTear) {
		t.Fatalf("expected ErrCannotTear on empty page; got %v", err)
	}
}

func TestNavigate_BoundsAndTornSkip(t *testing.T) {
	db := store.NewDB()
	Bootstrap(db)

	if _, err := Navigate(db, -1); !errors.Is(err, model.ErrNoPage) {
		t.Fatalf("expected ErrNoPage; got %v", err)
	}

	// Tear page 1 so forward navigation from 0 skips to 2.
	MoveToPage(db, 1)
	UpdateCurrentPageContent(db, "x")
	TearCurrentPage(db)

	res, err := Navigate(db, +1)
	if err != nil {
		t.Fatalf("Navigate(+1): %v", err)
	}
	if res.Notebook.CurrentPageIndex != 2 {
		t.Fatalf("cursor = %d; want 2", res.Notebook.CurrentPageIndex)
	}
}
