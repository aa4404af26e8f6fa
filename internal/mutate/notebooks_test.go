package mutate

import (
	"errors"
	"testing"

	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

func TestCreateNotebook_FirstIsDefault(t *testing.T) {
	db := store.NewDB()

	if _, err := CreateNotebook(db, "   "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName; got %v", err)
	}

	res, err := CreateNotebook(db, "  Journal  ")
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if res.Notebook.Name != "Journal" {
		t.Fatalf("name = %q", res.Notebook.Name)
	}
	if !res.Notebook.Default {
		t.Fatalf("first notebook must be the default")
	}
	if len(res.Notebook.Pages) != model.PagesPerNotebook {
		t.Fatalf("expected %d pages; got %d", model.PagesPerNotebook, len(res.Notebook.Pages))
	}
	if db.CurrentNotebookID != res.Notebook.ID {
		t.Fatalf("new notebook must become current")
	}

	second, err := CreateNotebook(db, "Travel")
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if second.Notebook.Default {
		t.Fatalf("only one default notebook may exist")
	}
}

func TestDeleteNotebook_ProtectsDefault(t *testing.T) {
	db := store.NewDB()
	def, _ := CreateNotebook(db, "Journal")
	other, _ := CreateNotebook(db, "Travel")

	if err := DeleteNotebook(db, def.Notebook.ID); !errors.Is(err, ErrDefaultNotebook) {
		t.Fatalf("expected ErrDefaultNotebook; got %v", err)
	}

	// Deleting the current notebook falls back to the first remaining.
	if db.CurrentNotebookID != other.Notebook.ID {
		t.Fatalf("setup: expected Travel current")
	}
	if err := DeleteNotebook(db, other.Notebook.ID); err != nil {
		t.Fatalf("DeleteNotebook: %v", err)
	}
	if db.CurrentNotebookID != def.Notebook.ID {
		t.Fatalf("expected selection fallback to %q; got %q", def.Notebook.ID, db.CurrentNotebookID)
	}

	var nf NotFoundError
	if err := DeleteNotebook(db, "nb-missing"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError; got %v", err)
	}
}

func TestSelectNotebook_LocksOutgoingPage(t *testing.T) {
	db := store.NewDB()
	first, _ := CreateNotebook(db, "Journal")
	second, _ := CreateNotebook(db, "Travel")

	if err := SelectNotebook(db, first.Notebook.ID); err != nil {
		t.Fatalf("SelectNotebook: %v", err)
	}
	if _, err := UpdateCurrentPageContent(db, "hello"); err != nil {
		t.Fatalf("UpdateCurrentPageContent: %v", err)
	}

	if err := SelectNotebook(db, second.Notebook.ID); err != nil {
		t.Fatalf("SelectNotebook: %v", err)
	}

	nb, _, _ := db.FindNotebook(first.Notebook.ID)
	if got := nb.Pages[0].State(); got != model.PageCompleted {
		t.Fatalf("expected outgoing page locked; got %s", got)
	}
}
