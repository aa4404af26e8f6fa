package mutate

import (
	"strings"

	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

type CreateNotebookResult struct {
	Notebook model.Notebook
}

// CreateNotebook allocates a full 50-page notebook and makes it current.
// The first notebook in a collection becomes the default; there is never
// more than one default. Callers are responsible for scheduling a save.
func CreateNotebook(db *store.DB, name string) (CreateNotebookResult, error) {
	name = strings.TrimSpace(name)
	if db == nil || name == "" {
		return CreateNotebookResult{}, ErrEmptyName
	}

	_, _, hasDefault := db.DefaultNotebook()
	nb := model.NewNotebook(store.NewID("nb"), name, !hasDefault, func() string {
		return store.NewID("pg")
	})
	db.Notebooks = append(db.Notebooks, nb)
	db.CurrentNotebookID = nb.ID
	return CreateNotebookResult{Notebook: nb}, nil
}

// Bootstrap guarantees a first-run collection holds the default notebook.
// It reports whether anything changed.
func Bootstrap(db *store.DB) bool {
	if db == nil || len(db.Notebooks) > 0 {
		return false
	}
	_, _ = CreateNotebook(db, "Journal")
	return true
}

// DeleteNotebook removes a notebook. The default notebook is protected.
// When the current notebook is deleted, selection falls back to the
// first remaining one.
func DeleteNotebook(db *store.DB, id string) error {
	if db == nil {
		return NotFoundError{Kind: "notebook", ID: id}
	}
	nb, i, ok := db.FindNotebook(id)
	if !ok {
		return NotFoundError{Kind: "notebook", ID: id}
	}
	if nb.Default {
		return ErrDefaultNotebook
	}

	db.Notebooks = append(db.Notebooks[:i], db.Notebooks[i+1:]...)
	if db.CurrentNotebookID == id {
		db.CurrentNotebookID = ""
		if len(db.Notebooks) > 0 {
			db.CurrentNotebookID = db.Notebooks[0].ID
		}
	}
	return nil
}

// SelectNotebook switches the current notebook. The outgoing notebook's
// current page is locked first: switching away is loss of focus.
func SelectNotebook(db *store.DB, id string) error {
	if db == nil {
		return NotFoundError{Kind: "notebook", ID: id}
	}
	if _, _, ok := db.FindNotebook(id); !ok {
		return NotFoundError{Kind: "notebook", ID: id}
	}
	if db.CurrentNotebookID == id {
		return nil
	}

	if out, i, ok := db.CurrentNotebook(); ok {
		out.LockCurrentPage()
		db.ReplaceNotebook(i, out)
	}
	db.CurrentNotebookID = id
	return nil
}
