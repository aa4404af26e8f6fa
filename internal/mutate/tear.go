package mutate

import (
	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

type TearResult struct {
	Notebook model.Notebook
	// TornIndex is where the torn page sat; the cursor has already moved
	// to the lowest-index non-torn page.
	TornIndex int
}

// TearCurrentPage tears the current notebook's current page. Tearing an
// empty or already-torn page fails with ErrCannotTear and mutates
// nothing.
func TearCurrentPage(db *store.DB) (TearResult, error) {
	if db == nil {
		return TearResult{}, NotFoundError{Kind: "notebook", ID: ""}
	}
	nb, i, ok := db.CurrentNotebook()
	if !ok {
		return TearResult{}, NotFoundError{Kind: "notebook", ID: db.CurrentNotebookID}
	}

	torn := nb.CurrentPageIndex
	if !nb.TearCurrent() {
		return TearResult{}, ErrCannotTear
	}
	db.ReplaceNotebook(i, nb)
	return TearResult{Notebook: nb, TornIndex: torn}, nil
}
