package mutate

import (
	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

type NavigateResult struct {
	Notebook model.Notebook
	Page     model.Page
}

// Navigate moves the current notebook's cursor one page in direction
// (-1 or +1), skipping torn pages. Model-level navigation errors
// (model.ErrNoPage, model.ErrNoAvailablePage) pass through untouched so
// hosts can phrase them distinctly.
func Navigate(db *store.DB, direction int) (NavigateResult, error) {
	if db == nil {
		return NavigateResult{}, NotFoundError{Kind: "notebook", ID: ""}
	}
	nb, i, ok := db.CurrentNotebook()
	if !ok {
		return NavigateResult{}, NotFoundError{Kind: "notebook", ID: db.CurrentNotebookID}
	}

	if err := nb.NavigateRelative(direction); err != nil {
		return NavigateResult{}, err
	}
	db.ReplaceNotebook(i, nb)
	return NavigateResult{Notebook: nb, Page: *nb.CurrentPage()}, nil
}

// MoveToPage jumps the cursor to an absolute page index, locking the
// outgoing page.
func MoveToPage(db *store.DB, index int) (NavigateResult, error) {
	if db == nil {
		return NavigateResult{}, NotFoundError{Kind: "notebook", ID: ""}
	}
	nb, i, ok := db.CurrentNotebook()
	if !ok {
		return NavigateResult{}, NotFoundError{Kind: "notebook", ID: db.CurrentNotebookID}
	}
	if !nb.MoveToPage(index) {
		return NavigateResult{}, model.ErrNoPage
	}
	db.ReplaceNotebook(i, nb)
	return NavigateResult{Notebook: nb, Page: *nb.CurrentPage()}, nil
}
