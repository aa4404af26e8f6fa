package mutate

import (
	"github.com/rivo/uniseg"

	"quire-cli/internal/model"
	"quire-cli/internal/store"
)

type UpdateContentResult struct {
	Notebook model.Notebook
	Page     model.Page
}

// UpdateCurrentPageContent writes text into the current notebook's
// current page. This is the non-interactive channel: over-long content
// is truncated to the cluster ceiling rather than rejected (the
// interactive edit controller rejects instead). Fails when the page is
// locked or torn.
func UpdateCurrentPageContent(db *store.DB, text string) (UpdateContentResult, error) {
	if db == nil {
		return UpdateContentResult{}, NotFoundError{Kind: "notebook", ID: ""}
	}
	nb, i, ok := db.CurrentNotebook()
	if !ok {
		return UpdateContentResult{}, NotFoundError{Kind: "notebook", ID: db.CurrentNotebookID}
	}
	p := nb.CurrentPage()
	if p == nil {
		return UpdateContentResult{}, NotFoundError{Kind: "page", ID: ""}
	}

	if !p.UpdateContent(TruncateClusters(text, model.MaxPageClusters)) {
		return UpdateContentResult{}, ErrPageNotEditable
	}
	db.ReplaceNotebook(i, nb)
	return UpdateContentResult{Notebook: nb, Page: *p}, nil
}

// TruncateClusters cuts s down to at most max grapheme clusters without
// splitting a cluster.
func TruncateClusters(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	gr := uniseg.NewGraphemes(s)
	n := 0
	end := 0
	for gr.Next() {
		n++
		_, end = gr.Positions()
		if n == max {
			break
		}
	}
	return s[:end]
}
