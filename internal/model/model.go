package model

import "time"

const (
	// PagesPerNotebook is fixed for the lifetime of a notebook. Pages are
	// allocated once at creation and only ever torn in place, never
	// added or removed.
	PagesPerNotebook = 50

	// MaxPageClusters caps page content, counted in grapheme clusters
	// (user-perceived characters), not bytes or runes.
	MaxPageClusters = 500
)

type PageState string

const (
	PageEmpty     PageState = "empty"
	PageWriting   PageState = "writing"
	PageCompleted PageState = "completed"
	PageTorn      PageState = "torn"
)

type Page struct {
	ID         string `json:"id"`
	PageNumber int    `json:"pageNumber"` // 1..PagesPerNotebook, immutable

	Content string `json:"content,omitempty"`
	Torn    bool   `json:"torn"`
	Locked  bool   `json:"locked"`

	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

type Notebook struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Default bool   `json:"default"`

	Pages            []Page `json:"pages"`
	CurrentPageIndex int    `json:"currentPageIndex"`

	CreatedAt time.Time `json:"createdAt"`
}
