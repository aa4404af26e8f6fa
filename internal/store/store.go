package store

import (
	"os"
	"path/filepath"

	"quire-cli/internal/model"
)

// DB is the whole persisted document: every notebook plus the selection
// pointer. Callers mutate notebooks by index and write the modified value
// back; the slice in DB is the only authoritative copy.
type DB struct {
	Version           int              `json:"version"`
	CurrentNotebookID string           `json:"currentNotebookId,omitempty"`
	Notebooks         []model.Notebook `json:"notebooks"`
}

func NewDB() *DB {
	return &DB{Version: 1, Notebooks: []model.Notebook{}}
}

// FindNotebook returns a copy of the notebook and its index. The copy is
// safe to mutate; commit it back with ReplaceNotebook.
func (db *DB) FindNotebook(id string) (model.Notebook, int, bool) {
	for i := range db.Notebooks {
		if db.Notebooks[i].ID == id {
			return cloneNotebook(db.Notebooks[i]), i, true
		}
	}
	return model.Notebook{}, -1, false
}

func (db *DB) ReplaceNotebook(i int, nb model.Notebook) {
	if i < 0 || i >= len(db.Notebooks) {
		return
	}
	db.Notebooks[i] = nb
}

func (db *DB) CurrentNotebook() (model.Notebook, int, bool) {
	return db.FindNotebook(db.CurrentNotebookID)
}

func (db *DB) DefaultNotebook() (model.Notebook, int, bool) {
	for i := range db.Notebooks {
		if db.Notebooks[i].Default {
			return cloneNotebook(db.Notebooks[i]), i, true
		}
	}
	return model.Notebook{}, -1, false
}

// Clone deep-copies the document. Saves run off the mutation thread on a
// snapshot taken at schedule time, so they must not share page slices
// with the live DB.
func (db *DB) Clone() *DB {
	out := &DB{
		Version:           db.Version,
		CurrentNotebookID: db.CurrentNotebookID,
		Notebooks:         make([]model.Notebook, len(db.Notebooks)),
	}
	for i := range db.Notebooks {
		out.Notebooks[i] = cloneNotebook(db.Notebooks[i])
	}
	return out
}

func cloneNotebook(nb model.Notebook) model.Notebook {
	nb.Pages = append([]model.Page(nil), nb.Pages...)
	return nb
}

// Store is a handle to one data directory.
type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .quire dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".quire")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".quire"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}
