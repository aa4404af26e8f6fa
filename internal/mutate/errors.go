package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyName       = errors.New("notebook name is empty")
	ErrDefaultNotebook = errors.New("the default notebook cannot be deleted")
	ErrPageNotEditable = errors.New("page is locked or torn")
	ErrCannotTear      = errors.New("page cannot be torn")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
