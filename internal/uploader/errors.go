package uploader

import (
	"errors"
	"fmt"
)

// ErrAmbiguous is matched by every ambiguity failure: more than one remote
// entry shares a name under the same parent.
var ErrAmbiguous = errors.New("ambiguous match")

// EntryKind names the kind of remote entry a lookup was for.
type EntryKind string

const (
	EntryFolder EntryKind = "folder"
	EntryFile   EntryKind = "file"
)

// AmbiguityError reports a name that matched more than one remote entry.
type AmbiguityError struct {
	Kind     EntryKind
	Name     string
	ParentID string
	Count    int
}

var _ error = (*AmbiguityError)(nil)

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("more than one entry matches the %s name %q in %s (%d matches)",
		e.Kind, e.Name, e.ParentID, e.Count)
}

// Unwrap makes errors.Is(err, ErrAmbiguous) true.
func (e *AmbiguityError) Unwrap() error {
	return ErrAmbiguous
}

func newAmbiguityError(kind EntryKind, name, parentID string, count int) error {
	return &AmbiguityError{Kind: kind, Name: name, ParentID: parentID, Count: count}
}
