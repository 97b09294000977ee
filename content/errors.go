package content

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ZacxDev/folio/schema"
)

// ErrUnknownCollection is returned when validating against a name that was
// never defined.
var ErrUnknownCollection = errors.New("unknown collection")

// DefinitionError reports a malformed collection descriptor. It is fatal at
// startup.
type DefinitionError struct {
	Collection string
	Err        error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("collection %q: %v", e.Collection, e.Err)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// ViolationError reports that one entry failed its collection schema.
type ViolationError struct {
	Collection string
	// Source is the content file the entry was read from, when known.
	Source     string
	Violations schema.Violations
}

func (e *ViolationError) Error() string {
	where := e.Collection
	if e.Source != "" {
		where += " " + e.Source
	}
	return fmt.Sprintf("%s: %v", where, e.Violations)
}

func (e *ViolationError) Unwrap() error { return e.Violations }

// SourceNotFoundError reports a source selector that matched no files.
type SourceNotFoundError struct {
	Collection string
	Source     Source
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("collection %q: source %q matched no files", e.Collection, e.Source)
}
