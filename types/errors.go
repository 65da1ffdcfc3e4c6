package types

import "fmt"

// ValidationError reports the first constraint violation found while
// validating a document against its schema. Field is the dotted path of
// the offending field (e.g. "urls.regular", "tags.0.title").
// Caller-correctable; never retried internally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field %q: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation that targeted an absent document.
type NotFoundError struct {
	Collection string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: document not found: %s", e.Collection, e.ID)
}

// DuplicateKeyError reports an identifier collision on insert. With
// generated identifiers this is effectively unreachable, but a caller
// supplying its own identifier can hit it; the existing document is
// never silently overwritten.
type DuplicateKeyError struct {
	Collection string
	ID         string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s: duplicate key: %s", e.Collection, e.ID)
}

// DuplicateSchemaError reports a second schema definition under an
// already registered name.
type DuplicateSchemaError struct {
	Name string
}

func (e *DuplicateSchemaError) Error() string {
	return fmt.Sprintf("schema already defined: %s", e.Name)
}
