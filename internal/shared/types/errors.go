package types

import "fmt"

// IOError wraps a read/write/permission failure against the backing file.
// Recoverable: the in-memory table is retained and the write is retried on
// the next flush trigger.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("window state %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError marks a corrupt persisted file. Recoverable: the store starts
// empty and the file is overwritten on the next flush.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("window state parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// GeometryError marks a host rejection of a single attribute application
// during restore. Recoverable: the attribute is skipped and restoration
// continues.
type GeometryError struct {
	Label string
	Attr  string
	Err   error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("window %q: apply %s: %v", e.Label, e.Attr, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }
