package store

import "fmt"

// ErrorKind is the closed set of failure categories a repository operation
// can return, matching the outcome taxonomy the whole core shares.
type ErrorKind string

const (
	KindConfigMissing   ErrorKind = "config_missing"
	KindParseError      ErrorKind = "parse_error"
	KindValidationError ErrorKind = "validation_error"
	KindLockTimeout     ErrorKind = "lock_timeout"
	KindNotFound        ErrorKind = "not_found"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindInternal        ErrorKind = "internal_error"
	KindAuthError       ErrorKind = "auth_error"
	KindNetworkError    ErrorKind = "network_error"
	KindRateLimit       ErrorKind = "rate_limit"
)

// NewError constructs an Error of the given kind. Exported for use by
// packages outside store (e.g. the importer's OAuth/network failures)
// that need to surface one of the shared error kinds.
func NewError(kind ErrorKind, op, path string, err error) *Error {
	return newErr(kind, op, path, err)
}

// Error is the typed outcome every fallible core operation returns on
// failure. Kind is stable and machine-readable; Err carries the underlying
// cause for %w-unwrapping and logging.
type Error struct {
	Kind ErrorKind
	Op   string // e.g. "store.Read", "store.Write"
	Path string // document path or field path, when applicable
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s): %v", e.Op, e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind ErrorKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
