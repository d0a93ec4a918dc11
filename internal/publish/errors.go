// errors.go defines the two ways publish and unpublish can fail.
//
// Both carry an HTTP-style status code so transports (HTTP, MCP, CLI JSON
// output) can report them without their own mapping tables.

package publish

import (
	"errors"
	"net/http"
)

// Kind classifies a publish failure.
type Kind int

const (
	// KindConflict means the object is already in the requested state.
	KindConflict Kind = iota + 1
	// KindPersistence means the save failed after the tags were changed.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

// Messages reported on conflict.
const (
	MsgAlreadyPublished   = "Object already published"
	MsgAlreadyUnpublished = "Object already unpublished"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

// Error is returned by Publish and Unpublish.
type Error struct {
	Kind    Kind
	Code    int    // 409 for conflicts, 400 for persistence failures
	Message string // shown to callers verbatim

	err error // underlying save error, if any
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying save error.
func (e *Error) Unwrap() error {
	return e.err
}

// Is matches the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrPersistence:
		return e.Kind == KindPersistence
	}
	return false
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Code: http.StatusConflict, Message: msg}
}

// persistence wraps a save failure. Every save failure collapses to 400;
// the original error stays reachable through Unwrap.
func persistence(err error) *Error {
	return &Error{Kind: KindPersistence, Code: http.StatusBadRequest, Message: err.Error(), err: err}
}

// StatusCode returns the code carried by a publish error anywhere in err's
// chain, or 0 if there is none.
func StatusCode(err error) int {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return 0
}
