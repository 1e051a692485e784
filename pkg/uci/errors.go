package uci

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the failure classes of the engine. Callers check
// them with [errors.Is]; most returned errors carry additional context
// on top of one of these.
var (
	// ErrInvalid indicates a malformed call: an empty name, a bad
	// path, or an argument that violates a structural invariant.
	ErrInvalid = errors.New("invalid argument")

	// ErrNotFound indicates an unresolved lookup, an unload of an
	// absent package, or a missing backing store.
	ErrNotFound = errors.New("not found")

	// ErrIO indicates a read or write failure on a backing stream.
	ErrIO = errors.New("i/o error")

	// ErrParse indicates malformed configuration text. Errors of this
	// class unwrap to a [*ParseError] carrying diagnostics.
	ErrParse = errors.New("parse error")

	// ErrTypeMismatch indicates an element conversion to the wrong
	// concrete type.
	ErrTypeMismatch = errors.New("element type mismatch")

	// ErrUnknown indicates an internal invariant violation.
	ErrUnknown = errors.New("unknown error")
)

// ParseError describes a lexical or grammar violation in configuration
// text. Line is 1-based; Byte is the 0-based offset within the line
// where the offending token starts.
type ParseError struct {
	// Name is the package name the parser was building.
	Name string

	Line   int
	Byte   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s at line %d, byte %d", e.Name, e.Reason, e.Line, e.Byte)
}

// Unwrap makes errors.Is(err, ErrParse) hold for every ParseError.
func (e *ParseError) Unwrap() error {
	return ErrParse
}
