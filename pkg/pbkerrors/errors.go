// Package pbkerrors provides the invariant-violation error type used by
// internal/pricebook. It carries no wire surface and no HTTP status
// mapping, just a Kind, a Message, and an optional cause, raised with
// panic rather than returned.
package pbkerrors

import (
	"errors"
	"fmt"
)

var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

// Kinds of invariant violation. Each corresponds to a named fatal path in
// the base design: a key-mismatch at an occupied tier-1/2 cell, a reinsert
// failure mid-rehash, bad construction-time parameters discovered lazily
// at address-computation time, and the "massive mid move" policy abort.
const (
	KindKeyMismatch    = "key_mismatch"
	KindRehashFailed   = "rehash_failed"
	KindBadConfig      = "bad_config"
	KindMassiveMidMove = "massive_mid_move"
)

// InvariantError represents a fatal, unrecoverable invariant violation in
// the hashed bucket layout: evidence that address arithmetic has
// disagreed with stored state, or that a caller constructed the book with
// nonsensical parameters. It is always raised via panic; callers that
// want to convert it back into a plain error can recover and use
// errors.As.
type InvariantError struct {
	Kind    string
	Message string
	cause   error
}

var _ error = (*InvariantError)(nil)

func New(kind, message string) *InvariantError {
	return &InvariantError{Kind: kind, Message: message}
}

func Wrap(kind string, cause error) *InvariantError {
	return &InvariantError{Kind: kind, Message: cause.Error(), cause: cause}
}

func (e *InvariantError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("pricebook: %s: %s (%s)", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("pricebook: %s: %s", e.Kind, e.Message)
}

func (e *InvariantError) Unwrap() error { return e.cause }

func (e *InvariantError) Is(target error) bool {
	other, ok := target.(*InvariantError)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// Panic raises an InvariantError of the given kind. It is the single
// entry point every fatal path in internal/pricebook goes through, so a
// recovered panic anywhere in that package can always be type-asserted
// back to *InvariantError.
func Panic(kind, format string, args ...any) {
	panic(New(kind, fmt.Sprintf(format, args...)))
}
