// Package model defines the domain records and the revert taxonomy shared by contracts,
// repositories and transport.
package model

import "errors"

// Error kinds. Every revert raised by a contract unwraps to exactly one of them.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidState       = errors.New("invalid state")
	ErrNotFound           = errors.New("not found")
	ErrInvalidProofOfWork = errors.New("invalid proof-of-work")
	ErrPaused             = errors.New("paused operation")
)

// RevertError aborts a transaction with a reason string.
type RevertError struct {
	Kind   error
	Reason string
}

// Revert builds a RevertError of the given kind.
func Revert(kind error, reason string) *RevertError {
	return &RevertError{Kind: kind, Reason: reason}
}

func (e *RevertError) Error() string {
	return e.Reason
}

func (e *RevertError) Unwrap() error {
	return e.Kind
}

// Kind returns the taxonomy kind of err, or nil when err is not a revert.
func Kind(err error) error {
	for _, kind := range []error{
		ErrUnauthorized,
		ErrInvalidArgument,
		ErrInvalidState,
		ErrNotFound,
		ErrInvalidProofOfWork,
		ErrPaused,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// KindLabel renders the kind of err as a metrics label.
func KindLabel(err error) string {
	switch Kind(err) {
	case nil:
		if err == nil {
			return "success"
		}
		return "error"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrInvalidArgument:
		return "invalid_argument"
	case ErrInvalidState:
		return "invalid_state"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidProofOfWork:
		return "invalid_pow"
	case ErrPaused:
		return "paused"
	default:
		return "error"
	}
}

// Common reverts.
var (
	ErrZeroAddress = Revert(ErrInvalidArgument, "zero address")
	ErrZeroAmount  = Revert(ErrInvalidArgument, "amount must be positive")
	ErrNotOwner    = Revert(ErrUnauthorized, "caller is not the owner")
	ErrEnforced    = Revert(ErrPaused, "enforced pause")
	ErrNotPaused   = Revert(ErrInvalidState, "expected pause")
)
