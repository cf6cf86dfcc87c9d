package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("session not found")
	ErrUnreachable  = errors.New("chat service unreachable")
	ErrInvalid      = errors.New("invalid chat request or response")

	// ErrStaleResponse marks a response that arrived for a session that is no
	// longer open. It is discarded and never reported to callers.
	ErrStaleResponse = errors.New("stale response")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrCredentialNotFound = errors.New("credential not found")
)

type FailureKind string

const (
	FailureNone         FailureKind = ""
	FailureUnauthorized FailureKind = "unauthorized"
	FailureNotFound     FailureKind = "not_found"
	FailureUnreachable  FailureKind = "unreachable"
	FailureInvalid      FailureKind = "invalid"
	FailureUnknown      FailureKind = "unknown"
)

// KindOf classifies err against the remote failure taxonomy.
func KindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrCredentialNotFound):
		return FailureUnauthorized
	case errors.Is(err, ErrNotFound):
		return FailureNotFound
	case errors.Is(err, ErrUnreachable):
		return FailureUnreachable
	case errors.Is(err, ErrInvalid):
		return FailureInvalid
	default:
		return FailureUnknown
	}
}
