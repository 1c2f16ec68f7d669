package fanout

import "errors"

var (
	// ErrUnknownChannel is returned when a channel string matches neither
	// known shape.
	ErrUnknownChannel = errors.New("unknown channel pattern")

	// ErrTenantMismatch is returned when the authenticated tenant differs
	// from the requested tenant at connection admission.
	ErrTenantMismatch = errors.New("authenticated tenant does not match requested tenant")

	// ErrInvalidToken is returned when the admission token is invalid.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidDescriptor is returned when a session descriptor carries no channels.
	ErrInvalidDescriptor = errors.New("session descriptor has no channels")

	// ErrMaxConnectionsReached is returned when the per-process connection
	// limit is hit at admission.
	ErrMaxConnectionsReached = errors.New("maximum connections reached")

	// ErrShuttingDown is returned for admissions that arrive during shutdown.
	ErrShuttingDown = errors.New("service is shutting down")
)
