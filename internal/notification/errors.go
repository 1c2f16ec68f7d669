package notification

import "errors"

var (
	// ErrStoreUnavailable is returned when the persisted store cannot be read.
	ErrStoreUnavailable = errors.New("notification store unavailable")
)
