package jwt

import "errors"

var (
	// ErrInvalidToken is returned when the token is missing, malformed or expired.
	ErrInvalidToken = errors.New("jwt: invalid token")
)
