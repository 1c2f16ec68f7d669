package response

import "fanout-srv/pkg/errors"

// Resp is the JSON envelope every HTTP endpoint replies with.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// ErrorMapping maps domain errors to HTTP errors per handler.
type ErrorMapping map[error]*errors.HTTPError
