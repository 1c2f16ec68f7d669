package response

const (
	// MessageSuccess is the message for successful responses.
	MessageSuccess = "Success"
	// InternalErrorCode is the error code for unmapped internal errors.
	InternalErrorCode = 500
	// InternalErrorMsg is the message for unmapped internal errors.
	InternalErrorMsg = "Something went wrong"
)
