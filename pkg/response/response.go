package response

import (
	"net/http"

	"fanout-srv/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	HttpError(c, errors.NewUnauthorizedHTTPError())
}

// Forbidden sends 403 response.
func Forbidden(c *gin.Context) {
	HttpError(c, errors.NewForbiddenHTTPError())
}

// HttpError sends the response described by the given HTTPError.
func HttpError(c *gin.Context, err *errors.HTTPError) {
	statusCode := err.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	c.JSON(statusCode, Resp{
		ErrorCode: err.Code,
		Message:   err.Message,
	})
}

// Error maps a domain error to its HTTP representation using the handler's
// mapping; unmapped errors become an opaque 500.
func Error(c *gin.Context, err error, mapping ErrorMapping) {
	for domainErr, httpErr := range mapping {
		if domainErr == err {
			HttpError(c, httpErr)
			return
		}
	}
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalErrorCode,
		Message:   InternalErrorMsg,
	})
}

// PanicError reports a recovered panic as an internal error response.
func PanicError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: InternalErrorCode,
		Message:   InternalErrorMsg,
	})
}
