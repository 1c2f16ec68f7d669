package http

import (
	stderrors "errors"
	"net/http"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/notification"
	pkgErrors "fanout-srv/pkg/errors"
)

func newBadRequestError(message string) *pkgErrors.HTTPError {
	return pkgErrors.NewHTTPError(400, message, http.StatusBadRequest)
}

// mapError maps domain errors to their HTTP representation. errors.Is covers
// wrapped store failures.
func (h *Handler) mapError(err error) *pkgErrors.HTTPError {
	switch {
	case stderrors.Is(err, fanout.ErrInvalidToken):
		return pkgErrors.NewUnauthorizedHTTPError()
	case stderrors.Is(err, fanout.ErrTenantMismatch):
		return pkgErrors.NewForbiddenHTTPError()
	case stderrors.Is(err, fanout.ErrMaxConnectionsReached):
		return pkgErrors.NewServiceUnavailableHTTPError("Too many connections")
	case stderrors.Is(err, fanout.ErrShuttingDown):
		return pkgErrors.NewServiceUnavailableHTTPError("Service is shutting down")
	case stderrors.Is(err, notification.ErrStoreUnavailable):
		return pkgErrors.NewServiceUnavailableHTTPError("Notification store unavailable")
	default:
		return pkgErrors.NewServiceUnavailableHTTPError("Delivery unavailable")
	}
}
