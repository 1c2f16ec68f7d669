package fanout

import (
	"context"
	"net/http"

	"fanout-srv/internal/model"
)

// UseCase is the fan-out orchestrator: it admits streaming sessions, exposes
// the producer API and bridges inbound distributed messages to the local hub.
type UseCase interface {
	// Session lifecycle

	// CreatePersonalSession persists membership for the scope's personal
	// channel and returns a descriptor with no transport attached. It fails
	// when membership storage fails: a session must not be reported as
	// created if delivery addressing cannot be stored.
	CreatePersonalSession(ctx context.Context, sc model.Scope) (SessionDescriptor, error)

	// CreateAnnouncementSession is the announcement-set variant. Partial
	// failure on one channel registration is logged but does not roll back
	// the others.
	CreateAnnouncementSession(ctx context.Context, sc model.Scope) (SessionDescriptor, error)

	// InitializeConnection upgrades the HTTP exchange into a streaming
	// session, pushes the initial frames before any live event, registers
	// the session on every descriptor channel and attaches the disconnect
	// handler. Returns the assigned session id.
	InitializeConnection(ctx context.Context, w http.ResponseWriter, r *http.Request, desc SessionDescriptor, initial []Message) (string, error)

	// Cleanup deregisters the session everywhere and removes its distributed
	// membership. Safe to call more than once.
	Cleanup(ctx context.Context, sessionID string)

	// Producer API

	// SendToUser publishes to the user's personal channel. Failures are
	// logged and reported as false, never raised: a notification write can
	// still succeed when live delivery cannot.
	SendToUser(ctx context.Context, tenantID, userID string, msg Message) bool

	// SendToChannel publishes to an explicit channel and propagates failure
	// so the caller can retry.
	SendToChannel(ctx context.Context, channel ChannelKey, msg Message) error

	// Publish routes a producer message: to the user's personal channel when
	// UserID is set, otherwise to the tenant's general announcement channel.
	// The bool mirrors SendToUser's best-effort result.
	Publish(ctx context.Context, input PublishInput) (bool, error)

	// Subscription callback

	// HandleIncomingMessage bridges one distributed message to the local
	// hub. It never returns an error: malformed payloads and unknown channel
	// shapes are logged and dropped.
	HandleIncomingMessage(ctx context.Context, channel string, payload []byte)

	// Observability & lifecycle

	GetStats(ctx context.Context) (HubStats, error)
	Shutdown(ctx context.Context) error
}
