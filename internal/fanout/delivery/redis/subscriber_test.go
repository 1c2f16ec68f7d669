package redis

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/fanout/repository"
	"fanout-srv/internal/model"
)

// subLogger implements log.Logger for testing
type subLogger struct{}

func (m *subLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *subLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *subLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *subLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *subLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *subLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *subLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *subLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *subLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *subLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// recordingUseCase records inbound bridge calls.
type recordingUseCase struct {
	received []string
}

func (r *recordingUseCase) CreatePersonalSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	return fanout.SessionDescriptor{}, nil
}
func (r *recordingUseCase) CreateAnnouncementSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	return fanout.SessionDescriptor{}, nil
}
func (r *recordingUseCase) InitializeConnection(ctx context.Context, w http.ResponseWriter, req *http.Request, desc fanout.SessionDescriptor, initial []fanout.Message) (string, error) {
	return "", nil
}
func (r *recordingUseCase) Cleanup(ctx context.Context, sessionID string) {}
func (r *recordingUseCase) SendToUser(ctx context.Context, tenantID, userID string, msg fanout.Message) bool {
	return true
}
func (r *recordingUseCase) SendToChannel(ctx context.Context, channel fanout.ChannelKey, msg fanout.Message) error {
	return nil
}
func (r *recordingUseCase) Publish(ctx context.Context, input fanout.PublishInput) (bool, error) {
	return true, nil
}
func (r *recordingUseCase) HandleIncomingMessage(ctx context.Context, channel string, payload []byte) {
	r.received = append(r.received, channel)
}
func (r *recordingUseCase) GetStats(ctx context.Context) (fanout.HubStats, error) {
	return fanout.HubStats{}, nil
}
func (r *recordingUseCase) Shutdown(ctx context.Context) error { return nil }

// stubStore captures subscription requests and exposes their handlers.
type stubStore struct {
	repository.ChannelStore

	patternErr error
	exactErr   error

	patterns       []string
	exactChannels  []string
	patternHandler repository.MessageHandler
	exactHandler   repository.MessageHandler

	closed int
}

type stubSubscription struct{ store *stubStore }

func (s stubSubscription) Close(ctx context.Context) error {
	s.store.closed++
	return nil
}

func (s *stubStore) Subscribe(ctx context.Context, patterns []string, handler repository.MessageHandler) (repository.Subscription, error) {
	if s.patternErr != nil {
		return nil, s.patternErr
	}
	s.patterns = patterns
	s.patternHandler = handler
	return stubSubscription{store: s}, nil
}

func (s *stubStore) SubscribeChannels(ctx context.Context, channels []string, handler repository.MessageHandler) (repository.Subscription, error) {
	if s.exactErr != nil {
		return nil, s.exactErr
	}
	s.exactChannels = channels
	s.exactHandler = handler
	return stubSubscription{store: s}, nil
}

func TestStartSubscribesPatternsAndSystemChannel(t *testing.T) {
	store := &stubStore{}
	uc := &recordingUseCase{}
	sub := New(store, uc, &subLogger{})

	if err := sub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if len(store.patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %v", store.patterns)
	}
	if len(store.exactChannels) != 1 || store.exactChannels[0] != "announcements:system:general" {
		t.Errorf("expected system channel subscription, got %v", store.exactChannels)
	}
}

func TestPatternHandlerBridgesToUseCase(t *testing.T) {
	store := &stubStore{}
	uc := &recordingUseCase{}
	sub := New(store, uc, &subLogger{})
	if err := sub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	store.patternHandler("notifications:acme:user:u1", []byte(`{"event":"x"}`))

	if len(uc.received) != 1 || uc.received[0] != "notifications:acme:user:u1" {
		t.Errorf("expected bridge call for personal channel, got %v", uc.received)
	}
}

func TestPatternHandlerDropsSystemChannelDuplicate(t *testing.T) {
	store := &stubStore{}
	uc := &recordingUseCase{}
	sub := New(store, uc, &subLogger{})
	if err := sub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// announcements:* also matches the system channel, which has a dedicated
	// subscription; only that one may bridge the message.
	store.patternHandler("announcements:system:general", []byte(`{"event":"x"}`))
	if len(uc.received) != 0 {
		t.Errorf("pattern handler must drop system channel messages, got %v", uc.received)
	}

	store.exactHandler("announcements:system:general", []byte(`{"event":"x"}`))
	if len(uc.received) != 1 {
		t.Errorf("system handler should bridge exactly once, got %v", uc.received)
	}
}

func TestStartFailsWhenPatternSubscriptionFails(t *testing.T) {
	store := &stubStore{patternErr: errors.New("connection refused")}
	sub := New(store, &recordingUseCase{}, &subLogger{})

	if err := sub.Start(); err == nil {
		t.Error("expected error when the pattern subscription fails")
	}
}

func TestStartToleratesSystemSubscriptionFailure(t *testing.T) {
	store := &stubStore{exactErr: errors.New("connection refused")}
	sub := New(store, &recordingUseCase{}, &subLogger{})

	// System broadcasts degrade; everything else keeps working.
	if err := sub.Start(); err != nil {
		t.Errorf("system subscription failure must not be fatal: %v", err)
	}
}

func TestShutdownClosesSubscriptions(t *testing.T) {
	store := &stubStore{}
	sub := New(store, &recordingUseCase{}, &subLogger{})
	if err := sub.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if err := sub.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if store.closed != 2 {
		t.Errorf("expected both subscriptions closed, got %d", store.closed)
	}
}
