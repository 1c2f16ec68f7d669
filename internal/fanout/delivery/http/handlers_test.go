package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/model"
	"fanout-srv/internal/notification"
	"fanout-srv/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// handlerLogger implements log.Logger for testing
type handlerLogger struct{}

func (m *handlerLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *handlerLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *handlerLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *handlerLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *handlerLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *handlerLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *handlerLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *handlerLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *handlerLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *handlerLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// mockUseCase records calls without touching any transport.
type mockUseCase struct {
	createCalled  bool
	createErr     error
	publishInput  fanout.PublishInput
	publishResult bool
	publishErr    error
}

func (m *mockUseCase) CreatePersonalSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	m.createCalled = true
	if m.createErr != nil {
		return fanout.SessionDescriptor{}, m.createErr
	}
	return fanout.SessionDescriptor{
		UserID:   sc.UserID,
		TenantID: sc.TenantID,
		Channels: []fanout.ChannelKey{fanout.PersonalChannel(sc.TenantID, sc.UserID)},
	}, nil
}

func (m *mockUseCase) CreateAnnouncementSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	m.createCalled = true
	if m.createErr != nil {
		return fanout.SessionDescriptor{}, m.createErr
	}
	return fanout.SessionDescriptor{
		UserID:   sc.UserID,
		TenantID: sc.TenantID,
		Channels: fanout.AnnouncementChannels(sc.TenantID),
	}, nil
}

func (m *mockUseCase) InitializeConnection(ctx context.Context, w http.ResponseWriter, r *http.Request, desc fanout.SessionDescriptor, initial []fanout.Message) (string, error) {
	return "", errors.New("no transport in tests")
}

func (m *mockUseCase) Cleanup(ctx context.Context, sessionID string) {}

func (m *mockUseCase) SendToUser(ctx context.Context, tenantID, userID string, msg fanout.Message) bool {
	return m.publishResult
}

func (m *mockUseCase) SendToChannel(ctx context.Context, channel fanout.ChannelKey, msg fanout.Message) error {
	return m.publishErr
}

func (m *mockUseCase) Publish(ctx context.Context, input fanout.PublishInput) (bool, error) {
	m.publishInput = input
	return m.publishResult, m.publishErr
}

func (m *mockUseCase) HandleIncomingMessage(ctx context.Context, channel string, payload []byte) {}

func (m *mockUseCase) GetStats(ctx context.Context) (fanout.HubStats, error) {
	return fanout.HubStats{}, nil
}

func (m *mockUseCase) Shutdown(ctx context.Context) error { return nil }

// mockNotifUC returns an empty pending page.
type mockNotifUC struct{}

func (m *mockNotifUC) ListPending(ctx context.Context, sc model.Scope, input notification.ListPendingInput) (notification.ListPendingOutput, error) {
	return notification.ListPendingOutput{}, nil
}

func setupRouter(uc *mockUseCase, internalKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(uc, &mockNotifUC{}, jwt.New(testSecret), &handlerLogger{}, internalKey, 20)

	router := gin.New()
	api := router.Group("/api/v1")
	h.RegisterRoutes(api)
	internal := router.Group("/internal/v1")
	h.RegisterInternalRoutes(internal)
	return router
}

func signToken(t *testing.T, userID, tenantID string) string {
	t.Helper()
	token, err := jwt.New(testSecret).CreateToken(jwt.Payload{
		UserID:   userID,
		TenantID: tenantID,
	})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return token
}

func TestStreamAdmissionRejectsMissingToken(t *testing.T) {
	uc := &mockUseCase{}
	router := setupRouter(uc, "key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tenants/acme/notifications/ws", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if uc.createCalled {
		t.Error("no session should be created for an unauthenticated request")
	}
}

func TestStreamAdmissionRejectsBadToken(t *testing.T) {
	uc := &mockUseCase{}
	router := setupRouter(uc, "key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tenants/acme/notifications/ws?token=not-a-jwt", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestStreamAdmissionRejectsTenantMismatch(t *testing.T) {
	uc := &mockUseCase{}
	router := setupRouter(uc, "key")

	token := signToken(t, "u1", "tenant-a")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tenants/tenant-b/notifications/ws?token="+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
	if uc.createCalled {
		t.Error("tenant mismatch must be rejected before any session work")
	}
}

func TestStreamAdmissionAcceptsBearerHeader(t *testing.T) {
	uc := &mockUseCase{createErr: errors.New("stop before upgrade")}
	router := setupRouter(uc, "key")

	token := signToken(t, "u1", "acme")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/v1/tenants/acme/announcements/ws", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if !uc.createCalled {
		t.Error("authenticated request should reach session creation")
	}
	if w.Code == http.StatusUnauthorized || w.Code == http.StatusForbidden {
		t.Errorf("valid token rejected with %d", w.Code)
	}
}

func TestPublishRejectsWrongInternalKey(t *testing.T) {
	uc := &mockUseCase{publishResult: true}
	router := setupRouter(uc, "right-key")

	body := []byte(`{"tenant_id":"acme","event":"notification.created"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal/v1/publish", bytes.NewReader(body))
	req.Header.Set(internalKeyHeader, "wrong-key")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestPublishRejectsMissingFields(t *testing.T) {
	uc := &mockUseCase{publishResult: true}
	router := setupRouter(uc, "key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal/v1/publish", bytes.NewReader([]byte(`{"tenant_id":"acme"}`)))
	req.Header.Set(internalKeyHeader, "key")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing event, got %d", w.Code)
	}
}

func TestPublishRejectsReservedTenant(t *testing.T) {
	uc := &mockUseCase{publishResult: true}
	router := setupRouter(uc, "key")

	body := []byte(`{"tenant_id":"system","event":"announcement.created"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal/v1/publish", bytes.NewReader(body))
	req.Header.Set(internalKeyHeader, "key")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for reserved tenant, got %d", w.Code)
	}
}

func TestPublishRoutesToUseCase(t *testing.T) {
	uc := &mockUseCase{publishResult: true}
	router := setupRouter(uc, "key")

	body := []byte(`{"tenant_id":"acme","user_id":"u1","event":"notification.created","data":{"title":"hi"}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/internal/v1/publish", bytes.NewReader(body))
	req.Header.Set(internalKeyHeader, "key")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if uc.publishInput.TenantID != "acme" || uc.publishInput.UserID != "u1" {
		t.Errorf("unexpected publish input: %+v", uc.publishInput)
	}
	if uc.publishInput.Message.Event != "notification.created" {
		t.Errorf("unexpected event %q", uc.publishInput.Message.Event)
	}

	var resp struct {
		Data struct {
			Delivered bool `json:"delivered"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Data.Delivered {
		t.Error("expected delivered=true")
	}
}
