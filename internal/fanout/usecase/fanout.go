package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fanout-srv/internal/fanout"
	"fanout-srv/internal/model"

	"github.com/friendsofgo/errors"
	"github.com/google/uuid"
)

func (uc *implUseCase) CreatePersonalSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	channel := fanout.PersonalChannel(sc.TenantID, sc.UserID)
	channels := []fanout.ChannelKey{channel}

	// A session must not be reported as created if delivery addressing
	// cannot be stored.
	if err := uc.store.StoreUserChannels(ctx, sc.UserID, sc.TenantID, channels); err != nil {
		return fanout.SessionDescriptor{}, errors.Wrap(err, "store user channels")
	}
	if err := uc.store.AddUserToChannel(ctx, channel, sc.UserID, sc.TenantID); err != nil {
		return fanout.SessionDescriptor{}, errors.Wrap(err, "add user to channel")
	}

	return fanout.SessionDescriptor{
		UserID:   sc.UserID,
		TenantID: sc.TenantID,
		Channels: channels,
	}, nil
}

func (uc *implUseCase) CreateAnnouncementSession(ctx context.Context, sc model.Scope) (fanout.SessionDescriptor, error) {
	channels := fanout.AnnouncementChannels(sc.TenantID)

	if err := uc.store.StoreUserChannels(ctx, sc.UserID, sc.TenantID, channels); err != nil {
		return fanout.SessionDescriptor{}, errors.Wrap(err, "store user channels")
	}

	// Best-effort fan-in: one failed channel registration does not roll
	// back the others.
	for _, channel := range channels {
		if err := uc.store.AddUserToChannel(ctx, channel, sc.UserID, sc.TenantID); err != nil {
			uc.logger.Warnf(ctx, "add user %s to channel %s: %v", sc.UserID, channel, err)
		}
	}

	return fanout.SessionDescriptor{
		UserID:   sc.UserID,
		TenantID: sc.TenantID,
		Channels: channels,
	}, nil
}

// admissionAllowedLocked reports whether a new session may be admitted.
// Callers must hold uc.mu.
func (uc *implUseCase) admissionAllowedLocked() error {
	if uc.closed {
		return fanout.ErrShuttingDown
	}
	if uc.wsCfg.MaxConnections > 0 && len(uc.sessions) >= uc.wsCfg.MaxConnections {
		return fanout.ErrMaxConnectionsReached
	}
	return nil
}

func (uc *implUseCase) InitializeConnection(ctx context.Context, w http.ResponseWriter, r *http.Request, desc fanout.SessionDescriptor, initial []fanout.Message) (string, error) {
	if len(desc.Channels) == 0 {
		return "", fanout.ErrInvalidDescriptor
	}

	// Fast-path reject before paying for the upgrade; the authoritative
	// check runs again under the insertion lock below.
	uc.mu.Lock()
	if err := uc.admissionAllowedLocked(); err != nil {
		uc.mu.Unlock()
		return "", err
	}
	uc.mu.Unlock()

	conn, err := uc.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Nothing registered yet, so nothing to clean up.
		return "", errors.Wrap(err, "upgrade")
	}

	// Every session also listens on the process-wide bootstrap channel, so
	// system messages flow through the same registration path as the rest.
	channels := make([]fanout.ChannelKey, 0, len(desc.Channels)+1)
	channels = append(channels, desc.Channels...)
	channels = append(channels, fanout.SystemChannel())
	desc.Channels = channels

	sessionID := desc.UserID + ":" + uuid.NewString()
	sess := newSession(sessionID, desc, conn, uc.wsCfg.PongWait, uc.wsCfg.PingInterval, uc.wsCfg.WriteWait, uc.logger)

	// The cleanup hook is attached before any channel registration, so no
	// code path can leave a registered channel without it.
	sess.onClose = func(id string) {
		uc.Cleanup(context.Background(), id)
	}

	// Initial frames are queued before the session joins the hub, so clients
	// never see a live event ahead of the snapshot.
	for _, msg := range initial {
		frame, err := json.Marshal(msg)
		if err != nil {
			uc.logger.Warnf(ctx, "marshal initial frame for %s: %v", sessionID, err)
			continue
		}
		sess.enqueue(frame)
	}

	// The upgrade ran unlocked, so shutdown or other admissions may have won
	// the race since the fast-path check; re-check before inserting, and
	// register under the same lock so a concurrent Shutdown either rejects
	// the session here or sees it fully registered and closes it.
	uc.mu.Lock()
	if err := uc.admissionAllowedLocked(); err != nil {
		uc.mu.Unlock()
		_ = conn.Close()
		return "", err
	}
	uc.sessions[sessionID] = sess
	for _, channel := range desc.Channels {
		uc.hub.Register(channel.String(), sess)
	}
	uc.mu.Unlock()

	sess.open()
	go uc.heartbeat(sess)

	uc.logger.Infof(ctx, "session %s connected (tenant=%s channels=%d)", sessionID, desc.TenantID, len(desc.Channels))
	return sessionID, nil
}

// heartbeat refreshes the session's distributed membership TTL until the
// session closes. Refresh failures only affect bookkeeping, never delivery.
func (uc *implUseCase) heartbeat(sess *Session) {
	interval := uc.fanoutCfg.HeartbeatInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := uc.store.RefreshUserChannels(context.Background(), sess.userID, sess.tenantID); err != nil {
				uc.logger.Warnf(context.Background(), "refresh membership for session %s: %v", sess.ID(), err)
			}
		case <-sess.done:
			return
		}
	}
}

func (uc *implUseCase) Cleanup(ctx context.Context, sessionID string) {
	uc.mu.Lock()
	sess, ok := uc.sessions[sessionID]
	if !ok {
		// Already cleaned up; calling twice is fine.
		uc.mu.Unlock()
		return
	}
	delete(uc.sessions, sessionID)

	lastForUser := true
	for _, other := range uc.sessions {
		if other.userID == sess.userID && other.tenantID == sess.tenantID {
			lastForUser = false
			break
		}
	}
	uc.mu.Unlock()

	for _, channel := range sess.channels {
		uc.hub.Deregister(channel.String(), sess)
	}

	// Membership is removed only when the user's last local session goes
	// away; otherwise the remaining session keeps refreshing it.
	if lastForUser {
		if err := uc.store.RemoveUserChannels(ctx, sess.userID, sess.tenantID); err != nil {
			uc.logger.Warnf(ctx, "remove user channels for session %s: %v", sessionID, err)
		}
	}

	// closeTransport, not Close: Cleanup is what Close's hook invokes, and
	// re-entering the hook's sync.Once from here would deadlock.
	sess.closeTransport()
	uc.logger.Infof(ctx, "session %s cleaned up", sessionID)
}

func (uc *implUseCase) SendToUser(ctx context.Context, tenantID, userID string, msg fanout.Message) bool {
	channel := fanout.PersonalChannel(tenantID, userID)
	if err := uc.store.Publish(ctx, channel, msg.Normalize()); err != nil {
		// Delivery failures are expected operational events, not
		// exceptional ones.
		uc.logger.Warnf(ctx, "publish to %s failed: %v", channel, err)
		return false
	}
	return true
}

func (uc *implUseCase) SendToChannel(ctx context.Context, channel fanout.ChannelKey, msg fanout.Message) error {
	if err := uc.store.Publish(ctx, channel, msg.Normalize()); err != nil {
		return errors.Wrapf(err, "publish to %s", channel)
	}
	return nil
}

func (uc *implUseCase) Publish(ctx context.Context, input fanout.PublishInput) (bool, error) {
	if input.UserID != "" {
		return uc.SendToUser(ctx, input.TenantID, input.UserID, input.Message), nil
	}

	channel := fanout.ChannelKey{
		Kind:     fanout.ChannelKindAnnouncement,
		TenantID: input.TenantID,
		Topic:    fanout.TopicGeneral,
	}
	if err := uc.SendToChannel(ctx, channel, input.Message); err != nil {
		return false, err
	}
	return true, nil
}

// HandleIncomingMessage runs on the subscriber's listen goroutine; it must
// complete without blocking on I/O and must never panic.
func (uc *implUseCase) HandleIncomingMessage(ctx context.Context, channel string, payload []byte) {
	var msg fanout.Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		uc.logger.Warnf(ctx, "malformed message on %s: %v", channel, err)
		return
	}
	if msg.Event == "" {
		uc.logger.Warnf(ctx, "message on %s has no event name, dropping", channel)
		return
	}

	key, err := fanout.ParseChannel(channel)
	if err != nil {
		uc.logger.Debugf(ctx, "unknown channel pattern %q, dropping", channel)
		return
	}

	frame, err := json.Marshal(msg)
	if err != nil {
		uc.logger.Warnf(ctx, "re-encode message %s: %v", msg.ID, err)
		return
	}

	// The system bootstrap channel needs no special casing: every session
	// registers on it at admission.
	uc.hub.Broadcast(ctx, key.String(), frame)
}

func (uc *implUseCase) GetStats(ctx context.Context) (fanout.HubStats, error) {
	sessions, channels := uc.hub.Stats()
	return fanout.HubStats{
		ActiveSessions: sessions,
		ActiveChannels: channels,
	}, nil
}

// Shutdown closes every open session through the regular cleanup path.
func (uc *implUseCase) Shutdown(ctx context.Context) error {
	uc.mu.Lock()
	uc.closed = true
	open := make([]*Session, 0, len(uc.sessions))
	for _, sess := range uc.sessions {
		open = append(open, sess)
	}
	uc.mu.Unlock()

	for _, sess := range open {
		sess.Close()
	}

	uc.logger.Infof(ctx, "fanout shut down, closed %d sessions", len(open))
	return nil
}
