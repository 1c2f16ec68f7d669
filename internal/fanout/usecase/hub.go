package usecase

import (
	"context"
	"sync"

	"fanout-srv/pkg/log"
)

// Hub is the per-process registry mapping a channel to the live sessions on
// this process that registered for it. Methods are synchronous so admission
// and cleanup observe registration immediately; the map is guarded for
// multi-goroutine access since broadcasts arrive on the subscriber goroutine.
type Hub struct {
	mu       sync.RWMutex
	channels map[string]map[*Session]struct{}

	logger log.Logger
}

func newHub(logger log.Logger) *Hub {
	return &Hub{
		channels: make(map[string]map[*Session]struct{}),
		logger:   logger,
	}
}

// Register adds the session to the channel's member set, creating the set on
// first use. Re-registration is a no-op.
func (h *Hub) Register(channel string, sess *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[channel]
	if !ok {
		set = make(map[*Session]struct{})
		h.channels[channel] = set
	}
	set[sess] = struct{}{}
}

// Deregister removes the session from the channel's member set and drops the
// set once empty. Absent entries are not an error.
func (h *Hub) Deregister(channel string, sess *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.channels[channel]
	if !ok {
		return
	}
	delete(set, sess)
	if len(set) == 0 {
		delete(h.channels, channel)
	}
}

// Broadcast enqueues the frame for every session registered on the channel.
// A channel with no local sessions is a silent no-op: the message was
// delivered to whichever process actually has listeners.
func (h *Hub) Broadcast(ctx context.Context, channel string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sess := range h.channels[channel] {
		if !sess.enqueue(frame) {
			h.logger.Warnf(ctx, "session %s send buffer full, dropping frame on %s", sess.ID(), channel)
		}
	}
}

// Stats returns the number of distinct sessions and channels currently
// registered on this process.
func (h *Hub) Stats() (sessions, channels int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[*Session]struct{})
	for _, set := range h.channels {
		for sess := range set {
			seen[sess] = struct{}{}
		}
	}
	return len(seen), len(h.channels)
}
