// Package notify fans freshly created notifications out to the live
// connections of their recipients.
package notify

import (
	"sync"

	"github.com/google/uuid"

	"blogsphere/internal/model"
)

const subscriberBuffer = 16

// Hub routes notifications to per-user subscribers. A slow subscriber loses
// notifications instead of blocking the publisher; they remain listable over REST.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan model.Notification]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[chan model.Notification]struct{})}
}

// Subscribe registers a listener for userID. The returned cancel func closes
// the channel and must be called exactly once.
func (h *Hub) Subscribe(userID uuid.UUID) (<-chan model.Notification, func()) {
	ch := make(chan model.Notification, subscriberBuffer)

	h.mu.Lock()
	set, ok := h.subs[userID]
	if !ok {
		set = make(map[chan model.Notification]struct{})
		h.subs[userID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers n to every subscriber of its recipient and reports how many
// subscribers received it.
func (h *Hub) Publish(n model.Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subs[n.RecipientID] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers returns the number of open subscriptions for userID.
func (h *Hub) Subscribers(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
