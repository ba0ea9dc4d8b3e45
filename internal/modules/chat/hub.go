package chat

import (
	"sync"

	"pawcare/internal/domain"
)

// subscriptionBuffer is the per-subscriber channel depth. A subscriber
// that falls this far behind is evicted so it can never block a sender.
const subscriptionBuffer = 64

// Hub fans appended messages out to live subscribers, keyed by scope.
// Publish happens after the durable append; the hub itself holds no
// message state.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscription is one live feed over a single scope. Cancel detaches it
// without touching the log or other subscribers.
type Subscription struct {
	scope Scope
	ch    chan *domain.Message
	hub   *Hub
	once  sync.Once
}

// Messages delivers appended messages in publish order. The channel is
// closed on Cancel or eviction.
func (s *Subscription) Messages() <-chan *domain.Message {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.hub.detach(s)
}

func (h *Hub) Subscribe(scope Scope) *Subscription {
	sub := &Subscription{
		scope: scope,
		ch:    make(chan *domain.Message, subscriptionBuffer),
		hub:   h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	key := scope.Key()
	if h.subs[key] == nil {
		h.subs[key] = make(map[*Subscription]struct{})
	}
	h.subs[key][sub] = struct{}{}

	return sub
}

// Publish delivers msg to every live subscriber of the scope. Slow
// subscribers are evicted instead of ever blocking the caller.
func (h *Hub) Publish(scope Scope, msg *domain.Message) {
	h.mu.RLock()
	var slow []*Subscription
	for sub := range h.subs[scope.Key()] {
		select {
		case sub.ch <- msg:
		default:
			slow = append(slow, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range slow {
		h.detach(sub)
	}
}

// SubscriberCount reports live subscribers for a scope.
func (h *Hub) SubscriberCount(scope Scope) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[scope.Key()])
}

func (h *Hub) detach(sub *Subscription) {
	h.mu.Lock()
	key := sub.scope.Key()
	if set, ok := h.subs[key]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, key)
		}
	}
	h.mu.Unlock()

	sub.once.Do(func() { close(sub.ch) })
}

// Close tears down every subscription, e.g. on server shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*Subscription
	for _, set := range h.subs {
		for sub := range set {
			all = append(all, sub)
		}
	}
	h.subs = make(map[string]map[*Subscription]struct{})
	h.mu.Unlock()

	for _, sub := range all {
		sub.once.Do(func() { close(sub.ch) })
	}
}
