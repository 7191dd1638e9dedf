// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import "sync"

// Operation constants
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Change is a "something changed" marker, not a diff. Consumers re-fetch.
type Change struct {
	Table string `json:"table"`
	ID    string `json:"id,omitempty"`
	Op    string `json:"op"`
}

// subscriberBuffer bounds each subscriber channel. Slow consumers drop
// events rather than block writers; a dropped marker only delays a re-fetch.
const subscriberBuffer = 16

type subscriber struct {
	ch    chan Change
	table string // "" subscribes to all tables
}

// Hub fans change markers out to subscribers, optionally filtered by table.
type Hub struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers for changes on the given table ("" for all tables).
// The returned cancel func must be called to release the subscription.
func (h *Hub) Subscribe(table string) (<-chan Change, func()) {
	sub := &subscriber{
		ch:    make(chan Change, subscriberBuffer),
		table: table,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[sub]; ok {
			delete(h.subs, sub)
			close(sub.ch)
		}
		h.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish delivers a change marker to every matching subscriber.
// Never blocks: full subscriber buffers drop the event.
func (h *Hub) Publish(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		if sub.table != "" && sub.table != c.Table {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}
