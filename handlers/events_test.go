// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/notify"
)

// streamFor runs the SSE handler until the deadline passes and returns
// everything it wrote. The handler owns the recorder until it returns, so
// reading the body afterwards is safe.
func streamFor(t *testing.T, handler *EventsHandler, path string, d time.Duration, during func()) *httptest.ResponseRecorder {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(d, cancel)
	defer timer.Stop()

	if during != nil {
		time.AfterFunc(d/2, during)
	}

	req := httptest.NewRequest("GET", path, nil).WithContext(ctx)
	w := httptest.NewRecorder()
	handler.Stream(w, req)
	return w
}

func TestEventStream_DeliversChanges(t *testing.T) {
	hub := notify.NewHub()
	handler := NewEventsHandler(hub)

	w := streamFor(t, handler, "/events", 200*time.Millisecond, func() {
		hub.Publish(notify.Change{Table: "elections", ID: "e1", Op: notify.OpInsert})
	})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected event-stream content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatalf("Expected an event frame, got %q", body)
	}
	if !strings.Contains(body, `"elections"`) || !strings.Contains(body, `"e1"`) {
		t.Errorf("Event payload missing change fields: %q", body)
	}
}

func TestEventStream_TableFilter(t *testing.T) {
	hub := notify.NewHub()
	handler := NewEventsHandler(hub)

	w := streamFor(t, handler, "/events?table=votes", 200*time.Millisecond, func() {
		hub.Publish(notify.Change{Table: "elections", ID: "e1", Op: notify.OpUpdate})
		hub.Publish(notify.Change{Table: "votes", ID: "e1", Op: notify.OpInsert})
	})

	body := w.Body.String()
	if strings.Contains(body, `"elections"`) {
		t.Errorf("Filtered stream leaked another table's change: %q", body)
	}
	if !strings.Contains(body, `"votes"`) {
		t.Errorf("Expected the votes change, got %q", body)
	}
}

func TestEventStream_ClosesWithRequest(t *testing.T) {
	hub := notify.NewHub()
	handler := NewEventsHandler(hub)

	done := make(chan struct{})
	go func() {
		streamFor(t, handler, "/events", 50*time.Millisecond, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stream did not stop when the request context was cancelled")
	}
}
