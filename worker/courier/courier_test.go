package courier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/thaongo/openbank-hub/core"
)

type fakeWebhook struct {
	mux    sync.Mutex
	events []*core.Event
	err    error
}

func (s *fakeWebhook) Deliver(ctx context.Context, event *core.Event) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

type fakeRegistry struct {
	mux    sync.Mutex
	phones []string
	events []*core.Event
}

func (r *fakeRegistry) Subscribe(phone string, sub core.Subscriber)   {}
func (r *fakeRegistry) Unsubscribe(phone string, sub core.Subscriber) {}

func (r *fakeRegistry) Publish(phone string, event *core.Event) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.phones = append(r.phones, phone)
	r.events = append(r.events, event)
}

func (r *fakeRegistry) count() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.events)
}

func newTestCourier(webhookz core.WebhookService, channels core.ChannelRegistry) *Courier {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(webhookz, channels, logger, Config{QueueSize: 16})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestDispatchDeliversBothLegs(t *testing.T) {
	webhookz := &fakeWebhook{}
	channels := &fakeRegistry{}
	w := newTestCourier(webhookz, channels)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	w.Dispatch(&core.Event{
		Type:    core.EventOtpSent,
		Phone:   "0900000000",
		Bank:    "demoBank",
		Payload: map[string]any{"otp": "123456"},
	})

	waitFor(t, func() bool { return channels.count() == 1 })

	webhookz.mux.Lock()
	defer webhookz.mux.Unlock()
	if len(webhookz.events) != 1 {
		t.Fatalf("webhook got %d events, want 1", len(webhookz.events))
	}

	event := webhookz.events[0]
	if event.ID == "" {
		t.Fatal("event id not assigned")
	}
	if event.Timestamp.IsZero() {
		t.Fatal("event timestamp not assigned")
	}

	channels.mux.Lock()
	defer channels.mux.Unlock()
	if channels.phones[0] != "0900000000" {
		t.Fatalf("published to %q, want the event's phone", channels.phones[0])
	}
}

func TestWebhookFailureStillPublishes(t *testing.T) {
	webhookz := &fakeWebhook{err: errors.New("connection refused")}
	channels := &fakeRegistry{}
	w := newTestCourier(webhookz, channels)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	w.Dispatch(&core.Event{Type: core.EventOtpVerified, Phone: "0900000000", Bank: "demoBank"})

	waitFor(t, func() bool { return channels.count() == 1 })
}

func TestDispatchNeverBlocks(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := New(&fakeWebhook{}, &fakeRegistry{}, logger, Config{QueueSize: 1})

	// no Run loop draining; the second dispatch must drop, not hang
	done := make(chan struct{})
	go func() {
		w.Dispatch(&core.Event{Type: core.EventOtpSent, Phone: "0900000000"})
		w.Dispatch(&core.Event{Type: core.EventOtpSent, Phone: "0900000000"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	w := newTestCourier(&fakeWebhook{}, &fakeRegistry{})

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
