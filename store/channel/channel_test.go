package channel

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/thaongo/openbank-hub/core"
)

type fakeSubscriber struct {
	events []*core.Event
	err    error
}

func (s *fakeSubscriber) Send(event *core.Event) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func newTestRegistry() *registry {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger).(*registry)
}

func TestPublishFanOut(t *testing.T) {
	r := newTestRegistry()

	a := &fakeSubscriber{}
	b := &fakeSubscriber{}
	other := &fakeSubscriber{}

	r.Subscribe("0900000000", a)
	r.Subscribe("0900000000", b)
	r.Subscribe("0911111111", other)

	event := &core.Event{Type: core.EventOtpSent, Phone: "0900000000"}
	r.Publish("0900000000", event)

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Fatalf("fan-out delivered %d/%d events, want 1/1", len(a.events), len(b.events))
	}
	if len(other.events) != 0 {
		t.Fatalf("event leaked to another phone: %d deliveries", len(other.events))
	}
}

func TestSubscribeIdempotent(t *testing.T) {
	r := newTestRegistry()

	a := &fakeSubscriber{}
	r.Subscribe("0900000000", a)
	r.Subscribe("0900000000", a)

	r.Publish("0900000000", &core.Event{Type: core.EventOtpSent, Phone: "0900000000"})

	if len(a.events) != 1 {
		t.Fatalf("duplicate subscription delivered %d events, want 1", len(a.events))
	}
}

func TestUnsubscribe(t *testing.T) {
	r := newTestRegistry()

	a := &fakeSubscriber{}
	b := &fakeSubscriber{}
	r.Subscribe("0900000000", a)
	r.Subscribe("0900000000", b)

	r.Unsubscribe("0900000000", a)
	r.Publish("0900000000", &core.Event{Type: core.EventOtpSent, Phone: "0900000000"})

	if len(a.events) != 0 {
		t.Fatal("unsubscribed connection still receives events")
	}
	if len(b.events) != 1 {
		t.Fatalf("remaining subscriber got %d events, want 1", len(b.events))
	}

	// dropping the last subscriber removes the phone entry entirely
	r.Unsubscribe("0900000000", b)
	if _, ok := r.subscribers["0900000000"]; ok {
		t.Fatal("empty phone entry not removed")
	}

	// publishing to nobody is a no-op
	r.Publish("0900000000", &core.Event{Type: core.EventOtpSent, Phone: "0900000000"})
}

func TestUnsubscribeUnknown(t *testing.T) {
	r := newTestRegistry()
	r.Unsubscribe("0900000000", &fakeSubscriber{})
}

func TestPublishFailureIsolated(t *testing.T) {
	r := newTestRegistry()

	broken := &fakeSubscriber{err: errors.New("connection reset")}
	healthy := &fakeSubscriber{}
	r.Subscribe("0900000000", broken)
	r.Subscribe("0900000000", healthy)

	r.Publish("0900000000", &core.Event{Type: core.EventOtpVerified, Phone: "0900000000"})

	if len(healthy.events) != 1 {
		t.Fatalf("healthy subscriber got %d events, want 1", len(healthy.events))
	}
}
