package core

import (
	"context"
	"time"
)

type EventType string

const (
	EventWsConnected EventType = "ws_connected"
	EventOtpSent     EventType = "otp_sent"
	EventOtpFailed   EventType = "otp_failed"
	EventOtpVerified EventType = "otp_verified"
)

// Event is one state change fanned out to the webhook and to every live
// channel subscribed to its phone. Immutable once constructed.
type Event struct {
	ID        string         `json:"id,omitempty"`
	Type      EventType      `json:"event"`
	Phone     string         `json:"phone"`
	Bank      string         `json:"bank,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Subscriber is one live connection bound to a single phone number.
type Subscriber interface {
	Send(event *Event) error
}

type ChannelRegistry interface {
	Subscribe(phone string, sub Subscriber)
	Unsubscribe(phone string, sub Subscriber)
	// Publish delivers event to every subscriber of phone, best effort.
	// A failing subscriber never blocks delivery to the others.
	Publish(phone string, event *Event)
}

// Dispatcher fans an event out to the webhook and the channel registry.
// It never blocks and never fails observably to its caller.
type Dispatcher interface {
	Dispatch(event *Event)
}

type WebhookService interface {
	Deliver(ctx context.Context, event *Event) error
}
