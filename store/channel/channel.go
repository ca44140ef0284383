package channel

import (
	"log/slog"
	"sync"

	"github.com/thaongo/openbank-hub/core"
)

func New(logger *slog.Logger) core.ChannelRegistry {
	return &registry{
		subscribers: make(map[string]map[core.Subscriber]struct{}),
		logger:      logger.With("store", "channel"),
	}
}

type registry struct {
	mux         sync.RWMutex
	subscribers map[string]map[core.Subscriber]struct{}
	logger      *slog.Logger
}

func (r *registry) Subscribe(phone string, sub core.Subscriber) {
	r.mux.Lock()
	defer r.mux.Unlock()

	subs, ok := r.subscribers[phone]
	if !ok {
		subs = make(map[core.Subscriber]struct{})
		r.subscribers[phone] = subs
	}

	subs[sub] = struct{}{}
	r.logger.Debug("subscribed", "phone", phone, "count", len(subs))
}

func (r *registry) Unsubscribe(phone string, sub core.Subscriber) {
	r.mux.Lock()
	defer r.mux.Unlock()

	subs, ok := r.subscribers[phone]
	if !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(r.subscribers, phone)
	}

	r.logger.Debug("unsubscribed", "phone", phone, "count", len(subs))
}

func (r *registry) Publish(phone string, event *core.Event) {
	r.mux.RLock()
	subs := make([]core.Subscriber, 0, len(r.subscribers[phone]))
	for sub := range r.subscribers[phone] {
		subs = append(subs, sub)
	}
	r.mux.RUnlock()

	for _, sub := range subs {
		if err := sub.Send(event); err != nil {
			r.logger.Warn("subscriber send failed", "phone", phone, "event", event.Type, "err", err)
		}
	}
}
