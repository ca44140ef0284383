package courier

import (
	"context"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/thaongo/openbank-hub/core"
)

type Config struct {
	QueueSize int `valid:"required"`
}

func New(
	webhookz core.WebhookService,
	channels core.ChannelRegistry,
	logger *slog.Logger,
	cfg Config,
) *Courier {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &Courier{
		webhookz: webhookz,
		channels: channels,
		logger:   logger.With("worker", "courier"),
		queue:    make(chan *core.Event, cfg.QueueSize),
	}
}

// Courier drains the event queue and fans each event out to the webhook
// and to the live channels for the event's phone. Producers enqueue via
// Dispatch and never wait for either leg.
type Courier struct {
	webhookz core.WebhookService
	channels core.ChannelRegistry
	logger   *slog.Logger
	queue    chan *core.Event
}

// Dispatch enqueues event without blocking the caller. When the queue is
// full the event is dropped; there is no retry, matching the hub's
// fire-and-forget notification contract.
func (w *Courier) Dispatch(event *core.Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case w.queue <- event:
	default:
		w.logger.Warn("queue full, event dropped", "event", event.Type, "phone", event.Phone)
	}
}

func (w *Courier) Run(ctx context.Context) error {
	w.logger.Info("courier start")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.queue:
			w.deliver(ctx, event)
		}
	}
}

func (w *Courier) deliver(ctx context.Context, event *core.Event) {
	logger := w.logger.With("event", event.Type, "phone", event.Phone, "id", event.ID)

	// the two legs are independent; neither failure cancels the other
	if err := w.webhookz.Deliver(ctx, event); err != nil {
		logger.Error("webhookz.Deliver", "err", err)
	}

	w.channels.Publish(event.Phone, event)

	logger.Debug("event delivered")
}
