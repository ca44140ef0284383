package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/thaongo/openbank-hub/core"
)

type Config struct {
	URL     string `valid:"url,required"`
	Token   string `valid:"required"`
	Timeout time.Duration
}

func New(cfg Config) core.WebhookService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &service{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type service struct {
	cfg    Config
	client *http.Client
}

// body is the outbound push contract shared with the automation agent.
type body struct {
	Event   core.EventType `json:"event"`
	Phone   string         `json:"phone"`
	Bank    string         `json:"bank"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (s *service) Deliver(ctx context.Context, event *core.Event) error {
	b, err := json.Marshal(body{
		Event:   event.Type,
		Phone:   event.Phone,
		Bank:    event.Bank,
		Payload: event.Payload,
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}

	return nil
}
