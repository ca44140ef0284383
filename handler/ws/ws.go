package ws

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thaongo/openbank-hub/core"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

func New(channels core.ChannelRegistry, courier core.Dispatcher, logger *slog.Logger) *Server {
	return &Server{
		channels: channels,
		courier:  courier,
		logger:   logger.With("server", "ws"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Server upgrades inbound connections into live per-phone channels.
// Each connection subscribes to exactly one phone, fixed at connect time.
type Server struct {
	channels core.ChannelRegistry
	courier  core.Dispatcher
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.serve)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "err", err)
		return
	}

	// a connection without a phone identity never reaches the registry
	if phone == "" {
		reason := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "phone query parameter required")
		_ = conn.WriteControl(websocket.CloseMessage, reason, time.Now().Add(writeTimeout))
		_ = conn.Close()
		return
	}

	c := &client{
		conn:  conn,
		phone: phone,
		send:  make(chan *core.Event, sendBuffer),
		done:  make(chan struct{}),
	}

	c.teardown = func() {
		c.once.Do(func() {
			s.channels.Unsubscribe(phone, c)
			close(c.done)
			_ = conn.Close()
			s.logger.Debug("connection closed", "phone", phone)
		})
	}

	s.channels.Subscribe(phone, c)
	s.logger.Debug("connection open", "phone", phone)

	go c.writePump()
	go c.readPump()

	s.courier.Dispatch(&core.Event{
		Type:    core.EventWsConnected,
		Phone:   phone,
		Payload: map[string]any{"message": "connected as " + phone},
	})
}

// envelope is the JSON frame pushed to the live channel.
type envelope struct {
	Event     core.EventType `json:"event"`
	Phone     string         `json:"phone"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

type client struct {
	conn     *websocket.Conn
	phone    string
	send     chan *core.Event
	done     chan struct{}
	once     sync.Once
	teardown func()
}

// Send queues event for delivery. It never blocks the publisher; a
// consumer too slow to drain its buffer loses the event.
func (c *client) Send(event *core.Event) error {
	select {
	case c.send <- event:
		return nil
	case <-c.done:
		return errors.New("connection closed")
	default:
		return errors.New("send buffer full")
	}
}

func (c *client) writePump() {
	defer c.teardown()

	for {
		select {
		case event := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := c.conn.WriteJSON(envelope{
				Event:     event.Type,
				Phone:     event.Phone,
				Payload:   event.Payload,
				Timestamp: event.Timestamp,
			})
			if err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// readPump discards inbound frames; its job is noticing disconnects.
func (c *client) readPump() {
	defer c.teardown()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
