package homeassistant

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/wheelibin/hadash/internal/config"
	"github.com/wheelibin/hadash/internal/constants"
	"github.com/wheelibin/hadash/internal/models"
)

var ErrAuthFailed = errors.New("home assistant websocket authentication failed")

const subscriptionID = 1

type EventConsumer struct {
	Logger *log.Logger

	// called after every successful (re)subscription, events may have been missed while disconnected
	OnConnect func()

	url    string
	token  string
	dialer *websocket.Dialer

	reconnectInterval    time.Duration
	maxReconnectInterval time.Duration
}

func NewEventConsumer(logger *log.Logger, cfg config.HomeAssistant) *EventConsumer {
	return &EventConsumer{
		Logger: logger,
		url:    websocketURL(cfg.URL),
		token:  cfg.Token,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify},
		},
		reconnectInterval:    constants.ReconnectInterval,
		maxReconnectInterval: constants.MaxReconnectInterval,
	}
}

// http(s)://host:8123 -> ws(s)://host:8123/api/websocket
func websocketURL(baseURL string) string {
	u := strings.TrimSuffix(baseURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/api/websocket"
}

// forwards state_changed events to eventChannel until ctx is done, reconnecting with backoff
func (h *EventConsumer) Subscribe(ctx context.Context, eventChannel chan<- models.StateChangedEvent) {
	wait := h.reconnectInterval
	for {
		started := time.Now()
		err := h.listen(ctx, eventChannel)
		if ctx.Err() != nil {
			h.Logger.Debug("Event subscription stopped")
			return
		}

		// a session that lasted a while resets the backoff
		if time.Since(started) > h.maxReconnectInterval {
			wait = h.reconnectInterval
		}
		h.Logger.Error("Disconnected from Home Assistant", "err", err, "retryIn", wait)

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		wait = min(wait*2, h.maxReconnectInterval)
	}
}

func (h *EventConsumer) listen(ctx context.Context, eventChannel chan<- models.StateChangedEvent) error {
	conn, _, err := h.dialer.DialContext(ctx, h.url, nil)
	if err != nil {
		return fmt.Errorf("error connecting to %s: %w", h.url, err)
	}
	defer conn.Close()

	// unblock reads when the context is cancelled
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if err := h.authenticate(conn); err != nil {
		return err
	}

	if err := conn.WriteJSON(subscribeMessage{
		ID:        subscriptionID,
		Type:      msgTypeSubscribeEvents,
		EventType: constants.EventTypeStateChanged,
	}); err != nil {
		return fmt.Errorf("error subscribing to state changes: %w", err)
	}

	for {
		msg := incomingMessage{}
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("error reading event: %w", err)
		}

		switch msg.Type {
		case msgTypeResult:
			if msg.ID != subscriptionID {
				continue
			}
			if msg.Success == nil || !*msg.Success {
				reason := "unknown error"
				if msg.Error != nil {
					reason = msg.Error.Message
				}
				return fmt.Errorf("state_changed subscription rejected: %s", reason)
			}
			h.Logger.Info("Connected to Home Assistant, listening for events...")
			if h.OnConnect != nil {
				h.OnConnect()
			}

		case msgTypeEvent:
			if msg.Event == nil || msg.Event.EventType != constants.EventTypeStateChanged {
				continue
			}
			select {
			case eventChannel <- msg.Event.Data:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (h *EventConsumer) authenticate(conn *websocket.Conn) error {
	msg := incomingMessage{}
	if err := conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("error reading auth request: %w", err)
	}
	if msg.Type != msgTypeAuthRequired {
		return fmt.Errorf("unexpected first message %q", msg.Type)
	}

	if err := conn.WriteJSON(authMessage{Type: msgTypeAuth, AccessToken: h.token}); err != nil {
		return fmt.Errorf("error sending auth: %w", err)
	}

	msg = incomingMessage{}
	if err := conn.ReadJSON(&msg); err != nil {
		return fmt.Errorf("error reading auth response: %w", err)
	}
	switch msg.Type {
	case msgTypeAuthOK:
		return nil
	case msgTypeAuthInvalid:
		return fmt.Errorf("%w: %s", ErrAuthFailed, msg.Message)
	default:
		return fmt.Errorf("unexpected auth response %q", msg.Type)
	}
}
