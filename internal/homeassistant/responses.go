package homeassistant

import (
	"encoding/json"

	"github.com/wheelibin/hadash/internal/models"
)

// a service invocation, e.g light.turn_on for light.bedroom with {"brightness": 128}
type ServiceCall struct {
	Domain   string
	Service  string
	EntityID string
	Data     map[string]any
}

// websocket message types
const (
	msgTypeAuthRequired    = "auth_required"
	msgTypeAuth            = "auth"
	msgTypeAuthOK          = "auth_ok"
	msgTypeAuthInvalid     = "auth_invalid"
	msgTypeSubscribeEvents = "subscribe_events"
	msgTypeResult          = "result"
	msgTypeEvent           = "event"
)

type authMessage struct {
	Type        string `json:"type"`
	AccessToken string `json:"access_token"`
}

type subscribeMessage struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	EventType string `json:"event_type"`
}

// any message received over the websocket, fields are populated depending on the type
type incomingMessage struct {
	ID      int             `json:"id"`
	Type    string          `json:"type"`
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   *resultError    `json:"error"`
	Event   *eventEnvelope  `json:"event"`
	Result  json.RawMessage `json:"result"`
}

type resultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type eventEnvelope struct {
	EventType string                   `json:"event_type"`
	Data      models.StateChangedEvent `json:"data"`
}
