package websocket

import (
	"encoding/json"

	"github.com/quoridorlive/quoridor-backend/internal/quoridor"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ConnectPayload tells a freshly connected client its identity.
type ConnectPayload struct {
	ID string `json:"id"`
}

// RolePayload carries a seat choice or readiness toggle target.
type RolePayload struct {
	Role int `json:"role"`
}

// ActionPayload is a board intent: exactly one of Move or Wall is set.
// Clients never submit full match records; the coordinator reduces the
// intent against its own authoritative state.
type ActionPayload struct {
	Move *quoridor.Point `json:"move,omitempty"`
	Wall *quoridor.Wall  `json:"wall,omitempty"`
}

// newMessage marshals a payload into the wire envelope.
func newMessage(action string, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	return Message{Action: action, Payload: raw}, nil
}
