// Package protocol describes the relay wire format: a JSON envelope with an action name and a payload.
package protocol

import (
	"encoding/json"
	"fmt"
)

// Message represents a websocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Encode builds the text frame for an outbound event. A nil payload is omitted from the envelope.
func Encode(action string, payload any) ([]byte, error) {
	message := Message{Action: action}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", action, err)
		}
		message.Payload = raw
	}

	data, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
