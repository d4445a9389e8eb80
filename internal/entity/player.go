package entity

// Player is a participant of a game. ConnectionID changes on every reconnect, SessionID is meant to survive it.
type Player struct {
	SessionID    string `json:"session_id,omitempty"`
	ConnectionID string `json:"connection_id"`
	Name         string `json:"name"`
}
