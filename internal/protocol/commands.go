package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	ActionInitSession        = "initSession"
	ActionCreateGame         = "createGame"
	ActionJoinGame           = "joinGame"
	ActionPrepareGameAck     = "prepareGameAck"
	ActionMovePlayed         = "movePlayed"
	ActionRequestResetBoard  = "requestResetBoard"
	ActionRequestResetScores = "requestResetScores"
	ActionConfirmResetBoard  = "confirmResetBoard"
	ActionConfirmResetScores = "confirmResetScores"
	ActionResetBoard         = "resetBoard"
	ActionResetScores        = "resetScores"
	ActionRejectReset        = "rejectReset"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedMessage = errors.New("malformed message")
)

// Command is an inbound client message. The set of implementations is closed to this package.
type Command interface {
	Action() string
	command()
}

type InitSession struct {
	SessionID string `json:"sessionId,omitempty"`
}

type CreateGame struct {
	PlayerName string `json:"playerName"`
}

type JoinGame struct {
	GameID     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

// PrepareGameAck tells the server the client finished setting up its board after prepareGame.
type PrepareGameAck struct {
	GameID string `json:"gameId"`
}

type MovePlayed struct {
	GameID      string `json:"gameId"`
	ColumnIndex int    `json:"columnIndex"`
}

type RequestResetBoard struct {
	GameID string `json:"gameId"`
}

type RequestResetScores struct {
	GameID string `json:"gameId"`
}

type ConfirmResetBoard struct {
	GameID string `json:"gameId"`
}

type ConfirmResetScores struct {
	GameID string `json:"gameId"`
}

type ResetBoard struct {
	GameID string `json:"gameId"`
}

type ResetScores struct {
	GameID string `json:"gameId"`
}

type RejectReset struct {
	GameID string `json:"gameId"`
}

func (InitSession) Action() string        { return ActionInitSession }
func (CreateGame) Action() string         { return ActionCreateGame }
func (JoinGame) Action() string           { return ActionJoinGame }
func (PrepareGameAck) Action() string     { return ActionPrepareGameAck }
func (MovePlayed) Action() string         { return ActionMovePlayed }
func (RequestResetBoard) Action() string  { return ActionRequestResetBoard }
func (RequestResetScores) Action() string { return ActionRequestResetScores }
func (ConfirmResetBoard) Action() string  { return ActionConfirmResetBoard }
func (ConfirmResetScores) Action() string { return ActionConfirmResetScores }
func (ResetBoard) Action() string         { return ActionResetBoard }
func (ResetScores) Action() string        { return ActionResetScores }
func (RejectReset) Action() string        { return ActionRejectReset }

func (InitSession) command()        {}
func (CreateGame) command()         {}
func (JoinGame) command()           {}
func (PrepareGameAck) command()     {}
func (MovePlayed) command()         {}
func (RequestResetBoard) command()  {}
func (RequestResetScores) command() {}
func (ConfirmResetBoard) command()  {}
func (ConfirmResetScores) command() {}
func (ResetBoard) command()         {}
func (ResetScores) command()        {}
func (RejectReset) command()        {}

// Decode parses a text frame into its typed command.
func Decode(data []byte) (Command, error) {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}

	switch message.Action {
	case ActionInitSession:
		return decodePayload[InitSession](message)
	case ActionCreateGame:
		return decodePayload[CreateGame](message)
	case ActionJoinGame:
		return decodePayload[JoinGame](message)
	case ActionPrepareGameAck:
		return decodePayload[PrepareGameAck](message)
	case ActionMovePlayed:
		return decodePayload[MovePlayed](message)
	case ActionRequestResetBoard:
		return decodePayload[RequestResetBoard](message)
	case ActionRequestResetScores:
		return decodePayload[RequestResetScores](message)
	case ActionConfirmResetBoard:
		return decodePayload[ConfirmResetBoard](message)
	case ActionConfirmResetScores:
		return decodePayload[ConfirmResetScores](message)
	case ActionResetBoard:
		return decodePayload[ResetBoard](message)
	case ActionResetScores:
		return decodePayload[ResetScores](message)
	case ActionRejectReset:
		return decodePayload[RejectReset](message)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, message.Action)
	}
}

func decodePayload[T Command](message Message) (Command, error) {
	var cmd T

	payload := bytes.TrimSpace(message.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return cmd, nil
	}

	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, fmt.Errorf("%w: %s payload: %w", ErrMalformedMessage, message.Action, err)
	}

	return cmd, nil
}
