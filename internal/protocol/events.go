package protocol

import "github.com/rocketscienceinc/connectfour-relay/internal/entity"

const (
	EventSessionCreated       = "sessionCreated"
	EventGameCreated          = "gameCreated"
	EventGameError            = "gameError"
	EventPrepareGame          = "prepareGame"
	EventGameStarted          = "gameStarted"
	EventOpponentPlayed       = "opponentPlayed"
	EventResetBoardRequested  = "resetBoardRequested"
	EventResetScoresRequested = "resetScoresRequested"
	EventBoardReset           = "boardReset"
	EventResetScores          = "resetScores"
	EventScoresReset          = "scoresReset"
	EventResetRejected        = "resetRejected"
	EventHostLeft             = "hostLeft"
	EventPlayerLeft           = "playerLeft"
)

type SessionCreated struct {
	SessionID string `json:"sessionId"`
}

type GameCreated struct {
	GameID     string `json:"gameId"`
	PlayerID   int    `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type GameError struct {
	Message string `json:"message"`
}

type PrepareGame struct {
	GameID       string `json:"gameId"`
	PlayerID     int    `json:"playerId"`
	PlayerName   string `json:"playerName"`
	OpponentName string `json:"opponentName"`
}

// GameStarted maps player numbers to names, keys are encoded as "1" and "2".
type GameStarted struct {
	StartingPlayer int            `json:"startingPlayer"`
	Players        map[int]string `json:"players"`
}

type OpponentPlayed struct {
	ColumnIndex int `json:"columnIndex"`
	PlayedBy    int `json:"playedBy"`
	NextPlayer  int `json:"nextPlayer"`
}

type ResetRequested struct {
	RequestedBy string `json:"requestedBy"`
}

type BoardReset struct {
	StartingPlayer int          `json:"startingPlayer"`
	Grid           *entity.Grid `json:"grid"`
}

type ResetRejected struct {
	RejectedBy string `json:"rejectedBy"`
}

type PlayerLeft struct {
	PlayerName string `json:"playerName"`
}
