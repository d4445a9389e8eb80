package apperror

import "errors"

// Membership validation errors. Their messages are sent verbatim to the client in gameError.
var (
	ErrGameNotFound        = errors.New("game not found")
	ErrGameFull            = errors.New("game is full")
	ErrNotEnoughPlayer     = errors.New("not enough players (2 players needed)")
	ErrInvalidUsername     = errors.New("username must be between 3 and 20 characters")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameAlreadyUsed = errors.New("username is already used in this game")
	ErrPlayerAlreadyInGame = errors.New("you already joined this game")
)

var (
	ErrPlayerNotInGame   = errors.New("player is not in the game")
	ErrGameAlreadyExists = errors.New("game already exists")
)
