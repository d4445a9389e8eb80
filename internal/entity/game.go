package entity

import "strings"

const (
	StateWaiting = "waiting"
	StatePlaying = "playing"
)

const (
	NoPlayer    = 0
	HostPlayer  = 1
	GuestPlayer = 2

	MaxPlayers = 2
)

// Game is the authoritative state of one match.
//
// Players[0] is always the host. CurrentPlayer is NoPlayer until both players are seated.
type Game struct {
	ID            string    `json:"id"`
	Players       []*Player `json:"players"`
	CurrentPlayer int       `json:"current_player"`
	State         string    `json:"state"`
	Grid          *Grid     `json:"grid,omitempty"`

	// Rendezvous is non-nil while the server waits for both players to acknowledge prepareGame.
	Rendezvous *Rendezvous `json:"-"`
}

func NewGame(id string, host *Player) *Game {
	return &Game{
		ID:            id,
		Players:       []*Player{host},
		CurrentPlayer: NoPlayer,
		State:         StateWaiting,
	}
}

// OtherPlayer returns the player number that is not number.
func OtherPlayer(number int) int {
	if number == HostPlayer {
		return GuestPlayer
	}
	return HostPlayer
}

func (that *Game) IsWaiting() bool {
	return that.State == StateWaiting
}

func (that *Game) IsPlaying() bool {
	return that.State == StatePlaying
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *Game) Host() *Player {
	if len(that.Players) == 0 {
		return nil
	}
	return that.Players[0]
}

func (that *Game) Guest() *Player {
	if len(that.Players) < MaxPlayers {
		return nil
	}
	return that.Players[1]
}

// PlayerNumber returns the 1-based seat of the connection, or NoPlayer when it is not a member.
func (that *Game) PlayerNumber(connectionID string) int {
	for i, player := range that.Players {
		if player.ConnectionID == connectionID {
			return i + 1
		}
	}
	return NoPlayer
}

func (that *Game) PlayerByConnection(connectionID string) *Player {
	number := that.PlayerNumber(connectionID)
	if number == NoPlayer {
		return nil
	}
	return that.Players[number-1]
}

// Opponent returns the first player whose connection is not connectionID.
func (that *Game) Opponent(connectionID string) *Player {
	for _, player := range that.Players {
		if player.ConnectionID != connectionID {
			return player
		}
	}
	return nil
}

// HasPlayerNamed reports whether a seated player already uses name, ignoring case.
func (that *Game) HasPlayerNamed(name string) bool {
	for _, player := range that.Players {
		if strings.EqualFold(player.Name, name) {
			return true
		}
	}
	return false
}

func (that *Game) AddPlayer(player *Player) {
	that.Players = append(that.Players, player)
}

// ConnectionIDs returns the connections of all seated players in seat order.
func (that *Game) ConnectionIDs() []string {
	ids := make([]string, 0, len(that.Players))
	for _, player := range that.Players {
		ids = append(ids, player.ConnectionID)
	}
	return ids
}

// Start hands the first turn to startingPlayer and moves the game to playing.
func (that *Game) Start(startingPlayer int) {
	that.CurrentPlayer = startingPlayer
	that.State = StatePlaying
}

// AdvanceTurn passes the turn to the other player and returns the new current player.
func (that *Game) AdvanceTurn() int {
	that.CurrentPlayer = OtherPlayer(that.CurrentPlayer)
	return that.CurrentPlayer
}

// ResetBoard allocates an empty grid and restarts the match with startingPlayer.
// The turn is only handed out when both seats are taken.
func (that *Game) ResetBoard(startingPlayer int) {
	that.Grid = NewGrid()
	if that.IsFull() {
		that.Start(startingPlayer)
	}
}
