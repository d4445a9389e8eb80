package entity

const (
	GridRows    = 6
	GridColumns = 7

	EmptyCell = 0
)

// Grid is the connect-four board. The server only allocates and clears it, cell contents belong to the clients.
type Grid [GridRows][GridColumns]int

// NewGrid returns a grid filled with EmptyCell.
func NewGrid() *Grid {
	return &Grid{}
}
