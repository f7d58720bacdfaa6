// Package game runs a minesweeper session: the engine that owns the truth and
// visible grids, and the console and screen drivers that feed it commands.
package game

// State represents the outcome of a session so far.
type State int

const (
	// StatePlaying accepts commands.
	StatePlaying State = iota
	// StateWon means every safe cell was revealed.
	StateWon
	// StateLost means a mine was revealed.
	StateLost
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return "unknown"
	}
}

// CellState is what the player knows about one cell.
type CellState int

const (
	// Hidden cells can be opened or flagged.
	Hidden CellState = iota
	// Revealed is terminal.
	Revealed
	// Flagged cells must be unflagged before opening.
	Flagged
)

// String returns a human-readable cell state name.
func (c CellState) String() string {
	switch c {
	case Hidden:
		return "hidden"
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "unknown"
	}
}
