package game

import (
	"errors"
	"fmt"

	"github.com/samdwyer/minesweeper/internal/board"
)

// ErrInvalidConfig is returned for boards that cannot be played.
var ErrInvalidConfig = errors.New("invalid board config")

// Config holds game configuration options.
type Config struct {
	Side  int // Grid side length
	Mines int // Mine count, below Side*Side

	// Seed for random number generation. Used for reproducible mine layouts.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// DefaultConfig returns the classic 10x10 board with 10 mines.
func DefaultConfig() Config {
	return Config{Side: board.DefaultSide, Mines: board.DefaultMines}
}

// Validate checks that the board has at least one cell and at least one safe cell.
func (c Config) Validate() error {
	if c.Side < 1 {
		return fmt.Errorf("%w: side %d", ErrInvalidConfig, c.Side)
	}
	if c.Mines < 0 || c.Mines >= c.Side*c.Side {
		return fmt.Errorf("%w: %d mines on a %dx%d board", ErrInvalidConfig, c.Mines, c.Side, c.Side)
	}
	return nil
}
