// Package board builds the hidden mine layout of a minesweeper game.
package board

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/telemetry"
)

const (
	// Default board dimensions
	DefaultSide  = 10
	DefaultMines = 10
)

// offsets lists the 8-connected neighbourhood in row-major order.
var offsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Position addresses a cell by 0-based row and column.
type Position struct {
	Row int
	Col int
}

// Cell is one square of the truth grid.
type Cell struct {
	IsMine        bool
	AdjacentMines int // Valid only when IsMine is false
}

// Board is the truth grid: where the mines are and how many border each cell.
type Board struct {
	Side  int
	Mines int
	Cells [][]Cell
	rng   *rand.Rand
}

// New creates an empty side x side board. Mines are not placed until Generate.
// A nil rng falls back to a time-seeded source.
func New(side, mines int, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cells := make([][]Cell, side)
	for r := range cells {
		cells[r] = make([]Cell, side)
	}

	return &Board{
		Side:  side,
		Mines: mines,
		Cells: cells,
		rng:   rng,
	}
}

// FromMines builds a board with mines at exactly the given positions.
// Duplicate and out-of-range positions are ignored.
func FromMines(side int, mines []Position) *Board {
	b := New(side, 0, rand.New(rand.NewSource(1)))
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) || b.Cells[p.Row][p.Col].IsMine {
			continue
		}
		b.Cells[p.Row][p.Col].IsMine = true
		b.Mines++
	}
	b.CalculateAdjacents()
	return b
}

// Generate places the mines and computes adjacency counts.
func (b *Board) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	b.PlaceMines()
	b.CalculateAdjacents()

	span.SetAttributes(
		attribute.Int("board.side", b.Side),
		attribute.Int("board.mines", b.Mines),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
}

// PlaceMines marks b.Mines distinct cells as mines, sampling uniformly and
// retrying on collisions. The caller guarantees Mines < Side*Side.
func (b *Board) PlaceMines() {
	placed := 0
	for placed < b.Mines {
		r := b.rng.Intn(b.Side)
		c := b.rng.Intn(b.Side)
		if !b.Cells[r][c].IsMine {
			b.Cells[r][c].IsMine = true
			placed++
		}
	}
}

// CalculateAdjacents recounts mine neighbours for every non-mine cell.
func (b *Board) CalculateAdjacents() {
	for r := 0; r < b.Side; r++ {
		for c := 0; c < b.Side; c++ {
			if b.Cells[r][c].IsMine {
				continue
			}
			count := 0
			for _, n := range b.Neighbors(r, c) {
				if b.Cells[n.Row][n.Col].IsMine {
					count++
				}
			}
			b.Cells[r][c].AdjacentMines = count
		}
	}
}

// RelocateMine moves the mine at avoid to the first free cell in row-major
// order. It reports whether a move happened; adjacency counts are not
// recomputed.
func (b *Board) RelocateMine(avoid Position) bool {
	if !b.IsMine(avoid.Row, avoid.Col) {
		return false
	}
	for r := 0; r < b.Side; r++ {
		for c := 0; c < b.Side; c++ {
			if (r == avoid.Row && c == avoid.Col) || b.Cells[r][c].IsMine {
				continue
			}
			b.Cells[r][c].IsMine = true
			b.Cells[avoid.Row][avoid.Col].IsMine = false
			return true
		}
	}
	return false
}

// InBounds returns true if the position lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Side && col >= 0 && col < b.Side
}

// IsMine returns true if the position holds a mine. Off-board is never a mine.
func (b *Board) IsMine(row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	return b.Cells[row][col].IsMine
}

// AdjacentMines returns the neighbour count stored for the position.
func (b *Board) AdjacentMines(row, col int) int {
	if !b.InBounds(row, col) {
		return 0
	}
	return b.Cells[row][col].AdjacentMines
}

// Neighbors returns the on-board 8-connected neighbours of a position.
func (b *Board) Neighbors(row, col int) []Position {
	out := make([]Position, 0, len(offsets))
	for _, d := range offsets {
		nr, nc := row+d.Row, col+d.Col
		if b.InBounds(nr, nc) {
			out = append(out, Position{Row: nr, Col: nc})
		}
	}
	return out
}

// MineCount counts the cells currently marked as mines.
func (b *Board) MineCount() int {
	count := 0
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].IsMine {
				count++
			}
		}
	}
	return count
}

// MinePositions lists every mine in row-major order.
func (b *Board) MinePositions() []Position {
	out := make([]Position, 0, b.Mines)
	for r := range b.Cells {
		for c := range b.Cells[r] {
			if b.Cells[r][c].IsMine {
				out = append(out, Position{Row: r, Col: c})
			}
		}
	}
	return out
}
