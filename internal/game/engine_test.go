package game

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/minesweeper/internal/board"
)

func pos(row, col int) board.Position {
	return board.Position{Row: row, Col: col}
}

// wallBoard has a full column of mines at col 5, splitting the board in two.
func wallBoard() *board.Board {
	mines := make([]board.Position, 0, 10)
	for r := 0; r < 10; r++ {
		mines = append(mines, pos(r, 5))
	}
	return board.FromMines(10, mines)
}

// checkInvariants asserts the mine count is conserved and MovesLeft matches the grid.
func checkInvariants(t *testing.T, e *Engine, wantMines int) {
	t.Helper()
	require.Equal(t, wantMines, e.board.MineCount(), "mine count changed")

	unrevealedSafe := 0
	for r := 0; r < e.Side(); r++ {
		for c := 0; c < e.Side(); c++ {
			if !e.board.IsMine(r, c) && e.CellState(r, c) != Revealed {
				unrevealedSafe++
			}
		}
	}
	require.Equal(t, unrevealedSafe, e.MovesLeft(), "MovesLeft out of sync with grid")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"default", DefaultConfig(), true},
		{"no mines", Config{Side: 3, Mines: 0}, true},
		{"one safe cell", Config{Side: 3, Mines: 8}, true},
		{"full board", Config{Side: 3, Mines: 9}, false},
		{"negative mines", Config{Side: 3, Mines: -1}, false},
		{"empty board", Config{Side: 0, Mines: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	e, err := NewEngine(context.Background(), Config{Side: 10, Mines: 10, Seed: 42}, nil)
	require.NoError(t, err)

	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 90, e.MovesLeft())
	assert.Equal(t, 0, e.Turn())
	assert.Equal(t, 10, e.Mines())
	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID()))
	checkInvariants(t, e, 10)

	_, err = NewEngine(context.Background(), Config{Side: 2, Mines: 4}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFirstOpenNeverLoses(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 50; seed++ {
		e, err := NewEngine(ctx, Config{Side: 10, Mines: 10, Seed: seed}, nil)
		require.NoError(t, err)

		target := e.board.MinePositions()[0]
		res, err := e.Open(ctx, target.Row, target.Col)
		require.NoError(t, err)

		assert.True(t, res.Safe, "seed %d: first open hit a mine", seed)
		assert.NotEqual(t, StateLost, e.State(), "seed %d", seed)
		assert.False(t, e.board.IsMine(target.Row, target.Col), "seed %d: mine not moved", seed)
		checkInvariants(t, e, 10)
	}
}

func TestFirstOpenRelocatesToFirstFreeCell(t *testing.T) {
	e := NewEngineWithBoard(board.FromMines(3, []board.Position{pos(0, 0)}), nil)

	res, err := e.Open(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, OpenResult{Safe: true, Revealed: 1}, res)
	assert.True(t, e.board.IsMine(0, 1))
	assert.Equal(t, '1', e.Glyph(0, 0), "adjacency not recomputed after relocation")
	assert.Equal(t, 7, e.MovesLeft())
	checkInvariants(t, e, 1)
}

func TestSecondOpenCanLose(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	_, err := e.Open(ctx, 0, 0)
	require.NoError(t, err)

	res, err := e.Open(ctx, 4, 5)
	require.NoError(t, err)
	assert.False(t, res.Safe)
	assert.Equal(t, StateLost, e.State())
}

func TestOpenCascade(t *testing.T) {
	e := NewEngineWithBoard(wallBoard(), nil)

	res, err := e.Open(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.True(t, res.Safe)
	assert.Equal(t, 50, res.Revealed)
	assert.Equal(t, 40, e.MovesLeft())
	assert.Equal(t, StatePlaying, e.State())

	for r := 0; r < 10; r++ {
		for c := 0; c < 10; c++ {
			want := Hidden
			if c < 5 {
				want = Revealed
			}
			assert.Equal(t, want, e.CellState(r, c), "cell (%d,%d)", r, c)
		}
	}

	// Zero region and its numbered border
	assert.Equal(t, '0', e.Glyph(5, 3))
	assert.Equal(t, '2', e.Glyph(0, 4))
	assert.Equal(t, '3', e.Glyph(5, 4))
	checkInvariants(t, e, 10)
}

func TestOpenCascadeSkipsFlaggedNeighbors(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	_, err := e.ToggleFlag(ctx, 1, 1)
	require.NoError(t, err)

	res, err := e.Open(ctx, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 49, res.Revealed)
	assert.Equal(t, Flagged, e.CellState(1, 1))
	checkInvariants(t, e, 10)
}

func TestReopenIsNoop(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	_, err := e.Open(ctx, 0, 0)
	require.NoError(t, err)
	before := e.MovesLeft()

	res, err := e.Open(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, OpenResult{Safe: true, Revealed: 0}, res)
	assert.Equal(t, before, e.MovesLeft())

	res, err = e.Open(ctx, 0, 4)
	require.NoError(t, err)
	assert.Equal(t, OpenResult{Safe: true, Revealed: 0}, res)
	assert.Equal(t, before, e.MovesLeft())
}

func TestToggleFlag(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	t.Run("flag then unflag restores hidden", func(t *testing.T) {
		st, err := e.ToggleFlag(ctx, 2, 8)
		require.NoError(t, err)
		assert.Equal(t, Flagged, st)
		assert.Equal(t, 1, e.FlagsPlaced())
		assert.Equal(t, '!', e.Glyph(2, 8))

		st, err = e.ToggleFlag(ctx, 2, 8)
		require.NoError(t, err)
		assert.Equal(t, Hidden, st)
		assert.Equal(t, 0, e.FlagsPlaced())
		assert.Equal(t, 40+50, e.MovesLeft())
		assert.Equal(t, 0, e.Turn())
	})

	t.Run("revealed cell cannot be flagged", func(t *testing.T) {
		_, err := e.Open(ctx, 0, 0)
		require.NoError(t, err)

		st, err := e.ToggleFlag(ctx, 0, 0)
		assert.ErrorIs(t, err, ErrCellRevealed)
		assert.Equal(t, Revealed, st)
		assert.Equal(t, Revealed, e.CellState(0, 0))
		assert.Equal(t, 0, e.FlagsPlaced())
	})

	t.Run("out of bounds", func(t *testing.T) {
		_, err := e.ToggleFlag(ctx, 10, 0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}

func TestOpenFlaggedCellRejected(t *testing.T) {
	ctx := context.Background()
	// (3,3) is a mine: a rejected open must not trigger first-move relocation.
	e := NewEngineWithBoard(board.FromMines(10, []board.Position{pos(3, 3)}), nil)

	_, err := e.ToggleFlag(ctx, 3, 3)
	require.NoError(t, err)

	_, err = e.Open(ctx, 3, 3)
	assert.ErrorIs(t, err, ErrCellFlagged)
	assert.Equal(t, Flagged, e.CellState(3, 3))
	assert.True(t, e.board.IsMine(3, 3))
	assert.Equal(t, 0, e.Turn())
	assert.Equal(t, 99, e.MovesLeft())
}

func TestWinExactlyWhenLastSafeCellOpens(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(board.FromMines(2, []board.Position{pos(0, 0)}), nil)

	for i, p := range []board.Position{pos(0, 1), pos(1, 0)} {
		_, err := e.Open(ctx, p.Row, p.Col)
		require.NoError(t, err)
		assert.Equal(t, StatePlaying, e.State(), "won early after open %d", i)
		assert.Equal(t, Hidden, e.CellState(0, 0))
	}

	res, err := e.Open(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, res.Safe)
	assert.Equal(t, 0, e.MovesLeft())
	assert.Equal(t, StateWon, e.State())
	assert.Equal(t, Revealed, e.CellState(0, 0), "mines revealed on win")
	assert.Equal(t, '*', e.Glyph(0, 0))
}

func TestLossRevealsMinesOnly(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	_, err := e.Open(ctx, 0, 0)
	require.NoError(t, err)
	_, err = e.ToggleFlag(ctx, 0, 9)
	require.NoError(t, err)
	_, err = e.ToggleFlag(ctx, 0, 5)
	require.NoError(t, err)
	movesBefore := e.MovesLeft()

	res, err := e.Open(ctx, 9, 5)
	require.NoError(t, err)
	assert.False(t, res.Safe)
	assert.Equal(t, StateLost, e.State())
	assert.Equal(t, movesBefore, e.MovesLeft(), "mine hit must not decrement moves")

	for r := 0; r < 10; r++ {
		assert.Equal(t, Revealed, e.CellState(r, 5), "mine (%d,5) not revealed", r)
		assert.Equal(t, '*', e.Glyph(r, 5))
	}
	assert.Equal(t, Flagged, e.CellState(0, 9))
	assert.Equal(t, Hidden, e.CellState(0, 8))
	assert.Equal(t, Hidden, e.CellState(9, 9))

	t.Run("no mutation after the game ends", func(t *testing.T) {
		_, err := e.Open(ctx, 0, 8)
		assert.ErrorIs(t, err, ErrGameOver)
		_, err = e.ToggleFlag(ctx, 0, 8)
		assert.ErrorIs(t, err, ErrGameOver)
		assert.Equal(t, Hidden, e.CellState(0, 8))
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	e := NewEngineWithBoard(wallBoard(), nil)

	_, err := e.Apply(ctx, Command{Row: 10, Col: 0, Action: ActionUnknown})
	assert.ErrorIs(t, err, ErrOutOfBounds, "coordinates are checked before the action")

	_, err = e.Apply(ctx, Command{Row: 0, Col: -1, Action: ActionOpen})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = e.Apply(ctx, Command{Row: 0, Col: 0, Action: ActionUnknown})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = e.Apply(ctx, Command{Row: 0, Col: 9, Action: ActionFlag})
	require.NoError(t, err)
	assert.Equal(t, Flagged, e.CellState(0, 9))

	res, err := e.Apply(ctx, Command{Row: 0, Col: 0, Action: ActionOpen})
	require.NoError(t, err)
	assert.Equal(t, 50, res.Revealed)

	assert.Equal(t, 1, e.Turn())
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 20; seed++ {
		e, err := NewEngine(ctx, Config{Side: 8, Mines: 12, Seed: seed}, nil)
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(seed))

		for e.State() == StatePlaying {
			r, c := rng.Intn(8), rng.Intn(8)
			if rng.Intn(4) == 0 {
				_, _ = e.ToggleFlag(ctx, r, c)
			} else if e.CellState(r, c) == Flagged {
				_, err := e.Open(ctx, r, c)
				assert.ErrorIs(t, err, ErrCellFlagged)
			} else {
				_, err := e.Open(ctx, r, c)
				require.NoError(t, err)
			}
			checkInvariants(t, e, 12)
		}

		if e.State() == StateWon {
			assert.Equal(t, 0, e.MovesLeft())
		}
	}
}

func TestGlyphOffBoard(t *testing.T) {
	e := NewEngineWithBoard(wallBoard(), nil)
	assert.Equal(t, '.', e.Glyph(-1, 0))
	assert.Equal(t, Hidden, e.CellState(0, 10))
}
