package game

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesweeper/internal/board"
	"github.com/samdwyer/minesweeper/internal/telemetry"
)

// OpenResult reports what an open did. Safe is false only when this call hit
// a mine. Revealed counts safe cells uncovered, so a re-open of an already
// revealed cell is Safe with Revealed == 0.
type OpenResult struct {
	Safe     bool
	Revealed int
}

// Engine owns one session: the truth grid and the player's view of it.
type Engine struct {
	id      uuid.UUID
	board   *board.Board
	visible [][]CellState

	movesLeft int // Safe cells not yet revealed
	flags     int
	turn      int // Opens applied so far
	state     State

	log logrus.FieldLogger
}

// NewEngine validates cfg and generates a fresh board.
func NewEngine(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := board.New(cfg.Side, cfg.Mines, rand.New(rand.NewSource(seed)))
	b.Generate(ctx)

	e := NewEngineWithBoard(b, logger)
	e.log.WithFields(logrus.Fields{
		"side":  cfg.Side,
		"mines": cfg.Mines,
		"seed":  seed,
	}).Info("game created")
	return e, nil
}

// NewEngineWithBoard starts a session on an already generated board.
func NewEngineWithBoard(b *board.Board, logger logrus.FieldLogger) *Engine {
	if logger == nil {
		logger = discardLogger()
	}

	visible := make([][]CellState, b.Side)
	for r := range visible {
		visible[r] = make([]CellState, b.Side)
	}

	id := uuid.New()
	return &Engine{
		id:        id,
		board:     b,
		visible:   visible,
		movesLeft: b.Side*b.Side - b.MineCount(),
		state:     StatePlaying,
		log:       logger.WithField("session", id.String()),
	}
}

// Apply range-checks a parsed command and dispatches it.
func (e *Engine) Apply(ctx context.Context, cmd Command) (OpenResult, error) {
	if !e.board.InBounds(cmd.Row, cmd.Col) {
		return OpenResult{}, ErrOutOfBounds
	}

	switch cmd.Action {
	case ActionOpen:
		return e.Open(ctx, cmd.Row, cmd.Col)
	case ActionFlag:
		_, err := e.ToggleFlag(ctx, cmd.Row, cmd.Col)
		return OpenResult{Safe: true}, err
	default:
		return OpenResult{}, ErrUnknownAction
	}
}

// Open reveals a cell, cascading through zero-count regions. The first open
// of a session never hits a mine. When the session ends every mine is
// revealed.
func (e *Engine) Open(ctx context.Context, row, col int) (OpenResult, error) {
	if e.state != StatePlaying {
		return OpenResult{}, ErrGameOver
	}
	if !e.board.InBounds(row, col) {
		return OpenResult{}, ErrOutOfBounds
	}
	if e.visible[row][col] == Flagged {
		return OpenResult{}, ErrCellFlagged
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.open")
	defer span.End()

	if e.turn == 0 && e.board.IsMine(row, col) {
		e.relocateFirstMine(ctx, row, col)
	}

	safe, revealed := e.openCell(row, col)
	e.turn++

	span.SetAttributes(
		attribute.String("session", e.id.String()),
		attribute.Int("row", row),
		attribute.Int("col", col),
		attribute.Int("turn", e.turn),
		attribute.Bool("safe", safe),
		attribute.Int("revealed", revealed),
		attribute.Int("moves_left", e.movesLeft),
	)
	e.log.WithFields(logrus.Fields{
		"row":      row,
		"col":      col,
		"safe":     safe,
		"revealed": revealed,
	}).Debug("cell opened")

	switch {
	case !safe:
		e.end(ctx, StateLost)
	case e.movesLeft == 0:
		e.end(ctx, StateWon)
	}

	return OpenResult{Safe: safe, Revealed: revealed}, nil
}

// ToggleFlag flips a cell between Hidden and Flagged and returns its new state.
func (e *Engine) ToggleFlag(ctx context.Context, row, col int) (CellState, error) {
	if e.state != StatePlaying {
		return Hidden, ErrGameOver
	}
	if !e.board.InBounds(row, col) {
		return Hidden, ErrOutOfBounds
	}

	cell := &e.visible[row][col]
	switch *cell {
	case Revealed:
		return Revealed, ErrCellRevealed
	case Flagged:
		*cell = Hidden
		e.flags--
	default:
		*cell = Flagged
		e.flags++
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.flag")
	span.SetAttributes(
		attribute.String("session", e.id.String()),
		attribute.Int("row", row),
		attribute.Int("col", col),
		attribute.String("state", cell.String()),
	)
	span.End()

	e.log.WithFields(logrus.Fields{"row": row, "col": col, "state": cell.String()}).Debug("flag toggled")
	return *cell, nil
}

// openCell reveals (row, col) and, for a zero count, every Hidden cell
// reachable through zero-count cells. Cells are marked Revealed when pushed,
// so each is counted once.
func (e *Engine) openCell(row, col int) (safe bool, revealed int) {
	if !e.board.InBounds(row, col) || e.visible[row][col] == Revealed {
		return true, 0
	}

	e.visible[row][col] = Revealed
	if e.board.IsMine(row, col) {
		return false, 0
	}
	e.movesLeft--
	revealed = 1

	stack := []board.Position{{Row: row, Col: col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if e.board.AdjacentMines(p.Row, p.Col) != 0 {
			continue
		}
		// Neighbours of a zero-count cell are never mines.
		for _, n := range e.board.Neighbors(p.Row, p.Col) {
			if e.visible[n.Row][n.Col] != Hidden {
				continue
			}
			e.visible[n.Row][n.Col] = Revealed
			e.movesLeft--
			revealed++
			stack = append(stack, n)
		}
	}

	return true, revealed
}

func (e *Engine) relocateFirstMine(ctx context.Context, row, col int) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.relocate")
	defer span.End()

	moved := e.board.RelocateMine(board.Position{Row: row, Col: col})
	e.board.CalculateAdjacents()

	span.SetAttributes(
		attribute.Int("row", row),
		attribute.Int("col", col),
		attribute.Bool("moved", moved),
	)
	e.log.WithFields(logrus.Fields{"row": row, "col": col, "moved": moved}).Info("first open hit a mine, relocated")
}

// end records the outcome and reveals every mine.
func (e *Engine) end(ctx context.Context, outcome State) {
	e.state = outcome
	for _, p := range e.board.MinePositions() {
		e.visible[p.Row][p.Col] = Revealed
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.end")
	span.SetAttributes(
		attribute.String("session", e.id.String()),
		attribute.String("outcome", outcome.String()),
		attribute.Int("turns_taken", e.turn),
		attribute.Int("moves_left", e.movesLeft),
	)
	span.End()

	e.log.WithFields(logrus.Fields{"outcome": outcome.String(), "turns": e.turn}).Info("game over")
}

// ID returns the session identifier.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Side returns the grid side length.
func (e *Engine) Side() int {
	return e.board.Side
}

// Mines returns the number of mines on the board.
func (e *Engine) Mines() int {
	return e.board.Mines
}

// State returns the session outcome so far.
func (e *Engine) State() State {
	return e.state
}

// MovesLeft returns how many safe cells are still unrevealed.
func (e *Engine) MovesLeft() int {
	return e.movesLeft
}

// FlagsPlaced returns the number of flagged cells.
func (e *Engine) FlagsPlaced() int {
	return e.flags
}

// Turn returns the number of opens applied.
func (e *Engine) Turn() int {
	return e.turn
}

// CellState returns the visible state of a cell. Off-board cells read as Hidden.
func (e *Engine) CellState(row, col int) CellState {
	if !e.board.InBounds(row, col) {
		return Hidden
	}
	return e.visible[row][col]
}

// Glyph returns the character shown for a cell: '.' hidden, '!' flagged,
// '*' a revealed mine, or the neighbour count of a revealed safe cell.
func (e *Engine) Glyph(row, col int) rune {
	switch e.CellState(row, col) {
	case Flagged:
		return '!'
	case Revealed:
		if e.board.IsMine(row, col) {
			return '*'
		}
		return rune('0' + e.board.AdjacentMines(row, col))
	default:
		return '.'
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
