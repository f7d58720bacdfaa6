package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samdwyer/minesweeper/internal/ui"
)

const prompt = "\nEnter row, col and action (o = open, f = flag): "

// Console plays one session over line-oriented text input and output.
type Console struct {
	engine *Engine
	out    *ui.Console
	in     *bufio.Scanner
}

// NewConsole creates a console driver for engine.
func NewConsole(engine *Engine, in io.Reader, out io.Writer) *Console {
	return &Console{
		engine: engine,
		out:    ui.NewConsole(out),
		in:     bufio.NewScanner(in),
	}
}

// Run plays until the session ends or input runs out, and returns the
// final state. Rejected commands print a message and re-prompt.
func (c *Console) Run(ctx context.Context) (State, error) {
	side, mines := c.engine.Side(), c.engine.Mines()
	if err := c.out.Message(fmt.Sprintf("Welcome to Minesweeper! (%dx%d with %d mines)", side, side, mines)); err != nil {
		return c.engine.State(), err
	}

	for c.engine.State() == StatePlaying {
		if err := ctx.Err(); err != nil {
			return c.engine.State(), err
		}
		if err := c.out.Render(c.engine); err != nil {
			return c.engine.State(), err
		}
		if err := c.out.Prompt(prompt); err != nil {
			return c.engine.State(), err
		}

		if !c.in.Scan() {
			return c.engine.State(), c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}

		cmd, err := ParseCommand(line)
		if err == nil {
			_, err = c.engine.Apply(ctx, cmd)
		}
		if err != nil {
			msg, ok := rejection(err)
			if !ok {
				return c.engine.State(), err
			}
			if err := c.out.Message(msg); err != nil {
				return c.engine.State(), err
			}
		}
	}

	if err := c.out.Render(c.engine); err != nil {
		return c.engine.State(), err
	}

	var err error
	switch c.engine.State() {
	case StateLost:
		err = c.out.Message("\nBOOM! You hit a mine. Game Over.")
	case StateWon:
		err = c.out.Message("\nCongratulations! You cleared the board!")
	}
	return c.engine.State(), err
}

// rejection maps recoverable command errors to the text shown to the player.
func rejection(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrMalformedCommand):
		return "Invalid input.", true
	case errors.Is(err, ErrOutOfBounds):
		return "Invalid coordinates.", true
	case errors.Is(err, ErrUnknownAction):
		return "Unknown action.", true
	case errors.Is(err, ErrCellRevealed):
		return "Can't flag a revealed cell.", true
	case errors.Is(err, ErrCellFlagged):
		return "Cell is flagged. Unflag to open.", true
	default:
		return "", false
	}
}
