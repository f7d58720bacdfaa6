package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesweeper/internal/gamedata"
	"github.com/samdwyer/minesweeper/internal/ui"
)

// Game is the full-screen front end: a cursor over the board driven by keys.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *Engine
	log      logrus.FieldLogger

	cursorRow int
	cursorCol int
	message   string
	running   bool
}

// New creates a game on the terminal.
func New(ctx context.Context, cfg Config, theme *gamedata.Theme, logger logrus.FieldLogger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := NewWithScreen(ctx, cfg, screen, theme, logger)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a game drawing on an already initialized screen.
func NewWithScreen(ctx context.Context, cfg Config, screen *ui.Screen, theme *gamedata.Theme, logger logrus.FieldLogger) (*Game, error) {
	if logger == nil {
		logger = discardLogger()
	}
	engine, err := NewEngine(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, theme),
		engine:   engine,
		log:      logger,
		running:  true,
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.renderer.Render(g.engine, g.cursorRow, g.cursorCol, g.status())
		g.handleInput(ctx)
	}
	return nil
}

// Engine returns the current session.
func (g *Game) Engine() *Engine {
	return g.engine
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// Screen finalized
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.moveCursor(-1, 0)
	case tcell.KeyDown:
		g.moveCursor(1, 0)
	case tcell.KeyLeft:
		g.moveCursor(0, -1)
	case tcell.KeyRight:
		g.moveCursor(0, 1)
	case tcell.KeyEnter:
		g.openAtCursor(ctx)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'k':
			g.moveCursor(-1, 0)
		case 'j':
			g.moveCursor(1, 0)
		case 'h':
			g.moveCursor(0, -1)
		case 'l':
			g.moveCursor(0, 1)
		case 'o', 'O', ' ':
			g.openAtCursor(ctx)
		case 'f', 'F':
			g.flagAtCursor(ctx)
		case 'n', 'N':
			g.newGame(ctx)
		}
	}
}

// moveCursor shifts the cursor, clamped to the board.
func (g *Game) moveCursor(dr, dc int) {
	side := g.engine.Side()
	g.cursorRow = clamp(g.cursorRow+dr, 0, side-1)
	g.cursorCol = clamp(g.cursorCol+dc, 0, side-1)
}

func (g *Game) openAtCursor(ctx context.Context) {
	g.apply(ctx, ActionOpen)
}

func (g *Game) flagAtCursor(ctx context.Context) {
	g.apply(ctx, ActionFlag)
}

func (g *Game) apply(ctx context.Context, action Action) {
	_, err := g.engine.Apply(ctx, Command{Row: g.cursorRow, Col: g.cursorCol, Action: action})
	switch {
	case errors.Is(err, ErrGameOver):
		g.message = "Game over. Press n for a new game."
	case err != nil:
		msg, _ := rejection(err)
		g.message = msg
	default:
		g.message = ""
	}
}

// newGame replaces the session with a fresh board of the same size.
// A fixed seed is advanced so the next board differs.
func (g *Game) newGame(ctx context.Context) {
	if g.cfg.Seed != 0 {
		g.cfg.Seed++
	}
	engine, err := NewEngine(ctx, g.cfg, g.log)
	if err != nil {
		g.message = err.Error()
		return
	}
	g.engine = engine
	g.cursorRow, g.cursorCol = 0, 0
	g.message = ""
}

// status is the line shown under the board.
func (g *Game) status() string {
	switch g.engine.State() {
	case StateLost:
		return "BOOM! You hit a mine. Game Over."
	case StateWon:
		return "Congratulations! You cleared the board!"
	}
	line := fmt.Sprintf("Mines: %d  Flags: %d  Row %d Col %d",
		g.engine.Mines(), g.engine.FlagsPlaced(), g.cursorRow, g.cursorCol)
	if g.message != "" {
		line += "  " + g.message
	}
	return line
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
