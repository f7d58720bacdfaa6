package ui

import (
	"fmt"

	"github.com/samdwyer/minesweeper/internal/gamedata"
)

// Screen layout
const (
	originX   = 4 // First board column, after the row labels
	originY   = 2 // First board row, after the column labels
	cellWidth = 2
)

// Renderer draws the board on a tcell screen.
type Renderer struct {
	screen *Screen
	theme  *gamedata.Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, theme *gamedata.Theme) *Renderer {
	return &Renderer{screen: screen, theme: theme}
}

// Render draws labels, the board with the cursor cell highlighted, and a status line.
func (r *Renderer) Render(g Grid, cursorRow, cursorCol int, status string) {
	r.screen.Clear()
	side := g.Side()
	base := r.theme.Base()

	for col := 0; col < side; col++ {
		r.drawText(originX+col*cellWidth, 0, fmt.Sprintf("%2d", col))
	}

	for row := 0; row < side; row++ {
		r.drawText(0, originY+row, fmt.Sprintf("%2d", row))
		for col := 0; col < side; col++ {
			glyph := g.Glyph(row, col)
			style := r.theme.Glyph(glyph)
			if row == cursorRow && col == cursorCol {
				style = r.theme.Cursor(glyph)
			}
			x := originX + col*cellWidth
			r.screen.SetContent(x, originY+row, ' ', base)
			r.screen.SetContent(x+1, originY+row, glyph, style)
		}
	}

	r.drawText(0, originY+side+1, status)
	r.drawText(0, originY+side+2, "arrows/hjkl move  o/space open  f flag  n new  q quit")

	r.screen.Show()
}

func (r *Renderer) drawText(x, y int, msg string) {
	style := r.theme.Base()
	for i, ch := range []rune(msg) {
		r.screen.SetContent(x+i, y, ch, style)
	}
}
