package ui

import (
	"bufio"
	"fmt"
	"io"
)

// Grid is the player-visible board as seen by a renderer.
type Grid interface {
	Side() int
	Glyph(row, col int) rune
}

// Console writes the board as plain text.
type Console struct {
	out io.Writer
}

// NewConsole creates a console renderer writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Render prints the column header followed by one line per row.
func (c *Console) Render(g Grid) error {
	w := bufio.NewWriter(c.out)
	side := g.Side()

	fmt.Fprint(w, "\n   ")
	for col := 0; col < side; col++ {
		fmt.Fprintf(w, "%2d", col)
	}
	fmt.Fprint(w, "\n\n")

	for row := 0; row < side; row++ {
		fmt.Fprintf(w, "%2d ", row)
		for col := 0; col < side; col++ {
			fmt.Fprintf(w, " %c", g.Glyph(row, col))
		}
		fmt.Fprint(w, "\n")
	}

	return w.Flush()
}

// Message prints a line of text.
func (c *Console) Message(msg string) error {
	_, err := fmt.Fprintln(c.out, msg)
	return err
}

// Prompt prints text without a trailing newline.
func (c *Console) Prompt(msg string) error {
	_, err := fmt.Fprint(c.out, msg)
	return err
}
