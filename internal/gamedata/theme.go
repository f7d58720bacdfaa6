package gamedata

import "github.com/gdamore/tcell/v2"

// GlyphColor assigns a colour to one board glyph.
type GlyphColor struct {
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	Bold  bool   `json:"bold"`
}

// ThemeFile represents the structure of theme.json.
type ThemeFile struct {
	Foreground string       `json:"foreground"`
	Background string       `json:"background"`
	Cursor     string       `json:"cursor"` // Background of the selected cell
	Glyphs     []GlyphColor `json:"glyphs"`
}

// Theme maps board glyphs to terminal styles.
type Theme struct {
	base   tcell.Style
	cursor tcell.Color
	glyphs map[rune]tcell.Style
}

// NewTheme resolves a theme file into styles. Bad colours fall back to the base style.
func NewTheme(file ThemeFile) *Theme {
	base := tcell.StyleDefault.
		Foreground(colorOr(file.Foreground, tcell.ColorSilver)).
		Background(colorOr(file.Background, tcell.ColorBlack))

	t := &Theme{
		base:   base,
		cursor: colorOr(file.Cursor, tcell.ColorNavy),
		glyphs: make(map[rune]tcell.Style, len(file.Glyphs)),
	}
	for _, g := range file.Glyphs {
		if len(g.Glyph) == 0 {
			continue
		}
		st := base.Foreground(colorOr(g.Color, tcell.ColorSilver)).Bold(g.Bold)
		t.glyphs[rune(g.Glyph[0])] = st
	}
	return t
}

// LoadTheme loads the embedded theme.json.
func LoadTheme() (*Theme, error) {
	file, err := Load[ThemeFile]("theme.json")
	if err != nil {
		return nil, err
	}
	return NewTheme(file), nil
}

// Base returns the style for text that is not a board glyph.
func (t *Theme) Base() tcell.Style {
	return t.base
}

// Glyph returns the style for a board glyph.
func (t *Theme) Glyph(r rune) tcell.Style {
	if st, ok := t.glyphs[r]; ok {
		return st
	}
	return t.base
}

// Cursor returns the glyph style with the cursor highlight applied.
func (t *Theme) Cursor(r rune) tcell.Style {
	return t.Glyph(r).Background(t.cursor)
}
