package game

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrMalformedCommand = errors.New("malformed command")
	ErrUnknownAction    = errors.New("unknown action")
	ErrOutOfBounds      = errors.New("coordinates out of bounds")
	ErrCellRevealed     = errors.New("cannot flag a revealed cell")
	ErrCellFlagged      = errors.New("cell is flagged")
	ErrGameOver         = errors.New("game is over")
)

// Action is what a command does to its cell.
type Action int

const (
	ActionUnknown Action = iota
	ActionOpen
	ActionFlag
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionFlag:
		return "flag"
	default:
		return "unknown"
	}
}

// ParseAction maps 'o' and 'f' in either case; anything else is ActionUnknown.
func ParseAction(r rune) Action {
	switch unicode.ToLower(r) {
	case 'o':
		return ActionOpen
	case 'f':
		return ActionFlag
	default:
		return ActionUnknown
	}
}

// Command is one turn of input.
type Command struct {
	Row    int
	Col    int
	Action Action
}

// ParseCommand reads "row col action". Coordinates are not range-checked and
// an unrecognised action character yields ActionUnknown; both are reported
// when the command is applied.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Command{}, ErrMalformedCommand
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return Command{}, ErrMalformedCommand
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return Command{}, ErrMalformedCommand
	}

	action := ActionUnknown
	if r := []rune(fields[2]); len(r) == 1 {
		action = ParseAction(r[0])
	}

	return Command{Row: row, Col: col, Action: action}, nil
}
