package swipe

import (
	"fmt"
	"strings"

	"github.com/go-drift/swipeactions/pkg/graphics"
)

// Direction is the edge from which the action strip is revealed.
type Direction int

const (
	// Trailing reveals actions from the right edge by swiping left.
	Trailing Direction = iota
	// Leading reveals actions from the left edge by swiping right.
	Leading
)

func (d Direction) String() string {
	switch d {
	case Leading:
		return "leading"
	case Trailing:
		return "trailing"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Alignment returns the alignment of the buttons inside the strip.
func (d Direction) Alignment() graphics.Alignment {
	if d == Leading {
		return graphics.AlignmentCenterLeft
	}
	return graphics.AlignmentCenterRight
}

// Anchor returns the scroll anchor used to close the row. It sits on the
// edge opposite the action strip, so closing pulls the content back over the
// buttons.
func (d Direction) Anchor() graphics.Alignment {
	if d == Leading {
		return graphics.AlignmentTopRight
	}
	return graphics.AlignmentTopLeft
}

// ParseDirection parses "leading" or "trailing".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "leading":
		return Leading, nil
	case "trailing", "":
		return Trailing, nil
	default:
		return Trailing, fmt.Errorf("swipe: unknown direction %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
