package hand

import (
	"fmt"
	"strings"
)

// Position is a table position relative to the button.
type Position int

const (
	PositionUnknown Position = iota
	UTG
	UTG1
	MP
	LJ
	HJ
	CO
	BTN
	SB
	BB
)

var positionNames = [...]string{"?", "UTG", "UTG1", "MP", "LJ", "HJ", "CO", "BTN", "SB", "BB"}

func (p Position) String() string {
	if p < PositionUnknown || int(p) >= len(positionNames) {
		return "?"
	}
	return positionNames[p]
}

// Positions lists every named position in preflop acting order.
func Positions() []Position {
	return []Position{UTG, UTG1, MP, LJ, HJ, CO, BTN, SB, BB}
}

// ParsePosition converts a position label to a Position.
func ParsePosition(label string) (Position, error) {
	for _, p := range Positions() {
		if strings.EqualFold(label, p.String()) {
			return p, nil
		}
	}
	return PositionUnknown, fmt.Errorf("unknown position %q", label)
}

// IsLate reports whether the position is eligible to steal the blinds.
func (p Position) IsLate() bool {
	return p == CO || p == BTN || p == SB
}

func earlyPositions(layout Layout) []Position {
	if layout == Layout9Max {
		return []Position{UTG, UTG1, MP, LJ, HJ, CO}
	}
	return []Position{UTG, MP, CO}
}

// PositionFor names the seat at offset clockwise from the button when n players
// are dealt in. Short-handed tables drop the earliest labels first, so the seat
// right of the button is always CO.
func PositionFor(layout Layout, n, offset int) Position {
	if n < 2 || offset < 0 || offset >= n {
		return PositionUnknown
	}
	if n == 2 {
		if offset == 0 {
			return BTN
		}
		return BB
	}
	switch offset {
	case 0:
		return BTN
	case 1:
		return SB
	case 2:
		return BB
	}
	early := earlyPositions(layout)
	rest := n - 3
	if rest > len(early) {
		return PositionUnknown
	}
	return early[len(early)-rest+offset-3]
}
