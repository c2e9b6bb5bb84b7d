// Package evaluator ranks showdown hands through third-party evaluators.
package evaluator

import (
	"errors"
	"fmt"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

var (
	ErrIncompleteBoard = errors.New("board is incomplete")
	ErrHoleCards       = errors.New("wrong number of hole cards")
	ErrDuplicateCard   = errors.New("duplicate card")
	ErrUnsupportedGame = errors.New("unsupported game")
)

// Rank is a comparable hand strength. Higher is stronger; equal ranks tie.
type Rank int32

// Evaluator ranks a player's best hand from hole cards and a full board.
type Evaluator interface {
	Rank(game hand.Game, hole, board []cards.Card) (Rank, error)
}

// Describer is implemented by evaluators that can name the hand class of a
// rank they produced.
type Describer interface {
	Describe(r Rank) string
}

// Backend names accepted by New.
const (
	BackendChehsunliu = "chehsunliu"
	BackendPaulhankin = "paulhankin"
)

// New returns the evaluator registered under name.
func New(name string) (Evaluator, error) {
	switch name {
	case "", BackendChehsunliu:
		return Chehsunliu{}, nil
	case BackendPaulhankin:
		return Paulhankin{}, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}

func validate(game hand.Game, hole, board []cards.Card) error {
	if len(board) != 5 {
		return fmt.Errorf("%w: %d cards", ErrIncompleteBoard, len(board))
	}
	switch game {
	case hand.Holdem:
		if len(hole) != 2 {
			return fmt.Errorf("%w: %d for %s", ErrHoleCards, len(hole), game)
		}
	case hand.Omaha:
		if len(hole) < 4 || len(hole) > 6 {
			return fmt.Errorf("%w: %d for %s", ErrHoleCards, len(hole), game)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedGame, game)
	}
	if cards.HasDuplicates(hole, board) {
		return fmt.Errorf("%w: %s / %s", ErrDuplicateCard, cards.Join(hole), cards.Join(board))
	}
	return nil
}
