package evaluator

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

// Paulhankin evaluates Hold'em with github.com/paulhankin/poker's seven-card
// evaluator.
type Paulhankin struct{}

func (Paulhankin) Rank(game hand.Game, hole, board []cards.Card) (Rank, error) {
	if game != hand.Holdem {
		return 0, fmt.Errorf("%w: %q with paulhankin", ErrUnsupportedGame, game)
	}
	if err := validate(game, hole, board); err != nil {
		return 0, err
	}

	var seven [7]poker.Card
	for i, c := range append(append([]cards.Card{}, board...), hole...) {
		pc, err := toPaulhankin(c)
		if err != nil {
			return 0, err
		}
		seven[i] = pc
	}
	return Rank(poker.Eval7(&seven)), nil
}

// paulhankin/poker orders suits club, diamond, heart, spade and counts the
// ace as rank 1.
func toPaulhankin(c cards.Card) (poker.Card, error) {
	var suit poker.Suit
	switch c.Suit {
	case cards.Clubs:
		suit = 0
	case cards.Diamonds:
		suit = 1
	case cards.Hearts:
		suit = 2
	case cards.Spades:
		suit = 3
	}
	rank := int(c.Rank)
	if c.Rank == cards.Ace {
		rank = 1
	}
	pc, err := poker.MakeCard(suit, poker.Rank(rank))
	if err != nil {
		return pc, fmt.Errorf("convert %s: %w", c, err)
	}
	return pc, nil
}
