package evaluator

import (
	"github.com/chehsunliu/poker"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

// worstRank is the weakest five-card rank chehsunliu/poker returns; lower
// values are stronger there, so ranks are flipped.
const worstRank = 7462

// Chehsunliu evaluates Hold'em and Omaha with github.com/chehsunliu/poker.
type Chehsunliu struct{}

func (Chehsunliu) Rank(game hand.Game, hole, board []cards.Card) (Rank, error) {
	if err := validate(game, hole, board); err != nil {
		return 0, err
	}

	if game == hand.Holdem {
		all := make([]poker.Card, 0, 7)
		for _, c := range board {
			all = append(all, toChehsunliu(c))
		}
		for _, c := range hole {
			all = append(all, toChehsunliu(c))
		}
		return Rank(worstRank + 1 - poker.Evaluate(all)), nil
	}

	// Omaha plays exactly two hole cards with three board cards.
	best := int32(worstRank + 1)
	five := make([]poker.Card, 5)
	for i := 0; i < len(hole); i++ {
		for j := i + 1; j < len(hole); j++ {
			five[0], five[1] = toChehsunliu(hole[i]), toChehsunliu(hole[j])
			for a := 0; a < len(board); a++ {
				for b := a + 1; b < len(board); b++ {
					for c := b + 1; c < len(board); c++ {
						five[2] = toChehsunliu(board[a])
						five[3] = toChehsunliu(board[b])
						five[4] = toChehsunliu(board[c])
						if r := poker.Evaluate(five); r < best {
							best = r
						}
					}
				}
			}
		}
	}
	return Rank(worstRank + 1 - best), nil
}

// Describe returns the hand class name, e.g. "Full House".
func (Chehsunliu) Describe(r Rank) string {
	return poker.RankString(int32(worstRank + 1 - r))
}

func toChehsunliu(c cards.Card) poker.Card {
	return poker.NewCard(c.String())
}
