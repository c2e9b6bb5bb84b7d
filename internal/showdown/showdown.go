// Package showdown awards pots and decides which players reached and won a
// showdown.
package showdown

import (
	"fmt"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/evaluator"
	"github.com/lox/pokerstats/internal/hand"
)

// EvaluatorError means a contested pot could not be ranked, so showdown
// statistics for the hand are unavailable.
type EvaluatorError struct {
	HandID string
	Err    error
}

func (e *EvaluatorError) Error() string {
	return fmt.Sprintf("showdown for hand %s: %v", e.HandID, e.Err)
}

func (e *EvaluatorError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a hand.
type Result struct {
	// Available is false when the evaluator could not rank a contested pot;
	// Awards and WSDAmount are then empty.
	Available bool
	// Contested is set when two or more players were unfolded at the end.
	Contested bool
	// Participants reached the reveal; Revealed showed their hole cards.
	Participants []string
	Revealed     []string
	Winners      []string
	// IsShowdown is set when at least two players revealed.
	IsShowdown bool
	// WSDAmount is the pot money each player won at the reveal.
	WSDAmount map[string]int64
	// Awards is every chip pushed to a player, returned bets included.
	Awards   map[string]int64
	Returned map[string]int64
	// Hands names the hand class of every ranked player when the
	// evaluator implements evaluator.Describer.
	Hands map[string]string
	Pots  []Pot
	Board    []cards.Card
}

// WentToShowdown reports whether the player reached the reveal.
func (r Result) WentToShowdown(name string) bool {
	for _, p := range r.Participants {
		if p == name {
			return true
		}
	}
	return false
}

// Net returns the player's profit for the hand.
func (r Result) Net(p hand.PlayerState) int64 {
	return r.Awards[p.Name] - p.TotalContributed
}

// Resolve awards every pot layer of the hand.
func Resolve(h *hand.Reconstructed, ev evaluator.Evaluator) (Result, error) {
	res := Result{
		Board:     h.Board.Cards(),
		WSDAmount: make(map[string]int64),
		Awards:    make(map[string]int64),
		Returned:  make(map[string]int64),
	}

	unfolded := h.Unfolded()
	if len(unfolded) >= 2 {
		res.Contested = true
		for _, p := range unfolded {
			res.Participants = append(res.Participants, p.Name)
			if p.Revealed() {
				res.Revealed = append(res.Revealed, p.Name)
			}
		}
		res.IsShowdown = len(res.Revealed) >= 2
	}

	pots := BuildPots(h)
	takeRake(pots, h.Rake)

	r := ranker{h: h, ev: ev, ranks: make(map[string]evaluator.Rank)}
	won := make(map[string]bool)
	for i := range pots {
		pot := &pots[i]
		if pot.Returned {
			res.Awards[pot.Winners[0]] += pot.Amount
			res.Returned[pot.Winners[0]] += pot.Amount
			continue
		}

		if len(pot.Eligible) > 1 {
			winners, err := r.best(pot.Eligible)
			if err != nil {
				res.Awards, res.WSDAmount, res.Returned = nil, nil, nil
				return res, &EvaluatorError{HandID: h.ID, Err: err}
			}
			pot.Winners = winners
			pot.Contested = true
		} else {
			pot.Winners = pot.Eligible
		}

		for name, share := range split(pot.Amount, pot.Winners) {
			res.Awards[name] += share
			if pot.Contested {
				res.WSDAmount[name] += share
			}
			won[name] = true
		}
	}

	for _, p := range h.Players {
		if won[p.Name] {
			res.Winners = append(res.Winners, p.Name)
		}
	}
	if d, ok := ev.(evaluator.Describer); ok && len(r.ranks) > 0 {
		res.Hands = make(map[string]string, len(r.ranks))
		for name, rank := range r.ranks {
			res.Hands[name] = d.Describe(rank)
		}
	}
	res.Pots = pots
	res.Available = true
	return res, nil
}

// split divides amount evenly; the remainder goes to the first winner, who is
// the earliest clockwise from the button.
func split(amount int64, winners []string) map[string]int64 {
	out := make(map[string]int64, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return out
	}
	share := amount / int64(len(winners))
	for _, w := range winners {
		out[w] = share
	}
	out[winners[0]] += amount % int64(len(winners))
	return out
}

type ranker struct {
	h     *hand.Reconstructed
	ev    evaluator.Evaluator
	ranks map[string]evaluator.Rank
}

// best returns the revealed players holding the strongest hand, in the
// order given. Unrevealed players are treated as mucked.
func (r *ranker) best(eligible []string) ([]string, error) {
	var revealed []string
	for _, name := range eligible {
		if p, ok := r.h.Player(name); ok && p.Revealed() {
			revealed = append(revealed, name)
		}
	}
	switch len(revealed) {
	case 0:
		return nil, fmt.Errorf("no revealed hand among %v", eligible)
	case 1:
		return revealed, nil
	}

	var winners []string
	var top evaluator.Rank
	for _, name := range revealed {
		rank, err := r.rank(name)
		if err != nil {
			return nil, err
		}
		switch {
		case len(winners) == 0 || rank > top:
			top = rank
			winners = []string{name}
		case rank == top:
			winners = append(winners, name)
		}
	}
	return winners, nil
}

func (r *ranker) rank(name string) (evaluator.Rank, error) {
	if rank, ok := r.ranks[name]; ok {
		return rank, nil
	}
	p, _ := r.h.Player(name)
	rank, err := r.ev.Rank(r.h.Game, p.HoleCards, r.h.Board.Cards())
	if err != nil {
		return 0, fmt.Errorf("rank %s: %w", name, err)
	}
	r.ranks[name] = rank
	return rank, nil
}
