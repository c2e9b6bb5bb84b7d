package showdown

import (
	"sort"

	"github.com/lox/pokerstats/internal/hand"
)

// Pot is one layer of the pot, bounded by an all-in contribution level.
type Pot struct {
	Amount int64
	// Level is the per-player contribution cap of this layer.
	Level        int64
	Contributors []string
	// Eligible are the unfolded contributors, clockwise from the button.
	Eligible []string
	Winners  []string
	// Returned marks an uncalled layer funded by a single player.
	Returned bool
	// Contested is set when two or more eligible players went to the reveal.
	Contested bool
}

// BuildPots splits the contributions of a hand into a main pot and side pots.
// Layers are bounded by each all-in level and by the largest matched
// contribution, so an uncalled bet ends up alone in the top layer.
func BuildPots(h *hand.Reconstructed) []Pot {
	bounds := make(map[int64]bool)
	var top, matched int64
	for _, p := range h.Players {
		c := p.TotalContributed
		if p.IsAllIn && c > 0 {
			bounds[c] = true
		}
		switch {
		case c > top:
			top, matched = c, top
		case c > matched:
			matched = c
		}
	}
	bounds[top] = true
	bounds[matched] = true

	levels := make([]int64, 0, len(bounds))
	for level := range bounds {
		if level > 0 {
			levels = append(levels, level)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	var pots []Pot
	var carry int64
	var prev int64
	for _, level := range levels {
		pot := Pot{Level: level, Amount: carry}
		carry = 0
		for _, p := range h.Players {
			c := min(p.TotalContributed, level) - prev
			if c <= 0 {
				continue
			}
			pot.Amount += c
			pot.Contributors = append(pot.Contributors, p.Name)
			if p.IsActive {
				pot.Eligible = append(pot.Eligible, p.Name)
			}
		}
		prev = level

		switch {
		case pot.Amount == 0:
			continue
		case len(pot.Contributors) == 1 && len(pot.Eligible) == 1:
			pot.Returned = true
			pot.Winners = pot.Eligible
		case len(pot.Eligible) == 0:
			// Nobody left can win this layer; it plays with the one below.
			if n := len(pots); n > 0 {
				pots[n-1].Amount += pot.Amount
			} else {
				carry = pot.Amount
			}
			continue
		}
		pots = append(pots, pot)
	}
	if carry > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += carry
	}
	return pots
}

// takeRake removes the rake from the main pot first, then later layers.
func takeRake(pots []Pot, rake int64) {
	for i := range pots {
		if rake <= 0 {
			return
		}
		if pots[i].Returned {
			continue
		}
		take := min(rake, pots[i].Amount)
		pots[i].Amount -= take
		rake -= take
	}
}
