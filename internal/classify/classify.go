// Package classify turns a reconstructed hand into statistical events,
// separating the opportunity for each metric from its occurrence.
package classify

import "github.com/lox/pokerstats/internal/hand"

// streetState is the scratch state for one betting round.
type streetState struct {
	street      hand.Street
	aggressions int
	aggressor   string
	opener      string
	// callersSinceRaise lists players who called the latest bet or raise.
	callersSinceRaise []string
	// entered is set once anyone calls or raises voluntarily.
	entered bool

	acted        map[string]bool
	raised       map[string]bool
	checked      map[string]bool
	checkRaised  map[string]bool
	cbettor      string
	cbetAnswered map[string]bool
}

func newStreetState(street hand.Street) *streetState {
	return &streetState{
		street:       street,
		acted:        make(map[string]bool),
		raised:       make(map[string]bool),
		checked:      make(map[string]bool),
		checkRaised:  make(map[string]bool),
		cbetAnswered: make(map[string]bool),
	}
}

type classifier struct {
	h      *hand.Reconstructed
	st     *streetState
	events []Event

	lastStreetAggressor string
	folded              map[string]bool
	vpip                map[string]bool
	firstPreflop        map[string]bool
	facedThreeBet       map[string]bool
}

// Classify walks the hand's actions in order and returns every triggered
// event. The hand is not modified.
func Classify(h *hand.Reconstructed) []Event {
	c := &classifier{
		h:             h,
		folded:        make(map[string]bool),
		vpip:          make(map[string]bool),
		firstPreflop:  make(map[string]bool),
		facedThreeBet: make(map[string]bool),
	}
	for _, a := range h.Actions {
		if c.st == nil || a.Street != c.st.street {
			c.advance(a.Street)
		}
		if a.Forced {
			continue
		}
		c.action(a)
	}
	return c.events
}

func (c *classifier) advance(next hand.Street) {
	c.lastStreetAggressor = ""
	if c.st != nil && c.st.street == next-1 {
		c.lastStreetAggressor = c.st.aggressor
	}
	c.st = newStreetState(next)
}

func (c *classifier) emit(player string, kind EventKind) {
	c.events = append(c.events, Event{Player: player, Kind: kind, Street: c.st.street})
}

func (c *classifier) action(a hand.ResolvedAction) {
	st := c.st
	name := a.Player

	if st.street == hand.Preflop {
		c.preflop(a)
	} else {
		c.postflop(a)
	}

	switch a.Base {
	case hand.Bet:
		c.emit(name, BetAction)
	case hand.Raise:
		c.emit(name, RaiseAction)
	case hand.Call:
		c.emit(name, CallAction)
	case hand.Check:
		c.emit(name, CheckAction)
	case hand.Fold:
		c.emit(name, FoldAction)
	}

	st.acted[name] = true
	switch {
	case a.IsAggressive():
		if st.aggressions == 0 {
			st.opener = name
		}
		st.aggressions++
		st.aggressor = name
		st.raised[name] = true
		st.callersSinceRaise = st.callersSinceRaise[:0]
		st.entered = true
	case a.Base == hand.Call:
		if st.aggressions > 0 {
			st.callersSinceRaise = append(st.callersSinceRaise, name)
		}
		st.entered = true
	case a.Base == hand.Check:
		st.checked[name] = true
	case a.Base == hand.Fold:
		c.folded[name] = true
	}
}

func (c *classifier) preflop(a hand.ResolvedAction) {
	st := c.st
	name := a.Player
	aggressive := a.IsAggressive()
	player, _ := c.h.Player(name)

	if !c.firstPreflop[name] {
		c.firstPreflop[name] = true
		if aggressive {
			c.emit(name, PFR)
		}
	}
	if !c.vpip[name] && (aggressive || a.Base == hand.Call) {
		c.vpip[name] = true
		c.emit(name, VPIP)
	}

	if !st.entered && player.Position != hand.BB {
		c.emit(name, OpenRaiseOpportunity)
		if aggressive {
			c.emit(name, OpenRaise)
		}
		if player.Position.IsLate() {
			c.emit(name, StealOpportunity)
			if aggressive {
				c.emit(name, Steal)
			}
		}
	}
	if st.aggressions == 0 && a.Base == hand.Call && player.Position != hand.BB {
		c.emit(name, Limp)
	}

	if st.aggressions == 1 && !st.raised[name] {
		c.emit(name, ThreeBetOpportunity)
		if aggressive {
			c.emit(name, ThreeBet)
		}
		if len(st.callersSinceRaise) > 0 {
			c.emit(name, SqueezeOpportunity)
			if aggressive {
				c.emit(name, Squeeze)
			}
		}
	}

	if st.aggressions == 2 && !st.raised[name] {
		c.emit(name, FourBetOpportunity)
		if aggressive {
			c.emit(name, FourBet)
		}
	}

	if st.aggressions == 2 && name == st.opener && !c.facedThreeBet[name] {
		c.facedThreeBet[name] = true
		c.emit(name, FoldToThreeBetOpportunity)
		if a.Base == hand.Fold {
			c.emit(name, FoldToThreeBet)
		}
	}
}

func (c *classifier) postflop(a hand.ResolvedAction) {
	st := c.st
	name := a.Player
	last := c.lastStreetAggressor

	if st.cbettor != "" && st.aggressions == 1 && name != st.cbettor && !st.cbetAnswered[name] {
		st.cbetAnswered[name] = true
		c.emit(name, FoldToCBetOpportunity)
		if a.Base == hand.Fold {
			c.emit(name, FoldToCBet)
		}
	}

	if st.aggressions == 0 {
		switch {
		case name == last && !st.acted[name]:
			c.emit(name, CBetOpportunity)
			if a.Base == hand.Bet {
				c.emit(name, CBet)
				st.cbettor = name
			}
		case a.Base == hand.Bet && last != "" && !c.folded[last] && !st.acted[last]:
			c.emit(name, DonkBet)
		}
	}

	if a.Base == hand.Raise && st.checked[name] && !st.checkRaised[name] {
		st.checkRaised[name] = true
		c.emit(name, CheckRaise)
	}

	if a.Base == hand.Bet && a.PotBefore > 0 {
		c.emit(name, BetSize(a.Amount, a.PotBefore))
	}
}
