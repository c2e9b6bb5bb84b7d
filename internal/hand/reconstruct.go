package hand

import (
	"sort"
)

// Reconstruct replays a hand's actions, verifying turn order, stack limits
// and pot arithmetic, and returns the resulting timeline.
func Reconstruct(in Input, opts Options) (*Reconstructed, error) {
	if opts.Layout == "" {
		opts.Layout = Layout6Max
	}
	if in.ID == "" {
		return nil, failf("", -1, ErrInvalidAction, "missing hand id")
	}

	players, err := seatPlayers(in, opts.Layout)
	if err != nil {
		return nil, err
	}

	h := &Reconstructed{
		ID:      in.ID,
		Site:    in.Site,
		Game:    in.Game,
		Stakes:  in.Stakes,
		Layout:  opts.Layout,
		Button:  players[len(players)-1].Seat,
		Players: players,
		Board:   in.Board,
		Rake:    in.Rake,
		index:   make(map[string]int, len(players)),
	}
	if h.Game == "" {
		h.Game = Holdem
	}
	for i, p := range players {
		h.index[p.Name] = i
	}

	r := &replayer{
		hand:      h,
		streetBet: make([]int64, len(players)),
		acted:     make([]bool, len(players)),
		lastActor: -1,
		straddler: -1,
	}
	for seq, a := range in.Actions {
		if err := r.apply(seq, a); err != nil {
			return nil, err
		}
	}
	h.FinalPot = r.pot

	if err := reconcile(h, in, opts.Tolerance); err != nil {
		return nil, err
	}
	return h, nil
}

// seatPlayers validates the seating and orders players clockwise from the
// seat left of the button.
func seatPlayers(in Input, layout Layout) ([]PlayerState, error) {
	n := len(in.Seats)
	if n < 2 {
		return nil, failf(in.ID, -1, ErrInvalidAction, "%d players dealt in", n)
	}
	if n > layout.MaxSeats() {
		return nil, failf(in.ID, -1, ErrLayout, "%d players at a %s table", n, layout)
	}

	seats := make([]PlayerSeat, n)
	copy(seats, in.Seats)
	sort.Slice(seats, func(i, j int) bool { return seats[i].Seat < seats[j].Seat })

	names := make(map[string]struct{}, n)
	for i, s := range seats {
		if s.Name == "" {
			return nil, failf(in.ID, -1, ErrInvalidAction, "seat %d has no player name", s.Seat)
		}
		if _, dup := names[s.Name]; dup {
			return nil, failf(in.ID, -1, ErrInvalidAction, "player %s seated twice", s.Name)
		}
		names[s.Name] = struct{}{}
		if i > 0 && seats[i-1].Seat == s.Seat {
			return nil, failf(in.ID, -1, ErrInvalidAction, "seat %d used twice", s.Seat)
		}
		if s.StartingStack <= 0 {
			return nil, failf(in.ID, -1, ErrInvalidAction, "player %s has no chips", s.Name)
		}
	}

	button := buttonIndex(seats, in.Button)

	players := make([]PlayerState, n)
	for offset := 1; offset <= n; offset++ {
		s := seats[(button+offset)%n]
		players[offset-1] = PlayerState{
			Name:          s.Name,
			Seat:          s.Seat,
			Position:      PositionFor(layout, n, offset%n),
			StartingStack: s.StartingStack,
			IsActive:      true,
			HoleCards:     s.HoleCards,
		}
	}

	for i := range players {
		var deepest int64
		for j := range players {
			if j != i && players[j].StartingStack > deepest {
				deepest = players[j].StartingStack
			}
		}
		effective := min(players[i].StartingStack, deepest)
		if in.Stakes.BigBlind > 0 {
			players[i].EffectiveStackBB = float64(effective) / float64(in.Stakes.BigBlind)
		}
	}
	return players, nil
}

// buttonIndex finds the button among seats sorted by seat number. A dead
// button moves to the nearest dealt-in seat counter-clockwise.
func buttonIndex(seats []PlayerSeat, button int) int {
	best := len(seats) - 1
	for i, s := range seats {
		if s.Seat == button {
			return i
		}
		if s.Seat < button {
			best = i
		}
	}
	return best
}

type replayer struct {
	hand      *Reconstructed
	street    Street
	streetBet []int64
	acted     []bool // acted since the last bet or raise on this street
	maxBet    int64
	pot       int64
	lastActor int
	straddler int
	voluntary bool
}

func (r *replayer) apply(seq int, a RawAction) error {
	h := r.hand
	idx, ok := h.index[a.Player]
	if !ok {
		return failf(h.ID, seq, ErrUnknownPlayer, "%q", a.Player)
	}
	if a.Street < Preflop || a.Street > River {
		return failf(h.ID, seq, ErrInvalidAction, "street %d", a.Street)
	}
	if a.Street < r.street {
		return failf(h.ID, seq, ErrInvalidAction, "%s action after %s", a.Street, r.street)
	}
	if a.Street > r.street {
		if pending := r.nextToAct(); pending >= 0 {
			return failf(h.ID, seq, ErrOutOfTurn, "%s action while %s still to act on the %s", a.Street, h.Players[pending].Name, r.street)
		}
		r.street = a.Street
		clear(r.streetBet)
		clear(r.acted)
		r.maxBet = 0
		r.lastActor = -1
	}
	if a.Amount < 0 {
		return failf(h.ID, seq, ErrInvalidAction, "negative amount %d", a.Amount)
	}

	p := &h.Players[idx]
	if !p.IsActive {
		return failf(h.ID, seq, ErrInvalidAction, "%s acted after folding", p.Name)
	}
	if p.IsAllIn {
		return failf(h.ID, seq, ErrInvalidAction, "%s acted after going all-in", p.Name)
	}
	remaining := p.Remaining()
	if a.Amount > remaining {
		return failf(h.ID, seq, ErrOverContribution, "%s put in %d with %d behind", p.Name, a.Amount, remaining)
	}

	if a.Kind.IsForced() {
		return r.post(seq, idx, a)
	}

	if expected := r.nextToAct(); expected != idx {
		if expected < 0 {
			return failf(h.ID, seq, ErrOutOfTurn, "%s acted with no decision pending", p.Name)
		}
		return failf(h.ID, seq, ErrOutOfTurn, "%s acted, expected %s", p.Name, h.Players[expected].Name)
	}

	toCall := r.maxBet - r.streetBet[idx]
	base, err := r.resolveBase(seq, p, a, toCall)
	if err != nil {
		return err
	}
	if base == Fold {
		p.IsActive = false
	}

	kind := base
	if a.Amount > 0 && a.Amount == remaining {
		kind = AllIn
		p.IsAllIn = true
	}
	raised := r.maxBet
	r.record(seq, idx, a, kind, base, toCall, false)
	if r.maxBet > raised {
		clear(r.acted)
	}
	r.acted[idx] = true
	r.lastActor = idx
	r.voluntary = true
	return nil
}

// resolveBase checks an action against the bet it faces and returns the
// underlying fold, check, call, bet or raise.
func (r *replayer) resolveBase(seq int, p *PlayerState, a RawAction, toCall int64) (ActionKind, error) {
	id := r.hand.ID
	switch a.Kind {
	case Fold, Check:
		if a.Amount != 0 {
			return 0, failf(id, seq, ErrInvalidAction, "%s %s with amount %d", p.Name, a.Kind, a.Amount)
		}
		if a.Kind == Check && toCall > 0 {
			return 0, failf(id, seq, ErrInvalidAction, "%s checked facing a bet of %d", p.Name, toCall)
		}
		return a.Kind, nil

	case Call:
		switch {
		case toCall == 0:
			return 0, failf(id, seq, ErrInvalidAction, "%s called with nothing to call", p.Name)
		case a.Amount == 0:
			return 0, failf(id, seq, ErrInvalidAction, "%s called for nothing", p.Name)
		case a.Amount > toCall:
			return 0, failf(id, seq, ErrInvalidAction, "%s called %d facing %d", p.Name, a.Amount, toCall)
		case a.Amount < toCall && a.Amount != p.Remaining():
			return 0, failf(id, seq, ErrInvalidAction, "%s called %d of %d without being all-in", p.Name, a.Amount, toCall)
		}
		return Call, nil

	case Bet, Raise, AllIn:
		if a.Amount == 0 {
			return 0, failf(id, seq, ErrInvalidAction, "%s %s for nothing", p.Name, a.Kind)
		}
		if a.Kind == AllIn && a.Amount != p.Remaining() {
			return 0, failf(id, seq, ErrInvalidAction, "%s all-in for %d with %d behind", p.Name, a.Amount, p.Remaining())
		}
		if a.Amount > toCall {
			if r.maxBet == 0 {
				return Bet, nil
			}
			return Raise, nil
		}
		if a.Kind == AllIn {
			return Call, nil
		}
		return 0, failf(id, seq, ErrInvalidAction, "%s %s of %d does not exceed %d to call", p.Name, a.Kind, a.Amount, toCall)
	}
	return 0, failf(id, seq, ErrInvalidAction, "unknown action kind %d", a.Kind)
}

func (r *replayer) post(seq, idx int, a RawAction) error {
	h := r.hand
	p := &h.Players[idx]
	if r.street != Preflop || r.voluntary {
		return failf(h.ID, seq, ErrInvalidAction, "%s posted %s after voluntary action", p.Name, a.Kind)
	}
	if a.Amount == 0 {
		return failf(h.ID, seq, ErrInvalidAction, "%s posted %s for nothing", p.Name, a.Kind)
	}
	if a.Amount == p.Remaining() {
		p.IsAllIn = true
	}
	if a.Kind == PostStraddle {
		r.straddler = idx
	}
	r.record(seq, idx, a, a.Kind, a.Kind, r.maxBet-r.streetBet[idx], true)
	return nil
}

func (r *replayer) record(seq, idx int, a RawAction, kind, base ActionKind, toCall int64, forced bool) {
	h := r.hand
	p := &h.Players[idx]
	before := r.pot
	p.TotalContributed += a.Amount
	r.pot += a.Amount
	if kind != PostAnte {
		r.streetBet[idx] += a.Amount
		r.maxBet = max(r.maxBet, r.streetBet[idx])
	}
	h.Actions = append(h.Actions, ResolvedAction{
		Player:            p.Name,
		Seat:              p.Seat,
		Street:            r.street,
		Kind:              kind,
		Base:              base,
		Amount:            a.Amount,
		ToCall:            toCall,
		TotalBetForStreet: r.streetBet[idx],
		PotBefore:         before,
		PotAfter:          r.pot,
		SequenceIndex:     seq,
		Forced:            forced,
	})
	h.PotLedger = append(h.PotLedger, r.pot)
}

// nextToAct returns the index of the player whose decision is pending, or -1
// when the betting round is closed. Posting a blind is not a decision, so the
// big blind keeps its option until it acts.
func (r *replayer) nextToAct() int {
	players := r.hand.Players
	n := len(players)

	var live, open int
	lone := -1
	for i, p := range players {
		if !p.IsActive {
			continue
		}
		live++
		if !p.IsAllIn {
			open++
			lone = i
		}
	}
	if live < 2 || open == 0 {
		return -1
	}
	if open == 1 && r.streetBet[lone] >= r.maxBet {
		return -1
	}

	var start int
	switch {
	case r.lastActor >= 0:
		start = r.lastActor + 1
	case r.street != Preflop:
		start = 0
	case r.straddler >= 0:
		start = r.straddler + 1
	case n == 2:
		start = 1
	default:
		start = 2
	}
	for i := 0; i < n; i++ {
		j := (start + i) % n
		p := players[j]
		if !p.IsActive || p.IsAllIn {
			continue
		}
		if !r.acted[j] || r.streetBet[j] < r.maxBet {
			return j
		}
	}
	return -1
}

// reconcile checks the replayed pot against the rake and any site-reported
// totals. Sites may report figures before or after returning an uncalled bet,
// so either is accepted.
func reconcile(h *Reconstructed, in Input, tolerance int64) error {
	if h.Rake < 0 || h.Rake > h.FinalPot {
		return failf(h.ID, -1, ErrPotMismatch, "rake %d with pot %d", h.Rake, h.FinalPot)
	}
	candidates := []int64{h.FinalPot, h.FinalPot - uncalled(h.Players)}
	within := func(reported int64) bool {
		for _, c := range candidates {
			if abs(reported-c) <= tolerance {
				return true
			}
		}
		return false
	}

	if in.TotalPot > 0 && !within(in.TotalPot) {
		return failf(h.ID, -1, ErrPotMismatch, "site pot %d, replayed %d", in.TotalPot, h.FinalPot)
	}
	if len(in.Collected) > 0 {
		sum := h.Rake
		for _, c := range in.Collected {
			if _, ok := h.index[c.Player]; !ok {
				return failf(h.ID, -1, ErrUnknownPlayer, "%q collected %d", c.Player, c.Amount)
			}
			sum += c.Amount
		}
		if !within(sum) {
			return failf(h.ID, -1, ErrPotMismatch, "collected %d plus rake %d, replayed %d", sum-h.Rake, h.Rake, h.FinalPot)
		}
	}
	return nil
}

// uncalled returns the part of the largest contribution nobody matched.
func uncalled(players []PlayerState) int64 {
	var first, second int64
	for _, p := range players {
		switch c := p.TotalContributed; {
		case c > first:
			first, second = c, first
		case c > second:
			second = c
		}
	}
	return first - second
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
