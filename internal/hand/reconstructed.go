package hand

import "github.com/lox/pokerstats/internal/cards"

// PlayerState is a seat after the hand has been replayed.
type PlayerState struct {
	Name             string
	Seat             int
	Position         Position
	StartingStack    int64
	TotalContributed int64
	// IsActive is false once the player folds.
	IsActive bool
	IsAllIn  bool
	// HoleCards is nil unless the cards were revealed.
	HoleCards []cards.Card
	// EffectiveStackBB is the smaller of the player's stack and the deepest
	// opposing stack, in big blinds.
	EffectiveStackBB float64
}

// Revealed reports whether the player's hole cards are known.
func (p PlayerState) Revealed() bool {
	return p.HoleCards != nil
}

// Remaining returns the chips the player still has behind.
func (p PlayerState) Remaining() int64 {
	return p.StartingStack - p.TotalContributed
}

// ResolvedAction is a replayed action with its pot arithmetic.
type ResolvedAction struct {
	Player string
	Seat   int
	Street Street
	// Kind is AllIn whenever the action empties the stack.
	Kind ActionKind
	// Base is the underlying fold, check, call, bet or raise, or the post kind
	// for forced actions.
	Base ActionKind
	// Amount is the chips added by this action.
	Amount int64
	// ToCall is what the player faced before acting.
	ToCall            int64
	TotalBetForStreet int64
	PotBefore         int64
	PotAfter          int64
	SequenceIndex     int
	Forced            bool
}

// IsAggressive reports whether the action is a bet or raise.
func (a ResolvedAction) IsAggressive() bool {
	return !a.Forced && (a.Base == Bet || a.Base == Raise)
}

// Reconstructed is the authoritative timeline of a hand. It is built once by
// Reconstruct and never modified afterwards.
type Reconstructed struct {
	ID     string
	Site   string
	Game   Game
	Stakes Stakes
	Layout Layout
	Button int
	// Players are ordered clockwise starting with the seat left of the
	// button; the button is last.
	Players   []PlayerState
	Actions   []ResolvedAction
	PotLedger []int64
	Board     Board
	Rake      int64
	// FinalPot is the sum of every contribution, rake included.
	FinalPot int64

	index map[string]int
}

// NetPot returns the final pot less rake, the chips paid out to players.
func (h *Reconstructed) NetPot() int64 {
	return h.FinalPot - h.Rake
}

// Player looks up a player by name.
func (h *Reconstructed) Player(name string) (PlayerState, bool) {
	i, ok := h.index[name]
	if !ok {
		return PlayerState{}, false
	}
	return h.Players[i], true
}

// ActionsOn returns the actions taken on one street.
func (h *Reconstructed) ActionsOn(street Street) []ResolvedAction {
	var out []ResolvedAction
	for _, a := range h.Actions {
		if a.Street == street {
			out = append(out, a)
		}
	}
	return out
}

// LastStreet returns the latest street with any action.
func (h *Reconstructed) LastStreet() Street {
	last := Preflop
	for _, a := range h.Actions {
		if a.Street > last {
			last = a.Street
		}
	}
	return last
}

// Unfolded returns the players still in the hand at the end.
func (h *Reconstructed) Unfolded() []PlayerState {
	var out []PlayerState
	for _, p := range h.Players {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}
