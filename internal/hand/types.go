package hand

import "github.com/lox/pokerstats/internal/cards"

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

// NumStreets is the number of betting rounds in a flop game.
const NumStreets = 4

func (s Street) String() string {
	if s < Preflop || s > River {
		return "unknown"
	}
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// ActionKind is the tokenized action a hand history records.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Bet
	Raise
	AllIn
	PostSmallBlind
	PostBigBlind
	PostAnte
	PostStraddle
)

var actionKindNames = [...]string{
	"fold", "check", "call", "bet", "raise", "all-in",
	"post-sb", "post-bb", "post-ante", "post-straddle",
}

func (k ActionKind) String() string {
	if k < Fold || int(k) >= len(actionKindNames) {
		return "unknown"
	}
	return actionKindNames[k]
}

// IsForced reports whether the action is a blind, ante or straddle post.
func (k ActionKind) IsForced() bool {
	return k >= PostSmallBlind
}

// Game identifies the flop game variant.
type Game string

const (
	Holdem Game = "holdem"
	Omaha  Game = "omaha"
)

// Stakes describes the blind structure of a hand.
type Stakes struct {
	SmallBlind int64
	BigBlind   int64
	Ante       int64
	Currency   string
}

// PlayerSeat is a dealt-in player as recorded by the hand history.
type PlayerSeat struct {
	Name          string
	Seat          int
	StartingStack int64
	// HoleCards is nil unless the cards were revealed.
	HoleCards []cards.Card
}

// RawAction is one tokenized action. Amount is the number of chips the action
// adds to the pot and is zero for folds and checks.
type RawAction struct {
	Player string
	Street Street
	Kind   ActionKind
	Amount int64
}

// Board holds the community cards grouped by street.
type Board struct {
	Flop  []cards.Card
	Turn  cards.Card
	River cards.Card
}

// Cards returns the dealt community cards in order.
func (b Board) Cards() []cards.Card {
	out := make([]cards.Card, 0, 5)
	out = append(out, b.Flop...)
	if !b.Turn.IsZero() {
		out = append(out, b.Turn)
	}
	if !b.River.IsZero() {
		out = append(out, b.River)
	}
	return out
}

// Complete reports whether all five community cards are known.
func (b Board) Complete() bool {
	return len(b.Flop) == 3 && !b.Turn.IsZero() && !b.River.IsZero()
}

// Collection is a site-reported amount collected by a player.
type Collection struct {
	Player string
	Amount int64
}

// Input is the canonical, already tokenized record of one hand.
type Input struct {
	ID     string
	Site   string
	Game   Game
	Stakes Stakes
	Button int
	Seats  []PlayerSeat
	// Actions are in table-action order, forced posts included.
	Actions []RawAction
	Board   Board
	Rake    int64

	// TotalPot and Collected are optional site-reported figures used to
	// reconcile the replayed pot.
	TotalPot  int64
	Collected []Collection
}

// Layout is the table size used to name positions.
type Layout string

const (
	Layout6Max Layout = "6max"
	Layout9Max Layout = "9max"
)

// MaxSeats returns the number of seats the layout supports.
func (l Layout) MaxSeats() int {
	if l == Layout9Max {
		return 9
	}
	return 6
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == Layout6Max || l == Layout9Max
}

// Options control reconstruction.
type Options struct {
	Layout Layout
	// Tolerance is the allowed difference, in chips, between the replayed pot
	// and site-reported totals.
	Tolerance int64
}

// DefaultOptions returns 6-max with a one chip reconciliation tolerance.
func DefaultOptions() Options {
	return Options{Layout: Layout6Max, Tolerance: 1}
}
