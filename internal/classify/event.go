package classify

import "github.com/lox/pokerstats/internal/hand"

// EventKind is a statistical opportunity or occurrence.
type EventKind int

const (
	VPIP EventKind = iota
	PFR
	ThreeBetOpportunity
	ThreeBet
	FourBetOpportunity
	FourBet
	SqueezeOpportunity
	Squeeze
	StealOpportunity
	Steal
	FoldToThreeBetOpportunity
	FoldToThreeBet
	OpenRaiseOpportunity
	OpenRaise
	Limp
	CBetOpportunity
	CBet
	FoldToCBetOpportunity
	FoldToCBet
	DonkBet
	CheckRaise
	BetAction
	RaiseAction
	CallAction
	CheckAction
	FoldAction
	BetSizeThird
	BetSizeHalf
	BetSizeTwoThirds
	BetSizePot
	BetSizeOverbet

	numEventKinds
)

var eventKindNames = [...]string{
	"vpip", "pfr",
	"three_bet_opp", "three_bet",
	"four_bet_opp", "four_bet",
	"squeeze_opp", "squeeze",
	"steal_opp", "steal",
	"fold_to_three_bet_opp", "fold_to_three_bet",
	"open_raise_opp", "open_raise",
	"limp",
	"cbet_opp", "cbet",
	"fold_to_cbet_opp", "fold_to_cbet",
	"donk_bet", "check_raise",
	"bet", "raise", "call", "check", "fold",
	"bet_size_third", "bet_size_half", "bet_size_two_thirds", "bet_size_pot", "bet_size_overbet",
}

func (k EventKind) String() string {
	if k < 0 || k >= numEventKinds {
		return "unknown"
	}
	return eventKindNames[k]
}

// Kinds returns every event kind.
func Kinds() []EventKind {
	out := make([]EventKind, numEventKinds)
	for i := range out {
		out[i] = EventKind(i)
	}
	return out
}

// Event is one classified opportunity or occurrence for a player.
type Event struct {
	Player string
	Kind   EventKind
	Street hand.Street
}

// BetSize buckets a postflop bet by its fraction of the pot before it.
func BetSize(amount, potBefore int64) EventKind {
	ratio := float64(amount) / float64(potBefore)
	switch {
	case ratio <= 0.4:
		return BetSizeThird
	case ratio <= 0.58:
		return BetSizeHalf
	case ratio <= 0.8:
		return BetSizeTwoThirds
	case ratio <= 1.1:
		return BetSizePot
	default:
		return BetSizeOverbet
	}
}
