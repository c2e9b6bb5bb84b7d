package stats

import (
	"github.com/lox/pokerstats/internal/classify"
	"github.com/lox/pokerstats/internal/hand"
)

// NumBetSizes is the number of postflop bet-sizing buckets.
const NumBetSizes = 5

// BetSizeLabels name the bet-sizing buckets in order.
var BetSizeLabels = [NumBetSizes]string{"<=1/3", "<=1/2", "<=2/3", "<=pot", "overbet"}

// StreetCounters are the per-street postflop tallies.
type StreetCounters struct {
	CBetOpportunities       int64 `json:"cbet_opp,omitempty"`
	CBets                   int64 `json:"cbet,omitempty"`
	FoldToCBetOpportunities int64 `json:"fold_to_cbet_opp,omitempty"`
	FoldToCBets             int64 `json:"fold_to_cbet,omitempty"`
	DonkBets                int64 `json:"donk,omitempty"`
	CheckRaises             int64 `json:"check_raise,omitempty"`
}

func (s *StreetCounters) add(o StreetCounters) {
	s.CBetOpportunities += o.CBetOpportunities
	s.CBets += o.CBets
	s.FoldToCBetOpportunities += o.FoldToCBetOpportunities
	s.FoldToCBets += o.FoldToCBets
	s.DonkBets += o.DonkBets
	s.CheckRaises += o.CheckRaises
}

// Counters are the raw, monotonically increasing tallies for one player in
// one position and stack-depth cell. Every field is a plain sum so counters
// merge in any order.
type Counters struct {
	HandsDealt int64 `json:"hands_dealt"`

	VPIP                        int64 `json:"vpip"`
	PFR                         int64 `json:"pfr"`
	ThreeBetOpportunities       int64 `json:"three_bet_opp"`
	ThreeBets                   int64 `json:"three_bet"`
	FourBetOpportunities        int64 `json:"four_bet_opp"`
	FourBets                    int64 `json:"four_bet"`
	SqueezeOpportunities        int64 `json:"squeeze_opp"`
	Squeezes                    int64 `json:"squeeze"`
	StealOpportunities          int64 `json:"steal_opp"`
	Steals                      int64 `json:"steal"`
	FoldToThreeBetOpportunities int64 `json:"fold_to_three_bet_opp"`
	FoldToThreeBets             int64 `json:"fold_to_three_bet"`
	OpenRaiseOpportunities      int64 `json:"open_raise_opp"`
	OpenRaises                  int64 `json:"open_raise"`
	Limps                       int64 `json:"limp"`

	CBetOpportunities       int64 `json:"cbet_opp"`
	CBets                   int64 `json:"cbet"`
	FoldToCBetOpportunities int64 `json:"fold_to_cbet_opp"`
	FoldToCBets             int64 `json:"fold_to_cbet"`
	DonkBets                int64 `json:"donk"`
	CheckRaises             int64 `json:"check_raise"`

	Bets         int64 `json:"bets"`
	Raises       int64 `json:"raises"`
	Calls        int64 `json:"calls"`
	Checks       int64 `json:"checks"`
	Folds        int64 `json:"folds"`
	TotalActions int64 `json:"total_actions"`

	Streets  [hand.NumStreets]StreetCounters `json:"streets"`
	BetSizes [NumBetSizes]int64              `json:"bet_sizes"`

	WTSD                int64 `json:"wtsd"`
	Showdowns           int64 `json:"showdown"`
	ShowdownWins        int64 `json:"wsd_won"`
	WSDDollars          int64 `json:"wsd_dollars_won"`
	ShowdownUnavailable int64 `json:"showdown_unavailable"`

	// NetWon is in chips, summed over hands whose result is known.
	NetWon int64 `json:"net_won"`
	// NetHands counts hands contributing to NetCentiBB. Net results are kept
	// in hundredths of a big blind so sums stay exact.
	NetHands     int64 `json:"net_hands"`
	NetCentiBB   int64 `json:"net_centi_bb"`
	NetCentiBBSq int64 `json:"net_centi_bb_sq"`
}

// Add folds o into c.
func (c *Counters) Add(o Counters) {
	c.HandsDealt += o.HandsDealt
	c.VPIP += o.VPIP
	c.PFR += o.PFR
	c.ThreeBetOpportunities += o.ThreeBetOpportunities
	c.ThreeBets += o.ThreeBets
	c.FourBetOpportunities += o.FourBetOpportunities
	c.FourBets += o.FourBets
	c.SqueezeOpportunities += o.SqueezeOpportunities
	c.Squeezes += o.Squeezes
	c.StealOpportunities += o.StealOpportunities
	c.Steals += o.Steals
	c.FoldToThreeBetOpportunities += o.FoldToThreeBetOpportunities
	c.FoldToThreeBets += o.FoldToThreeBets
	c.OpenRaiseOpportunities += o.OpenRaiseOpportunities
	c.OpenRaises += o.OpenRaises
	c.Limps += o.Limps
	c.CBetOpportunities += o.CBetOpportunities
	c.CBets += o.CBets
	c.FoldToCBetOpportunities += o.FoldToCBetOpportunities
	c.FoldToCBets += o.FoldToCBets
	c.DonkBets += o.DonkBets
	c.CheckRaises += o.CheckRaises
	c.Bets += o.Bets
	c.Raises += o.Raises
	c.Calls += o.Calls
	c.Checks += o.Checks
	c.Folds += o.Folds
	c.TotalActions += o.TotalActions
	for i := range c.Streets {
		c.Streets[i].add(o.Streets[i])
	}
	for i := range c.BetSizes {
		c.BetSizes[i] += o.BetSizes[i]
	}
	c.WTSD += o.WTSD
	c.Showdowns += o.Showdowns
	c.ShowdownWins += o.ShowdownWins
	c.WSDDollars += o.WSDDollars
	c.ShowdownUnavailable += o.ShowdownUnavailable
	c.NetWon += o.NetWon
	c.NetHands += o.NetHands
	c.NetCentiBB += o.NetCentiBB
	c.NetCentiBBSq += o.NetCentiBBSq
}

// Record increments the counters matching one classified event. It returns
// false for a kind it does not know.
func (c *Counters) Record(kind classify.EventKind, street hand.Street) bool {
	var st *StreetCounters
	if street >= hand.Preflop && street <= hand.River {
		st = &c.Streets[street]
	} else {
		st = &StreetCounters{}
	}

	switch kind {
	case classify.VPIP:
		c.VPIP++
	case classify.PFR:
		c.PFR++
	case classify.ThreeBetOpportunity:
		c.ThreeBetOpportunities++
	case classify.ThreeBet:
		c.ThreeBets++
	case classify.FourBetOpportunity:
		c.FourBetOpportunities++
	case classify.FourBet:
		c.FourBets++
	case classify.SqueezeOpportunity:
		c.SqueezeOpportunities++
	case classify.Squeeze:
		c.Squeezes++
	case classify.StealOpportunity:
		c.StealOpportunities++
	case classify.Steal:
		c.Steals++
	case classify.FoldToThreeBetOpportunity:
		c.FoldToThreeBetOpportunities++
	case classify.FoldToThreeBet:
		c.FoldToThreeBets++
	case classify.OpenRaiseOpportunity:
		c.OpenRaiseOpportunities++
	case classify.OpenRaise:
		c.OpenRaises++
	case classify.Limp:
		c.Limps++
	case classify.CBetOpportunity:
		c.CBetOpportunities++
		st.CBetOpportunities++
	case classify.CBet:
		c.CBets++
		st.CBets++
	case classify.FoldToCBetOpportunity:
		c.FoldToCBetOpportunities++
		st.FoldToCBetOpportunities++
	case classify.FoldToCBet:
		c.FoldToCBets++
		st.FoldToCBets++
	case classify.DonkBet:
		c.DonkBets++
		st.DonkBets++
	case classify.CheckRaise:
		c.CheckRaises++
		st.CheckRaises++
	case classify.BetAction:
		c.Bets++
		c.TotalActions++
	case classify.RaiseAction:
		c.Raises++
		c.TotalActions++
	case classify.CallAction:
		c.Calls++
		c.TotalActions++
	case classify.CheckAction:
		c.Checks++
		c.TotalActions++
	case classify.FoldAction:
		c.Folds++
		c.TotalActions++
	case classify.BetSizeThird, classify.BetSizeHalf, classify.BetSizeTwoThirds,
		classify.BetSizePot, classify.BetSizeOverbet:
		c.BetSizes[kind-classify.BetSizeThird]++
	default:
		return false
	}
	return true
}
