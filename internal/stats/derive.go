package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/pokerstats/internal/hand"
)

// Metric names a derived statistic.
type Metric string

const (
	MetricVPIP           Metric = "vpip"
	MetricPFR            Metric = "pfr"
	MetricVPIPPFRGap     Metric = "vpip_pfr_gap"
	MetricPFRVPIPRatio   Metric = "pfr_vpip_ratio"
	MetricThreeBet       Metric = "three_bet"
	MetricFourBet        Metric = "four_bet"
	MetricSqueeze        Metric = "squeeze"
	MetricSteal          Metric = "steal"
	MetricFoldToThreeBet Metric = "fold_to_three_bet"
	MetricOpenRaise      Metric = "open_raise"
	MetricLimp           Metric = "limp"
	MetricCBet           Metric = "cbet"
	MetricCBetFlop       Metric = "cbet_flop"
	MetricCBetTurn       Metric = "cbet_turn"
	MetricCBetRiver      Metric = "cbet_river"
	MetricFoldToCBet     Metric = "fold_to_cbet"
	MetricDonk           Metric = "donk"
	MetricCheckRaise     Metric = "check_raise"
	MetricAF             Metric = "af"
	MetricAFq            Metric = "afq"
	MetricWTSD           Metric = "wtsd"
	MetricWSD            Metric = "wsd"
	MetricWSDDollars     Metric = "wsd_dollars"
	MetricNetWon         Metric = "net_won"
	MetricBBPer100       Metric = "bb_per_100"
)

// Metrics lists every derived metric in report order.
func Metrics() []Metric {
	return []Metric{
		MetricVPIP, MetricPFR, MetricVPIPPFRGap, MetricPFRVPIPRatio,
		MetricThreeBet, MetricFourBet, MetricSqueeze, MetricSteal,
		MetricFoldToThreeBet, MetricOpenRaise, MetricLimp,
		MetricCBet, MetricCBetFlop, MetricCBetTurn, MetricCBetRiver, MetricFoldToCBet,
		MetricDonk, MetricCheckRaise, MetricAF, MetricAFq,
		MetricWTSD, MetricWSD, MetricWSDDollars, MetricNetWon, MetricBBPer100,
	}
}

// Value is a derived metric. Undefined values have a zero denominator and
// must not be read as zero.
type Value struct {
	Value   float64
	Defined bool
	// Low and High bound a 95% confidence interval when HasInterval is set.
	Low, High   float64
	HasInterval bool
	// Sample is the denominator the value was computed from.
	Sample int64
}

// Statistics are the derived metrics of one player under a filter.
type Statistics struct {
	Player   string
	Filter   Filter
	Counters Counters
	values   map[Metric]Value
}

// Hands returns the number of hands dealt under the filter.
func (s Statistics) Hands() int64 {
	return s.Counters.HandsDealt
}

// Get returns one metric; unknown metrics are undefined.
func (s Statistics) Get(m Metric) Value {
	return s.values[m]
}

// BetSizeShare returns the fraction of postflop bets in a sizing bucket, as a
// percentage.
func (s Statistics) BetSizeShare(bucket int) Value {
	var total int64
	for _, n := range s.Counters.BetSizes {
		total += n
	}
	if bucket < 0 || bucket >= NumBetSizes {
		return Value{}
	}
	return rate(s.Counters.BetSizes[bucket], total)
}

var z95 = distuv.UnitNormal.Quantile(0.975)

// Derive computes every metric for the cells of acc matching f. The
// accumulator is not modified.
func Derive(acc *PlayerAccumulator, f Filter) Statistics {
	c := acc.Total(f)
	s := Statistics{Player: acc.Name, Filter: f, Counters: c, values: make(map[Metric]Value)}

	s.values[MetricVPIP] = rate(c.VPIP, c.HandsDealt)
	s.values[MetricPFR] = rate(c.PFR, c.HandsDealt)
	if c.HandsDealt > 0 {
		s.values[MetricVPIPPFRGap] = Value{
			Value:   100 * float64(c.VPIP-c.PFR) / float64(c.HandsDealt),
			Defined: true,
			Sample:  c.HandsDealt,
		}
	}
	s.values[MetricPFRVPIPRatio] = ratio(c.PFR, c.VPIP)
	s.values[MetricThreeBet] = rate(c.ThreeBets, c.ThreeBetOpportunities)
	s.values[MetricFourBet] = rate(c.FourBets, c.FourBetOpportunities)
	s.values[MetricSqueeze] = rate(c.Squeezes, c.SqueezeOpportunities)
	s.values[MetricSteal] = rate(c.Steals, c.StealOpportunities)
	s.values[MetricFoldToThreeBet] = rate(c.FoldToThreeBets, c.FoldToThreeBetOpportunities)
	s.values[MetricOpenRaise] = rate(c.OpenRaises, c.OpenRaiseOpportunities)
	s.values[MetricLimp] = rate(c.Limps, c.HandsDealt)
	s.values[MetricCBet] = rate(c.CBets, c.CBetOpportunities)
	s.values[MetricCBetFlop] = rate(c.Streets[hand.Flop].CBets, c.Streets[hand.Flop].CBetOpportunities)
	s.values[MetricCBetTurn] = rate(c.Streets[hand.Turn].CBets, c.Streets[hand.Turn].CBetOpportunities)
	s.values[MetricCBetRiver] = rate(c.Streets[hand.River].CBets, c.Streets[hand.River].CBetOpportunities)
	s.values[MetricFoldToCBet] = rate(c.FoldToCBets, c.FoldToCBetOpportunities)
	s.values[MetricDonk] = rate(c.DonkBets, c.HandsDealt)
	s.values[MetricCheckRaise] = rate(c.CheckRaises, c.HandsDealt)
	s.values[MetricAF] = ratio(c.Bets+c.Raises, c.Calls)
	s.values[MetricAFq] = rate(c.Bets+c.Raises, c.Bets+c.Raises+c.Calls+c.Folds)
	s.values[MetricWTSD] = rate(c.WTSD, c.HandsDealt-c.ShowdownUnavailable)
	s.values[MetricWSD] = rate(c.ShowdownWins, c.Showdowns)
	s.values[MetricWSDDollars] = ratio(c.WSDDollars, c.WTSD)
	if c.HandsDealt > c.ShowdownUnavailable {
		s.values[MetricNetWon] = Value{Value: float64(c.NetWon), Defined: true, Sample: c.HandsDealt - c.ShowdownUnavailable}
	}
	s.values[MetricBBPer100] = winrate(c)
	return s
}

// rate is a percentage with a Wilson score interval.
func rate(num, den int64) Value {
	if den <= 0 {
		return Value{}
	}
	n := float64(den)
	p := float64(num) / n
	z2 := z95 * z95
	center := (p + z2/(2*n)) / (1 + z2/n)
	half := z95 * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / (1 + z2/n)
	return Value{
		Value:       100 * p,
		Defined:     true,
		Low:         100 * math.Max(0, center-half),
		High:        100 * math.Min(1, center+half),
		HasInterval: true,
		Sample:      den,
	}
}

func ratio(num, den int64) Value {
	if den <= 0 {
		return Value{}
	}
	return Value{Value: float64(num) / float64(den), Defined: true, Sample: den}
}

// winrate is big blinds won per hundred hands with a Student's t interval.
// Net results are stored in hundredths of a big blind, so the per-hand mean
// is already bb/100.
func winrate(c Counters) Value {
	if c.NetHands <= 0 {
		return Value{}
	}
	n := float64(c.NetHands)
	mean := float64(c.NetCentiBB) / n
	v := Value{Value: mean, Defined: true, Sample: c.NetHands}
	if c.NetHands < 2 {
		return v
	}
	variance := (float64(c.NetCentiBBSq) - n*mean*mean) / (n - 1)
	se := math.Sqrt(math.Max(variance, 0)) / math.Sqrt(n)
	t := distuv.StudentsT{Nu: n - 1, Mu: 0, Sigma: 1}.Quantile(0.975)
	v.Low, v.High, v.HasInterval = mean-t*se, mean+t*se, true
	return v
}
