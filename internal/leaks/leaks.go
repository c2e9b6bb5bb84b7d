// Package leaks compares a player's derived statistics with a threshold table
// and reports the values that fall outside it.
package leaks

import (
	"fmt"

	"github.com/lox/pokerstats/internal/stats"
)

// Direction says which side of a threshold an observed value fell on.
type Direction int

const (
	Above Direction = iota
	Below
)

func (d Direction) String() string {
	if d == Below {
		return "below"
	}
	return "above"
}

// Finding is one threshold breach.
type Finding struct {
	Metric    stats.Metric
	Observed  float64
	Threshold float64
	Direction Direction
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %.2f is %s %.2f", f.Metric, f.Observed, f.Direction, f.Threshold)
}

// Thresholds bound each checked metric. Percentages are 0-100; the PFR/VPIP
// ratio and AF are plain ratios.
type Thresholds struct {
	VPIPMax     float64
	VPIPMin     float64
	PFRRatioMin float64
	PFRRatioMax float64
	ThreeBetMax float64
	ThreeBetMin float64
	CBetMax     float64
	CBetMin     float64
	AFMax       float64
	AFMin       float64
	// MinHands skips players with fewer hands under the filter.
	MinHands int64
}

// DefaultThresholds returns the standard table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VPIPMax:     25,
		VPIPMin:     15,
		PFRRatioMin: 0.60,
		PFRRatioMax: 0.80,
		ThreeBetMax: 8,
		ThreeBetMin: 3,
		CBetMax:     80,
		CBetMin:     50,
		AFMax:       3,
		AFMin:       1,
	}
}

// Validate checks that every lower bound is below its upper bound.
func (t Thresholds) Validate() error {
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"vpip", t.VPIPMin, t.VPIPMax},
		{"pfr_vpip_ratio", t.PFRRatioMin, t.PFRRatioMax},
		{"three_bet", t.ThreeBetMin, t.ThreeBetMax},
		{"cbet", t.CBetMin, t.CBetMax},
		{"af", t.AFMin, t.AFMax},
	}
	for _, p := range pairs {
		if p.min > p.max {
			return fmt.Errorf("leak threshold %s: min %.2f exceeds max %.2f", p.name, p.min, p.max)
		}
	}
	if t.MinHands < 0 {
		return fmt.Errorf("leak threshold min_hands must not be negative")
	}
	return nil
}

type check struct {
	metric   stats.Metric
	min, max float64
}

func (t Thresholds) checks() []check {
	return []check{
		{stats.MetricVPIP, t.VPIPMin, t.VPIPMax},
		{stats.MetricPFRVPIPRatio, t.PFRRatioMin, t.PFRRatioMax},
		{stats.MetricThreeBet, t.ThreeBetMin, t.ThreeBetMax},
		{stats.MetricCBet, t.CBetMin, t.CBetMax},
		{stats.MetricAF, t.AFMin, t.AFMax},
	}
}

// Detect returns the breaches in table order. Undefined metrics are skipped.
func Detect(s stats.Statistics, t Thresholds) []Finding {
	if s.Hands() < t.MinHands {
		return nil
	}

	var out []Finding
	for _, c := range t.checks() {
		v := s.Get(c.metric)
		if !v.Defined {
			continue
		}
		switch {
		case v.Value > c.max:
			out = append(out, Finding{Metric: c.metric, Observed: v.Value, Threshold: c.max, Direction: Above})
		case v.Value < c.min:
			out = append(out, Finding{Metric: c.metric, Observed: v.Value, Threshold: c.min, Direction: Below})
		}
	}
	return out
}

// DetectPlayer derives a player's overall statistics and checks them.
func DetectPlayer(acc *stats.PlayerAccumulator, t Thresholds) []Finding {
	return Detect(stats.Derive(acc, stats.Filter{}), t)
}
