package leaks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/leaks"
	"github.com/lox/pokerstats/internal/stats"
)

func accumulator(t *testing.T, c stats.Counters) *stats.PlayerAccumulator {
	t.Helper()
	agg := stats.Restore(stats.DefaultDepthBuckets(), nil, []stats.CellCounters{
		{Player: "villain", Cell: stats.Cell{Position: hand.BTN, Depth: stats.Mid}, Counters: c},
	})
	acc, ok := agg.Player("villain")
	require.True(t, ok)
	return acc
}

func TestDetectLooseSpewer(t *testing.T) {
	t.Parallel()

	c := stats.Counters{
		HandsDealt: 100, VPIP: 40, PFR: 10,
		ThreeBetOpportunities: 50, ThreeBets: 1,
		CBetOpportunities: 10, CBets: 9,
		Bets: 10, Raises: 10, Calls: 40,
	}
	got := leaks.DetectPlayer(accumulator(t, c), leaks.DefaultThresholds())

	want := []leaks.Finding{
		{Metric: stats.MetricVPIP, Observed: 40, Threshold: 25, Direction: leaks.Above},
		{Metric: stats.MetricPFRVPIPRatio, Observed: 0.25, Threshold: 0.60, Direction: leaks.Below},
		{Metric: stats.MetricThreeBet, Observed: 2, Threshold: 3, Direction: leaks.Below},
		{Metric: stats.MetricCBet, Observed: 90, Threshold: 80, Direction: leaks.Above},
		{Metric: stats.MetricAF, Observed: 0.5, Threshold: 1, Direction: leaks.Below},
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Metric, got[i].Metric)
		assert.InDelta(t, want[i].Observed, got[i].Observed, 1e-9)
		assert.InDelta(t, want[i].Threshold, got[i].Threshold, 1e-9)
		assert.Equal(t, want[i].Direction, got[i].Direction)
	}
	assert.Equal(t, "vpip 40.00 is above 25.00", got[0].String())
}

func TestDetectSolidRegular(t *testing.T) {
	t.Parallel()

	c := stats.Counters{
		HandsDealt: 100, VPIP: 22, PFR: 16,
		ThreeBetOpportunities: 50, ThreeBets: 3,
		CBetOpportunities: 10, CBets: 6,
		Bets: 20, Raises: 20, Calls: 20,
	}
	assert.Empty(t, leaks.DetectPlayer(accumulator(t, c), leaks.DefaultThresholds()))
}

func TestDetectSkipsUndefined(t *testing.T) {
	t.Parallel()

	// No calls leaves AF undefined; no opportunities leave 3Bet% and CBet% undefined.
	c := stats.Counters{HandsDealt: 10, VPIP: 1, PFR: 1, Bets: 3}
	got := leaks.DetectPlayer(accumulator(t, c), leaks.DefaultThresholds())

	require.Len(t, got, 2)
	assert.Equal(t, stats.MetricVPIP, got[0].Metric)
	assert.Equal(t, leaks.Below, got[0].Direction)
	assert.Equal(t, stats.MetricPFRVPIPRatio, got[1].Metric)
	assert.Equal(t, leaks.Above, got[1].Direction)
}

func TestDetectDeterministicAndReadOnly(t *testing.T) {
	t.Parallel()

	c := stats.Counters{HandsDealt: 50, VPIP: 30, PFR: 5, Calls: 10, Bets: 1}
	acc := accumulator(t, c)
	first := leaks.DetectPlayer(acc, leaks.DefaultThresholds())
	second := leaks.DetectPlayer(acc, leaks.DefaultThresholds())
	assert.Equal(t, first, second)
	assert.Equal(t, c, acc.Total(stats.Filter{}))
}

func TestDetectMinHands(t *testing.T) {
	t.Parallel()

	th := leaks.DefaultThresholds()
	th.MinHands = 200
	acc := accumulator(t, stats.Counters{HandsDealt: 100, VPIP: 60})
	assert.Nil(t, leaks.DetectPlayer(acc, th))

	th.MinHands = 100
	assert.NotEmpty(t, leaks.DetectPlayer(acc, th))
}

func TestDetectFiltered(t *testing.T) {
	t.Parallel()

	agg := stats.Restore(stats.DefaultDepthBuckets(), nil, []stats.CellCounters{
		{Player: "p", Cell: stats.Cell{Position: hand.BTN, Depth: stats.Mid}, Counters: stats.Counters{HandsDealt: 10, VPIP: 6, PFR: 4}},
		{Player: "p", Cell: stats.Cell{Position: hand.UTG, Depth: stats.Mid}, Counters: stats.Counters{HandsDealt: 10, VPIP: 1, PFR: 1}},
	})
	acc, _ := agg.Player("p")

	btn := leaks.Detect(stats.Derive(acc, stats.Filter{Position: hand.BTN}), leaks.DefaultThresholds())
	require.NotEmpty(t, btn)
	assert.Equal(t, leaks.Above, btn[0].Direction)

	utg := leaks.Detect(stats.Derive(acc, stats.Filter{Position: hand.UTG}), leaks.DefaultThresholds())
	require.NotEmpty(t, utg)
	assert.Equal(t, leaks.Below, utg[0].Direction)
}

func TestThresholdsValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, leaks.DefaultThresholds().Validate())

	bad := leaks.DefaultThresholds()
	bad.CBetMin = 90
	assert.ErrorContains(t, bad.Validate(), "cbet")
}
