package showdown_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerstats/internal/evaluator"
	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/handtest"
	"github.com/lox/pokerstats/internal/showdown"
)

func heroThreeBet() *handtest.Builder {
	return handtest.HeroThreeBet("3bet")
}

func TestResolveUncalledLayerIsReturned(t *testing.T) {
	t.Parallel()

	h := heroThreeBet().Reconstruct()
	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)

	require.Len(t, res.Pots, 2)
	assert.Equal(t, int64(12), res.Pots[0].Amount)
	assert.True(t, res.Pots[0].Contested)
	assert.Equal(t, int64(3), res.Pots[1].Amount)
	assert.True(t, res.Pots[1].Returned)

	assert.True(t, res.Available)
	assert.True(t, res.IsShowdown)
	assert.ElementsMatch(t, []string{"UTG", "Hero"}, res.Participants)
	assert.Equal(t, []string{"Hero"}, res.Winners)
	assert.Equal(t, int64(12), res.WSDAmount["Hero"])
	assert.Equal(t, int64(15), res.Awards["Hero"])
	assert.Equal(t, int64(3), res.Returned["Hero"])
	assert.Equal(t, map[string]string{"Hero": "Pair", "UTG": "High Card"}, res.Hands)

	hero, _ := h.Player("Hero")
	utg, _ := h.Player("UTG")
	assert.Equal(t, int64(6), res.Net(hero))
	assert.Equal(t, int64(-6), res.Net(utg))
	assert.True(t, res.WentToShowdown("UTG"))
	assert.False(t, res.WentToShowdown("BTN"))
}

func TestResolveUncontested(t *testing.T) {
	t.Parallel()

	h := handtest.SixMax("walk", 200).
		Blinds("SB", "BB").
		Pre("UTG", hand.Raise, 6).
		Pre("MP", hand.Fold, 0).
		Pre("CO", hand.Fold, 0).
		Pre("BTN", hand.Fold, 0).
		Pre("SB", hand.Fold, 0).
		Pre("BB", hand.Fold, 0).
		Reconstruct()

	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)
	assert.False(t, res.Contested)
	assert.False(t, res.IsShowdown)
	assert.Empty(t, res.Participants)
	assert.Empty(t, res.WSDAmount)
	assert.Equal(t, []string{"UTG"}, res.Winners)
	assert.Equal(t, int64(9), res.Awards["UTG"])
	assert.Equal(t, int64(4), res.Returned["UTG"])
}

func TestResolveSplitOddChip(t *testing.T) {
	t.Parallel()

	h := handtest.HeadsUp("split", 100).
		Blinds("BTN", "BB").
		Pre("BTN", hand.Call, 1).
		Pre("BB", hand.Check, 0).
		Flop("BB", hand.Check, 0).
		Flop("BTN", hand.Check, 0).
		Turn("BB", hand.Check, 0).
		Turn("BTN", hand.Check, 0).
		River("BB", hand.Check, 0).
		River("BTN", hand.Check, 0).
		Board("AhKhQhJhTh").
		Show("BTN", "2c3c").
		Show("BB", "4d5d").
		Rake(1).
		Reconstruct()

	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)
	assert.Equal(t, []string{"BB", "BTN"}, res.Winners)
	assert.Equal(t, int64(2), res.Awards["BB"], "odd chip to first seat left of the button")
	assert.Equal(t, int64(1), res.Awards["BTN"])

	var awarded int64
	for _, v := range res.Awards {
		awarded += v
	}
	assert.Equal(t, h.NetPot(), awarded)
}

func TestResolveSidePots(t *testing.T) {
	t.Parallel()

	h := handtest.New("side").
		Button(3).
		Seat(1, "SB", 100).
		Seat(2, "BB", 100).
		Seat(3, "BTN", 20).
		Blinds("SB", "BB").
		Pre("BTN", hand.AllIn, 20).
		Pre("SB", hand.Call, 19).
		Pre("BB", hand.Call, 18).
		Flop("SB", hand.Bet, 30).
		Flop("BB", hand.Call, 30).
		Turn("SB", hand.Check, 0).
		Turn("BB", hand.Check, 0).
		River("SB", hand.Check, 0).
		River("BB", hand.Check, 0).
		Board("2c 7d 9h Js 3s").
		Show("BTN", "AsAd").
		Show("SB", "KcKd").
		Show("BB", "QcQd").
		Reconstruct()

	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)
	require.Len(t, res.Pots, 2)
	assert.Equal(t, int64(60), res.Pots[0].Amount)
	assert.Equal(t, []string{"SB", "BB", "BTN"}, res.Pots[0].Eligible)
	assert.Equal(t, []string{"BTN"}, res.Pots[0].Winners)
	assert.Equal(t, int64(60), res.Pots[1].Amount)
	assert.Equal(t, []string{"SB", "BB"}, res.Pots[1].Eligible)
	assert.Equal(t, []string{"SB"}, res.Pots[1].Winners)

	assert.Equal(t, int64(60), res.WSDAmount["BTN"])
	assert.Equal(t, int64(60), res.WSDAmount["SB"])
	assert.Zero(t, res.WSDAmount["BB"])
	assert.Equal(t, []string{"SB", "BTN"}, res.Winners)
}

func TestResolveNestedAllIns(t *testing.T) {
	t.Parallel()

	h := handtest.SixMax("nested", 200).
		Stack("SB", 30).
		Stack("BTN", 80).
		Blinds("SB", "BB").
		Pre("UTG", hand.Fold, 0).
		Pre("MP", hand.Fold, 0).
		Pre("CO", hand.Fold, 0).
		Pre("BTN", hand.AllIn, 80).
		Pre("SB", hand.AllIn, 29).
		Pre("BB", hand.Call, 78).
		Board("2c 7d 9h Js 3s").
		Show("SB", "AsAd").
		Show("BTN", "KcKd").
		Show("BB", "QcQd").
		Reconstruct()

	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)

	tests := []struct {
		level, amount int64
		eligible      []string
		winners       []string
	}{
		{30, 90, []string{"SB", "BB", "BTN"}, []string{"SB"}},
		{80, 100, []string{"BB", "BTN"}, []string{"BTN"}},
	}
	require.Len(t, res.Pots, len(tests))
	var total int64
	for i, tt := range tests {
		pot := res.Pots[i]
		assert.Equal(t, tt.level, pot.Level, "pot %d", i)
		assert.Equal(t, tt.amount, pot.Amount, "pot %d", i)
		assert.Equal(t, tt.eligible, pot.Eligible, "pot %d", i)
		assert.Equal(t, tt.winners, pot.Winners, "pot %d", i)
		assert.True(t, pot.Contested, "pot %d", i)
		total += pot.Amount
	}
	assert.Equal(t, int64(190), h.FinalPot)
	assert.Equal(t, h.NetPot(), total)

	assert.Equal(t, map[string]int64{"SB": 90, "BTN": 100}, res.WSDAmount)
	assert.Equal(t, []string{"SB", "BTN"}, res.Winners)
	assert.Empty(t, res.Returned)

	bb, _ := h.Player("BB")
	btn, _ := h.Player("BTN")
	assert.Equal(t, int64(-80), res.Net(bb))
	assert.Equal(t, int64(20), res.Net(btn))
}

func TestResolveMuckedLoser(t *testing.T) {
	t.Parallel()

	in := heroThreeBet().Input()
	for i := range in.Seats {
		if in.Seats[i].Name == "UTG" {
			in.Seats[i].HoleCards = nil
		}
	}
	h, err := hand.Reconstruct(in, hand.DefaultOptions())
	require.NoError(t, err)

	res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
	require.NoError(t, err)
	assert.False(t, res.IsShowdown)
	assert.True(t, res.Contested)
	assert.Equal(t, int64(12), res.WSDAmount["Hero"])
}

func TestResolveEvaluatorFailure(t *testing.T) {
	t.Parallel()

	t.Run("incomplete board", func(t *testing.T) {
		in := heroThreeBet().Input()
		in.Board = hand.Board{Flop: in.Board.Flop}
		h, err := hand.Reconstruct(in, hand.DefaultOptions())
		require.NoError(t, err)

		res, err := showdown.Resolve(h, evaluator.Chehsunliu{})
		var evErr *showdown.EvaluatorError
		require.True(t, errors.As(err, &evErr))
		assert.Equal(t, "3bet", evErr.HandID)
		assert.ErrorIs(t, err, evaluator.ErrIncompleteBoard)
		assert.False(t, res.Available)
		assert.Nil(t, res.Awards)
		assert.True(t, res.IsShowdown)
	})

	t.Run("nobody revealed", func(t *testing.T) {
		in := heroThreeBet().Input()
		for i := range in.Seats {
			in.Seats[i].HoleCards = nil
		}
		h, err := hand.Reconstruct(in, hand.DefaultOptions())
		require.NoError(t, err)

		_, err = showdown.Resolve(h, evaluator.Chehsunliu{})
		var evErr *showdown.EvaluatorError
		require.True(t, errors.As(err, &evErr))
	})
}
