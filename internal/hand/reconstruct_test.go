package hand_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerstats/internal/hand"
	"github.com/lox/pokerstats/internal/handtest"
)

func TestReconstructPotLedger(t *testing.T) {
	t.Parallel()

	in := handtest.SixMax("h1", 200).
		Blinds("SB", "BB").
		Pre("UTG", hand.Raise, 6).
		Pre("MP", hand.Fold, 0).
		Pre("CO", hand.Fold, 0).
		Pre("BTN", hand.Fold, 0).
		Pre("SB", hand.Fold, 0).
		Pre("BB", hand.Call, 4).
		Flop("BB", hand.Check, 0).
		Flop("UTG", hand.Bet, 8).
		Flop("BB", hand.Fold, 0).
		Board("AhKd7c").
		Input()

	h, err := hand.Reconstruct(in, hand.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 3, 9, 9, 9, 9, 9, 13, 13, 21, 21}, h.PotLedger)
	assert.Equal(t, int64(21), h.FinalPot)
	require.Len(t, h.Actions, len(in.Actions))

	var sum int64
	for _, p := range h.Players {
		sum += p.TotalContributed
		assert.LessOrEqual(t, p.TotalContributed, p.StartingStack)
	}
	assert.Equal(t, h.FinalPot, sum)

	for i, a := range h.Actions {
		assert.Equal(t, a.PotBefore+a.Amount, a.PotAfter, "action %d", i)
		assert.Equal(t, i, a.SequenceIndex)
	}

	utg, ok := h.Player("UTG")
	require.True(t, ok)
	assert.Equal(t, int64(14), utg.TotalContributed)
	assert.True(t, utg.IsActive)
	assert.Equal(t, hand.UTG, utg.Position)

	bb, _ := h.Player("BB")
	assert.False(t, bb.IsActive)
	assert.Equal(t, int64(6), bb.TotalContributed)

	raise := h.Actions[2]
	assert.Equal(t, hand.Raise, raise.Base)
	assert.Equal(t, int64(2), raise.ToCall)
	assert.True(t, raise.IsAggressive())
	assert.True(t, h.Actions[0].Forced)
	assert.False(t, h.Actions[0].IsAggressive())

	flopBet := h.Actions[9]
	assert.Equal(t, hand.Flop, flopBet.Street)
	assert.Equal(t, hand.Bet, flopBet.Base)
	assert.Equal(t, int64(8), flopBet.TotalBetForStreet)
}

func TestReconstructTagsAllIn(t *testing.T) {
	t.Parallel()

	h := handtest.SixMax("allin", 200).
		Stack("UTG", 30).
		Blinds("SB", "BB").
		Pre("UTG", hand.Raise, 30).
		Pre("MP", hand.Fold, 0).
		Pre("CO", hand.Fold, 0).
		Pre("BTN", hand.Call, 30).
		Pre("SB", hand.Fold, 0).
		Pre("BB", hand.Fold, 0).
		Reconstruct()

	shove := h.Actions[2]
	assert.Equal(t, hand.AllIn, shove.Kind)
	assert.Equal(t, hand.Raise, shove.Base)

	utg, _ := h.Player("UTG")
	assert.True(t, utg.IsAllIn)
	assert.Equal(t, int64(0), utg.Remaining())

	call := h.Actions[5]
	assert.Equal(t, hand.Call, call.Kind)
	assert.Equal(t, int64(30), call.ToCall)
}

func TestReconstructShortAllInCall(t *testing.T) {
	t.Parallel()

	h := handtest.HeadsUp("short", 100).
		Stack("BB", 20).
		Blinds("BTN", "BB").
		Pre("BTN", hand.Raise, 49).
		Pre("BB", hand.AllIn, 18).
		Reconstruct()

	call := h.Actions[3]
	assert.Equal(t, hand.AllIn, call.Kind)
	assert.Equal(t, hand.Call, call.Base)
	assert.Equal(t, int64(70), h.FinalPot)
}

func TestReconstructHeadsUpTurnOrder(t *testing.T) {
	t.Parallel()

	h := handtest.HeadsUp("hu", 100).
		Blinds("BTN", "BB").
		Pre("BTN", hand.Call, 1).
		Pre("BB", hand.Check, 0).
		Flop("BB", hand.Check, 0).
		Flop("BTN", hand.Bet, 2).
		Flop("BB", hand.Call, 2).
		Reconstruct()

	btn, _ := h.Player("BTN")
	bb, _ := h.Player("BB")
	assert.Equal(t, hand.BTN, btn.Position)
	assert.Equal(t, hand.BB, bb.Position)
	assert.Equal(t, 1, h.Button)
	assert.Equal(t, int64(8), h.FinalPot)

	_, err := hand.Reconstruct(handtest.HeadsUp("hu-bad", 100).
		Blinds("BTN", "BB").
		Pre("BB", hand.Check, 0).
		Input(), hand.DefaultOptions())
	require.ErrorIs(t, err, hand.ErrOutOfTurn)
}

func TestReconstructStraddleActsLast(t *testing.T) {
	t.Parallel()

	b := handtest.SixMax("straddle", 200).
		Blinds("SB", "BB").
		Post("UTG", hand.PostStraddle, 4)

	h, err := hand.Reconstruct(b.Input(), hand.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(7), h.FinalPot)

	_, err = hand.Reconstruct(b.Pre("MP", hand.Call, 4).Pre("CO", hand.Fold, 0).Input(), hand.DefaultOptions())
	require.NoError(t, err)
}

func TestReconstructDeadButton(t *testing.T) {
	t.Parallel()

	in := handtest.New("dead").
		Button(3).
		Seat(1, "A", 100).
		Seat(2, "B", 100).
		Seat(4, "C", 100).
		Seat(5, "D", 100).
		Input()

	h, err := hand.Reconstruct(in, hand.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, h.Button)

	b, _ := h.Player("B")
	c, _ := h.Player("C")
	d, _ := h.Player("D")
	a, _ := h.Player("A")
	assert.Equal(t, hand.BTN, b.Position)
	assert.Equal(t, hand.SB, c.Position)
	assert.Equal(t, hand.BB, d.Position)
	assert.Equal(t, hand.CO, a.Position)
}

func TestReconstructEffectiveStack(t *testing.T) {
	t.Parallel()

	h := handtest.SixMax("depth", 200).
		Stack("BTN", 500).
		Stack("SB", 40).
		Reconstruct()

	btn, _ := h.Player("BTN")
	sb, _ := h.Player("SB")
	utg, _ := h.Player("UTG")
	assert.InDelta(t, 100.0, btn.EffectiveStackBB, 1e-9)
	assert.InDelta(t, 20.0, sb.EffectiveStackBB, 1e-9)
	assert.InDelta(t, 100.0, utg.EffectiveStackBB, 1e-9)
}

func TestReconstructReconciliation(t *testing.T) {
	t.Parallel()

	base := func() *handtest.Builder {
		return handtest.HeadsUp("rec", 100).
			Blinds("BTN", "BB").
			Pre("BTN", hand.Raise, 5).
			Pre("BB", hand.Fold, 0)
	}

	t.Run("collected after uncalled bet returned", func(t *testing.T) {
		_, err := hand.Reconstruct(base().Collected("BTN", 4).Input(), hand.DefaultOptions())
		require.NoError(t, err)
	})

	t.Run("collected gross pot", func(t *testing.T) {
		_, err := hand.Reconstruct(base().Collected("BTN", 8).Input(), hand.DefaultOptions())
		require.NoError(t, err)
	})

	t.Run("within tolerance", func(t *testing.T) {
		_, err := hand.Reconstruct(base().TotalPot(9).Input(), hand.DefaultOptions())
		require.NoError(t, err)
	})

	t.Run("rake counted", func(t *testing.T) {
		h, err := hand.Reconstruct(base().Rake(1).Collected("BTN", 7).Input(), hand.DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, int64(8), h.FinalPot)
		assert.Equal(t, int64(7), h.NetPot())
	})

	t.Run("exact tolerance", func(t *testing.T) {
		_, err := hand.Reconstruct(base().TotalPot(9).Input(), hand.Options{Layout: hand.Layout6Max})
		require.ErrorIs(t, err, hand.ErrPotMismatch)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := hand.Reconstruct(base().Collected("BTN", 20).Input(), hand.DefaultOptions())
		require.ErrorIs(t, err, hand.ErrPotMismatch)
	})

	t.Run("unknown collector", func(t *testing.T) {
		_, err := hand.Reconstruct(base().Collected("ghost", 8).Input(), hand.DefaultOptions())
		require.ErrorIs(t, err, hand.ErrUnknownPlayer)
	})

	t.Run("rake above pot", func(t *testing.T) {
		_, err := hand.Reconstruct(base().Rake(50).Input(), hand.DefaultOptions())
		require.ErrorIs(t, err, hand.ErrPotMismatch)
	})
}

func TestReconstructErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() *handtest.Builder
		want  error
		seq   int
	}{
		{
			name: "over contribution",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("UTG", hand.Raise, 201)
			},
			want: hand.ErrOverContribution,
			seq:  2,
		},
		{
			name: "unknown player",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("ghost", hand.Fold, 0)
			},
			want: hand.ErrUnknownPlayer,
			seq:  2,
		},
		{
			name: "out of turn",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("MP", hand.Fold, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  2,
		},
		{
			name: "acts after folding",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).Blinds("BTN", "BB").Pre("BTN", hand.Fold, 0).Pre("BTN", hand.Call, 1)
			},
			want: hand.ErrInvalidAction,
			seq:  3,
		},
		{
			name: "check facing bet",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("UTG", hand.Check, 0)
			},
			want: hand.ErrInvalidAction,
			seq:  2,
		},
		{
			name: "call for more than owed",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("UTG", hand.Call, 5)
			},
			want: hand.ErrInvalidAction,
			seq:  2,
		},
		{
			name: "raise that does not raise",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("UTG", hand.Raise, 2)
			},
			want: hand.ErrInvalidAction,
			seq:  2,
		},
		{
			name: "street goes backwards",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).
					Blinds("BTN", "BB").
					Pre("BTN", hand.Call, 1).
					Pre("BB", hand.Check, 0).
					Flop("BB", hand.Check, 0).
					Pre("BTN", hand.Check, 0)
			},
			want: hand.ErrInvalidAction,
			seq:  5,
		},
		{
			name: "repeat check once the round is closed",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).
					Blinds("BTN", "BB").
					Pre("BTN", hand.Call, 1).
					Pre("BB", hand.Check, 0).
					Flop("BB", hand.Check, 0).
					Flop("BTN", hand.Check, 0).
					Flop("BB", hand.Check, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  6,
		},
		{
			name: "next street with preflop decisions pending",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).
					Blinds("SB", "BB").
					Pre("UTG", hand.Raise, 6).
					Flop("SB", hand.Check, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  3,
		},
		{
			name: "big blind option skipped",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).
					Blinds("BTN", "BB").
					Pre("BTN", hand.Call, 1).
					Flop("BB", hand.Check, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  3,
		},
		{
			name: "lone player owes a call to an all-in",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).
					Stack("BTN", 50).
					Blinds("BTN", "BB").
					Pre("BTN", hand.AllIn, 49).
					Flop("BB", hand.Check, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  3,
		},
		{
			name: "action with every opponent all-in",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).
					Stack("UTG", 30).
					Blinds("SB", "BB").
					Pre("UTG", hand.AllIn, 30).
					Pre("MP", hand.Fold, 0).
					Pre("CO", hand.Fold, 0).
					Pre("BTN", hand.Call, 30).
					Pre("SB", hand.Fold, 0).
					Pre("BB", hand.Fold, 0).
					Flop("BTN", hand.Check, 0)
			},
			want: hand.ErrOutOfTurn,
			seq:  8,
		},
		{
			name: "post after voluntary action",
			build: func() *handtest.Builder {
				return handtest.HeadsUp("e", 100).
					Blinds("BTN", "BB").
					Pre("BTN", hand.Call, 1).
					Post("BB", hand.PostAnte, 1)
			},
			want: hand.ErrInvalidAction,
			seq:  3,
		},
		{
			name: "all-in that leaves chips behind",
			build: func() *handtest.Builder {
				return handtest.SixMax("e", 200).Blinds("SB", "BB").Pre("UTG", hand.AllIn, 50)
			},
			want: hand.ErrInvalidAction,
			seq:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := hand.Reconstruct(tt.build().Input(), hand.DefaultOptions())
			require.ErrorIs(t, err, tt.want)

			var recErr *hand.ReconstructionError
			require.True(t, errors.As(err, &recErr))
			assert.Equal(t, "e", recErr.HandID)
			assert.Equal(t, tt.seq, recErr.Seq)
		})
	}
}

func TestReconstructLayout(t *testing.T) {
	t.Parallel()

	b := handtest.New("seven").Button(7)
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		b.Seat(i+1, name, 100)
	}

	_, err := hand.Reconstruct(b.Input(), hand.DefaultOptions())
	require.ErrorIs(t, err, hand.ErrLayout)

	h, err := hand.Reconstruct(b.Input(), hand.Options{Layout: hand.Layout9Max, Tolerance: 1})
	require.NoError(t, err)
	assert.Equal(t, hand.Layout9Max, h.Layout)
	g, _ := h.Player("g")
	a, _ := h.Player("a")
	c, _ := h.Player("c")
	d, _ := h.Player("d")
	f, _ := h.Player("f")
	assert.Equal(t, hand.BTN, g.Position)
	assert.Equal(t, hand.SB, a.Position)
	assert.Equal(t, hand.MP, c.Position)
	assert.Equal(t, hand.LJ, d.Position)
	assert.Equal(t, hand.CO, f.Position)
}

func TestReconstructRejectsBadSeating(t *testing.T) {
	t.Parallel()

	_, err := hand.Reconstruct(handtest.New("solo").Button(1).Seat(1, "a", 100).Input(), hand.DefaultOptions())
	require.ErrorIs(t, err, hand.ErrInvalidAction)

	_, err = hand.Reconstruct(handtest.New("dup").Button(1).Seat(1, "a", 100).Seat(2, "a", 100).Input(), hand.DefaultOptions())
	require.ErrorIs(t, err, hand.ErrInvalidAction)

	_, err = hand.Reconstruct(handtest.New("").Button(1).Seat(1, "a", 100).Seat(2, "b", 100).Input(), hand.DefaultOptions())
	require.ErrorIs(t, err, hand.ErrInvalidAction)
}
