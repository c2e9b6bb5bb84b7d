package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerstats/internal/cards"
	"github.com/lox/pokerstats/internal/hand"
)

func TestHoldemOrdering(t *testing.T) {
	t.Parallel()

	board := cards.MustParseRun("Ah Kd 7c 7s 2h")
	tests := []struct {
		name     string
		stronger string
		weaker   string
	}{
		{"full house beats trips", "AsAd", "7dQc"},
		{"trips beat two pair", "7dQc", "AcQh"},
		{"higher two pair", "AcQh", "KcQd"},
	}

	for _, backend := range []string{BackendChehsunliu, BackendPaulhankin} {
		ev, err := New(backend)
		require.NoError(t, err)

		for _, tt := range tests {
			t.Run(backend+"/"+tt.name, func(t *testing.T) {
				strong, err := ev.Rank(hand.Holdem, cards.MustParseRun(tt.stronger), board)
				require.NoError(t, err)
				weak, err := ev.Rank(hand.Holdem, cards.MustParseRun(tt.weaker), board)
				require.NoError(t, err)
				assert.Greater(t, strong, weak)
			})
		}
	}
}

func TestHoldemTie(t *testing.T) {
	t.Parallel()

	board := cards.MustParseRun("AhKhQhJhTh")
	for _, backend := range []string{BackendChehsunliu, BackendPaulhankin} {
		ev, err := New(backend)
		require.NoError(t, err)
		a, err := ev.Rank(hand.Holdem, cards.MustParseRun("2c3c"), board)
		require.NoError(t, err)
		b, err := ev.Rank(hand.Holdem, cards.MustParseRun("4d5d"), board)
		require.NoError(t, err)
		assert.Equal(t, a, b, backend)
	}
}

func TestOmahaUsesTwoHoleCards(t *testing.T) {
	t.Parallel()

	ev := Chehsunliu{}
	board := cards.MustParseRun("Ah Kh Qh 2c 3d")

	// One heart in hand makes no flush in Omaha.
	oneHeart, err := ev.Rank(hand.Omaha, cards.MustParseRun("Jh 9s 8s 4c"), board)
	require.NoError(t, err)
	twoHearts, err := ev.Rank(hand.Omaha, cards.MustParseRun("Jh Th 8s 4c"), board)
	require.NoError(t, err)
	assert.Greater(t, twoHearts, oneHeart)
	assert.Equal(t, "Straight Flush", ev.Describe(twoHearts))
	assert.NotEqual(t, "Flush", ev.Describe(oneHeart))
}

func TestRankErrors(t *testing.T) {
	t.Parallel()

	ev := Chehsunliu{}
	_, err := ev.Rank(hand.Holdem, cards.MustParseRun("AsKs"), cards.MustParseRun("2c3c4c"))
	assert.ErrorIs(t, err, ErrIncompleteBoard)

	_, err = ev.Rank(hand.Holdem, cards.MustParseRun("As"), cards.MustParseRun("2c3c4c5c6c"))
	assert.ErrorIs(t, err, ErrHoleCards)

	_, err = ev.Rank(hand.Holdem, cards.MustParseRun("As2c"), cards.MustParseRun("2c3c4c5c6c"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = ev.Rank(hand.Game("stud"), cards.MustParseRun("AsKs"), cards.MustParseRun("2c3c4c5c6c"))
	assert.ErrorIs(t, err, ErrUnsupportedGame)

	_, err = Paulhankin{}.Rank(hand.Omaha, cards.MustParseRun("AsKsQsJs"), cards.MustParseRun("2c3c4c5c6c"))
	assert.ErrorIs(t, err, ErrUnsupportedGame)

	_, err = New("nope")
	assert.Error(t, err)
}
