package evaluator

import (
	"testing"

	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-rules/internal/deck"
	"github.com/lox/holdem-rules/internal/randutil"
)

func randomHands(t *testing.T, seed int64, n, size int) [][]deck.Card {
	t.Helper()
	rng := randutil.New(seed)
	hands := make([][]deck.Card, n)
	for i := range hands {
		shuffled := deck.Shuffle(deck.New(), rng)
		hands[i] = shuffled[:size]
	}
	return hands
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func TestCompareIsTotalOrder(t *testing.T) {
	t.Parallel()

	cards := randomHands(t, 1, 300, 5)
	hands := make([]Hand, len(cards))
	for i, c := range cards {
		hands[i] = MustEvaluate(c)
	}

	for i := 0; i+2 < len(hands); i++ {
		a, b, c := hands[i], hands[i+1], hands[i+2]

		require.Equal(t, -Compare(a, b), Compare(b, a), "antisymmetry: %s vs %s", a, b)
		require.Equal(t, 0, Compare(a, a))

		if Compare(a, b) >= 0 && Compare(b, c) >= 0 {
			require.GreaterOrEqual(t, Compare(a, c), 0, "transitivity: %s >= %s >= %s", a, b, c)
		}
		if Compare(a, b) <= 0 && Compare(b, c) <= 0 {
			require.LessOrEqual(t, Compare(a, c), 0, "transitivity: %s <= %s <= %s", a, b, c)
		}
	}
}

// toReference converts a card for github.com/paulhankin/poker, which numbers
// ranks 1-13 with the ace as 1.
func toReference(t *testing.T, c deck.Card) poker.Card {
	t.Helper()
	rank := int(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}
	card, err := poker.MakeCard(poker.Suit(c.Suit), poker.Rank(rank))
	require.NoError(t, err)
	return card
}

func TestEvaluateAgreesWithReferenceEvaluator(t *testing.T) {
	t.Parallel()

	cards := randomHands(t, 2, 1000, 7)
	for i := 0; i+1 < len(cards); i += 2 {
		var a, b [7]poker.Card
		for j := range 7 {
			a[j] = toReference(t, cards[i][j])
			b[j] = toReference(t, cards[i+1][j])
		}
		want := sign(int(poker.Eval7(&a)) - int(poker.Eval7(&b)))

		got := Compare(MustEvaluate(cards[i]), MustEvaluate(cards[i+1]))
		require.Equal(t, want, got, "%v vs %v", cards[i], cards[i+1])
	}
}
