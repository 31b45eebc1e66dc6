package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-rules/internal/deck"
	"github.com/lox/holdem-rules/internal/evaluator"
	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/statistics"
)

func TestEvaluateHands(t *testing.T) {
	t.Parallel()

	hands, err := evaluateHands([]string{"AhAd", "KsKc"}, deck.MustParseCards("2c7d9hJsQd"))
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "Pair of Aces", evaluator.Describe(hands[0]))
	assert.Equal(t, 1, evaluator.Compare(hands[0], hands[1]))

	_, err = evaluateHands([]string{"AhAd"}, nil)
	require.ErrorIs(t, err, evaluator.ErrInvalidCardCount)

	_, err = evaluateHands([]string{"AhXx"}, nil)
	require.Error(t, err)
}

func TestRenderRound(t *testing.T) {
	t.Parallel()

	out := renderRound("main", game.RoundResult{
		RoundNumber:    7,
		PotTotal:       120,
		CommunityCards: deck.MustParseCards("AsKdQc"),
		Winners: []game.Winnings{
			{PlayerID: "alice", Amount: 60, HandDescription: "Pair of Aces"},
			{PlayerID: "bob", Amount: 60},
		},
	})

	assert.Contains(t, out, "[main]")
	assert.Contains(t, out, "#7 pot 120")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Pair of Aces")
	assert.Contains(t, out, "bob")
}

func TestRenderStandingsSortsByChips(t *testing.T) {
	t.Parallel()

	start := game.GameState{
		BigBlind: 10,
		Players:  []game.Player{{ID: "alice", Chips: 200}, {ID: "bob", Chips: 200}},
	}
	ledger := statistics.NewLedger(start)
	end := game.GameState{
		RoundNumber: 3,
		Phase:       game.Showdown,
		Players: []game.Player{
			{ID: "alice", Chips: 100, Policy: "random"},
			{ID: "bob", Chips: 300, Policy: "calling-station"},
		},
	}
	ledger.Record(end)

	out := renderStandings("main", end, ledger)

	assert.Contains(t, out, "after 3 rounds (showdown)")
	assert.Less(t, strings.Index(out, "bob"), strings.Index(out, "alice"))
	assert.Contains(t, out, "+10.00 bb/round")
}

