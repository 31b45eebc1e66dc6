package statistics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/policy"
	"github.com/lox/holdem-rules/internal/randutil"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	var s Summary
	for _, net := range []int{20, -10, 0, 30} {
		s.Add(net, 10)
	}

	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 2, s.Won)
	assert.Equal(t, 40, s.NetChips)
	assert.InDelta(t, 1.0, s.Mean(), 1e-9)
	assert.InDelta(t, 10.0/3.0, s.Variance(), 1e-9)

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, s.Mean())
	assert.Greater(t, hi, s.Mean())

	var empty Summary
	assert.Zero(t, empty.Mean())
	assert.Zero(t, empty.StdError())
}

func TestLedgerRecord(t *testing.T) {
	t.Parallel()

	start := game.GameState{
		BigBlind: 10,
		Players:  []game.Player{{ID: "a", Chips: 100}, {ID: "b", Chips: 100}},
	}
	l := NewLedger(start)

	l.Record(game.GameState{Players: []game.Player{{ID: "a", Chips: 130}, {ID: "b", Chips: 70}}})
	l.Record(game.GameState{Players: []game.Player{{ID: "a", Chips: 120}, {ID: "b", Chips: 80}}})

	a, ok := l.Summary("a")
	require.True(t, ok)
	assert.Equal(t, 2, a.Rounds)
	assert.Equal(t, 1, a.Won)
	assert.Equal(t, 20, a.NetChips)
	assert.InDelta(t, 1.0, a.Mean(), 1e-9)

	_, ok = l.Summary("c")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, l.Players())
	require.NoError(t, l.Validate())

	l.Record(game.GameState{Players: []game.Player{{ID: "a", Chips: 500}, {ID: "b", Chips: 80}}})
	assert.False(t, l.IsBalanced())
	assert.Error(t, l.Validate())
}

func TestLedgerBalancesOverRealPlay(t *testing.T) {
	t.Parallel()

	var tbl *game.Table
	var l *Ledger
	tbl, err := game.NewTable([]game.Seat{
		{ID: "a", Chips: 300},
		{ID: "b", Chips: 300},
		{ID: "c", Chips: 300},
	}, 5, 10,
		game.WithRNG(randutil.New(21)),
		game.WithRoundEndHandler(func(game.RoundResult) {
			l.Record(tbl.State())
		}),
	)
	require.NoError(t, err)
	l = NewLedger(tbl.State())

	agents := map[string]policy.Agent{
		"a": policy.NewRandom(randutil.New(1)),
		"b": policy.NewRandom(randutil.New(2)),
		"c": policy.CallingStation{},
	}
	r, err := policy.NewRunner("ledger", tbl, agents)
	require.NoError(t, err)

	played, err := r.Run(context.Background(), 50)
	require.NoError(t, err)
	require.NotZero(t, played)

	require.NoError(t, l.Validate())
	total := 0
	for _, id := range l.Players() {
		s, _ := l.Summary(id)
		assert.LessOrEqual(t, s.Rounds, played, "player %s", id)
		total += s.NetChips
	}
	assert.Zero(t, total)
}
