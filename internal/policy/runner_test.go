package policy

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/randutil"
)

func newTable(t *testing.T, seed int64, chips ...int) *game.Table {
	t.Helper()
	seats := make([]game.Seat, len(chips))
	for i, c := range chips {
		seats[i] = game.Seat{ID: string(rune('a' + i)), Chips: c}
	}
	tbl, err := game.NewTable(seats, 5, 10, game.WithRNG(randutil.New(seed)))
	require.NoError(t, err)
	return tbl
}

func agentsFor(tbl *game.Table, mk func() Agent) map[string]Agent {
	agents := make(map[string]Agent)
	for _, p := range tbl.State().Players {
		agents[p.ID] = mk()
	}
	return agents
}

// counting records how often it was asked to decide.
type counting struct {
	Agent
	calls atomic.Int32
}

func (c *counting) Decide(state game.GameState, player game.Player, valid []game.ValidAction) Decision {
	c.calls.Add(1)
	return c.Agent.Decide(state, player, valid)
}

// cheater always tries to check, which is illegal facing a bet.
type cheater struct{}

func (cheater) Decide(game.GameState, game.Player, []game.ValidAction) Decision {
	return Decision{Action: game.Check}
}

func TestNewRunnerRequiresEveryAgent(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, 1, 100, 100)
	_, err := NewRunner("t1", tbl, map[string]Agent{"a": CallingStation{}})
	require.Error(t, err)
}

func TestPlayRoundReachesShowdown(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, 1, 1000, 1000, 1000)
	r, err := NewRunner("t1", tbl, agentsFor(tbl, func() Agent { return CallingStation{} }))
	require.NoError(t, err)

	require.NoError(t, r.PlayRound(context.Background()))

	s := tbl.State()
	assert.Equal(t, game.Showdown, s.Phase)
	assert.Len(t, s.CommunityCards, 5, "calling stations always see the river")
	assert.NotEmpty(t, s.Winners)
	assert.Equal(t, 3000, tbl.TotalChips())
}

func TestInvalidDecisionFolds(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, 1, 1000, 1000)
	r, err := NewRunner("t1", tbl, map[string]Agent{"a": cheater{}, "b": CallingStation{}})
	require.NoError(t, err)

	require.NoError(t, r.PlayRound(context.Background()))

	s := tbl.State()
	assert.Equal(t, game.Showdown, s.Phase)
	assert.Equal(t, []game.Winnings{{PlayerID: "b", Amount: 15}}, s.Winners)
}

func TestRunStopsAtGameOver(t *testing.T) {
	t.Parallel()

	tbl := newTable(t, 9, 100, 100)
	r, err := NewRunner("t1", tbl, agentsFor(tbl, func() Agent { return NewRandom(randutil.New(3)) }))
	require.NoError(t, err)

	played, err := r.Run(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Less(t, played, 10_000)
	assert.Equal(t, game.Ended, tbl.State().Phase)
	assert.Equal(t, 200, tbl.TotalChips())
	assert.Len(t, tbl.History(), played)
}

func TestThinkTimeDelaysActions(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	tbl := newTable(t, 1, 1000, 1000)
	agent := &counting{Agent: CallingStation{}}
	r, err := NewRunner("t1", tbl, map[string]Agent{"a": agent, "b": agent},
		WithClock(mClock), WithThinkTime(time.Second))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- r.PlayRound(ctx)
	}()

	require.Eventually(t, func() bool { return agent.calls.Load() == 1 }, 5*time.Second, time.Millisecond)
	assert.Nil(t, tbl.State().LastAction, "action submitted before the think time elapsed")

	for {
		select {
		case err := <-done:
			require.NoError(t, err)
			assert.Equal(t, game.Showdown, tbl.State().Phase)
			assert.GreaterOrEqual(t, agent.calls.Load(), int32(8))
			return
		case <-time.After(time.Millisecond):
			mClock.Advance(time.Second).MustWait(ctx)
		}
	}
}

func TestPlayRoundHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	tbl := newTable(t, 1, 1000, 1000)
	r, err := NewRunner("t1", tbl, agentsFor(tbl, func() Agent { return CallingStation{} }),
		WithClock(quartz.NewMock(t)), WithThinkTime(time.Hour))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- r.PlayRound(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, game.Preflop, tbl.State().Phase)
}

func TestRunTables(t *testing.T) {
	t.Parallel()

	var runners []*Runner
	for i := range 4 {
		tbl := newTable(t, int64(i+1), 500, 500, 500)
		r, err := NewRunner("t"+string(rune('0'+i)), tbl, agentsFor(tbl, func() Agent {
			return NewRandom(randutil.New(int64(i + 10)))
		}), WithRounds(25))
		require.NoError(t, err)
		runners = append(runners, r)
	}

	require.NoError(t, RunTables(context.Background(), runners))
	for _, r := range runners {
		assert.Equal(t, 1500, r.Table().TotalChips(), "table %s", r.Name())
		assert.NotEmpty(t, r.Table().History())
	}
}
