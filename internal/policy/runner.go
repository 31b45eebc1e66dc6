package policy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-rules/internal/game"
)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithClock sets the clock used for thinking delays.
func WithClock(clock quartz.Clock) RunnerOption {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithThinkTime delays every action by d.
func WithThinkTime(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.think = d
	}
}

// WithRounds sets how many rounds RunTables plays on this runner's table.
func WithRounds(n int) RunnerOption {
	return func(r *Runner) {
		r.rounds = n
	}
}

// WithLogger sets the logger. The runner logs under the "runner" prefix.
func WithLogger(logger *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger.WithPrefix("runner")
	}
}

// Runner plays a table by asking each seat's agent for a decision and
// submitting it through Table.PerformAction.
type Runner struct {
	name   string
	table  *game.Table
	agents map[string]Agent
	clock  quartz.Clock
	think  time.Duration
	rounds int
	logger *log.Logger
}

// NewRunner requires an agent for every player seated at table.
func NewRunner(name string, table *game.Table, agents map[string]Agent, opts ...RunnerOption) (*Runner, error) {
	for _, p := range table.State().Players {
		if agents[p.ID] == nil {
			return nil, fmt.Errorf("table %s: no agent for player %q", name, p.ID)
		}
	}

	r := &Runner{
		name:   name,
		table:  table,
		agents: agents,
		clock:  quartz.NewReal(),
		rounds: 100,
		logger: log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("table", name)
	return r, nil
}

// Name returns the name the runner was created with.
func (r *Runner) Name() string {
	return r.name
}

// Table returns the table being played.
func (r *Runner) Table() *game.Table {
	return r.table
}

// PlayRound deals a round and plays it to showdown. It returns
// game.ErrGameOver when the table cannot deal another round, and the
// context's error if ctx is done between actions.
func (r *Runner) PlayRound(ctx context.Context) error {
	if err := r.table.StartNewRound(); err != nil {
		return err
	}

	for {
		state := r.table.State()
		player, ok := game.CurrentPlayer(state)
		if !ok {
			return nil
		}

		valid := game.AvailableActions(state)
		decision := r.agents[player.ID].Decide(state, player, valid)

		if err := r.pause(ctx); err != nil {
			return err
		}

		err := r.table.PerformAction(player.ID, decision.Action, decision.Amount)
		if errors.Is(err, game.ErrInvalidAction) {
			r.logger.Warn("agent chose an invalid action, folding",
				"player", player.ID,
				"action", decision.Action,
				"amount", decision.Amount,
				"err", err)
			err = r.table.PerformAction(player.ID, game.Fold, 0)
		}
		if err != nil {
			return fmt.Errorf("table %s: %s %s: %w", r.name, player.ID, decision.Action, err)
		}

		r.logger.Debug("decision",
			"player", player.ID,
			"action", decision.Action,
			"amount", decision.Amount,
			"reasoning", decision.Reasoning)
	}
}

// Run plays up to rounds rounds, stopping early without error once the
// game is over. It returns the number of rounds completed.
func (r *Runner) Run(ctx context.Context, rounds int) (int, error) {
	for played := 0; played < rounds; played++ {
		err := r.PlayRound(ctx)
		if errors.Is(err, game.ErrGameOver) {
			r.logger.Info("game over", "rounds", played)
			return played, nil
		}
		if err != nil {
			return played, err
		}
	}
	return rounds, nil
}

func (r *Runner) pause(ctx context.Context) error {
	if r.think <= 0 {
		return ctx.Err()
	}

	elapsed := make(chan struct{})
	timer := r.clock.AfterFunc(r.think, func() {
		close(elapsed)
	})
	defer timer.Stop()

	select {
	case <-elapsed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunTables plays every runner concurrently for its configured number of
// rounds. The first failure cancels the others.
func RunTables(ctx context.Context, runners []*Runner) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error {
			_, err := r.Run(ctx, r.rounds)
			return err
		})
	}
	return g.Wait()
}
