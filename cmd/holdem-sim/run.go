package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-rules/internal/config"
	"github.com/lox/holdem-rules/internal/fileutil"
	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/policy"
	"github.com/lox/holdem-rules/internal/randutil"
	"github.com/lox/holdem-rules/internal/statistics"
)

// RunCmd plays every configured table concurrently
type RunCmd struct {
	Config   string   `short:"c" default:"holdem.hcl" type:"path" help:"HCL table configuration (defaults are used if missing)"`
	Tables   []string `short:"t" help:"Only play the named tables"`
	Rounds   int      `help:"Rounds per table, overriding the configuration"`
	Seed     int64    `help:"Seed for every table, overriding the configuration (0 keeps it)"`
	LogLevel string   `help:"Log level (debug, info, warn, error), overriding the configuration"`
	Quiet    bool     `short:"q" help:"Only print final standings"`
	History  string   `type:"path" help:"Write every round result, keyed by table, as JSON to this file"`
}

func (c *RunCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	levelName := cfg.LogLevel
	if c.LogLevel != "" {
		levelName = c.LogLevel
	}
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelName, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	think, err := cfg.ThinkDuration()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := &printer{w: os.Stdout, quiet: c.Quiet}
	var runners []*policy.Runner
	ledgers := make(map[string]*statistics.Ledger)
	for i := range cfg.Tables {
		tc := &cfg.Tables[i]
		if len(c.Tables) > 0 && !slices.Contains(c.Tables, tc.Name) {
			continue
		}
		r, ledger, err := c.newRunner(tc, think, logger, out)
		if err != nil {
			return err
		}
		runners = append(runners, r)
		ledgers[tc.Name] = ledger
	}
	if len(runners) == 0 {
		return fmt.Errorf("no tables match %v", c.Tables)
	}

	err = policy.RunTables(ctx, runners)
	history := make(map[string][]game.RoundResult, len(runners))
	for _, r := range runners {
		ledger := ledgers[r.Name()]
		if verr := ledger.Validate(); verr != nil {
			logger.Error("chip accounting failed", "table", r.Name(), "err", verr)
		}
		out.standings(r.Name(), r.Table().State(), ledger)
		history[r.Name()] = r.Table().History()
	}

	if c.History != "" {
		if werr := fileutil.WriteJSON(c.History, history); werr != nil {
			return errors.Join(err, werr)
		}
		logger.Info("wrote round history", "path", c.History)
	}
	return err
}

func (c *RunCmd) newRunner(tc *config.TableConfig, think time.Duration, logger *log.Logger, out *printer) (*policy.Runner, *statistics.Ledger, error) {
	seed := tc.Seed
	if c.Seed != 0 {
		seed = c.Seed
	}
	seed = randutil.Seed(seed)
	rounds := tc.Rounds
	if c.Rounds > 0 {
		rounds = c.Rounds
	}

	tableLogger := logger.With("table", tc.Name)
	tableLogger.Info("seating table", "seed", seed, "players", len(tc.Players), "rounds", rounds)

	var table *game.Table
	var ledger *statistics.Ledger
	table, err := game.NewTable(tc.Seats(), tc.SmallBlind, tc.BigBlind,
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(tableLogger),
		game.WithRoundEndHandler(func(r game.RoundResult) {
			ledger.Record(table.State())
			out.round(tc.Name, r)
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("table %s: %w", tc.Name, err)
	}
	ledger = statistics.NewLedger(table.State())

	agents := make(map[string]policy.Agent, len(tc.Players))
	for i, p := range tc.Players {
		agent, err := policy.New(p.Policy, randutil.New(randutil.Derive(seed, i+1)))
		if err != nil {
			return nil, nil, fmt.Errorf("table %s: player %s: %w", tc.Name, p.ID, err)
		}
		agents[p.ID] = agent
	}

	r, err := policy.NewRunner(tc.Name, table, agents,
		policy.WithThinkTime(think),
		policy.WithRounds(rounds),
		policy.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return r, ledger, nil
}

// printer serialises output from tables playing concurrently.
type printer struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func (p *printer) round(table string, r game.RoundResult) {
	if p.quiet {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, renderRound(table, r))
}

func (p *printer) standings(table string, state game.GameState, ledger *statistics.Ledger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, renderStandings(table, state, ledger))
}
