package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/policy"
)

const (
	defaultStartingChips = 1000
	defaultRounds        = 100
	defaultPolicy        = policy.CallingStationPolicy
)

// Config is the simulator configuration
type Config struct {
	LogLevel  string        `hcl:"log_level,optional"`
	ThinkTime string        `hcl:"think_time,optional"`
	Tables    []TableConfig `hcl:"table,block"`
}

// TableConfig defines one table and the players seated at it
type TableConfig struct {
	Name          string         `hcl:"name,label"`
	SmallBlind    int            `hcl:"small_blind"`
	BigBlind      int            `hcl:"big_blind"`
	StartingChips int            `hcl:"starting_chips,optional"`
	Seed          int64          `hcl:"seed,optional"`
	Rounds        int            `hcl:"rounds,optional"`
	Players       []PlayerConfig `hcl:"player,block"`
}

// PlayerConfig seats one player
type PlayerConfig struct {
	ID     string `hcl:"id,label"`
	Policy string `hcl:"policy,optional"`
	Chips  int    `hcl:"chips,optional"`
}

// Default returns one four-handed table of reference agents.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		ThinkTime: "0s",
		Tables: []TableConfig{
			{
				Name:          "main",
				SmallBlind:    5,
				BigBlind:      10,
				StartingChips: defaultStartingChips,
				Rounds:        defaultRounds,
				Players: []PlayerConfig{
					{ID: "alice", Policy: policy.CallingStationPolicy, Chips: defaultStartingChips},
					{ID: "bob", Policy: policy.RandomPolicy, Chips: defaultStartingChips},
					{ID: "carol", Policy: policy.RandomPolicy, Chips: defaultStartingChips},
					{ID: "dave", Policy: policy.CallingStationPolicy, Chips: defaultStartingChips},
				},
			},
		},
	}
}

// Load reads an HCL configuration file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.ThinkTime == "" {
		c.ThinkTime = "0s"
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.StartingChips == 0 {
			t.StartingChips = defaultStartingChips
		}
		if t.Rounds == 0 {
			t.Rounds = defaultRounds
		}
		for j := range t.Players {
			p := &t.Players[j]
			if p.Policy == "" {
				p.Policy = defaultPolicy
			}
			if p.Chips == 0 {
				p.Chips = t.StartingChips
			}
		}
	}
}

// Validate checks the configuration for values no table could start with.
func (c *Config) Validate() error {
	if _, err := c.ThinkDuration(); err != nil {
		return err
	}
	if len(c.Tables) == 0 {
		return errors.New("at least one table must be configured")
	}

	names := make(map[string]bool)
	for _, t := range c.Tables {
		if names[t.Name] {
			return fmt.Errorf("table %s: defined more than once", t.Name)
		}
		names[t.Name] = true

		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind < t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be at least the small blind", t.Name)
		}
		if t.Rounds < 0 {
			return fmt.Errorf("table %s: rounds must not be negative", t.Name)
		}
		if len(t.Players) < 2 || len(t.Players) > game.MaxPlayers {
			return fmt.Errorf("table %s: needs between 2 and %d players, got %d", t.Name, game.MaxPlayers, len(t.Players))
		}

		ids := make(map[string]bool)
		for _, p := range t.Players {
			if ids[p.ID] {
				return fmt.Errorf("table %s: player %s seated twice", t.Name, p.ID)
			}
			ids[p.ID] = true
			if !slices.Contains(policy.Names, p.Policy) {
				return fmt.Errorf("table %s: player %s: invalid policy %s", t.Name, p.ID, p.Policy)
			}
			if p.Chips <= 0 {
				return fmt.Errorf("table %s: player %s: chips must be positive", t.Name, p.ID)
			}
		}
	}
	return nil
}

// ThinkDuration parses ThinkTime.
func (c *Config) ThinkDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.ThinkTime)
	if err != nil {
		return 0, fmt.Errorf("invalid think_time %q: %w", c.ThinkTime, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("think_time must not be negative: %s", d)
	}
	return d, nil
}

// Table returns the table named name, or nil.
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// Seats converts the players into table seats, in the order configured.
func (t *TableConfig) Seats() []game.Seat {
	seats := make([]game.Seat, len(t.Players))
	for i, p := range t.Players {
		seats[i] = game.Seat{ID: p.ID, Chips: p.Chips, Policy: p.Policy}
	}
	return seats
}
