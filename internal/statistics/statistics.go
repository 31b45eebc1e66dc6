package statistics

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/lox/holdem-rules/internal/game"
)

// Summary accumulates one player's per-round results in big blinds
type Summary struct {
	Rounds   int
	Won      int // Rounds that ended with more chips than they started
	SumBB    float64
	SumBB2   float64 // Sum of squares for variance calculation
	NetChips int
}

// Add records one round's net result.
func (s *Summary) Add(netChips, bigBlind int) {
	bb := float64(netChips) / float64(bigBlind)
	s.Rounds++
	s.SumBB += bb
	s.SumBB2 += bb * bb
	s.NetChips += netChips
	if netChips > 0 {
		s.Won++
	}
}

// Mean returns big blinds won per round
func (s *Summary) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumBB / float64(s.Rounds)
}

// Variance returns the sample variance of per-round results
func (s *Summary) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

func (s *Summary) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Summary) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Summary) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Ledger tracks the stack of every player at one table between rounds.
// It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	bigBlind int
	stacks   map[string]int
	players  map[string]*Summary
	net      int
}

// NewLedger starts tracking from the stacks in state.
func NewLedger(state game.GameState) *Ledger {
	l := &Ledger{
		bigBlind: state.BigBlind,
		stacks:   make(map[string]int, len(state.Players)),
		players:  make(map[string]*Summary, len(state.Players)),
	}
	for _, p := range state.Players {
		l.stacks[p.ID] = p.Chips
		l.players[p.ID] = &Summary{}
	}
	return l
}

// Record compares the stacks in state, taken after a round, with the
// previous ones. Players no longer seated are skipped.
func (l *Ledger) Record(state game.GameState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range state.Players {
		s, ok := l.players[p.ID]
		if !ok {
			continue
		}
		delta := p.Chips - l.stacks[p.ID]
		s.Add(delta, l.bigBlind)
		l.stacks[p.ID] = p.Chips
		l.net += delta
	}
}

// Summary returns a copy of one player's results.
func (l *Ledger) Summary(playerID string) (Summary, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.players[playerID]
	if !ok {
		return Summary{}, false
	}
	return *s, true
}

// Players returns the tracked player ids, best result first.
func (l *Ledger) Players() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.players))
	for id := range l.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.players[ids[i]], l.players[ids[j]]
		if a.NetChips != b.NetChips {
			return a.NetChips > b.NetChips
		}
		return ids[i] < ids[j]
	})
	return ids
}

// IsBalanced reports whether every chip won was lost by someone else.
func (l *Ledger) IsBalanced() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.net == 0
}

// Validate checks the ledger's accounting.
func (l *Ledger) Validate() error {
	if !l.IsBalanced() {
		return fmt.Errorf("ledger mismatch: net %d chips", l.net)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, s := range l.players {
		if s.Won > s.Rounds {
			return fmt.Errorf("player %s: won %d of %d rounds", id, s.Won, s.Rounds)
		}
	}
	return nil
}
