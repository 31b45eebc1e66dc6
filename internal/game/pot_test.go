package game

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-rules/internal/randutil"
)

// contributed builds players from "id:total" pairs; a trailing "!" marks a
// folded player.
func contributed(entries ...string) GameState {
	players := make([]Player, len(entries))
	for i, s := range entries {
		s, folded := strings.CutSuffix(s, "!")
		id, amount, _ := strings.Cut(s, ":")
		total, err := strconv.Atoi(amount)
		if err != nil {
			panic(err)
		}
		players[i] = Player{ID: id, Seat: i, TotalBetThisRound: total, HasFolded: folded}
	}
	return GameState{Players: players}
}

func TestCalculatePots(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state GameState
		want  []Pot
	}{
		{
			name:  "no bets",
			state: contributed("a:0", "b:0", "c:0!"),
			want:  []Pot{{Amount: 0, Eligible: []string{"a", "b"}}},
		},
		{
			name:  "equal contributions",
			state: contributed("a:100", "b:100", "c:100"),
			want:  []Pot{{Amount: 300, Eligible: []string{"a", "b", "c"}}},
		},
		{
			name:  "short all-in creates a side pot",
			state: contributed("a:50", "b:100", "c:100"),
			want: []Pot{
				{Amount: 150, Eligible: []string{"a", "b", "c"}},
				{Amount: 100, Eligible: []string{"b", "c"}},
			},
		},
		{
			name:  "folded chips count towards the tiers they reached",
			state: contributed("a:50", "b:100", "c:30!", "d:100"),
			want: []Pot{
				{Amount: 180, Eligible: []string{"a", "b", "d"}},
				{Amount: 100, Eligible: []string{"b", "d"}},
			},
		},
		{
			name:  "folded chips above every live level",
			state: contributed("a:20", "b:60!", "c:20"),
			want:  []Pot{{Amount: 100, Eligible: []string{"a", "c"}}},
		},
		{
			name:  "three levels",
			state: contributed("a:10", "b:25", "c:40", "d:40"),
			want: []Pot{
				{Amount: 40, Eligible: []string{"a", "b", "c", "d"}},
				{Amount: 45, Eligible: []string{"b", "c", "d"}},
				{Amount: 30, Eligible: []string{"c", "d"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalculatePots(tt.state))
		})
	}
}

func TestMergePots(t *testing.T) {
	t.Parallel()

	merged := mergePots([]Pot{
		{Amount: 10, Eligible: []string{"a", "b"}},
		{Amount: 20, Eligible: []string{"a", "b"}},
		{Amount: 5, Eligible: []string{"b"}},
	})
	assert.Equal(t, []Pot{
		{Amount: 30, Eligible: []string{"a", "b"}},
		{Amount: 5, Eligible: []string{"b"}},
	}, merged)
}

func TestCalculatePotsIsSound(t *testing.T) {
	t.Parallel()

	rng := randutil.New(7)
	for i := range 500 {
		n := 2 + rng.IntN(7)
		players := make([]Player, n)
		total := 0
		for j := range players {
			players[j] = Player{
				ID:                fmt.Sprintf("p%d", j),
				Seat:              j,
				TotalBetThisRound: rng.IntN(5) * 25,
				HasFolded:         j > 0 && rng.IntN(4) == 0,
			}
			total += players[j].TotalBetThisRound
		}
		state := GameState{Players: players}

		pots := CalculatePots(state)
		require.NotEmpty(t, pots, "case %d", i)

		sum := 0
		seen := make(map[string]bool)
		for _, pot := range pots {
			sum += pot.Amount
			key := fmt.Sprint(pot.Eligible)
			assert.False(t, seen[key], "case %d: pots with equal eligibility must merge", i)
			seen[key] = true

			for _, id := range pot.Eligible {
				p, ok := state.Player(id)
				require.True(t, ok)
				assert.False(t, p.HasFolded, "case %d: folded player %s eligible", i, id)
			}
		}
		assert.Equal(t, total, sum, "case %d: pots must hold every chip committed", i)
	}
}
