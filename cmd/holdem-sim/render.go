package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-rules/internal/deck"
	"github.com/lox/holdem-rules/internal/game"
	"github.com/lox/holdem-rules/internal/statistics"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	tableStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	bustStyle = lipgloss.NewStyle().
			Faint(true)
)

func renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "-"
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit.IsRed() {
			parts[i] = redCardStyle.Render(c.String())
		} else {
			parts[i] = c.String()
		}
	}
	return strings.Join(parts, " ")
}

func renderRound(table string, r game.RoundResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d pot %d board %s",
		tableStyle.Render("["+table+"]"), r.RoundNumber, r.PotTotal, renderCards(r.CommunityCards))
	for _, w := range r.Winners {
		fmt.Fprintf(&b, "\n  %s wins %d", winStyle.Render(w.PlayerID), w.Amount)
		if w.HandDescription != "" {
			fmt.Fprintf(&b, " with %s", handStyle.Render(w.HandDescription))
		}
	}
	return b.String()
}

func renderStandings(table string, state game.GameState, ledger *statistics.Ledger) string {
	players := slices.Clone(state.Players)
	slices.SortStableFunc(players, func(a, b game.Player) int {
		return b.Chips - a.Chips
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s after %d rounds (%s)\n",
		headerStyle.Render("Table "+table), state.RoundNumber, state.Phase)
	for i, p := range players {
		line := fmt.Sprintf("  %d. %-12s %8d", i+1, p.ID, p.Chips)
		if s, ok := ledger.Summary(p.ID); ok && s.Rounds > 0 {
			lo, hi := s.ConfidenceInterval95()
			line += fmt.Sprintf("  %+7.2f bb/round [%+.2f, %+.2f]", s.Mean(), lo, hi)
		}
		if p.Policy != "" {
			line += "  " + p.Policy
		}
		if p.Chips == 0 {
			line = bustStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(players)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
