package game

import (
	"slices"
	"strings"
)

// CalculatePots splits every chip committed this hand into a main pot and
// side pots. The amounts always sum to the players' TotalBetThisRound, and a
// player is eligible for a pot only if they have not folded and reached the
// pot's contribution level.
func CalculatePots(state GameState) []Pot {
	return mergePots(buildPotTiers(state.Players))
}

// buildPotTiers creates one pot per distinct contribution level among the
// players still in the hand. Folded money counts towards every tier it
// reached; anything above the highest live level goes to the last pot.
func buildPotTiers(players []Player) []Pot {
	var levels []int
	for i := range players {
		p := &players[i]
		if p.InHand() && p.TotalBetThisRound > 0 && !slices.Contains(levels, p.TotalBetThisRound) {
			levels = append(levels, p.TotalBetThisRound)
		}
	}
	slices.Sort(levels)

	if len(levels) == 0 {
		total := 0
		for i := range players {
			total += players[i].TotalBetThisRound
		}
		return []Pot{{Amount: total, Eligible: inHandIDs(players, 0)}}
	}

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		inc := level - prev
		amount := 0
		for i := range players {
			amount += min(max(players[i].TotalBetThisRound-prev, 0), inc)
		}
		pots = append(pots, Pot{Amount: amount, Eligible: inHandIDs(players, level)})
		prev = level
	}

	for i := range players {
		if over := players[i].TotalBetThisRound - prev; over > 0 {
			pots[len(pots)-1].Amount += over
		}
	}

	return pots
}

// mergePots folds together adjacent tiers contested by the same players.
func mergePots(tiers []Pot) []Pot {
	var merged []Pot
	index := make(map[string]int)
	for _, pot := range tiers {
		key := strings.Join(pot.Eligible, "\x00")
		if i, ok := index[key]; ok {
			merged[i].Amount += pot.Amount
			continue
		}
		index[key] = len(merged)
		merged = append(merged, Pot{Amount: pot.Amount, Eligible: pot.Eligible})
	}
	return merged
}

// inHandIDs returns, in seat order, the players still in the hand who
// committed at least level chips.
func inHandIDs(players []Player, level int) []string {
	ids := []string{}
	for i := range players {
		if players[i].InHand() && players[i].TotalBetThisRound >= level {
			ids = append(ids, players[i].ID)
		}
	}
	return ids
}
