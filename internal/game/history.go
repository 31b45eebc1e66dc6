package game

import "github.com/lox/holdem-rules/internal/deck"

// Winnings is one player's share of a finished round
type Winnings struct {
	PlayerID        string
	Amount          int
	HandDescription string // Empty when everyone else folded
}

// RoundResult is recorded when a round reaches showdown and handed to
// round-end handlers.
type RoundResult struct {
	RoundNumber    int
	Winners        []Winnings
	CommunityCards []deck.Card
	PotTotal       int
	Fingerprint    uint64 // GameState.Fingerprint of the finished round
}

func (r RoundResult) clone() RoundResult {
	r.Winners = append([]Winnings(nil), r.Winners...)
	r.CommunityCards = cloneCards(r.CommunityCards)
	return r
}
