package game

import "github.com/lox/holdem-rules/internal/deck"

// Player represents a seated player. Round fields are reset by StartNewRound.
type Player struct {
	ID    string
	Seat  int // Fixed seat number; turn order follows it
	Chips int

	HoleCards         []deck.Card
	CurrentBet        int // Bet on the current street
	TotalBetThisRound int // Total committed this hand, across streets
	HasFolded         bool
	IsAllIn           bool
	HasActed          bool // Acted voluntarily on the current street

	IsDealer     bool
	IsSmallBlind bool
	IsBigBlind   bool

	Policy string // Optional tag naming the agent that drives this seat
}

// CanAct returns true if the player may still take actions this hand
func (p *Player) CanAct() bool {
	return !p.HasFolded && !p.IsAllIn
}

// InHand returns true if the player still contests the pot
func (p *Player) InHand() bool {
	return !p.HasFolded
}

func (p *Player) resetForNewRound() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBetThisRound = 0
	p.HasFolded = false
	p.IsAllIn = false
	p.HasActed = false
	p.IsDealer = false
	p.IsSmallBlind = false
	p.IsBigBlind = false
}

// commit moves amount from the stack into the pot, marking all-in when the
// stack runs out.
func (p *Player) commit(amount int) {
	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBetThisRound += amount
	if p.Chips == 0 {
		p.IsAllIn = true
	}
}
