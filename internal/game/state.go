package game

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/lox/holdem-rules/internal/deck"
)

// Phase is the stage of the current round
type Phase int

const (
	Waiting Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
	Ended
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// IsBetting returns true for the four betting streets
func (p Phase) IsBetting() bool {
	return p >= Preflop && p <= River
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

// AllActions lists every action, in declaration order.
var AllActions = [...]Action{Fold, Check, Call, Raise, AllIn}

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction converts the String form back into an Action.
func ParseAction(s string) (Action, error) {
	for _, a := range AllActions {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", s)
}

// ActionRecord is the last action applied to the table
type ActionRecord struct {
	PlayerID string
	Action   Action
	Amount   int // Chips moved from the stack by this action
}

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Eligible []string // Player IDs that can win it, in seat order
}

// GameState is the complete state of a table. Values handed out by this
// package never share memory with the table's own copy.
type GameState struct {
	Players            []Player
	CommunityCards     []deck.Card
	Pots               []Pot
	CurrentPlayerIndex int // -1 when nobody is to act
	DealerIndex        int
	Phase              Phase
	CurrentBet         int // Street bet every player must match
	MinimumBet         int // Smallest legal raise increment
	SmallBlind         int
	BigBlind           int
	RoundNumber        int
	LastAction         *ActionRecord
	Winners            []Winnings
}

// Clone returns a deep copy of the state.
func (s GameState) Clone() GameState {
	c := s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		p.HoleCards = cloneCards(p.HoleCards)
		c.Players[i] = p
	}
	c.CommunityCards = cloneCards(s.CommunityCards)
	if s.Pots != nil {
		c.Pots = make([]Pot, len(s.Pots))
		for i, pot := range s.Pots {
			c.Pots[i] = Pot{Amount: pot.Amount, Eligible: append([]string(nil), pot.Eligible...)}
		}
	}
	if s.LastAction != nil {
		la := *s.LastAction
		c.LastAction = &la
	}
	if s.Winners != nil {
		c.Winners = append([]Winnings(nil), s.Winners...)
	}
	return c
}

// Fingerprint hashes the full state. Two tables fed the same deck and the
// same actions produce the same fingerprint.
func (s GameState) Fingerprint() (uint64, error) {
	return hashstructure.Hash(s, hashstructure.FormatV2, nil)
}

// PlayerIndex returns the seat index of id, or -1.
func (s *GameState) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Player returns a copy of the player with the given id.
func (s *GameState) Player(id string) (Player, bool) {
	if i := s.PlayerIndex(id); i >= 0 {
		return s.Players[i], true
	}
	return Player{}, false
}

func (s *GameState) countInHand() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].InHand() {
			n++
		}
	}
	return n
}

func (s *GameState) countCanAct() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].CanAct() {
			n++
		}
	}
	return n
}

// nextIndex returns the first index after from (circularly) whose player
// satisfies ok, or -1.
func (s *GameState) nextIndex(from int, ok func(*Player) bool) int {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		idx := ((from+i)%n + n) % n
		if ok(&s.Players[idx]) {
			return idx
		}
	}
	return -1
}

func cloneCards(cards []deck.Card) []deck.Card {
	if cards == nil {
		return nil
	}
	return append([]deck.Card(nil), cards...)
}
