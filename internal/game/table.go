package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-rules/internal/deck"
	"github.com/lox/holdem-rules/internal/evaluator"
	"github.com/lox/holdem-rules/internal/randutil"
)

// MaxPlayers is the largest table a single deck can deal a full round to.
const MaxPlayers = (deck.Size - 8) / 2

// Seat describes a player joining the table
type Seat struct {
	ID     string
	Chips  int
	Policy string
}

// Shuffler returns a permutation of the canonical deck it is given.
type Shuffler func(cards []deck.Card) []deck.Card

// TableOption configures a Table during creation.
type TableOption func(*Table)

// WithLogger sets the logger. The table logs under the "table" prefix.
func WithLogger(logger *log.Logger) TableOption {
	return func(t *Table) {
		t.logger = logger.WithPrefix("table")
	}
}

// WithRNG shuffles every deck from rng.
func WithRNG(rng *rand.Rand) TableOption {
	return func(t *Table) {
		t.shuffle = func(cards []deck.Card) []deck.Card {
			return deck.Shuffle(cards, rng)
		}
	}
}

// WithShuffler replaces shuffling entirely, e.g. with a stacked deck.
func WithShuffler(s Shuffler) TableOption {
	return func(t *Table) {
		t.shuffle = s
	}
}

// WithRoundEndHandler registers fn to be called with each RoundResult. fn
// runs after the table lock is released and may call back into the table.
func WithRoundEndHandler(fn func(RoundResult)) TableOption {
	return func(t *Table) {
		t.handlers = append(t.handlers, fn)
	}
}

// Table owns the authoritative GameState for one session and is the only
// thing that writes it. It is safe for concurrent use.
type Table struct {
	mu             sync.Mutex
	state          GameState
	deck           []deck.Card // Undealt cards for the current round
	prevDealerSeat int
	history        []RoundResult
	pending        []RoundResult

	handlers []func(RoundResult)
	logger   *log.Logger
	shuffle  Shuffler
}

// NewTable seats players in the order given and waits for StartNewRound.
func NewTable(seats []Seat, smallBlind, bigBlind int, opts ...TableOption) (*Table, error) {
	if len(seats) < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if len(seats) > MaxPlayers {
		return nil, fmt.Errorf("too many players: %d, maximum is %d", len(seats), MaxPlayers)
	}
	if smallBlind <= 0 || bigBlind < smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", smallBlind, bigBlind)
	}

	players := make([]Player, 0, len(seats))
	seen := make(map[string]bool, len(seats))
	for i, s := range seats {
		switch {
		case s.ID == "":
			return nil, fmt.Errorf("seat %d: empty player id", i)
		case seen[s.ID]:
			return nil, fmt.Errorf("seat %d: duplicate player id %q", i, s.ID)
		case s.Chips < 0:
			return nil, fmt.Errorf("seat %d: negative chips %d", i, s.Chips)
		}
		seen[s.ID] = true
		players = append(players, Player{ID: s.ID, Seat: i, Chips: s.Chips, Policy: s.Policy})
	}

	t := &Table{
		state: GameState{
			Players:            players,
			CurrentPlayerIndex: -1,
			Phase:              Waiting,
			SmallBlind:         smallBlind,
			BigBlind:           bigBlind,
			MinimumBet:         bigBlind,
		},
		prevDealerSeat: -1,
		logger:         log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel}),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.shuffle == nil {
		WithRNG(randutil.New(randutil.Seed(0)))(t)
	}
	return t, nil
}

// mutate runs fn under the lock, then delivers any finished rounds to the
// handlers once the lock is released.
func (t *Table) mutate(fn func() error) error {
	t.mu.Lock()
	err := fn()
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, r := range pending {
		for _, h := range t.handlers {
			h(r.clone())
		}
	}
	return err
}

// StartNewRound removes busted players, moves the button, posts blinds and
// deals hole cards. It returns ErrGameOver, leaving the table Ended, once
// fewer than two players have chips.
func (t *Table) StartNewRound() error {
	return t.mutate(t.startNewRound)
}

func (t *Table) startNewRound() error {
	if t.state.Phase.IsBetting() {
		return ErrRoundInProgress
	}
	if t.state.Phase == Ended {
		return ErrGameOver
	}

	next := t.state.Clone()
	kept := next.Players[:0]
	for _, p := range next.Players {
		if p.Chips > 0 {
			kept = append(kept, p)
		} else {
			t.logger.Info("player eliminated", "player", p.ID, "round", next.RoundNumber)
		}
	}
	next.Players = kept

	if len(next.Players) < 2 {
		next.Phase = Ended
		next.CurrentPlayerIndex = -1
		next.Pots = nil
		t.state = next
		t.deck = nil
		return ErrGameOver
	}

	for i := range next.Players {
		next.Players[i].resetForNewRound()
	}
	next.CommunityCards = nil
	next.Winners = nil
	next.LastAction = nil
	next.CurrentBet = 0
	next.MinimumBet = next.BigBlind

	n := len(next.Players)
	dealer := 0
	for i := range next.Players {
		if next.Players[i].Seat > t.prevDealerSeat {
			dealer = i
			break
		}
	}
	next.DealerIndex = dealer
	next.Players[dealer].IsDealer = true

	sb, bb := (dealer+1)%n, (dealer+2)%n
	if n == 2 {
		sb, bb = dealer, (dealer+1)%n
	}
	next.Players[sb].IsSmallBlind = true
	next.Players[bb].IsBigBlind = true
	next.Players[sb].commit(min(next.SmallBlind, next.Players[sb].Chips))
	next.Players[bb].commit(min(next.BigBlind, next.Players[bb].Chips))
	next.CurrentBet = max(next.Players[sb].CurrentBet, next.Players[bb].CurrentBet)

	cards := t.shuffle(deck.New())
	if err := deck.Validate(cards); err != nil {
		return fmt.Errorf("shuffled deck: %w", err)
	}
	for range 2 {
		for k := 1; k <= n; k++ {
			p := &next.Players[(dealer+k)%n]
			var dealt []deck.Card
			var err error
			dealt, cards, err = deck.Deal(cards, 1)
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p.HoleCards = append(p.HoleCards, dealt...)
		}
	}

	ids := make([]string, n)
	for i := range next.Players {
		ids[i] = next.Players[i].ID
	}
	next.Pots = []Pot{{Amount: 0, Eligible: ids}}
	next.RoundNumber++
	next.Phase = Preflop
	next.CurrentPlayerIndex = next.nextIndex(bb, (*Player).CanAct)

	t.state = next
	t.deck = cards
	t.prevDealerSeat = next.Players[dealer].Seat

	t.logger.Debug("round started",
		"round", next.RoundNumber,
		"dealer", next.Players[dealer].ID,
		"small_blind", next.Players[sb].ID,
		"big_blind", next.Players[bb].ID)

	if IsBettingRoundComplete(t.state) {
		return t.advancePhase()
	}
	return nil
}

// PerformAction applies an action for the player whose turn it is and
// advances the round when the street closes. A rejected action leaves the
// table unchanged.
func (t *Table) PerformAction(playerID string, action Action, amount int) error {
	return t.mutate(func() error {
		if !t.state.Phase.IsBetting() {
			return ErrNotInPlay
		}

		next, err := ExecuteAction(t.state, playerID, action, amount)
		if err != nil {
			t.logger.Debug("action rejected", "player", playerID, "action", action, "amount", amount, "err", err)
			return err
		}
		t.state = NextPlayer(next)

		t.logger.Debug("action",
			"round", t.state.RoundNumber,
			"phase", t.state.Phase,
			"player", playerID,
			"action", action,
			"amount", t.state.LastAction.Amount,
			"pot", TotalPot(t.state))

		if IsBettingRoundComplete(t.state) {
			return t.advancePhase()
		}
		return nil
	})
}

// AdvancePhase moves a completed street on to the next one.
func (t *Table) AdvancePhase() error {
	return t.mutate(func() error {
		if !t.state.Phase.IsBetting() {
			return ErrNotInPlay
		}
		if !IsBettingRoundComplete(t.state) {
			return ErrBettingOpen
		}
		return t.advancePhase()
	})
}

func (t *Table) advancePhase() error {
	if t.state.countInHand() <= 1 {
		t.awardUncontested()
		return nil
	}

	t.state.Pots = CalculatePots(t.state)
	t.state = ResetBetsForNewRound(t.state)

	var burnAndDeal int
	switch t.state.Phase {
	case Preflop:
		burnAndDeal = 3
	case Flop, Turn:
		burnAndDeal = 1
	case River:
		return t.showdown()
	default:
		return fmt.Errorf("advance from %s: %w", t.state.Phase, ErrNotInPlay)
	}

	_, rest, err := deck.Deal(t.deck, 1)
	if err != nil {
		return fmt.Errorf("burning card: %w", err)
	}
	dealt, rest, err := deck.Deal(rest, burnAndDeal)
	if err != nil {
		return fmt.Errorf("dealing %s: %w", t.state.Phase+1, err)
	}
	t.deck = rest
	t.state.CommunityCards = append(t.state.CommunityCards, dealt...)
	t.state.Phase++

	t.logger.Debug("street dealt", "round", t.state.RoundNumber, "phase", t.state.Phase, "board", dealt)

	if t.state.countCanAct() < 2 {
		return t.advancePhase()
	}
	return nil
}

// Showdown settles a river whose betting is closed. Rounds reach showdown
// on their own through PerformAction; this is for callers driving streets
// with AdvancePhase.
func (t *Table) Showdown() error {
	return t.mutate(func() error {
		if !t.state.Phase.IsBetting() {
			return ErrNotInPlay
		}
		if t.state.Phase != River || !IsBettingRoundComplete(t.state) {
			return ErrBettingOpen
		}
		if t.state.countInHand() <= 1 {
			t.awardUncontested()
			return nil
		}
		return t.showdown()
	})
}

func (t *Table) awardUncontested() {
	idx := t.state.nextIndex(-1, (*Player).InHand)
	total := 0
	for i := range t.state.Players {
		total += t.state.Players[i].TotalBetThisRound
		t.state.Players[i].CurrentBet = 0
	}
	winner := &t.state.Players[idx]
	winner.Chips += total

	t.state.Winners = []Winnings{{PlayerID: winner.ID, Amount: total}}
	t.finishRound(total)
}

func (t *Table) showdown() error {
	pots := CalculatePots(t.state)

	hands := make(map[string]*evaluator.Hand)
	for _, p := range t.state.Players {
		if !p.InHand() {
			continue
		}
		cards := append(cloneCards(p.HoleCards), t.state.CommunityCards...)
		if len(cards) < 5 {
			continue
		}
		h, err := evaluator.Evaluate(cards)
		if err != nil {
			return fmt.Errorf("evaluating %s: %w", p.ID, err)
		}
		hands[p.ID] = &h
	}

	won := make(map[string]*Winnings)
	credit := func(id string, amount int, desc string) {
		w, ok := won[id]
		if !ok {
			w = &Winnings{PlayerID: id, HandDescription: desc}
			won[id] = w
		}
		w.Amount += amount
	}

	total := 0
	for _, pot := range pots {
		total += pot.Amount
		if pot.Amount == 0 {
			continue
		}

		var ids []string
		var contenders []*evaluator.Hand
		for _, id := range pot.Eligible {
			if h, ok := hands[id]; ok {
				ids = append(ids, id)
				contenders = append(contenders, h)
			}
		}
		if len(ids) == 0 {
			if len(pot.Eligible) == 0 {
				return errors.New("pot has no eligible players")
			}
			credit(pot.Eligible[0], pot.Amount, "")
			continue
		}

		winners := evaluator.DetermineWinners(contenders)
		share, remainder := pot.Amount/len(winners), pot.Amount%len(winners)
		for k, wi := range winners {
			amount := share
			if k == 0 {
				amount += remainder
			}
			credit(ids[wi], amount, evaluator.Describe(*contenders[wi]))
		}
	}

	t.state.Winners = nil
	for i := range t.state.Players {
		p := &t.state.Players[i]
		p.CurrentBet = 0
		if w, ok := won[p.ID]; ok {
			p.Chips += w.Amount
			t.state.Winners = append(t.state.Winners, *w)
		}
	}
	t.finishRound(total)
	return nil
}

// finishRound moves to Showdown and records the result.
func (t *Table) finishRound(potTotal int) {
	t.state.Pots = nil
	t.state.CurrentBet = 0
	t.state.CurrentPlayerIndex = -1
	t.state.Phase = Showdown

	result := RoundResult{
		RoundNumber:    t.state.RoundNumber,
		Winners:        append([]Winnings(nil), t.state.Winners...),
		CommunityCards: cloneCards(t.state.CommunityCards),
		PotTotal:       potTotal,
	}
	fp, err := t.state.Fingerprint()
	if err != nil {
		t.logger.Warn("fingerprint failed", "round", result.RoundNumber, "err", err)
	}
	result.Fingerprint = fp

	for _, w := range result.Winners {
		t.logger.Info("pot awarded",
			"round", result.RoundNumber,
			"player", w.PlayerID,
			"amount", w.Amount,
			"hand", w.HandDescription)
	}

	t.history = append(t.history, result)
	t.pending = append(t.pending, result)
}

// State returns a deep copy of the current game state.
func (t *Table) State() GameState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// History returns every finished round, oldest first.
func (t *Table) History() []RoundResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]RoundResult, len(t.history))
	for i, r := range t.history {
		out[i] = r.clone()
	}
	return out
}

// TotalChips counts stacks plus everything in the middle. It only changes
// when busted players leave the table with nothing.
func (t *Table) TotalChips() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	total := TotalPot(t.state)
	for _, p := range t.state.Players {
		total += p.Chips
	}
	return total
}

// RemainingDeck returns the number of undealt cards.
func (t *Table) RemainingDeck() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.deck)
}
