package game

// ValidAction represents an action that a player can legally take
type ValidAction struct {
	Action    Action
	MinAmount int // Chips the action moves from the stack, at least
	MaxAmount int // and at most
}

// minRaiseIncrement is the smallest amount a raise must add over the table bet.
func (s *GameState) minRaiseIncrement() int {
	return max(s.MinimumBet, s.BigBlind)
}

// ValidateAction checks whether playerID may take action for amount chips.
// amount is only read for Raise, where it is the number of chips added from
// the stack, including the part that calls.
func ValidateAction(state GameState, playerID string, action Action, amount int) error {
	idx := state.PlayerIndex(playerID)
	if idx < 0 {
		return rejectf(playerID, action, "unknown player")
	}
	p := &state.Players[idx]
	if p.HasFolded {
		return rejectf(playerID, action, "player has folded")
	}
	if p.IsAllIn {
		return rejectf(playerID, action, "player is all-in")
	}
	if idx != state.CurrentPlayerIndex {
		return rejectf(playerID, action, "not this player's turn")
	}

	toCall := state.CurrentBet - p.CurrentBet
	switch action {
	case Fold:
		return nil
	case Check:
		if toCall != 0 {
			return rejectf(playerID, action, "cannot check, must call %d", toCall)
		}
		return nil
	case Call:
		if toCall <= 0 {
			return rejectf(playerID, action, "nothing to call")
		}
		return nil
	case Raise:
		if amount <= 0 {
			return rejectf(playerID, action, "raise amount must be positive")
		}
		if amount > p.Chips {
			return rejectf(playerID, action, "insufficient chips: have %d, raise needs %d", p.Chips, amount)
		}
		if amount <= toCall {
			return rejectf(playerID, action, "raise of %d does not exceed call of %d", amount, toCall)
		}
		// A short raise is only allowed when it puts the player all-in.
		if minRaise := toCall + state.minRaiseIncrement(); amount < minRaise && amount != p.Chips {
			return rejectf(playerID, action, "raise too small, minimum %d", minRaise)
		}
		return nil
	case AllIn:
		if p.Chips <= 0 {
			return rejectf(playerID, action, "no chips left")
		}
		return nil
	default:
		return rejectf(playerID, action, "unknown action")
	}
}

// ExecuteAction applies one action and returns the resulting state. On error
// the returned state must not be used; the input is never modified.
func ExecuteAction(state GameState, playerID string, action Action, amount int) (GameState, error) {
	if err := ValidateAction(state, playerID, action, amount); err != nil {
		return state, err
	}

	next := state.Clone()
	idx := next.PlayerIndex(playerID)
	p := &next.Players[idx]
	moved := 0

	switch action {
	case Fold:
		p.HasFolded = true
	case Check:
	case Call:
		moved = min(next.CurrentBet-p.CurrentBet, p.Chips)
		p.commit(moved)
	case Raise:
		moved = amount
		p.commit(moved)
		next.raiseTo(idx, p.CurrentBet)
	case AllIn:
		moved = p.Chips
		p.commit(moved)
		if p.CurrentBet > next.CurrentBet {
			next.raiseTo(idx, p.CurrentBet)
		}
	}

	p.HasActed = true
	next.LastAction = &ActionRecord{PlayerID: playerID, Action: action, Amount: moved}
	return next, nil
}

// raiseTo lifts the table bet and reopens the action for everyone but the
// raiser. Only a full raise moves the minimum raise increment.
func (s *GameState) raiseTo(raiser, bet int) {
	if inc := bet - s.CurrentBet; inc >= s.minRaiseIncrement() {
		s.MinimumBet = inc
	}
	s.CurrentBet = bet
	for i := range s.Players {
		if i != raiser {
			s.Players[i].HasActed = false
		}
	}
}

// NextPlayer moves the turn to the next player, in seat order, who has
// neither folded nor gone all-in. If there is none the state is unchanged.
func NextPlayer(state GameState) GameState {
	next := state.Clone()
	if idx := next.nextIndex(next.CurrentPlayerIndex, (*Player).CanAct); idx >= 0 {
		next.CurrentPlayerIndex = idx
	}
	return next
}

// IsBettingRoundComplete reports whether the current street needs no more
// actions.
func IsBettingRoundComplete(state GameState) bool {
	if state.countInHand() <= 1 {
		return true
	}

	var actors []*Player
	for i := range state.Players {
		if state.Players[i].CanAct() {
			actors = append(actors, &state.Players[i])
		}
	}

	switch len(actors) {
	case 0:
		return true
	case 1:
		// Nobody left to bet against; only an unmatched bet needs an answer.
		if actors[0].CurrentBet >= state.CurrentBet {
			return true
		}
	}

	// HasActed gives the big blind its option when everyone limps.
	for _, p := range actors {
		if p.CurrentBet != state.CurrentBet || !p.HasActed {
			return false
		}
	}
	return true
}

// ResetBetsForNewRound clears street bets ahead of the next street. Hand-wide
// contributions in TotalBetThisRound are kept for pot calculation.
func ResetBetsForNewRound(state GameState) GameState {
	next := state.Clone()
	for i := range next.Players {
		next.Players[i].CurrentBet = 0
		next.Players[i].HasActed = false
	}
	next.CurrentBet = 0
	next.MinimumBet = next.BigBlind
	next.CurrentPlayerIndex = next.nextIndex(next.DealerIndex, (*Player).CanAct)
	return next
}

// AvailableActions lists what the current player may do, with chip bounds.
// It is empty when nobody is to act.
func AvailableActions(state GameState) []ValidAction {
	p, ok := CurrentPlayer(state)
	if !ok {
		return nil
	}

	actions := []ValidAction{{Action: Fold}}
	toCall := state.CurrentBet - p.CurrentBet
	if toCall <= 0 {
		actions = append(actions, ValidAction{Action: Check})
	} else {
		callAmount := min(toCall, p.Chips)
		actions = append(actions, ValidAction{Action: Call, MinAmount: callAmount, MaxAmount: callAmount})
	}

	if p.Chips > toCall {
		actions = append(actions, ValidAction{
			Action:    Raise,
			MinAmount: min(toCall+state.minRaiseIncrement(), p.Chips),
			MaxAmount: p.Chips,
		})
	}

	if p.Chips > 0 {
		actions = append(actions, ValidAction{Action: AllIn, MinAmount: p.Chips, MaxAmount: p.Chips})
	}

	return actions
}

// TotalPot returns settled pots plus bets still live on the current street.
func TotalPot(state GameState) int {
	total := 0
	for _, pot := range state.Pots {
		total += pot.Amount
	}
	for _, p := range state.Players {
		total += p.CurrentBet
	}
	return total
}

// CurrentPlayer returns the player to act. It reports false outside the
// betting streets or when nobody can act.
func CurrentPlayer(state GameState) (Player, bool) {
	if !state.Phase.IsBetting() {
		return Player{}, false
	}
	idx := state.CurrentPlayerIndex
	if idx < 0 || idx >= len(state.Players) || !state.Players[idx].CanAct() {
		return Player{}, false
	}
	p := state.Players[idx]
	p.HoleCards = cloneCards(p.HoleCards)
	return p, true
}
