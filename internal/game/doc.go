// Package game implements the rules of no-limit Texas Hold'em.
//
// The betting engine is a set of pure functions over GameState values:
// ValidateAction, ExecuteAction, NextPlayer, IsBettingRoundComplete,
// CalculatePots and ResetBetsForNewRound each take a state and return a new
// one that shares no memory with its input.
//
// Table owns the authoritative state for a session and drives a round
// through Preflop, Flop, Turn, River and Showdown:
//
//	t, err := game.NewTable([]game.Seat{
//		{ID: "alice", Chips: 1000},
//		{ID: "bob", Chips: 1000},
//	}, 5, 10, game.WithRNG(randutil.New(42)))
//	if err != nil {
//		return err
//	}
//	if err := t.StartNewRound(); err != nil {
//		return err
//	}
//	state := t.State()
//	p, _ := game.CurrentPlayer(state)
//	err = t.PerformAction(p.ID, game.Call, 0)
//
// Amounts passed with Raise are the chips the player adds from their stack
// in that action, including the part that calls.
package game
