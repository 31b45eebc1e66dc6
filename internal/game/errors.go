package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is wrapped by every *ActionError.
	ErrInvalidAction    = errors.New("invalid action")
	ErrNotInPlay        = errors.New("no betting round in progress")
	ErrRoundInProgress  = errors.New("round already in progress")
	ErrBettingOpen      = errors.New("betting round not complete")
	ErrGameOver         = errors.New("game over")
	ErrNotEnoughPlayers = errors.New("at least two players required")
)

// ActionError reports why a single action was rejected. The state it was
// checked against is left unchanged.
type ActionError struct {
	PlayerID string
	Action   Action
	Reason   string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("invalid action %s by %q: %s", e.Action, e.PlayerID, e.Reason)
}

func (e *ActionError) Unwrap() error {
	return ErrInvalidAction
}

func rejectf(playerID string, action Action, format string, args ...any) error {
	return &ActionError{PlayerID: playerID, Action: action, Reason: fmt.Sprintf(format, args...)}
}
