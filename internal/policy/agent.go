package policy

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/holdem-rules/internal/game"
)

// Decision is what an agent wants to do on its turn
type Decision struct {
	Action    game.Action
	Amount    int // Only read for Raise
	Reasoning string
}

// Agent picks an action for player from the legal options. Agents only see
// copies of the table state and act through the table's public API.
type Agent interface {
	Decide(state game.GameState, player game.Player, valid []game.ValidAction) Decision
}

// Policy names accepted by New.
const (
	CallingStationPolicy = "calling-station"
	RandomPolicy         = "random"
)

// Names lists every policy New understands.
var Names = []string{CallingStationPolicy, RandomPolicy}

// New builds the agent registered under name. rng is only used by agents
// that need randomness.
func New(name string, rng *rand.Rand) (Agent, error) {
	switch name {
	case CallingStationPolicy:
		return CallingStation{}, nil
	case RandomPolicy:
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want one of %v)", name, Names)
	}
}

// CallingStation checks when it can and calls anything else.
type CallingStation struct{}

func (CallingStation) Decide(_ game.GameState, _ game.Player, valid []game.ValidAction) Decision {
	for _, preferred := range []game.Action{game.Check, game.Call} {
		if i := slices.IndexFunc(valid, func(va game.ValidAction) bool { return va.Action == preferred }); i >= 0 {
			return Decision{Action: preferred, Amount: valid[i].MinAmount, Reasoning: "calling station " + preferred.String()}
		}
	}
	return Decision{Action: game.Fold, Reasoning: "calling station forced fold"}
}

// Random picks uniformly among legal actions, and a uniform raise size.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random agent drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Decide(_ game.GameState, _ game.Player, valid []game.ValidAction) Decision {
	if len(valid) == 0 {
		return Decision{Action: game.Fold, Reasoning: "random no valid actions"}
	}

	va := valid[r.rng.IntN(len(valid))]
	amount := va.MinAmount
	if va.Action == game.Raise && va.MaxAmount > va.MinAmount {
		amount += r.rng.IntN(va.MaxAmount - va.MinAmount + 1)
	}
	return Decision{Action: va.Action, Amount: amount, Reasoning: "random " + va.Action.String()}
}
