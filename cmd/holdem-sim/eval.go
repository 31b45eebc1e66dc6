package main

import (
	"fmt"
	"os"

	"github.com/lox/holdem-rules/internal/deck"
	"github.com/lox/holdem-rules/internal/evaluator"
)

// EvalCmd evaluates hands of five to seven cards
type EvalCmd struct {
	Hands []string `arg:"" help:"Hands to evaluate, e.g. 'AsKs QsJsTs'" required:"true"`
	Board string   `short:"b" help:"Community cards shared by every hand"`
}

func (c *EvalCmd) Run() error {
	board, err := deck.ParseCards(c.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	hands, err := evaluateHands(c.Hands, board)
	if err != nil {
		return err
	}

	for i, h := range hands {
		fmt.Fprintf(os.Stdout, "%s  %s  %s\n",
			headerStyle.Render(c.Hands[i]), handStyle.Render(evaluator.Describe(h)), renderCards(h.Cards[:]))
	}

	if len(hands) > 1 {
		ptrs := make([]*evaluator.Hand, len(hands))
		for i := range hands {
			ptrs[i] = &hands[i]
		}
		winners := evaluator.DetermineWinners(ptrs)
		for _, w := range winners {
			fmt.Fprintf(os.Stdout, "%s %s\n", winStyle.Render("winner:"), c.Hands[w])
		}
		if len(hands) == 2 {
			fmt.Fprintln(os.Stdout, evaluator.Explain(hands[0], hands[1]))
		}
	}
	return nil
}

func evaluateHands(inputs []string, board []deck.Card) ([]evaluator.Hand, error) {
	hands := make([]evaluator.Hand, 0, len(inputs))
	for i, in := range inputs {
		cards, err := deck.ParseCards(in)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		h, err := evaluator.Evaluate(append(cards, board...))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands = append(hands, h)
	}
	return hands, nil
}
