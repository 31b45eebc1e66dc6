package evaluator

import "fmt"

// Describe renders a hand for display, e.g. "Full House, Aces over Kings".
// The text carries no gameplay meaning.
func Describe(h Hand) string {
	tb := h.Tiebreak
	if len(tb) == 0 {
		return h.Category.String()
	}
	switch h.Category {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("Straight Flush, %s high", tb[0].Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", tb[0].Plural())
	case FullHouse:
		if len(tb) < 2 {
			break
		}
		return fmt.Sprintf("Full House, %s over %s", tb[0].Plural(), tb[1].Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", tb[0].Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", tb[0].Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", tb[0].Plural())
	case TwoPair:
		if len(tb) < 2 {
			break
		}
		return fmt.Sprintf("Two Pair, %s and %s", tb[0].Plural(), tb[1].Plural())
	case OnePair:
		return fmt.Sprintf("Pair of %s", tb[0].Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", tb[0].Name())
	}
	return h.Category.String()
}

// Explain describes why a beats b, or that they tie.
func Explain(a, b Hand) string {
	switch Compare(a, b) {
	case 0:
		return "hands tie"
	case -1:
		a, b = b, a
	}
	if a.Category != b.Category {
		return fmt.Sprintf("%s beats %s", Describe(a), Describe(b))
	}
	for i := range a.Tiebreak {
		if i < len(b.Tiebreak) && a.Tiebreak[i] != b.Tiebreak[i] {
			return fmt.Sprintf("%s beats %s (%s over %s)",
				Describe(a), Describe(b), a.Tiebreak[i].Name(), b.Tiebreak[i].Name())
		}
	}
	return fmt.Sprintf("%s beats %s", Describe(a), Describe(b))
}
