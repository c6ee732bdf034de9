package dice

// OfAKind is a ranked of-a-kind dice hand
// Five-of-a-kind beats four, four beats three, and so on. Hands with the
// same count are broken by face value.
type OfAKind struct {
	Count int `json:"count"`
	Face  int `json:"face"`
}

// Rank returns an integer so that any two of-a-kind hands compare correctly
func (o OfAKind) Rank() int {
	return o.Count*(Faces+1) + o.Face
}

// Beats returns true if o strictly outranks other
func (o OfAKind) Beats(other OfAKind) bool {
	return o.Rank() > other.Rank()
}

// EvaluateOfAKind ranks the dice, treating every die showing wildFace as wild.
// Pass 0 for wildFace to disable wilds. A hand made up entirely of wild dice
// ranks as the best possible outcome for that many dice.
func EvaluateOfAKind(dice []int, wildFace int) OfAKind {
	counts := make(map[int]int)
	wilds := 0
	for _, d := range dice {
		if wildFace > 0 && d == wildFace {
			wilds++
			continue
		}

		counts[d]++
	}

	// all wild: as good as it gets
	if wilds == len(dice) {
		return OfAKind{Count: len(dice), Face: Faces}
	}

	best := OfAKind{}
	for face := Faces; face >= 1; face-- {
		if face == wildFace {
			continue
		}

		n, ok := counts[face]
		if !ok {
			continue
		}

		candidate := OfAKind{Count: n + wilds, Face: face}
		if candidate.Beats(best) {
			best = candidate
		}
	}

	return best
}
