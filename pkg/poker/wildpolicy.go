package poker

import "github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"

// WildPolicy maps a dealt hand size to the rank that plays wild at that size
// A nil policy means no wilds.
type WildPolicy map[int]int

// ThreeFiveSevenWilds is the 3-5-7 policy: threes are wild in a 3-card hand,
// fives in a 5-card hand, and sevens in a 7-card hand.
var ThreeFiveSevenWilds = WildPolicy{3: 3, 5: 5, 7: 7}

// Apply returns a copy of the cards with IsWild set per the policy
func (p WildPolicy) Apply(cards []*deck.Card) []*deck.Card {
	wildRank, ok := p[len(cards)]

	out := make([]*deck.Card, len(cards))
	for i, c := range cards {
		cp := c.Clone()
		cp.IsWild = ok && cp.Rank == wildRank
		out[i] = cp
	}

	return out
}

// Evaluate applies the wild policy and analyzes the cards.
// It returns the best category the cards can make along with a comparable
// score: for any two hands evaluated at the same size, a greater score is a
// strictly better hand, and equal scores mean identical category and kickers.
func Evaluate(cards []*deck.Card, policy WildPolicy) (Category, int) {
	h := New(sizeFor(len(cards)), policy.Apply(cards))
	return h.GetCategory(), h.GetStrength()
}

// sizeFor maps a dealt card count to the number of cards a made hand uses
func sizeFor(n int) int {
	if n <= 3 {
		return 3
	}

	return 5
}
