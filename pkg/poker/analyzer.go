package poker

import (
	"sort"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
)

// strengthBase must be greater than the highest card rank so that kicker
// comparisons can never bleed into the category comparison
const strengthBase = 15

// HandAnalyzer determines the best hand a set of cards can make.
// Wild cards are fully flexible: they may take on any rank and suit. A hand
// of size 3 only ranks high-card, pair, and three-of-a-kind.
type HandAnalyzer struct {
	size       int
	naturals   []int // natural ranks, descending
	rankCounts map[int]int
	suitRanks  map[deck.Suit][]int
	wilds      int

	category Category
	kickers  []int
	strength int
}

// New analyzes the cards and returns the result
// size is the number of cards a made hand uses (3 or 5); more cards than
// size may be provided and the best combination is used.
func New(size int, cards []*deck.Card) *HandAnalyzer {
	h := &HandAnalyzer{
		size:       size,
		rankCounts: make(map[int]int),
		suitRanks:  make(map[deck.Suit][]int),
	}

	for _, card := range cards {
		if card.IsWild {
			h.wilds++
			continue
		}

		h.naturals = append(h.naturals, card.Rank)
		h.rankCounts[card.Rank]++
		h.suitRanks[card.Suit] = append(h.suitRanks[card.Suit], card.Rank)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(h.naturals)))
	for _, ranks := range h.suitRanks {
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	}

	h.analyze()
	h.strength = calculateStrength(h.category, h.kickers)
	return h
}

// GetCategory returns the best category the cards can make
func (h *HandAnalyzer) GetCategory() Category {
	return h.category
}

// GetStrength returns the comparable score of the hand
// Different categories never compare equal, and ties within a category are
// broken by the kicker sequence in descending significance.
func (h *HandAnalyzer) GetStrength() int {
	return h.strength
}

// Kickers returns the kicker sequence used for the strength calculation
func (h *HandAnalyzer) Kickers() []int {
	return append([]int{}, h.kickers...)
}

func (h *HandAnalyzer) analyze() {
	// a hand of nothing but wilds makes the best category its size allows
	if len(h.naturals) == 0 {
		if h.size <= 3 {
			h.category = ThreeOfAKind
		} else {
			h.category = StraightFlush
		}
		h.kickers = []int{deck.Ace}
		return
	}

	if h.size <= 3 {
		h.analyzeThreeCard()
		return
	}

	if r, ok := h.bestGroup(5); ok {
		h.category = FiveOfAKind
		h.kickers = []int{r}
		return
	}

	if high := h.bestStraightFlush(); high > 0 {
		h.category = StraightFlush
		h.kickers = []int{high}
		return
	}

	if r, ok := h.bestGroup(4); ok {
		h.category = FourOfAKind
		h.kickers = []int{r, h.quadsKicker(r)}
		return
	}

	if trips, pair, ok := h.fullHouse(); ok {
		h.category = FullHouse
		h.kickers = []int{trips, pair}
		return
	}

	if kickers := h.bestFlush(); kickers != nil {
		h.category = Flush
		h.kickers = kickers
		return
	}

	if high := h.bestStraight(h.distinctRanks()); high > 0 {
		h.category = Straight
		h.kickers = []int{high}
		return
	}

	if r, ok := h.bestGroup(3); ok {
		h.category = ThreeOfAKind
		h.kickers = append([]int{r}, h.highCards(2, r)...)
		return
	}

	if h.wilds == 0 && len(h.naturalPairs()) >= 2 {
		pairs := h.naturalPairs()
		h.category = TwoPair
		h.kickers = []int{pairs[0], pairs[1], h.firstKickerExcept(pairs[0], pairs[1])}
		return
	}

	if r, ok := h.bestGroup(2); ok {
		h.category = OnePair
		h.kickers = append([]int{r}, h.highCards(h.size-2, r)...)
		return
	}

	h.category = HighCard
	h.kickers = h.highCards(h.size, 0)
}

func (h *HandAnalyzer) analyzeThreeCard() {
	if r, ok := h.bestGroup(3); ok {
		h.category = ThreeOfAKind
		h.kickers = []int{r}
		return
	}

	if r, ok := h.bestGroup(2); ok {
		h.category = OnePair
		h.kickers = append([]int{r}, h.highCards(1, r)...)
		return
	}

	h.category = HighCard
	h.kickers = h.highCards(3, 0)
}

// bestGroup returns the highest rank that can form a group of want cards,
// counting wilds toward the group
func (h *HandAnalyzer) bestGroup(want int) (int, bool) {
	best := 0
	for rank, count := range h.rankCounts {
		if count+h.wilds >= want && rank > best {
			best = rank
		}
	}

	if best == 0 {
		return 0, false
	}

	return best, true
}

func (h *HandAnalyzer) quadsKicker(quadRank int) int {
	// a spare wild always plays as an ace kicker
	if h.rankCounts[quadRank]+h.wilds > 4 {
		return deck.Ace
	}

	for _, r := range h.naturals {
		if r != quadRank {
			return r
		}
	}

	return 0
}

func (h *HandAnalyzer) fullHouse() (int, int, bool) {
	pairs := h.naturalPairs()

	switch h.wilds {
	case 0:
		var trips []int
		for rank, count := range h.rankCounts {
			if count >= 3 {
				trips = append(trips, rank)
			}
		}
		if len(trips) == 0 {
			return 0, 0, false
		}
		sort.Sort(sort.Reverse(sort.IntSlice(trips)))

		pair := 0
		for _, p := range pairs {
			if p != trips[0] && p > pair {
				pair = p
			}
		}
		if len(trips) > 1 && trips[1] > pair {
			pair = trips[1]
		}
		if pair == 0 {
			return 0, 0, false
		}

		return trips[0], pair, true
	case 1:
		// the wild completes the higher of two natural pairs
		if len(pairs) >= 2 {
			return pairs[0], pairs[1], true
		}
	}

	// with two or more wilds there is always a better hand than a full house
	return 0, 0, false
}

// naturalPairs returns the ranks with two or more natural cards, descending
// Ranks with 3+ cards count too; callers check for trips first.
func (h *HandAnalyzer) naturalPairs() []int {
	var pairs []int
	for rank, count := range h.rankCounts {
		if count >= 2 {
			pairs = append(pairs, rank)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(pairs)))
	return pairs
}

func (h *HandAnalyzer) bestFlush() []int {
	var best []int
	for _, ranks := range h.suitRanks {
		if len(ranks)+h.wilds < h.size {
			continue
		}

		// each wild plays as the highest rank the suit is missing, so the
		// kickers stay a legal set of distinct suited ranks
		used := make(map[int]bool, len(ranks))
		for _, rank := range ranks {
			used[rank] = true
		}

		kickers := make([]int, 0, len(ranks)+h.wilds)
		wilds := h.wilds
		for rank := deck.Ace; rank > deck.LowAce && wilds > 0; rank-- {
			if !used[rank] {
				kickers = append(kickers, rank)
				wilds--
			}
		}

		kickers = append(kickers, ranks...)
		sort.Sort(sort.Reverse(sort.IntSlice(kickers)))
		kickers = kickers[0:h.size]

		if best == nil || rankListGreater(kickers, best) {
			best = kickers
		}
	}

	return best
}

func (h *HandAnalyzer) distinctRanks() map[int]bool {
	distinct := make(map[int]bool)
	for rank := range h.rankCounts {
		distinct[rank] = true
	}

	return distinct
}

// bestStraight returns the highest straight the ranks can make with wilds
// filling the gaps, or 0 if none. An ace plays high or low.
func (h *HandAnalyzer) bestStraight(ranks map[int]bool) int {
	if ranks[deck.Ace] {
		ranks[deck.LowAce] = true
	}

	for high := deck.Ace; high >= h.size; high-- {
		missing := 0
		for v := high - h.size + 1; v <= high; v++ {
			if !ranks[v] {
				missing++
			}
		}

		if missing <= h.wilds {
			return high
		}
	}

	return 0
}

func (h *HandAnalyzer) bestStraightFlush() int {
	best := 0
	for _, ranks := range h.suitRanks {
		set := make(map[int]bool)
		for _, r := range ranks {
			set[r] = true
		}

		if high := h.bestStraight(set); high > best {
			best = high
		}
	}

	return best
}

// highCards returns up to n natural ranks, descending, skipping every card
// of the excluded rank
func (h *HandAnalyzer) highCards(n, except int) []int {
	out := make([]int, 0, n)
	for _, r := range h.naturals {
		if r == except {
			continue
		}

		out = append(out, r)
		if len(out) == n {
			break
		}
	}

	return out
}

func (h *HandAnalyzer) firstKickerExcept(a, b int) int {
	for _, r := range h.naturals {
		if r != a && r != b {
			return r
		}
	}

	return 0
}

func rankListGreater(a, b []int) bool {
	for i := range a {
		if i >= len(b) {
			return true
		}
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}

	return false
}

// calculateStrength folds the category and kickers into a single integer
// so that hands compare with plain integer comparison
func calculateStrength(category Category, kickers []int) int {
	strength := int(category)
	for i := 0; i < 5; i++ {
		k := 0
		if i < len(kickers) {
			k = kickers[i]
		}

		strength = strength*strengthBase + k
	}

	return strength
}
