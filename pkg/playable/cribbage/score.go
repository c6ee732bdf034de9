package cribbage

import "github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"

// Score is the breakdown of a counted cribbage hand
type Score struct {
	Fifteens int `json:"fifteens"`
	Pairs    int `json:"pairs"`
	Runs     int `json:"runs"`
	Flush    int `json:"flush"`
	Nobs     int `json:"nobs"`
	Total    int `json:"total"`
}

// cardValue is the counting value of a card: ace is 1, face cards are 10
func cardValue(c *deck.Card) int {
	v := runOrder(c)
	if v > 10 {
		return 10
	}

	return v
}

// runOrder is the card's position for runs: A=1 .. K=13
func runOrder(c *deck.Card) int {
	if c.Rank == deck.Ace {
		return 1
	}

	return c.Rank
}

// ScoreHand counts a four-card hand (or crib) against the cut card.
// The crib only scores a flush when all five cards share a suit.
func ScoreHand(hand []*deck.Card, cut *deck.Card, isCrib bool) Score {
	all := append(append([]*deck.Card{}, hand...), cut)

	score := Score{
		Fifteens: scoreFifteens(all),
		Pairs:    scorePairs(all),
		Runs:     scoreRuns(all),
		Flush:    scoreFlush(hand, cut, isCrib),
		Nobs:     scoreNobs(hand, cut),
	}
	score.Total = score.Fifteens + score.Pairs + score.Runs + score.Flush + score.Nobs

	return score
}

// scoreFifteens awards two points per distinct subset of cards whose
// counting values sum to fifteen
func scoreFifteens(cards []*deck.Card) int {
	values := make([]int, len(cards))
	for i, c := range cards {
		values[i] = cardValue(c)
	}

	count := 0
	for mask := 1; mask < 1<<len(values); mask++ {
		sum := 0
		for i, v := range values {
			if mask&(1<<i) != 0 {
				sum += v
			}
		}

		if sum == 15 {
			count++
		}
	}

	return count * 2
}

// scorePairs awards two points per pair of same-rank cards
func scorePairs(cards []*deck.Card) int {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[c.Rank]++
	}

	points := 0
	for _, n := range counts {
		points += n * (n - 1) // 2 * C(n, 2)
	}

	return points
}

// scoreRuns awards length x multiplicity for the single longest run of
// three or more consecutive ranks. Duplicate ranks multiply the run;
// shorter runs inside a longer one never count.
func scoreRuns(cards []*deck.Card) int {
	counts := make(map[int]int)
	for _, c := range cards {
		counts[runOrder(c)]++
	}

	bestLen, bestMult := 0, 0
	for start := 1; start <= 13; start++ {
		if counts[start] == 0 || counts[start-1] > 0 {
			continue
		}

		length := 0
		mult := 1
		for r := start; counts[r] > 0; r++ {
			length++
			mult *= counts[r]
		}

		if length >= 3 && length > bestLen {
			bestLen, bestMult = length, mult
		}
	}

	return bestLen * bestMult
}

func scoreFlush(hand []*deck.Card, cut *deck.Card, isCrib bool) int {
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return 0
		}
	}

	if cut.Suit == suit {
		return len(hand) + 1
	}

	if isCrib {
		return 0
	}

	return len(hand)
}

// scoreNobs awards a point for holding the jack of the cut suit
func scoreNobs(hand []*deck.Card, cut *deck.Card) int {
	for _, c := range hand {
		if c.Rank == deck.Jack && c.Suit == cut.Suit {
			return 1
		}
	}

	return 0
}
