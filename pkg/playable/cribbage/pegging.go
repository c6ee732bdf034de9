package cribbage

import "github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"

// maxCount is the pegging count ceiling
const maxCount = 31

// PegPoints scores playing card onto the current count. played is the pile
// since the last count reset, oldest first; lastCard is true when this is
// the final card of the pegging phase or of a count sequence ("go").
// 31 scores its two points in place of the last-card point.
func PegPoints(played []*deck.Card, card *deck.Card, runningCount int, lastCard bool) int {
	points := 0
	count := runningCount + cardValue(card)

	if count == 15 {
		points += 2
	}

	if count == maxCount {
		points += 2
	}

	// pairs: consecutive same-rank cards ending with the new card
	same := 1
	for i := len(played) - 1; i >= 0 && played[i].Rank == card.Rank; i-- {
		same++
	}
	points += same * (same - 1)

	// runs: the longest suffix of the pile, including the new card, whose
	// ranks form a consecutive set in any order
	pile := append(append([]*deck.Card{}, played...), card)
	for k := len(pile); k >= 3; k-- {
		if isPegRun(pile[len(pile)-k:]) {
			points += k
			break
		}
	}

	if lastCard && count != maxCount {
		points++
	}

	return points
}

// CanPlay returns true if any card in the hand fits under the count ceiling
func CanPlay(hand []*deck.Card, runningCount int) bool {
	for _, c := range hand {
		if runningCount+cardValue(c) <= maxCount {
			return true
		}
	}

	return false
}

func isPegRun(cards []*deck.Card) bool {
	lo, hi := 14, 0
	seen := make(map[int]bool, len(cards))
	for _, c := range cards {
		r := runOrder(c)
		if seen[r] {
			return false
		}

		seen[r] = true
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}

	return hi-lo+1 == len(cards)
}
