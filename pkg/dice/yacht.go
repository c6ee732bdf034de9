package dice

// Category is a yacht scoring category
type Category int

// scoring categories
const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	FullHouse
	FourOfAKind
	LittleStraight
	BigStraight
	Choice
	Yacht
)

// Categories lists every category in score-sheet order
var Categories = []Category{
	Ones, Twos, Threes, Fours, Fives, Sixes,
	FullHouse, FourOfAKind, LittleStraight, BigStraight, Choice, Yacht,
}

// String returns the category name
func (c Category) String() string {
	switch c {
	case Ones:
		return "Ones"
	case Twos:
		return "Twos"
	case Threes:
		return "Threes"
	case Fours:
		return "Fours"
	case Fives:
		return "Fives"
	case Sixes:
		return "Sixes"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case LittleStraight:
		return "Little Straight"
	case BigStraight:
		return "Big Straight"
	case Choice:
		return "Choice"
	case Yacht:
		return "Yacht"
	}

	return "Unknown"
}

// Score returns the score the dice are worth in the category
// A roll that does not satisfy the category scores zero.
func Score(c Category, dice []int) int {
	counts := make(map[int]int)
	sum := 0
	for _, d := range dice {
		counts[d]++
		sum += d
	}

	switch c {
	case Ones, Twos, Threes, Fours, Fives, Sixes:
		face := int(c) + 1
		return counts[face] * face
	case FullHouse:
		hasThree, hasTwo := false, false
		for _, n := range counts {
			switch n {
			case 3:
				hasThree = true
			case 2:
				hasTwo = true
			}
		}
		if hasThree && hasTwo {
			return sum
		}
		return 0
	case FourOfAKind:
		for face, n := range counts {
			if n >= 4 {
				return face * 4
			}
		}
		return 0
	case LittleStraight:
		if isStraight(counts, 1, 5) {
			return 30
		}
		return 0
	case BigStraight:
		if isStraight(counts, 2, 6) {
			return 30
		}
		return 0
	case Choice:
		return sum
	case Yacht:
		for _, n := range counts {
			if n == len(dice) {
				return 50
			}
		}
		return 0
	}

	return 0
}

func isStraight(counts map[int]int, lo, hi int) bool {
	for face := lo; face <= hi; face++ {
		if counts[face] != 1 {
			return false
		}
	}

	return true
}
