package table

import "fmt"

// Pot math. Everything here is pure integer arithmetic: no floats touch
// chip amounts anywhere in the engine.

// ErrInvalidAmount is returned for non-positive chip amounts
var ErrInvalidAmount = UserError("chip amount must be positive")

// SplitPot divides a pot evenly among n winners using floor division.
// The remainder is dropped from circulation rather than awarded unevenly.
func SplitPot(pot, n int) (share int, remainder int, err error) {
	if n <= 0 {
		return 0, 0, fmt.Errorf("cannot split a pot among %d winners", n)
	}

	if pot < 0 {
		return 0, 0, fmt.Errorf("cannot split a negative pot (%d)", pot)
	}

	return pot / n, pot % n, nil
}

// MatchAmount is what a losing seat owes into the next pot: the full pot,
// capped at the table's pot max when enabled.
func MatchAmount(pot, potMax int, potMaxEnabled bool) int {
	if potMaxEnabled && pot > potMax {
		return potMax
	}

	return pot
}

// AnteTotal is the pot contribution from n anteing seats
func AnteTotal(ante, n int) int {
	return ante * n
}
