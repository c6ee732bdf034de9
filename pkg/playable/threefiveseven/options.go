package threefiveseven

import "time"

// Options are options for creating a new 3-5-7 game
type Options struct {
	Ante int

	// LegValue is what each seat pays a leg winner
	LegValue int

	// LegsToWin ends the game when a seat collects this many legs
	LegsToWin int

	// PotMax caps what a losing seat matches into the next pot
	PotMax        int
	PotMaxEnabled bool

	// Tax is charged to every seat when nobody stays
	Tax        int
	TaxEnabled bool

	// DecisionTimeout is how long seats have to stay or fold
	DecisionTimeout time.Duration
}

// DefaultOptions returns the default options for a 3-5-7 game
func DefaultOptions() Options {
	return Options{
		Ante:            25,
		LegValue:        50,
		LegsToWin:       3,
		PotMax:          1000,
		PotMaxEnabled:   true,
		Tax:             25,
		TaxEnabled:      true,
		DecisionTimeout: time.Second * 30,
	}
}
