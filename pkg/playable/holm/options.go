package holm

import "time"

// Options are options for creating a new Holm game
type Options struct {
	Ante int

	// PotMax caps what a losing seat matches into the next pot
	PotMax        int
	PotMaxEnabled bool

	// Tax is charged to every seat when nobody stays
	Tax        int
	TaxEnabled bool

	// CommunityCount is how many community cards are dealt
	CommunityCount int

	// GhostCardCount is how many hole cards Chucky is dealt
	GhostCardCount int

	// DecisionTimeout is how long seats have to stay or fold
	DecisionTimeout time.Duration
}

// DefaultOptions returns the default options for a Holm game
func DefaultOptions() Options {
	return Options{
		Ante:            25,
		PotMax:          1000,
		PotMaxEnabled:   true,
		Tax:             25,
		TaxEnabled:      true,
		CommunityCount:  3,
		GhostCardCount:  4,
		DecisionTimeout: time.Second * 30,
	}
}
