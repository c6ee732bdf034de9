// Package showdown classifies the outcome of a simultaneous stay/fold round.
// Holm and 3-5-7 share these rules: lone stayers and fully tied stayers play
// a ghost hand drawn from the undealt deck.
package showdown

import (
	"errors"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
)

// ErrNoHands is returned when a classification is attempted with stayed
// seats but no evaluated hands
var ErrNoHands = errors.New("no hands to classify")

// Kind is the outcome classification of a round
type Kind int

// outcome kinds
const (
	// AllFolded means nobody stayed; every seat pays the tax
	AllFolded Kind = iota
	// Won means one or more seats won outright; the remaining stayed seats
	// match the pot
	Won
	// GhostBeaten means the ghost hand was dealt and beaten
	GhostBeaten
	// GhostWon means the ghost hand was dealt and won; every contender
	// matches the pot
	GhostWon
)

// Hand is one stayed seat's evaluated hand
type Hand struct {
	PlayerID int64
	Strength int
}

// GhostFunc deals the ghost hand from the remaining undealt cards and
// returns its cards and evaluated strength. It is only invoked when the
// rules call for a ghost.
type GhostFunc func() (cards []*deck.Card, strength int, err error)

// Result is the classified outcome of a round
type Result struct {
	Kind    Kind
	Winners []int64
	Losers  []int64

	// Ghost is set if a ghost hand was dealt
	Ghost         []*deck.Card
	GhostStrength int
}

// Classify determines the outcome of a simultaneous stay/fold round.
//
//	nobody stayed            -> AllFolded
//	one stayed               -> plays the ghost
//	single best hand         -> wins; other stayed seats match
//	tie at the top, with
//	  strictly worse hands   -> tied seats split; strict losers match (no ghost)
//	full tie, nobody below   -> every tied seat plays the ghost; those who
//	                            beat it split the pot, the rest match; if
//	                            none beat it, everyone matches
//
// The ghost wins exact ties against a seat.
func Classify(stayed []Hand, ghost GhostFunc) (*Result, error) {
	if len(stayed) == 0 {
		return &Result{Kind: AllFolded}, nil
	}

	if len(stayed) == 1 {
		return classifyAgainstGhost(stayed, ghost)
	}

	best := stayed[0].Strength
	for _, h := range stayed[1:] {
		if h.Strength > best {
			best = h.Strength
		}
	}

	var top, rest []int64
	for _, h := range stayed {
		if h.Strength == best {
			top = append(top, h.PlayerID)
		} else {
			rest = append(rest, h.PlayerID)
		}
	}

	if len(top) == 1 || len(rest) > 0 {
		// a single winner, or a partial tie settled by splitting among the
		// top seats while the strict losers match
		return &Result{
			Kind:    Won,
			Winners: top,
			Losers:  rest,
		}, nil
	}

	// everyone stayed is tied at the top: the ghost breaks the tie
	tied := make([]Hand, 0, len(top))
	for _, h := range stayed {
		if h.Strength == best {
			tied = append(tied, h)
		}
	}

	return classifyAgainstGhost(tied, ghost)
}

func classifyAgainstGhost(contenders []Hand, ghost GhostFunc) (*Result, error) {
	if len(contenders) == 0 {
		return nil, ErrNoHands
	}

	cards, strength, err := ghost()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Ghost:         cards,
		GhostStrength: strength,
	}

	for _, h := range contenders {
		if h.Strength > strength {
			result.Winners = append(result.Winners, h.PlayerID)
		} else {
			result.Losers = append(result.Losers, h.PlayerID)
		}
	}

	if len(result.Winners) > 0 {
		result.Kind = GhostBeaten
	} else {
		result.Kind = GhostWon
	}

	return result, nil
}
