package cribbage

import (
	"errors"
	"fmt"
)

// ErrCardNotInHand is returned when a player plays a card they do not hold
var ErrCardNotInHand = errors.New("card is not in your hand")

// ErrCardTooBig is returned when a card would push the count past 31
var ErrCardTooBig = errors.New("card would exceed 31")

// ErrWrongPhase is returned for an action outside its phase
var ErrWrongPhase = errors.New("action not allowed in this phase")

// ErrPlayerNotFound is returned when a player is not found in the game
var ErrPlayerNotFound = errors.New("player not found")

// ErrGameIsOver is returned when an action is attempted on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrRoundNotReady is returned when settlement is attempted mid-hand
var ErrRoundNotReady = errors.New("round is not ready to settle")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Want int
	Got  int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("cribbage requires exactly %d players, got %d", p.Want, p.Got)
}
