package table

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// well-known user errors
const (
	// ErrNotYourTurn is returned when a seat acts out of turn
	ErrNotYourTurn = UserError("it is not your turn")

	// ErrDecisionLocked is returned when a seat tries to change a locked decision
	ErrDecisionLocked = UserError("your decision is locked for this round")

	// ErrRoundNotBetting is returned when a decision arrives outside the betting window
	ErrRoundNotBetting = UserError("the round is not accepting decisions")
)
