package threefiveseven

import "time"

// dealerAction is an action the "dealer" would take, such as progressing the game
type dealerAction int

const (
	dealerActionNextRound dealerAction = iota
	dealerActionEndGame
)

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}
