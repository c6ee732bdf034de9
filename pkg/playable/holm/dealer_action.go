package holm

import "time"

// dealerAction is an action the "dealer" would take, such as progressing the game
type dealerAction int

const (
	dealerActionRevealCommunityCard dealerAction = iota
	dealerActionOpenDeclaration
	dealerActionNextRound
	dealerActionEndGame
)

type pendingDealerAction struct {
	Action       dealerAction
	ExecuteAfter time.Time
}
