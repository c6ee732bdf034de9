package holm

import (
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
)

// GameState is the overall game state, safe for all players to see
type GameState struct {
	Participants []*GameStateParticipant `json:"participants"`
	Community    []*deck.Card            `json:"community"`
	Pot          int                     `json:"pot"`
	Round        int                     `json:"round"`
	Phase        string                  `json:"phase"`
	Ante         int                     `json:"ante"`
	Deadline     *time.Time              `json:"deadline,omitempty"`
	IsGameOver   bool                    `json:"isGameOver"`
	// Decisions is only populated once everyone has decided
	Decisions map[int64]bool `json:"decisions,omitempty"`
	// Ghost is Chucky's hand, shown only if it was dealt
	Ghost []*deck.Card `json:"ghost,omitempty"`
	// Result is only populated after settlement
	Result *playable.RoundResult `json:"result,omitempty"`
}

// GameStateParticipant is the state of an individual participant
type GameStateParticipant struct {
	PlayerID    int64 `json:"playerId"`
	Balance     int   `json:"balance"`
	Decided     bool  `json:"decided"`
	CardsInHand int   `json:"cardsInHand"`
	// Hand is only shown after settlement for players who stayed
	Hand []*deck.Card `json:"hand,omitempty"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState   `json:"gameState"`
	Balance   int          `json:"balance"`
	Hand      []*deck.Card `json:"hand"`
	CanDecide bool         `json:"canDecide"`
}

func (g *Game) phaseName() string {
	switch g.phase {
	case PhaseDealing:
		return "dealing"
	case PhaseReveal:
		return "reveal"
	case PhaseDeclaration:
		return "declaration"
	case PhaseShowdown:
		return "showdown"
	case PhaseRoundEnd:
		return "roundEnd"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

func (g *Game) getGameState() *GameState {
	allDecided := len(g.pendingDecisions) == 0
	settled := g.lastResult != nil

	participants := make([]*GameStateParticipant, len(g.participants))
	for i, p := range g.participants {
		gsp := &GameStateParticipant{
			PlayerID:    p.PlayerID,
			Balance:     p.balance,
			Decided:     !g.pendingDecisions[p.PlayerID],
			CardsInHand: len(p.hand),
		}

		if settled && g.decisions[p.PlayerID] {
			gsp.Hand = p.Hand()
		}

		participants[i] = gsp
	}

	state := &GameState{
		Participants: participants,
		Community:    append([]*deck.Card{}, g.community[:g.revealed]...),
		Pot:          g.pot,
		Round:        g.roundNumber,
		Phase:        g.phaseName(),
		Ante:         g.options.Ante,
		IsGameOver:   g.phase == PhaseGameOver,
		Ghost:        g.lastGhost,
		Result:       g.lastResult,
	}

	if g.phase == PhaseDeclaration && !g.deadline.IsZero() {
		deadline := g.deadline
		state.Deadline = &deadline
	}

	if allDecided && len(g.decisions) > 0 {
		state.Decisions = g.decisions
	}

	return state
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	participant, ok := g.idToParticipant[playerID]
	if !ok {
		// viewer who is not playing
		participant = NewParticipant(playerID)
	}

	response := &Response{
		GameState: g.getGameState(),
		Balance:   participant.balance,
		Hand:      participant.Hand(),
		CanDecide: g.phase == PhaseDeclaration && g.pendingDecisions[playerID],
	}

	return &playable.Response{
		Key:   "game",
		Value: "holm",
		Data:  response,
	}, nil
}
