package cribbage

import (
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
)

// GameState is the overall game state, safe for all players to see
type GameState struct {
	Participants []*GameStateParticipant `json:"participants"`
	Pot          int                     `json:"pot"`
	HandNumber   int                     `json:"handNumber"`
	Phase        string                  `json:"phase"`
	DealerID     int64                   `json:"dealerId"`
	TurnID       int64                   `json:"turnId"`
	Cut          *deck.Card              `json:"cut,omitempty"`
	Pile         []*deck.Card            `json:"pile"`
	Count        int                     `json:"count"`
	CribSize     int                     `json:"cribSize"`
	IsGameOver   bool                    `json:"isGameOver"`
	Result       *playable.RoundResult   `json:"result,omitempty"`
}

// GameStateParticipant is the state of an individual participant
type GameStateParticipant struct {
	PlayerID    int64 `json:"playerId"`
	Balance     int   `json:"balance"`
	Score       int   `json:"score"`
	CardsInHand int   `json:"cardsInHand"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState   `json:"gameState"`
	Balance   int          `json:"balance"`
	Hand      []*deck.Card `json:"hand"`
	PegHand   []*deck.Card `json:"pegHand"`
	YourTurn  bool         `json:"yourTurn"`
}

func (g *Game) phaseName() string {
	switch g.phase {
	case PhaseDiscard:
		return "discard"
	case PhasePegging:
		return "pegging"
	case PhaseHandEnd:
		return "handEnd"
	case PhaseGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

func (g *Game) getGameState() *GameState {
	participants := make([]*GameStateParticipant, len(g.participants))
	for i, p := range g.participants {
		cards := len(p.hand)
		if g.phase == PhasePegging {
			cards = len(p.pegHand)
		}

		participants[i] = &GameStateParticipant{
			PlayerID:    p.PlayerID,
			Balance:     p.balance,
			Score:       p.score,
			CardsInHand: cards,
		}
	}

	turnID := int64(0)
	if g.phase == PhasePegging {
		turnID = g.participants[g.turnIdx].PlayerID
	}

	return &GameState{
		Participants: participants,
		Pot:          g.pot,
		HandNumber:   g.handNumber,
		Phase:        g.phaseName(),
		DealerID:     g.participants[g.dealerIdx].PlayerID,
		TurnID:       turnID,
		Cut:          g.cut,
		Pile:         append([]*deck.Card{}, g.pile...),
		Count:        g.count,
		CribSize:     len(g.crib),
		IsGameOver:   g.done,
		Result:       g.lastResult,
	}
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	participant, ok := g.idToParticipant[playerID]
	if !ok {
		participant = &Participant{PlayerID: playerID}
	}

	response := &Response{
		GameState: g.getGameState(),
		Balance:   participant.balance,
		Hand:      append([]*deck.Card{}, participant.hand...),
		PegHand:   append([]*deck.Card{}, participant.pegHand...),
		YourTurn:  g.phase == PhasePegging && g.participants[g.turnIdx].PlayerID == playerID,
	}

	return &playable.Response{
		Key:   "game",
		Value: "cribbage",
		Data:  response,
	}, nil
}
