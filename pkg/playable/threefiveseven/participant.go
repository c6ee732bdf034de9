package threefiveseven

import "github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"

// Participant is an individual seat in the 3-5-7 game
type Participant struct {
	PlayerID int64
	balance  int
	legs     int
	hand     []*deck.Card
}

// NewParticipant returns a new participant
func NewParticipant(playerID int64) *Participant {
	return &Participant{
		PlayerID: playerID,
		hand:     make([]*deck.Card, 0, 7),
	}
}

// AddCard adds a card to the participant's hand
func (p *Participant) AddCard(card *deck.Card) {
	p.hand = append(p.hand, card)
}

// Hand returns a shallow copy of the participant's hand
func (p *Participant) Hand() []*deck.Card {
	return append([]*deck.Card{}, p.hand...)
}

// ClearHand removes all cards from the participant's hand
func (p *Participant) ClearHand() {
	p.hand = make([]*deck.Card, 0, 7)
}

// Legs returns how many legs the participant has won
func (p *Participant) Legs() int {
	return p.legs
}
