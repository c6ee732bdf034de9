package cribbage

import (
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/sirupsen/logrus"
)

const (
	// winningScore ends the game the moment a seat reaches it
	winningScore = 121

	// skunkLine doubles the payout if the loser never reaches it
	skunkLine = 91

	// doubleSkunkLine triples the payout if the loser never reaches it
	doubleSkunkLine = 61

	dealSize    = 6
	discardSize = 2
)

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseDiscard is when both players throw two cards to the crib
	PhaseDiscard Phase = iota
	// PhasePegging is the play phase
	PhasePegging
	// PhaseHandEnd is after counting, before the next deal
	PhaseHandEnd
	// PhaseGameOver is when a player has reached the winning score
	PhaseGameOver
)

// Options are options for creating a new cribbage game
type Options struct {
	Ante int

	// LegValue is the base payout; skunks multiply it
	LegValue int
}

// DefaultOptions returns the default options for a cribbage game
func DefaultOptions() Options {
	return Options{
		Ante:     25,
		LegValue: 50,
	}
}

// Participant is one of the two cribbage players
type Participant struct {
	PlayerID int64
	balance  int
	score    int
	hand     []*deck.Card
	pegHand  []*deck.Card
}

// Score returns the participant's peg score
func (p *Participant) Score() int {
	return p.score
}

// Game is a two-player game of cribbage
type Game struct {
	options         Options
	deck            *deck.Deck
	participants    []*Participant
	idToParticipant map[int64]*Participant

	pot        int
	phase      Phase
	handNumber int
	dealerIdx  int

	crib []*deck.Card
	cut  *deck.Card

	// pegging state
	turnIdx     int
	pile        []*deck.Card // since the last count reset
	count       int
	lastPlayIdx int // who played the most recent pegging card

	winnerIdx  int // -1 until someone reaches the winning score
	lastResult *playable.RoundResult
	done       bool

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	nextDealAfter time.Time
}

// NewGame returns a new cribbage game
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) != 2 {
		return nil, PlayerCountError{Want: 2, Got: len(playerIDs)}
	}

	participants := make([]*Participant, len(playerIDs))
	idToParticipant := make(map[int64]*Participant)
	for i, pid := range playerIDs {
		p := &Participant{PlayerID: pid}
		participants[i] = p
		idToParticipant[pid] = p
	}

	g := &Game{
		options:         opts,
		participants:    participants,
		idToParticipant: idToParticipant,
		winnerIdx:       -1,
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
	}

	for _, p := range participants {
		g.pot += opts.Ante
		p.balance -= opts.Ante
	}

	g.sendLogMessages(playable.SimpleLogMessage(0, "New game of cribbage started with a pot of ${%d}", g.pot))
	if err := g.deal(); err != nil {
		return nil, err
	}

	return g, nil
}

// Name returns "cribbage"
func (g *Game) Name() string {
	return "cribbage"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Delay determines how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick moves the game into the next deal once the pause after a counted
// hand has elapsed
func (g *Game) Tick() (bool, error) {
	if g.done {
		return false, nil
	}

	if g.phase == PhaseHandEnd && g.lastResult != nil && time.Now().After(g.nextDealAfter) {
		if g.lastResult.GameOver {
			g.phase = PhaseGameOver
			g.done = true
			return true, nil
		}

		if err := g.nextHand(); err != nil {
			g.logger.WithError(err).Error("could not deal the next hand")
			return false, err
		}

		return true, nil
	}

	return false, nil
}

func (g *Game) deal() error {
	g.deck = deck.New()
	g.deck.Shuffle(0)
	g.handNumber++

	for _, p := range g.participants {
		hand, err := g.deck.Deal(dealSize)
		if err != nil {
			return err
		}

		p.hand = hand
		p.pegHand = nil
	}

	g.crib = nil
	g.cut = nil
	g.pile = nil
	g.count = 0
	g.phase = PhaseDiscard

	dealer := g.participants[g.dealerIdx]
	g.sendLogMessages(playable.SimpleLogMessage(dealer.PlayerID, "Hand %d: {} deals; throw two cards to the crib", g.handNumber))

	return nil
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if g.phase == PhaseGameOver || g.done {
		return nil, false, ErrGameIsOver
	}

	if _, ok := g.idToParticipant[playerID]; !ok {
		return nil, false, ErrPlayerNotFound
	}

	switch message.Action {
	case "discard":
		if err := g.discardToCrib(playerID, message.Cards); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "play":
		if len(message.Cards) != 1 {
			return nil, false, fmt.Errorf("expected one card, got %d", len(message.Cards))
		}

		if err := g.playPeggingCard(playerID, message.Cards[0]); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// discardToCrib throws two cards from the player's hand into the crib
func (g *Game) discardToCrib(playerID int64, cards []*deck.Card) error {
	if g.phase != PhaseDiscard {
		return ErrWrongPhase
	}

	p := g.idToParticipant[playerID]
	if len(p.hand) != dealSize {
		return ErrWrongPhase // already discarded
	}

	if len(cards) != discardSize {
		return fmt.Errorf("expected %d cards, got %d", discardSize, len(cards))
	}

	hand := deck.Hand(p.hand)
	for _, card := range cards {
		if !hand.Discard(card) {
			return ErrCardNotInHand
		}
	}

	p.hand = hand
	g.crib = append(g.crib, cards...)
	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} threw to the crib"))

	if len(g.crib) == discardSize*len(g.participants) {
		g.cutDeck()
	}

	return nil
}

// cutDeck turns the starter card and opens pegging. His heels: a jack cut
// scores two for the dealer.
func (g *Game) cutDeck() {
	cut, err := g.deck.Draw()
	if err != nil {
		// a 52-card deck always has a starter left after two 6-card hands
		panic(err)
	}

	g.cut = cut
	g.sendLogMessages(&playable.LogMessage{
		Cards:   []*deck.Card{cut},
		Message: "The starter card is cut",
		Time:    time.Now(),
	})

	if cut.Rank == deck.Jack {
		g.peg(g.dealerIdx, 2, "his heels")
		if g.winnerIdx >= 0 {
			return
		}
	}

	for _, p := range g.participants {
		p.pegHand = append([]*deck.Card{}, p.hand...)
	}

	g.phase = PhasePegging
	g.turnIdx = g.otherIdx(g.dealerIdx)
	g.lastPlayIdx = -1
}

// playPeggingCard plays one card onto the count
func (g *Game) playPeggingCard(playerID int64, card *deck.Card) error {
	if g.phase != PhasePegging {
		return ErrWrongPhase
	}

	idx := g.indexOf(playerID)
	if idx != g.turnIdx {
		return table.ErrNotYourTurn
	}

	p := g.participants[idx]
	pegHand := deck.Hand(p.pegHand)
	if !pegHand.HasCard(card) {
		return ErrCardNotInHand
	}

	if g.count+cardValue(card) > maxCount {
		return ErrCardTooBig
	}

	points := PegPoints(g.pile, card, g.count, false)
	pegHand.Discard(card)
	p.pegHand = pegHand
	g.pile = append(g.pile, card)
	g.count += cardValue(card)
	g.lastPlayIdx = idx

	g.sendLogMessages(&playable.LogMessage{
		PlayerIDs: []int64{playerID},
		Cards:     []*deck.Card{card},
		Message:   fmt.Sprintf("{} plays for %d", g.count),
		Time:      time.Now(),
	})

	if points > 0 {
		g.peg(idx, points, "pegging")
		if g.winnerIdx >= 0 {
			return nil
		}
	}

	g.advancePegging()
	return nil
}

// advancePegging determines who plays next, handles "go" and the last-card
// point, and moves to counting when both hands are played out
func (g *Game) advancePegging() {
	other := g.otherIdx(g.lastPlayIdx)

	if CanPlay(g.participants[other].pegHand, g.count) {
		g.turnIdx = other
		return
	}

	if CanPlay(g.participants[g.lastPlayIdx].pegHand, g.count) {
		// opponent says go; the last player keeps playing
		g.turnIdx = g.lastPlayIdx
		return
	}

	// neither can play: a point for last card, unless 31 already scored it
	if g.count != maxCount {
		g.peg(g.lastPlayIdx, 1, "last card")
		if g.winnerIdx >= 0 {
			return
		}
	}

	if len(g.participants[0].pegHand) == 0 && len(g.participants[1].pegHand) == 0 {
		g.countHands()
		return
	}

	// count resets; the player who did not play last leads
	g.pile = nil
	g.count = 0
	g.turnIdx = g.otherIdx(g.lastPlayIdx)
	if len(g.participants[g.turnIdx].pegHand) == 0 {
		g.turnIdx = g.lastPlayIdx
	}
}

// countHands counts the non-dealer hand, the dealer hand, then the crib.
// The game ends the moment anyone reaches the winning score.
func (g *Game) countHands() {
	nonDealer := g.otherIdx(g.dealerIdx)

	order := []struct {
		idx    int
		cards  []*deck.Card
		isCrib bool
		label  string
	}{
		{nonDealer, g.participants[nonDealer].hand, false, "hand"},
		{g.dealerIdx, g.participants[g.dealerIdx].hand, false, "hand"},
		{g.dealerIdx, g.crib, true, "crib"},
	}

	for _, c := range order {
		score := ScoreHand(c.cards, g.cut, c.isCrib)
		if score.Total > 0 {
			g.peg(c.idx, score.Total, c.label)
			if g.winnerIdx >= 0 {
				return
			}
		}
	}

	g.phase = PhaseHandEnd
	g.nextDealAfter = time.Now().Add(time.Second * 5)
}

// peg advances a player's score and checks for the win
func (g *Game) peg(idx, points int, reason string) {
	p := g.participants[idx]
	p.score += points
	g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} pegs %d for %s (%d)", points, reason, p.score))

	if p.score >= winningScore {
		p.score = winningScore
		g.winnerIdx = idx
		g.phase = PhaseHandEnd
		g.nextDealAfter = time.Now().Add(time.Second * 5)
	}
}

// RoundReady returns true when the hand is fully counted or won
func (g *Game) RoundReady() bool {
	return g.phase == PhaseHandEnd && g.lastResult == nil
}

// SettleRound computes the hand outcome. A finished game pays the winner
// the pot plus the leg value from the loser, doubled on a skunk and tripled
// on a double skunk; an unfinished hand carries the pot forward untouched.
func (g *Game) SettleRound() (*playable.RoundResult, error) {
	if !g.RoundReady() {
		return nil, ErrRoundNotReady
	}

	if g.winnerIdx < 0 {
		result := &playable.RoundResult{
			NextPot: g.pot,
			Detail:  fmt.Sprintf("hand %d counted: %d-%d", g.handNumber, g.participants[0].score, g.participants[1].score),
		}
		g.lastResult = result
		return result, nil
	}

	winner := g.participants[g.winnerIdx]
	loser := g.participants[g.otherIdx(g.winnerIdx)]

	multiplier := 1
	outcome := "wins"
	switch {
	case loser.score < doubleSkunkLine:
		multiplier = 3
		outcome = "double-skunks"
	case loser.score < skunkLine:
		multiplier = 2
		outcome = "skunks"
	}

	payout := g.options.LegValue * multiplier
	winner.balance += g.pot + payout
	loser.balance -= payout

	result := &playable.RoundResult{
		Winners:  map[int64]int{winner.PlayerID: g.pot + payout},
		Losers:   map[int64]int{loser.PlayerID: payout},
		NextPot:  0,
		GameOver: true,
		Detail:   fmt.Sprintf("%d %s %d, %d-%d", winner.PlayerID, outcome, loser.PlayerID, winner.score, loser.score),
	}

	g.pot = 0
	g.lastResult = result
	g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} %s and wins ${%d}", outcome, result.Winners[winner.PlayerID]))

	return result, nil
}

// nextHand re-antes, flips the deal, and deals the next hand
func (g *Game) nextHand() error {
	for _, p := range g.participants {
		p.balance -= g.options.Ante
		g.pot += g.options.Ante
	}

	g.dealerIdx = g.otherIdx(g.dealerIdx)
	g.lastResult = nil

	return g.deal()
}

// GetEndOfGameDetails returns details at the end of the game. Balance
// adjustments are informational: chips move durably at settlement.
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.done {
		return nil, false
	}

	adjustments := make(map[int64]int)
	for _, p := range g.participants {
		adjustments[p.PlayerID] = p.balance
	}

	return &playable.GameOverDetails{
		BalanceAdjustments: adjustments,
		Log:                g.lastResult,
	}, true
}

func (g *Game) indexOf(playerID int64) int {
	for i, p := range g.participants {
		if p.PlayerID == playerID {
			return i
		}
	}

	return -1
}

func (g *Game) otherIdx(idx int) int {
	return (idx + 1) % len(g.participants)
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		g.logChan <- msg
	}
}
