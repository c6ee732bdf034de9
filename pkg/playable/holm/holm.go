package holm

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/deck"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable/showdown"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/poker"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/sirupsen/logrus"
)

// holeCount is how many hole cards each seat is dealt
const holeCount = 4

// handSize is the evaluated hand size over hole plus community cards
const handSize = 5

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseDealing is when cards are being dealt
	PhaseDealing Phase = iota
	// PhaseReveal is when community cards are turned face up one at a time
	PhaseReveal
	// PhaseDeclaration is when players decide to stay or fold
	PhaseDeclaration
	// PhaseShowdown is when hands are revealed and compared
	PhaseShowdown
	// PhaseRoundEnd is the end of a round before the next
	PhaseRoundEnd
	// PhaseGameOver is when the game has ended
	PhaseGameOver
)

// Game is a game of Holm: four hole cards, shared community cards, and a
// ghost hand named Chucky that a lone or tied seat must beat
type Game struct {
	options         Options
	deck            *deck.Deck
	participants    []*Participant
	idToParticipant map[int64]*Participant

	community []*deck.Card
	revealed  int

	pot         int
	phase       Phase
	roundNumber int
	deadline    time.Time

	// simultaneous declaration tracking
	pendingDecisions map[int64]bool
	decisions        map[int64]bool // true=stay, false=fold

	lastResult *playable.RoundResult
	lastGhost  []*deck.Card

	done bool

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	pendingDealerAction *pendingDealerAction
}

// NewGame returns a new Holm game
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) < 2 || len(playerIDs) > 7 {
		return nil, PlayerCountError{Min: 2, Max: 7, Got: len(playerIDs)}
	}

	participants := make([]*Participant, len(playerIDs))
	idToParticipant := make(map[int64]*Participant)
	for i, pid := range playerIDs {
		p := NewParticipant(pid)
		participants[i] = p
		idToParticipant[pid] = p
	}

	pot := 0
	messages := make([]*playable.LogMessage, 0)
	for _, p := range participants {
		pot += opts.Ante
		p.balance -= opts.Ante
		messages = append(messages, playable.SimpleLogMessage(p.PlayerID, "{} paid the ${%d} ante", opts.Ante))
	}

	g := &Game{
		options:          opts,
		deck:             deck.New(),
		participants:     participants,
		idToParticipant:  idToParticipant,
		pot:              pot,
		phase:            PhaseDealing,
		roundNumber:      1,
		pendingDecisions: make(map[int64]bool),
		decisions:        make(map[int64]bool),
		logger:           logger,
		logChan:          make(chan []*playable.LogMessage, 256),
	}
	g.deck.Shuffle(0)

	messages = append(messages, playable.SimpleLogMessage(0, "New game of Holm started with a pot of ${%d}", pot))
	g.sendLogMessages(messages...)

	return g, nil
}

// Name returns "holm"
func (g *Game) Name() string {
	return "holm"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Deal deals hole cards and the face-down community cards
func (g *Game) Deal() error {
	for _, p := range g.participants {
		p.ClearHand()
	}

	for i := 0; i < holeCount; i++ {
		for _, p := range g.participants {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}
			p.AddCard(card)
		}
	}

	community, err := g.deck.Deal(g.options.CommunityCount)
	if err != nil {
		return err
	}
	g.community = community
	g.revealed = 0

	g.pendingDecisions = make(map[int64]bool)
	g.decisions = make(map[int64]bool)
	for _, p := range g.participants {
		g.pendingDecisions[p.PlayerID] = true
	}

	g.phase = PhaseReveal
	g.pendingDealerAction = &pendingDealerAction{
		Action:       dealerActionRevealCommunityCard,
		ExecuteAfter: time.Now().Add(time.Second),
	}

	g.sendLogMessages(playable.SimpleLogMessage(0, "Round %d: cards dealt", g.roundNumber))
	return nil
}

// Delay determines how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick advances game pacing: community reveals, the decision deadline, and
// round transitions. It is safe to call redundantly.
func (g *Game) Tick() (bool, error) {
	if g.done {
		return false, nil
	}

	if g.pendingDealerAction != nil {
		if !time.Now().After(g.pendingDealerAction.ExecuteAfter) {
			return false, nil
		}

		action := g.pendingDealerAction.Action
		// clear before executing so actions can schedule new ones
		g.pendingDealerAction = nil

		switch action {
		case dealerActionRevealCommunityCard:
			g.revealNextCommunityCard()
		case dealerActionOpenDeclaration:
			g.openDeclaration()
		case dealerActionNextRound:
			if err := g.nextRound(); err != nil {
				g.logger.WithError(err).Error("could not start the next round")
			}
		case dealerActionEndGame:
			g.done = true
		default:
			panic(fmt.Sprintf("unknown dealer action: %d", action))
		}

		return true, nil
	}

	// deadline expiry: every seat without a locked decision folds
	if g.phase == PhaseDeclaration && !g.deadline.IsZero() && time.Now().After(g.deadline) {
		changed := false
		for pid := range g.pendingDecisions {
			g.decisions[pid] = false
			delete(g.pendingDecisions, pid)
			g.sendLogMessages(playable.SimpleLogMessage(pid, "{} did not decide in time and folds"))
			changed = true
		}

		return changed, nil
	}

	return false, nil
}

func (g *Game) revealNextCommunityCard() {
	g.revealed++
	g.sendLogMessages(&playable.LogMessage{
		PlayerIDs: nil,
		Cards:     []*deck.Card{g.community[g.revealed-1]},
		Message:   fmt.Sprintf("Community card %d revealed", g.revealed),
		Time:      time.Now(),
	})

	next := dealerActionRevealCommunityCard
	if g.revealed >= len(g.community) {
		next = dealerActionOpenDeclaration
	}

	g.pendingDealerAction = &pendingDealerAction{
		Action:       next,
		ExecuteAfter: time.Now().Add(time.Second),
	}
}

// RevealCount is how many community cards are face up
func (g *Game) RevealCount() int {
	return g.revealed
}

func (g *Game) openDeclaration() {
	g.phase = PhaseDeclaration
	g.deadline = time.Now().Add(g.options.DecisionTimeout)
	g.sendLogMessages(playable.SimpleLogMessage(0, "Declare: stay or fold"))
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if g.phase == PhaseGameOver {
		return nil, false, ErrGameIsOver
	}

	if _, ok := g.idToParticipant[playerID]; !ok {
		return nil, false, ErrPlayerNotFound
	}

	switch message.Action {
	case "decide":
		stay, ok := message.AdditionalData.GetBool("stay")
		if !ok {
			return nil, false, errors.New("missing 'stay' parameter")
		}

		if err := g.submitDecision(playerID, stay); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// submitDecision records a player's stay/fold decision. Decisions are
// immutable once locked.
func (g *Game) submitDecision(playerID int64, stay bool) error {
	if g.phase != PhaseDeclaration {
		return ErrNotInDeclarationPhase
	}

	if !g.pendingDecisions[playerID] {
		return ErrAlreadyDecided
	}

	g.decisions[playerID] = stay
	delete(g.pendingDecisions, playerID)

	// decided, but not revealed until everyone has
	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} has decided"))
	return nil
}

// RoundReady returns true once every seat has locked a decision
func (g *Game) RoundReady() bool {
	return g.phase == PhaseDeclaration && len(g.pendingDecisions) == 0
}

// SettleRound computes the round outcome. It must only be called by the
// caller that won the round's settlement claim; hands, community cards, and
// decisions are snapshotted here before any balances move.
func (g *Game) SettleRound() (*playable.RoundResult, error) {
	if !g.RoundReady() {
		return nil, ErrRoundNotReady
	}

	g.phase = PhaseShowdown

	stayed := make([]showdown.Hand, 0, len(g.participants))
	for _, p := range g.participants {
		decision := "folds"
		if g.decisions[p.PlayerID] {
			decision = "stays"
			stayed = append(stayed, showdown.Hand{
				PlayerID: p.PlayerID,
				Strength: g.strength(p.Hand()),
			})
		}

		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} %s", decision))
	}

	result, err := showdown.Classify(stayed, g.dealGhost)
	if err != nil {
		return nil, err
	}

	g.lastGhost = result.Ghost
	roundResult := g.applyOutcome(result)
	g.lastResult = roundResult

	g.phase = PhaseRoundEnd
	next := dealerActionNextRound
	if roundResult.GameOver {
		g.phase = PhaseGameOver
		next = dealerActionEndGame
	}

	g.pendingDealerAction = &pendingDealerAction{
		Action:       next,
		ExecuteAfter: time.Now().Add(time.Second * 5),
	}

	return roundResult, nil
}

// strength evaluates the best five-card hand over hole plus community
// cards. Holm plays without wild cards.
func (g *Game) strength(hole []*deck.Card) int {
	cards := append(append([]*deck.Card{}, hole...), g.community...)
	return poker.New(handSize, cards).GetStrength()
}

// dealGhost draws Chucky's hole cards from the remaining undealt deck
func (g *Game) dealGhost() ([]*deck.Card, int, error) {
	cards, err := g.deck.Deal(g.options.GhostCardCount)
	if err != nil {
		return nil, 0, err
	}

	g.sendLogMessages(&playable.LogMessage{
		Cards:   cards,
		Message: "Chucky enters the game",
		Time:    time.Now(),
	})

	return cards, g.strength(cards), nil
}

// applyOutcome maps a showdown classification onto chip movements
func (g *Game) applyOutcome(result *showdown.Result) *playable.RoundResult {
	switch result.Kind {
	case showdown.AllFolded:
		taxed := make(map[int64]int)
		nextPot := g.pot
		if g.options.TaxEnabled {
			for _, p := range g.participants {
				taxed[p.PlayerID] = g.options.Tax
				p.balance -= g.options.Tax
				nextPot += g.options.Tax
			}
		}

		g.pot = nextPot
		g.sendLogMessages(playable.SimpleLogMessage(0, "Everyone folded; the pot carries to the next round"))
		return &playable.RoundResult{
			Taxed:   taxed,
			NextPot: nextPot,
			Detail:  "everyone folded",
		}

	case showdown.GhostWon:
		losers := make(map[int64]int)
		match := table.MatchAmount(g.pot, g.options.PotMax, g.options.PotMaxEnabled)
		nextPot := g.pot
		for _, pid := range result.Losers {
			losers[pid] = match
			g.idToParticipant[pid].balance -= match
			nextPot += match
		}

		g.pot = nextPot
		g.sendLogMessages(playable.SimpleLogMessage(0, "Chucky wins; the pot grows to ${%d}", nextPot))
		return &playable.RoundResult{
			Losers:  losers,
			NextPot: nextPot,
			Detail:  fmt.Sprintf("Chucky wins; %d seat(s) match ${%d}", len(losers), match),
		}

	default: // Won, GhostBeaten
		winners := make(map[int64]int)
		share, _, err := table.SplitPot(g.pot, len(result.Winners))
		if err != nil {
			// classification guarantees at least one winner
			panic(err)
		}

		for _, pid := range result.Winners {
			winners[pid] = share
			g.idToParticipant[pid].balance += share
		}

		losers := make(map[int64]int)
		match := table.MatchAmount(g.pot, g.options.PotMax, g.options.PotMaxEnabled)
		nextPot := 0
		for _, pid := range result.Losers {
			losers[pid] = match
			g.idToParticipant[pid].balance -= match
			nextPot += match
		}

		g.pot = nextPot

		detail := fmt.Sprintf("%d seat(s) split the pot; %d seat(s) match ${%d}", len(winners), len(losers), match)
		if result.Kind == showdown.GhostBeaten {
			detail = "Chucky was beaten"
		}

		g.sendLogMessages(playable.SimpleLogMessage(0, detail))
		return &playable.RoundResult{
			Winners:  winners,
			Losers:   losers,
			NextPot:  nextPot,
			GameOver: nextPot == 0,
			Detail:   detail,
		}
	}
}

// nextRound re-antes and deals the next hand
func (g *Game) nextRound() error {
	g.roundNumber++
	g.lastResult = nil
	g.lastGhost = nil

	for _, p := range g.participants {
		p.balance -= g.options.Ante
		g.pot += g.options.Ante
	}

	g.deck = deck.New()
	g.deck.Shuffle(0)

	return g.Deal()
}

// GetEndOfGameDetails returns details at the end of the game. Balance
// adjustments are informational: chips move durably at each round's
// settlement, not here.
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

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		g.logChan <- msg
	}
}
