package threefiveseven

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

// handSizes is the dealing cycle: threes are wild in the 3-card round,
// fives in the 5-card round, sevens in the 7-card round
var handSizes = []int{3, 5, 7}

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseDealing is when cards are being dealt
	PhaseDealing Phase = iota
	// PhaseDeclaration is when players decide to stay or fold
	PhaseDeclaration
	// PhaseShowdown is when hands are revealed and compared
	PhaseShowdown
	// PhaseRoundEnd is the end of a round before the next
	PhaseRoundEnd
	// PhaseGameOver is when the game has ended
	PhaseGameOver
)

// Game is a game of 3-5-7
type Game struct {
	options         Options
	deck            *deck.Deck
	participants    []*Participant
	idToParticipant map[int64]*Participant

	pot         int
	phase       Phase
	roundNumber int
	deadline    time.Time

	pendingDecisions map[int64]bool
	decisions        map[int64]bool // true=stay, false=fold

	lastResult *playable.RoundResult
	lastGhost  []*deck.Card

	done bool

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	pendingDealerAction *pendingDealerAction
}

// NewGame returns a new 3-5-7 game
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) < 2 || len(playerIDs) > 7 {
		return nil, PlayerCountError{Min: 2, Max: 7, Got: len(playerIDs)}
	}

	if opts.LegsToWin < 1 {
		return nil, errors.New("legs to win must be at least 1")
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

	messages = append(messages, playable.SimpleLogMessage(0, "New game of 3-5-7 started with a pot of ${%d}", pot))
	g.sendLogMessages(messages...)

	return g, nil
}

// Name returns "three-five-seven"
func (g *Game) Name() string {
	return "three-five-seven"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// HandSize returns the hand size for the current round
func (g *Game) HandSize() int {
	return handSizes[(g.roundNumber-1)%len(handSizes)]
}

// Deal deals the current round's hand to each participant and opens the
// declaration window
func (g *Game) Deal() error {
	for _, p := range g.participants {
		p.ClearHand()
	}

	size := g.HandSize()
	for i := 0; i < size; i++ {
		for _, p := range g.participants {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}
			p.AddCard(card)
		}
	}

	g.pendingDecisions = make(map[int64]bool)
	g.decisions = make(map[int64]bool)
	for _, p := range g.participants {
		g.pendingDecisions[p.PlayerID] = true
	}

	g.phase = PhaseDeclaration
	g.deadline = time.Now().Add(g.options.DecisionTimeout)
	g.sendLogMessages(playable.SimpleLogMessage(0, "Round %d: %d cards dealt, %ds are wild", g.roundNumber, size, size))

	return nil
}

// Delay determines how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick advances pacing and enforces the decision deadline
func (g *Game) Tick() (bool, error) {
	if g.done {
		return false, nil
	}

	if g.pendingDealerAction != nil {
		if !time.Now().After(g.pendingDealerAction.ExecuteAfter) {
			return false, nil
		}

		action := g.pendingDealerAction.Action
		g.pendingDealerAction = nil

		switch action {
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

func (g *Game) submitDecision(playerID int64, stay bool) error {
	if g.phase != PhaseDeclaration {
		return ErrNotInDeclarationPhase
	}

	if !g.pendingDecisions[playerID] {
		return ErrAlreadyDecided
	}

	g.decisions[playerID] = stay
	delete(g.pendingDecisions, playerID)
	g.sendLogMessages(playable.SimpleLogMessage(playerID, "{} has decided"))

	return nil
}

// RoundReady returns true once every seat has locked a decision
func (g *Game) RoundReady() bool {
	return g.phase == PhaseDeclaration && len(g.pendingDecisions) == 0
}

// SettleRound computes the round outcome: showdown classification, pot
// movement, and leg awards. It must only be called by the caller that won
// the round's settlement claim.
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
			_, strength := poker.Evaluate(p.Hand(), poker.ThreeFiveSevenWilds)
			stayed = append(stayed, showdown.Hand{PlayerID: p.PlayerID, Strength: strength})
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

// dealGhost draws the ghost hand from the remaining undealt deck, sized and
// evaluated like a player hand for the current round
func (g *Game) dealGhost() ([]*deck.Card, int, error) {
	cards, err := g.deck.Deal(g.HandSize())
	if err != nil {
		return nil, 0, err
	}

	g.sendLogMessages(&playable.LogMessage{
		Cards:   cards,
		Message: "Chucky enters the game",
		Time:    time.Now(),
	})

	_, strength := poker.Evaluate(cards, poker.ThreeFiveSevenWilds)
	return cards, strength, nil
}

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
		return &playable.RoundResult{
			Losers:  losers,
			NextPot: nextPot,
			Detail:  fmt.Sprintf("Chucky wins; %d seat(s) match ${%d}", len(losers), match),
		}

	default: // Won, GhostBeaten
		return g.applyWin(result)
	}
}

// applyWin pays the pot and awards legs. Each winner earns a leg and
// collects the leg value from every other participant; the game ends when a
// winner reaches the configured leg count.
func (g *Game) applyWin(result *showdown.Result) *playable.RoundResult {
	winners := make(map[int64]int)
	losers := make(map[int64]int)

	share, _, err := table.SplitPot(g.pot, len(result.Winners))
	if err != nil {
		panic(err)
	}

	isWinner := make(map[int64]bool, len(result.Winners))
	for _, pid := range result.Winners {
		isWinner[pid] = true
	}

	gameOver := false
	for _, pid := range result.Winners {
		p := g.idToParticipant[pid]
		winners[pid] += share
		p.balance += share

		p.legs++
		g.sendLogMessages(playable.SimpleLogMessage(pid, "{} wins a leg (%d of %d)", p.legs, g.options.LegsToWin))
		if p.legs >= g.options.LegsToWin {
			gameOver = true
		}

		// every other seat pays the leg value to the leg winner
		for _, other := range g.participants {
			if other.PlayerID == pid {
				continue
			}

			winners[pid] += g.options.LegValue
			p.balance += g.options.LegValue
			losers[other.PlayerID] += g.options.LegValue
			other.balance -= g.options.LegValue
		}
	}

	match := table.MatchAmount(g.pot, g.options.PotMax, g.options.PotMaxEnabled)
	nextPot := 0
	for _, pid := range result.Losers {
		losers[pid] += match
		g.idToParticipant[pid].balance -= match
		nextPot += match
	}

	g.pot = nextPot

	detail := fmt.Sprintf("%d seat(s) win the pot and a leg", len(result.Winners))
	if gameOver {
		detail = fmt.Sprintf("game over: a seat reached %d legs", g.options.LegsToWin)
	}

	return &playable.RoundResult{
		Winners:    winners,
		Losers:     losers,
		NextPot:    nextPot,
		GameOver:   gameOver,
		LegWinners: append([]int64{}, result.Winners...),
		Detail:     detail,
	}
}

// nextRound re-antes and deals the next hand size in the cycle
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
