package yacht

import (
	"errors"
	"fmt"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/internal/rng"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/dice"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/sirupsen/logrus"
)

// dieCount is how many dice each seat rolls
const dieCount = 5

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseRolling is when seats take their turns
	PhaseRolling Phase = iota
	// PhaseRoundEnd is after every category on every sheet is claimed
	PhaseRoundEnd
	// PhaseGameOver is when the game has ended
	PhaseGameOver
)

// Options are options for creating a new Yacht game
type Options struct {
	Ante int

	// MaxRolls is how many rolls a seat gets per turn
	MaxRolls int

	// TurnTimeout is how long a seat has to finish a turn
	TurnTimeout time.Duration
}

// DefaultOptions returns the default options for a Yacht game
func DefaultOptions() Options {
	return Options{
		Ante:        25,
		MaxRolls:    3,
		TurnTimeout: time.Second * 45,
	}
}

// Participant is an individual seat in the Yacht game
type Participant struct {
	PlayerID int64
	balance  int
	cup      *dice.Cup
	rolls    int
	scores   map[dice.Category]int
}

// Total returns the participant's score-sheet total
func (p *Participant) Total() int {
	total := 0
	for _, score := range p.scores {
		total += score
	}

	return total
}

// Claimed returns true if the participant has scored the category
func (p *Participant) Claimed(c dice.Category) bool {
	_, ok := p.scores[c]
	return ok
}

// Game is a game of Yacht: twelve categories, three rolls a turn, highest
// sheet total takes the pot
type Game struct {
	options         Options
	participants    []*Participant
	idToParticipant map[int64]*Participant

	pot         int
	phase       Phase
	roundNumber int
	turnIdx     int
	deadline    time.Time

	gen rng.Generator

	lastResult *playable.RoundResult
	done       bool

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	nextRoundAfter time.Time
}

// NewGame returns a new Yacht game
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if len(playerIDs) < 2 || len(playerIDs) > 7 {
		return nil, fmt.Errorf("expected 2–7 players, got %d", len(playerIDs))
	}

	if opts.MaxRolls < 1 {
		return nil, errors.New("at least one roll is required")
	}

	gen := rng.Crypto{}
	participants := make([]*Participant, len(playerIDs))
	idToParticipant := make(map[int64]*Participant)
	for i, pid := range playerIDs {
		p := &Participant{
			PlayerID: pid,
			cup:      dice.NewCup(dieCount, gen),
			scores:   make(map[dice.Category]int),
		}
		participants[i] = p
		idToParticipant[pid] = p
	}

	g := &Game{
		options:         opts,
		participants:    participants,
		idToParticipant: idToParticipant,
		phase:           PhaseRolling,
		roundNumber:     1,
		gen:             gen,
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
	}

	for _, p := range participants {
		g.pot += opts.Ante
		p.balance -= opts.Ante
	}

	g.deadline = time.Now().Add(opts.TurnTimeout)
	g.sendLogMessages(playable.SimpleLogMessage(0, "New game of Yacht started with a pot of ${%d}", g.pot))

	return g, nil
}

// Name returns "yacht"
func (g *Game) Name() string {
	return "yacht"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Delay determines how often Tick() should be called
func (g *Game) Delay() time.Duration {
	return time.Second
}

// Tick enforces the turn deadline and paces round transitions
func (g *Game) Tick() (bool, error) {
	if g.done {
		return false, nil
	}

	if g.phase == PhaseRoundEnd && g.lastResult != nil && time.Now().After(g.nextRoundAfter) {
		if g.lastResult.GameOver {
			g.phase = PhaseGameOver
			g.done = true
			return true, nil
		}

		g.nextRound()
		return true, nil
	}

	// the seat on the clock ran out of time: roll if it never rolled, then
	// score the best category still open
	if g.phase == PhaseRolling && time.Now().After(g.deadline) {
		p := g.participants[g.turnIdx]
		if p.rolls == 0 {
			p.cup.Roll()
			p.rolls++
		}

		category := g.bestOpenCategory(p)
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} ran out of time and scores %s", category))
		g.claim(p, category)
		return true, nil
	}

	return false, nil
}

// bestOpenCategory returns the unclaimed category worth the most with the
// participant's current dice
func (g *Game) bestOpenCategory(p *Participant) dice.Category {
	best := dice.Category(-1)
	bestScore := -1
	for _, c := range dice.Categories {
		if p.Claimed(c) {
			continue
		}

		if score := dice.Score(c, p.cup.Values()); score > bestScore {
			best = c
			bestScore = score
		}
	}

	return best
}

// Action performs an action
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if g.phase == PhaseGameOver || g.done {
		return nil, false, errors.New("game is over")
	}

	p, ok := g.idToParticipant[playerID]
	if !ok {
		return nil, false, errors.New("player not found")
	}

	if g.phase != PhaseRolling || g.participants[g.turnIdx] != p {
		return nil, false, table.ErrNotYourTurn
	}

	switch message.Action {
	case "roll":
		if p.rolls >= g.options.MaxRolls {
			return nil, false, fmt.Errorf("no rolls left (max %d)", g.options.MaxRolls)
		}

		p.cup.Roll()
		p.rolls++
		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} rolls %v (%d of %d)", p.cup.Values(), p.rolls, g.options.MaxRolls))
		return playable.OK(), true, nil
	case "hold":
		die, ok := message.AdditionalData.GetInt("die")
		if !ok {
			return nil, false, errors.New("missing 'die' parameter")
		}

		held, ok := message.AdditionalData.GetBool("held")
		if !ok {
			return nil, false, errors.New("missing 'held' parameter")
		}

		if p.rolls == 0 {
			return nil, false, errors.New("you must roll before holding dice")
		}

		if err := p.cup.Hold(die, held); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case "claim":
		if p.rolls == 0 {
			return nil, false, errors.New("you must roll before scoring")
		}

		categoryInt, ok := message.AdditionalData.GetInt("category")
		if !ok {
			return nil, false, errors.New("missing 'category' parameter")
		}

		category := dice.Category(categoryInt)
		if categoryInt < 0 || categoryInt >= len(dice.Categories) {
			return nil, false, fmt.Errorf("unknown category: %d", categoryInt)
		}

		if p.Claimed(category) {
			return nil, false, fmt.Errorf("you already scored %s", category)
		}

		g.claim(p, category)
		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// claim scores the category for the participant and advances the turn
func (g *Game) claim(p *Participant, category dice.Category) {
	score := dice.Score(category, p.cup.Values())
	p.scores[category] = score
	g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} scores %d for %s", score, category))

	p.cup.Reset()
	p.rolls = 0

	for offset := 1; offset <= len(g.participants); offset++ {
		next := g.participants[(g.turnIdx+offset)%len(g.participants)]
		if len(next.scores) < len(dice.Categories) {
			g.turnIdx = (g.turnIdx + offset) % len(g.participants)
			g.deadline = time.Now().Add(g.options.TurnTimeout)
			return
		}
	}

	g.phase = PhaseRoundEnd
}

// RoundReady returns true once every category on every sheet is scored
func (g *Game) RoundReady() bool {
	return g.phase == PhaseRoundEnd && g.lastResult == nil
}

// SettleRound compares sheet totals. A single best total takes the pot and
// ends the game; an exact tie at the top rolls the pot over to a replay
// round with no fresh ante.
func (g *Game) SettleRound() (*playable.RoundResult, error) {
	if !g.RoundReady() {
		return nil, errors.New("round is not ready to settle")
	}

	best := -1
	for _, p := range g.participants {
		if total := p.Total(); total > best {
			best = total
		}
	}

	var top []*Participant
	for _, p := range g.participants {
		if p.Total() == best {
			top = append(top, p)
		}
	}

	var result *playable.RoundResult
	if len(top) > 1 {
		result = &playable.RoundResult{
			NextPot:  g.pot,
			Rollover: true,
			Detail:   fmt.Sprintf("%d seats tied at %d points; the pot rolls over", len(top), best),
		}
		g.sendLogMessages(playable.SimpleLogMessage(0, "Tie at %d points! The pot of ${%d} rolls over", best, g.pot))
	} else {
		winner := top[0]
		winner.balance += g.pot

		result = &playable.RoundResult{
			Winners:  map[int64]int{winner.PlayerID: g.pot},
			NextPot:  0,
			GameOver: true,
			Detail:   fmt.Sprintf("%d wins ${%d} with %d points", winner.PlayerID, g.pot, best),
		}
		g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} wins ${%d} with %d points", g.pot, best))
		g.pot = 0
	}

	g.lastResult = result
	g.nextRoundAfter = time.Now().Add(time.Second * 5)

	return result, nil
}

// nextRound replays with the carried pot and no fresh ante
func (g *Game) nextRound() {
	g.roundNumber++
	g.lastResult = nil
	g.turnIdx = 0
	g.phase = PhaseRolling
	g.deadline = time.Now().Add(g.options.TurnTimeout)

	for _, p := range g.participants {
		p.cup = dice.NewCup(dieCount, g.gen)
		p.rolls = 0
		p.scores = make(map[dice.Category]int)
	}
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

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan != nil {
		g.logChan <- msg
	}
}
