package horses

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
	// PhaseRoundEnd is after every seat has locked a hand
	PhaseRoundEnd
	// PhaseGameOver is when the game has ended
	PhaseGameOver
)

// Options are options for creating a new Horses game
type Options struct {
	Ante int

	// WildFace treats dice showing this face as wild; 0 disables wilds
	WildFace int

	// MaxRolls is how many rolls a seat gets per turn
	MaxRolls int

	// TurnTimeout is how long a seat has to finish its rolls
	TurnTimeout time.Duration
}

// DefaultOptions returns the default options for a Horses game
func DefaultOptions() Options {
	return Options{
		Ante:        25,
		WildFace:    1,
		MaxRolls:    3,
		TurnTimeout: time.Second * 30,
	}
}

// Participant is an individual seat in the Horses game
type Participant struct {
	PlayerID int64
	balance  int
	cup      *dice.Cup
	rolls    int
	locked   bool
}

// Dice returns the participant's current dice values
func (p *Participant) Dice() []int {
	return p.cup.Values()
}

// Game is a game of Horses: five dice, three rolls, best of-a-kind wins
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

// NewGame returns a new Horses game
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
	g.sendLogMessages(playable.SimpleLogMessage(0, "New game of Horses started with a pot of ${%d}", g.pot))

	return g, nil
}

// Name returns "horses"
func (g *Game) Name() string {
	return "horses"
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
	// stand on whatever shows
	if g.phase == PhaseRolling && time.Now().After(g.deadline) {
		p := g.participants[g.turnIdx]
		if p.rolls == 0 {
			p.cup.Roll()
			p.rolls++
		}

		g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} ran out of time and stands"))
		g.lockCurrent()
		return true, nil
	}

	return false, nil
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
		if err := g.roll(p); err != nil {
			return nil, false, err
		}

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
	case "stand":
		if p.rolls == 0 {
			return nil, false, errors.New("you must roll at least once")
		}

		g.lockCurrent()
		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

func (g *Game) roll(p *Participant) error {
	if p.rolls >= g.options.MaxRolls {
		return fmt.Errorf("no rolls left (max %d)", g.options.MaxRolls)
	}

	p.cup.Roll()
	p.rolls++
	g.sendLogMessages(playable.SimpleLogMessage(p.PlayerID, "{} rolls %v (%d of %d)", p.cup.Values(), p.rolls, g.options.MaxRolls))

	if p.rolls == g.options.MaxRolls {
		g.lockCurrent()
	}

	return nil
}

// lockCurrent locks the current seat's hand and advances the turn
func (g *Game) lockCurrent() {
	g.participants[g.turnIdx].locked = true

	for i, p := range g.participants {
		if !p.locked {
			g.turnIdx = i
			g.deadline = time.Now().Add(g.options.TurnTimeout)
			return
		}
	}

	g.phase = PhaseRoundEnd
}

// RoundReady returns true once every seat has locked a hand
func (g *Game) RoundReady() bool {
	return g.phase == PhaseRoundEnd && g.lastResult == nil
}

// SettleRound ranks the locked hands. A single best hand takes the pot and
// ends the game; an exact tie at the top rolls the pot over to a replay
// round with no fresh ante.
func (g *Game) SettleRound() (*playable.RoundResult, error) {
	if !g.RoundReady() {
		return nil, errors.New("round is not ready to settle")
	}

	best := dice.OfAKind{}
	for _, p := range g.participants {
		hand := dice.EvaluateOfAKind(p.cup.Values(), g.options.WildFace)
		if hand.Beats(best) {
			best = hand
		}
	}

	var top []*Participant
	for _, p := range g.participants {
		if dice.EvaluateOfAKind(p.cup.Values(), g.options.WildFace).Rank() == best.Rank() {
			top = append(top, p)
		}
	}

	var result *playable.RoundResult
	if len(top) > 1 {
		result = &playable.RoundResult{
			NextPot:  g.pot,
			Rollover: true,
			Detail:   fmt.Sprintf("%d seats tied with %d %ds; the pot rolls over", len(top), best.Count, best.Face),
		}
		g.sendLogMessages(playable.SimpleLogMessage(0, "Tie at the top! The pot of ${%d} rolls over", g.pot))
	} else {
		winner := top[0]
		winner.balance += g.pot

		result = &playable.RoundResult{
			Winners:  map[int64]int{winner.PlayerID: g.pot},
			NextPot:  0,
			GameOver: true,
			Detail:   fmt.Sprintf("%d wins ${%d} with %d %ds", winner.PlayerID, g.pot, best.Count, best.Face),
		}
		g.sendLogMessages(playable.SimpleLogMessage(winner.PlayerID, "{} wins ${%d} with %d %ds", g.pot, best.Count, best.Face))
		g.pot = 0
	}

	g.lastResult = result
	g.phase = PhaseRoundEnd
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
		p.locked = false
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
