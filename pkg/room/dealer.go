package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/room/gamefactory"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/sirupsen/logrus"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// decisionWindow is how long a freshly opened round accepts decisions
const decisionWindow = time.Minute

// decisionModes maps the games whose stay/fold decisions are mirrored to
// durable seats to how those decisions are collected
var decisionModes = map[string]table.DecisionMode{
	"holm":             table.DecisionSimultaneous,
	"three-five-seven": table.DecisionSimultaneous,
}

// Dealer is responsible for controlling the game at a single table
type Dealer struct {
	pitBoss *PitBoss
	table   *table.Table
	clients map[*Client]bool
	lock    sync.RWMutex

	game        playable.Playable
	gameLogChan <-chan []*playable.LogMessage
	logMessages []*playable.LogMessage
	round       *table.Round
	lifecycle   *table.Lifecycle
	settler     *table.Settler
	pending     *pendingGame
	lastTick    time.Time

	logger logrus.FieldLogger

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, t *table.Table) *Dealer {
	logger := logrus.WithFields(logrus.Fields{
		"uuid": t.UUID,
		"name": t.Name,
	})

	return &Dealer{
		pitBoss:       pitBoss,
		table:         t,
		clients:       make(map[*Client]bool),
		lifecycle:     table.NewLifecycle(t, logger),
		settler:       table.NewSettler(table.NewSQLStore(t.UUID), logger),
		logger:        logger,
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		var pendingStart <-chan time.Time
		if d.pending != nil {
			pendingStart = d.pending.timer.C
		}

		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendSeatData()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendSeatData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case messages := <-d.gameLogChan:
			d.addLogMessages(messages)
			d.sendLogMessages(messages)
		case <-pendingStart:
			d.startPendingGame()
		case <-ticker.C:
			d.tickGame()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if d.game == nil {
			return
		}

		gs, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			return
		}

		client.Send <- gs
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// tickGame drives the active game's clock and checks whether the round
// can settle
// NOTE: must only be called from the run loop
func (d *Dealer) tickGame() {
	game := d.game
	if game == nil {
		return
	}

	if t, ok := game.(playable.Tickable); ok && time.Since(d.lastTick) >= t.Delay() {
		d.lastTick = time.Now()
		updated, err := t.Tick()
		if err != nil {
			d.logger.WithError(err).Error("game tick failed")
		} else if updated {
			d.sendGameData()
		}
	}

	d.mirrorRevealCount()
	d.sweepDecisions()
	d.checkRound()
	d.checkGameOver()
}

// mirrorRevealCount copies the game's face-up card count to the durable
// round when it changes
// NOTE: must only be called from the run loop
func (d *Dealer) mirrorRevealCount() {
	game := d.game
	if game == nil || d.round == nil {
		return
	}

	revealer, ok := game.(playable.Revealer)
	if !ok {
		return
	}

	if n := revealer.RevealCount(); n != d.round.RevealCount {
		if err := d.round.SetRevealCount(context.Background(), n); err != nil {
			d.logger.WithError(err).Error("could not record reveal count")
		}
	}
}

// sweepDecisions folds the durable seats of players who let the round's
// decision deadline pass. The in-memory game folds them on its own clock;
// this keeps the durable decision locks in step.
// NOTE: must only be called from the run loop
func (d *Dealer) sweepDecisions() {
	game := d.game
	if game == nil || d.round == nil || d.round.Status != table.RoundStatusBetting || !d.round.Deadline.Valid {
		return
	}

	mode, ok := decisionModes[game.Name()]
	if !ok {
		return
	}

	ctx := context.Background()
	seats, err := table.GetSeats(ctx, d.table.UUID)
	if err != nil {
		d.logger.WithError(err).Error("could not get seats")
		return
	}

	if table.AllDecided(seats) {
		return
	}

	for _, seat := range table.ExpiredSeats(mode, seats, d.table.BuckSeat, d.round.Deadline.Time, time.Now()) {
		err := seat.RecordDecision(ctx, table.DecisionFold)
		if err == table.ErrDecisionLocked {
			continue
		}

		if err != nil {
			d.logger.WithError(err).WithField("playerId", seat.PlayerID).Error("could not auto-fold seat")
			continue
		}

		d.logger.WithField("playerId", seat.PlayerID).Info("seat auto-folded at the deadline")
	}
}

// checkRound settles the round if the game reports it ready. Many dealers
// polling many tables may race here; the settler's conditional update makes
// sure only one of them pays out.
// NOTE: must only be called from the run loop
func (d *Dealer) checkRound() {
	game := d.game
	if game == nil || d.round == nil {
		return
	}

	settler, ok := game.(playable.RoundSettler)
	if !ok || !settler.RoundReady() {
		return
	}

	ctx := context.Background()
	result, err := d.settler.SettleIfReady(ctx, d.round.ID, settler)
	if err != nil {
		d.logger.WithError(err).WithField("round", d.round.ID).Error("could not settle round")
		return
	}

	if result == nil {
		// another caller won the claim, or the round was not ready
		return
	}

	d.logger.WithFields(logrus.Fields{
		"round":       d.round.ID,
		"adjustments": result.BalanceAdjustments(),
	}).Info("round settled")

	d.awardLegs(ctx, result)
	d.sendGameData()

	done, err := d.lifecycle.AdvanceToNextRound(ctx, result)
	if err != nil {
		d.logger.WithError(err).Error("could not advance to next round")
		return
	}

	if done {
		d.round = nil
		return
	}

	round, err := d.lifecycle.StartRound(ctx, time.Now().Add(decisionWindow))
	if err != nil {
		d.logger.WithError(err).Error("could not start next round")
		return
	}

	d.round = round
}

// awardLegs increments the durable leg count for each player the settled
// round awarded a leg to
// NOTE: must only be called from the run loop
func (d *Dealer) awardLegs(ctx context.Context, result *playable.RoundResult) {
	for _, playerID := range result.LegWinners {
		seat, ok := d.isSeated(ctx, playerID)
		if !ok {
			d.logger.WithField("playerId", playerID).Error("leg winner is not seated")
			continue
		}

		legs, err := seat.AddLeg(ctx)
		if err != nil {
			d.logger.WithError(err).WithField("playerId", playerID).Error("could not award leg")
			continue
		}

		d.logger.WithFields(logrus.Fields{
			"playerId": playerID,
			"legs":     legs,
		}).Info("leg awarded")
	}
}

// checkGameOver clears a finished game. Chip balances were already applied
// durably at settlement; the end-of-game details are informational.
// NOTE: must only be called from the run loop
func (d *Dealer) checkGameOver() {
	game := d.game
	if game == nil {
		return
	}

	details, isOver := game.GetEndOfGameDetails()
	if !isOver {
		return
	}

	d.logger.WithFields(logrus.Fields{
		"game":        game.Name(),
		"adjustments": details.BalanceAdjustments,
	}).Info("game ended")

	d.game = nil
	d.gameLogChan = nil
	d.round = nil
	d.stateChanged <- stateGameEnded
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key: "gameEnded",
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		client.Send <- data
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendSeatData() {
	seats, err := table.GetSeats(context.Background(), d.table.UUID)
	if err != nil {
		d.logger.WithError(err).Error("could not get seats")
		return
	}

	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	csSeats := make(map[int64]*clientStateSeat)
	for _, seat := range seats {
		csSeats[seat.PlayerID] = &clientStateSeat{
			Seat:        seat,
			IsConnected: connected[seat.PlayerID],
		}
	}

	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "clientState",
			Data: csSeats,
		}
	}
}

// isSeated returns true if the player occupies a seat at the table
func (d *Dealer) isSeated(ctx context.Context, playerID int64) (*table.Seat, bool) {
	seats, err := table.GetSeats(ctx, d.table.UUID)
	if err != nil {
		d.logger.WithError(err).Error("could not get seats")
		return nil, false
	}

	for _, seat := range seats {
		if seat.PlayerID == playerID {
			return seat, true
		}
	}

	return nil, false
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "createGame":
		d.execInRunLoop <- func() {
			if err := d.schedulePendingGame(c, msg); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
		}
	case "cancelGame":
		d.execInRunLoop <- func() {
			if d.pending == nil {
				c.Send <- newErrorResponse(msg.Context, errors.New("no game is waiting to start"))
				return
			}

			d.pending.timer.Stop()
			d.pending = nil
			c.Send <- playable.OK(msg.Context)
			d.stateChanged <- stateClientEvent
		}
	case "terminateGame":
		d.execInRunLoop <- func() {
			d.game = nil
			d.gameLogChan = nil
			d.round = nil
			d.stateChanged <- stateGameEnded
			c.Send <- playable.OK(msg.Context)
		}
	case "playerStatus":
		d.execInRunLoop <- func() {
			ctx := context.Background()
			seat, ok := d.isSeated(ctx, c.playerID)
			if !ok {
				c.Send <- newErrorResponse(msg.Context, errors.New("you are not seated at this table"))
				return
			}

			sittingOut, ok := msg.AdditionalData.GetBool("sittingOut")
			if !ok {
				c.Send <- newErrorResponse(msg.Context, errors.New("sittingOut is not boolean"))
				return
			}

			if err := seat.SetSittingOut(ctx, sittingOut); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
			d.stateChanged <- stateClientEvent
		}
	default:
		d.execInRunLoop <- func() {
			d.gameAction(c, msg)
		}
	}
}

// gameAction forwards an action to the active game. Stay/fold decisions the
// game accepts are then recorded durably so the seat's decision lock holds
// even if the in-memory game goes away. The game validates first: a decision
// sent in the wrong phase must not burn the seat's one durable decision.
// NOTE: must only be called from the run loop
func (d *Dealer) gameAction(c *Client, msg *playable.PayloadIn) {
	game := d.game
	if game == nil {
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send <- newErrorResponse(msg.Context, errors.New("there is no active game"))
		return
	}

	action, updateState, err := game.Action(c.playerID, msg)
	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Error("could not perform action")
		c.Send <- newErrorResponse(msg.Context, err)
		return
	}

	if msg.Action == "decide" {
		if err := d.recordDecision(c, msg); err != nil {
			// the game has already accepted the decision; the mirror is
			// best-effort from here
			d.logger.WithError(err).WithField("client", c.String()).Error("could not record decision")
		}
	}

	if action != nil {
		action.Context = msg.Context
		c.Send <- action
	}

	if updateState {
		d.sendGameData()
	}

	d.checkRound()
	d.checkGameOver()
}

func (d *Dealer) recordDecision(c *Client, msg *playable.PayloadIn) error {
	if d.round == nil || d.round.Status != table.RoundStatusBetting {
		return table.ErrRoundNotBetting
	}

	ctx := context.Background()
	seat, ok := d.isSeated(ctx, c.playerID)
	if !ok {
		return errors.New("you are not seated at this table")
	}

	stay, ok := msg.AdditionalData.GetBool("stay")
	if !ok {
		return errors.New("stay is not boolean")
	}

	decision := table.DecisionFold
	if stay {
		decision = table.DecisionStay
	}

	return seat.RecordDecision(ctx, decision)
}

// schedulePendingGame announces a new game that starts after a short delay
// NOTE: must only be called from the run loop
func (d *Dealer) schedulePendingGame(c *Client, msg *playable.PayloadIn) error {
	if d.game != nil {
		return errors.New("a game is already in progress")
	}

	if d.pending != nil {
		return errors.New("a game is already waiting to start")
	}

	if _, ok := d.isSeated(context.Background(), c.playerID); !ok {
		return errors.New("you are not seated at this table")
	}

	pg, err := newPendingGame(c, msg)
	if err != nil {
		return err
	}

	d.pending = pg
	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "pendingGame",
			Data: pg,
		}
	}

	return nil
}

// startPendingGame deals the scheduled game
// NOTE: must only be called from the run loop
func (d *Dealer) startPendingGame() {
	pg := d.pending
	d.pending = nil
	if pg == nil || d.game != nil {
		return
	}

	ctx := context.Background()
	seats, err := table.GetSeats(ctx, d.table.UUID)
	if err != nil {
		d.logger.WithError(err).Error("could not get seats")
		return
	}

	playerIDs := make([]int64, 0, len(seats))
	for _, seat := range table.EligibleSeats(seats) {
		playerIDs = append(playerIDs, seat.PlayerID)
	}

	factory, err := gamefactory.Get(pg.message.Subject)
	if err != nil {
		d.logger.WithError(err).Error("could not get game factory")
		return
	}

	game, err := factory.CreateGame(d.logger, playerIDs, pg.message.AdditionalData)
	if err != nil {
		d.logger.WithError(err).Error("could not create game")
		pg.client.Send <- newErrorResponse(pg.message.Context, err)
		return
	}

	round, err := d.lifecycle.StartRound(ctx, time.Now().Add(decisionWindow))
	if err != nil {
		d.logger.WithError(err).Error("could not start round")
		pg.client.Send <- newErrorResponse(pg.message.Context, err)
		return
	}

	d.game = game
	d.gameLogChan = game.LogChan()
	d.round = round
	d.lastTick = time.Now()
	d.sendGameData()
}
