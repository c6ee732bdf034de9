package table

import (
	"context"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/sirupsen/logrus"
)

// Lifecycle drives a table through its round loop: start a round, wait for
// settlement, advance to the next round or end the session.
type Lifecycle struct {
	table  *Table
	logger logrus.FieldLogger

	// rollover means the previous round tied: the pot carries and the next
	// round is played without a fresh ante or rotation
	rollover bool
}

// NewLifecycle returns a lifecycle driver for the table
func NewLifecycle(t *Table, logger logrus.FieldLogger) *Lifecycle {
	return &Lifecycle{
		table:  t,
		logger: logger,
	}
}

// StartRound begins the current hand: creates the round row, collects the
// ante from every eligible seat, and opens betting with the given decision
// deadline. Calling it twice for the same hand number is a no-op for the
// duplicate; a crashed driver can safely restart here without double-anteing
// or double-dealing.
func (l *Lifecycle) StartRound(ctx context.Context, deadline time.Time) (*Round, error) {
	t := l.table
	if t.SessionEnded {
		return nil, UserError("the session has ended")
	}

	seats, err := GetSeats(ctx, t.UUID)
	if err != nil {
		return nil, err
	}

	eligible := EligibleSeats(seats)
	if len(eligible) < 2 {
		return nil, UserError("at least two active seats are required")
	}

	pot := t.Pot
	if !l.rollover {
		pot += AnteTotal(t.Ante, len(eligible))
	}

	round, err := CreateRound(ctx, t.UUID, t.HandNumber, pot)
	if err != nil {
		return nil, err
	}

	if !l.rollover {
		entries, err := GetLedger(ctx, round.ID)
		if err != nil {
			return nil, err
		}

		// antes already collected if the ledger has rows for this round
		if len(entries) == 0 {
			for _, seat := range eligible {
				if err := seat.AdjustBalance(ctx, -t.Ante, round.ID, ReasonAnte); err != nil {
					return nil, err
				}
			}
		}
	}

	if round.Status == RoundStatusDealing {
		if err := round.OpenBetting(ctx, deadline); err != nil {
			return nil, err
		}
	}

	l.logger.WithFields(logrus.Fields{
		"table": t.UUID,
		"hand":  t.HandNumber,
		"pot":   round.Pot,
	}).Info("round started")

	return round, nil
}

// AdvanceToNextRound applies a settled round's result to the table: carries
// the next pot forward, rotates the buck and deal, clears decisions, and
// bumps the hand number. It returns true when the session is over, either
// because the game ended or the table was closed.
func (l *Lifecycle) AdvanceToNextRound(ctx context.Context, result *playable.RoundResult) (done bool, err error) {
	t := l.table
	t.Pot = result.NextPot

	if result.GameOver || t.SessionEnded {
		if err := t.EndSession(ctx); err != nil {
			return false, err
		}

		if err := t.Save(ctx); err != nil {
			return false, err
		}

		l.logger.WithField("table", t.UUID).Info("session ended")
		return true, nil
	}

	seats, err := GetSeats(ctx, t.UUID)
	if err != nil {
		return false, err
	}

	l.rollover = result.Rollover
	if !result.Rollover {
		t.BuckSeat = NextRotationSeat(seats, t.BuckSeat)
		t.DealerSeat = NextRotationSeat(seats, t.DealerSeat)
	}

	t.HandNumber++
	if err := ResetDecisions(ctx, t.UUID); err != nil {
		return false, err
	}

	return false, t.Save(ctx)
}
