package table

import (
	"context"
	"fmt"
	"sort"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the settlement coordinator drives. The
// production implementation is backed by Postgres; tests use an in-memory
// compare-and-set store.
type Store interface {
	// ClaimProcessing performs the betting -> processing transition and
	// returns true only for the single caller whose update landed.
	ClaimProcessing(ctx context.Context, roundID int64) (bool, error)

	// AdjustBalance applies a relative chip delta to a player and appends
	// the matching ledger row.
	AdjustBalance(ctx context.Context, playerID int64, delta int, roundID int64, reason string) error

	// MarkShowdown flags the round for hand reveal
	MarkShowdown(ctx context.Context, roundID int64) error

	// RecordOutcome appends the descriptive outcome ledger row
	RecordOutcome(ctx context.Context, roundID int64, detail string) error

	// MarkSettled finalizes the round
	MarkSettled(ctx context.Context, roundID int64) error
}

// Settler settles rounds exactly once. Any number of triggers may race to
// settle the same round (the last decision landing, a deadline expiry, a
// reconnect, the recovery sweep); the processing claim guarantees only one
// of them performs payouts.
type Settler struct {
	store  Store
	logger logrus.FieldLogger
}

// NewSettler returns a Settler backed by the given store
func NewSettler(store Store, logger logrus.FieldLogger) *Settler {
	return &Settler{
		store:  store,
		logger: logger,
	}
}

// SettleIfReady settles the round if the game reports every decision is in.
// It is safe to call redundantly and concurrently; losers of the processing
// claim return (nil, nil) without side effects. A nil result with a nil
// error means this call did not settle the round.
func (s *Settler) SettleIfReady(ctx context.Context, roundID int64, game playable.RoundSettler) (*playable.RoundResult, error) {
	if !game.RoundReady() {
		return nil, nil
	}

	claimed, err := s.store.ClaimProcessing(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("could not claim round %d: %w", roundID, err)
	}

	if !claimed {
		return nil, nil
	}

	return s.settle(ctx, roundID, game)
}

// ForceSettle abandons a round stuck in processing, finalizing it with no
// payout. The original settler may have crashed anywhere between claiming
// the round and finishing payouts, so re-running it risks a double payout;
// failing safe means the pot for that round is forfeit.
func (s *Settler) ForceSettle(ctx context.Context, roundID int64) error {
	s.logger.WithField("round", roundID).Warn("force-settling abandoned round without payout")

	if err := s.store.RecordOutcome(ctx, roundID, "round abandoned; settled without payout"); err != nil {
		return err
	}

	return s.store.MarkSettled(ctx, roundID)
}

func (s *Settler) settle(ctx context.Context, roundID int64, game playable.RoundSettler) (*playable.RoundResult, error) {
	result, err := game.SettleRound()
	if err != nil {
		// the round stays in processing so the recovery sweep retries it
		return nil, fmt.Errorf("could not settle round %d: %w", roundID, err)
	}

	if err := s.applyAdjustments(ctx, roundID, result); err != nil {
		return nil, err
	}

	if len(result.Winners) > 0 || len(result.Losers) > 0 {
		if err := s.store.MarkShowdown(ctx, roundID); err != nil {
			return nil, err
		}
	}

	if err := s.store.RecordOutcome(ctx, roundID, result.Detail); err != nil {
		return nil, err
	}

	if err := s.store.MarkSettled(ctx, roundID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"round":   roundID,
		"nextPot": result.NextPot,
		"detail":  result.Detail,
	}).Info("round settled")

	return result, nil
}

// applyAdjustments writes every chip delta in deterministic player order
func (s *Settler) applyAdjustments(ctx context.Context, roundID int64, result *playable.RoundResult) error {
	// winners are credited; losers and taxed seats are debited
	groups := []struct {
		amounts map[int64]int
		reason  string
		sign    int
	}{
		{result.Winners, ReasonPayout, 1},
		{result.Losers, ReasonPenalty, -1},
		{result.Taxed, ReasonTax, -1},
	}

	for _, group := range groups {
		for _, playerID := range sortedPlayerIDs(group.amounts) {
			delta := group.sign * group.amounts[playerID]
			if delta == 0 {
				continue
			}

			if err := s.store.AdjustBalance(ctx, playerID, delta, roundID, group.reason); err != nil {
				return fmt.Errorf("could not adjust balance for player %d: %w", playerID, err)
			}
		}
	}

	return nil
}

func sortedPlayerIDs(deltas map[int64]int) []int64 {
	ids := make([]int64, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
