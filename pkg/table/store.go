package table

import (
	"context"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
)

// SQLStore is the Postgres-backed settlement store for one table
type SQLStore struct {
	tableUUID string
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore returns a settlement store for the given table
func NewSQLStore(tableUUID string) *SQLStore {
	return &SQLStore{tableUUID: tableUUID}
}

// ClaimProcessing performs the betting -> processing compare-and-set
func (s *SQLStore) ClaimProcessing(ctx context.Context, roundID int64) (bool, error) {
	round := &Round{ID: roundID, Status: RoundStatusBetting}
	return round.BeginProcessing(ctx)
}

// AdjustBalance applies a relative chip delta and its ledger row
func (s *SQLStore) AdjustBalance(ctx context.Context, playerID int64, delta int, roundID int64, reason string) error {
	const query = `SELECT adjust_balance($1, $2, $3, $4, $5)`
	_, err := db.Instance().ExecContext(ctx, query, s.tableUUID, playerID, delta, roundID, reason)
	return err
}

// MarkShowdown flags the round for hand reveal
func (s *SQLStore) MarkShowdown(ctx context.Context, roundID int64) error {
	round := &Round{ID: roundID}
	return round.MarkShowdown(ctx)
}

// RecordOutcome appends the descriptive outcome row
func (s *SQLStore) RecordOutcome(ctx context.Context, roundID int64, detail string) error {
	return RecordOutcome(ctx, s.tableUUID, roundID, detail)
}

// MarkSettled finalizes the round
func (s *SQLStore) MarkSettled(ctx context.Context, roundID int64) error {
	round := &Round{ID: roundID}
	return round.MarkSettled(ctx)
}
