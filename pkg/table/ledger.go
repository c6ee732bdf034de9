package table

import (
	"context"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
)

// LedgerEntry is one append-only row in the chip ledger. Per-seat deltas
// are written by adjust_balance; outcome rows (Delta == 0, PlayerID == 0)
// describe the round result.
type LedgerEntry struct {
	ID        int64     `json:"id"`
	TableUUID string    `json:"tableUuid"`
	RoundID   int64     `json:"roundId"`
	PlayerID  int64     `json:"playerId"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	Detail    string    `json:"detail"`
	Created   time.Time `json:"created"`
}

// ledger reasons
const (
	ReasonAnte    = "ante"
	ReasonPayout  = "payout"
	ReasonPenalty = "penalty"
	ReasonTax     = "tax"
	ReasonOutcome = "outcome"
)

// RecordOutcome appends a descriptive outcome row for a settled round
func RecordOutcome(ctx context.Context, tableUUID string, roundID int64, detail string) error {
	const query = `
INSERT INTO ledger (table_uuid, round_id, player_id, delta, reason, detail)
VALUES ($1, $2, 0, 0, $3, $4)`

	_, err := db.Instance().ExecContext(ctx, query, tableUUID, roundID, ReasonOutcome, detail)
	return err
}

// GetLedger returns a round's ledger rows in insertion order
func GetLedger(ctx context.Context, roundID int64) ([]*LedgerEntry, error) {
	const query = `
SELECT id, table_uuid, round_id, player_id, delta, reason, detail, created
FROM ledger
WHERE round_id = $1
ORDER BY id`

	rows, err := db.Instance().QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.ID, &e.TableUUID, &e.RoundID, &e.PlayerID, &e.Delta,
			&e.Reason, &e.Detail, &e.Created); err != nil {
			return nil, err
		}

		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
