package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
)

// RoundStatus is the lifecycle state of a round. Transitions are forward
// only: dealing -> betting -> processing -> showdown -> settled. The
// showdown state is optional and exists so clients can reveal hands before
// the final result lands.
type RoundStatus string

// round statuses
const (
	RoundStatusDealing    RoundStatus = "dealing"
	RoundStatusBetting    RoundStatus = "betting"
	RoundStatusProcessing RoundStatus = "processing"
	RoundStatusShowdown   RoundStatus = "showdown"
	RoundStatusSettled    RoundStatus = "settled"
)

// ErrRoundNotFound is returned when a round cannot be found
var ErrRoundNotFound = errors.New("round not found")

// Round is one hand at a table
type Round struct {
	ID          int64        `json:"id"`
	TableUUID   string       `json:"tableUuid"`
	HandNumber  int          `json:"handNumber"`
	Status      RoundStatus  `json:"status"`
	Pot         int          `json:"pot"`
	RevealCount int          `json:"revealCount"`
	Deadline    sql.NullTime `json:"deadline"`
	Created     time.Time    `json:"created"`
	Updated     time.Time    `json:"updated"`
}

const roundColumns = `id, table_uuid, hand_number, status, pot, reveal_count, deadline, created, updated`

func getRoundByRow(row db.Scanner) (*Round, error) {
	var r Round
	if err := row.Scan(&r.ID, &r.TableUUID, &r.HandNumber, &r.Status, &r.Pot,
		&r.RevealCount, &r.Deadline, &r.Created, &r.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRoundNotFound
		}

		return nil, err
	}

	return &r, nil
}

// CreateRound inserts the round for the given hand number. The insert is
// idempotent: a duplicate (table, hand number) pair is a no-op and the
// existing row is returned, so a crashed-and-restarted driver does not
// double-start a round.
func CreateRound(ctx context.Context, tableUUID string, handNumber, pot int) (*Round, error) {
	const insert = `
INSERT INTO rounds (table_uuid, hand_number, pot)
VALUES ($1, $2, $3)
ON CONFLICT (table_uuid, hand_number) DO NOTHING`

	if _, err := db.Instance().ExecContext(ctx, insert, tableUUID, handNumber, pot); err != nil {
		return nil, err
	}

	return GetRound(ctx, tableUUID, handNumber)
}

// GetRound returns the round for a table and hand number
func GetRound(ctx context.Context, tableUUID string, handNumber int) (*Round, error) {
	const query = `SELECT ` + roundColumns + ` FROM rounds WHERE table_uuid = $1 AND hand_number = $2`
	row := db.Instance().QueryRowContext(ctx, query, tableUUID, handNumber)
	return getRoundByRow(row)
}

// OpenBetting moves the round from dealing to betting and stamps the
// decision deadline
func (r *Round) OpenBetting(ctx context.Context, deadline time.Time) error {
	const query = `
UPDATE rounds
SET status = 'betting', deadline = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2 AND status = 'dealing'`

	res, err := db.Instance().ExecContext(ctx, query, deadline, r.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n > 0 {
		r.Status = RoundStatusBetting
		r.Deadline = sql.NullTime{Time: deadline, Valid: true}
	}

	return nil
}

// BeginProcessing attempts the betting -> processing transition. It
// returns true only for the single caller whose compare-and-set landed;
// every other caller gets false and must not settle.
func (r *Round) BeginProcessing(ctx context.Context) (bool, error) {
	const query = `
UPDATE rounds
SET status = 'processing', updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $1 AND status = 'betting'`

	res, err := db.Instance().ExecContext(ctx, query, r.ID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if n == 0 {
		return false, nil
	}

	r.Status = RoundStatusProcessing
	return true, nil
}

// MarkShowdown flags the round for hand reveal. Only valid from processing.
func (r *Round) MarkShowdown(ctx context.Context) error {
	const query = `
UPDATE rounds
SET status = 'showdown', updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $1 AND status = 'processing'`

	if _, err := db.Instance().ExecContext(ctx, query, r.ID); err != nil {
		return err
	}

	r.Status = RoundStatusShowdown
	return nil
}

// MarkSettled finalizes the round
func (r *Round) MarkSettled(ctx context.Context) error {
	const query = `
UPDATE rounds
SET status = 'settled', updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $1 AND status IN ('processing', 'showdown')`

	if _, err := db.Instance().ExecContext(ctx, query, r.ID); err != nil {
		return err
	}

	r.Status = RoundStatusSettled
	return nil
}

// SetRevealCount records how many community cards are face up
func (r *Round) SetRevealCount(ctx context.Context, n int) error {
	const query = `
UPDATE rounds
SET reveal_count = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, n, r.ID); err != nil {
		return err
	}

	r.RevealCount = n
	return nil
}

// GetStuckRounds returns rounds that have sat in processing longer than
// maxAge. These are rounds whose settler crashed after winning the
// compare-and-set but before finishing payouts; the recovery sweep forces
// them to settled with no payout.
func GetStuckRounds(ctx context.Context, maxAge time.Duration) ([]*Round, error) {
	const query = `
SELECT ` + roundColumns + `
FROM rounds
WHERE status = 'processing' AND updated < $1
ORDER BY updated`

	cutoff := time.Now().UTC().Add(-maxAge)
	rows, err := db.Instance().QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stuck []*Round
	for rows.Next() {
		round, err := getRoundByRow(rows)
		if err != nil {
			return nil, err
		}

		stuck = append(stuck, round)
	}

	return stuck, rows.Err()
}
