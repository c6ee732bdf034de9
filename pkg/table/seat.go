package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
)

// Decision is a seat's stay/fold decision for the current round
type Decision string

// decision states
const (
	DecisionUndecided Decision = "undecided"
	DecisionStay      Decision = "stay"
	DecisionFold      Decision = "fold"
)

// ErrSeatNotFound is returned when a seat cannot be found
var ErrSeatNotFound = errors.New("seat not found")

// Seat is a player's position at a table. Balance is relative to the
// session start and may go negative.
type Seat struct {
	ID             int64     `json:"id"`
	TableUUID      string    `json:"tableUuid"`
	SeatNumber     int       `json:"seatNumber"`
	PlayerID       int64     `json:"playerId"`
	Balance        int       `json:"balance"`
	SittingOut     bool      `json:"sittingOut"`
	IsBot          bool      `json:"isBot"`
	Decision       Decision  `json:"decision"`
	DecisionLocked bool      `json:"decisionLocked"`
	Legs           int       `json:"legs"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

const seatColumns = `id, table_uuid, seat_number, player_id, balance, sitting_out,
is_bot, decision, decision_locked, legs, created, updated`

func getSeatByRow(row db.Scanner) (*Seat, error) {
	var s Seat
	if err := row.Scan(&s.ID, &s.TableUUID, &s.SeatNumber, &s.PlayerID, &s.Balance,
		&s.SittingOut, &s.IsBot, &s.Decision, &s.DecisionLocked, &s.Legs,
		&s.Created, &s.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSeatNotFound
		}

		return nil, err
	}

	return &s, nil
}

// CreateSeat seats a player at a table
func CreateSeat(ctx context.Context, tableUUID string, seatNumber int, playerID int64, isBot bool) (*Seat, error) {
	const query = `
INSERT INTO seats (table_uuid, seat_number, player_id, is_bot)
VALUES ($1, $2, $3, $4)
RETURNING ` + seatColumns

	row := db.Instance().QueryRowContext(ctx, query, tableUUID, seatNumber, playerID, isBot)
	return getSeatByRow(row)
}

// GetSeats returns the seats at a table in seat-number order
func GetSeats(ctx context.Context, tableUUID string) ([]*Seat, error) {
	const query = `SELECT ` + seatColumns + ` FROM seats WHERE table_uuid = $1 ORDER BY seat_number`

	rows, err := db.Instance().QueryContext(ctx, query, tableUUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []*Seat
	for rows.Next() {
		seat, err := getSeatByRow(rows)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	return seats, rows.Err()
}

// AdjustBalance applies a relative chip delta to the seat and records a
// ledger row, in one statement. The delta is applied with
// balance = balance + delta so concurrent adjustments never clobber
// each other.
func (s *Seat) AdjustBalance(ctx context.Context, delta int, roundID int64, reason string) error {
	const query = `SELECT adjust_balance($1, $2, $3, $4, $5)`
	if _, err := db.Instance().ExecContext(ctx, query, s.TableUUID, s.PlayerID, delta, roundID, reason); err != nil {
		return err
	}

	s.Balance += delta
	return nil
}

// RecordDecision locks in a stay/fold decision. Once locked, the decision
// is immutable for the remainder of the round; a second write is rejected.
func (s *Seat) RecordDecision(ctx context.Context, decision Decision) error {
	const query = `
UPDATE seats
SET decision = $1, decision_locked = true, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2 AND decision_locked = false`

	res, err := db.Instance().ExecContext(ctx, query, decision, s.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrDecisionLocked
	}

	s.Decision = decision
	s.DecisionLocked = true
	return nil
}

// ResetDecisions clears every seat's decision at a table ahead of a new round
func ResetDecisions(ctx context.Context, tableUUID string) error {
	const query = `
UPDATE seats
SET decision = 'undecided', decision_locked = false, updated = (NOW() AT TIME ZONE 'utc')
WHERE table_uuid = $1`

	_, err := db.Instance().ExecContext(ctx, query, tableUUID)
	return err
}

// SetSittingOut toggles whether the seat is skipped for dealing and rotation
func (s *Seat) SetSittingOut(ctx context.Context, sittingOut bool) error {
	const query = `
UPDATE seats
SET sitting_out = $1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $2`

	if _, err := db.Instance().ExecContext(ctx, query, sittingOut, s.ID); err != nil {
		return err
	}

	s.SittingOut = sittingOut
	return nil
}

// AddLeg increments the seat's leg count and returns the new total
func (s *Seat) AddLeg(ctx context.Context) (int, error) {
	const query = `
UPDATE seats
SET legs = legs + 1, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $1
RETURNING legs`

	if err := db.Instance().QueryRowContext(ctx, query, s.ID).Scan(&s.Legs); err != nil {
		return 0, err
	}

	return s.Legs, nil
}
