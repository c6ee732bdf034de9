package table

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/db"
)

// GameType identifies which game a table is running
type GameType string

// game types
const (
	GameTypeHolm           GameType = "holm"
	GameTypeThreeFiveSeven GameType = "three-five-seven"
	GameTypeCribbage       GameType = "cribbage"
	GameTypeHorses         GameType = "horses"
	GameTypeYacht          GameType = "yacht"
)

// ErrTableNotFound is returned when a table cannot be found by UUID
var ErrTableNotFound = errors.New("table not found")

// Table represents a card table and its wager configuration. All chip
// amounts are integers.
type Table struct {
	UUID           string    `json:"uuid"`
	Name           string    `json:"name"`
	GameType       GameType  `json:"gameType"`
	Ante           int       `json:"ante"`
	LegValue       int       `json:"legValue"`
	PotMax         int       `json:"potMax"`
	PotMaxEnabled  bool      `json:"potMaxEnabled"`
	Tax            int       `json:"tax"`
	TaxEnabled     bool      `json:"taxEnabled"`
	GhostCardCount int       `json:"ghostCardCount"`
	LegsToWin      int       `json:"legsToWin"`
	DealerSeat     int       `json:"dealerSeat"`
	BuckSeat       int       `json:"buckSeat"`
	Pot            int       `json:"pot"`
	HandNumber     int       `json:"handNumber"`
	SessionEnded   bool      `json:"sessionEnded"`
	Created        time.Time `json:"created"`
	Updated        time.Time `json:"updated"`
}

const tableColumns = `uuid, name, game_type, ante, leg_value, pot_max, pot_max_enabled,
tax, tax_enabled, ghost_card_count, legs_to_win, dealer_seat, buck_seat, pot,
hand_number, session_ended, created, updated`

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	if err := row.Scan(&t.UUID, &t.Name, &t.GameType, &t.Ante, &t.LegValue, &t.PotMax,
		&t.PotMaxEnabled, &t.Tax, &t.TaxEnabled, &t.GhostCardCount, &t.LegsToWin,
		&t.DealerSeat, &t.BuckSeat, &t.Pot, &t.HandNumber, &t.SessionEnded,
		&t.Created, &t.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTableNotFound
		}

		return nil, err
	}

	return &t, nil
}

// TableOptions are the configurable knobs for a new table
type TableOptions struct {
	Name           string
	GameType       GameType
	Ante           int
	LegValue       int
	PotMax         int
	PotMaxEnabled  bool
	Tax            int
	TaxEnabled     bool
	GhostCardCount int
	LegsToWin      int
}

// CreateTable creates a new table record
func CreateTable(ctx context.Context, opts TableOptions) (*Table, error) {
	const query = `
INSERT INTO tables (uuid, name, game_type, ante, leg_value, pot_max, pot_max_enabled,
	tax, tax_enabled, ghost_card_count, legs_to_win)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + tableColumns

	id := uuid.New().String()
	row := db.Instance().QueryRowContext(ctx, query, id, opts.Name, opts.GameType,
		opts.Ante, opts.LegValue, opts.PotMax, opts.PotMaxEnabled, opts.Tax,
		opts.TaxEnabled, opts.GhostCardCount, opts.LegsToWin)

	return getTableByRow(row)
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, id string) (*Table, error) {
	const query = `SELECT ` + tableColumns + ` FROM tables WHERE uuid = $1`
	row := db.Instance().QueryRowContext(ctx, query, id)
	return getTableByRow(row)
}

// Save persists the mutable table fields
func (t *Table) Save(ctx context.Context) error {
	const query = `
UPDATE tables
SET dealer_seat = $1, buck_seat = $2, pot = $3, hand_number = $4, session_ended = $5,
	updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $6`

	_, err := db.Instance().ExecContext(ctx, query, t.DealerSeat, t.BuckSeat, t.Pot,
		t.HandNumber, t.SessionEnded, t.UUID)
	return err
}

// EndSession marks the table's session as ended. Once ended, no new rounds
// may start.
func (t *Table) EndSession(ctx context.Context) error {
	const query = `
UPDATE tables
SET session_ended = true, updated = (NOW() AT TIME ZONE 'utc')
WHERE uuid = $1`

	if _, err := db.Instance().ExecContext(ctx, query, t.UUID); err != nil {
		return err
	}

	t.SessionEnded = true
	return nil
}
