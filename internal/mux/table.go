package mux

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/table"
	"github.com/gorilla/mux"
)

type postTablePayload struct {
	Name           string `json:"name"`
	GameType       string `json:"gameType"`
	Ante           int    `json:"ante"`
	LegValue       int    `json:"legValue"`
	PotMax         int    `json:"potMax"`
	Tax            int    `json:"tax"`
	GhostCardCount int    `json:"ghostCardCount"`
	LegsToWin      int    `json:"legsToWin"`
}

var validGameTypes = map[table.GameType]bool{
	table.GameTypeHolm:           true,
	table.GameTypeThreeFiveSeven: true,
	table.GameTypeCribbage:       true,
	table.GameTypeHorses:         true,
	table.GameTypeYacht:          true,
}

func (m *Mux) postTable() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		gameType := table.GameType(pp.GameType)
		if !validGameTypes[gameType] {
			writeJSONError(w, http.StatusBadRequest, errors.New("unknown game type"))
			return
		}

		if pp.Ante < 0 || pp.LegValue < 0 || pp.PotMax < 0 || pp.Tax < 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("chip amounts cannot be negative"))
			return
		}

		tbl, err := table.CreateTable(r.Context(), table.TableOptions{
			Name:           pp.Name,
			GameType:       gameType,
			Ante:           pp.Ante,
			LegValue:       pp.LegValue,
			PotMax:         pp.PotMax,
			PotMaxEnabled:  pp.PotMax > 0,
			Tax:            pp.Tax,
			TaxEnabled:     pp.Tax > 0,
			GhostCardCount: pp.GhostCardCount,
			LegsToWin:      pp.LegsToWin,
		})
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		writeJSON(w, http.StatusCreated, tbl)
	}
}

type getTableUUIDResponse struct {
	*table.Table
	Seats []*table.Seat `json:"seats"`
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)
		seats, err := table.GetSeats(r.Context(), tbl.UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, getTableUUIDResponse{
			Table: tbl,
			Seats: seats,
		})
	})
}

type postSeatPayload struct {
	SeatNumber int  `json:"seatNumber"`
	IsBot      bool `json:"isBot"`
}

func (m *Mux) postTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := r.Context().Value(ctxPlayerIDKey).(int64)
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		var pp postSeatPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.SeatNumber < 1 || pp.SeatNumber > 7 {
			writeJSONError(w, http.StatusBadRequest, errors.New("seat number must be 1-7"))
			return
		}

		seat, err := table.CreateSeat(r.Context(), tbl.UUID, pp.SeatNumber, playerID, pp.IsBot)
		if err != nil {
			var ue table.UserError
			if errors.As(err, &ue) {
				writeJSONError(w, http.StatusBadRequest, err)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}

			return
		}

		writeJSON(w, http.StatusCreated, seat)
	})
}

func (m *Mux) getTableUUIDRoundLedger() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		hand, err := parseIntVar(r, "hand")
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		round, err := table.GetRound(r.Context(), tbl.UUID, hand)
		if err != nil {
			if errors.Is(err, table.ErrRoundNotFound) {
				writeJSONError(w, http.StatusNotFound, nil)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		entries, err := table.GetLedger(r.Context(), round.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, entries)
	})
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := mux.Vars(r)["uuid"]
		tbl, err := table.GetTableByUUID(r.Context(), uuid)
		if err != nil {
			if errors.Is(err, table.ErrTableNotFound) {
				writeJSONError(w, http.StatusNotFound, nil)
			} else {
				writeJSONError(w, http.StatusInternalServerError, err)
			}
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
