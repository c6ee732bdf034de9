package table

import "time"

// DecisionMode controls how stay/fold decisions are collected within a round
type DecisionMode int

// decision modes
const (
	// DecisionSimultaneous collects every decision at once, revealed together
	DecisionSimultaneous DecisionMode = iota

	// DecisionSequential collects decisions clockwise from the buck
	DecisionSequential
)

// EligibleSeats returns the seats participating in the current round, in
// seat-number order. Sitting-out seats never act.
func EligibleSeats(seats []*Seat) []*Seat {
	eligible := make([]*Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.SittingOut {
			continue
		}

		eligible = append(eligible, seat)
	}

	return eligible
}

// AllDecided reports whether every eligible seat has locked a decision
func AllDecided(seats []*Seat) bool {
	for _, seat := range EligibleSeats(seats) {
		if !seat.DecisionLocked {
			return false
		}
	}

	return true
}

// NextToAct returns the seat whose turn it is under sequential decisions:
// the first undecided eligible seat clockwise from (and excluding) the
// buck seat, wrapping around. It is a pure function of seat state, so
// calling it twice without a decision landing cannot skip a seat. Returns
// nil when everyone has decided.
func NextToAct(seats []*Seat, buckSeat int) *Seat {
	eligible := EligibleSeats(seats)
	if len(eligible) == 0 {
		return nil
	}

	start := 0
	for i, seat := range eligible {
		if seat.SeatNumber > buckSeat {
			start = i
			break
		}
	}

	for i := 0; i < len(eligible); i++ {
		seat := eligible[(start+i)%len(eligible)]
		if !seat.DecisionLocked {
			return seat
		}
	}

	return nil
}

// ExpiredSeats returns the seats to auto-fold once the deadline passes:
// every undecided eligible seat under simultaneous decisions, or just the
// seat on the clock under sequential decisions. Before the deadline it
// returns nothing.
func ExpiredSeats(mode DecisionMode, seats []*Seat, buckSeat int, deadline, now time.Time) []*Seat {
	if now.Before(deadline) {
		return nil
	}

	if mode == DecisionSequential {
		if seat := NextToAct(seats, buckSeat); seat != nil {
			return []*Seat{seat}
		}

		return nil
	}

	var expired []*Seat
	for _, seat := range EligibleSeats(seats) {
		if !seat.DecisionLocked {
			expired = append(expired, seat)
		}
	}

	return expired
}

// NextRotationSeat advances the buck (or deal) clockwise from the given
// seat number to the next seat that is occupied, active, and human. On a
// table with only bots remaining it falls back to any active seat, and if
// nothing is active it stays put.
func NextRotationSeat(seats []*Seat, from int) int {
	if seat := nextSeat(seats, from, func(s *Seat) bool {
		return !s.SittingOut && !s.IsBot
	}); seat != nil {
		return seat.SeatNumber
	}

	if seat := nextSeat(seats, from, func(s *Seat) bool {
		return !s.SittingOut
	}); seat != nil {
		return seat.SeatNumber
	}

	return from
}

// nextSeat finds the first seat clockwise after "from" matching the
// predicate, wrapping around. Assumes seats are in seat-number order.
func nextSeat(seats []*Seat, from int, ok func(*Seat) bool) *Seat {
	for _, seat := range seats {
		if seat.SeatNumber > from && ok(seat) {
			return seat
		}
	}

	for _, seat := range seats {
		if seat.SeatNumber <= from && ok(seat) {
			return seat
		}
	}

	return nil
}
