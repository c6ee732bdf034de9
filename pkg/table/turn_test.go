package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func seat(number int, opts ...func(*Seat)) *Seat {
	s := &Seat{
		SeatNumber: number,
		PlayerID:   int64(number),
		Decision:   DecisionUndecided,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func sittingOut(s *Seat) { s.SittingOut = true }
func bot(s *Seat)        { s.IsBot = true }
func decided(s *Seat) {
	s.Decision = DecisionStay
	s.DecisionLocked = true
}

func TestEligibleSeats(t *testing.T) {
	seats := []*Seat{seat(1), seat(2, sittingOut), seat(3)}

	eligible := EligibleSeats(seats)
	assert.Len(t, eligible, 2)
	assert.Equal(t, 1, eligible[0].SeatNumber)
	assert.Equal(t, 3, eligible[1].SeatNumber)
}

func TestAllDecided(t *testing.T) {
	a := assert.New(t)

	seats := []*Seat{seat(1, decided), seat(2), seat(3, decided)}
	a.False(AllDecided(seats))

	// a sitting-out seat never blocks the round
	seats = []*Seat{seat(1, decided), seat(2, sittingOut), seat(3, decided)}
	a.True(AllDecided(seats))
}

func TestNextToAct(t *testing.T) {
	a := assert.New(t)

	seats := []*Seat{seat(1), seat(2), seat(3), seat(4)}

	// first undecided seat clockwise from the buck
	a.Equal(3, NextToAct(seats, 2).SeatNumber)

	// wraps past the highest seat number
	a.Equal(1, NextToAct(seats, 4).SeatNumber)

	// skips decided seats
	seats = []*Seat{seat(1), seat(2), seat(3, decided), seat(4)}
	a.Equal(4, NextToAct(seats, 2).SeatNumber)

	// pure function of state: asking twice cannot skip anyone
	a.Equal(4, NextToAct(seats, 2).SeatNumber)

	// sitting-out seats are passed over
	seats = []*Seat{seat(1), seat(2), seat(3, sittingOut), seat(4)}
	a.Equal(4, NextToAct(seats, 2).SeatNumber)

	// everyone decided
	seats = []*Seat{seat(1, decided), seat(2, decided)}
	a.Nil(NextToAct(seats, 1))

	a.Nil(NextToAct(nil, 1))
}

func TestExpiredSeats(t *testing.T) {
	a := assert.New(t)

	deadline := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	before := deadline.Add(-time.Second)
	after := deadline.Add(time.Second)

	seats := []*Seat{seat(1, decided), seat(2), seat(3), seat(4, sittingOut)}

	// nothing expires before the deadline
	a.Empty(ExpiredSeats(DecisionSimultaneous, seats, 1, deadline, before))
	a.Empty(ExpiredSeats(DecisionSequential, seats, 1, deadline, before))

	// simultaneous: every undecided eligible seat folds
	expired := ExpiredSeats(DecisionSimultaneous, seats, 1, deadline, after)
	a.Len(expired, 2)
	a.Equal(2, expired[0].SeatNumber)
	a.Equal(3, expired[1].SeatNumber)

	// sequential: only the seat on the clock folds
	expired = ExpiredSeats(DecisionSequential, seats, 1, deadline, after)
	a.Len(expired, 1)
	a.Equal(2, expired[0].SeatNumber)

	// the deadline instant itself counts as expired
	a.Len(ExpiredSeats(DecisionSimultaneous, seats, 1, deadline, deadline), 2)
}

func TestNextRotationSeat(t *testing.T) {
	a := assert.New(t)

	seats := []*Seat{seat(1), seat(2), seat(3)}
	a.Equal(2, NextRotationSeat(seats, 1))
	a.Equal(1, NextRotationSeat(seats, 3))

	// skips sitting-out seats and bots
	seats = []*Seat{seat(1), seat(2, sittingOut), seat(3, bot), seat(4)}
	a.Equal(4, NextRotationSeat(seats, 1))
	a.Equal(1, NextRotationSeat(seats, 4))

	// bot-only table falls back to active bots
	seats = []*Seat{seat(1, bot), seat(2, bot)}
	a.Equal(2, NextRotationSeat(seats, 1))

	// nothing active: stay put
	seats = []*Seat{seat(1, sittingOut), seat(2, sittingOut)}
	a.Equal(1, NextRotationSeat(seats, 1))
}
