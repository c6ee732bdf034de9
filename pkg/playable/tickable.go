package playable

import "time"

// Tickable lets a game advance itself on the dealer's clock. Games use
// ticks to enforce turn deadlines and to pace reveals.
type Tickable interface {
	// Delay is the minimum time between ticks
	Delay() time.Duration

	// Tick is called by the dealer once Delay has elapsed.
	// Return true if clients should be sent updated game data.
	Tick() (bool, error)
}

// Revealer is implemented by games that turn shared cards face up over
// time. The dealer mirrors the count to the durable round so a recovered
// round knows how much was already public.
type Revealer interface {
	// RevealCount is how many shared cards are currently face up
	RevealCount() int
}
