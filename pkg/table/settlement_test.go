package table

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jeremyhappach/rule-your-poker-sub003/pkg/playable"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory Store with the same compare-and-set semantics
// as the Postgres implementation
type memStore struct {
	mu       sync.Mutex
	status   RoundStatus
	balances map[int64]int
	ledger   []LedgerEntry
	outcome  string
	showdown bool
}

func newMemStore() *memStore {
	return &memStore{
		status:   RoundStatusBetting,
		balances: make(map[int64]int),
	}
}

func (m *memStore) ClaimProcessing(_ context.Context, _ int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status != RoundStatusBetting {
		return false, nil
	}

	m.status = RoundStatusProcessing
	return true, nil
}

func (m *memStore) AdjustBalance(_ context.Context, playerID int64, delta int, roundID int64, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[playerID] += delta
	m.ledger = append(m.ledger, LedgerEntry{RoundID: roundID, PlayerID: playerID, Delta: delta, Reason: reason})
	return nil
}

func (m *memStore) MarkShowdown(_ context.Context, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.showdown = true
	m.status = RoundStatusShowdown
	return nil
}

func (m *memStore) RecordOutcome(_ context.Context, _ int64, detail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outcome = detail
	return nil
}

func (m *memStore) MarkSettled(_ context.Context, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.status = RoundStatusSettled
	return nil
}

// fakeGame is a RoundSettler with a canned result
type fakeGame struct {
	ready   bool
	result  *playable.RoundResult
	err     error
	settles int32
}

func (f *fakeGame) RoundReady() bool {
	return f.ready
}

func (f *fakeGame) SettleRound() (*playable.RoundResult, error) {
	atomic.AddInt32(&f.settles, 1)
	return f.result, f.err
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSettler_SettleIfReady(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	store := newMemStore()
	game := &fakeGame{
		ready: true,
		result: &playable.RoundResult{
			Winners: map[int64]int{1: 50},
			Losers:  map[int64]int{2: 25, 3: 25},
			NextPot: 50,
			Detail:  "player 1 wins the pot",
		},
	}

	settler := NewSettler(store, discardLogger())
	result, err := settler.SettleIfReady(ctx, 7, game)
	a.NoError(err)
	a.NotNil(result)
	a.Equal(50, result.NextPot)

	a.Equal(RoundStatusSettled, store.status)
	a.True(store.showdown)
	a.Equal("player 1 wins the pot", store.outcome)
	a.Equal(50, store.balances[1])
	a.Equal(-25, store.balances[2])
	a.Equal(-25, store.balances[3])

	// redundant call after settlement is a no-op
	result, err = settler.SettleIfReady(ctx, 7, game)
	a.NoError(err)
	a.Nil(result)
	a.Equal(int32(1), atomic.LoadInt32(&game.settles))
}

func TestSettler_SettleIfReady_notReady(t *testing.T) {
	a := assert.New(t)

	store := newMemStore()
	game := &fakeGame{ready: false}

	settler := NewSettler(store, discardLogger())
	result, err := settler.SettleIfReady(context.Background(), 7, game)
	a.NoError(err)
	a.Nil(result)
	a.Equal(RoundStatusBetting, store.status)
	a.Equal(int32(0), atomic.LoadInt32(&game.settles))
}

// concurrent settles on the same round must perform payouts exactly once
func TestSettler_SettleIfReady_concurrent(t *testing.T) {
	a := assert.New(t)

	store := newMemStore()
	game := &fakeGame{
		ready: true,
		result: &playable.RoundResult{
			Winners: map[int64]int{1: 100},
			Losers:  map[int64]int{2: 100},
			Detail:  "player 1 wins the pot",
		},
	}

	settler := NewSettler(store, discardLogger())

	const n = 50
	results := make(chan *playable.RoundResult, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := settler.SettleIfReady(context.Background(), 7, game)
			a.NoError(err)
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	settled := 0
	for result := range results {
		if result != nil {
			settled++
		}
	}

	a.Equal(1, settled)
	a.Equal(int32(1), atomic.LoadInt32(&game.settles))
	a.Equal(100, store.balances[1])
	a.Equal(-100, store.balances[2])
	a.Equal(RoundStatusSettled, store.status)
}

func TestSettler_SettleIfReady_gameError(t *testing.T) {
	a := assert.New(t)

	store := newMemStore()
	game := &fakeGame{ready: true, err: errors.New("bad state")}

	settler := NewSettler(store, discardLogger())
	result, err := settler.SettleIfReady(context.Background(), 7, game)
	a.EqualError(err, "could not settle round 7: bad state")
	a.Nil(result)

	// the round stays claimed so the recovery sweep picks it up
	a.Equal(RoundStatusProcessing, store.status)
	a.Empty(store.balances)
}

func TestSettler_ForceSettle(t *testing.T) {
	a := assert.New(t)
	ctx := context.Background()

	store := newMemStore()
	store.status = RoundStatusProcessing

	// the crashed settler may have applied some payouts already
	a.NoError(store.AdjustBalance(ctx, 1, 100, 7, ReasonPayout))

	settler := NewSettler(store, discardLogger())
	a.NoError(settler.ForceSettle(ctx, 7))

	// no further payouts: fail safe, never double-pay
	a.Equal(100, store.balances[1])
	a.Equal(RoundStatusSettled, store.status)
	a.Equal("round abandoned; settled without payout", store.outcome)
}

func TestSettler_allFoldedNoShowdown(t *testing.T) {
	a := assert.New(t)

	store := newMemStore()
	game := &fakeGame{
		ready: true,
		result: &playable.RoundResult{
			Taxed:   map[int64]int{1: 5, 2: 5},
			NextPot: 60,
			Detail:  "everyone folded",
		},
	}

	settler := NewSettler(store, discardLogger())
	result, err := settler.SettleIfReady(context.Background(), 7, game)
	a.NoError(err)
	a.NotNil(result)

	// no hands were compared, so no showdown reveal
	a.False(store.showdown)
	a.Equal(RoundStatusSettled, store.status)
	a.Equal(-5, store.balances[1])
	a.Equal(-5, store.balances[2])
}
