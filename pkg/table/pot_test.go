package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPot(t *testing.T) {
	a := assert.New(t)

	share, rem, err := SplitPot(100, 4)
	a.NoError(err)
	a.Equal(25, share)
	a.Equal(0, rem)

	// remainder is dropped, never awarded unevenly
	share, rem, err = SplitPot(100, 3)
	a.NoError(err)
	a.Equal(33, share)
	a.Equal(1, rem)

	share, rem, err = SplitPot(0, 2)
	a.NoError(err)
	a.Equal(0, share)
	a.Equal(0, rem)

	_, _, err = SplitPot(100, 0)
	a.EqualError(err, "cannot split a pot among 0 winners")

	_, _, err = SplitPot(-5, 2)
	a.EqualError(err, "cannot split a negative pot (-5)")
}

func TestMatchAmount(t *testing.T) {
	a := assert.New(t)

	a.Equal(50, MatchAmount(50, 10, false))
	a.Equal(10, MatchAmount(50, 10, true))
	a.Equal(8, MatchAmount(8, 10, true))
	a.Equal(10, MatchAmount(10, 10, true))
}

func TestAnteTotal(t *testing.T) {
	assert.Equal(t, 75, AnteTotal(25, 3))
	assert.Equal(t, 0, AnteTotal(25, 0))
}
