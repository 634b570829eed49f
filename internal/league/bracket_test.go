package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTourneyNumberFourTeams(t *testing.T) {
	// Matches 1 and 2 both feed the final at 3.
	next, ok := NextTourneyNumber(4, 1)
	assert.True(t, ok)
	assert.Equal(t, 3, next)

	next, ok = NextTourneyNumber(4, 2)
	assert.True(t, ok)
	assert.Equal(t, 3, next)

	// The final has no successor.
	_, ok = NextTourneyNumber(4, 3)
	assert.False(t, ok)
}

func TestNextTourneyNumberEightTeams(t *testing.T) {
	tests := []struct {
		tourneyNumber int
		next          int
	}{
		{1, 5}, {2, 5}, {3, 6}, {4, 6}, {5, 7}, {6, 7},
	}
	for _, tt := range tests {
		next, ok := NextTourneyNumber(8, tt.tourneyNumber)
		assert.True(t, ok, "match %d", tt.tourneyNumber)
		assert.Equal(t, tt.next, next, "match %d", tt.tourneyNumber)
	}

	_, ok := NextTourneyNumber(8, 7)
	assert.False(t, ok)
}

func TestWinnerTakesHomeSlot(t *testing.T) {
	assert.True(t, WinnerTakesHomeSlot(1))
	assert.False(t, WinnerTakesHomeSlot(2))
	assert.True(t, WinnerTakesHomeSlot(5))
}
