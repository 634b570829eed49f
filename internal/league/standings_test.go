package league

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func twoTeams() (*Team, *Team) {
	return &Team{ID: uuid.New(), Name: "Home"}, &Team{ID: uuid.New(), Name: "Away"}
}

func TestApplyResultHomeWin(t *testing.T) {
	home, away := twoTeams()
	ApplyResult(home, away, Result{HomeScore: 2, AwayScore: 1})

	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, 0, away.Points)

	assert.Equal(t, 2, home.ScoreFor)
	assert.Equal(t, 1, home.ScoreAgainst)
	assert.Equal(t, 1, away.ScoreFor)
	assert.Equal(t, 2, away.ScoreAgainst)
}

func TestApplyResultAwayWin(t *testing.T) {
	home, away := twoTeams()
	ApplyResult(home, away, Result{HomeScore: 0, AwayScore: 2})

	assert.Equal(t, 1, home.Losses)
	assert.Equal(t, 1, away.Wins)
	assert.Equal(t, 3, away.Points)
}

func TestApplyResultTie(t *testing.T) {
	home, away := twoTeams()
	ApplyResult(home, away, Result{HomeScore: 1, AwayScore: 1})

	assert.Equal(t, 1, home.Ties)
	assert.Equal(t, 1, away.Ties)
	assert.Equal(t, 1, home.Points)
	assert.Equal(t, 1, away.Points)
}

func TestApplyResultBothForfeit(t *testing.T) {
	home, away := twoTeams()
	ApplyResult(home, away, Result{HomeForfeit: true, AwayForfeit: true})

	for _, team := range []*Team{home, away} {
		assert.Equal(t, 1, team.Forfeits)
		assert.Equal(t, 1, team.Losses)
		assert.Equal(t, 0, team.Wins)
		assert.Equal(t, 0, team.Points)
	}
}

func TestApplyResultOneSidedForfeit(t *testing.T) {
	home, away := twoTeams()
	ApplyResult(home, away, Result{HomeScore: 2, AwayForfeit: true})

	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 1, away.Forfeits)
	assert.Equal(t, 1, away.Losses)

	// Forfeits take priority over the score comparison: the forfeiting
	// side never wins on score.
	home2, away2 := twoTeams()
	ApplyResult(home2, away2, Result{HomeScore: 0, AwayScore: 9, AwayForfeit: true})
	assert.Equal(t, 1, home2.Wins)
	assert.Equal(t, 1, away2.Losses)
}

func TestCalculatePoints(t *testing.T) {
	assert.Equal(t, 0, CalculatePoints(0, 0, 0, 0))
	assert.Equal(t, 7, CalculatePoints(2, 5, 1, 3))
}
