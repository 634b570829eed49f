package league

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func championGame(seriesLength int, scoutingRequired bool) *Game {
	return &Game{
		ID:               uuid.New(),
		LevelOfPlay:      LevelChampion,
		SeriesLength:     seriesLength,
		ScoutingRequired: scoutingRequired,
	}
}

func surveyPair() (*Report, *Report) {
	home := &Report{
		ID:                 uuid.New(),
		TeamScore:          2,
		OtherScore:         1,
		OtherSportsmanship: 5,
		OtherOnTime:        true,
		RosterCorrect:      AttestYes,
		ScoutingCorrect:    AttestYes,
		TeamRoster:         "Roster A",
	}
	away := &Report{
		ID:                 uuid.New(),
		TeamScore:          1,
		OtherScore:         2,
		OtherSportsmanship: 4,
		OtherOnTime:        true,
		RosterCorrect:      AttestYes,
		ScoutingCorrect:    AttestYes,
		TeamRoster:         "Roster B",
	}
	return home, away
}

func TestReconcileOwnClaims(t *testing.T) {
	home, away := surveyPair()
	res := Reconcile(championGame(3, true), home, away)

	// Scores and roster text come from each side's own survey.
	assert.Equal(t, 2, res.HomeScore)
	assert.Equal(t, 1, res.AwayScore)
	assert.Equal(t, "Roster A", res.HomeRoster)
	assert.Equal(t, "Roster B", res.AwayRoster)

	// Sportsmanship and punctuality come from the opposing survey.
	assert.Equal(t, 4, res.HomeSportsmanship)
	assert.Equal(t, 5, res.AwaySportsmanship)
	assert.True(t, res.HomeOnTime)
	assert.True(t, res.AwayOnTime)
}

func TestReconcilePOGBothDirections(t *testing.T) {
	home, away := surveyPair()
	playerA, playerB := uuid.New(), uuid.New()
	home.TeamPOGID = &playerA
	home.OtherPOGID = &playerB
	away.TeamPOGID = &playerB
	away.OtherPOGID = &playerA

	res := Reconcile(championGame(3, false), home, away)

	require.NotNil(t, res.HomePOGID)
	assert.Equal(t, playerA, *res.HomePOGID)
	require.NotNil(t, res.HomeAwayPOGID)
	assert.Equal(t, playerB, *res.HomeAwayPOGID)
	require.NotNil(t, res.AwayPOGID)
	assert.Equal(t, playerB, *res.AwayPOGID)
	require.NotNil(t, res.AwayHomePOGID)
	assert.Equal(t, playerA, *res.AwayHomePOGID)
}

func TestReconcileRosterAttestation(t *testing.T) {
	home, away := surveyPair()
	home.RosterCorrect = AttestNo
	away.RosterCorrect = AttestYes

	res := Reconcile(championGame(3, true), home, away)

	// The away survey vouches for the home roster and vice versa.
	assert.True(t, res.HomeRosterCorrect)
	assert.False(t, res.AwayRosterCorrect)
}

func TestReconcileRosterDefaultOutsideChampion(t *testing.T) {
	home, away := surveyPair()
	home.RosterCorrect = AttestNo
	away.RosterCorrect = AttestNo

	game := championGame(3, true)
	game.LevelOfPlay = LevelContenders
	res := Reconcile(game, home, away)

	assert.True(t, res.HomeRosterCorrect)
	assert.True(t, res.AwayRosterCorrect)
}

func TestReconcileScoutingWaivedWhenNotRequired(t *testing.T) {
	home, away := surveyPair()
	home.ScoutingCorrect = AttestNo
	away.ScoutingCorrect = AttestNo

	game := championGame(3, false)
	res := Reconcile(game, home, away)

	assert.True(t, res.HomeScoutingCorrect)
	assert.True(t, res.AwayScoutingCorrect)

	game.ScoutingRequired = true
	res = Reconcile(game, home, away)

	assert.False(t, res.HomeScoutingCorrect)
	assert.False(t, res.AwayScoutingCorrect)
}

func TestForfeitOverrideBothSides(t *testing.T) {
	home, away := surveyPair()
	home.TeamForfeit = true
	away.TeamForfeit = true

	res := Reconcile(championGame(3, false), home, away)
	res.ApplyForfeitOverride(3)

	assert.Equal(t, 0, res.HomeScore)
	assert.Equal(t, 0, res.AwayScore)
}

func TestForfeitOverrideOneSided(t *testing.T) {
	home, away := surveyPair()
	home.TeamScore = 0
	away.TeamForfeit = true
	away.TeamScore = 0

	res := Reconcile(championGame(3, false), home, away)
	res.ApplyForfeitOverride(3)

	assert.Equal(t, 2, res.HomeScore, "best-of-3 clinch score")
	assert.Equal(t, 0, res.AwayScore)

	home, away = surveyPair()
	home.TeamForfeit = true
	home.TeamScore = 0
	away.TeamScore = 0

	res = Reconcile(championGame(2, false), home, away)
	res.ApplyForfeitOverride(2)

	assert.Equal(t, 0, res.HomeScore)
	assert.Equal(t, 2, res.AwayScore, "short series awarded in full")
}
