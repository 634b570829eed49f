package service

import (
	"context"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/store"
	"github.com/sellerscs/league-portal/internal/utils"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:?cache=shared")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

type fixture struct {
	leagues *store.LeagueStore
	matches *store.MatchStore

	org  *league.Org
	game *league.Game
	home *league.Team
	away *league.Team
}

// newFixture seeds an org, a Champion best-of-3 game and two teams.
func newFixture(t *testing.T, db *sqlx.DB) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		leagues: store.NewLeagueStore(db),
		matches: store.NewMatchStore(db),
	}

	f.org = &league.Org{ID: uuid.New(), Subdomain: "gse", Name: "GSE", Email: "league@gse.test"}
	require.NoError(t, f.leagues.CreateOrg(ctx, f.org))

	f.game = &league.Game{
		ID:           uuid.New(),
		OrgID:        f.org.ID,
		Title:        "Rocket League Fall",
		LevelOfPlay:  league.LevelChampion,
		SeriesLength: 3,
		Activate:     true,
	}
	require.NoError(t, f.leagues.CreateGame(ctx, f.game))

	f.home = &league.Team{ID: uuid.New(), GameID: f.game.ID, Name: "School A", Seeding: 2, BracketNumber: 1}
	f.away = &league.Team{ID: uuid.New(), GameID: f.game.ID, Name: "School B", Seeding: 1, BracketNumber: 1}
	require.NoError(t, f.leagues.CreateTeams(ctx, []league.Team{*f.home, *f.away}))

	return f
}

// seasonMatch creates a completed-slot, non-tournament match between the
// fixture's two teams.
func (f *fixture) seasonMatch(t *testing.T) *league.Match {
	t.Helper()
	m := league.Match{
		ID:            uuid.New(),
		GameID:        f.game.ID,
		BracketNumber: 1,
		HomeTeamID:    &f.home.ID,
		AwayTeamID:    &f.away.ID,
	}
	require.NoError(t, f.matches.CreateMatches(context.Background(), []league.Match{m}))
	return &m
}

func (f *fixture) survey(matchID, teamID, otherTeamID uuid.UUID, score, otherScore int, forfeit bool) *league.Report {
	return &league.Report{
		ID:                 uuid.New(),
		MatchID:            matchID,
		TeamID:             teamID,
		OtherTeamID:        otherTeamID,
		TeamScore:          score,
		OtherScore:         otherScore,
		TeamForfeit:        forfeit,
		OtherSportsmanship: 5,
		OtherOnTime:        true,
		RosterCorrect:      league.AttestYes,
		ScoutingCorrect:    league.AttestYes,
	}
}

func (f *fixture) reloadTeams(t *testing.T) (*league.Team, *league.Team) {
	t.Helper()
	ctx := context.Background()
	home, err := f.leagues.GetTeam(ctx, f.home.ID.String())
	require.NoError(t, err)
	away, err := f.leagues.GetTeam(ctx, f.away.ID.String())
	require.NoError(t, err)
	return home, away
}

func TestSettleRecordsWinAndConsumesReports(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	settled, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.home.ID, f.away.ID, 2, 1, false))
	require.NoError(t, err)
	assert.False(t, settled, "one survey should not settle the match")

	settled, err = settlement.SubmitReport(ctx, f.survey(match.ID, f.away.ID, f.home.ID, 1, 2, false))
	require.NoError(t, err)
	assert.True(t, settled)

	updated, err := f.matches.GetMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.True(t, updated.Complete)
	assert.Equal(t, 2, updated.HomeScore)
	assert.Equal(t, 1, updated.AwayScore)
	assert.Equal(t, 5, updated.HomeSportsmanship, "away's rating of home")
	assert.True(t, updated.HomeRosterCorrect)

	home, away := f.reloadTeams(t)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 3, home.Points)
	assert.Equal(t, 2, home.ScoreFor)
	assert.Equal(t, 1, home.ScoreAgainst)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, 0, away.Points)
	assert.Equal(t, 1, away.ScoreFor)
	assert.Equal(t, 2, away.ScoreAgainst)

	reports, err := f.matches.ListReportsForMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reports, "surveys are consumed at settlement")
}

func TestSettleBothForfeit(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	_, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.home.ID, f.away.ID, 0, 0, true))
	require.NoError(t, err)
	settled, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.away.ID, f.home.ID, 0, 0, true))
	require.NoError(t, err)
	require.True(t, settled)

	updated, err := f.matches.GetMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 0, updated.HomeScore)
	assert.Equal(t, 0, updated.AwayScore)

	home, away := f.reloadTeams(t)
	for _, team := range []*league.Team{home, away} {
		assert.Equal(t, 1, team.Forfeits)
		assert.Equal(t, 1, team.Losses)
		assert.Equal(t, 0, team.Points)
	}
}

func TestSettleSingleForfeitBestOfThree(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	_, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.home.ID, f.away.ID, 0, 0, false))
	require.NoError(t, err)
	settled, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.away.ID, f.home.ID, 0, 0, true))
	require.NoError(t, err)
	require.True(t, settled)

	updated, err := f.matches.GetMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, updated.HomeScore, "floor(3/2)+1 awarded to the non-forfeiting side")
	assert.Equal(t, 0, updated.AwayScore)
	assert.True(t, updated.AwayForfeit)

	home, away := f.reloadTeams(t)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 1, away.Forfeits)
	assert.Equal(t, 1, away.Losses)
}

func TestSettleRejectsSecondAttempt(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	_, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.home.ID, f.away.ID, 2, 1, false))
	require.NoError(t, err)
	settled, err := settlement.SubmitReport(ctx, f.survey(match.ID, f.away.ID, f.home.ID, 1, 2, false))
	require.NoError(t, err)
	require.True(t, settled)

	homeBefore, awayBefore := f.reloadTeams(t)

	err = settlement.Settle(ctx, match.ID)
	assert.ErrorIs(t, err, ErrMatchComplete)

	home, away := f.reloadTeams(t)
	assert.Equal(t, *homeBefore, *home, "standings must not double-count")
	assert.Equal(t, *awayBefore, *away)
}

func TestSettleMissingReportFailsAtomically(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	report := f.survey(match.ID, f.home.ID, f.away.ID, 2, 1, false)
	report.Complete = true
	require.NoError(t, f.matches.CreateReport(ctx, report))

	err := settlement.Settle(ctx, match.ID)
	assert.ErrorIs(t, err, ErrMissingReport)

	updated, err := f.matches.GetMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.False(t, updated.Complete)

	home, _ := f.reloadTeams(t)
	assert.Zero(t, home.Wins)
}

func TestSettleRejectsForeignPOG(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	f := newFixture(t, db)
	settlement := NewSettlementService(db, f.leagues, f.matches)
	match := f.seasonMatch(t)
	ctx := context.Background()

	// A rostered player on some third team is not a valid nomination here.
	outsider := league.Team{ID: uuid.New(), GameID: f.game.ID, Name: "School C", Seeding: 3, BracketNumber: 2}
	require.NoError(t, f.leagues.CreateTeams(ctx, []league.Team{outsider}))
	stranger := league.Player{ID: uuid.New(), TeamID: outsider.ID, Name: "Ringer"}
	require.NoError(t, f.leagues.CreatePlayers(ctx, []league.Player{stranger}))

	homeReport := f.survey(match.ID, f.home.ID, f.away.ID, 2, 1, false)
	homeReport.TeamPOGID = utils.Ptr(stranger.ID)
	_, err := settlement.SubmitReport(ctx, homeReport)
	require.NoError(t, err)

	_, err = settlement.SubmitReport(ctx, f.survey(match.ID, f.away.ID, f.home.ID, 1, 2, false))
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	updated, err := f.matches.GetMatch(ctx, match.ID.String())
	require.NoError(t, err)
	assert.False(t, updated.Complete, "settlement must fail atomically")

	home, _ := f.reloadTeams(t)
	assert.Zero(t, home.Wins)
}
