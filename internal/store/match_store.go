package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sellerscs/league-portal/internal/league"
)

// MatchStore persists matches and their ephemeral survey reports.
type MatchStore struct {
	db *sqlx.DB
}

func NewMatchStore(db *sqlx.DB) *MatchStore {
	return &MatchStore{db: db}
}

const insertMatchQuery = `INSERT INTO matches (id, game_id, bracket_number, home_team_id, away_team_id, tourney_number, match_date, complete)
	VALUES (:id, :game_id, :bracket_number, :home_team_id, :away_team_id, :tourney_number, :match_date, :complete)`

const updateMatchQuery = `UPDATE matches SET
	home_team_id = :home_team_id, away_team_id = :away_team_id,
	complete = :complete,
	home_score = :home_score, away_score = :away_score,
	home_forfeit = :home_forfeit, away_forfeit = :away_forfeit,
	home_sportsmanship = :home_sportsmanship, away_sportsmanship = :away_sportsmanship,
	home_on_time = :home_on_time, away_on_time = :away_on_time,
	home_pog_id = :home_pog_id, home_away_pog_id = :home_away_pog_id,
	away_pog_id = :away_pog_id, away_home_pog_id = :away_home_pog_id,
	home_roster_correct = :home_roster_correct, away_roster_correct = :away_roster_correct,
	home_scouting_correct = :home_scouting_correct, away_scouting_correct = :away_scouting_correct,
	home_roster = :home_roster, away_roster = :away_roster
	WHERE id = :id`

func (s *MatchStore) CreateMatches(ctx context.Context, matches []league.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := s.db.NamedExecContext(ctx, insertMatchQuery, matches)
	return err
}

func (s *MatchStore) CreateMatchesTx(ctx context.Context, tx *sqlx.Tx, matches []league.Match) error {
	if len(matches) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, insertMatchQuery, matches)
	return err
}

func (s *MatchStore) GetMatch(ctx context.Context, id string) (*league.Match, error) {
	var match league.Match
	err := s.db.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	return &match, err
}

func (s *MatchStore) GetMatchTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Match, error) {
	var match league.Match
	err := tx.GetContext(ctx, &match, "SELECT * FROM matches WHERE id = ?", id)
	return &match, err
}

func (s *MatchStore) UpdateMatchTx(ctx context.Context, tx *sqlx.Tx, match *league.Match) error {
	_, err := tx.NamedExecContext(ctx, updateMatchQuery, match)
	return err
}

func (s *MatchStore) GetMatchByTourneyNumberTx(ctx context.Context, tx *sqlx.Tx, gameID string, bracketNumber, tourneyNumber int) (*league.Match, error) {
	var match league.Match
	err := tx.GetContext(ctx, &match,
		"SELECT * FROM matches WHERE game_id = ? AND bracket_number = ? AND tourney_number = ?",
		gameID, bracketNumber, tourneyNumber)
	return &match, err
}

func (s *MatchStore) CountTourneyMatchesTx(ctx context.Context, tx *sqlx.Tx, gameID string, bracketNumber int) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM matches WHERE game_id = ? AND bracket_number = ? AND tourney_number IS NOT NULL",
		gameID, bracketNumber)
	return count, err
}

// ListMatchesInRange returns filled, dated matches of active games between
// from and to, most recent first. Used by the ticker and competitions pages.
func (s *MatchStore) ListMatchesInRange(ctx context.Context, orgID string, from, to time.Time) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, `SELECT m.* FROM matches m
		JOIN games g ON g.id = m.game_id
		WHERE g.org_id = ? AND g.activate = 1
		AND m.home_team_id IS NOT NULL AND m.away_team_id IS NOT NULL
		AND m.match_date BETWEEN ? AND ?
		ORDER BY m.match_date DESC`, orgID, from, to)
	return matches, err
}

// ListBracketMatches returns a bracket's tournament matches in slot order.
func (s *MatchStore) ListBracketMatches(ctx context.Context, gameID string, bracketNumber int) ([]league.Match, error) {
	var matches []league.Match
	err := s.db.SelectContext(ctx, &matches, `SELECT * FROM matches
		WHERE game_id = ? AND bracket_number = ? AND tourney_number IS NOT NULL
		ORDER BY tourney_number ASC`, gameID, bracketNumber)
	return matches, err
}

const insertReportQuery = `INSERT INTO reports (id, match_id, team_id, other_team_id, team_score, other_score, team_forfeit, other_forfeit, other_sportsmanship, other_on_time, team_pog_id, other_pog_id, roster_correct, scouting_correct, team_roster, complete, tourney_survey)
	VALUES (:id, :match_id, :team_id, :other_team_id, :team_score, :other_score, :team_forfeit, :other_forfeit, :other_sportsmanship, :other_on_time, :team_pog_id, :other_pog_id, :roster_correct, :scouting_correct, :team_roster, :complete, :tourney_survey)`

func (s *MatchStore) CreateReport(ctx context.Context, report *league.Report) error {
	_, err := s.db.NamedExecContext(ctx, insertReportQuery, report)
	return err
}

func (s *MatchStore) CreateReportsTx(ctx context.Context, tx *sqlx.Tx, reports []league.Report) error {
	if len(reports) == 0 {
		return nil
	}
	_, err := tx.NamedExecContext(ctx, insertReportQuery, reports)
	return err
}

const updateReportQuery = `UPDATE reports SET
	team_score = :team_score, other_score = :other_score,
	team_forfeit = :team_forfeit, other_forfeit = :other_forfeit,
	other_sportsmanship = :other_sportsmanship, other_on_time = :other_on_time,
	team_pog_id = :team_pog_id, other_pog_id = :other_pog_id,
	roster_correct = :roster_correct, scouting_correct = :scouting_correct,
	team_roster = :team_roster, complete = :complete
	WHERE id = :id`

// UpdateReport fills in a previously-spawned stub survey.
func (s *MatchStore) UpdateReport(ctx context.Context, report *league.Report) error {
	_, err := s.db.NamedExecContext(ctx, updateReportQuery, report)
	return err
}

func (s *MatchStore) GetReportForTeam(ctx context.Context, matchID, teamID string) (*league.Report, error) {
	var report league.Report
	err := s.db.GetContext(ctx, &report,
		"SELECT * FROM reports WHERE match_id = ? AND team_id = ?", matchID, teamID)
	return &report, err
}

func (s *MatchStore) GetReportForTeamTx(ctx context.Context, tx *sqlx.Tx, matchID, teamID string) (*league.Report, error) {
	var report league.Report
	err := tx.GetContext(ctx, &report,
		"SELECT * FROM reports WHERE match_id = ? AND team_id = ?", matchID, teamID)
	return &report, err
}

func (s *MatchStore) ListReportsForMatch(ctx context.Context, matchID string) ([]league.Report, error) {
	var reports []league.Report
	err := s.db.SelectContext(ctx, &reports, "SELECT * FROM reports WHERE match_id = ?", matchID)
	return reports, err
}

func (s *MatchStore) DeleteMatchReportsTx(ctx context.Context, tx *sqlx.Tx, matchID string) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM reports WHERE match_id = ?", matchID)
	return err
}
