package store

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sellerscs/league-portal/internal/league"
)

// LeagueStore persists orgs, games, teams and players.
type LeagueStore struct {
	db *sqlx.DB
}

func NewLeagueStore(db *sqlx.DB) *LeagueStore {
	return &LeagueStore{db: db}
}

func (s *LeagueStore) CreateOrg(ctx context.Context, org *league.Org) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO orgs (id, subdomain, name, email)
		VALUES (:id, :subdomain, :name, :email)`, org)
	return err
}

func (s *LeagueStore) GetOrgBySubdomain(ctx context.Context, subdomain string) (*league.Org, error) {
	var org league.Org
	err := s.db.GetContext(ctx, &org, "SELECT * FROM orgs WHERE subdomain = ?", subdomain)
	return &org, err
}

func (s *LeagueStore) CreateGame(ctx context.Context, game *league.Game) error {
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO games (id, org_id, title, level_of_play, series_length, scouting_required, activate, show_bracket, start_date)
		VALUES (:id, :org_id, :title, :level_of_play, :series_length, :scouting_required, :activate, :show_bracket, :start_date)`, game)
	return err
}

func (s *LeagueStore) GetGame(ctx context.Context, id string) (*league.Game, error) {
	var game league.Game
	err := s.db.GetContext(ctx, &game, "SELECT * FROM games WHERE id = ?", id)
	return &game, err
}

func (s *LeagueStore) GetGameTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Game, error) {
	var game league.Game
	err := tx.GetContext(ctx, &game, "SELECT * FROM games WHERE id = ?", id)
	return &game, err
}

func (s *LeagueStore) ListActiveGames(ctx context.Context, orgID string) ([]league.Game, error) {
	var games []league.Game
	err := s.db.SelectContext(ctx, &games,
		"SELECT * FROM games WHERE org_id = ? AND activate = 1 ORDER BY start_date ASC", orgID)
	return games, err
}

func (s *LeagueStore) CreateTeams(ctx context.Context, teams []league.Team) error {
	if len(teams) == 0 {
		return nil
	}
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO teams (id, game_id, name, seeding, bracket_number, tournament_team, wins, losses, ties, forfeits, points, score_for, score_against)
		VALUES (:id, :game_id, :name, :seeding, :bracket_number, :tournament_team, :wins, :losses, :ties, :forfeits, :points, :score_for, :score_against)`, teams)
	return err
}

func (s *LeagueStore) GetTeam(ctx context.Context, id string) (*league.Team, error) {
	var team league.Team
	err := s.db.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	return &team, err
}

func (s *LeagueStore) GetTeamTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Team, error) {
	var team league.Team
	err := tx.GetContext(ctx, &team, "SELECT * FROM teams WHERE id = ?", id)
	return &team, err
}

// UpdateTeamRecordTx writes back a team's standings accumulators.
func (s *LeagueStore) UpdateTeamRecordTx(ctx context.Context, tx *sqlx.Tx, team *league.Team) error {
	_, err := tx.NamedExecContext(ctx, `UPDATE teams SET
		wins = :wins, losses = :losses, ties = :ties, forfeits = :forfeits,
		points = :points, score_for = :score_for, score_against = :score_against
		WHERE id = :id`, team)
	return err
}

// ListStandings returns a game's teams ordered for the standings table.
func (s *LeagueStore) ListStandings(ctx context.Context, gameID string) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, `SELECT * FROM teams WHERE game_id = ?
		ORDER BY points DESC, score_for - score_against DESC, seeding ASC`, gameID)
	return teams, err
}

func (s *LeagueStore) CountTournamentTeamsTx(ctx context.Context, tx *sqlx.Tx, gameID string, bracketNumber int) (int, error) {
	var count int
	err := tx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM teams WHERE game_id = ? AND tournament_team = 1 AND bracket_number = ?",
		gameID, bracketNumber)
	return count, err
}

// ListTournamentTeams returns a bracket's tournament teams, strongest seed first.
func (s *LeagueStore) ListTournamentTeams(ctx context.Context, gameID string, bracketNumber int) ([]league.Team, error) {
	var teams []league.Team
	err := s.db.SelectContext(ctx, &teams, `SELECT * FROM teams
		WHERE game_id = ? AND tournament_team = 1 AND bracket_number = ?
		ORDER BY seeding ASC`, gameID, bracketNumber)
	return teams, err
}

func (s *LeagueStore) CreatePlayers(ctx context.Context, players []league.Player) error {
	if len(players) == 0 {
		return nil
	}
	_, err := s.db.NamedExecContext(ctx,
		"INSERT INTO players (id, team_id, name) VALUES (:id, :team_id, :name)", players)
	return err
}

func (s *LeagueStore) GetPlayerTx(ctx context.Context, tx *sqlx.Tx, id string) (*league.Player, error) {
	var player league.Player
	err := tx.GetContext(ctx, &player, "SELECT * FROM players WHERE id = ?", id)
	return &player, err
}
