package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/store"
)

// LeagueService serves the read side of the portal: competitions, the match
// ticker, standings tables and bracket views.
type LeagueService struct {
	db      *sqlx.DB
	leagues *store.LeagueStore
	matches *store.MatchStore
}

func NewLeagueService(db *sqlx.DB, leagues *store.LeagueStore, matches *store.MatchStore) *LeagueService {
	return &LeagueService{db: db, leagues: leagues, matches: matches}
}

type CompetitionsData struct {
	ChampionGames   []league.Game
	ContendersGames []league.Game
	UpcomingMatches []league.Match
}

type TickerData struct {
	ActiveGames     []league.Game
	LastWeekMatches []league.Match
}

type StandingsData struct {
	Game  *league.Game
	Teams []league.Team
}

type BracketData struct {
	Game    *league.Game
	Teams   []league.Team
	Matches []league.Match
}

// GetCompetitionsData returns active games split by tier plus the coming
// week's matches.
func (s *LeagueService) GetCompetitionsData(ctx context.Context, org *league.Org) (*CompetitionsData, error) {
	games, err := s.leagues.ListActiveGames(ctx, org.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	data := &CompetitionsData{}
	for _, g := range games {
		if g.LevelOfPlay == league.LevelChampion {
			data.ChampionGames = append(data.ChampionGames, g)
		} else {
			data.ContendersGames = append(data.ContendersGames, g)
		}
	}

	now := time.Now().UTC()
	data.UpcomingMatches, err = s.matches.ListMatchesInRange(ctx, org.ID.String(), now, now.AddDate(0, 0, 6))
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming matches: %w", err)
	}
	return data, nil
}

// GetTickerData returns active games and the past week's matches for the
// embeddable ticker.
func (s *LeagueService) GetTickerData(ctx context.Context, org *league.Org) (*TickerData, error) {
	games, err := s.leagues.ListActiveGames(ctx, org.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	now := time.Now().UTC()
	matches, err := s.matches.ListMatchesInRange(ctx, org.ID.String(), now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	return &TickerData{ActiveGames: games, LastWeekMatches: matches}, nil
}

func (s *LeagueService) GetStandings(ctx context.Context, gameID uuid.UUID) (*StandingsData, error) {
	game, err := s.leagues.GetGame(ctx, gameID.String())
	if err != nil {
		return nil, err
	}

	teams, err := s.leagues.ListStandings(ctx, gameID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}

	return &StandingsData{Game: game, Teams: teams}, nil
}

func (s *LeagueService) GetBracketData(ctx context.Context, gameID uuid.UUID, bracketNumber int) (*BracketData, error) {
	game, err := s.leagues.GetGame(ctx, gameID.String())
	if err != nil {
		return nil, err
	}

	teams, err := s.leagues.ListTournamentTeams(ctx, gameID.String(), bracketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament teams: %w", err)
	}

	matches, err := s.matches.ListBracketMatches(ctx, gameID.String(), bracketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list bracket matches: %w", err)
	}

	return &BracketData{Game: game, Teams: teams, Matches: matches}, nil
}
