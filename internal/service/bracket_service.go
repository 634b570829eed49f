package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/store"
)

// BracketService lays out single-elimination brackets: a bracket of N
// tournament teams gets matches numbered 1..N-1, round one seeded so the
// strongest seeds meet as late as possible.
type BracketService struct {
	db      *sqlx.DB
	leagues *store.LeagueStore
	matches *store.MatchStore
}

func NewBracketService(db *sqlx.DB, leagues *store.LeagueStore, matches *store.MatchStore) *BracketService {
	return &BracketService{db: db, leagues: leagues, matches: matches}
}

// generateRound1Pairs returns the seed-index pairings for round one of a
// bracket of the given size, in match order: seed 0 plays the weakest seed,
// and rematches of strong seeds are pushed to later rounds.
func generateRound1Pairs(bracketSize int) [][2]int {
	if bracketSize == 0 {
		return [][2]int{}
	}

	rounds := []int{0}
	for len(rounds) < bracketSize {
		var nextRound []int
		currentCount := len(rounds) * 2

		for _, seed := range rounds {
			nextRound = append(nextRound, seed)
			nextRound = append(nextRound, (currentCount-1)-seed)
		}
		rounds = nextRound
	}

	pairs := make([][2]int, 0, bracketSize/2)
	for i := 0; i < len(rounds); i += 2 {
		matchup := [2]int{rounds[i], rounds[i+1]}
		pairs = append(pairs, matchup)
	}

	return pairs
}

// CreateBracket creates the full set of tournament matches for one bracket
// of a game, plus the stub surveys for round one. The team count must be a
// power of two; byes are out of scope for tournament play.
func (s *BracketService) CreateBracket(ctx context.Context, gameID uuid.UUID, bracketNumber int) ([]league.Match, error) {
	teams, err := s.leagues.ListTournamentTeams(ctx, gameID.String(), bracketNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournament teams: %w", err)
	}

	teamCount := len(teams)
	if teamCount < 2 || teamCount&(teamCount-1) != 0 {
		return nil, fmt.Errorf("bracket %d has %d teams: %w", bracketNumber, teamCount, ErrBracketSize)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var matches []league.Match
	var reports []league.Report

	pairs := generateRound1Pairs(teamCount)
	for i, pair := range pairs {
		num := i + 1
		home, away := teams[pair[0]], teams[pair[1]]
		// Teams are listed strongest seed first, so pair[0] is home.
		m := league.Match{
			ID:            uuid.New(),
			GameID:        gameID,
			BracketNumber: bracketNumber,
			HomeTeamID:    &home.ID,
			AwayTeamID:    &away.ID,
			TourneyNumber: &num,
		}
		matches = append(matches, m)
		reports = append(reports,
			league.StubReport(m.ID, home.ID, away.ID),
			league.StubReport(m.ID, away.ID, home.ID),
		)
	}

	for num := teamCount/2 + 1; num <= teamCount-1; num++ {
		n := num
		matches = append(matches, league.Match{
			ID:            uuid.New(),
			GameID:        gameID,
			BracketNumber: bracketNumber,
			TourneyNumber: &n,
		})
	}

	if err := s.matches.CreateMatchesTx(ctx, tx, matches); err != nil {
		return nil, fmt.Errorf("failed to create bracket matches: %w", err)
	}
	if err := s.matches.CreateReportsTx(ctx, tx, reports); err != nil {
		return nil, fmt.Errorf("failed to create round-one surveys: %w", err)
	}

	return matches, tx.Commit()
}
