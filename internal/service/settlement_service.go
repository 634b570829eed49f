package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/store"
)

// SettlementService turns a match's two survey reports into its canonical
// outcome: it reconciles the surveys, closes the match, posts the result to
// both teams' standings, consumes the surveys, and advances the bracket for
// tournament matches. Everything runs in one transaction.
type SettlementService struct {
	db      *sqlx.DB
	leagues *store.LeagueStore
	matches *store.MatchStore
}

func NewSettlementService(db *sqlx.DB, leagues *store.LeagueStore, matches *store.MatchStore) *SettlementService {
	return &SettlementService{db: db, leagues: leagues, matches: matches}
}

// SubmitReport stores one team's survey and settles the match once both
// sides have submitted. Returns whether settlement ran.
func (s *SettlementService) SubmitReport(ctx context.Context, report *league.Report) (bool, error) {
	match, err := s.matches.GetMatch(ctx, report.MatchID.String())
	if err != nil {
		return false, fmt.Errorf("failed to get match: %w", err)
	}
	if match.Complete {
		return false, ErrMatchComplete
	}

	report.Complete = true

	// Tournament matches spawn stub surveys when the bracket advances; a
	// submission for one fills in the stub instead of inserting.
	existing, err := s.matches.GetReportForTeam(ctx, match.ID.String(), report.TeamID.String())
	switch {
	case err == nil && existing.Complete:
		return false, fmt.Errorf("survey for team %s: %w", report.TeamID, ErrDuplicateReport)
	case err == nil:
		report.ID = existing.ID
		report.TourneySurvey = existing.TourneySurvey
		if err := s.matches.UpdateReport(ctx, report); err != nil {
			return false, fmt.Errorf("failed to update survey: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if err := s.matches.CreateReport(ctx, report); err != nil {
			return false, fmt.Errorf("failed to store survey: %w", err)
		}
	default:
		return false, fmt.Errorf("failed to get survey: %w", err)
	}

	reports, err := s.matches.ListReportsForMatch(ctx, match.ID.String())
	if err != nil {
		return false, fmt.Errorf("failed to list surveys: %w", err)
	}
	if len(reports) < 2 {
		return false, nil
	}
	for _, r := range reports {
		if !r.Complete {
			return false, nil
		}
	}

	if err := s.Settle(ctx, match.ID); err != nil {
		return true, err
	}
	return true, nil
}

// Settle closes a match from its two submitted surveys. The whole pipeline
// commits or rolls back as a unit, with one deliberate exception: a
// malformed bracket still commits the settlement itself and reports
// ErrMalformedBracket, so a bracket-setup defect cannot block score
// recording.
func (s *SettlementService) Settle(ctx context.Context, matchID uuid.UUID) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	match, err := s.matches.GetMatchTx(ctx, tx, matchID.String())
	if err != nil {
		return fmt.Errorf("failed to get match: %w", err)
	}
	if match.Complete {
		return ErrMatchComplete
	}
	if !match.Filled() {
		return fmt.Errorf("cannot settle match %s: %w", match.ID, ErrUnfilledSlot)
	}

	game, err := s.leagues.GetGameTx(ctx, tx, match.GameID.String())
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}

	homeTeam, err := s.leagues.GetTeamTx(ctx, tx, match.HomeTeamID.String())
	if err != nil {
		return fmt.Errorf("failed to get home team: %w", err)
	}
	awayTeam, err := s.leagues.GetTeamTx(ctx, tx, match.AwayTeamID.String())
	if err != nil {
		return fmt.Errorf("failed to get away team: %w", err)
	}

	homeReport, err := s.loadReport(ctx, tx, match, homeTeam.ID, awayTeam.ID)
	if err != nil {
		return err
	}
	awayReport, err := s.loadReport(ctx, tx, match, awayTeam.ID, homeTeam.ID)
	if err != nil {
		return err
	}

	res := league.Reconcile(game, homeReport, awayReport)
	res.ApplyForfeitOverride(game.SeriesLength)

	if err := s.checkNominations(ctx, tx, res, homeTeam.ID, awayTeam.ID); err != nil {
		return err
	}

	applyResultToMatch(match, res)
	match.Complete = true
	if err := s.matches.UpdateMatchTx(ctx, tx, match); err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	league.ApplyResult(homeTeam, awayTeam, res)
	if err := s.leagues.UpdateTeamRecordTx(ctx, tx, homeTeam); err != nil {
		return fmt.Errorf("failed to update home record: %w", err)
	}
	if err := s.leagues.UpdateTeamRecordTx(ctx, tx, awayTeam); err != nil {
		return fmt.Errorf("failed to update away record: %w", err)
	}

	if err := s.matches.DeleteMatchReportsTx(ctx, tx, match.ID.String()); err != nil {
		return fmt.Errorf("failed to delete surveys: %w", err)
	}

	advErr := s.advanceBracket(ctx, tx, match, game, homeTeam, awayTeam, res)
	if advErr != nil && !errors.Is(advErr, ErrMalformedBracket) {
		return advErr
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	return advErr
}

// loadReport fetches one side's survey and checks it actually belongs to the
// match as authored: submitted by teamID about otherTeamID.
func (s *SettlementService) loadReport(ctx context.Context, tx *sqlx.Tx, match *league.Match, teamID, otherTeamID uuid.UUID) (*league.Report, error) {
	report, err := s.matches.GetReportForTeamTx(ctx, tx, match.ID.String(), teamID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("match %s team %s: %w", match.ID, teamID, ErrMissingReport)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	if report.OtherTeamID != otherTeamID {
		return nil, fmt.Errorf("survey %s: %w", report.ID, ErrReportMismatch)
	}
	return report, nil
}

// checkNominations verifies every POG reference resolves to a player on one
// of the two competing teams.
func (s *SettlementService) checkNominations(ctx context.Context, tx *sqlx.Tx, res league.Result, homeTeamID, awayTeamID uuid.UUID) error {
	for _, pogID := range []*uuid.UUID{res.HomePOGID, res.HomeAwayPOGID, res.AwayPOGID, res.AwayHomePOGID} {
		if pogID == nil {
			continue
		}
		player, err := s.leagues.GetPlayerTx(ctx, tx, pogID.String())
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("player %s: %w", pogID, ErrUnknownPlayer)
		}
		if err != nil {
			return fmt.Errorf("failed to get player: %w", err)
		}
		if player.TeamID != homeTeamID && player.TeamID != awayTeamID {
			return fmt.Errorf("player %s: %w", pogID, ErrUnknownPlayer)
		}
	}
	return nil
}

func applyResultToMatch(match *league.Match, res league.Result) {
	match.HomeScore = res.HomeScore
	match.AwayScore = res.AwayScore
	match.HomeForfeit = res.HomeForfeit
	match.AwayForfeit = res.AwayForfeit
	match.HomeSportsmanship = res.HomeSportsmanship
	match.AwaySportsmanship = res.AwaySportsmanship
	match.HomeOnTime = res.HomeOnTime
	match.AwayOnTime = res.AwayOnTime
	match.HomePOGID = res.HomePOGID
	match.HomeAwayPOGID = res.HomeAwayPOGID
	match.AwayPOGID = res.AwayPOGID
	match.AwayHomePOGID = res.AwayHomePOGID
	match.HomeRosterCorrect = res.HomeRosterCorrect
	match.AwayRosterCorrect = res.AwayRosterCorrect
	match.HomeScoutingCorrect = res.HomeScoutingCorrect
	match.AwayScoutingCorrect = res.AwayScoutingCorrect
	match.HomeRoster = res.HomeRoster
	match.AwayRoster = res.AwayRoster
}

// advanceBracket assigns the settled match's winner to its next bracket
// slot, reseeds the next match once both slots are known, and spawns the
// pair of stub surveys for the advancing teams. Runs inside the settlement
// transaction so a concurrent feeder settlement cannot double-spawn stubs.
func (s *SettlementService) advanceBracket(ctx context.Context, tx *sqlx.Tx, match *league.Match, game *league.Game, homeTeam, awayTeam *league.Team, res league.Result) error {
	if !match.IsTourney() {
		return nil
	}

	tourneyMatches, err := s.matches.CountTourneyMatchesTx(ctx, tx, game.ID.String(), match.BracketNumber)
	if err != nil {
		return fmt.Errorf("failed to count bracket matches: %w", err)
	}
	if tourneyMatches < 2 {
		return nil
	}

	teamCount, err := s.leagues.CountTournamentTeamsTx(ctx, tx, game.ID.String(), homeTeam.BracketNumber)
	if err != nil {
		return fmt.Errorf("failed to count tournament teams: %w", err)
	}

	nextNumber, ok := league.NextTourneyNumber(teamCount, *match.TourneyNumber)
	if !ok {
		// The settled match was the final.
		return nil
	}

	nextMatch, err := s.matches.GetMatchByTourneyNumberTx(ctx, tx, game.ID.String(), match.BracketNumber, nextNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("bracket %d match %d: %w", match.BracketNumber, nextNumber, ErrMalformedBracket)
	}
	if err != nil {
		return fmt.Errorf("failed to get next match: %w", err)
	}

	winner := awayTeam
	if res.HomeWin() {
		winner = homeTeam
	}

	if league.WinnerTakesHomeSlot(*match.TourneyNumber) {
		nextMatch.HomeTeamID = &winner.ID
	} else {
		nextMatch.AwayTeamID = &winner.ID
	}

	if nextMatch.Filled() {
		nextHome, err := s.leagues.GetTeamTx(ctx, tx, nextMatch.HomeTeamID.String())
		if err != nil {
			return fmt.Errorf("failed to get next home team: %w", err)
		}
		nextAway, err := s.leagues.GetTeamTx(ctx, tx, nextMatch.AwayTeamID.String())
		if err != nil {
			return fmt.Errorf("failed to get next away team: %w", err)
		}

		// Stronger seed always occupies the home slot.
		if nextHome.Seeding > nextAway.Seeding {
			nextMatch.HomeTeamID, nextMatch.AwayTeamID = nextMatch.AwayTeamID, nextMatch.HomeTeamID
		}

		stubs := []league.Report{
			league.StubReport(nextMatch.ID, *nextMatch.HomeTeamID, *nextMatch.AwayTeamID),
			league.StubReport(nextMatch.ID, *nextMatch.AwayTeamID, *nextMatch.HomeTeamID),
		}
		if err := s.matches.CreateReportsTx(ctx, tx, stubs); err != nil {
			return fmt.Errorf("failed to create surveys for next match: %w", err)
		}
	}

	if err := s.matches.UpdateMatchTx(ctx, tx, nextMatch); err != nil {
		return fmt.Errorf("failed to update next match: %w", err)
	}
	return nil
}
