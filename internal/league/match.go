package league

import (
	"time"

	"github.com/google/uuid"
)

// Match is one scheduled meeting between two teams. The team slots are
// nullable because tournament matches past round one are created empty and
// filled as earlier rounds settle. All canonical outcome fields are written
// exactly once, when the match settles.
type Match struct {
	ID            uuid.UUID  `db:"id"`
	GameID        uuid.UUID  `db:"game_id"`
	BracketNumber int        `db:"bracket_number"`
	HomeTeamID    *uuid.UUID `db:"home_team_id"`
	AwayTeamID    *uuid.UUID `db:"away_team_id"`

	// Position in the single-elimination bracket numbering, nil for
	// regular-season matches.
	TourneyNumber *int       `db:"tourney_number"`
	MatchDate     *time.Time `db:"match_date"`
	Complete      bool       `db:"complete"`

	HomeScore   int  `db:"home_score"`
	AwayScore   int  `db:"away_score"`
	HomeForfeit bool `db:"home_forfeit"`
	AwayForfeit bool `db:"away_forfeit"`

	// Sportsmanship and punctuality for each side, as attested by the
	// opposing team's report.
	HomeSportsmanship int  `db:"home_sportsmanship"`
	AwaySportsmanship int  `db:"away_sportsmanship"`
	HomeOnTime        bool `db:"home_on_time"`
	AwayOnTime        bool `db:"away_on_time"`

	// Player-of-game nominations, recorded in both directions.
	HomePOGID     *uuid.UUID `db:"home_pog_id"`
	HomeAwayPOGID *uuid.UUID `db:"home_away_pog_id"`
	AwayPOGID     *uuid.UUID `db:"away_pog_id"`
	AwayHomePOGID *uuid.UUID `db:"away_home_pog_id"`

	HomeRosterCorrect   bool `db:"home_roster_correct"`
	AwayRosterCorrect   bool `db:"away_roster_correct"`
	HomeScoutingCorrect bool `db:"home_scouting_correct"`
	AwayScoutingCorrect bool `db:"away_scouting_correct"`

	HomeRoster string `db:"home_roster"`
	AwayRoster string `db:"away_roster"`

	CreatedAt time.Time `db:"created_at"`
}

// IsTourney reports whether the match occupies a bracket slot.
func (m *Match) IsTourney() bool {
	return m.TourneyNumber != nil
}

// Filled reports whether both team slots are assigned.
func (m *Match) Filled() bool {
	return m.HomeTeamID != nil && m.AwayTeamID != nil
}
