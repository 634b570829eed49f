package league

import (
	"time"

	"github.com/google/uuid"
)

// Attestation values submitted on survey forms for the roster and scouting
// questions.
const (
	AttestYes = "Yes"
	AttestNo  = "No"
)

// Report is one team's self-submitted survey for one match: its own result
// claim plus what it observed about the opponent. A match has at most one
// report per side while incomplete; settlement consumes and deletes both.
type Report struct {
	ID          uuid.UUID `db:"id"`
	MatchID     uuid.UUID `db:"match_id"`
	TeamID      uuid.UUID `db:"team_id"`
	OtherTeamID uuid.UUID `db:"other_team_id"`

	TeamScore    int  `db:"team_score"`
	OtherScore   int  `db:"other_score"`
	TeamForfeit  bool `db:"team_forfeit"`
	OtherForfeit bool `db:"other_forfeit"`

	// What this team observed about the opponent.
	OtherSportsmanship int  `db:"other_sportsmanship"`
	OtherOnTime        bool `db:"other_on_time"`

	TeamPOGID  *uuid.UUID `db:"team_pog_id"`
	OtherPOGID *uuid.UUID `db:"other_pog_id"`

	// Attestations about the opponent's roster and scouting submissions,
	// stored as submitted ("Yes"/"No").
	RosterCorrect   string `db:"roster_correct"`
	ScoutingCorrect string `db:"scouting_correct"`
	TeamRoster      string `db:"team_roster"`

	Complete      bool      `db:"complete"`
	TourneySurvey bool      `db:"tourney_survey"`
	CreatedAt     time.Time `db:"created_at"`
}

// StubReport builds the empty survey spawned for each side of a
// freshly-advanced tournament match.
func StubReport(matchID, teamID, otherTeamID uuid.UUID) Report {
	return Report{
		ID:            uuid.New(),
		MatchID:       matchID,
		TeamID:        teamID,
		OtherTeamID:   otherTeamID,
		TourneySurvey: true,
	}
}
