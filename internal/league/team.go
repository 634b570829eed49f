package league

import "github.com/google/uuid"

// Team is a school's entry in one game's league. Seeding orders tournament
// placement, lower is stronger. The record fields are mutated only by the
// standings ledger when a match settles.
type Team struct {
	ID             uuid.UUID `db:"id"`
	GameID         uuid.UUID `db:"game_id"`
	Name           string    `db:"name"`
	Seeding        int       `db:"seeding"`
	BracketNumber  int       `db:"bracket_number"`
	TournamentTeam bool      `db:"tournament_team"`

	Wins         int `db:"wins"`
	Losses       int `db:"losses"`
	Ties         int `db:"ties"`
	Forfeits     int `db:"forfeits"`
	Points       int `db:"points"`
	ScoreFor     int `db:"score_for"`
	ScoreAgainst int `db:"score_against"`
}

// ScoreDiff is used as the standings tiebreaker after points.
func (t *Team) ScoreDiff() int {
	return t.ScoreFor - t.ScoreAgainst
}

// Player is a rostered member of a team, referenced by POG nominations.
type Player struct {
	ID     uuid.UUID `db:"id"`
	TeamID uuid.UUID `db:"team_id"`
	Name   string    `db:"name"`
}
