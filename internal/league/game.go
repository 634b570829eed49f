package league

import (
	"time"

	"github.com/google/uuid"
)

type LevelOfPlay string

const (
	LevelChampion   LevelOfPlay = "Champion"
	LevelContenders LevelOfPlay = "Contenders"
)

// Game is one competitive title running for a season within an org's league,
// e.g. "Rocket League Fall". Roster checks are enforced only at the Champion
// level; scouting checks only when the game requires scouting.
type Game struct {
	ID               uuid.UUID   `db:"id"`
	OrgID            uuid.UUID   `db:"org_id"`
	Title            string      `db:"title"`
	LevelOfPlay      LevelOfPlay `db:"level_of_play"`
	SeriesLength     int         `db:"series_length"`
	ScoutingRequired bool        `db:"scouting_required"`
	Activate         bool        `db:"activate"`
	ShowBracket      bool        `db:"show_bracket"`
	StartDate        time.Time   `db:"start_date"`
}

// RosterCheckEnforced reports whether an incorrect-roster attestation can
// count against a team in this game.
func (g *Game) RosterCheckEnforced() bool {
	return g.LevelOfPlay == LevelChampion
}
