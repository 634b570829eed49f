package league

import "github.com/google/uuid"

// Result is the canonical outcome of a match, reconciled from the two team
// surveys. The orchestrator copies it onto the Match and feeds it to the
// standings ledger inside one transaction.
type Result struct {
	HomeScore   int
	AwayScore   int
	HomeForfeit bool
	AwayForfeit bool

	HomeSportsmanship int
	AwaySportsmanship int
	HomeOnTime        bool
	AwayOnTime        bool

	HomePOGID     *uuid.UUID
	HomeAwayPOGID *uuid.UUID
	AwayPOGID     *uuid.UUID
	AwayHomePOGID *uuid.UUID

	HomeRosterCorrect   bool
	AwayRosterCorrect   bool
	HomeScoutingCorrect bool
	AwayScoutingCorrect bool

	HomeRoster string
	AwayRoster string
}

// Reconcile merges the two surveys into one canonical Result. Every field is
// taken from the report of the side best positioned to observe it:
//
//	scores, forfeits, roster text  <- each team's own claim
//	sportsmanship, punctuality     <- the opposing team's observation
//	POG nominations                <- both directions, both recorded
//	roster/scouting correctness    <- opposing attestation, or waived when
//	                                  the game's tier does not enforce it
//
// Reconcile does not compare the two score claims against each other; if the
// sides disagree, each side's own claim stands.
func Reconcile(game *Game, home, away *Report) Result {
	return Result{
		HomeScore:   home.TeamScore,
		AwayScore:   away.TeamScore,
		HomeForfeit: home.TeamForfeit,
		AwayForfeit: away.TeamForfeit,

		HomeSportsmanship: away.OtherSportsmanship,
		AwaySportsmanship: home.OtherSportsmanship,
		HomeOnTime:        away.OtherOnTime,
		AwayOnTime:        home.OtherOnTime,

		HomePOGID:     home.TeamPOGID,
		HomeAwayPOGID: home.OtherPOGID,
		AwayPOGID:     away.TeamPOGID,
		AwayHomePOGID: away.OtherPOGID,

		HomeRosterCorrect:   away.RosterCorrect == AttestYes || !game.RosterCheckEnforced(),
		AwayRosterCorrect:   home.RosterCorrect == AttestYes || !game.RosterCheckEnforced(),
		HomeScoutingCorrect: away.ScoutingCorrect == AttestYes || !game.ScoutingRequired,
		AwayScoutingCorrect: home.ScoutingCorrect == AttestYes || !game.ScoutingRequired,

		HomeRoster: home.TeamRoster,
		AwayRoster: away.TeamRoster,
	}
}

// ApplyForfeitOverride rewrites the reconciled scores once forfeits are
// known. Both sides forfeiting zeroes the match; a one-sided forfeit awards
// the other side the default forfeit score for the series length.
func (r *Result) ApplyForfeitOverride(seriesLength int) {
	switch {
	case r.HomeForfeit && r.AwayForfeit:
		r.HomeScore = 0
		r.AwayScore = 0
	case r.AwayForfeit:
		r.HomeScore = DefaultForfeitScore(seriesLength)
	case r.HomeForfeit:
		r.AwayScore = DefaultForfeitScore(seriesLength)
	}
}

// HomeWin reports whether the home side takes the match under the canonical
// scores. Bracket advancement sends the away side through on a tie, matching
// the score comparison used for standings.
func (r *Result) HomeWin() bool {
	return r.HomeScore > r.AwayScore
}
