package league

// CalculatePoints computes a team's point total from its record. Losses and
// forfeits currently do not affect points; ties are worth a single point.
func CalculatePoints(wins, losses, ties, forfeits int) int {
	return wins*3 + ties
}

// ApplyResult posts a settled result to both teams' records. Exactly one
// outcome branch applies, forfeits taking priority over the score
// comparison. Score totals accumulate regardless of branch and points are
// recomputed from scratch. Must be called exactly once per settled match.
func ApplyResult(home, away *Team, res Result) {
	switch {
	case res.HomeForfeit && res.AwayForfeit:
		home.Forfeits++
		away.Forfeits++
		home.Losses++
		away.Losses++
	case res.HomeForfeit:
		home.Forfeits++
		home.Losses++
		away.Wins++
	case res.AwayForfeit:
		away.Forfeits++
		away.Losses++
		home.Wins++
	case res.HomeScore > res.AwayScore:
		home.Wins++
		away.Losses++
	case res.HomeScore < res.AwayScore:
		home.Losses++
		away.Wins++
	default:
		home.Ties++
		away.Ties++
	}

	home.ScoreFor += res.HomeScore
	home.ScoreAgainst += res.AwayScore
	away.ScoreFor += res.AwayScore
	away.ScoreAgainst += res.HomeScore

	home.Points = CalculatePoints(home.Wins, home.Losses, home.Ties, home.Forfeits)
	away.Points = CalculatePoints(away.Wins, away.Losses, away.Ties, away.Forfeits)
}
