package league

// Single-elimination brackets are numbered as a complete binary tree: a
// bracket of N tournament teams plays matches 1..N-1, with the first round
// occupying 1..N/2 and the final at N-1. The winner of match t feeds
// N/2 + ceil(t/2); odd-numbered sources fill the home slot, even the away.

// NextTourneyNumber returns the bracket number of the match the winner of
// tourneyNumber advances into. ok is false when the source match was the
// final.
func NextTourneyNumber(teamCount, tourneyNumber int) (next int, ok bool) {
	next = teamCount/2 + (tourneyNumber+1)/2
	if next > teamCount-1 {
		return 0, false
	}
	return next, true
}

// WinnerTakesHomeSlot reports whether the winner of the given source match
// fills the home slot of its next match.
func WinnerTakesHomeSlot(tourneyNumber int) bool {
	return tourneyNumber%2 == 1
}
