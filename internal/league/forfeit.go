package league

// DefaultForfeitScore is the score awarded to the non-forfeiting side of a
// one-sided forfeit. A short series is awarded in full; otherwise the winner
// gets the minimum games needed to clinch a best-of-N.
func DefaultForfeitScore(seriesLength int) int {
	if seriesLength < 3 {
		return seriesLength
	}
	return seriesLength/2 + 1
}
