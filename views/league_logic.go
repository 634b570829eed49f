package views

import (
	"sort"

	"github.com/google/uuid"
	"github.com/sellerscs/league-portal/internal/league"
)

type BracketView struct {
	Rounds    map[int][]league.Match
	RoundNums []int
	TeamMap   map[uuid.UUID]league.Team
}

// PrepareBracketView groups a bracket's matches into rounds from their
// tourney numbers: round one is matches 1..N/2, each later round half as
// many, and indexes teams for slot rendering.
func PrepareBracketView(teams []league.Team, matches []league.Match) BracketView {
	teamMap := make(map[uuid.UUID]league.Team)
	for _, t := range teams {
		teamMap[t.ID] = t
	}

	rounds := make(map[int][]league.Match)
	var roundNums []int

	if len(teams) < 2 {
		return BracketView{Rounds: rounds, TeamMap: teamMap}
	}

	roundSize := len(teams) / 2
	round, upper := 1, roundSize
	for _, m := range matches {
		if m.TourneyNumber == nil {
			continue
		}
		for *m.TourneyNumber > upper && roundSize > 1 {
			roundSize /= 2
			upper += roundSize
			round++
		}
		if _, exists := rounds[round]; !exists {
			roundNums = append(roundNums, round)
		}
		rounds[round] = append(rounds[round], m)
	}

	sort.Ints(roundNums)
	for _, r := range roundNums {
		sort.Slice(rounds[r], func(i, j int) bool {
			return *rounds[r][i].TourneyNumber < *rounds[r][j].TourneyNumber
		})
	}

	return BracketView{Rounds: rounds, RoundNums: roundNums, TeamMap: teamMap}
}
