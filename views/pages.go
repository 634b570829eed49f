package views

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/service"
)

// Page components are assembled by hand rather than generated; the portal's
// markup is a handful of tables and lists.

func layout(title string, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>", html.EscapeString(title)); err != nil {
			return err
		}
		if user := GetUser(ctx); user != nil {
			fmt.Fprintf(w, `<nav>Signed in as %s <form method="post" action="/logout"><button>Log out</button></form></nav>`,
				html.EscapeString(user.Username))
		}
		if err := body(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

func Index(org *league.Org) templ.Component {
	return layout(org.Name, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%s</h1><ul><li><a href="/competitions">Competitions</a></li><li><a href="/ticker">Ticker</a></li></ul>`,
			html.EscapeString(org.Name))
		return err
	})
}

func LoginPage() templ.Component {
	return layout("Log in", func(w io.Writer) error {
		_, err := io.WriteString(w, `<h1>Log in</h1>
<a href="/auth/google">Sign in with Google</a>
<a href="/auth/microsoftonline">Sign in with Microsoft</a>
<form method="post" action="/auth/guest"><button>Continue as guest</button></form>`)
		return err
	})
}

func Competitions(org *league.Org, data *service.CompetitionsData) templ.Component {
	return layout("Competitions", func(w io.Writer) error {
		io.WriteString(w, "<h1>Competitions</h1><h2>Champion</h2><ul>")
		for _, g := range data.ChampionGames {
			writeGameItem(w, g)
		}
		io.WriteString(w, "</ul><h2>Contenders</h2><ul>")
		for _, g := range data.ContendersGames {
			writeGameItem(w, g)
		}
		io.WriteString(w, "</ul><h2>This week</h2><ul>")
		for _, m := range data.UpcomingMatches {
			writeMatchItem(w, m)
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}

func Ticker(data *service.TickerData) templ.Component {
	return layout("Ticker", func(w io.Writer) error {
		io.WriteString(w, "<ul>")
		for _, m := range data.LastWeekMatches {
			writeMatchItem(w, m)
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
}

func Standings(data *service.StandingsData) templ.Component {
	return layout(data.Game.Title+" standings", func(w io.Writer) error {
		fmt.Fprintf(w, "<h1>%s</h1><table><tr><th>Team</th><th>W</th><th>L</th><th>T</th><th>FF</th><th>Pts</th><th>Diff</th></tr>",
			html.EscapeString(data.Game.Title))
		for _, t := range data.Teams {
			fmt.Fprintf(w, "<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
				html.EscapeString(t.Name), t.Wins, t.Losses, t.Ties, t.Forfeits, t.Points, t.ScoreDiff())
		}
		_, err := io.WriteString(w, "</table>")
		return err
	})
}

func Bracket(data *service.BracketData) templ.Component {
	view := PrepareBracketView(data.Teams, data.Matches)
	return layout(data.Game.Title+" bracket", func(w io.Writer) error {
		fmt.Fprintf(w, "<h1>%s bracket</h1>", html.EscapeString(data.Game.Title))
		for _, r := range view.RoundNums {
			fmt.Fprintf(w, "<h2>Round %d</h2><ul>", r)
			for _, m := range view.Rounds[r] {
				fmt.Fprintf(w, "<li>%s vs %s</li>",
					html.EscapeString(slotName(view, m.HomeTeamID)),
					html.EscapeString(slotName(view, m.AwayTeamID)))
			}
			io.WriteString(w, "</ul>")
		}
		return nil
	})
}

func writeGameItem(w io.Writer, g league.Game) {
	fmt.Fprintf(w, `<li><a href="/leagues/%s/standings">%s</a></li>`, g.ID, html.EscapeString(g.Title))
}

func writeMatchItem(w io.Writer, m league.Match) {
	if m.Complete {
		fmt.Fprintf(w, "<li>%d - %d</li>", m.HomeScore, m.AwayScore)
		return
	}
	fmt.Fprintf(w, `<li><a href="/matches/%s">upcoming</a></li>`, m.ID)
}

func slotName(view BracketView, teamID *uuid.UUID) string {
	if teamID == nil {
		return "TBD"
	}
	if t, ok := view.TeamMap[*teamID]; ok {
		return t.Name
	}
	return "TBD"
}
