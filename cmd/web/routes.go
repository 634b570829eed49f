package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
	"github.com/sellerscs/league-portal/internal/db"
	"github.com/sellerscs/league-portal/internal/httputil"
	"github.com/sellerscs/league-portal/internal/league"
	"github.com/sellerscs/league-portal/internal/middleware"
	"github.com/sellerscs/league-portal/internal/service"
	"github.com/sellerscs/league-portal/internal/store"
	"github.com/sellerscs/league-portal/internal/utils"
	"github.com/sellerscs/league-portal/views"
)

// resolveOrg looks up the organization from the request's subdomain. The
// fallthrough subdomain keeps local development working without DNS.
func resolveOrg(r *http.Request, leagues *store.LeagueStore) (*league.Org, error) {
	subdomain := strings.Split(r.Host, ".")[0]
	if subdomain == "public" || subdomain == "127" || subdomain == "localhost" || strings.Contains(subdomain, ":") {
		subdomain = os.Getenv("DEFAULT_ORG")
		if subdomain == "" {
			subdomain = "gse"
		}
	}
	return leagues.GetOrgBySubdomain(r.Context(), subdomain)
}

func newRouter(sessionManager *scs.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadAuthenticatedUser(sessionManager, store.NewUserStore(db.GetDB())))

	// Serve static files
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Public match ticker, embeddable on other sites.
	r.Get("/ticker", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		leagues := store.NewLeagueStore(dbConn)
		leagueService := service.NewLeagueService(dbConn, leagues, store.NewMatchStore(dbConn))

		org, err := resolveOrg(r, leagues)
		if err != nil {
			httputil.NotFound(w, "Organization not found", err)
			return
		}
		data, err := leagueService.GetTickerData(r.Context(), org)
		if err != nil {
			httputil.InternalServerError(w, "Failed to get ticker data", err)
			return
		}
		views.Render(w, r, views.Ticker(data))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			org, err := resolveOrg(r, store.NewLeagueStore(db.GetDB()))
			if err != nil {
				httputil.NotFound(w, "Organization not found", err)
				return
			}
			views.Render(w, r, views.Index(org))
		})

		r.Get("/competitions", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			leagues := store.NewLeagueStore(dbConn)
			leagueService := service.NewLeagueService(dbConn, leagues, store.NewMatchStore(dbConn))

			org, err := resolveOrg(r, leagues)
			if err != nil {
				httputil.NotFound(w, "Organization not found", err)
				return
			}
			data, err := leagueService.GetCompetitionsData(r.Context(), org)
			if err != nil {
				httputil.InternalServerError(w, "Failed to get competitions", err)
				return
			}
			views.Render(w, r, views.Competitions(org, data))
		})

		r.Get("/leagues/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			leagueService := service.NewLeagueService(dbConn, store.NewLeagueStore(dbConn), store.NewMatchStore(dbConn))

			gameID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid league ID", err)
				return
			}
			data, err := leagueService.GetStandings(r.Context(), gameID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "League not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get standings", err)
				return
			}
			views.Render(w, r, views.Standings(data))
		})

		r.Get("/leagues/{id}/brackets/{bracket}", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			leagueService := service.NewLeagueService(dbConn, store.NewLeagueStore(dbConn), store.NewMatchStore(dbConn))

			gameID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid league ID", err)
				return
			}
			bracketNumber, err := strconv.Atoi(chi.URLParam(r, "bracket"))
			if err != nil {
				httputil.BadRequest(w, "Invalid bracket number", err)
				return
			}
			data, err := leagueService.GetBracketData(r.Context(), gameID, bracketNumber)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					httputil.NotFound(w, "League not found", err)
					return
				}
				httputil.InternalServerError(w, "Failed to get bracket", err)
				return
			}
			views.Render(w, r, views.Bracket(data))
		})

		r.Post("/leagues/{id}/brackets/{bracket}", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			bracketService := service.NewBracketService(dbConn, store.NewLeagueStore(dbConn), store.NewMatchStore(dbConn))

			gameID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid league ID", err)
				return
			}
			bracketNumber, err := strconv.Atoi(chi.URLParam(r, "bracket"))
			if err != nil {
				httputil.BadRequest(w, "Invalid bracket number", err)
				return
			}
			if _, err := bracketService.CreateBracket(r.Context(), gameID, bracketNumber); err != nil {
				if errors.Is(err, service.ErrBracketSize) {
					httputil.BadRequest(w, err.Error(), err)
					return
				}
				httputil.InternalServerError(w, "Failed to create bracket", err)
				return
			}
			http.Redirect(w, r, "/leagues/"+gameID.String()+"/brackets/"+strconv.Itoa(bracketNumber), http.StatusFound)
		})

		r.Post("/matches/{id}/reports", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			settlement := service.NewSettlementService(dbConn, store.NewLeagueStore(dbConn), store.NewMatchStore(dbConn))

			matchID, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				httputil.BadRequest(w, "Invalid match ID", err)
				return
			}
			report, err := parseReportForm(r, matchID)
			if err != nil {
				httputil.BadRequest(w, "Invalid survey form", err)
				return
			}

			settled, err := settlement.SubmitReport(r.Context(), report)
			switch {
			case errors.Is(err, service.ErrMalformedBracket):
				// The match itself settled; only advancement was skipped.
				slog.Warn("bracket advancement skipped", "match", matchID, "error", err)
			case errors.Is(err, service.ErrMatchComplete):
				httputil.Conflict(w, "Match is already complete", err)
				return
			case errors.Is(err, service.ErrDuplicateReport):
				httputil.Conflict(w, "Survey already submitted for this team", err)
				return
			case errors.Is(err, service.ErrMissingReport),
				errors.Is(err, service.ErrReportMismatch),
				errors.Is(err, service.ErrUnknownPlayer),
				errors.Is(err, service.ErrUnfilledSlot):
				httputil.BadRequest(w, err.Error(), err)
				return
			case errors.Is(err, sql.ErrNoRows):
				httputil.NotFound(w, "Match not found", err)
				return
			case err != nil:
				httputil.InternalServerError(w, "Failed to submit survey", err)
				return
			}

			if settled {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusAccepted)
		})

		r.Post("/coaches/discord", func(w http.ResponseWriter, r *http.Request) {
			dbConn := db.GetDB()
			userService := service.NewUserService(dbConn, store.NewUserStore(dbConn))

			userID, _ := middleware.GetUserIDFromContext(r.Context())
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			if err := userService.SetDiscordID(r.Context(), userID, r.Form.Get("discord_id")); err != nil {
				httputil.InternalServerError(w, "Failed to save Discord ID", err)
				return
			}
			http.Redirect(w, r, "/", http.StatusFound)
		})

		r.Post("/coaches/welcome", func(w http.ResponseWriter, r *http.Request) {
			leagues := store.NewLeagueStore(db.GetDB())
			mail := service.NewMailService()

			org, err := resolveOrg(r, leagues)
			if err != nil {
				httputil.NotFound(w, "Organization not found", err)
				return
			}
			if err := r.ParseForm(); err != nil {
				httputil.BadRequest(w, "Invalid form data", err)
				return
			}
			// Mail failures are reported but never block anything.
			if err := mail.SendCoachWelcome(org, r.Form.Get("email")); err != nil {
				slog.Warn("welcome email failed", "error", err)
			}
			w.WriteHeader(http.StatusAccepted)
		})
	})

	r.Get("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothic.BeginAuthHandler(w, r)
	})

	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		r = r.WithContext(context.WithValue(r.Context(), "provider", provider))

		gothUser, err := gothic.CompleteUserAuth(w, r)
		if err != nil {
			httputil.BadRequest(w, "Authentication failure", err)
			return
		}

		dbConn := db.GetDB()
		userService := service.NewUserService(dbConn, store.NewUserStore(dbConn))
		user, err := userService.FindOrCreateUserByProvider(r.Context(), gothUser)
		if err != nil {
			httputil.InternalServerError(w, "Failed to find or create user", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())

		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, r, views.LoginPage())
	})

	r.Post("/auth/guest", func(w http.ResponseWriter, r *http.Request) {
		dbConn := db.GetDB()
		userService := service.NewUserService(dbConn, store.NewUserStore(dbConn))

		user, err := userService.EnsureGuestUser(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to login as guest", err)
			return
		}

		sessionManager.Put(r.Context(), "userID", user.ID.String())
		http.Redirect(w, r, "/", http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessionManager.Destroy(r.Context())
		http.Redirect(w, r, "/login", http.StatusFound)
	})

	return r
}

// parseReportForm builds a survey from the submitted form. Field contents
// are stored as submitted; the settlement core owns reconciliation.
func parseReportForm(r *http.Request, matchID uuid.UUID) (*league.Report, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	teamID, err := uuid.Parse(r.Form.Get("team_id"))
	if err != nil {
		return nil, err
	}
	otherTeamID, err := uuid.Parse(r.Form.Get("other_team_id"))
	if err != nil {
		return nil, err
	}

	teamScore, _ := strconv.Atoi(r.Form.Get("team_score"))
	otherScore, _ := strconv.Atoi(r.Form.Get("other_score"))
	sportsmanship, _ := strconv.Atoi(r.Form.Get("other_sportsmanship"))

	report := &league.Report{
		ID:                 uuid.New(),
		MatchID:            matchID,
		TeamID:             teamID,
		OtherTeamID:        otherTeamID,
		TeamScore:          teamScore,
		OtherScore:         otherScore,
		TeamForfeit:        r.Form.Get("team_forfeit") == "on",
		OtherForfeit:       r.Form.Get("other_forfeit") == "on",
		OtherSportsmanship: sportsmanship,
		OtherOnTime:        r.Form.Get("other_on_time") == "on",
		RosterCorrect:      r.Form.Get("roster_correct"),
		ScoutingCorrect:    r.Form.Get("scouting_correct"),
		TeamRoster:         r.Form.Get("team_roster"),
	}

	if pog := r.Form.Get("team_pog"); pog != "" {
		id, err := uuid.Parse(pog)
		if err != nil {
			return nil, err
		}
		report.TeamPOGID = utils.Ptr(id)
	}
	if pog := r.Form.Get("other_pog"); pog != "" {
		id, err := uuid.Parse(pog)
		if err != nil {
			return nil, err
		}
		report.OtherPOGID = utils.Ptr(id)
	}

	return report, nil
}
