package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/fortuna/gametime/internal/cache"
	"github.com/fortuna/gametime/internal/links"
	"github.com/fortuna/gametime/internal/schedule"
	"github.com/fortuna/gametime/internal/teams"
	"github.com/gorilla/mux"
)

// ScheduleService fetches the normalized schedule for a league.
type ScheduleService interface {
	FetchSchedule(ctx context.Context, league teams.League) (*schedule.Result, error)
}

// LinkService harvests team-matchup links from an arbitrary page.
type LinkService interface {
	FetchLinks(ctx context.Context, pageURL string) ([]links.Link, error)
}

// Handler contains dependencies for HTTP handlers. The cache is optional;
// a nil cache means every read scrapes fresh.
type Handler struct {
	scraper   ScheduleService
	harvester LinkService
	registry  *teams.Registry
	cache     *cache.ScheduleCache
}

// NewHandler creates a new handler
func NewHandler(scraper ScheduleService, harvester LinkService, registry *teams.Registry, scheduleCache *cache.ScheduleCache) *Handler {
	return &Handler{
		scraper:   scraper,
		harvester: harvester,
		registry:  registry,
		cache:     scheduleCache,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":  "healthy",
		"service": "gametime",
	}
	if h.cache != nil {
		if err := h.cache.HealthCheck(r.Context()); err != nil {
			status["cache"] = "unreachable"
		} else {
			status["cache"] = "ok"
		}
	}
	respondJSON(w, http.StatusOK, status)
}

// GetSchedule returns the full schedule result for a league.
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.fetchSchedule(r.Context(), league)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch schedule", err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// GetScheduleDebug returns the schedule with the team index stripped for
// readability.
func (h *Handler) GetScheduleDebug(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.fetchSchedule(r.Context(), league)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch schedule", err)
		return
	}

	respondJSON(w, http.StatusOK, res.WithoutTeamIndex())
}

// GetCompletedGames returns only completed games, with postponed games
// broken out separately.
func (h *Handler) GetCompletedGames(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueFromRequest(w, r)
	if !ok {
		return
	}

	res, err := h.fetchSchedule(r.Context(), league)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to fetch schedule", err)
		return
	}

	finished, postponed := res.Completed()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"completed_games": finished,
		"postponed_games": postponed,
		"count":           len(finished),
		"postponed_count": len(postponed),
		"_meta":           res.Meta,
	})
}

// GetTeams returns the official roster for a league.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"league": league,
		"teams":  h.registry.AllTeams(league),
	})
}

// ResolveTeam maps free-form team text to its canonical franchise name.
func (h *Handler) ResolveTeam(w http.ResponseWriter, r *http.Request) {
	league, ok := h.leagueFromRequest(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Missing 'name' query parameter", nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"input":    name,
		"official": h.registry.Resolve(league, name),
	})
}

// ScrapePage harvests matchup links from a submitted page, optionally
// bundling that league's schedule for countdown displays.
func (h *Handler) ScrapePage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	pageURL := r.FormValue("url")
	if pageURL == "" {
		respondError(w, http.StatusBadRequest, "No URL provided", nil)
		return
	}
	if !isValidURL(pageURL) {
		respondError(w, http.StatusBadRequest, "Invalid URL provided", nil)
		return
	}

	response := map[string]interface{}{}

	if leagueCode := r.FormValue("league"); leagueCode != "" {
		if league, ok := teams.ParseLeague(leagueCode); ok {
			res, err := h.fetchSchedule(r.Context(), league)
			if err != nil {
				log.Printf("[rest] schedule fetch failed during scrape: %v", err)
				response["game_times"] = schedule.NewResult(string(league), time.Now())
			} else {
				response["game_times"] = res
			}
		}
	}

	harvested, err := h.harvester.FetchLinks(r.Context(), pageURL)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to scrape page", err)
		return
	}
	response["urls"] = harvested

	respondJSON(w, http.StatusOK, response)
}

// fetchSchedule consults the cache when one is wired, scraping on a miss.
func (h *Handler) fetchSchedule(ctx context.Context, league teams.League) (*schedule.Result, error) {
	if h.cache != nil {
		cached, err := h.cache.GetSchedule(ctx, string(league))
		if err != nil {
			log.Printf("[rest] cache read failed for %s: %v", league, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	res, err := h.scraper.FetchSchedule(ctx, league)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetSchedule(ctx, string(league), res); err != nil {
			log.Printf("[rest] cache write failed for %s: %v", league, err)
		}
	}
	return res, nil
}

func (h *Handler) leagueFromRequest(w http.ResponseWriter, r *http.Request) (teams.League, bool) {
	code := mux.Vars(r)["league"]
	league, ok := teams.ParseLeague(code)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid league. Choose from NBA, NFL, MLB, or NHL.", nil)
		return "", false
	}
	return league, true
}

func isValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	return err == nil && parsed.Scheme != "" && parsed.Host != ""
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
