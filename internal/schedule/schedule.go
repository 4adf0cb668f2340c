// Package schedule defines the normalized output of a schedule scrape: game
// records, the per-team lookup index, and the derived matchup-string index.
// A Result is built fresh for every scrape invocation and never shared.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Status is a game's lifecycle state. Rows that reach none of these states
// are discarded during classification, never stored.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
)

// Game is one normalized schedule entry.
type Game struct {
	ID     string `json:"game_id"`
	League string `json:"league"`
	Status Status `json:"status"`

	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	// Raw mentions as scraped, retained for audit.
	Team1Raw  string `json:"team1_original"`
	Team2Raw  string `json:"team2_original"`
	Team1Code string `json:"team1_code,omitempty"`
	Team2Code string `json:"team2_code,omitempty"`

	Matchup string `json:"matchup"`

	// Start times are set for upcoming and live games only.
	StartTimeLocal string `json:"local_time,omitempty"`
	StartTimeUTC   string `json:"utc_time,omitempty"`

	// Result fields are set for completed games only. Result is either a
	// score string like "5-3" or the literal "Postponed".
	Result string `json:"result,omitempty"`
	Winner string `json:"winner,omitempty"`
	Loser  string `json:"loser,omitempty"`

	GameDate    string `json:"game_date"`
	SectionDate string `json:"section_date"`

	// Positional provenance, for debugging only; never part of identity.
	RowPosition   int `json:"row_position"`
	TablePosition int `json:"table_position"`
}

// Meta describes one scrape invocation.
type Meta struct {
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
	GameCount int       `json:"game_count"`
}

// Result is the full output of one scrape: committed games, the per-team
// index, and invocation metadata.
type Result struct {
	League string             `json:"league"`
	Games  []*Game            `json:"games"`
	ByTeam map[string][]*Game `json:"team_games"`
	Meta   Meta               `json:"_meta"`
}

// NewResult creates an empty result for one invocation.
func NewResult(league string, now time.Time) *Result {
	return &Result{
		League: league,
		Games:  make([]*Game, 0),
		ByTeam: make(map[string][]*Game),
		Meta: Meta{
			Date:      now.Format("2006-01-02"),
			Timestamp: now,
		},
	}
}

// Add commits a game and indexes it under each team's full name, nickname,
// and every normalized word of four or more characters. Indexing is
// idempotent by game ID.
func (r *Result) Add(g *Game) {
	r.Games = append(r.Games, g)
	r.Meta.GameCount = len(r.Games)

	for _, team := range []string{g.Team1, g.Team2} {
		normalized := NormalizeTeamKey(team)
		r.index(normalized, g)

		words := strings.Fields(normalized)
		if len(words) > 1 {
			// Nickname-only form: everything after the city token(s).
			r.index(words[len(words)-1], g)
			for _, w := range words {
				if len(w) >= 4 {
					r.index(w, g)
				}
			}
		}
	}
}

func (r *Result) index(key string, g *Game) {
	if key == "" {
		return
	}
	for _, existing := range r.ByTeam[key] {
		if existing.ID == g.ID {
			return
		}
	}
	r.ByTeam[key] = append(r.ByTeam[key], g)
}

// MatchupIndex derives the string-keyed lookup map: each game appears under
// its exact and reversed matchup, both suffixed with the unique game ID.
func (r *Result) MatchupIndex() map[string]*Game {
	idx := make(map[string]*Game, len(r.Games)*2)
	for _, g := range r.Games {
		idx[fmt.Sprintf("%s vs %s_%s", g.Team1, g.Team2, g.ID)] = g
		idx[fmt.Sprintf("%s vs %s_%s", g.Team2, g.Team1, g.ID)] = g
	}
	return idx
}

// Completed returns only the completed games, with postponed games reported
// separately.
func (r *Result) Completed() (finished, postponed []*Game) {
	for _, g := range r.Games {
		if g.Status != StatusCompleted {
			continue
		}
		if strings.EqualFold(g.Result, "Postponed") {
			postponed = append(postponed, g)
			continue
		}
		finished = append(finished, g)
	}
	return finished, postponed
}

// WithoutTeamIndex returns a shallow copy with the per-team index stripped,
// for debug output.
func (r *Result) WithoutTeamIndex() *Result {
	copied := *r
	copied.ByTeam = nil
	return &copied
}

// NormalizeTeamKey lowercases a team name and strips non-alphanumeric
// characters, producing the per-team index key.
func NormalizeTeamKey(name string) string {
	lower := strings.ToLower(name)
	var b strings.Builder
	for _, c := range lower {
		if c == ' ' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return strings.TrimSpace(b.String())
}
