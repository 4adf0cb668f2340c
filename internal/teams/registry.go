package teams

import (
	"log"
	"strings"
)

// Registry resolves raw scraped team mentions to canonical franchise names.
// Build it once with NewRegistry and share it; it never mutates.
type Registry struct {
	rosters map[League][]string
	abbrs   map[League]map[string]string
}

// NewRegistry builds the registry from the static league tables.
func NewRegistry() *Registry {
	return &Registry{
		rosters: rosters,
		abbrs:   abbreviations,
	}
}

// Supported reports whether the league is one of the four configured.
func (r *Registry) Supported(league League) bool {
	_, ok := r.rosters[league]
	return ok
}

// AllTeams returns the official franchise names for a league, in roster
// order. Unknown leagues yield nil.
func (r *Registry) AllTeams(league League) []string {
	teams := r.rosters[league]
	out := make([]string, len(teams))
	copy(out, teams)
	return out
}

// Resolve maps free-form scraped text (full name, city, nickname, or
// abbreviation code) to a canonical franchise name. Resolution failure is
// signaled by returning the input unchanged.
func (r *Registry) Resolve(league League, raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return raw
	}
	roster, ok := r.rosters[league]
	if !ok {
		return name
	}
	lower := strings.ToLower(name)

	// Bare ambiguous city tokens get a league-specific contextual pass
	// before anything else, since the source page frequently strips the
	// nickname from same-city franchises. New York and Los Angeles fall
	// back to a documented best-effort default; Chicago stays unresolved
	// so the code-based disambiguator can still split Cubs from White Sox.
	if league == Baseball {
		switch lower {
		case "new york", "ny":
			return "New York Yankees"
		case "los angeles", "la":
			return "Los Angeles Dodgers"
		case "chicago", "chi":
			return name
		}
	}

	// Exact abbreviation code, case-sensitive.
	if official, ok := r.abbrs[league][name]; ok {
		return official
	}

	// Exact full-name match.
	for _, official := range roster {
		if strings.EqualFold(official, name) {
			return official
		}
	}

	// Nickname keyword hints for city-prefixed baseball mentions, e.g.
	// "Los Angeles Angels of Anaheim" or "NY Yanks".
	if league == Baseball {
		if official, ok := resolveByHint(lower); ok {
			return official
		}
	}

	// Partial match: city alone, nickname alone, or city plus part of the
	// nickname.
	for _, official := range roster {
		city, nickname, ok := splitName(official)
		if !ok {
			continue
		}
		if city == lower || nickname == lower {
			return official
		}
		if strings.Contains(lower, city) && containsAnyWord(lower, nickname) {
			return official
		}
	}

	// Fuzzy fallback: word-overlap ratio against the roster.
	if official, score := r.bestOverlap(roster, lower); score > 0.3 {
		log.Printf("[teams] fuzzy-resolved %q to %q (score %.2f)", raw, official, score)
		return official
	}

	return name
}

// resolveByHint resolves city-prefixed baseball mentions whose text still
// carries a nickname fragment.
func resolveByHint(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "new york"):
		if containsAny(lower, "yank", "nyy") {
			return "New York Yankees", true
		}
		if containsAny(lower, "met", "nym") {
			return "New York Mets", true
		}
	case strings.Contains(lower, "los angeles"):
		if containsAny(lower, "angel", "laa") {
			return "Los Angeles Angels", true
		}
		if containsAny(lower, "dodger", "lad") {
			return "Los Angeles Dodgers", true
		}
	case strings.Contains(lower, "chicago"):
		if containsAny(lower, "cub", "chc") {
			return "Chicago Cubs", true
		}
		if containsAny(lower, "white", "sox", "chw", "cws") {
			return "Chicago White Sox", true
		}
	}
	return "", false
}

// bestOverlap scores every roster entry by shared-word ratio and returns
// the best candidate.
func (r *Registry) bestOverlap(roster []string, lower string) (string, float64) {
	inputWords := strings.Fields(lower)
	if len(inputWords) == 0 {
		return "", 0
	}
	var best string
	var bestScore float64
	for _, official := range roster {
		officialWords := strings.Fields(strings.ToLower(official))
		common := 0
		for _, w := range officialWords {
			for _, in := range inputWords {
				if w == in {
					common++
					break
				}
			}
		}
		if common == 0 {
			continue
		}
		denom := len(officialWords)
		if len(inputWords) > denom {
			denom = len(inputWords)
		}
		score := float64(common) / float64(denom)
		if score > bestScore {
			bestScore = score
			best = official
		}
	}
	return best, bestScore
}

// splitName separates an official "<City> <Nickname>" string. Multi-word
// cities (New York, Los Angeles, ...) keep both words on the city side.
func splitName(official string) (city, nickname string, ok bool) {
	parts := strings.Fields(strings.ToLower(official))
	if len(parts) < 2 {
		return "", "", false
	}
	cityWords := 1
	switch parts[0] {
	case "new", "los", "san", "st.", "kansas", "oklahoma", "green", "las",
		"tampa", "golden", "salt":
		if len(parts) > 2 {
			cityWords = 2
		}
	}
	return strings.Join(parts[:cityWords], " "), strings.Join(parts[cityWords:], " "), true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func containsAnyWord(s, words string) bool {
	for _, w := range strings.Fields(words) {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
