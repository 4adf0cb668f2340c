package teams

import "strings"

// codeNames maps URL team codes to official names for franchises that share
// a city, per league. These are the only codes the splitter trusts; anything
// else fails disambiguation and the row is dropped rather than guessed at.
var codeNames = map[League]map[string]string{
	Baseball: {
		"chc": "Chicago Cubs",
		"chw": "Chicago White Sox",
		"cws": "Chicago White Sox",
		"nyy": "New York Yankees",
		"nym": "New York Mets",
		"laa": "Los Angeles Angels",
		"lad": "Los Angeles Dodgers",
		"sf":  "San Francisco Giants",
		"oak": "Oakland Athletics",
	},
	Hockey: {
		"nyr": "New York Rangers",
		"nyi": "New York Islanders",
		"lak": "Los Angeles Kings",
		"ana": "Anaheim Ducks",
	},
}

// NameForCode resolves a URL team code (e.g. "laa") to an official name.
func (r *Registry) NameForCode(league League, code string) (string, bool) {
	official, ok := codeNames[league][strings.ToLower(strings.TrimSpace(code))]
	return official, ok
}

// SplitSameCity resolves a same-city collision: both sides of a matchup
// resolved to the same canonical name, and each mention carries a URL team
// code. Both codes must be present, distinct, and known for the split to
// succeed; otherwise ok is false and the caller discards the row.
func (r *Registry) SplitSameCity(league League, code1, code2 string) (team1, team2 string, ok bool) {
	c1 := strings.ToLower(strings.TrimSpace(code1))
	c2 := strings.ToLower(strings.TrimSpace(code2))
	if c1 == "" || c2 == "" || c1 == c2 {
		return "", "", false
	}
	team1, ok1 := r.NameForCode(league, c1)
	team2, ok2 := r.NameForCode(league, c2)
	if !ok1 || !ok2 {
		return "", "", false
	}
	return team1, team2, true
}
