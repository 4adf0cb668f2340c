package teams

import "testing"

func TestParseLeague(t *testing.T) {
	tests := []struct {
		input string
		want  League
		ok    bool
	}{
		{"MLB", Baseball, true},
		{"mlb", Baseball, true},
		{" nba ", Basketball, true},
		{"NFL", Football, true},
		{"NHL", Hockey, true},
		{"MLS", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLeague(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLeague(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolve(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name   string
		league League
		input  string
		want   string
	}{
		{"exact full name", Baseball, "New York Yankees", "New York Yankees"},
		{"case insensitive full name", Baseball, "new york yankees", "New York Yankees"},
		{"abbreviation code", Baseball, "NYY", "New York Yankees"},
		{"abbreviation two letter", Baseball, "SF", "San Francisco Giants"},
		{"hockey abbreviation", Hockey, "VGK", "Vegas Golden Knights"},
		{"nickname only", Baseball, "Yankees", "New York Yankees"},
		{"nickname only basketball", Basketball, "Lakers", "Los Angeles Lakers"},
		{"unambiguous city", Baseball, "Boston", "Boston Red Sox"},
		{"city plus nickname fragment", Basketball, "Portland Blazers", "Portland Trail Blazers"},
		{"fuzzy overlap", Football, "Bay Packers", "Green Bay Packers"},
		{"unknown passes through", Baseball, "Springfield Isotopes", "Springfield Isotopes"},
		{"empty passes through", Baseball, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.league, tt.input); got != tt.want {
				t.Errorf("Resolve(%s, %q) = %q, want %q", tt.league, tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveAmbiguousCities(t *testing.T) {
	r := NewRegistry()

	// Bare New York and Los Angeles fall back to documented defaults.
	if got := r.Resolve(Baseball, "New York"); got != "New York Yankees" {
		t.Errorf("bare New York resolved to %q, want New York Yankees", got)
	}
	if got := r.Resolve(Baseball, "Los Angeles"); got != "Los Angeles Dodgers" {
		t.Errorf("bare Los Angeles resolved to %q, want Los Angeles Dodgers", got)
	}

	// Bare Chicago stays unresolved so code-based splitting still works.
	if got := r.Resolve(Baseball, "Chicago"); got != "Chicago" {
		t.Errorf("bare Chicago resolved to %q, want it unchanged", got)
	}

	// Nickname hints override the defaults.
	if got := r.Resolve(Baseball, "New York Mets"); got != "New York Mets" {
		t.Errorf("New York Mets resolved to %q", got)
	}
	if got := r.Resolve(Baseball, "Los Angeles Angels"); got != "Los Angeles Angels" {
		t.Errorf("Los Angeles Angels resolved to %q", got)
	}
	if got := r.Resolve(Baseball, "Chicago White Sox"); got != "Chicago White Sox" {
		t.Errorf("Chicago White Sox resolved to %q", got)
	}
}

func TestResolveUnsupportedLeague(t *testing.T) {
	r := NewRegistry()
	if got := r.Resolve(League("MLS"), "LA Galaxy"); got != "LA Galaxy" {
		t.Errorf("unsupported league resolution changed input: %q", got)
	}
	if r.Supported(League("MLS")) {
		t.Error("MLS should not be supported")
	}
	if teams := r.AllTeams(League("MLS")); len(teams) != 0 {
		t.Errorf("unsupported league returned %d teams", len(teams))
	}
}

func TestAllTeams(t *testing.T) {
	r := NewRegistry()
	for _, league := range Leagues {
		teams := r.AllTeams(league)
		if len(teams) < 30 {
			t.Errorf("%s roster has %d teams, want at least 30", league, len(teams))
		}
		seen := make(map[string]bool)
		for _, team := range teams {
			if seen[team] {
				t.Errorf("%s roster lists %q twice", league, team)
			}
			seen[team] = true
		}
	}
}

func TestNameForCode(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		league League
		code   string
		want   string
		ok     bool
	}{
		{Baseball, "laa", "Los Angeles Angels", true},
		{Baseball, "LAD", "Los Angeles Dodgers", true},
		{Baseball, "chc", "Chicago Cubs", true},
		{Baseball, "cws", "Chicago White Sox", true},
		{Hockey, "nyr", "New York Rangers", true},
		{Hockey, "ana", "Anaheim Ducks", true},
		{Baseball, "xyz", "", false},
		{Basketball, "lal", "", false},
	}
	for _, tt := range tests {
		got, ok := r.NameForCode(tt.league, tt.code)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NameForCode(%s, %q) = (%q, %v), want (%q, %v)",
				tt.league, tt.code, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitSameCity(t *testing.T) {
	r := NewRegistry()

	t1, t2, ok := r.SplitSameCity(Baseball, "laa", "lad")
	if !ok || t1 != "Los Angeles Angels" || t2 != "Los Angeles Dodgers" {
		t.Errorf("SplitSameCity(laa, lad) = (%q, %q, %v)", t1, t2, ok)
	}

	t1, t2, ok = r.SplitSameCity(Hockey, "nyi", "nyr")
	if !ok || t1 != "New York Islanders" || t2 != "New York Rangers" {
		t.Errorf("SplitSameCity(nyi, nyr) = (%q, %q, %v)", t1, t2, ok)
	}

	// Splitting requires both codes, distinct and known.
	if _, _, ok := r.SplitSameCity(Baseball, "laa", ""); ok {
		t.Error("split succeeded with one missing code")
	}
	if _, _, ok := r.SplitSameCity(Baseball, "laa", "laa"); ok {
		t.Error("split succeeded with identical codes")
	}
	if _, _, ok := r.SplitSameCity(Baseball, "laa", "zzz"); ok {
		t.Error("split succeeded with an unknown code")
	}
}
