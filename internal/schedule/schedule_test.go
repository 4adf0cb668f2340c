package schedule

import (
	"testing"
	"time"
)

func testGame(id, team1, team2 string, status Status) *Game {
	return &Game{
		ID:      id,
		League:  "MLB",
		Status:  status,
		Team1:   team1,
		Team2:   team2,
		Matchup: team1 + " vs " + team2,
	}
}

func TestAddIndexesTeams(t *testing.T) {
	r := NewResult("MLB", time.Date(2024, 5, 19, 12, 0, 0, 0, time.UTC))
	g := testGame("1_newyorkyankees_bostonredsox_1905", "New York Yankees", "Boston Red Sox", StatusUpcoming)
	r.Add(g)

	if r.Meta.GameCount != 1 || len(r.Games) != 1 {
		t.Fatalf("game count = %d, games = %d", r.Meta.GameCount, len(r.Games))
	}

	// Full name, nickname, and long-word keys all resolve to the game.
	for _, key := range []string{
		"new york yankees", "yankees", "york",
		"boston red sox", "sox", "boston",
	} {
		games := r.ByTeam[key]
		if len(games) != 1 || games[0] != g {
			t.Errorf("ByTeam[%q] = %d games, want the committed game", key, len(games))
		}
	}

	// Short words are not indexed on their own.
	if _, ok := r.ByTeam["red"]; ok {
		t.Error("three-letter word indexed")
	}
}

func TestAddIdempotentIndexing(t *testing.T) {
	r := NewResult("MLB", time.Now())

	// Two distinct games sharing a team accumulate under that team's keys,
	// but a single game is never indexed twice under one key.
	g1 := testGame("1_newyorkyankees_bostonredsox_1905", "New York Yankees", "Boston Red Sox", StatusUpcoming)
	g2 := testGame("2_newyorkyankees_detroittigers_2005", "New York Yankees", "Detroit Tigers", StatusUpcoming)
	r.Add(g1)
	r.Add(g2)

	if got := len(r.ByTeam["yankees"]); got != 2 {
		t.Errorf("ByTeam[yankees] has %d games, want 2", got)
	}
	if got := len(r.ByTeam["boston red sox"]); got != 1 {
		t.Errorf("ByTeam[boston red sox] has %d games, want 1", got)
	}

	// "new york" produces overlapping word keys ("york") for both team
	// entries of the same game; the game must still appear once.
	g3 := testGame("3_newyorkyankees_newyorkmets_1705", "New York Yankees", "New York Mets", StatusUpcoming)
	r.Add(g3)
	count := 0
	for _, g := range r.ByTeam["york"] {
		if g.ID == g3.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("same-city game indexed %d times under shared key, want 1", count)
	}
}

func TestMatchupIndex(t *testing.T) {
	r := NewResult("MLB", time.Now())
	g := testGame("1_losangelesangels_losangelesdodgers_1905", "Los Angeles Angels", "Los Angeles Dodgers", StatusUpcoming)
	r.Add(g)

	idx := r.MatchupIndex()
	forward := "Los Angeles Angels vs Los Angeles Dodgers_" + g.ID
	reverse := "Los Angeles Dodgers vs Los Angeles Angels_" + g.ID

	if idx[forward] != g {
		t.Errorf("forward matchup key missing: %q", forward)
	}
	if idx[reverse] != g {
		t.Errorf("reverse matchup key missing: %q", reverse)
	}
	if len(idx) != 2 {
		t.Errorf("index has %d entries, want 2", len(idx))
	}
}

func TestCompleted(t *testing.T) {
	r := NewResult("MLB", time.Now())

	done := testGame("1_a_b_1905", "Boston Red Sox", "Detroit Tigers", StatusCompleted)
	done.Result = "5-3"
	ppd := testGame("2_c_d_1905", "Chicago Cubs", "Miami Marlins", StatusCompleted)
	ppd.Result = "Postponed"
	upcoming := testGame("3_e_f_1905", "New York Mets", "Atlanta Braves", StatusUpcoming)
	live := testGame("4_g_h_1905", "Houston Astros", "Texas Rangers", StatusLive)

	for _, g := range []*Game{done, ppd, upcoming, live} {
		r.Add(g)
	}

	finished, postponed := r.Completed()
	if len(finished) != 1 || finished[0] != done {
		t.Errorf("finished = %d games", len(finished))
	}
	if len(postponed) != 1 || postponed[0] != ppd {
		t.Errorf("postponed = %d games", len(postponed))
	}
}

func TestWithoutTeamIndex(t *testing.T) {
	r := NewResult("MLB", time.Now())
	r.Add(testGame("1_a_b_1905", "Boston Red Sox", "Detroit Tigers", StatusUpcoming))

	stripped := r.WithoutTeamIndex()
	if stripped.ByTeam != nil {
		t.Error("team index survived stripping")
	}
	if len(stripped.Games) != 1 {
		t.Errorf("stripped copy has %d games", len(stripped.Games))
	}
	if r.ByTeam == nil {
		t.Error("original result was mutated")
	}
}

func TestNormalizeTeamKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"New York Yankees", "new york yankees"},
		{"St. Louis Cardinals", "st louis cardinals"},
		{"Philadelphia 76ers", "philadelphia 76ers"},
		{"  D'Backs  ", "dbacks"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTeamKey(tt.input); got != tt.want {
			t.Errorf("NormalizeTeamKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
