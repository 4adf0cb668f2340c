package scrape

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fortuna/gametime/internal/schedule"
	"github.com/fortuna/gametime/internal/teams"
)

// stubFetcher serves canned HTML so pipeline tests never touch a network.
type stubFetcher struct {
	html string
	err  error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.html, f.err
}

// fixtureDay matches the date headers in testdata/mlb_schedule.html.
var fixtureDay = time.Date(2024, 5, 19, 12, 0, 0, 0, time.UTC)

func newTestScraper(t *testing.T, fetcher Fetcher) *Scraper {
	t.Helper()
	s, err := NewScraper(fetcher, teams.NewRegistry(), "")
	if err != nil {
		t.Fatalf("NewScraper: %v", err)
	}
	return s
}

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return string(data)
}

func parseFixtureSchedule(t *testing.T) *schedule.Result {
	t.Helper()
	doc, err := parseHTML(loadFixture(t, "mlb_schedule.html"))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	s := newTestScraper(t, &stubFetcher{})
	return s.ParseSchedule(doc, teams.Baseball, fixtureDay)
}

func findGame(t *testing.T, res *schedule.Result, matchup string) *schedule.Game {
	t.Helper()
	for _, g := range res.Games {
		if g.Matchup == matchup {
			return g
		}
	}
	t.Fatalf("no game %q in result (%d games)", matchup, len(res.Games))
	return nil
}

func TestParseScheduleFixture(t *testing.T) {
	res := parseFixtureSchedule(t)

	// The fixture carries eight parsable rows plus one unattached result
	// table. Of those: one TBD row and one self-matchup row are discarded,
	// one duplicate is deduplicated, and the May 9 section falls outside
	// the processing window.
	if len(res.Games) != 7 {
		for _, g := range res.Games {
			t.Logf("got game: %s [%s]", g.Matchup, g.ID)
		}
		t.Fatalf("parsed %d games, want 7", len(res.Games))
	}
	if res.Meta.GameCount != 7 {
		t.Errorf("Meta.GameCount = %d, want 7", res.Meta.GameCount)
	}
	if res.League != "MLB" {
		t.Errorf("League = %q", res.League)
	}
}

func TestParseScheduleUpcomingGame(t *testing.T) {
	res := parseFixtureSchedule(t)
	g := findGame(t, res, "Boston Red Sox vs Detroit Tigers")

	if g.Status != schedule.StatusUpcoming {
		t.Fatalf("status = %s, want upcoming", g.Status)
	}
	if g.ID != "1_bostonredsox_detroittigers_1905" {
		t.Errorf("ID = %q", g.ID)
	}
	if g.StartTimeLocal != "07:05 PM EDT" {
		t.Errorf("StartTimeLocal = %q", g.StartTimeLocal)
	}
	if g.StartTimeUTC != "2024-05-19T23:05:00Z" {
		t.Errorf("StartTimeUTC = %q", g.StartTimeUTC)
	}
	if g.GameDate != "2024-05-19" || g.SectionDate != "2024-05-19" {
		t.Errorf("dates = %q / %q", g.GameDate, g.SectionDate)
	}
	if g.Team1Raw != "Boston" || g.Team2Raw != "Detroit" {
		t.Errorf("raw mentions = %q / %q", g.Team1Raw, g.Team2Raw)
	}
	if g.Team1Code != "bos" || g.Team2Code != "det" {
		t.Errorf("codes = %q / %q", g.Team1Code, g.Team2Code)
	}
	if g.Result != "" || g.Winner != "" {
		t.Errorf("upcoming game has result fields: %q / %q", g.Result, g.Winner)
	}
}

func TestParseScheduleSameCitySplit(t *testing.T) {
	res := parseFixtureSchedule(t)

	// Both mentions read "Los Angeles"; the link codes must split them.
	g := findGame(t, res, "Los Angeles Angels vs Los Angeles Dodgers")
	if g.Team1 != "Los Angeles Angels" || g.Team2 != "Los Angeles Dodgers" {
		t.Errorf("teams = %q / %q", g.Team1, g.Team2)
	}
	if g.Team1Code != "laa" || g.Team2Code != "lad" {
		t.Errorf("codes = %q / %q", g.Team1Code, g.Team2Code)
	}
	if g.Status != schedule.StatusUpcoming {
		t.Errorf("status = %s", g.Status)
	}
}

func TestParseScheduleDeduplication(t *testing.T) {
	res := parseFixtureSchedule(t)

	count := 0
	for _, g := range res.Games {
		if g.Team1 == "Chicago Cubs" && g.Team2 == "Miami Marlins" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate rows committed %d Cubs-Marlins games, want 1", count)
	}
}

func TestParseScheduleDiscards(t *testing.T) {
	res := parseFixtureSchedule(t)

	// The TBD row (Yankees at Braves) never commits.
	for _, g := range res.Games {
		if g.Team2 == "Atlanta Braves" {
			t.Errorf("TBD row committed: %s", g.Matchup)
		}
	}
	// A row whose two mentions are the same team never commits.
	for _, g := range res.Games {
		if g.Team1 == g.Team2 {
			t.Errorf("self-matchup committed: %s", g.Matchup)
		}
	}
	// The May 9 section is older than the processing window.
	for _, g := range res.Games {
		if g.Team1 == "Minnesota Twins" {
			t.Errorf("out-of-window section committed: %s", g.Matchup)
		}
	}
}

func TestParseSchedulePostponedGame(t *testing.T) {
	res := parseFixtureSchedule(t)
	g := findGame(t, res, "Seattle Mariners vs Houston Astros")

	if g.Status != schedule.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	if g.Result != "Postponed" {
		t.Errorf("Result = %q, want Postponed", g.Result)
	}
	if g.GameDate != "2024-05-19" {
		t.Errorf("GameDate = %q", g.GameDate)
	}

	_, postponed := res.Completed()
	if len(postponed) != 1 || postponed[0] != g {
		t.Errorf("Completed() reported %d postponed games", len(postponed))
	}
}

func TestParseScheduleLiveGame(t *testing.T) {
	res := parseFixtureSchedule(t)
	g := findGame(t, res, "San Francisco Giants vs Colorado Rockies")

	if g.Status != schedule.StatusLive {
		t.Fatalf("status = %s, want live", g.Status)
	}
	if want := "5_sanfranciscogiants_coloradorockies_0800_LIVE"; g.ID != want {
		t.Errorf("ID = %q, want %q", g.ID, want)
	}
}

func TestParseScheduleFinalWithScore(t *testing.T) {
	res := parseFixtureSchedule(t)
	g := findGame(t, res, "New York Yankees vs Baltimore Orioles")

	if g.Status != schedule.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	if g.Result != "5-3" {
		t.Errorf("Result = %q, want 5-3", g.Result)
	}
	if g.Winner != "New York Yankees" || g.Loser != "Baltimore Orioles" {
		t.Errorf("winner/loser = %q / %q", g.Winner, g.Loser)
	}
	if g.SectionDate != "2024-05-18" || g.GameDate != "2024-05-18" {
		t.Errorf("dates = %q / %q", g.SectionDate, g.GameDate)
	}
}

func TestParseScheduleUnattachedResultTable(t *testing.T) {
	res := parseFixtureSchedule(t)
	g := findGame(t, res, "Philadelphia Phillies vs Washington Nationals")

	if g.Status != schedule.StatusCompleted {
		t.Fatalf("status = %s, want completed", g.Status)
	}
	if g.Result != "7-4" {
		t.Errorf("Result = %q, want 7-4", g.Result)
	}
	// Unattached result tables are swept in under today's section.
	if g.SectionDate != "2024-05-19" {
		t.Errorf("SectionDate = %q", g.SectionDate)
	}
}

func TestParseScheduleTeamIndex(t *testing.T) {
	res := parseFixtureSchedule(t)

	games := res.ByTeam["yankees"]
	if len(games) != 1 {
		t.Fatalf("ByTeam[yankees] has %d games, want 1", len(games))
	}
	if games[0].Team1 != "New York Yankees" {
		t.Errorf("indexed game is %s", games[0].Matchup)
	}

	idx := res.MatchupIndex()
	key := "Baltimore Orioles vs New York Yankees_" + games[0].ID
	if idx[key] != games[0] {
		t.Errorf("reversed matchup key %q missing", key)
	}
}

func TestParseScheduleEmptyDocument(t *testing.T) {
	doc, err := parseHTML("<html><body><p>nothing here</p></body></html>")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestScraper(t, &stubFetcher{})
	res := s.ParseSchedule(doc, teams.Baseball, fixtureDay)
	if len(res.Games) != 0 {
		t.Errorf("empty document produced %d games", len(res.Games))
	}
	if res.Games == nil {
		t.Error("Games slice is nil, want empty")
	}
}

func TestFetchScheduleTransportError(t *testing.T) {
	s := newTestScraper(t, &stubFetcher{err: errors.New("connection refused")})
	res, err := s.FetchSchedule(context.Background(), teams.Baseball)
	if err == nil {
		t.Fatal("want error for transport failure")
	}
	if res != nil {
		t.Errorf("transport failure returned a result: %+v", res)
	}
}

func TestFetchScheduleUnsupportedLeague(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("should not be called")}
	s := newTestScraper(t, fetcher)
	res, err := s.FetchSchedule(context.Background(), teams.League("MLS"))
	if err != nil {
		t.Fatalf("unsupported league returned error: %v", err)
	}
	if res == nil || len(res.Games) != 0 {
		t.Fatalf("unsupported league result = %+v, want empty", res)
	}
}

func TestScheduleURL(t *testing.T) {
	s := newTestScraper(t, &stubFetcher{})
	if got := s.ScheduleURL(teams.Hockey); got != "https://www.espn.com/nhl/schedule" {
		t.Errorf("ScheduleURL = %q", got)
	}

	custom, err := NewScraper(&stubFetcher{}, teams.NewRegistry(), "http://localhost:9999")
	if err != nil {
		t.Fatal(err)
	}
	if got := custom.ScheduleURL(teams.Baseball); got != "http://localhost:9999/mlb/schedule" {
		t.Errorf("custom base ScheduleURL = %q", got)
	}
}
