// Package scrape implements the schedule-ingestion pipeline: fetch the
// schedule page for a league, locate its date sections, parse game rows,
// resolve team mentions against the registry, split same-city collisions,
// classify each game's lifecycle state, and emit a deduplicated result.
//
// Every call builds fresh state; nothing persists between invocations.
package scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/gametime/internal/schedule"
	"github.com/fortuna/gametime/internal/teams"
)

// DefaultBaseURL is the schedule site root; per-league paths hang off it.
const DefaultBaseURL = "https://www.espn.com"

var schedulePaths = map[teams.League]string{
	teams.Basketball: "/nba/schedule",
	teams.Football:   "/nfl/schedule",
	teams.Baseball:   "/mlb/schedule",
	teams.Hockey:     "/nhl/schedule",
}

// Scraper runs the schedule pipeline. It is safe for concurrent use: the
// registry is immutable and all per-scrape state lives in the invocation.
type Scraper struct {
	fetcher  Fetcher
	registry *teams.Registry
	baseURL  string
	eastern  *time.Location
}

// NewScraper builds a scraper around a fetcher and the shared registry.
// baseURL may be empty to use the default schedule site.
func NewScraper(fetcher Fetcher, registry *teams.Registry, baseURL string) (*Scraper, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("loading Eastern timezone: %w", err)
	}
	return &Scraper{
		fetcher:  fetcher,
		registry: registry,
		baseURL:  baseURL,
		eastern:  eastern,
	}, nil
}

// ScheduleURL returns the schedule page URL for a league.
func (s *Scraper) ScheduleURL(league teams.League) string {
	return s.baseURL + schedulePaths[league]
}

// FetchSchedule fetches and parses the league's schedule page. A transport
// failure returns a nil result and an error; a page with no parsable games
// returns an empty result and no error, so callers can tell "site down"
// from "no games today". An unsupported league yields an empty result.
func (s *Scraper) FetchSchedule(ctx context.Context, league teams.League) (*schedule.Result, error) {
	now := time.Now()
	if !s.registry.Supported(league) {
		log.Printf("[scraper] unsupported league %q, returning empty schedule", league)
		return schedule.NewResult(string(league), now), nil
	}

	url := s.ScheduleURL(league)
	log.Printf("[scraper] fetching %s schedule from %s", league, url)

	html, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s schedule: %w", league, err)
	}

	doc, err := parseHTML(html)
	if err != nil {
		return nil, fmt.Errorf("parsing %s schedule: %w", league, err)
	}

	return s.ParseSchedule(doc, league, now), nil
}

// ParseSchedule runs the pipeline over an already-parsed document. Split out
// from FetchSchedule so the full pipeline is exercisable without a network.
func (s *Scraper) ParseSchedule(doc *goquery.Document, league teams.League, today time.Time) *schedule.Result {
	res := schedule.NewResult(string(league), today)
	if !s.registry.Supported(league) {
		return res
	}
	sess := newSession()

	sections := locateSections(doc, today)
	log.Printf("[scraper] %s: processing %d date sections", league, len(sections))

	for _, sec := range sections {
		for tableIdx, table := range sec.tables {
			rowPos := 0
			s.tableRows(table).Each(func(_ int, row *goquery.Selection) {
				f, ok := parseRow(row, league)
				if !ok {
					return
				}
				rowPos++
				s.processRow(res, sess, league, f, sec.date, today, rowPos, tableIdx)
			})
		}
	}

	log.Printf("[scraper] %s: committed %d games", league, res.Meta.GameCount)
	return res
}

// tableRows returns the game rows of a table container, preferring the
// site's row class and falling back to any tr.
func (s *Scraper) tableRows(table *goquery.Selection) *goquery.Selection {
	rows := table.Find("tr.Table__TR")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}
	return rows
}

// processRow takes one parsed row through resolution, disambiguation,
// classification, and commit. Any failure discards the row; errors never
// propagate past a single row.
func (s *Scraper) processRow(res *schedule.Result, sess *session, league teams.League,
	f rowFields, sectionDate, now time.Time, rowPos, tableIdx int) {

	if strings.EqualFold(f.team1.text, f.team2.text) && f.team1.code == f.team2.code {
		if f.team1.code == "" {
			log.Printf("[scraper] %s: identical mentions %q, skipping row", league, f.team1.text)
			return
		}
	}

	team1 := s.registry.Resolve(league, f.team1.text)
	team2 := s.registry.Resolve(league, f.team2.text)

	if strings.EqualFold(team1, team2) {
		split1, split2, ok := s.registry.SplitSameCity(league, f.team1.code, f.team2.code)
		if !ok {
			log.Printf("[scraper] %s: unresolved same-city collision %q vs %q, skipping row",
				league, f.team1.text, f.team2.text)
			return
		}
		team1, team2 = split1, split2
		log.Printf("[scraper] %s: split same-city matchup into %s vs %s", league, team1, team2)
	}

	c, ok := s.classify(f, sectionDate)
	if !ok {
		return
	}

	s.commit(res, sess, f, team1, team2, c, sectionDate, now, rowPos, tableIdx)
}
