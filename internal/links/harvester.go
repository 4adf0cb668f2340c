// Package links scans an arbitrary page for outbound links that mention two
// or more franchises of the same league, correlating streaming/link pages
// with sports matchups.
package links

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/gametime/internal/teams"
)

const fetchTimeout = 10 * time.Second

// Link is one harvested outbound link with its inferred matchup title.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Harvester fetches pages and extracts team-mention links. Its variation
// table is built once from the registry and read-only afterwards.
type Harvester struct {
	client *http.Client
	// variations maps league -> name variation -> official name. A bare
	// city is only a variation when no franchise in another league shares
	// it, so cross-league mentions never collide.
	variations map[teams.League]map[string]string
}

// NewHarvester builds a harvester over the shared registry.
func NewHarvester(registry *teams.Registry) *Harvester {
	return &Harvester{
		client:     &http.Client{Timeout: fetchTimeout},
		variations: buildVariations(registry),
	}
}

// FetchLinks fetches the page and returns every outbound link whose text or
// target mentions at least two franchises of one league.
func (h *Harvester) FetchLinks(ctx context.Context, pageURL string) ([]Link, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return h.Harvest(doc, pageURL), nil
}

// Harvest scans a parsed document. Split from FetchLinks for testability.
func (h *Harvester) Harvest(doc *goquery.Document, pageURL string) []Link {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	found := make(map[Link]bool)
	doc.Find("li, a").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		href, _ := el.Attr("href")
		if text == "" && href == "" {
			return
		}

		abs := absolutize(base, href)
		if href != "" && abs == "" {
			return
		}

		searchText := strings.ToLower(text + " " + abs)

		for _, league := range teams.Leagues {
			matched := h.matchTeams(league, searchText)
			if len(matched) < 2 {
				continue
			}
			sort.Strings(matched)
			title := fmt.Sprintf("%s: %s vs %s", league, matched[0], matched[1])

			target := abs
			if target == "" {
				// List items without their own href inherit the wrapping
				// link's target.
				if parentHref, ok := el.Closest("a").Attr("href"); ok {
					target = absolutize(base, parentHref)
				}
			}
			if target != "" {
				found[Link{URL: target, Title: title}] = true
			}
		}
	})

	out := make([]Link, 0, len(found))
	for l := range found {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].URL != out[j].URL {
			return out[i].URL < out[j].URL
		}
		return out[i].Title < out[j].Title
	})
	log.Printf("[links] harvested %d matchup links from %s", len(out), pageURL)
	return out
}

// matchTeams returns the official names of this league's franchises whose
// variations appear as whole words in the text.
func (h *Harvester) matchTeams(league teams.League, searchText string) []string {
	seen := make(map[string]bool)
	for variation, official := range h.variations[league] {
		if seen[official] {
			continue
		}
		pattern := `\b` + regexp.QuoteMeta(variation) + `\b`
		if matched, _ := regexp.MatchString(pattern, searchText); matched {
			seen[official] = true
		}
	}
	out := make([]string, 0, len(seen))
	for official := range seen {
		out = append(out, official)
	}
	return out
}

// buildVariations derives the lookup table: full name and nickname always,
// city only when unique across all four leagues.
func buildVariations(registry *teams.Registry) map[teams.League]map[string]string {
	cityCount := make(map[string]int)
	cities := make(map[teams.League]map[string]string)
	for _, league := range teams.Leagues {
		cities[league] = make(map[string]string)
		for _, official := range registry.AllTeams(league) {
			parts := strings.Fields(strings.ToLower(official))
			if len(parts) < 2 {
				continue
			}
			city := parts[0]
			if _, dup := cities[league][city]; !dup {
				cityCount[city]++
			}
			cities[league][city] = official
		}
	}

	variations := make(map[teams.League]map[string]string)
	for _, league := range teams.Leagues {
		variations[league] = make(map[string]string)
		for _, official := range registry.AllTeams(league) {
			parts := strings.Fields(strings.ToLower(official))
			if len(parts) < 2 {
				continue
			}
			full := strings.ToLower(official)
			nickname := strings.Join(parts[1:], " ")
			variations[league][full] = official
			variations[league][nickname] = official
			if cityCount[parts[0]] == 1 {
				variations[league][parts[0]] = official
			}
		}
	}
	return variations
}

// absolutize resolves an href against the page URL, returning "" for
// anything that is not http(s).
func absolutize(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	return parsed.String()
}
