package scrape

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/gametime/internal/teams"
)

// mention is one side of a matchup as scraped: display text plus the team
// code embedded in the link target, when present.
type mention struct {
	text string
	code string
}

// rowFields is everything the classifier needs from one table row. Cell
// texts are captured here so later stages never touch the DOM.
type rowFields struct {
	team1, team2 mention
	timeText     string
	resultText   string
	hasResult    bool
	postponed    bool
	cellTexts    []string
	rowText      string
}

var timePattern = regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:AM|PM|ET|EST|EDT)?`)

// mentionStrategy attempts to extract both team mentions from a row. Each
// strategy is independent; they are tried in order until one succeeds.
type mentionStrategy func(row *goquery.Selection, cells *goquery.Selection, league teams.League) (mention, mention, bool)

var mentionStrategies = []mentionStrategy{
	mentionsFromAnchors,
	mentionsFromTeamCells,
	mentionsFromSpans,
	mentionsFromLogos,
	mentionsFromLeadingCells,
	mentionsFromAtFormat,
}

// parseRow extracts raw matchup fields from one table row. ok is false when
// the row is a header, yields no team pair, or carries no usable status.
func parseRow(row *goquery.Selection, league teams.League) (rowFields, bool) {
	if row.Find("th").Length() > 0 {
		return rowFields{}, false
	}

	cells := row.Find("td.Table__TD")
	if cells.Length() < 2 {
		cells = row.Find("td")
	}
	if cells.Length() < 2 {
		return rowFields{}, false
	}

	f := rowFields{rowText: strings.TrimSpace(row.Text())}
	cells.Each(func(_ int, cell *goquery.Selection) {
		f.cellTexts = append(f.cellTexts, strings.TrimSpace(cell.Text()))
	})

	upperRow := strings.ToUpper(f.rowText)
	f.postponed = strings.Contains(upperRow, "POSTPONED") || strings.Contains(upperRow, "PPD")

	found := false
	for _, strategy := range mentionStrategies {
		if m1, m2, ok := strategy(row, cells, league); ok {
			f.team1, f.team2 = m1, m2
			found = true
			break
		}
	}
	if !found {
		log.Printf("[rowparse] %s: could not identify teams, skipping row", league)
		return rowFields{}, false
	}

	if cell := row.Find("td[data-header='RESULT']").First(); cell.Length() > 0 {
		f.hasResult = true
		f.resultText = strings.TrimSpace(cell.Text())
	}

	f.timeText = extractTimeText(row, f)
	if f.timeText == "" {
		// Postponed rows and rows with a RESULT column have no start time;
		// route them on through their result text.
		if f.postponed || f.hasResult {
			f.timeText = f.resultText
		} else {
			log.Printf("[rowparse] %s vs %s: no time information, skipping row", f.team1.text, f.team2.text)
			return rowFields{}, false
		}
	}

	if strings.Contains(strings.ToUpper(f.timeText), "TBD") && !f.postponed {
		log.Printf("[rowparse] %s vs %s: start time is TBD, skipping row", f.team1.text, f.team2.text)
		return rowFields{}, false
	}

	return f, true
}

// mentionsFromAnchors takes the first two team-detail links in the row and
// pulls the team code from each link's /team/.../name/<code>/ path.
func mentionsFromAnchors(row *goquery.Selection, _ *goquery.Selection, _ teams.League) (mention, mention, bool) {
	var found []mention
	row.Find("a.AnchorLink").Each(func(_ int, link *goquery.Selection) {
		if len(found) >= 2 {
			return
		}
		href, _ := link.Attr("href")
		isTeamLink := link.Find("abbr").Length() > 0 ||
			strings.Contains(href, "/team/") ||
			!strings.Contains(href, "gamecast")
		if !isTeamLink {
			return
		}
		text := strings.TrimSpace(link.Text())
		if text == "" {
			return
		}
		found = append(found, mention{text: text, code: teamCodeFromHref(href)})
	})
	if len(found) < 2 {
		return mention{}, mention{}, false
	}
	return found[0], found[1], true
}

// mentionsFromTeamCells reads cells explicitly tagged as the away/home team
// columns.
func mentionsFromTeamCells(row *goquery.Selection, _ *goquery.Selection, _ teams.League) (mention, mention, bool) {
	var found []mention
	row.Find("td[class*='Table__Team']").Each(func(_ int, cell *goquery.Selection) {
		if len(found) >= 2 {
			return
		}
		if text := strings.TrimSpace(cell.Text()); text != "" {
			found = append(found, mention{text: text})
		}
	})
	if len(found) < 2 {
		return mention{}, mention{}, false
	}
	return found[0], found[1], true
}

// mentionsFromSpans reads team-name or abbreviation styled inline elements.
func mentionsFromSpans(row *goquery.Selection, _ *goquery.Selection, _ teams.League) (mention, mention, bool) {
	var found []mention
	row.Find("span").Each(func(_ int, span *goquery.Selection) {
		if len(found) >= 2 {
			return
		}
		class, _ := span.Attr("class")
		if !strings.Contains(class, "TeamName") && !strings.Contains(class, "teamName") &&
			!strings.Contains(class, "abbr") {
			return
		}
		if text := strings.TrimSpace(span.Text()); text != "" {
			found = append(found, mention{text: text})
		}
	})
	if len(found) < 2 {
		return mention{}, mention{}, false
	}
	return found[0], found[1], true
}

// mentionsFromLogos reads team names out of logo alt text. The baseball
// schedule is the page that routinely needs this.
func mentionsFromLogos(row *goquery.Selection, _ *goquery.Selection, league teams.League) (mention, mention, bool) {
	if league != teams.Baseball {
		return mention{}, mention{}, false
	}
	var found []mention
	row.Find("img").Each(func(_ int, img *goquery.Selection) {
		if len(found) >= 2 {
			return
		}
		class, _ := img.Attr("class")
		lowered := strings.ToLower(class)
		if !strings.Contains(lowered, "logo") && !strings.Contains(lowered, "team") {
			return
		}
		if alt, ok := img.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			found = append(found, mention{text: strings.TrimSpace(alt)})
		}
	})
	if len(found) < 2 {
		return mention{}, mention{}, false
	}
	return found[0], found[1], true
}

// mentionsFromLeadingCells takes the first two cells' plain text, rejecting
// anything numeric or time-like.
func mentionsFromLeadingCells(_ *goquery.Selection, cells *goquery.Selection, _ teams.League) (mention, mention, bool) {
	looksLikeTeam := func(text string) bool {
		return len(text) > 2 && !strings.Contains(text, ":") &&
			!(text[0] >= '0' && text[0] <= '9')
	}
	t1 := strings.TrimSpace(cells.Eq(0).Text())
	t2 := strings.TrimSpace(cells.Eq(1).Text())
	if !looksLikeTeam(t1) || !looksLikeTeam(t2) {
		return mention{}, mention{}, false
	}
	return mention{text: t1}, mention{text: t2}, true
}

// mentionsFromAtFormat splits a single "Team @ Team" cell, a format the
// basketball and hockey schedules use.
func mentionsFromAtFormat(_ *goquery.Selection, cells *goquery.Selection, league teams.League) (mention, mention, bool) {
	if league != teams.Basketball && league != teams.Hockey {
		return mention{}, mention{}, false
	}
	var m1, m2 mention
	ok := false
	cells.EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		parts := strings.Split(strings.TrimSpace(cell.Text()), "@")
		if len(parts) != 2 {
			return true
		}
		t1, t2 := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if t1 == "" || t2 == "" {
			return true
		}
		m1, m2, ok = mention{text: t1}, mention{text: t2}, true
		return false
	})
	return m1, m2, ok
}

// extractTimeText finds the row's time/status text: a time-or-live styled
// cell first, then an explicit status cell, then a time pattern, live
// keyword, or final indicator in any cell, then live keywords in the full
// row text.
func extractTimeText(row *goquery.Selection, f rowFields) string {
	for _, text := range f.cellTexts {
		if strings.Contains(text, ":") || strings.Contains(text, "LIVE") ||
			strings.Contains(text, "AM") || strings.Contains(text, "PM") {
			return text
		}
	}

	statusText := ""
	row.Find("td").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
		class, _ := cell.Attr("class")
		lowered := strings.ToLower(class)
		if strings.Contains(lowered, "gamestatus") || strings.Contains(lowered, "game-status") {
			statusText = strings.TrimSpace(cell.Text())
			return false
		}
		return true
	})
	if statusText != "" {
		return statusText
	}

	for _, text := range f.cellTexts {
		if m := timePattern.FindString(text); m != "" {
			return text
		}
		if containsLiveKeyword(text) {
			return "LIVE"
		}
		if finalIndicator.MatchString(strings.ToUpper(text)) {
			return text
		}
	}
	if containsLiveKeyword(f.rowText) {
		return "LIVE"
	}
	return ""
}

func containsLiveKeyword(text string) bool {
	upper := strings.ToUpper(text)
	return strings.Contains(upper, "LIVE") ||
		strings.Contains(upper, "IN PROGRESS") ||
		strings.Contains(upper, "ONGOING")
}

// teamCodeFromHref pulls the short team code out of a team-detail URL such
// as "/mlb/team/_/name/laa/los-angeles-angels".
func teamCodeFromHref(href string) string {
	if !strings.Contains(href, "/team/") {
		return ""
	}
	_, after, ok := strings.Cut(href, "/name/")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(after, "/")
	return strings.ToLower(strings.TrimSpace(code))
}
