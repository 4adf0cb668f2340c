package scrape

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/fortuna/gametime/internal/schedule"
)

var (
	finalIndicator = regexp.MustCompile(`\b(FINAL|F(/\w+)?)\b`)
	timeCellScore  = regexp.MustCompile(`F\s+(\d+)\D+(\d+)`)
	cellScore      = regexp.MustCompile(`(?:^|\s)(\d+)[-\s]+(\d+)(?:\s|$)`)
	resultScore    = regexp.MustCompile(`(\d+)[\s,]*-?[\s,]*(\d+)`)
	winPattern     = regexp.MustCompile(`(?i)(?:WIN|W):\s*([^,;]+)`)
	lossPattern    = regexp.MustCompile(`(?i)(?:LOSS|L):\s*([^,;]+)`)
)

// session owns the mutable per-invocation scrape state: the game counter and
// the matchup keys already committed. One session never outlives its scrape.
type session struct {
	counter int
	seen    map[string]bool
}

func newSession() *session {
	return &session{seen: make(map[string]bool)}
}

// classification is the outcome of the row state machine. Rows that reach no
// terminal state are discarded by the caller.
type classification struct {
	status schedule.Status
	result string
	winner string
	loser  string
	start  time.Time
}

// classify runs the lifecycle state machine over one row's extracted fields.
func (s *Scraper) classify(f rowFields, sectionDate time.Time) (classification, bool) {
	upper := strings.ToUpper(f.timeText)

	if f.postponed {
		return classification{status: schedule.StatusCompleted, result: "Postponed"}, true
	}

	if f.hasResult {
		c := classification{status: schedule.StatusCompleted, result: f.resultText}
		resultUpper := strings.ToUpper(f.resultText)
		if strings.Contains(resultUpper, "POSTPONED") || strings.Contains(resultUpper, "PPD") {
			c.result = "Postponed"
		} else if m := resultScore.FindStringSubmatch(f.resultText); m != nil {
			c.result = m[1] + "-" + m[2]
		}
		return c, true
	}

	if strings.Contains(upper, "LIVE") || strings.Contains(upper, "IN PROGRESS") {
		return classification{status: schedule.StatusLive}, true
	}

	if strings.Contains(upper, "FINAL") || strings.Contains(upper, "F/") {
		return s.classifyFinal(f), true
	}

	// Status text alone was inconclusive; a final indicator in any cell
	// still marks the game completed.
	for _, text := range f.cellTexts {
		if finalIndicator.MatchString(strings.ToUpper(text)) {
			c := classification{status: schedule.StatusCompleted, result: "Final"}
			if m := cellScore.FindStringSubmatch(text); m != nil {
				c.result = m[1] + "-" + m[2]
			}
			c.winner, c.loser = extractWinLoss(f.cellTexts)
			return c, true
		}
	}

	if strings.Contains(f.timeText, ":") &&
		(strings.Contains(upper, "AM") || strings.Contains(upper, "PM") || strings.Contains(upper, "ET")) {
		if start, ok := s.parseStartTime(f.timeText, sectionDate); ok {
			return classification{status: schedule.StatusUpcoming, start: start}, true
		}
	}

	log.Printf("[classify] unrecognized time format %q, skipping row", f.timeText)
	return classification{}, false
}

// classifyFinal builds a completed classification from a FINAL status text,
// digging a score out of the time cell first and any other cell second.
func (s *Scraper) classifyFinal(f rowFields) classification {
	c := classification{status: schedule.StatusCompleted, result: "Final"}
	if m := timeCellScore.FindStringSubmatch(f.timeText); m != nil {
		c.result = m[1] + "-" + m[2]
	} else {
		for _, text := range f.cellTexts {
			if m := cellScore.FindStringSubmatch(text); m != nil {
				c.result = m[1] + "-" + m[2]
				break
			}
		}
	}
	c.winner, c.loser = extractWinLoss(f.cellTexts)
	return c
}

func extractWinLoss(cellTexts []string) (winner, loser string) {
	for _, text := range cellTexts {
		if winner == "" {
			if m := winPattern.FindStringSubmatch(text); m != nil {
				winner = strings.TrimSpace(m[1])
			}
		}
		if loser == "" {
			if m := lossPattern.FindStringSubmatch(text); m != nil {
				loser = strings.TrimSpace(m[1])
			}
		}
	}
	return winner, loser
}

// parseStartTime parses a schedule time like "7:05 PM ET" or "19:05" and
// anchors it to the section's date in the Eastern zone. The section date,
// not today, carries the day: schedules list several days at once.
func (s *Scraper) parseStartTime(timeText string, sectionDate time.Time) (time.Time, bool) {
	cleaned := strings.TrimSpace(timeText)
	for _, zone := range []string{" ET", " EST", " EDT"} {
		cleaned = strings.TrimSuffix(cleaned, zone)
	}
	cleaned = strings.TrimSpace(cleaned)

	var parsed time.Time
	var err error
	for _, layout := range []string{"3:04 PM", "15:04"} {
		parsed, err = time.Parse(layout, cleaned)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, false
	}

	local := time.Date(sectionDate.Year(), sectionDate.Month(), sectionDate.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, s.eastern)
	return local, true
}

// commit finalizes a classified row: builds the matchup identity, rejects
// duplicates, assigns the game ID, and writes the record into the result.
// Two mentions carrying distinct known codes always commit as a distinct
// game, so same-city doubleheaders are never merged away.
func (s *Scraper) commit(res *schedule.Result, sess *session, f rowFields,
	team1, team2 string, c classification,
	sectionDate, now time.Time, rowPos, tableIdx int) {

	code1, code2 := f.team1.code, f.team2.code

	key1 := strings.ToLower(team1)
	if code1 != "" {
		key1 += "_" + code1
	}
	key2 := strings.ToLower(team2)
	if code2 != "" {
		key2 += "_" + code2
	}
	matchupKey := key1 + "_" + key2
	reverseKey := key2 + "_" + key1

	distinctCodes := code1 != "" && code2 != "" && code1 != code2
	if !distinctCodes && (sess.seen[matchupKey] || sess.seen[reverseKey]) {
		log.Printf("[classify] duplicate matchup %s vs %s, already processed", team1, team2)
		return
	}

	sess.counter++

	timeToken := now.In(s.eastern).Format("1504")
	if c.status == schedule.StatusUpcoming {
		timeToken = c.start.Format("1504")
	}
	suffix := ""
	switch c.status {
	case schedule.StatusLive:
		suffix = "_LIVE"
	case schedule.StatusCompleted:
		suffix = "_COMPLETED"
	}
	strip := func(name string) string {
		return strings.ReplaceAll(strings.ToLower(name), " ", "")
	}
	gameID := fmt.Sprintf("%d_%s_%s_%s%s", sess.counter, strip(team1), strip(team2), timeToken, suffix)

	g := &schedule.Game{
		ID:            gameID,
		League:        res.League,
		Status:        c.status,
		Team1:         team1,
		Team2:         team2,
		Team1Raw:      f.team1.text,
		Team2Raw:      f.team2.text,
		Team1Code:     code1,
		Team2Code:     code2,
		Matchup:       team1 + " vs " + team2,
		SectionDate:   sectionDate.Format("2006-01-02"),
		RowPosition:   rowPos,
		TablePosition: tableIdx,
	}

	switch c.status {
	case schedule.StatusUpcoming:
		g.StartTimeLocal = c.start.Format("03:04 PM MST")
		g.StartTimeUTC = c.start.UTC().Format(time.RFC3339)
		g.GameDate = c.start.Format("2006-01-02")
	case schedule.StatusLive:
		started := now.In(s.eastern)
		g.StartTimeLocal = started.Format("03:04 PM MST")
		g.StartTimeUTC = started.UTC().Format(time.RFC3339)
		g.GameDate = started.Format("2006-01-02")
	case schedule.StatusCompleted:
		g.Result = c.result
		g.Winner = c.winner
		g.Loser = c.loser
		g.GameDate = sectionDate.Format("2006-01-02")
	}

	res.Add(g)
	sess.seen[matchupKey] = true
	sess.seen[reverseKey] = true

	log.Printf("[classify] committed %s game: %s vs %s [%s]", c.status, team1, team2, gameID)
}
