package scrape

import (
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// dateHeaderLayout matches the schedule site's section titles, e.g.
// "Sunday, May 19, 2024".
const dateHeaderLayout = "Monday, January 2, 2006"

// Sections older than a week or more than two days out are not worth
// processing; this bounds the scrape to the practically relevant window.
const (
	sectionWindowPast   = 7 * 24 * time.Hour
	sectionWindowFuture = 2 * 24 * time.Hour
)

// section is one date-labeled group of schedule tables.
type section struct {
	date   time.Time
	tables []*goquery.Selection
}

// locateSections finds date-headed table groups in the document. When no
// date structure can be recovered, every table is treated as a single
// section dated today. Tables carrying a RESULT column that were not
// attached to any section are added as a supplementary section dated today
// so completed games are still discovered.
func locateSections(doc *goquery.Document, today time.Time) []section {
	var sections []section
	byDate := make(map[string]int)
	attached := make(map[*html.Node]bool)

	doc.Find("h2.Table__Title, div.Table__Title").Each(func(_ int, header *goquery.Selection) {
		text := strings.TrimSpace(header.Text())
		date, err := time.ParseInLocation(dateHeaderLayout, text, today.Location())
		if err != nil {
			log.Printf("[sections] skipping header with unrecognized date format: %q", text)
			return
		}

		table := findSectionTable(header)
		if table == nil {
			return
		}
		for _, node := range table.Nodes {
			attached[node] = true
		}

		key := date.Format("2006-01-02")
		if i, ok := byDate[key]; ok {
			sections[i].tables = append(sections[i].tables, table)
			return
		}
		byDate[key] = len(sections)
		sections = append(sections, section{date: date, tables: []*goquery.Selection{table}})
	})

	if len(sections) == 0 {
		log.Printf("[sections] no date sections found, treating all tables as today")
		all := collectTables(doc)
		if len(all) > 0 {
			sections = append(sections, section{date: today, tables: all})
			for _, t := range all {
				for _, node := range t.Nodes {
					attached[node] = true
				}
			}
		}
	}

	// Result tables that never got attached to a date section still hold
	// completed games; sweep them in under today's date.
	var resultTables []*goquery.Selection
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if len(table.Nodes) > 0 && attached[table.Nodes[0]] {
			return
		}
		if tableAttached(table, attached) {
			return
		}
		hasResult := false
		table.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.EqualFold(strings.TrimSpace(th.Text()), "RESULT") {
				hasResult = true
				return false
			}
			return true
		})
		if hasResult {
			resultTables = append(resultTables, table)
		}
	})
	if len(resultTables) > 0 {
		log.Printf("[sections] found %d unattached tables with RESULT headers", len(resultTables))
		key := today.Format("2006-01-02")
		if i, ok := byDate[key]; ok {
			sections[i].tables = append(sections[i].tables, resultTables...)
		} else {
			sections = append(sections, section{date: today, tables: resultTables})
		}
	}

	return filterSectionWindow(sections, today)
}

// findSectionTable locates the table belonging to a date header: the shared
// structural container first, then the header's next sibling, then a forward
// scan past the header's parent.
func findSectionTable(header *goquery.Selection) *goquery.Selection {
	container := header.Closest("div[class*='ScheduleTables']")
	if container.Length() > 0 {
		if t := container.Find("div.ResponsiveTable").First(); t.Length() > 0 {
			return t
		}
	}

	next := header.Next()
	if next.Length() > 0 {
		if next.Is("div.ResponsiveTable") {
			return next
		}
		if t := next.Find("div.ResponsiveTable").First(); t.Length() > 0 {
			return t
		}
	}

	if t := header.NextAllFiltered("div.ResponsiveTable").First(); t.Length() > 0 {
		return t
	}
	if t := header.Parent().NextAll().Find("div.ResponsiveTable").First(); t.Length() > 0 {
		return t
	}
	return nil
}

// collectTables gathers every table-like element in the document, preferring
// the site's wrapper class and falling back to bare tables.
func collectTables(doc *goquery.Document) []*goquery.Selection {
	var tables []*goquery.Selection
	doc.Find("div.ResponsiveTable").Each(func(_ int, t *goquery.Selection) {
		tables = append(tables, t)
	})
	if len(tables) == 0 {
		doc.Find("table").Each(func(_ int, t *goquery.Selection) {
			tables = append(tables, t)
		})
	}
	return tables
}

// tableAttached reports whether the table sits inside a container already
// claimed by a date section.
func tableAttached(table *goquery.Selection, attached map[*html.Node]bool) bool {
	for parent := table.Parent(); parent.Length() > 0; parent = parent.Parent() {
		for _, node := range parent.Nodes {
			if attached[node] {
				return true
			}
		}
	}
	return false
}

// filterSectionWindow drops sections outside [today-7d, today+2d].
func filterSectionWindow(sections []section, today time.Time) []section {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}
	start := day(today).Add(-sectionWindowPast)
	end := day(today).Add(sectionWindowFuture)

	kept := sections[:0]
	for _, s := range sections {
		d := day(s.date)
		if d.Before(start) || d.After(end) {
			log.Printf("[sections] skipping section dated %s: outside processing window", d.Format("2006-01-02"))
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
