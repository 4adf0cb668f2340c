// gamectl is a one-shot CLI over the schedule scraper and link harvester.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fortuna/gametime/internal/links"
	"github.com/fortuna/gametime/internal/schedule"
	"github.com/fortuna/gametime/internal/scrape"
	"github.com/fortuna/gametime/internal/teams"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagCompleted bool
	flagRenderJS  bool
	flagBaseURL   string
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "gamectl",
		Short: "Scrape sports schedules and matchup links",
	}
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output JSON instead of text")
	root.PersistentFlags().BoolVar(&flagRenderJS, "render-js", false, "Fetch pages through a headless browser")

	scheduleCmd := &cobra.Command{
		Use:   "schedule <league>",
		Short: "Fetch today's normalized schedule for a league (NBA, NFL, MLB, NHL)",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedule,
	}
	scheduleCmd.Flags().BoolVar(&flagCompleted, "completed", false, "Show only completed games")
	scheduleCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Override the schedule site base URL")

	linksCmd := &cobra.Command{
		Use:   "links <url>",
		Short: "Harvest links mentioning two teams of the same league from a page",
		Args:  cobra.ExactArgs(1),
		RunE:  runLinks,
	}

	root.AddCommand(scheduleCmd, linksCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newFetcher() (scrape.Fetcher, func()) {
	if flagRenderJS {
		browser := scrape.NewBrowserFetcher()
		return browser, browser.Close
	}
	return scrape.NewHTTPFetcher(), func() {}
}

func runSchedule(cmd *cobra.Command, args []string) error {
	league, ok := teams.ParseLeague(args[0])
	if !ok {
		return fmt.Errorf("unsupported league %q (choose from NBA, NFL, MLB, NHL)", args[0])
	}

	fetcher, closeFetcher := newFetcher()
	defer closeFetcher()

	scraper, err := scrape.NewScraper(fetcher, teams.NewRegistry(), flagBaseURL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	res, err := scraper.FetchSchedule(ctx, league)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res)
	}
	printScheduleText(res)
	return nil
}

func runLinks(cmd *cobra.Command, args []string) error {
	harvester := links.NewHarvester(teams.NewRegistry())

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	harvested, err := harvester.FetchLinks(ctx, args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(harvested)
	}
	for _, l := range harvested {
		fmt.Printf("%s\n  %s\n", l.Title, l.URL)
	}
	fmt.Printf("%d matchup links found\n", len(harvested))
	return nil
}

func printScheduleText(res *schedule.Result) {
	games := res.Games
	if flagCompleted {
		finished, postponed := res.Completed()
		games = append(finished, postponed...)
	}
	for _, g := range games {
		switch g.Status {
		case schedule.StatusUpcoming:
			fmt.Printf("%-9s %s (%s)\n", g.Status, g.Matchup, g.StartTimeLocal)
		case schedule.StatusLive:
			fmt.Printf("%-9s %s\n", g.Status, g.Matchup)
		case schedule.StatusCompleted:
			fmt.Printf("%-9s %s (%s)\n", g.Status, g.Matchup, g.Result)
		}
	}
	fmt.Printf("%d games on %s\n", len(games), res.Meta.Date)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
