package main

import (
	"fmt"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/scrape"
)

// Run executes the scrape command. Sentences go to stdout, one per line;
// progress, failures and the summary go to stderr.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(p tagscrape.Progress) {
		if p.Error != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", p.URL, p.Error)
			return
		}
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s (%d fragments)\n", p.Completed, p.Total, scrape.DisplayURL(p.URL, 60), p.Fragments)
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, c.Config, progress)
	if err != nil {
		return err
	}

	for _, sentence := range result.Sentences {
		fmt.Fprintln(deps.Stdout, sentence)
	}

	var totalBytes int
	for _, p := range result.Pages {
		totalBytes += p.Bytes
	}
	failed := len(result.Failed())
	fmt.Fprintf(deps.Stderr, "Scraped %d sentences from %d/%d pages (%s)\n",
		len(result.Sentences), len(result.Pages)-failed, len(result.Pages), scrape.FormatBytes(totalBytes))

	if c.Config.Save != "" {
		fmt.Fprintf(deps.Stderr, "Saved to %s\n", c.Config.Save)
	}

	return nil
}
