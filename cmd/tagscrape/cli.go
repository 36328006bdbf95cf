package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URLs        []string      `name:"url" short:"u" sep:"none" placeholder:"URL" help:"Page to scrape (repeatable, default: sample Soylent FAQ pages)"`
	Tags        []string      `name:"tag" short:"t" placeholder:"TAG" help:"HTML tag to extract (repeatable or comma-separated, default: p,h1-h6)"`
	Split       bool          `short:"s" help:"Split tag text on periods into separate sentences"`
	Save        string        `short:"o" placeholder:"PATH" help:"Write sentences to PATH as a module.exports data file"`
	Concurrency int           `short:"c" default:"1" help:"Pages fetched at once (1 keeps fetches strictly sequential)"`
	Timeout     time.Duration `default:"10s" help:"Fetch timeout per page"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome before extracting"`
	Strict      bool          `help:"Abort on the first page that fails to fetch or parse"`
	Unique      bool          `help:"Drop repeated sentences, keeping the first"`
	Debug       bool          `help:"Log fetches, extraction and writes to stderr"`
}

// Config converts parsed flags into a run configuration.
// Flags that were not given leave the corresponding defaults in place.
func (c *CLI) Config() tagscrape.Config {
	cfg := tagscrape.Config{
		ShouldSplit: c.Split,
		Save:        c.Save,
		Concurrency: c.Concurrency,
		Strict:      c.Strict,
		Unique:      c.Unique,
	}
	if len(c.URLs) > 0 {
		cfg.URLs = c.URLs
	}
	if len(c.Tags) > 0 {
		cfg.Tags = c.Tags
	}
	return cfg
}

// ScrapeCmd runs a scrape and prints the surviving sentences.
type ScrapeCmd struct {
	Config tagscrape.Config
}
