package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/fs"
	"github.com/fwojciec/tagscrape/goquery"
	tshttp "github.com/fwojciec/tagscrape/http"
	"github.com/fwojciec/tagscrape/rod"
	"github.com/fwojciec/tagscrape/scrape"
	tsslog "github.com/fwojciec/tagscrape/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the fetcher selected by flags. Set before calling Run().
	// Used for end-to-end testing without network access.
	Fetcher tagscrape.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tagscrape"),
		kong.Description("Scrape the text of HTML tags from a list of pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := goquery.ValidateTags(cfg.WithDefaults().Tags); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		if cli.Browser {
			rodFetcher, err := rod.NewFetcher(rod.WithTimeout(cli.Timeout))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = rodFetcher
		} else {
			fetcher = tshttp.NewFetcher(tshttp.WithTimeout(cli.Timeout))
		}
		defer fetcher.Close()
	}

	var extractor tagscrape.TagExtractor = goquery.NewExtractor()
	var writer tagscrape.SentenceWriter = fs.NewWriter()

	// Wrap services with logging decorators
	if cli.Debug {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		fetcher = tsslog.NewLoggingFetcher(fetcher, logger)
		extractor = tsslog.NewLoggingExtractor(extractor, logger)
		writer = tsslog.NewLoggingWriter(writer, logger)
	}

	deps.Scraper = &scrape.Scraper{
		Fetcher:   fetcher,
		Extractor: extractor,
		Writer:    writer,
	}

	cmd := &ScrapeCmd{Config: cfg}
	return cmd.Run(deps)
}
