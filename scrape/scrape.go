// Package scrape runs the fetch, extract, clean and save pipeline over a
// list of URLs.
package scrape

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/bloom"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// uniqueFalsePositiveRate bounds how often Config.Unique drops a fragment
// that was not actually a repeat.
const uniqueFalsePositiveRate = 1e-6

// Scraper orchestrates one or more scrape runs.
// A Scraper holds no per-run state and may be reused.
type Scraper struct {
	Fetcher   tagscrape.Fetcher
	Extractor tagscrape.TagExtractor

	// Writer persists the result when Config.Save is set.
	Writer tagscrape.SentenceWriter
}

// page holds the outcome of processing a single URL.
type page struct {
	result    tagscrape.PageResult
	fragments []string
}

// Scrape fetches every configured URL, extracts fragments, cleans them and,
// if cfg.Save is set, writes them before returning. Unset fields of cfg
// take their defaults.
//
// Pages that fail to fetch or parse are recorded in Result.Pages and
// contribute no fragments, unless cfg.Strict is set, in which case the
// first failure is returned. Fragments are assembled in URL order whatever
// the concurrency, so concurrent and sequential runs return identical
// sentences. The progress callback, if provided, receives one event per
// URL and is never called concurrently.
func (s *Scraper) Scrape(ctx context.Context, cfg tagscrape.Config, progress tagscrape.ProgressFunc) (*tagscrape.Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Save != "" && s.Writer == nil {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "save to %q requested but no writer configured", cfg.Save)
	}

	pages := make([]page, len(cfg.URLs))

	var err error
	if cfg.Concurrency <= 1 {
		err = s.scrapeSequential(ctx, cfg, pages, progress)
	} else {
		err = s.scrapeConcurrent(ctx, cfg, pages, progress)
	}
	if err != nil {
		return nil, err
	}

	result := &tagscrape.Result{
		ID:    uuid.New().String(),
		Pages: make([]tagscrape.PageResult, len(pages)),
	}

	var fragments []string
	for i, p := range pages {
		result.Pages[i] = p.result
		fragments = append(fragments, p.fragments...)
	}

	sentences := tagscrape.Clean(fragments)
	if cfg.Unique {
		sentences = bloom.Unique(sentences, uniqueFalsePositiveRate)
	}
	if sentences == nil {
		sentences = []string{}
	}
	result.Sentences = sentences

	if cfg.Save != "" {
		if err := s.Writer.WriteSentences(ctx, cfg.Save, sentences); err != nil {
			return nil, fmt.Errorf("save sentences to %s: %w", cfg.Save, err)
		}
	}

	return result, nil
}

// scrapeSequential processes URLs strictly one after another in list order.
func (s *Scraper) scrapeSequential(ctx context.Context, cfg tagscrape.Config, pages []page, progress tagscrape.ProgressFunc) error {
	total := len(cfg.URLs)
	for i, url := range cfg.URLs {
		if err := ctx.Err(); err != nil {
			return err
		}

		pages[i] = s.scrapePage(ctx, url, cfg)
		notify(progress, pages[i], i+1, total)

		if err := pages[i].result.Err; err != nil && cfg.Strict {
			return fmt.Errorf("scrape %s: %w", url, err)
		}
	}
	return ctx.Err()
}

// scrapeConcurrent processes up to cfg.Concurrency URLs at once.
func (s *Scraper) scrapeConcurrent(ctx context.Context, cfg tagscrape.Config, pages []page, progress tagscrape.ProgressFunc) error {
	total := len(cfg.URLs)

	var mu sync.Mutex
	completed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, url := range cfg.URLs {
		i, url := i, url
		g.Go(func() error {
			p := s.scrapePage(gctx, url, cfg)
			pages[i] = p

			mu.Lock()
			completed++
			notify(progress, p, completed, total)
			mu.Unlock()

			if p.result.Err != nil && cfg.Strict {
				return fmt.Errorf("scrape %s: %w", url, p.result.Err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// scrapePage fetches and extracts a single URL.
func (s *Scraper) scrapePage(ctx context.Context, url string, cfg tagscrape.Config) page {
	p := page{result: tagscrape.PageResult{URL: url}}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		p.result.Err = err
		return p
	}
	p.result.Bytes = len(html)
	p.result.Hash = ComputeHash(html)

	texts, err := s.Extractor.Extract(html, cfg.Tags)
	if err != nil {
		p.result.Err = err
		return p
	}

	for _, text := range texts {
		if cfg.ShouldSplit {
			p.fragments = append(p.fragments, tagscrape.Split(text)...)
		} else {
			p.fragments = append(p.fragments, text)
		}
	}
	p.result.Fragments = len(p.fragments)

	return p
}

func notify(progress tagscrape.ProgressFunc, p page, completed, total int) {
	if progress == nil {
		return
	}
	progress(tagscrape.Progress{
		URL:       p.result.URL,
		Completed: completed,
		Total:     total,
		Fragments: p.result.Fragments,
		Error:     p.result.Err,
	})
}
