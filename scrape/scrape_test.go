package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/goquery"
	"github.com/fwojciec/tagscrape/mock"
	"github.com/fwojciec/tagscrape/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureFetcher serves static HTML keyed by URL. Unknown URLs fail.
func fixtureFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", fmt.Errorf("HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

func newScraper(pages map[string]string) *scrape.Scraper {
	return &scrape.Scraper{
		Fetcher:   fixtureFetcher(pages),
		Extractor: goquery.NewExtractor(),
	}
}

func TestScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("drops short fragments across pages", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<p>This is long enough text.</p>",
			"https://example.com/b": "<p>Hi.</p>",
		})

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
			Tags: []string{"p"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"This is long enough text."}, result.Sentences)
	})

	t.Run("splits tag text on periods", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<p>First sentence here. Second one too. No.</p>",
		})

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs:        []string{"https://example.com/a"},
			Tags:        []string{"p"},
			ShouldSplit: true,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"First sentence here", "Second one too"}, result.Sentences)
		require.Len(t, result.Pages, 1)
		assert.Equal(t, 4, result.Pages[0].Fragments)
	})

	t.Run("keeps whole element text when not splitting", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<p>First sentence here. Second one too.</p><p>Another whole paragraph.</p>",
		})

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a"},
			Tags: []string{"p"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"First sentence here. Second one too.",
			"Another whole paragraph.",
		}, result.Sentences)
	})

	t.Run("orders fragments by tag list then document order", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": `<h1>The main title here</h1>
<p>Paragraph one is here.</p>
<h2>A secondary heading here</h2>
<p>Paragraph two is here.</p>`,
			"https://example.com/b": `<h1>Second page title here</h1><p>Second page paragraph here.</p>`,
		})

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
			Tags: []string{"p", "h1", "h2"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"Paragraph one is here.",
			"Paragraph two is here.",
			"The main title here",
			"A secondary heading here",
			"Second page paragraph here.",
			"Second page title here",
		}, result.Sentences)
	})

	t.Run("drops whitespace-only fragments with and without splitting", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/a": "<p>   </p><p>\n\t</p><p>Real words live here.</p>",
		}

		for _, split := range []bool{false, true} {
			result, err := newScraper(pages).Scrape(context.Background(), tagscrape.Config{
				URLs:        []string{"https://example.com/a"},
				Tags:        []string{"p"},
				ShouldSplit: split,
			}, nil)

			require.NoError(t, err)
			assert.Equal(t, []string{"Real words live here"}, trimPeriods(result.Sentences), "split=%v", split)
		}
	})

	t.Run("is idempotent over static fixtures", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<h1>Soylent is great.</h1><p>One. Two three four. Five six seven.</p>",
			"https://example.com/b": "<p>Eight nine ten.</p>",
		})
		cfg := tagscrape.Config{
			URLs:        []string{"https://example.com/a", "https://example.com/b"},
			ShouldSplit: true,
		}

		first, err := s.Scrape(context.Background(), cfg, nil)
		require.NoError(t, err)
		second, err := s.Scrape(context.Background(), cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, first.Sentences, second.Sentences)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("uses default URLs and tags when unset", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var fetched []string
		var gotTags []string
		s := &scrape.Scraper{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					mu.Lock()
					defer mu.Unlock()
					fetched = append(fetched, url)
					return "<p>x</p>", nil
				},
			},
			Extractor: &mock.TagExtractor{
				ExtractFn: func(_ string, tags []string) ([]string, error) {
					gotTags = tags
					return nil, nil
				},
			},
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{}, nil)

		require.NoError(t, err)
		def := tagscrape.DefaultConfig()
		assert.Equal(t, def.URLs, fetched)
		assert.Equal(t, def.Tags, gotTags)
		assert.Empty(t, result.Sentences)
		assert.NotNil(t, result.Sentences)
	})

	t.Run("returns empty result for empty URL list", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.TagExtractor{},
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{URLs: []string{}}, nil)

		require.NoError(t, err)
		assert.Empty(t, result.Sentences)
		assert.Empty(t, result.Pages)
	})

	t.Run("reports page size and hash", func(t *testing.T) {
		t.Parallel()

		html := "<p>Soylent is great.</p>"
		s := newScraper(map[string]string{"https://example.com/a": html})

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a"},
		}, nil)

		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		page := result.Pages[0]
		assert.Equal(t, "https://example.com/a", page.URL)
		assert.Equal(t, len(html), page.Bytes)
		assert.Equal(t, scrape.ComputeHash(html), page.Hash)
		assert.Equal(t, 1, page.Fragments)
		assert.NoError(t, page.Err)
	})

	t.Run("drops repeated fragments when unique", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<p>Shared footer text here.</p><p>Only on page a.</p>",
			"https://example.com/b": "<p>Shared footer text here.</p><p>Only on page b.</p>",
		})
		cfg := tagscrape.Config{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
			Tags: []string{"p"},
		}

		all, err := s.Scrape(context.Background(), cfg, nil)
		require.NoError(t, err)
		cfg.Unique = true
		unique, err := s.Scrape(context.Background(), cfg, nil)
		require.NoError(t, err)

		assert.Len(t, all.Sentences, 4)
		assert.Equal(t, []string{
			"Shared footer text here.",
			"Only on page a.",
			"Only on page b.",
		}, unique.Sentences)
	})
}

func TestScraper_Scrape_Failures(t *testing.T) {
	t.Parallel()

	t.Run("skips and reports pages that fail to fetch", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{
			"https://example.com/a": "<p>Page a has text.</p>",
			"https://example.com/c": "<p>Page c has text.</p>",
		})
		var events []tagscrape.Progress

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a", "https://example.com/missing", "https://example.com/c"},
			Tags: []string{"p"},
		}, func(p tagscrape.Progress) {
			events = append(events, p)
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"Page a has text.", "Page c has text."}, result.Sentences)

		failed := result.Failed()
		require.Len(t, failed, 1)
		assert.Equal(t, "https://example.com/missing", failed[0].URL)
		assert.Contains(t, failed[0].Err.Error(), "404")

		require.Len(t, events, 3)
		assert.Equal(t, 2, events[1].Completed)
		assert.Equal(t, 3, events[1].Total)
		assert.Error(t, events[1].Error)
		assert.NoError(t, events[2].Error)
	})

	t.Run("skips and reports pages that fail to parse", func(t *testing.T) {
		t.Parallel()

		s := &scrape.Scraper{
			Fetcher: fixtureFetcher(map[string]string{
				"https://example.com/a": "good",
				"https://example.com/b": "bad",
			}),
			Extractor: &mock.TagExtractor{
				ExtractFn: func(html string, _ []string) ([]string, error) {
					if html == "bad" {
						return nil, tagscrape.Errorf(tagscrape.EINVALID, "failed to parse HTML")
					}
					return []string{"Extracted from good page."}, nil
				},
			},
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a", "https://example.com/b"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"Extracted from good page."}, result.Sentences)
		require.Len(t, result.Failed(), 1)
		assert.Equal(t, tagscrape.EINVALID, tagscrape.ErrorCode(result.Failed()[0].Err))
	})

	t.Run("aborts on first failure when strict", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		fetcher := fixtureFetcher(map[string]string{"https://example.com/c": "<p>never reached here</p>"})
		inner := fetcher.FetchFn
		fetcher.FetchFn = func(ctx context.Context, url string) (string, error) {
			calls.Add(1)
			return inner(ctx, url)
		}
		s := &scrape.Scraper{Fetcher: fetcher, Extractor: goquery.NewExtractor()}

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs:   []string{"https://example.com/missing", "https://example.com/c"},
			Strict: true,
		}, nil)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "https://example.com/missing")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("aborts on failure when strict and concurrent", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{"https://example.com/a": "<p>one two three</p>"})

		_, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs:        []string{"https://example.com/a", "https://example.com/missing"},
			Strict:      true,
			Concurrency: 2,
		}, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{"https://example.com/a": "<p>one two three</p>"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Scrape(ctx, tagscrape.Config{URLs: []string{"https://example.com/a"}}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		s := newScraper(nil)

		_, err := s.Scrape(context.Background(), tagscrape.Config{Tags: []string{""}}, nil)

		require.Error(t, err)
		assert.Equal(t, tagscrape.EINVALID, tagscrape.ErrorCode(err))
	})
}

func TestScraper_Scrape_Save(t *testing.T) {
	t.Parallel()

	t.Run("writes final sentences to destination", func(t *testing.T) {
		t.Parallel()

		var gotDest string
		var gotSentences []string
		s := newScraper(map[string]string{"https://example.com/a": "<p>First sentence here. No.</p>"})
		s.Writer = &mock.SentenceWriter{
			WriteSentencesFn: func(_ context.Context, dest string, sentences []string) error {
				gotDest = dest
				gotSentences = sentences
				return nil
			},
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs:        []string{"https://example.com/a"},
			ShouldSplit: true,
			Save:        "./test.js",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "./test.js", gotDest)
		assert.Equal(t, result.Sentences, gotSentences)
		assert.Equal(t, []string{"First sentence here"}, gotSentences)
	})

	t.Run("does not write when save is unset", func(t *testing.T) {
		t.Parallel()

		s := newScraper(map[string]string{"https://example.com/a": "<p>one two three</p>"})
		s.Writer = &mock.SentenceWriter{
			WriteSentencesFn: func(context.Context, string, []string) error {
				t.Fatal("writer should not be called")
				return nil
			},
		}

		_, err := s.Scrape(context.Background(), tagscrape.Config{URLs: []string{"https://example.com/a"}}, nil)

		require.NoError(t, err)
	})

	t.Run("propagates write failure", func(t *testing.T) {
		t.Parallel()

		writeErr := errors.New("permission denied")
		s := newScraper(map[string]string{"https://example.com/a": "<p>one two three</p>"})
		s.Writer = &mock.SentenceWriter{
			WriteSentencesFn: func(context.Context, string, []string) error {
				return writeErr
			},
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs: []string{"https://example.com/a"},
			Save: "/read-only/out.js",
		}, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, writeErr)
	})

	t.Run("rejects save without writer", func(t *testing.T) {
		t.Parallel()

		s := newScraper(nil)

		_, err := s.Scrape(context.Background(), tagscrape.Config{URLs: []string{}, Save: "out.js"}, nil)

		require.Error(t, err)
		assert.Equal(t, tagscrape.EINVALID, tagscrape.ErrorCode(err))
	})
}

func TestScraper_Scrape_Concurrency(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/0",
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
		"https://example.com/4",
	}

	// slowFirstFetcher delays earlier URLs longer so that concurrent fetches
	// complete in reverse order, and records the peak number in flight.
	slowFirstFetcher := func(peak *atomic.Int32, order *[]string, mu *sync.Mutex) *mock.Fetcher {
		var inFlight atomic.Int32
		return &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				n := inFlight.Add(1)
				defer inFlight.Add(-1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}

				mu.Lock()
				*order = append(*order, url)
				mu.Unlock()

				idx := int(url[len(url)-1] - '0')
				time.Sleep(time.Duration(len(urls)-idx) * 5 * time.Millisecond)
				return fmt.Sprintf("<p>Fragment from page %d here.</p>", idx), nil
			},
		}
	}

	t.Run("sequential run fetches one page at a time in order", func(t *testing.T) {
		t.Parallel()

		var peak atomic.Int32
		var mu sync.Mutex
		var order []string
		s := &scrape.Scraper{
			Fetcher:   slowFirstFetcher(&peak, &order, &mu),
			Extractor: goquery.NewExtractor(),
		}

		result, err := s.Scrape(context.Background(), tagscrape.Config{URLs: urls, Tags: []string{"p"}}, nil)

		require.NoError(t, err)
		assert.Equal(t, int32(1), peak.Load())
		assert.Equal(t, urls, order)
		assert.Equal(t, []string{
			"Fragment from page 0 here.",
			"Fragment from page 1 here.",
			"Fragment from page 2 here.",
			"Fragment from page 3 here.",
			"Fragment from page 4 here.",
		}, result.Sentences)
	})

	t.Run("concurrent run matches sequential output", func(t *testing.T) {
		t.Parallel()

		var peak atomic.Int32
		var mu sync.Mutex
		var order []string
		s := &scrape.Scraper{
			Fetcher:   slowFirstFetcher(&peak, &order, &mu),
			Extractor: goquery.NewExtractor(),
		}
		var completed []int

		result, err := s.Scrape(context.Background(), tagscrape.Config{
			URLs:        urls,
			Tags:        []string{"p"},
			Concurrency: 2,
		}, func(p tagscrape.Progress) {
			completed = append(completed, p.Completed)
		})

		require.NoError(t, err)
		assert.LessOrEqual(t, peak.Load(), int32(2))
		assert.Equal(t, []string{
			"Fragment from page 0 here.",
			"Fragment from page 1 here.",
			"Fragment from page 2 here.",
			"Fragment from page 3 here.",
			"Fragment from page 4 here.",
		}, result.Sentences)
		for i, p := range result.Pages {
			assert.Equal(t, urls[i], p.URL)
		}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, completed)
	})
}

// trimPeriods strips a trailing period so split and unsplit results compare equal.
func trimPeriods(sentences []string) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		if n := len(s); n > 0 && s[n-1] == '.' {
			s = s[:n-1]
		}
		out[i] = s
	}
	return out
}
