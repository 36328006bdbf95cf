package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/tagscrape"
)

// Ensure LoggingExtractor implements tagscrape.TagExtractor.
var _ tagscrape.TagExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a TagExtractor with debug logging.
type LoggingExtractor struct {
	next   tagscrape.TagExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next tagscrape.TagExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the element count.
func (e *LoggingExtractor) Extract(html string, tags []string) (texts []string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"tags", len(tags),
			"elements", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, tags)
}
