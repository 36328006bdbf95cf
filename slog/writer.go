package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscrape"
)

// Ensure LoggingWriter implements tagscrape.SentenceWriter.
var _ tagscrape.SentenceWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a SentenceWriter with debug logging.
type LoggingWriter struct {
	next   tagscrape.SentenceWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next tagscrape.SentenceWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WriteSentences delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) WriteSentences(ctx context.Context, dest string, sentences []string) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("write sentences",
			"dest", dest,
			"count", len(sentences),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteSentences(ctx, dest, sentences)
}
