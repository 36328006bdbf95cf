package mock

import (
	"context"

	"github.com/fwojciec/tagscrape"
)

var _ tagscrape.SentenceWriter = (*SentenceWriter)(nil)

// SentenceWriter is a mock implementation of tagscrape.SentenceWriter.
type SentenceWriter struct {
	WriteSentencesFn func(ctx context.Context, dest string, sentences []string) error
}

func (w *SentenceWriter) WriteSentences(ctx context.Context, dest string, sentences []string) error {
	return w.WriteSentencesFn(ctx, dest, sentences)
}
