package tagscrape

import "context"

// SentenceWriter persists the final fragment collection of a run.
type SentenceWriter interface {
	// WriteSentences replaces whatever is stored at dest with sentences.
	WriteSentences(ctx context.Context, dest string, sentences []string) error
}
