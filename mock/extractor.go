package mock

import "github.com/fwojciec/tagscrape"

var _ tagscrape.TagExtractor = (*TagExtractor)(nil)

// TagExtractor is a mock implementation of tagscrape.TagExtractor.
type TagExtractor struct {
	ExtractFn func(html string, tags []string) ([]string, error)
}

func (e *TagExtractor) Extract(html string, tags []string) ([]string, error) {
	return e.ExtractFn(html, tags)
}
