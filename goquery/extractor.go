// Package goquery provides a goquery-based implementation of
// tagscrape.TagExtractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/tagscrape"
)

// Ensure Extractor implements tagscrape.TagExtractor at compile time.
var _ tagscrape.TagExtractor = (*Extractor)(nil)

// Extractor selects elements by tag name and returns their text content.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ValidateTags returns an EINVALID error for the first tag that does not
// compile as a CSS selector.
func ValidateTags(tags []string) error {
	_, err := compileTags(tags)
	return err
}

func compileTags(tags []string) ([]cascadia.Selector, error) {
	sels := make([]cascadia.Selector, 0, len(tags))
	for _, tag := range tags {
		sel, err := cascadia.Compile(tag)
		if err != nil {
			return nil, tagscrape.Errorf(tagscrape.EINVALID, "invalid tag %q: %v", tag, err)
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// Extract parses html and returns the text of every element matching each
// tag, tags in the given order and elements in document order. Tags are CSS
// selectors; one that does not compile is an EINVALID error.
func (e *Extractor) Extract(html string, tags []string) ([]string, error) {
	sels, err := compileTags(tags)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "failed to parse HTML: %v", err)
	}

	var texts []string
	for _, sel := range sels {
		doc.FindMatcher(sel).Each(func(_ int, s *goquery.Selection) {
			texts = append(texts, s.Text())
		})
	}
	return texts, nil
}
