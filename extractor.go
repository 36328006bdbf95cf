package tagscrape

// TagExtractor pulls the text content of tagged elements out of an HTML page.
type TagExtractor interface {
	// Extract parses html and returns the text of every element matching
	// each tag. Tags are visited in the given order and, within a tag,
	// elements are visited in document order. Text is the concatenated
	// descendant text with markup stripped.
	Extract(html string, tags []string) ([]string, error)
}
