package tagscrape

// PageResult reports what happened to one URL of a run.
type PageResult struct {
	URL string

	// Fragments is the number of raw fragments the page contributed
	// before cleaning.
	Fragments int

	// Bytes is the size of the fetched HTML.
	Bytes int

	// Hash identifies the fetched HTML (xxhash, hex encoded).
	Hash string

	// Err is set when the page could not be fetched or parsed.
	Err error
}

// Result is the outcome of a run.
type Result struct {
	// ID identifies the run in logs.
	ID string

	// Sentences holds the cleaned fragments in extraction order.
	Sentences []string

	// Pages holds one entry per configured URL, in URL order.
	Pages []PageResult
}

// Failed returns the pages that could not be fetched or parsed.
func (r *Result) Failed() []PageResult {
	var failed []PageResult
	for _, p := range r.Pages {
		if p.Err != nil {
			failed = append(failed, p)
		}
	}
	return failed
}

// Progress reports progress while pages are processed.
type Progress struct {
	URL       string
	Completed int
	Total     int
	Fragments int
	Error     error
}

// ProgressFunc is called as pages are processed.
type ProgressFunc func(Progress)
