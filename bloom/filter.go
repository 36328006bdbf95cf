// Package bloom provides approximate fragment de-duplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for fragment de-duplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd reports whether s might already be in the filter and adds it.
func (f *Filter) TestAndAdd(s string) bool {
	return f.f.TestAndAddString(s)
}

// Unique returns items with repeats removed, keeping first occurrences in
// order. A false positive drops an item that was not a repeat, with
// probability bounded by fpRate.
func Unique(items []string, fpRate float64) []string {
	f := NewFilter(uint(len(items)), fpRate)
	out := make([]string, 0, len(items))
	for _, s := range items {
		if f.TestAndAdd(s) {
			continue
		}
		out = append(out, s)
	}
	return out
}
