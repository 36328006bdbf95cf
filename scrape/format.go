package scrape

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of a fetched page body as hex.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// DisplayURL drops the scheme from u and, if the rest is longer than width,
// keeps its tail behind a "..." marker. Article slugs sit at the end of
// FAQ URLs, so the tail is what tells pages apart in progress lines.
func DisplayURL(u string, width int) string {
	if _, rest, ok := strings.Cut(u, "://"); ok {
		u = rest
	}
	switch {
	case width <= 0:
		return ""
	case len(u) <= width:
		return u
	case width <= len("..."):
		return u[len(u)-width:]
	}
	return "..." + u[len(u)-width+len("..."):]
}

// FormatBytes renders a page byte total with binary units.
func FormatBytes(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n) / 1024
	for _, unit := range []string{"KB", "MB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f GB", size)
}
