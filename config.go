package tagscrape

import "slices"

// defaultURLs are the pages scraped when a Config does not name any.
var defaultURLs = []string{
	"https://faq.soylent.com/hc/en-us/articles/212831963-How-Soylent-makes-a-difference",
	"https://faq.soylent.com/hc/en-us/articles/212767043-What-is-Soylent-",
	"https://faq.soylent.com/hc/en-us/articles/212769443-Why-Soy-Protein-",
	"https://faq.soylent.com/hc/en-us/articles/212769723-Expiration-and-shelf-life",
	"https://faq.soylent.com/hc/en-us/articles/200332079-Can-I-lose-weight-on-Soylent-",
	"https://faq.soylent.com/hc/en-us/articles/204409635-Preparing-Soylent-Powder-with-the-legacy-measuring-scoop",
}

// defaultTags are the tag names extracted when a Config does not name any.
var defaultTags = []string{"p", "h1", "h2", "h3", "h4", "h5", "h6"}

// Config describes a single scrape run.
type Config struct {
	// URLs are fetched in order. A nil slice selects the sample pages;
	// a non-nil empty slice scrapes nothing.
	URLs []string `json:"urls"`

	// Tags are extracted in order for every page. Each tag is a CSS
	// selector, usually a bare element name. A nil slice selects p and h1 to h6.
	Tags []string `json:"tags"`

	// ShouldSplit splits each tag's text on "." into separate fragments.
	ShouldSplit bool `json:"shouldSplit"`

	// Save is the path of the output file. Empty disables saving.
	Save string `json:"save"`

	// Concurrency bounds the number of pages fetched at once.
	// Zero or one fetches pages strictly one after another.
	Concurrency int `json:"concurrency"`

	// Strict aborts the run on the first page that fails to fetch or parse.
	// Otherwise failed pages are reported and skipped.
	Strict bool `json:"strict"`

	// Unique drops repeated fragments after cleaning, keeping the first.
	Unique bool `json:"unique"`
}

// DefaultConfig returns a fresh Config holding every default.
func DefaultConfig() Config {
	return Config{
		URLs: slices.Clone(defaultURLs),
		Tags: slices.Clone(defaultTags),
	}
}

// WithDefaults returns a copy of c with unset fields taken from DefaultConfig.
// The returned slices never alias the receiver's.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	out := c
	if c.URLs == nil {
		out.URLs = def.URLs
	} else {
		out.URLs = slices.Clone(c.URLs)
	}
	if c.Tags == nil {
		out.Tags = def.Tags
	} else {
		out.Tags = slices.Clone(c.Tags)
	}
	return out
}

// Validate returns an error if the config contains invalid fields.
func (c *Config) Validate() error {
	for i, tag := range c.Tags {
		if tag == "" {
			return Errorf(EINVALID, "tag at position %d is empty", i)
		}
	}
	for i, u := range c.URLs {
		if u == "" {
			return Errorf(EINVALID, "URL at position %d is empty", i)
		}
	}
	if c.Concurrency < 0 {
		return Errorf(EINVALID, "concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}
