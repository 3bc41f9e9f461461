// Package sites describes the crawlable news sites: base URL, request headers
// and the markup anchors the extractors rely on.
package sites

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Default anchors, matching the www.ixbt.com page layout.
const (
	DefaultName       = "ixbt"
	DefaultURL        = "https://www.ixbt.com"
	SelectorIndexItem = "li.item"
	SelectorIndexLink = "a"
	SelectorTitle     = "h1"
	SelectorSubtitle  = "h4"
	SelectorCategory  = "a.news-tag"
	SelectorBoundary  = "meta[itemprop='datePublished']"
	SelectorParagraph = "p"
)

var (
	// ErrUnknownSite is returned when a named profile is not configured.
	ErrUnknownSite = errors.New("unknown site")
	// ErrMissingRequiredField indicates a profile without a name or URL.
	ErrMissingRequiredField = errors.New("missing required field")
)

// Selectors are the CSS selectors for the index and article page anchors.
type Selectors struct {
	// IndexItem matches one article entry on a per-day index page.
	IndexItem string `mapstructure:"index_item"`
	// IndexLink matches the hyperlink inside an index entry; the first one wins.
	IndexLink string `mapstructure:"index_link"`
	Title     string `mapstructure:"title"`
	Subtitle  string `mapstructure:"subtitle"`
	Category  string `mapstructure:"category"`
	// Boundary marks the end of article content; later paragraphs are boilerplate.
	Boundary  string `mapstructure:"boundary"`
	Paragraph string `mapstructure:"paragraph"`
}

// Profile describes one site.
type Profile struct {
	Name      string            `mapstructure:"name"`
	URL       string            `mapstructure:"url"`
	Headers   map[string]string `mapstructure:"headers"`
	Selectors Selectors         `mapstructure:"selectors"`
}

// DefaultSelectors returns the anchors used when a profile leaves one empty.
func DefaultSelectors() Selectors {
	return Selectors{
		IndexItem: SelectorIndexItem,
		IndexLink: SelectorIndexLink,
		Title:     SelectorTitle,
		Subtitle:  SelectorSubtitle,
		Category:  SelectorCategory,
		Boundary:  SelectorBoundary,
		Paragraph: SelectorParagraph,
	}
}

// Default returns the built-in ixbt profile.
func Default() Profile {
	return Profile{
		Name:      DefaultName,
		URL:       DefaultURL,
		Headers:   map[string]string{},
		Selectors: DefaultSelectors(),
	}
}

// withDefaults fills empty selectors and normalises the URL.
func (p Profile) withDefaults() Profile {
	d := DefaultSelectors()
	s := &p.Selectors
	fill := func(dst *string, def string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = def
		}
	}
	fill(&s.IndexItem, d.IndexItem)
	fill(&s.IndexLink, d.IndexLink)
	fill(&s.Title, d.Title)
	fill(&s.Subtitle, d.Subtitle)
	fill(&s.Category, d.Category)
	fill(&s.Boundary, d.Boundary)
	fill(&s.Paragraph, d.Paragraph)

	p.URL = strings.TrimRight(p.URL, "/")
	if p.Headers == nil {
		p.Headers = map[string]string{}
	}
	return p
}

// Validate checks that the profile has a name and an absolute http(s) URL.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingRequiredField)
	}
	if p.URL == "" {
		return fmt.Errorf("%w: url", ErrMissingRequiredField)
	}
	u, err := url.Parse(p.URL)
	if err != nil {
		return fmt.Errorf("invalid url for site %s: %w", p.Name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url for site %s: %q is not an absolute http(s) url", p.Name, p.URL)
	}
	return nil
}

// WithURL returns a copy of the profile pointing at another base URL.
func (p Profile) WithURL(baseURL string) Profile {
	p.URL = strings.TrimRight(baseURL, "/")
	return p
}
