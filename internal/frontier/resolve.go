package frontier

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// trackingParams lists query parameters that are stripped from article URLs.
// These are advertising and analytics trackers that do not affect page content.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"fbclid":       {},
	"gclid":        {},
	"yclid":        {},
}

var (
	errEmptyReference      = errors.New("resolve url: empty reference")
	errMissingSchemeOrHost = errors.New("resolve url: missing scheme or host")
	errUnsupportedScheme   = errors.New("resolve url: unsupported scheme")
)

// ResolveURL resolves ref (typically an href) against base and returns an
// absolute http(s) URL without fragment or tracking parameters.
func ResolveURL(base, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errEmptyReference
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("resolve url: base: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return "", errMissingSchemeOrHost
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("resolve url: %w", err)
	}

	resolved := baseURL.ResolveReference(refURL)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", fmt.Errorf("%w: %s", errUnsupportedScheme, resolved.Scheme)
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	resolved.RawQuery = stripTracking(resolved.Query(), resolved.RawQuery)

	return resolved.String(), nil
}

// stripTracking removes tracking parameters, leaving the raw query untouched
// when there is nothing to strip.
func stripTracking(values url.Values, raw string) string {
	found := false
	for key := range values {
		if _, ok := trackingParams[key]; ok {
			delete(values, key)
			found = true
		}
	}
	if !found {
		return raw
	}
	return values.Encode()
}
