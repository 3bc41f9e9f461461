package sites_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/sites"
)

const sitesYAML = `
sites:
  - name: mirror
    url: https://mirror.example.com/
    headers:
      Accept-Language: ru
    selectors:
      index_item: div.news-item
      boundary: time.published
  - name: ixbt
    url: https://www.ixbt.com
    selectors:
      category: a.tag
`

func TestParse(t *testing.T) {
	t.Parallel()

	profiles, err := sites.Parse([]byte(sitesYAML))
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	mirror, err := sites.Find(profiles, "mirror")
	require.NoError(t, err)
	assert.Equal(t, "https://mirror.example.com", mirror.URL, "trailing slash trimmed")
	assert.Equal(t, "ru", mirror.Headers["Accept-Language"])
	assert.Equal(t, "div.news-item", mirror.Selectors.IndexItem)
	assert.Equal(t, "time.published", mirror.Selectors.Boundary)
	assert.Equal(t, sites.SelectorTitle, mirror.Selectors.Title, "empty selector defaulted")

	ixbt, err := sites.Find(profiles, sites.DefaultName)
	require.NoError(t, err)
	assert.Equal(t, "a.tag", ixbt.Selectors.Category, "built-in profile overridden")
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing url", doc: "sites:\n  - name: broken\n"},
		{name: "relative url", doc: "sites:\n  - name: broken\n    url: /news\n"},
		{name: "unknown key", doc: "sites:\n  - name: broken\n    url: https://a.example\n    depth: 3\n"},
		{name: "not yaml", doc: "sites: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := sites.Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	p, err := sites.Resolve("", sites.DefaultName, "")
	require.NoError(t, err)
	assert.Equal(t, sites.Default(), p)

	p, err = sites.Resolve("", sites.DefaultName, "http://127.0.0.1:8080/")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8080", p.URL)

	_, err = sites.Resolve("", "unknown", "")
	assert.ErrorIs(t, err, sites.ErrUnknownSite)
}

func TestResolve_FromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sites.yml")
	require.NoError(t, os.WriteFile(path, []byte(sitesYAML), 0o600))

	p, err := sites.Resolve(path, "mirror", "")
	require.NoError(t, err)
	assert.Equal(t, "div.news-item", p.Selectors.IndexItem)

	_, err = sites.Resolve(filepath.Join(t.TempDir(), "none.yml"), "mirror", "")
	assert.Error(t, err)
}
