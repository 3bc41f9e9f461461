package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/extract"
	"github.com/jonesrussell/north-cloud/news-crawler/internal/sites"
)

const baseURL = "https://www.ixbt.com"

func TestLinkExtractor_Extract(t *testing.T) {
	t.Parallel()

	markup := `<html><body><ul>
		<li class="item"><a href="/news/2024/04/17/first.html">First</a></li>
		<li class="item"><span>no link here</span></li>
		<li class="other"><a href="/news/ignored.html">Ignored</a></li>
		<li class="item"><a href="https://www.ixbt.com/news/2024/04/17/second.html">Second</a>
			<a href="/news/2024/04/17/second-extra.html">Extra</a></li>
		<li class="item"><a name="anchor">no href</a></li>
		<li class="item"><a href="news/2024/04/17/third.html#comments">Third</a></li>
	</ul></body></html>`

	e := extract.NewLinkExtractor(baseURL, sites.DefaultSelectors())
	links, err := e.Extract([]byte(markup))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://www.ixbt.com/news/2024/04/17/first.html",
		"https://www.ixbt.com/news/2024/04/17/second.html",
		"https://www.ixbt.com/news/2024/04/17/third.html",
	}, links)
}

func TestLinkExtractor_NoItems(t *testing.T) {
	t.Parallel()

	e := extract.NewLinkExtractor(baseURL, sites.DefaultSelectors())
	links, err := e.Extract([]byte(`<html><body><p>Nothing today</p></body></html>`))
	require.NoError(t, err)

	assert.NotNil(t, links)
	assert.Empty(t, links)
}

func TestLinkExtractor_CustomSelectors(t *testing.T) {
	t.Parallel()

	sel := sites.DefaultSelectors()
	sel.IndexItem = "article.card"
	sel.IndexLink = "a.read-more"

	markup := `<body>
		<article class="card"><a href="/tag">Tag</a><a class="read-more" href="/a">More</a></article>
		<article class="card"><a class="read-more" href="/b">More</a></article>
	</body>`

	links, err := extract.NewLinkExtractor(baseURL, sel).Extract([]byte(markup))
	require.NoError(t, err)
	assert.Equal(t, []string{baseURL + "/a", baseURL + "/b"}, links)
}
