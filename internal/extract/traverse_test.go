package extract_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jonesrussell/north-cloud/news-crawler/internal/extract"
)

func parse(t *testing.T, markup string) *html.Node {
	t.Helper()

	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

func elementNames(seq func(func(*html.Node) bool)) []string {
	names := make([]string, 0)
	for n := range seq {
		if n.Type == html.ElementNode {
			names = append(names, n.Data)
		}
	}
	return names
}

func TestDocumentOrder(t *testing.T) {
	t.Parallel()

	root := parse(t, `<div><p><b>x</b></p><span></span></div><i></i>`)

	got := elementNames(extract.DocumentOrder(root))
	assert.Equal(t, []string{"html", "head", "body", "div", "p", "b", "span", "i"}, got)
}

func TestDocumentOrder_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, slices.Collect(extract.DocumentOrder(nil)))
}

func TestTakeUntil(t *testing.T) {
	t.Parallel()

	root := parse(t, `<div><p></p><hr><span></span></div>`)
	stop := func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "hr" }

	got := elementNames(extract.TakeUntil(extract.DocumentOrder(root), stop))
	assert.Equal(t, []string{"html", "head", "body", "div", "p"}, got)
}

func TestTakeUntil_StopsPulling(t *testing.T) {
	t.Parallel()

	pulled := 0
	seq := func(yield func(int) bool) {
		for i := range 100 {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	got := slices.Collect(extract.TakeUntil(seq, func(v int) bool { return v == 3 }))
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 4, pulled)
}

func TestTakeUntil_NeverStops(t *testing.T) {
	t.Parallel()

	seq := slices.Values([]int{1, 2, 3})
	got := slices.Collect(extract.TakeUntil(seq, func(int) bool { return false }))
	assert.Equal(t, []int{1, 2, 3}, got)
}
