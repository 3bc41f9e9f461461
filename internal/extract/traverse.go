package extract

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
)

// DocumentOrder yields root and every node below it in document order
// (depth-first, parents before children, siblings left to right).
func DocumentOrder(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		if root == nil {
			return
		}
		walk(root, yield)
	}
}

func walk(n *html.Node, yield func(*html.Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, yield) {
			return false
		}
	}
	return true
}

// TakeUntil yields the elements of seq up to, but not including, the first
// one for which stop reports true. Nothing after it is pulled from seq.
func TakeUntil[T any](seq iter.Seq[T], stop func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if stop(v) || !yield(v) {
				return
			}
		}
	}
}

// nodeText concatenates the text of n and all its descendants.
func nodeText(n *html.Node) string {
	var b strings.Builder
	for d := range DocumentOrder(n) {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}

// findBody returns the <body> element of a parsed document, or nil.
func findBody(root *html.Node) *html.Node {
	for n := range DocumentOrder(root) {
		if n.Type == html.ElementNode && n.Data == "body" {
			return n
		}
	}
	return nil
}
