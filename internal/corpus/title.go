package corpus

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Title extracts the text of the first <title> element from raw HTML.
// It returns the empty string for content without a parseable title.
//
// Design decision: Titles are extracted with golang.org/x/net/html rather
// than the anchor scanner because the parser recovers sensibly from the
// malformed markup common in real exports, and a title is display-only
// metadata where lenient parsing is exactly right. Link extraction stays
// regex based; its contract is defined over raw text.
func Title(raw []byte) string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		// html.Parse almost never fails; if it does, there is no title.
		return ""
	}

	var title string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = strings.TrimSpace(n.FirstChild.Data)
			}
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(doc)

	return title
}
