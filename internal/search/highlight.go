package search

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HighlightHTML renders the match's name with the matched span wrapped in <mark>.
// The name is escaped, so node names cannot inject markup into the result list.
func HighlightHTML(m Match) (string, error) {
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr:     []html.Attribute{{Key: "class", Val: "search-result-name"}},
	}

	if m.Start > 0 {
		span.AppendChild(textNode(m.Name[:m.Start]))
	}
	mark := &html.Node{
		Type:     html.ElementNode,
		Data:     "mark",
		DataAtom: atom.Mark,
	}
	mark.AppendChild(textNode(m.Name[m.Start:m.End]))
	span.AppendChild(mark)
	if m.End < len(m.Name) {
		span.AppendChild(textNode(m.Name[m.End:]))
	}

	var sb strings.Builder
	if err := html.Render(&sb, span); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
