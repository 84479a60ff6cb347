// Package search finds nodes by a case-insensitive substring of their name.
package search

import (
	"strings"

	"github.com/psidex/knowmap/internal/graph"
)

// MaxResults caps the number of matches returned by Query.
const MaxResults = 10

// Match is a node whose name contains the query. [Start, End) is the byte span of
// the match within Name.
type Match struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

type entry struct {
	node  *graph.Node
	lower string
}

// Index is immutable and safe to share between sessions.
type Index struct {
	entries []entry
}

func NewIndex(nodes []*graph.Node) *Index {
	idx := &Index{entries: make([]entry, len(nodes))}
	for i, n := range nodes {
		idx.entries[i] = entry{node: n, lower: strings.ToLower(n.Name)}
	}
	return idx
}

// Query returns the first MaxResults nodes, in node order, whose name contains text.
// A blank query matches nothing.
func (idx *Index) Query(text string) []Match {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, e := range idx.entries {
		at := strings.Index(e.lower, q)
		if at < 0 {
			continue
		}
		start, end := originalSpan(e.node.Name, e.lower, at, len(q))
		matches = append(matches, Match{
			Name:  e.node.Name,
			Index: e.node.Index,
			Start: start,
			End:   end,
			Color: e.node.Group.Color(),
		})
		if len(matches) == MaxResults {
			break
		}
	}
	return matches
}

// originalSpan maps a byte span in the lowercased name back onto the original name.
// Lowercasing can change the byte length of some runes, so the mapping is done rune
// by rune.
func originalSpan(name, lower string, at, n int) (int, int) {
	if len(name) == len(lower) {
		return at, at + n
	}
	start, end := -1, len(name)
	li := 0
	for oi, r := range name {
		if li == at && start < 0 {
			start = oi
		}
		if li == at+n {
			end = oi
			break
		}
		li += len(strings.ToLower(string(r)))
	}
	if start < 0 {
		start = len(name)
	}
	return start, end
}
