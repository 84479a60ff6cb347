package graph

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// NoWikiLink is the sentinel the data file uses for a missing wiki link.
const NoWikiLink = "-"

// ErrMalformedGraph is wrapped by every *MalformedGraphError.
var ErrMalformedGraph = errors.New("malformed graph")

// MalformedGraphError reports an edge whose endpoint names no node.
type MalformedGraphError struct {
	Edge int    // position of the edge in the link list
	Side string // "source" or "target"
	Name string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("link %d: %s %q is not a known node", e.Edge, e.Side, e.Name)
}

func (e *MalformedGraphError) Unwrap() error {
	return ErrMalformedGraph
}

// RawNode and RawLink mirror the records of the data file.
type RawNode struct {
	Name     string   `json:"name" yaml:"name"`
	Group    Category `json:"group" yaml:"group"`
	WikiLink string   `json:"wiki_link" yaml:"wiki_link"`
}

type RawLink struct {
	Source   string  `json:"source" yaml:"source"`
	Target   string  `json:"target" yaml:"target"`
	Value    float64 `json:"value" yaml:"value"`
	Property string  `json:"property" yaml:"property"`
}

type RawGraph struct {
	Nodes []RawNode `json:"nodes" yaml:"nodes"`
	Links []RawLink `json:"links" yaml:"links"`
}

type Node struct {
	Name     string
	Group    Category
	WikiLink string
	// Index is the position of the node in the input and never changes once loaded.
	Index int
	// Position is written by the layout and read by renderers.
	Position r2.Vec
}

func (n *Node) HasWikiLink() bool {
	return n.WikiLink != "" && n.WikiLink != NoWikiLink
}

type Edge struct {
	Source   *Node
	Target   *Node
	Value    float64
	Property string
	Index    int
}

// Incident reports whether n is one of the endpoints of e.
func (e *Edge) Incident(n *Node) bool {
	return e.Source == n || e.Target == n
}

// Graph is immutable after Load apart from node positions, which the layout fills in
// before the graph is handed to anything else.
type Graph struct {
	Nodes []*Node
	Edges []*Edge

	byName map[string]*Node
	adj    *Adjacency
}

// Load resolves every link endpoint by name and indexes the nodes in input order.
// Parallel edges are kept. No partial graph is returned on error.
func Load(raw RawGraph) (*Graph, error) {
	g := &Graph{
		Nodes:  make([]*Node, len(raw.Nodes)),
		Edges:  make([]*Edge, len(raw.Links)),
		byName: make(map[string]*Node, len(raw.Nodes)),
	}

	for i, rn := range raw.Nodes {
		n := &Node{
			Name:     rn.Name,
			Group:    rn.Group,
			WikiLink: rn.WikiLink,
			Index:    i,
		}
		g.Nodes[i] = n
		g.byName[rn.Name] = n
	}

	for i, rl := range raw.Links {
		source, ok := g.byName[rl.Source]
		if !ok {
			return nil, &MalformedGraphError{Edge: i, Side: "source", Name: rl.Source}
		}
		target, ok := g.byName[rl.Target]
		if !ok {
			return nil, &MalformedGraphError{Edge: i, Side: "target", Name: rl.Target}
		}
		g.Edges[i] = &Edge{
			Source:   source,
			Target:   target,
			Value:    rl.Value,
			Property: rl.Property,
			Index:    i,
		}
	}

	g.adj = BuildAdjacency(g.Edges)

	return g, nil
}

// Lookup finds a node by its exact name.
func (g *Graph) Lookup(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// Adjacency returns the index built at load time.
func (g *Graph) Adjacency() *Adjacency {
	return g.adj
}

// Raw converts the graph back into data file records.
func (g *Graph) Raw() RawGraph {
	raw := RawGraph{
		Nodes: make([]RawNode, len(g.Nodes)),
		Links: make([]RawLink, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		raw.Nodes[i] = RawNode{Name: n.Name, Group: n.Group, WikiLink: n.WikiLink}
	}
	for i, e := range g.Edges {
		raw.Links[i] = RawLink{
			Source:   e.Source.Name,
			Target:   e.Target.Name,
			Value:    e.Value,
			Property: e.Property,
		}
	}
	return raw
}
