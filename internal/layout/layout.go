// Package layout places graph nodes on a 2D canvas with a force-directed simulation.
//
// The simulation is a batch computation: Compute runs a fixed number of ticks and
// returns the final positions, nothing is animated or rendered here.
package layout

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/psidex/knowmap/internal/graph"
)

// Params mirror the knobs of a classic d3 force layout.
type Params struct {
	Width        float64 `toml:"width" json:"width"`
	Height       float64 `toml:"height" json:"height"`
	Charge       float64 `toml:"charge" json:"charge"`
	LinkDistance float64 `toml:"link_distance" json:"linkDistance"`
	LinkStrength float64 `toml:"link_strength" json:"linkStrength"`
	Gravity      float64 `toml:"gravity" json:"gravity"`
	Friction     float64 `toml:"friction" json:"friction"`
	Iterations   int     `toml:"iterations" json:"iterations"`
}

func DefaultParams() Params {
	return Params{
		Width:        1100,
		Height:       630,
		Charge:       -300,
		LinkDistance: 200,
		LinkStrength: 1,
		Gravity:      0.15,
		Friction:     0.85,
		Iterations:   150,
	}
}

// Link is an edge between two node indices.
type Link struct {
	Source, Target int
}

const (
	initialAlpha = 0.1
	alphaDecay   = 0.99
	minAlpha     = 0.005
)

type body struct {
	pos, prev r2.Vec
	weight    float64
}

// Compute lays out n nodes connected by links and returns one position per node.
// Starting positions are spread along the canvas diagonal so the result only depends
// on the inputs. After the last tick the centroid is moved to the canvas center.
func Compute(n int, links []Link, p Params) []r2.Vec {
	if n == 0 {
		return nil
	}

	bodies := make([]body, n)
	for i := range bodies {
		v := p.Width / float64(n) * float64(i)
		bodies[i].pos = r2.Vec{X: v, Y: v}
		bodies[i].prev = bodies[i].pos
	}
	for _, l := range links {
		bodies[l.Source].weight++
		bodies[l.Target].weight++
	}

	alpha := initialAlpha
	for i := 0; i < p.Iterations; i++ {
		alpha *= alphaDecay
		if alpha < minAlpha {
			break
		}
		tick(bodies, links, p, alpha)
	}

	out := make([]r2.Vec, n)
	var centroid r2.Vec
	for i, b := range bodies {
		out[i] = b.pos
		centroid = r2.Add(centroid, b.pos)
	}
	offset := r2.Sub(r2.Scale(1/float64(n), centroid), r2.Vec{X: p.Width / 2, Y: p.Height / 2})
	for i := range out {
		out[i] = r2.Sub(out[i], offset)
	}
	return out
}

func tick(bodies []body, links []Link, p Params, alpha float64) {
	// Links pull or push their endpoints towards LinkDistance, the lighter endpoint
	// moving more.
	for _, l := range links {
		s, t := &bodies[l.Source], &bodies[l.Target]
		d := r2.Sub(t.pos, s.pos)
		dist := r2.Norm(d)
		if dist == 0 {
			continue
		}
		f := alpha * p.LinkStrength * (dist - p.LinkDistance) / dist
		d = r2.Scale(f, d)
		k := s.weight / (t.weight + s.weight)
		t.pos = r2.Sub(t.pos, r2.Scale(k, d))
		s.pos = r2.Add(s.pos, r2.Scale(1-k, d))
	}

	if k := alpha * p.Gravity; k != 0 {
		center := r2.Vec{X: p.Width / 2, Y: p.Height / 2}
		for i := range bodies {
			b := &bodies[i]
			b.pos = r2.Add(b.pos, r2.Scale(k, r2.Sub(center, b.pos)))
		}
	}

	// Charge acts on the previous position, i.e. on velocity.
	if p.Charge != 0 {
		for i := range bodies {
			for j := range bodies {
				if i == j {
					continue
				}
				d := r2.Sub(bodies[j].pos, bodies[i].pos)
				d2 := r2.Norm2(d)
				if d2 == 0 {
					continue
				}
				k := alpha * p.Charge / d2
				bodies[i].prev = r2.Sub(bodies[i].prev, r2.Scale(k, d))
			}
		}
	}

	for i := range bodies {
		b := &bodies[i]
		velocity := r2.Scale(p.Friction, r2.Sub(b.pos, b.prev))
		b.prev = b.pos
		b.pos = r2.Add(b.pos, velocity)
	}
}

// Apply lays out g with p and stores the result on its nodes.
func Apply(g *graph.Graph, p Params) {
	links := make([]Link, len(g.Edges))
	for i, e := range g.Edges {
		links[i] = Link{Source: e.Source.Index, Target: e.Target.Index}
	}
	for i, pos := range Compute(len(g.Nodes), links, p) {
		g.Nodes[i].Position = pos
	}
}

// Bounds returns the smallest box holding every node position.
func Bounds(g *graph.Graph) r2.Box {
	if len(g.Nodes) == 0 {
		return r2.Box{}
	}
	box := r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, n := range g.Nodes {
		box.Min.X = math.Min(box.Min.X, n.Position.X)
		box.Min.Y = math.Min(box.Min.Y, n.Position.Y)
		box.Max.X = math.Max(box.Max.X, n.Position.X)
		box.Max.Y = math.Max(box.Max.Y, n.Position.Y)
	}
	return box
}
