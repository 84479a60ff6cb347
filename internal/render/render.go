// Package render writes static artifacts of a laid out graph.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/render/graphology"
	"github.com/psidex/knowmap/internal/render/vis"
	"github.com/psidex/knowmap/internal/selection"
)

// GraphRenderer renders one graph, drawn as described by a selection frame.
type GraphRenderer interface {
	// Render is not assumed to be thread-safe.
	Render(w io.Writer) error
	// Extension is appended to the file name by RenderToFile, e.g. ".html".
	Extension() string
}

var (
	_ GraphRenderer = (*ECharts)(nil)
	_ GraphRenderer = (*AdjacencyJson)(nil)
	_ GraphRenderer = (*graphology.Graphology)(nil)
	_ GraphRenderer = (*vis.Vis)(nil)
)

// Formats lists the names accepted by New.
var Formats = []string{"echarts", "vis", "graphology", "json"}

// New picks a renderer by format name. A nil frame draws the neutral state.
func New(format string, g *graph.Graph, frame *selection.Frame) (GraphRenderer, error) {
	if frame == nil {
		f := selection.NewController(nil, g).Frame()
		frame = &f
	}
	switch format {
	case "echarts":
		return NewECharts(g, *frame), nil
	case "vis":
		return vis.NewVis(g, *frame), nil
	case "graphology":
		return graphology.NewGraphology(g, *frame), nil
	case "json":
		return NewAdjacencyJson(g), nil
	}
	return nil, fmt.Errorf("unknown graph format: %s", format)
}

// RenderToFile writes r to filename plus the renderer's extension and returns the
// full name.
func RenderToFile(r GraphRenderer, filename string) (string, error) {
	filename = filename + r.Extension()

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.Render(file); err != nil {
		return "", err
	}
	return filename, file.Close()
}
