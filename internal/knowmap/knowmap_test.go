package knowmap

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/layout"
	"github.com/psidex/knowmap/internal/lib"
)

type fakeFetcher struct {
	raw graph.RawGraph
	err error
}

func (f fakeFetcher) Fetch(ctx context.Context, source string) (graph.RawGraph, error) {
	return f.raw, f.err
}

func testConfig() Config {
	p := layout.DefaultParams()
	p.Iterations = 20
	return Config{
		Source:      "mem",
		Layout:      p,
		WarmupDelay: lib.DurationFrom(time.Millisecond),
	}
}

func TestLoadReady(t *testing.T) {
	raw := graph.RawGraph{
		Nodes: []graph.RawNode{{Name: "Gate"}, {Name: "Plate"}},
		Links: []graph.RawLink{{Source: "Gate", Target: "Plate"}},
	}
	k := NewKnowmap(testConfig(), fakeFetcher{raw: raw}, nil)

	status, _ := k.Status()
	assert.Equal(t, StatusLoading, status)
	assert.Nil(t, k.Graph())

	require.NoError(t, k.Load(context.Background()))

	select {
	case <-k.Ready():
	default:
		t.Fatal("ready channel not closed")
	}
	status, err := k.Status()
	assert.Equal(t, StatusReady, status)
	assert.NoError(t, err)
	require.NotNil(t, k.Graph())
	assert.NotEqual(t, k.Graph().Nodes[0].Position, k.Graph().Nodes[1].Position)
	assert.Len(t, k.Index().Query("ate"), 2)
}

func TestLoadFetchError(t *testing.T) {
	boom := errors.New("boom")
	var logs bytes.Buffer
	k := NewKnowmap(testConfig(), fakeFetcher{err: boom}, slog.New(slog.NewTextHandler(&logs, nil)))

	err := k.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	status, statusErr := k.Status()
	assert.Equal(t, StatusFailed, status)
	assert.ErrorIs(t, statusErr, boom)
	assert.Nil(t, k.Graph())

	assert.Contains(t, logs.String(), "status is failed")
	assert.NotContains(t, logs.String(), "loading state")
}

func TestLoadMalformedGraph(t *testing.T) {
	raw := graph.RawGraph{
		Nodes: []graph.RawNode{{Name: "Gate"}},
		Links: []graph.RawLink{{Source: "Gate", Target: "Plate"}},
	}
	k := NewKnowmap(testConfig(), fakeFetcher{raw: raw}, nil)
	err := k.Load(context.Background())
	assert.ErrorIs(t, err, graph.ErrMalformedGraph)
	assert.Nil(t, k.Graph(), "no partial graph")
}
