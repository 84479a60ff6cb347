// Package knowmap ties loading, layout and indexing together into a ready-to-serve
// graph.
package knowmap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/layout"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/metrics"
	"github.com/psidex/knowmap/internal/search"
)

type Config struct {
	Source       string
	FetchTimeout lib.Duration
	Layout       layout.Params
	WarmupDelay  lib.Duration
}

// Fetcher reads the raw graph from a source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (graph.RawGraph, error)
}

// Status is where the one-shot load currently stands.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Knowmap struct {
	// Set in NewKnowmap(...).
	cfg     Config
	fetcher Fetcher
	logger  *slog.Logger
	// Set once by Load.
	mu     *sync.RWMutex
	status Status
	err    error
	graph  *graph.Graph
	index  *search.Index
	ready  chan struct{}
}

func NewKnowmap(cfg Config, f Fetcher, logger *slog.Logger) *Knowmap {
	return &Knowmap{
		cfg:     cfg,
		fetcher: f,
		logger:  lib.OrDiscard(logger),
		mu:      &sync.RWMutex{},
		status:  StatusLoading,
		ready:   make(chan struct{}),
	}
}

// Load fetches the data, resolves it, runs the layout warm-up and indexes the names.
// On failure the status stays failed for good: there is no retry.
func (k *Knowmap) Load(ctx context.Context) error {
	start := time.Now()

	g, err := k.prepare(ctx)
	if err != nil {
		k.logger.Error("could not load graph, status is failed", "source", k.cfg.Source, "error", err)
		k.mu.Lock()
		k.status = StatusFailed
		k.err = err
		k.mu.Unlock()
		return err
	}

	// Let whatever shows "Preparing visualisation" paint before going interactive.
	if d := k.cfg.WarmupDelay.Duration; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	index := search.NewIndex(g.Nodes)

	k.mu.Lock()
	k.graph = g
	k.index = index
	k.status = StatusReady
	k.mu.Unlock()
	close(k.ready)

	metrics.GraphSize.WithLabelValues("nodes").Set(float64(len(g.Nodes)))
	metrics.GraphSize.WithLabelValues("edges").Set(float64(len(g.Edges)))
	metrics.LoadDuration.Observe(time.Since(start).Seconds())

	k.logger.Info("graph ready", "nodes", len(g.Nodes), "edges", len(g.Edges), "took", time.Since(start))
	return nil
}

func (k *Knowmap) prepare(ctx context.Context) (*graph.Graph, error) {
	fetchCtx := ctx
	if t := k.cfg.FetchTimeout.Duration; t > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	raw, err := k.fetcher.Fetch(fetchCtx, k.cfg.Source)
	if err != nil {
		return nil, err
	}
	k.logger.Debug("fetched graph data", "nodes", len(raw.Nodes), "links", len(raw.Links))

	g, err := graph.Load(raw)
	if err != nil {
		return nil, err
	}

	layout.Apply(g, k.cfg.Layout)
	return g, nil
}

// Status reports the load status and, when failed, the error.
func (k *Knowmap) Status() (Status, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.status, k.err
}

// Ready is closed once the graph can be served.
func (k *Knowmap) Ready() <-chan struct{} {
	return k.ready
}

// Graph returns the loaded graph, or nil before the load has finished.
func (k *Knowmap) Graph() *graph.Graph {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.graph
}

// Index returns the search index, or nil before the load has finished.
func (k *Knowmap) Index() *search.Index {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.index
}
