package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommandsTotal counts session commands by type and outcome ("ok", "noop",
	// "error").
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowmap_commands_total",
			Help: "Total number of viewer commands processed",
		},
		[]string{"type", "outcome"},
	)

	// TransitionsTotal counts selection mode changes.
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "knowmap_selection_transitions_total",
			Help: "Total number of selection mode transitions",
		},
		[]string{"from", "to"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "knowmap_search_results",
			Help:    "Number of matches returned per search query",
			Buckets: []float64{0, 1, 2, 5, 10},
		},
	)

	SearchMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "knowmap_search_lookup_misses_total",
			Help: "Selected search results that did not resolve to a node",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "knowmap_active_sessions",
			Help: "Number of open viewer sessions",
		},
	)

	// GraphSize is the loaded graph, labeled by "nodes" and "edges".
	GraphSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "knowmap_graph_size",
			Help: "Number of nodes and edges in the loaded graph",
		},
		[]string{"kind"},
	)

	LoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "knowmap_load_duration_seconds",
			Help:    "Time spent fetching, indexing and laying out the graph",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
	)
)
