// Package cli is the knowmap command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/knowmap/internal/config"
	"github.com/psidex/knowmap/internal/graph"
	"github.com/psidex/knowmap/internal/knowmap"
	"github.com/psidex/knowmap/internal/lib"
	"github.com/psidex/knowmap/internal/loader"
	"github.com/psidex/knowmap/internal/search"
	"github.com/psidex/knowmap/internal/ui"
)

// globals are the persistent flags.
type globals struct {
	configPath string
	data       string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "knowmap",
		Short: "knowmap, an interactive knowledge map viewer",
		Long: ui.Brand.Sprint("knowmap") + " serves and renders labelled knowledge graphs\n" +
			ui.Subtle.Sprint("Select nodes, isolate categories and search by name"),
		Version:       lib.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("knowmap {{ .Version }}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&g.data, "data", "", "graph data file or URL, overrides data.source")
	flags.StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error, overrides log.level")

	root.AddCommand(
		serveCmd(g),
		renderCmd(g),
		searchCmd(g),
		inspectCmd(g),
		snapshotCmd(g),
		configCmd(g),
	)
	return root
}

// Execute runs the command tree and reports the error, if any.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "knowmap: %v\n", err)
		return 1
	}
	return 0
}

// load reads the config with the flag overrides applied.
func (g *globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	if g.data != "" {
		cfg.Data.Source = g.data
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	return cfg, cfg.Validate()
}

func (g *globals) logger(cfg *config.Config) *slog.Logger {
	// Validate already checked the level.
	level, _ := lib.ParseSLogLevel(cfg.Log.Level)
	return lib.NiceLogger(os.Stderr, level)
}

func knowmapConfig(cfg *config.Config) knowmap.Config {
	return knowmap.Config{
		Source:       cfg.Data.Source,
		FetchTimeout: cfg.Data.FetchTimeout,
		Layout:       cfg.Layout.Params,
		WarmupDelay:  cfg.Layout.WarmupDelay,
	}
}

func newKnowmap(cfg *config.Config, logger *slog.Logger) *knowmap.Knowmap {
	hc := &http.Client{Timeout: cfg.Data.FetchTimeout.Duration}
	return knowmap.NewKnowmap(knowmapConfig(cfg), loader.New(hc), logger)
}

// loadGraph does the whole load up front, for the one-shot commands.
func loadGraph(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*graph.Graph, *search.Index, error) {
	kc := knowmapConfig(cfg)
	kc.WarmupDelay = lib.Duration{}
	hc := &http.Client{Timeout: cfg.Data.FetchTimeout.Duration}

	k := knowmap.NewKnowmap(kc, loader.New(hc), logger)
	if err := k.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", cfg.Data.Source, err)
	}
	return k.Graph(), k.Index(), nil
}
