package cmd

import (
	"assetgraph/api"
	"assetgraph/internal/graph"
	"assetgraph/internal/ingest"
	"assetgraph/internal/layout"
	"assetgraph/internal/logger"
	"assetgraph/internal/rules"
	"context"
	"fmt"
)

// InitializeDependencies wires the engine and its collaborators. The
// graph is constructed once here and injected everywhere - there is no
// global instance.
func InitializeDependencies(seedSample bool) (*api.ApiHandler, error) {
	log := logger.New()

	g, err := graph.New(rules.DefaultConfig(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to construct graph: %w", err)
	}

	if seedSample {
		provider, err := ingest.NewSampleProvider()
		if err != nil {
			return nil, err
		}
		loader := ingest.Loader{
			Provider: provider,
			Graph:    g,
			Log:      log,
		}
		if _, err := loader.Sync(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	return &api.ApiHandler{
		Graph:           g,
		LayoutGenerator: layout.DefaultGenerator(),
		Log:             log,
	}, nil
}
