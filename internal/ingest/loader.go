package ingest

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"context"
	"fmt"

	"go.uber.org/zap"
)

//go:generate mockgen -source loader.go -destination mocks/loader.mock.go

// MarketDataProvider is the seam between the graph and whatever
// produces asset/event values - the embedded sample set, a file, or a
// live market-data fetcher.
type MarketDataProvider interface {
	FetchAssets(ctx context.Context) ([]domain.Asset, error)
	FetchEvents(ctx context.Context) ([]domain.RegulatoryEvent, error)
}

// StaticProvider serves a fixed in-memory dataset.
type StaticProvider struct {
	Assets []domain.Asset
	Events []domain.RegulatoryEvent
}

func NewSampleProvider() (*StaticProvider, error) {
	assets, err := SampleAssets()
	if err != nil {
		return nil, fmt.Errorf("failed to load sample assets: %w", err)
	}
	events, err := SampleEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to load sample events: %w", err)
	}
	return &StaticProvider{Assets: assets, Events: events}, nil
}

func (p *StaticProvider) FetchAssets(ctx context.Context) ([]domain.Asset, error) {
	return p.Assets, nil
}

func (p *StaticProvider) FetchEvents(ctx context.Context) ([]domain.RegulatoryEvent, error) {
	return p.Events, nil
}

// Loader pulls a dataset from a provider into the graph.
type Loader struct {
	Provider MarketDataProvider
	Graph    *graph.Graph
	Log      *zap.SugaredLogger
}

type SyncResult struct {
	AssetsAdded        int
	EventsAdded        int
	RelationshipsAdded int
}

// Sync fetches everything from the provider and bulk-adds it. Assets
// load before events so regulatory edges see the full asset set.
func (l Loader) Sync(ctx context.Context) (*SyncResult, error) {
	assets, err := l.Provider.FetchAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	events, err := l.Provider.FetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	result := &SyncResult{}

	created, err := l.Graph.AddAssets(assets...)
	result.RelationshipsAdded += created
	if err != nil {
		return nil, err
	}
	result.AssetsAdded = len(assets)

	for _, event := range events {
		created, err := l.Graph.AddEvent(event)
		if err != nil {
			return nil, fmt.Errorf("failed to add event %s: %w", event.ID, err)
		}
		result.RelationshipsAdded += created
		result.EventsAdded++
	}

	if l.Log != nil {
		l.Log.Infow("synced graph from provider",
			"assets", result.AssetsAdded,
			"events", result.EventsAdded,
			"relationships", result.RelationshipsAdded,
		)
	}
	return result, nil
}
