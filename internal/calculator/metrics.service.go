package calculator

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

type WeightStats struct {
	Mean  float64 `json:"mean"`
	Stdev float64 `json:"stdev"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type GraphMetrics struct {
	Density           float64                         `json:"density"`
	AssetCount        int                             `json:"assetCount"`
	EventCount        int                             `json:"eventCount"`
	RelationshipCount int                             `json:"relationshipCount"`
	CountsByClass     map[domain.AssetClass]int       `json:"countsByClass"`
	CountsByKind      map[domain.RelationshipKind]int `json:"countsByKind"`
	TopRelationships  []domain.Relationship           `json:"topRelationships"`
	WeightStats       WeightStats                     `json:"weightStats"`
}

// CalculateMetrics derives aggregate statistics from a graph snapshot.
// Pure function of graph state - repeated calls on an unmutated graph
// return identical output.
func CalculateMetrics(g *graph.Graph, topN int) (*GraphMetrics, error) {
	assets := g.AllAssets()
	events := g.AllEvents()
	relationships := g.AllRelationships()

	countsByClass := map[domain.AssetClass]int{}
	for _, asset := range assets {
		countsByClass[asset.Class]++
	}

	countsByKind := map[domain.RelationshipKind]int{}
	for _, rel := range relationships {
		countsByKind[rel.Kind]++
	}

	weightStats, err := calculateWeightStats(relationships)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate weight stats: %w", err)
	}

	return &GraphMetrics{
		Density:           Density(len(assets)+len(events), relationships),
		AssetCount:        len(assets),
		EventCount:        len(events),
		RelationshipCount: len(relationships),
		CountsByClass:     countsByClass,
		CountsByKind:      countsByKind,
		TopRelationships:  topRelationships(relationships, topN),
		WeightStats:       *weightStats,
	}, nil
}

// Density is the ratio of distinct connected node pairs to possible
// pairs. N counts every node - assets and regulatory events alike -
// since regulatory edges would otherwise push the ratio past 1.
// Counting pairs rather than edges keeps the result in [0,1] even when
// several kinds link the same pair; with no parallel edges it equals
// 2|E| / (N * (N-1)).
func Density(nodeCount int, relationships []domain.Relationship) float64 {
	if nodeCount < 2 {
		return 0
	}

	type pair struct{ a, b string }
	pairs := map[pair]struct{}{}
	for _, rel := range relationships {
		p := pair{a: rel.SourceID, b: rel.TargetID}
		if p.b < p.a {
			p.a, p.b = p.b, p.a
		}
		pairs[p] = struct{}{}
	}

	possible := float64(nodeCount) * float64(nodeCount-1) / 2
	return float64(len(pairs)) / possible
}

// TopRelationships returns the n strongest edges, weight descending,
// ties broken by (source id, target id) ascending.
func TopRelationships(g *graph.Graph, n int) []domain.Relationship {
	return topRelationships(g.AllRelationships(), n)
}

func topRelationships(relationships []domain.Relationship, n int) []domain.Relationship {
	sorted := make([]domain.Relationship, len(relationships))
	copy(sorted, relationships)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Weight != sorted[j].Weight {
			return sorted[i].Weight > sorted[j].Weight
		}
		if sorted[i].SourceID != sorted[j].SourceID {
			return sorted[i].SourceID < sorted[j].SourceID
		}
		return sorted[i].TargetID < sorted[j].TargetID
	})

	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func calculateWeightStats(relationships []domain.Relationship) (*WeightStats, error) {
	if len(relationships) == 0 {
		return &WeightStats{}, nil
	}

	weights := make([]float64, 0, len(relationships))
	for _, rel := range relationships {
		weights = append(weights, rel.Weight)
	}

	mean, err := stats.Mean(weights)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(weights)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(weights)
	if err != nil {
		return nil, err
	}

	stdev := 0.0
	if len(weights) > 1 {
		stdev, err = stats.StandardDeviationSample(weights)
		if err != nil {
			return nil, err
		}
	}

	return &WeightStats{
		Mean:  mean,
		Stdev: stdev,
		Min:   min,
		Max:   max,
	}, nil
}
