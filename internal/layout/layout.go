package layout

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/graph"
	"encoding/binary"
	"hash/fnv"
	"math/rand"
)

// Generator assigns deterministic 3D coordinates to graph nodes.
// Coordinates are keyed by (Seed, node id), never by insertion order,
// so adding or removing unrelated nodes does not move existing ones.
type Generator struct {
	Seed   int64
	Spread float64
}

func DefaultGenerator() Generator {
	return Generator{
		Seed:   1337,
		Spread: 100,
	}
}

// nodeColors is the fixed class-to-color mapping consumed by the
// renderers. Events get their own color.
var nodeColors = map[string]string{
	string(domain.AssetClassEquity):     "#4e79a7",
	string(domain.AssetClassBond):       "#59a14f",
	string(domain.AssetClassCommodity):  "#f28e2b",
	string(domain.AssetClassCurrency):   "#edc948",
	string(domain.AssetClassDerivative): "#b07aa1",
	"event":                             "#e15759",
}

type NodeLayout struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Class string  `json:"class"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

type EdgeLayout struct {
	SourceID string                  `json:"sourceId"`
	TargetID string                  `json:"targetId"`
	Source   [3]float64              `json:"source"`
	Target   [3]float64              `json:"target"`
	Weight   float64                 `json:"weight"`
	Kind     domain.RelationshipKind `json:"kind"`
}

type Layout struct {
	Nodes []NodeLayout `json:"nodes"`
	Edges []EdgeLayout `json:"edges"`
}

// Layout maps the current graph state to render coordinates. Nodes
// come out sorted by id, edges in AllRelationships order.
func (g Generator) Layout(gr *graph.Graph) Layout {
	relationships := gr.AllRelationships()

	importance := map[string]int{}
	for _, rel := range relationships {
		importance[rel.SourceID]++
		importance[rel.TargetID]++
	}

	positions := map[string][3]float64{}
	nodes := []NodeLayout{}
	for _, id := range gr.NodeIDs() {
		pos := g.Position(id)
		positions[id] = pos

		class, err := gr.NodeClass(id)
		if err != nil {
			// node removed between snapshots; skip
			continue
		}
		nodes = append(nodes, NodeLayout{
			ID:    id,
			X:     pos[0],
			Y:     pos[1],
			Z:     pos[2],
			Class: class,
			Size:  1 + float64(importance[id]),
			Color: nodeColors[class],
		})
	}

	edges := make([]EdgeLayout, 0, len(relationships))
	for _, rel := range relationships {
		edges = append(edges, EdgeLayout{
			SourceID: rel.SourceID,
			TargetID: rel.TargetID,
			Source:   positions[rel.SourceID],
			Target:   positions[rel.TargetID],
			Weight:   rel.Weight,
			Kind:     rel.Kind,
		})
	}

	return Layout{Nodes: nodes, Edges: edges}
}

// Position derives the coordinate for one node id. The id string is
// hashed into the PRNG stream so the result is stable across runs and
// process restarts.
func (g Generator) Position(id string) [3]float64 {
	h := fnv.New64a()
	seedBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seedBytes, uint64(g.Seed))
	h.Write(seedBytes)
	h.Write([]byte(id))

	rng := rand.New(rand.NewSource(int64(h.Sum64())))
	return [3]float64{
		(rng.Float64()*2 - 1) * g.Spread,
		(rng.Float64()*2 - 1) * g.Spread,
		(rng.Float64()*2 - 1) * g.Spread,
	}
}
