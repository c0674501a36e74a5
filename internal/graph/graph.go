package graph

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/rules"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

type relKey struct {
	source string
	target string
	kind   domain.RelationshipKind
}

// Graph owns the asset/event set and every discovered relationship.
// All mutation runs under one write lock so rule evaluation always
// sees a consistent snapshot; reads take the read lock and hand back
// copies only.
type Graph struct {
	mu            sync.RWMutex
	assets        map[string]domain.Asset
	events        map[string]domain.RegulatoryEvent
	relationships map[relKey]domain.Relationship

	evaluator *rules.Evaluator
	log       *zap.SugaredLogger
}

func New(cfg rules.Config, log *zap.SugaredLogger) (*Graph, error) {
	evaluator, err := rules.NewEvaluator(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Graph{
		assets:        map[string]domain.Asset{},
		events:        map[string]domain.RegulatoryEvent{},
		relationships: map[relKey]domain.Relationship{},
		evaluator:     evaluator,
		log:           log,
	}, nil
}

// AddAsset validates the asset, runs every discovery rule against the
// existing node set, and inserts the asset plus resulting edges. The
// whole sequence is atomic - on any failure no state changes. Returns
// the number of new relationships created.
func (g *Graph) AddAsset(asset domain.Asset) (int, error) {
	if err := asset.Validate(); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.assets[asset.ID]; ok {
		return 0, fmt.Errorf("%w: asset %s", domain.ErrDuplicateID, asset.ID)
	}
	if _, ok := g.events[asset.ID]; ok {
		return 0, fmt.Errorf("%w: %s is an event id", domain.ErrDuplicateID, asset.ID)
	}

	matches := []rules.Match{}
	for _, id := range g.sortedAssetIDs() {
		matches = append(matches, g.evaluator.EvaluateAssets(g.assets[id], asset)...)
	}
	for _, id := range g.sortedEventIDs() {
		matches = append(matches, g.evaluator.EvaluateEvent(g.events[id], asset)...)
	}

	edges, err := toRelationships(matches)
	if err != nil {
		return 0, err
	}

	g.assets[asset.ID] = asset.Clone()
	created := g.insert(edges)

	g.log.Debugw("added asset", "id", asset.ID, "class", asset.Class, "newRelationships", created)
	return created, nil
}

// AddAssets adds assets one at a time, stopping at the first failure.
func (g *Graph) AddAssets(assets ...domain.Asset) (int, error) {
	total := 0
	for _, asset := range assets {
		created, err := g.AddAsset(asset)
		if err != nil {
			return total, fmt.Errorf("failed to add asset %s: %w", asset.ID, err)
		}
		total += created
	}
	return total, nil
}

// AddEvent behaves like AddAsset, running the regulatory impact rule
// against every existing asset.
func (g *Graph) AddEvent(event domain.RegulatoryEvent) (int, error) {
	if err := event.Validate(); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.events[event.ID]; ok {
		return 0, fmt.Errorf("%w: event %s", domain.ErrDuplicateID, event.ID)
	}
	if _, ok := g.assets[event.ID]; ok {
		return 0, fmt.Errorf("%w: %s is an asset id", domain.ErrDuplicateID, event.ID)
	}

	matches := []rules.Match{}
	for _, id := range g.sortedAssetIDs() {
		matches = append(matches, g.evaluator.EvaluateEvent(event, g.assets[id])...)
	}

	edges, err := toRelationships(matches)
	if err != nil {
		return 0, err
	}

	g.events[event.ID] = event.Clone()
	created := g.insert(edges)

	g.log.Debugw("added event", "id", event.ID, "newRelationships", created)
	return created, nil
}

// RemoveAsset removes the asset and every relationship touching it.
// Removing an absent id fails - removal is not idempotent.
func (g *Graph) RemoveAsset(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.assets[id]; !ok {
		return fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	delete(g.assets, id)
	removed := g.removeEdgesTouching(id)

	g.log.Debugw("removed asset", "id", id, "removedRelationships", removed)
	return nil
}

// RemoveEvent cascades the same way RemoveAsset does.
func (g *Graph) RemoveEvent(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.events[id]; !ok {
		return fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	delete(g.events, id)
	removed := g.removeEdgesTouching(id)

	g.log.Debugw("removed event", "id", id, "removedRelationships", removed)
	return nil
}

func (g *Graph) GetAsset(id string) (domain.Asset, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	asset, ok := g.assets[id]
	if !ok {
		return domain.Asset{}, fmt.Errorf("%w: asset %s", domain.ErrNotFound, id)
	}
	return asset.Clone(), nil
}

func (g *Graph) GetEvent(id string) (domain.RegulatoryEvent, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	event, ok := g.events[id]
	if !ok {
		return domain.RegulatoryEvent{}, fmt.Errorf("%w: event %s", domain.ErrNotFound, id)
	}
	return event.Clone(), nil
}

// GetRelationships returns every edge touching id, sorted by
// (kind, other endpoint).
func (g *Graph) GetRelationships(id string) ([]domain.Relationship, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if _, ok := g.assets[id]; !ok {
		if _, ok := g.events[id]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
	}

	out := []domain.Relationship{}
	for _, rel := range g.relationships {
		if rel.Touches(id) {
			out = append(out, rel)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Other(id) < out[j].Other(id)
	})
	return out, nil
}

// AllAssets returns a snapshot sorted by id.
func (g *Graph) AllAssets() []domain.Asset {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.Asset, 0, len(g.assets))
	for _, id := range g.sortedAssetIDs() {
		out = append(out, g.assets[id].Clone())
	}
	return out
}

// AllEvents returns a snapshot sorted by id.
func (g *Graph) AllEvents() []domain.RegulatoryEvent {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.RegulatoryEvent, 0, len(g.events))
	for _, id := range g.sortedEventIDs() {
		out = append(out, g.events[id].Clone())
	}
	return out
}

// AllRelationships returns a snapshot sorted by (source, target, kind).
func (g *Graph) AllRelationships() []domain.Relationship {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]domain.Relationship, 0, len(g.relationships))
	for _, rel := range g.relationships {
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceID != out[j].SourceID {
			return out[i].SourceID < out[j].SourceID
		}
		if out[i].TargetID != out[j].TargetID {
			return out[i].TargetID < out[j].TargetID
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// NodeIDs returns the sorted union of asset and event ids.
func (g *Graph) NodeIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.assets)+len(g.events))
	for id := range g.assets {
		ids = append(ids, id)
	}
	for id := range g.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodeClass returns the asset class for asset ids, or "event" for
// event ids.
func (g *Graph) NodeClass(id string) (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if asset, ok := g.assets[id]; ok {
		return string(asset.Class), nil
	}
	if _, ok := g.events[id]; ok {
		return "event", nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

type Counts struct {
	Assets        int `json:"assets"`
	Events        int `json:"events"`
	Relationships int `json:"relationships"`
}

func (g *Graph) Counts() Counts {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return Counts{
		Assets:        len(g.assets),
		Events:        len(g.events),
		Relationships: len(g.relationships),
	}
}

// toRelationships converts rule matches into validated edges. Any
// invalid result aborts the whole batch so a failed add stays atomic.
func toRelationships(matches []rules.Match) ([]domain.Relationship, error) {
	edges := make([]domain.Relationship, 0, len(matches))
	for _, m := range matches {
		rel := domain.Relationship{
			SourceID:      m.SourceID,
			TargetID:      m.TargetID,
			Kind:          m.Kind,
			Weight:        m.Weight,
			Bidirectional: m.Bidirectional,
		}
		if err := rel.Validate(); err != nil {
			return nil, err
		}
		edges = append(edges, rel)
	}
	return edges, nil
}

// insert applies last-write-wins on (source, target, kind). Callers
// hold the write lock.
func (g *Graph) insert(edges []domain.Relationship) int {
	created := 0
	for _, rel := range edges {
		key := relKey{source: rel.SourceID, target: rel.TargetID, kind: rel.Kind}
		if _, exists := g.relationships[key]; !exists {
			created++
		}
		g.relationships[key] = rel
	}
	return created
}

func (g *Graph) removeEdgesTouching(id string) int {
	removed := 0
	for key, rel := range g.relationships {
		if rel.Touches(id) {
			delete(g.relationships, key)
			removed++
		}
	}
	return removed
}

func (g *Graph) sortedAssetIDs() []string {
	ids := make([]string, 0, len(g.assets))
	for id := range g.assets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *Graph) sortedEventIDs() []string {
	ids := make([]string, 0, len(g.events))
	for id := range g.events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
