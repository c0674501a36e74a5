package domain

import (
	"fmt"
	"math"
)

// RelationshipKind classifies why an edge exists. One kind per
// discovery rule.
type RelationshipKind string

const (
	RelationshipKindSectorAffinity    RelationshipKind = "sector_affinity"
	RelationshipKindBondEquity        RelationshipKind = "bond_equity"
	RelationshipKindCommodityExposure RelationshipKind = "commodity_exposure"
	RelationshipKindCurrencyRisk      RelationshipKind = "currency_risk"
	RelationshipKindRegulatoryImpact  RelationshipKind = "regulatory_impact"
)

// Relationship is a weighted link between two graph nodes. Bidirectional
// edges are stored once, not duplicated per direction.
type Relationship struct {
	SourceID      string           `json:"sourceId"`
	TargetID      string           `json:"targetId"`
	Kind          RelationshipKind `json:"kind"`
	Weight        float64          `json:"weight"`
	Bidirectional bool             `json:"bidirectional"`
}

func (r Relationship) Validate() error {
	if r.SourceID == "" || r.TargetID == "" {
		return fmt.Errorf("%w: relationship endpoints are required", ErrInvalidRelationship)
	}
	if r.SourceID == r.TargetID {
		return fmt.Errorf("%w: self-loop on %s", ErrInvalidRelationship, r.SourceID)
	}
	if r.Kind == "" {
		return fmt.Errorf("%w: relationship kind is required", ErrInvalidRelationship)
	}
	if math.IsNaN(r.Weight) || math.IsInf(r.Weight, 0) || r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("%w: weight %f outside [0,1] on %s -> %s", ErrInvalidRelationship, r.Weight, r.SourceID, r.TargetID)
	}
	return nil
}

// Touches reports whether the relationship has id as either endpoint.
func (r Relationship) Touches(id string) bool {
	return r.SourceID == id || r.TargetID == id
}

// Other returns the opposite endpoint from id.
func (r Relationship) Other(id string) string {
	if r.SourceID == id {
		return r.TargetID
	}
	return r.SourceID
}
