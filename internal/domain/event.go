package domain

import (
	"fmt"
	"time"
)

// RegulatoryEvent is a graph node that can originate relationships
// but is not itself tradable. ImpactScore is bounded to [0,1];
// signed scores are rejected at validation.
type RegulatoryEvent struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	EffectiveDate time.Time `json:"effectiveDate"`
	ImpactScore   float64   `json:"impactScore"`

	// scope - empty slices mean "applies to all"
	Classes []AssetClass `json:"classes,omitempty"`
	Sectors []string     `json:"sectors,omitempty"`
}

func (e RegulatoryEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: event id is required", ErrInvalidAttribute)
	}
	if e.Description == "" {
		return fmt.Errorf("%w: event %s has no description", ErrInvalidAttribute, e.ID)
	}
	if e.ImpactScore < 0 || e.ImpactScore > 1 {
		return fmt.Errorf("%w: event %s impact score %f outside [0,1]", ErrInvalidAttribute, e.ID, e.ImpactScore)
	}
	for _, c := range e.Classes {
		if _, err := ParseAssetClass(string(c)); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy, mirroring Asset.Clone.
func (e RegulatoryEvent) Clone() RegulatoryEvent {
	out := e
	out.Classes = append([]AssetClass(nil), e.Classes...)
	out.Sectors = append([]string(nil), e.Sectors...)
	return out
}

// Covers reports whether the event's scope reaches the given asset,
// and how many of its specified criteria matched.
func (e RegulatoryEvent) Covers(a Asset) (matched, specified int) {
	if len(e.Classes) > 0 {
		specified++
		for _, c := range e.Classes {
			if c == a.Class {
				matched++
				break
			}
		}
	}
	if len(e.Sectors) > 0 {
		specified++
		sector := a.Sector()
		for _, s := range e.Sectors {
			if s != "" && s == sector {
				matched++
				break
			}
		}
	}
	return matched, specified
}
