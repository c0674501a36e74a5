package rules

import (
	"assetgraph/internal/domain"
	"fmt"
	"math"

	"github.com/maja42/goval"
)

// Config holds the tunable weights behind each discovery rule.
// The expression fields are goval expressions so exposure scaling
// can be adjusted without a rebuild.
type Config struct {
	SectorAffinityWeight    float64
	BondEquityWeight        float64
	CommodityExposureFactor float64
	CurrencyRiskFactor      float64

	// evaluated with variables "factor" and "exposure"
	ExposureExpression string
	// evaluated with variables "impact" and "relevance"
	RegulatoryExpression string
}

func DefaultConfig() Config {
	return Config{
		SectorAffinityWeight:    0.6,
		BondEquityWeight:        0.8,
		CommodityExposureFactor: 0.7,
		CurrencyRiskFactor:      0.5,
		ExposureExpression:      "factor * exposure",
		RegulatoryExpression:    "impact * relevance",
	}
}

func (c Config) Validate() error {
	for name, w := range map[string]float64{
		"sector affinity weight":    c.SectorAffinityWeight,
		"bond equity weight":        c.BondEquityWeight,
		"commodity exposure factor": c.CommodityExposureFactor,
		"currency risk factor":      c.CurrencyRiskFactor,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("%s %f outside [0,1]", name, w)
		}
	}

	eval := goval.NewEvaluator()
	if _, err := evalNumeric(eval, c.ExposureExpression, map[string]interface{}{
		"factor":   0.5,
		"exposure": 0.5,
	}); err != nil {
		return fmt.Errorf("invalid exposure expression: %w", err)
	}
	if _, err := evalNumeric(eval, c.RegulatoryExpression, map[string]interface{}{
		"impact":    0.5,
		"relevance": 0.5,
	}); err != nil {
		return fmt.Errorf("invalid regulatory expression: %w", err)
	}
	return nil
}

// Match is the result of a rule firing for an ordered pair of nodes.
type Match struct {
	SourceID      string
	TargetID      string
	Kind          domain.RelationshipKind
	Weight        float64
	Bidirectional bool
}

// Evaluator runs every discovery rule. Construct with NewEvaluator;
// the zero value has no expressions and will never fire the
// exposure-based rules.
type Evaluator struct {
	cfg  Config
	eval *goval.Evaluator
}

func NewEvaluator(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules config: %w", err)
	}
	return &Evaluator{
		cfg:  cfg,
		eval: goval.NewEvaluator(),
	}, nil
}

// EvaluateAssets runs every asset-to-asset rule against the ordered
// pair (a, b). Rules are total - an inapplicable pair yields no
// matches, never an error or a zero-weight edge.
func (e *Evaluator) EvaluateAssets(a, b domain.Asset) []Match {
	matches := []Match{}
	if a.ID == b.ID {
		return matches
	}

	if m, ok := e.sectorAffinity(a, b); ok {
		matches = append(matches, m)
	}
	if m, ok := e.bondEquity(a, b); ok {
		matches = append(matches, m)
	}
	if m, ok := e.bondEquity(b, a); ok {
		matches = append(matches, m)
	}
	if m, ok := e.commodityExposure(a, b); ok {
		matches = append(matches, m)
	}
	if m, ok := e.commodityExposure(b, a); ok {
		matches = append(matches, m)
	}
	if m, ok := e.currencyRisk(a, b); ok {
		matches = append(matches, m)
	}
	if m, ok := e.currencyRisk(b, a); ok {
		matches = append(matches, m)
	}
	return matches
}

// EvaluateEvent runs the regulatory impact rule for the directed pair
// event -> asset.
func (e *Evaluator) EvaluateEvent(ev domain.RegulatoryEvent, a domain.Asset) []Match {
	matched, specified := ev.Covers(a)
	relevance := 1.0
	if specified > 0 {
		relevance = float64(matched) / float64(specified)
	}
	if relevance == 0 {
		return nil
	}

	weight, ok := e.expression(e.cfg.RegulatoryExpression, map[string]interface{}{
		"impact":    ev.ImpactScore,
		"relevance": relevance,
	})
	if !ok || weight == 0 {
		return nil
	}

	return []Match{{
		SourceID: ev.ID,
		TargetID: a.ID,
		Kind:     domain.RelationshipKindRegulatoryImpact,
		Weight:   weight,
	}}
}

// sectorAffinity links two equities that share a sector tag. The rule
// is symmetric, so the edge is oriented lower id -> higher id to keep
// stored edges independent of insertion order.
func (e *Evaluator) sectorAffinity(a, b domain.Asset) (Match, bool) {
	if a.Class != domain.AssetClassEquity || b.Class != domain.AssetClassEquity {
		return Match{}, false
	}
	if a.Sector() == "" || a.Sector() != b.Sector() {
		return Match{}, false
	}
	source, target := a.ID, b.ID
	if target < source {
		source, target = target, source
	}
	return Match{
		SourceID:      source,
		TargetID:      target,
		Kind:          domain.RelationshipKindSectorAffinity,
		Weight:        e.cfg.SectorAffinityWeight,
		Bidirectional: true,
	}, true
}

// bondEquity links a bond to the equity of its issuer, directed
// bond -> equity.
func (e *Evaluator) bondEquity(bond, equity domain.Asset) (Match, bool) {
	if bond.Class != domain.AssetClassBond || equity.Class != domain.AssetClassEquity {
		return Match{}, false
	}
	if bond.Bond == nil || equity.Equity == nil {
		return Match{}, false
	}
	if bond.Bond.Issuer == "" || bond.Bond.Issuer != equity.Equity.Issuer {
		return Match{}, false
	}
	return Match{
		SourceID: bond.ID,
		TargetID: equity.ID,
		Kind:     domain.RelationshipKindBondEquity,
		Weight:   e.cfg.BondEquityWeight,
	}, true
}

// commodityExposure links a commodity to equities that list it and to
// derivatives written on it.
func (e *Evaluator) commodityExposure(commodity, other domain.Asset) (Match, bool) {
	if commodity.Class != domain.AssetClassCommodity {
		return Match{}, false
	}

	exposure := 0.0
	switch other.Class {
	case domain.AssetClassEquity:
		if other.Equity == nil {
			return Match{}, false
		}
		for _, id := range other.Equity.Commodities {
			if id == commodity.ID {
				exposure = 1.0
				break
			}
		}
	case domain.AssetClassDerivative:
		if other.Derivative != nil && other.Derivative.Underlying == commodity.ID {
			exposure = 1.0
		}
	}
	if exposure == 0 {
		return Match{}, false
	}

	weight, ok := e.expression(e.cfg.ExposureExpression, map[string]interface{}{
		"factor":   e.cfg.CommodityExposureFactor,
		"exposure": exposure,
	})
	if !ok || weight == 0 {
		return Match{}, false
	}

	return Match{
		SourceID:      commodity.ID,
		TargetID:      other.ID,
		Kind:          domain.RelationshipKindCommodityExposure,
		Weight:        weight,
		Bidirectional: true,
	}, true
}

// currencyRisk links a currency to any asset denominated in it.
func (e *Evaluator) currencyRisk(currency, other domain.Asset) (Match, bool) {
	if currency.Class != domain.AssetClassCurrency || other.Class == domain.AssetClassCurrency {
		return Match{}, false
	}
	if currency.Currency == nil {
		return Match{}, false
	}
	if currency.Currency.Code == "" || currency.Currency.Code != other.CurrencyCode() {
		return Match{}, false
	}

	weight, ok := e.expression(e.cfg.ExposureExpression, map[string]interface{}{
		"factor":   e.cfg.CurrencyRiskFactor,
		"exposure": 1.0,
	})
	if !ok || weight == 0 {
		return Match{}, false
	}

	return Match{
		SourceID:      currency.ID,
		TargetID:      other.ID,
		Kind:          domain.RelationshipKindCurrencyRisk,
		Weight:        weight,
		Bidirectional: true,
	}, true
}

// expression evaluates a weight expression and clamps the result to
// [0,1]. Expression failures were ruled out by Config.Validate, but a
// rule must be total, so failures degrade to "no relationship".
func (e *Evaluator) expression(expr string, variables map[string]interface{}) (float64, bool) {
	v, err := evalNumeric(e.eval, expr, variables)
	if err != nil {
		return 0, false
	}
	return math.Max(0, math.Min(1, v)), true
}

func evalNumeric(eval *goval.Evaluator, expr string, variables map[string]interface{}) (float64, error) {
	result, err := eval.Evaluate(expr, variables, nil)
	if err != nil {
		return 0, err
	}
	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expression %q returned non-numeric %T", expr, result)
	}
}
