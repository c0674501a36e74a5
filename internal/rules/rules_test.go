package rules

import (
	"assetgraph/internal/domain"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func newEvaluator(t *testing.T) *Evaluator {
	e, err := NewEvaluator(DefaultConfig())
	require.NoError(t, err)
	return e
}

func equity(id, sector, issuer string, commodities ...string) domain.Asset {
	return domain.Asset{
		ID:    id,
		Name:  id,
		Class: domain.AssetClassEquity,
		Equity: &domain.EquityAttributes{
			Sector:       sector,
			Issuer:       issuer,
			CurrencyCode: "USD",
			Commodities:  commodities,
		},
	}
}

func bond(id, issuer string) domain.Asset {
	return domain.Asset{
		ID:    id,
		Name:  id,
		Class: domain.AssetClassBond,
		Bond: &domain.BondAttributes{
			Issuer:       issuer,
			CurrencyCode: "USD",
			Maturity:     newDate(2030, 1, 1),
			ParValue:     decimal.NewFromInt(1000),
		},
	}
}

func commodity(id string) domain.Asset {
	return domain.Asset{
		ID:    id,
		Name:  id,
		Class: domain.AssetClassCommodity,
		Commodity: &domain.CommodityAttributes{
			Category:     "energy",
			Unit:         "barrel",
			CurrencyCode: "USD",
		},
	}
}

func currency(code string) domain.Asset {
	return domain.Asset{
		ID:       code,
		Name:     code,
		Class:    domain.AssetClassCurrency,
		Currency: &domain.CurrencyAttributes{Code: code},
	}
}

func Test_ConfigValidate(t *testing.T) {
	t.Run("default config is valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("weight out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.SectorAffinityWeight = 1.5
		require.Error(t, cfg.Validate())
	})

	t.Run("malformed expression", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RegulatoryExpression = "impact *"
		require.Error(t, cfg.Validate())
	})

	t.Run("non-numeric expression", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.ExposureExpression = `"hello"`
		require.Error(t, cfg.Validate())
	})
}

func Test_SectorAffinity(t *testing.T) {
	e := newEvaluator(t)

	t.Run("same sector equities match bidirectionally", func(t *testing.T) {
		matches := e.EvaluateAssets(equity("AAPL", "Technology", "AAPL-CORP"), equity("MSFT", "Technology", "MSFT-CORP"))
		require.Len(t, matches, 1)
		require.Equal(t, domain.RelationshipKindSectorAffinity, matches[0].Kind)
		require.True(t, matches[0].Bidirectional)
		require.Equal(t, DefaultConfig().SectorAffinityWeight, matches[0].Weight)
	})

	t.Run("orientation does not depend on argument order", func(t *testing.T) {
		matches := e.EvaluateAssets(equity("MSFT", "Technology", "MSFT-CORP"), equity("AAPL", "Technology", "AAPL-CORP"))
		require.Len(t, matches, 1)
		require.Equal(t, "AAPL", matches[0].SourceID)
		require.Equal(t, "MSFT", matches[0].TargetID)
	})

	t.Run("different sectors do not match", func(t *testing.T) {
		matches := e.EvaluateAssets(equity("AAPL", "Technology", "AAPL-CORP"), equity("XOM", "Energy", "XOM-CORP"))
		require.Empty(t, matches)
	})

	t.Run("empty sectors do not match", func(t *testing.T) {
		matches := e.EvaluateAssets(equity("A", "", "A-CORP"), equity("B", "", "B-CORP"))
		require.Empty(t, matches)
	})
}

func Test_BondEquity(t *testing.T) {
	e := newEvaluator(t)

	t.Run("issuer match is directed bond to equity", func(t *testing.T) {
		// argument order must not matter
		for _, matches := range [][]Match{
			e.EvaluateAssets(bond("B1", "AAPL-CORP"), equity("AAPL", "Technology", "AAPL-CORP")),
			e.EvaluateAssets(equity("AAPL", "Technology", "AAPL-CORP"), bond("B1", "AAPL-CORP")),
		} {
			require.Len(t, matches, 1)
			require.Equal(t, "B1", matches[0].SourceID)
			require.Equal(t, "AAPL", matches[0].TargetID)
			require.Equal(t, domain.RelationshipKindBondEquity, matches[0].Kind)
			require.False(t, matches[0].Bidirectional)
		}
	})

	t.Run("different issuer does not match", func(t *testing.T) {
		matches := e.EvaluateAssets(bond("B1", "AAPL-CORP"), equity("MSFT", "Technology", "MSFT-CORP"))
		require.Empty(t, matches)
	})
}

func Test_CommodityExposure(t *testing.T) {
	e := newEvaluator(t)

	t.Run("equity listing the commodity matches", func(t *testing.T) {
		matches := e.EvaluateAssets(commodity("WTI"), equity("XOM", "Energy", "XOM-CORP", "WTI"))
		require.Len(t, matches, 1)
		require.Equal(t, domain.RelationshipKindCommodityExposure, matches[0].Kind)
		require.Equal(t, "WTI", matches[0].SourceID)
		require.InDelta(t, DefaultConfig().CommodityExposureFactor, matches[0].Weight, 1e-9)
	})

	t.Run("derivative on the commodity matches", func(t *testing.T) {
		future := domain.Asset{
			ID:    "WTI-FUT",
			Name:  "WTI future",
			Class: domain.AssetClassDerivative,
			Derivative: &domain.DerivativeAttributes{
				Underlying:   "WTI",
				ContractType: "future",
				CurrencyCode: "USD",
			},
		}
		matches := e.EvaluateAssets(future, commodity("WTI"))
		require.Len(t, matches, 1)
		require.Equal(t, domain.RelationshipKindCommodityExposure, matches[0].Kind)
	})

	t.Run("unrelated equity does not match", func(t *testing.T) {
		matches := e.EvaluateAssets(commodity("WTI"), equity("AAPL", "Technology", "AAPL-CORP"))
		require.Empty(t, matches)
	})
}

func Test_CurrencyRisk(t *testing.T) {
	e := newEvaluator(t)

	t.Run("denominated asset matches", func(t *testing.T) {
		matches := e.EvaluateAssets(currency("USD"), equity("AAPL", "Technology", "AAPL-CORP"))
		require.Len(t, matches, 1)
		require.Equal(t, domain.RelationshipKindCurrencyRisk, matches[0].Kind)
		require.InDelta(t, DefaultConfig().CurrencyRiskFactor, matches[0].Weight, 1e-9)
	})

	t.Run("other denomination does not match", func(t *testing.T) {
		matches := e.EvaluateAssets(currency("EUR"), equity("AAPL", "Technology", "AAPL-CORP"))
		require.Empty(t, matches)
	})

	t.Run("two currencies never match each other", func(t *testing.T) {
		matches := e.EvaluateAssets(currency("USD"), currency("EUR"))
		require.Empty(t, matches)
	})
}

func Test_RegulatoryImpact(t *testing.T) {
	e := newEvaluator(t)

	event := domain.RegulatoryEvent{
		ID:            "REG-1",
		Description:   "energy equity rule",
		EffectiveDate: newDate(2025, 7, 1),
		ImpactScore:   0.8,
		Classes:       []domain.AssetClass{domain.AssetClassEquity},
		Sectors:       []string{"Energy"},
	}

	t.Run("full scope match uses full impact", func(t *testing.T) {
		matches := e.EvaluateEvent(event, equity("XOM", "Energy", "XOM-CORP"))
		require.Len(t, matches, 1)
		require.Equal(t, "REG-1", matches[0].SourceID)
		require.Equal(t, "XOM", matches[0].TargetID)
		require.InDelta(t, 0.8, matches[0].Weight, 1e-9)
		require.False(t, matches[0].Bidirectional)
	})

	t.Run("partial scope match scales weight", func(t *testing.T) {
		matches := e.EvaluateEvent(event, equity("AAPL", "Technology", "AAPL-CORP"))
		require.Len(t, matches, 1)
		require.InDelta(t, 0.4, matches[0].Weight, 1e-9)
	})

	t.Run("no scope match yields nothing", func(t *testing.T) {
		matches := e.EvaluateEvent(event, bond("B1", "XOM-CORP"))
		require.Empty(t, matches)
	})

	t.Run("zero impact yields nothing", func(t *testing.T) {
		flat := event
		flat.ImpactScore = 0
		matches := e.EvaluateEvent(flat, equity("XOM", "Energy", "XOM-CORP"))
		require.Empty(t, matches)
	})
}

func Test_RulesAreTotal(t *testing.T) {
	e := newEvaluator(t)

	// unvalidated assets with nil payloads must not panic
	broken := domain.Asset{ID: "X", Name: "x", Class: domain.AssetClassBond}
	require.NotPanics(t, func() {
		e.EvaluateAssets(broken, equity("AAPL", "Technology", "AAPL-CORP"))
		e.EvaluateAssets(domain.Asset{ID: "C", Class: domain.AssetClassCurrency}, broken)
		e.EvaluateAssets(domain.Asset{ID: "W", Class: domain.AssetClassCommodity}, domain.Asset{ID: "D", Class: domain.AssetClassDerivative})
	})
}
