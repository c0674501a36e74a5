package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func equity(id, sector, issuer string) Asset {
	return Asset{
		ID:    id,
		Name:  id,
		Class: AssetClassEquity,
		Equity: &EquityAttributes{
			Sector:       sector,
			Issuer:       issuer,
			CurrencyCode: "USD",
		},
	}
}

func Test_AssetValidate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		require.NoError(t, equity("AAPL", "Technology", "AAPL-CORP").Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		asset := equity("", "Technology", "AAPL-CORP")
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("unknown class", func(t *testing.T) {
		asset := equity("AAPL", "Technology", "AAPL-CORP")
		asset.Class = "crypto"
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("class and payload mismatch", func(t *testing.T) {
		asset := equity("AAPL", "Technology", "AAPL-CORP")
		asset.Class = AssetClassBond
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("multiple payloads", func(t *testing.T) {
		asset := equity("AAPL", "Technology", "AAPL-CORP")
		asset.Currency = &CurrencyAttributes{Code: "USD"}
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("negative market cap", func(t *testing.T) {
		asset := equity("AAPL", "Technology", "AAPL-CORP")
		asset.Equity.MarketCap = decimal.NewFromInt(-1)
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("bond without issuer", func(t *testing.T) {
		asset := Asset{
			ID:    "B1",
			Name:  "some bond",
			Class: AssetClassBond,
			Bond:  &BondAttributes{CurrencyCode: "USD"},
		}
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})

	t.Run("derivative without underlying", func(t *testing.T) {
		asset := Asset{
			ID:         "F1",
			Name:       "some future",
			Class:      AssetClassDerivative,
			Derivative: &DerivativeAttributes{ContractType: "future"},
		}
		err := asset.Validate()
		require.ErrorIs(t, err, ErrInvalidAttribute)
	})
}

func Test_EventValidate(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		event := RegulatoryEvent{
			ID:          "REG-1",
			Description: "new disclosure rule",
			ImpactScore: 0.5,
		}
		require.NoError(t, event.Validate())
	})

	t.Run("impact score out of range", func(t *testing.T) {
		for _, score := range []float64{-0.1, 1.1} {
			event := RegulatoryEvent{
				ID:          "REG-1",
				Description: "new disclosure rule",
				ImpactScore: score,
			}
			require.ErrorIs(t, event.Validate(), ErrInvalidAttribute)
		}
	})
}

func Test_EventCovers(t *testing.T) {
	event := RegulatoryEvent{
		ID:          "REG-1",
		Description: "energy equity rule",
		ImpactScore: 0.8,
		Classes:     []AssetClass{AssetClassEquity},
		Sectors:     []string{"Energy"},
	}

	t.Run("full match", func(t *testing.T) {
		matched, specified := event.Covers(equity("XOM", "Energy", "XOM-CORP"))
		require.Equal(t, 2, matched)
		require.Equal(t, 2, specified)
	})

	t.Run("partial match", func(t *testing.T) {
		matched, specified := event.Covers(equity("AAPL", "Technology", "AAPL-CORP"))
		require.Equal(t, 1, matched)
		require.Equal(t, 2, specified)
	})

	t.Run("empty scope covers everything", func(t *testing.T) {
		open := RegulatoryEvent{ID: "REG-2", Description: "blanket rule", ImpactScore: 0.3}
		matched, specified := open.Covers(equity("AAPL", "Technology", "AAPL-CORP"))
		require.Equal(t, 0, matched)
		require.Equal(t, 0, specified)
	})
}

func Test_RelationshipValidate(t *testing.T) {
	t.Run("self loop", func(t *testing.T) {
		rel := Relationship{SourceID: "AAPL", TargetID: "AAPL", Kind: RelationshipKindSectorAffinity, Weight: 0.5}
		require.ErrorIs(t, rel.Validate(), ErrInvalidRelationship)
	})

	t.Run("weight out of range", func(t *testing.T) {
		for _, w := range []float64{-0.5, 1.5} {
			rel := Relationship{SourceID: "AAPL", TargetID: "MSFT", Kind: RelationshipKindSectorAffinity, Weight: w}
			require.ErrorIs(t, rel.Validate(), ErrInvalidRelationship)
		}
	})

	t.Run("valid edge", func(t *testing.T) {
		rel := Relationship{SourceID: "AAPL", TargetID: "MSFT", Kind: RelationshipKindSectorAffinity, Weight: 0.6, Bidirectional: true}
		require.NoError(t, rel.Validate())
	})
}
