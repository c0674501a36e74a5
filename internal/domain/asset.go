package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass tags which kind of instrument an Asset holds.
// The set is closed - anything outside it fails validation.
type AssetClass string

const (
	AssetClassEquity     AssetClass = "equity"
	AssetClassBond       AssetClass = "bond"
	AssetClassCommodity  AssetClass = "commodity"
	AssetClassCurrency   AssetClass = "currency"
	AssetClassDerivative AssetClass = "derivative"
)

var assetClasses = []AssetClass{
	AssetClassEquity,
	AssetClassBond,
	AssetClassCommodity,
	AssetClassCurrency,
	AssetClassDerivative,
}

func ParseAssetClass(s string) (AssetClass, error) {
	for _, c := range assetClasses {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown asset class %q", ErrInvalidAttribute, s)
}

// Asset is a tagged union over the asset classes. Exactly one
// attribute pointer must be set, and it must match Class.
type Asset struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Class AssetClass `json:"class"`

	Equity     *EquityAttributes     `json:"equity,omitempty"`
	Bond       *BondAttributes       `json:"bond,omitempty"`
	Commodity  *CommodityAttributes  `json:"commodity,omitempty"`
	Currency   *CurrencyAttributes   `json:"currency,omitempty"`
	Derivative *DerivativeAttributes `json:"derivative,omitempty"`
}

type EquityAttributes struct {
	Sector string `json:"sector"`
	Issuer string `json:"issuer"`
	// denomination currency, ISO code
	CurrencyCode string `json:"currencyCode"`
	// ids of commodity assets this business is exposed to
	Commodities []string        `json:"commodities,omitempty"`
	MarketCap   decimal.Decimal `json:"marketCap"`
}

type BondAttributes struct {
	Issuer       string          `json:"issuer"`
	CurrencyCode string          `json:"currencyCode"`
	Maturity     time.Time       `json:"maturity"`
	CouponRate   decimal.Decimal `json:"couponRate"`
	ParValue     decimal.Decimal `json:"parValue"`
}

type CommodityAttributes struct {
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	CurrencyCode string          `json:"currencyCode"`
	ContractSize decimal.Decimal `json:"contractSize"`
}

type CurrencyAttributes struct {
	// ISO code, e.g. "USD"
	Code string `json:"code"`
	// optional quote pair, e.g. "EUR/USD"
	Pair string `json:"pair,omitempty"`
}

type DerivativeAttributes struct {
	// id of the asset this contract derives from
	Underlying   string          `json:"underlying"`
	ContractType string          `json:"contractType"`
	CurrencyCode string          `json:"currencyCode"`
	Notional     decimal.Decimal `json:"notional"`
}

func (a Asset) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: asset id is required", ErrInvalidAttribute)
	}
	if a.Name == "" {
		return fmt.Errorf("%w: asset %s has no name", ErrInvalidAttribute, a.ID)
	}
	if _, err := ParseAssetClass(string(a.Class)); err != nil {
		return err
	}

	set := 0
	for _, p := range []bool{
		a.Equity != nil,
		a.Bond != nil,
		a.Commodity != nil,
		a.Currency != nil,
		a.Derivative != nil,
	} {
		if p {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: asset %s must have exactly one attribute set, got %d", ErrInvalidAttribute, a.ID, set)
	}

	switch a.Class {
	case AssetClassEquity:
		if a.Equity == nil {
			return fmt.Errorf("%w: asset %s tagged equity without equity attributes", ErrInvalidAttribute, a.ID)
		}
		if a.Equity.MarketCap.IsNegative() {
			return fmt.Errorf("%w: asset %s has negative market cap", ErrInvalidAttribute, a.ID)
		}
	case AssetClassBond:
		if a.Bond == nil {
			return fmt.Errorf("%w: asset %s tagged bond without bond attributes", ErrInvalidAttribute, a.ID)
		}
		if a.Bond.Issuer == "" {
			return fmt.Errorf("%w: bond %s has no issuer", ErrInvalidAttribute, a.ID)
		}
		if a.Bond.ParValue.IsNegative() {
			return fmt.Errorf("%w: bond %s has negative par value", ErrInvalidAttribute, a.ID)
		}
	case AssetClassCommodity:
		if a.Commodity == nil {
			return fmt.Errorf("%w: asset %s tagged commodity without commodity attributes", ErrInvalidAttribute, a.ID)
		}
		if a.Commodity.ContractSize.IsNegative() {
			return fmt.Errorf("%w: commodity %s has negative contract size", ErrInvalidAttribute, a.ID)
		}
	case AssetClassCurrency:
		if a.Currency == nil {
			return fmt.Errorf("%w: asset %s tagged currency without currency attributes", ErrInvalidAttribute, a.ID)
		}
		if a.Currency.Code == "" {
			return fmt.Errorf("%w: currency %s has no code", ErrInvalidAttribute, a.ID)
		}
	case AssetClassDerivative:
		if a.Derivative == nil {
			return fmt.Errorf("%w: asset %s tagged derivative without derivative attributes", ErrInvalidAttribute, a.ID)
		}
		if a.Derivative.Underlying == "" {
			return fmt.Errorf("%w: derivative %s has no underlying", ErrInvalidAttribute, a.ID)
		}
	}

	return nil
}

// Clone returns a deep copy. The graph stores and returns clones so
// callers can never reach graph-owned state through a snapshot.
func (a Asset) Clone() Asset {
	out := a
	if a.Equity != nil {
		attrs := *a.Equity
		attrs.Commodities = append([]string(nil), a.Equity.Commodities...)
		out.Equity = &attrs
	}
	if a.Bond != nil {
		attrs := *a.Bond
		out.Bond = &attrs
	}
	if a.Commodity != nil {
		attrs := *a.Commodity
		out.Commodity = &attrs
	}
	if a.Currency != nil {
		attrs := *a.Currency
		out.Currency = &attrs
	}
	if a.Derivative != nil {
		attrs := *a.Derivative
		out.Derivative = &attrs
	}
	return out
}

// CurrencyCode returns the denomination currency of the asset, or ""
// when the class carries none (currency assets denominate themselves).
func (a Asset) CurrencyCode() string {
	switch a.Class {
	case AssetClassEquity:
		if a.Equity != nil {
			return a.Equity.CurrencyCode
		}
	case AssetClassBond:
		if a.Bond != nil {
			return a.Bond.CurrencyCode
		}
	case AssetClassCommodity:
		if a.Commodity != nil {
			return a.Commodity.CurrencyCode
		}
	case AssetClassDerivative:
		if a.Derivative != nil {
			return a.Derivative.CurrencyCode
		}
	}
	return ""
}

// Sector returns the sector tag for sector-bearing classes.
func (a Asset) Sector() string {
	if a.Class == AssetClassEquity && a.Equity != nil {
		return a.Equity.Sector
	}
	return ""
}
