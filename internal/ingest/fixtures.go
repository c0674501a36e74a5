package ingest

import (
	"assetgraph/internal/domain"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// assetRow is the flat CSV shape for all classes. Columns not used by
// a row's class are left blank.
type assetRow struct {
	ID           string `csv:"id"`
	Name         string `csv:"name"`
	Class        string `csv:"class"`
	Sector       string `csv:"sector"`
	Issuer       string `csv:"issuer"`
	CurrencyCode string `csv:"currency_code"`
	Commodities  string `csv:"commodities"`
	MarketCap    string `csv:"market_cap"`
	Maturity     string `csv:"maturity"`
	CouponRate   string `csv:"coupon_rate"`
	ParValue     string `csv:"par_value"`
	Category     string `csv:"category"`
	Unit         string `csv:"unit"`
	ContractSize string `csv:"contract_size"`
	Code         string `csv:"code"`
	Pair         string `csv:"pair"`
	Underlying   string `csv:"underlying"`
	ContractType string `csv:"contract_type"`
	Notional     string `csv:"notional"`
}

type eventRow struct {
	ID            string  `csv:"id"`
	Description   string  `csv:"description"`
	EffectiveDate string  `csv:"effective_date"`
	ImpactScore   float64 `csv:"impact_score"`
	Classes       string  `csv:"classes"`
	Sectors       string  `csv:"sectors"`
}

// ParseAssetsCSV reads asset fixture rows and converts them into
// validated domain assets.
func ParseAssetsCSV(r io.Reader) ([]domain.Asset, error) {
	rows := []*assetRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse asset csv: %w", err)
	}

	assets := make([]domain.Asset, 0, len(rows))
	for _, row := range rows {
		asset, err := row.toAsset()
		if err != nil {
			return nil, err
		}
		if err := asset.Validate(); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

// ParseEventsCSV reads regulatory event fixture rows.
func ParseEventsCSV(r io.Reader) ([]domain.RegulatoryEvent, error) {
	rows := []*eventRow{}
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse event csv: %w", err)
	}

	events := make([]domain.RegulatoryEvent, 0, len(rows))
	for _, row := range rows {
		event, err := row.toEvent()
		if err != nil {
			return nil, err
		}
		if err := event.Validate(); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (row assetRow) toAsset() (domain.Asset, error) {
	asset := domain.Asset{
		ID:    row.ID,
		Name:  row.Name,
		Class: domain.AssetClass(row.Class),
	}

	switch asset.Class {
	case domain.AssetClassEquity:
		marketCap, err := parseDecimal(row.MarketCap, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		asset.Equity = &domain.EquityAttributes{
			Sector:       row.Sector,
			Issuer:       row.Issuer,
			CurrencyCode: row.CurrencyCode,
			Commodities:  splitList(row.Commodities),
			MarketCap:    marketCap,
		}
	case domain.AssetClassBond:
		maturity, err := parseDate(row.Maturity, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		couponRate, err := parseDecimal(row.CouponRate, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		parValue, err := parseDecimal(row.ParValue, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		asset.Bond = &domain.BondAttributes{
			Issuer:       row.Issuer,
			CurrencyCode: row.CurrencyCode,
			Maturity:     maturity,
			CouponRate:   couponRate,
			ParValue:     parValue,
		}
	case domain.AssetClassCommodity:
		contractSize, err := parseDecimal(row.ContractSize, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		asset.Commodity = &domain.CommodityAttributes{
			Category:     row.Category,
			Unit:         row.Unit,
			CurrencyCode: row.CurrencyCode,
			ContractSize: contractSize,
		}
	case domain.AssetClassCurrency:
		asset.Currency = &domain.CurrencyAttributes{
			Code: row.Code,
			Pair: row.Pair,
		}
	case domain.AssetClassDerivative:
		notional, err := parseDecimal(row.Notional, row.ID)
		if err != nil {
			return domain.Asset{}, err
		}
		asset.Derivative = &domain.DerivativeAttributes{
			Underlying:   row.Underlying,
			ContractType: row.ContractType,
			CurrencyCode: row.CurrencyCode,
			Notional:     notional,
		}
	default:
		return domain.Asset{}, fmt.Errorf("%w: row %s has unknown class %q", domain.ErrInvalidAttribute, row.ID, row.Class)
	}

	return asset, nil
}

func (row eventRow) toEvent() (domain.RegulatoryEvent, error) {
	effectiveDate, err := parseDate(row.EffectiveDate, row.ID)
	if err != nil {
		return domain.RegulatoryEvent{}, err
	}

	classes := []domain.AssetClass{}
	for _, s := range splitList(row.Classes) {
		class, err := domain.ParseAssetClass(s)
		if err != nil {
			return domain.RegulatoryEvent{}, err
		}
		classes = append(classes, class)
	}

	return domain.RegulatoryEvent{
		ID:            row.ID,
		Description:   row.Description,
		EffectiveDate: effectiveDate,
		ImpactScore:   row.ImpactScore,
		Classes:       classes,
		Sectors:       splitList(row.Sectors),
	}, nil
}

func parseDecimal(s, rowID string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("row %s has invalid decimal %q: %w", rowID, s, err)
	}
	return d, nil
}

func parseDate(s, rowID string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("row %s has invalid date %q: %w", rowID, s, err)
	}
	return t, nil
}

// splitList splits a semicolon-delimited csv cell.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
