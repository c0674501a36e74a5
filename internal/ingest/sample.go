package ingest

import (
	"assetgraph/internal/domain"
	"strings"
)

// Demo dataset used by the api seed and the CLI. Kept as CSV so the
// fixture and the file-based ingestion path share one parser.
const sampleAssetsCSV = `id,name,class,sector,issuer,currency_code,commodities,market_cap,maturity,coupon_rate,par_value,category,unit,contract_size,code,pair,underlying,contract_type,notional
AAPL,Apple Inc,equity,Technology,AAPL-CORP,USD,,2900000000000,,,,,,,,,,,
MSFT,Microsoft Corp,equity,Technology,MSFT-CORP,USD,,2800000000000,,,,,,,,,,,
XOM,Exxon Mobil,equity,Energy,XOM-CORP,USD,WTI,410000000000,,,,,,,,,,,
SHEL,Shell plc,equity,Energy,SHEL-CORP,EUR,WTI;BRENT,210000000000,,,,,,,,,,,
AAPL-B28,Apple 3.85% 2028,bond,,AAPL-CORP,USD,,,2028-08-04,3.85,1000,,,,,,,,
XOM-B31,Exxon 4.23% 2031,bond,,XOM-CORP,USD,,,2031-03-19,4.23,1000,,,,,,,,
WTI,WTI Crude Oil,commodity,,,USD,,,,,,energy,barrel,1000,,,,,
BRENT,Brent Crude Oil,commodity,,,USD,,,,,,energy,barrel,1000,,,,,
GOLD,Gold,commodity,,,USD,,,,,,metals,troy ounce,100,,,,,
USD,US Dollar,currency,,,,,,,,,,,,USD,,,,
EUR,Euro,currency,,,,,,,,,,,,EUR,EUR/USD,,,
WTI-FUT,WTI Crude Future,derivative,,,USD,,,,,,,,,,,WTI,future,75000
`

const sampleEventsCSV = `id,description,effective_date,impact_score,classes,sectors
REG-ENERGY-2025,Emissions disclosure rule for energy producers,2025-07-01,0.8,equity,Energy
REG-MIFID-2026,Reporting requirements for derivative contracts,2026-01-01,0.45,derivative,
`

// SampleAssets returns the embedded demo assets.
func SampleAssets() ([]domain.Asset, error) {
	return ParseAssetsCSV(strings.NewReader(sampleAssetsCSV))
}

// SampleEvents returns the embedded demo events.
func SampleEvents() ([]domain.RegulatoryEvent, error) {
	return ParseEventsCSV(strings.NewReader(sampleEventsCSV))
}
