// Package portfolio normalizes raw Kite holdings into a single shape and
// computes the summary metrics the AI layer reasons about. It is pure
// computation with no I/O.
package portfolio

import (
	"math"
	"sort"

	"github.com/akverma/kitegram/internal/kite"
)

// EquityHolding is a normalized equity position from the holdings book.
type EquityHolding struct {
	Symbol       string  `json:"symbol"`
	Exchange     string  `json:"exchange"`
	Quantity     float64 `json:"quantity"`
	AvgPrice     float64 `json:"avg_price"`
	CurrentPrice float64 `json:"current_price"`
	MarketValue  float64 `json:"market_value"`
	PnL          float64 `json:"pnl"`
	Sector       string  `json:"sector"`
}

// OpenPosition is a normalized open net position (quantity != 0).
type OpenPosition struct {
	Symbol   string  `json:"symbol"`
	Product  string  `json:"product"`
	Quantity float64 `json:"quantity"`
	Exposure float64 `json:"exposure"`
	PnL      float64 `json:"pnl"`
}

// FundHolding is a normalized mutual-fund holding.
type FundHolding struct {
	FundName      string  `json:"fund_name"`
	Tradingsymbol string  `json:"tradingsymbol"`
	Category      string  `json:"category"`
	Units         float64 `json:"units"`
	InvestedValue float64 `json:"invested_value"`
	CurrentValue  float64 `json:"current_value"`
	PnL           float64 `json:"pnl"`
}

// RankedHolding is an entry of the value-ordered combined holding list.
type RankedHolding struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Type  string  `json:"type"`
}

// Summary carries the headline portfolio metrics.
type Summary struct {
	TotalValue                float64 `json:"total_value"`
	TotalInvested             float64 `json:"total_invested"`
	EquityValue               float64 `json:"equity_value"`
	MFValue                   float64 `json:"mf_value"`
	EquityAllocationPct       int     `json:"equity_allocation_percent"`
	MFAllocationPct           int     `json:"mutual_fund_allocation_percent"`
	UnrealizedPnL             float64 `json:"unrealized_pnl"`
	UnrealizedPnLPct          float64 `json:"unrealized_pnl_percent"`
	PositionsExposure         float64 `json:"positions_exposure"`
	PositionsPnL              float64 `json:"positions_pnl"`
	TopHoldingConcentrationPct int    `json:"top_holding_concentration_percent"`
	Top3ConcentrationPct      int     `json:"top_3_concentration_percent"`
	HoldingsCount             int     `json:"holdings_count"`
}

// Snapshot is the aggregated portfolio handed to the AI layer.
type Snapshot struct {
	Summary              Summary            `json:"portfolio_summary"`
	SectorExposure       map[string]float64 `json:"sector_exposure"`
	FundCategoryExposure map[string]float64 `json:"mf_category_exposure"`
	Top5Holdings         []RankedHolding    `json:"top_5_holdings"`
	Holdings             []EquityHolding    `json:"holdings"`
	Positions            []OpenPosition     `json:"positions"`
	Funds                []FundHolding      `json:"mutual_funds"`
}

// Empty reports whether the portfolio has no holdings at all.
func (s *Snapshot) Empty() bool {
	return s.Summary.HoldingsCount == 0
}

// NormalizeHoldings maps equity holdings to the common shape, deriving market
// value and falling back to computed P&L when the API omits it.
func NormalizeHoldings(holdings []kite.Holding) []EquityHolding {
	out := make([]EquityHolding, 0, len(holdings))
	for _, h := range holdings {
		exchange := h.Exchange
		if exchange == "" {
			exchange = "NSE"
		}
		pnl := h.PnL
		if pnl == 0 {
			pnl = h.Quantity * (h.LastPrice - h.AveragePrice)
		}
		out = append(out, EquityHolding{
			Symbol:       h.Tradingsymbol,
			Exchange:     exchange,
			Quantity:     h.Quantity,
			AvgPrice:     h.AveragePrice,
			CurrentPrice: h.LastPrice,
			MarketValue:  h.Quantity * h.LastPrice,
			PnL:          pnl,
			Sector:       Sector(h.Tradingsymbol),
		})
	}
	return out
}

// NormalizePositions keeps only open net positions (quantity != 0).
func NormalizePositions(positions *kite.Positions) []OpenPosition {
	if positions == nil {
		return nil
	}
	out := make([]OpenPosition, 0, len(positions.Net))
	for _, p := range positions.Net {
		if p.Quantity == 0 {
			continue
		}
		out = append(out, OpenPosition{
			Symbol:   p.Tradingsymbol,
			Product:  p.Product,
			Quantity: p.Quantity,
			Exposure: math.Abs(p.Quantity * p.LastPrice),
			PnL:      p.PnL,
		})
	}
	return out
}

// NormalizeFunds maps mutual-fund holdings to the common shape, inferring
// each fund's category from its name.
func NormalizeFunds(holdings []kite.MFHolding) []FundHolding {
	out := make([]FundHolding, 0, len(holdings))
	for _, h := range holdings {
		invested := h.AveragePrice * h.Quantity
		current := h.LastPrice * h.Quantity
		out = append(out, FundHolding{
			FundName:      h.Fund,
			Tradingsymbol: h.Tradingsymbol,
			Category:      FundCategory(h.Fund),
			Units:         h.Quantity,
			InvestedValue: invested,
			CurrentValue:  current,
			PnL:           current - invested,
		})
	}
	return out
}

// Aggregate computes the full snapshot from raw Kite data.
func Aggregate(holdings []kite.Holding, positions *kite.Positions, mfHoldings []kite.MFHolding) *Snapshot {
	eq := NormalizeHoldings(holdings)
	pos := NormalizePositions(positions)
	funds := NormalizeFunds(mfHoldings)

	var equityValue, equityInvested, equityPnL float64
	sectorExposure := make(map[string]float64)
	for _, h := range eq {
		equityValue += h.MarketValue
		equityInvested += h.AvgPrice * h.Quantity
		equityPnL += h.PnL
		sectorExposure[h.Sector] += h.MarketValue
	}

	var positionsExposure, positionsPnL float64
	for _, p := range pos {
		positionsExposure += p.Exposure
		positionsPnL += p.PnL
	}

	var mfValue, mfInvested, mfPnL float64
	categoryExposure := make(map[string]float64)
	for _, f := range funds {
		mfValue += f.CurrentValue
		mfInvested += f.InvestedValue
		mfPnL += f.PnL
		categoryExposure[f.Category] += f.CurrentValue
	}

	totalValue := equityValue + mfValue
	totalInvested := equityInvested + mfInvested
	totalPnL := equityPnL + mfPnL

	ranked := make([]RankedHolding, 0, len(eq)+len(funds))
	for _, h := range eq {
		ranked = append(ranked, RankedHolding{Name: h.Symbol, Value: h.MarketValue, Type: "equity"})
	}
	for _, f := range funds {
		ranked = append(ranked, RankedHolding{Name: f.FundName, Value: f.CurrentValue, Type: "mf"})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Value > ranked[j].Value })

	var topValue, top3Value float64
	if len(ranked) > 0 {
		topValue = ranked[0].Value
	}
	for i := 0; i < len(ranked) && i < 3; i++ {
		top3Value += ranked[i].Value
	}
	top5 := ranked
	if len(top5) > 5 {
		top5 = top5[:5]
	}

	return &Snapshot{
		Summary: Summary{
			TotalValue:                 totalValue,
			TotalInvested:              totalInvested,
			EquityValue:                equityValue,
			MFValue:                    mfValue,
			EquityAllocationPct:        pctOf(equityValue, totalValue),
			MFAllocationPct:            pctOf(mfValue, totalValue),
			UnrealizedPnL:              totalPnL,
			UnrealizedPnLPct:           pnlPct(totalPnL, totalInvested),
			PositionsExposure:          positionsExposure,
			PositionsPnL:               positionsPnL,
			TopHoldingConcentrationPct: pctOf(topValue, totalValue),
			Top3ConcentrationPct:       pctOf(top3Value, totalValue),
			HoldingsCount:              len(eq) + len(funds),
		},
		SectorExposure:       sectorExposure,
		FundCategoryExposure: categoryExposure,
		Top5Holdings:         top5,
		Holdings:             eq,
		Positions:            pos,
		Funds:                funds,
	}
}

// pctOf rounds part/whole to the nearest integer percent, 0 when whole is 0.
func pctOf(part, whole float64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

// pnlPct is the two-decimal P&L percentage, 0 when nothing is invested.
func pnlPct(pnl, invested float64) float64 {
	if invested == 0 {
		return 0
	}
	return math.Round(pnl/invested*100*100) / 100
}
