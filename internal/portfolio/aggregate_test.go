package portfolio

import (
	"testing"

	"github.com/akverma/kitegram/internal/kite"
)

func TestAggregateEquityOnly(t *testing.T) {
	holdings := []kite.Holding{
		{Tradingsymbol: "INFY", Quantity: 4, AveragePrice: 140, LastPrice: 150, PnL: 40},
		{Tradingsymbol: "SBIN", Quantity: 8, AveragePrice: 45, LastPrice: 50, PnL: 40},
	}
	// Market values 600 and 400, no mutual funds.
	snap := Aggregate(holdings, nil, nil)

	if snap.Summary.TotalValue != 1000 {
		t.Fatalf("total value: got %v", snap.Summary.TotalValue)
	}
	if snap.Summary.EquityAllocationPct != 100 {
		t.Errorf("equity allocation: got %d, want 100", snap.Summary.EquityAllocationPct)
	}
	if snap.Summary.MFAllocationPct != 0 {
		t.Errorf("mf allocation: got %d, want 0", snap.Summary.MFAllocationPct)
	}
	if snap.Summary.TopHoldingConcentrationPct != 60 {
		t.Errorf("top holding concentration: got %d, want 60", snap.Summary.TopHoldingConcentrationPct)
	}
	if snap.Summary.Top3ConcentrationPct != 100 {
		t.Errorf("top 3 concentration: got %d, want 100", snap.Summary.Top3ConcentrationPct)
	}
	if snap.Summary.HoldingsCount != 2 {
		t.Errorf("holdings count: got %d", snap.Summary.HoldingsCount)
	}
	if snap.Empty() {
		t.Error("snapshot with holdings should not be empty")
	}
}

func TestAggregateEmptyPortfolio(t *testing.T) {
	snap := Aggregate(nil, nil, nil)

	if !snap.Empty() {
		t.Error("empty portfolio should report Empty")
	}
	if snap.Summary.EquityAllocationPct != 0 || snap.Summary.UnrealizedPnLPct != 0 {
		t.Errorf("zero-value division guards failed: %+v", snap.Summary)
	}
}

func TestAggregateMixedPnL(t *testing.T) {
	holdings := []kite.Holding{
		{Tradingsymbol: "RELIANCE", Quantity: 2, AveragePrice: 1000, LastPrice: 1100, PnL: 200},
	}
	funds := []kite.MFHolding{
		{Fund: "Axis Bluechip Fund", Tradingsymbol: "INF846K01EW2", Quantity: 100, AveragePrice: 40, LastPrice: 44},
	}

	snap := Aggregate(holdings, nil, funds)

	// Invested 2000 + 4000, current 2200 + 4400.
	if snap.Summary.TotalInvested != 6000 {
		t.Errorf("total invested: got %v", snap.Summary.TotalInvested)
	}
	if snap.Summary.UnrealizedPnL != 600 {
		t.Errorf("unrealized pnl: got %v", snap.Summary.UnrealizedPnL)
	}
	if snap.Summary.UnrealizedPnLPct != 10 {
		t.Errorf("pnl percent: got %v, want 10", snap.Summary.UnrealizedPnLPct)
	}
	// 2200 / 6600 = 33%, 4400 / 6600 = 67%.
	if snap.Summary.EquityAllocationPct != 33 || snap.Summary.MFAllocationPct != 67 {
		t.Errorf("allocation split: equity %d, mf %d", snap.Summary.EquityAllocationPct, snap.Summary.MFAllocationPct)
	}

	if snap.SectorExposure["Energy"] != 2200 {
		t.Errorf("sector exposure: %+v", snap.SectorExposure)
	}
	if snap.FundCategoryExposure["Large Cap"] != 4400 {
		t.Errorf("fund category exposure: %+v", snap.FundCategoryExposure)
	}

	// Ranked by value: the fund first.
	if len(snap.Top5Holdings) != 2 || snap.Top5Holdings[0].Name != "Axis Bluechip Fund" {
		t.Errorf("top holdings order wrong: %+v", snap.Top5Holdings)
	}
}

func TestNormalizePositionsFiltersClosed(t *testing.T) {
	positions := &kite.Positions{Net: []kite.Position{
		{Tradingsymbol: "NIFTY24AUGFUT", Product: "NRML", Quantity: 0, LastPrice: 24000},
		{Tradingsymbol: "INFY", Product: "MIS", Quantity: -10, LastPrice: 1500, PnL: -120},
	}}

	got := NormalizePositions(positions)
	if len(got) != 1 {
		t.Fatalf("closed positions should be dropped, got %d", len(got))
	}
	if got[0].Exposure != 15000 {
		t.Errorf("exposure should be absolute: %v", got[0].Exposure)
	}
}

func TestNormalizeHoldingsComputesPnLFallback(t *testing.T) {
	got := NormalizeHoldings([]kite.Holding{
		{Tradingsymbol: "TCS", Quantity: 5, AveragePrice: 3000, LastPrice: 3200},
	})
	if len(got) != 1 {
		t.Fatal("expected one holding")
	}
	if got[0].PnL != 1000 {
		t.Errorf("pnl fallback: got %v, want 1000", got[0].PnL)
	}
	if got[0].Exchange != "NSE" {
		t.Errorf("exchange should default to NSE, got %q", got[0].Exchange)
	}
}
