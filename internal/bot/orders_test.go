package bot

import (
	"errors"
	"strings"
	"testing"
)

func TestParseOrderArgsDefaults(t *testing.T) {
	params, err := parseOrderArgs("BUY", strings.Fields("infy 10"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if params.Tradingsymbol != "INFY" {
		t.Errorf("symbol = %q, want INFY", params.Tradingsymbol)
	}
	if params.Exchange != "NSE" {
		t.Errorf("exchange = %q, want NSE", params.Exchange)
	}
	if params.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", params.Quantity)
	}
	if params.OrderType != "MARKET" || params.Product != "CNC" || params.Validity != "DAY" {
		t.Errorf("defaults = %s/%s/%s, want MARKET/CNC/DAY", params.OrderType, params.Product, params.Validity)
	}
	if params.TransactionType != "BUY" {
		t.Errorf("transaction type = %q, want BUY", params.TransactionType)
	}
}

func TestParseOrderArgsFull(t *testing.T) {
	params, err := parseOrderArgs("SELL", strings.Fields("bse:reliance 5 limit 2890.50 mis"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if params.Exchange != "BSE" {
		t.Errorf("exchange = %q, want BSE", params.Exchange)
	}
	if params.Tradingsymbol != "RELIANCE" {
		t.Errorf("symbol = %q, want RELIANCE", params.Tradingsymbol)
	}
	if params.OrderType != "LIMIT" {
		t.Errorf("order type = %q, want LIMIT", params.OrderType)
	}
	if params.Price != 2890.50 {
		t.Errorf("price = %v, want 2890.50", params.Price)
	}
	if params.Product != "MIS" {
		t.Errorf("product = %q, want MIS", params.Product)
	}
}

func TestParseOrderArgsErrors(t *testing.T) {
	cases := []struct {
		name string
		args string
	}{
		{"missing quantity", "INFY"},
		{"empty", ""},
		{"zero quantity", "INFY 0"},
		{"negative quantity", "INFY -5"},
		{"fractional quantity", "INFY 2.5"},
		{"limit without price", "INFY 10 LIMIT"},
		{"junk argument", "INFY 10 WHATEVER"},
		{"empty symbol after prefix", "NSE: 10"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseOrderArgs("BUY", strings.Fields(tc.args)); err == nil {
				t.Errorf("parseOrderArgs(%q) succeeded, want error", tc.args)
			}
		})
	}
}

func TestParseOrderArgsUsageSentinel(t *testing.T) {
	_, err := parseOrderArgs("BUY", nil)
	if !errors.Is(err, errOrderUsage) {
		t.Fatalf("err = %v, want errOrderUsage", err)
	}
}

func TestParseOrderArgsMarketIgnoresPrice(t *testing.T) {
	params, err := parseOrderArgs("BUY", strings.Fields("INFY 10 1500 MARKET"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if params.Price != 0 {
		t.Errorf("price = %v, want 0 for MARKET orders", params.Price)
	}
}
