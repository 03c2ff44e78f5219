package mfcache

import "testing"

func TestParseInstrumentsCoercesTypes(t *testing.T) {
	raw := "name,amc,last_price,purchase_allowed\nFund A,ACME_MF,123.45,1\nFund B,ACME_MF,not-a-number,0\n"

	got := parseInstruments(raw)
	if len(got) != 2 {
		t.Fatalf("expected 2 instruments, got %d", len(got))
	}

	a := got[0]
	if a.Name != "Fund A" || a.AMC != "ACME_MF" {
		t.Errorf("string fields wrong: %+v", a)
	}
	if a.LastPrice != 123.45 {
		t.Errorf("last_price should be 123.45, got %v", a.LastPrice)
	}
	if !a.PurchaseAllowed {
		t.Error("purchase_allowed \"1\" should be true")
	}

	b := got[1]
	if b.LastPrice != 0 {
		t.Errorf("unparseable number should default to 0, got %v", b.LastPrice)
	}
	if b.PurchaseAllowed {
		t.Error("purchase_allowed \"0\" should be false")
	}
}

func TestParseInstrumentsDropsMismatchedRows(t *testing.T) {
	raw := "name,amc,last_price\nFund A,ACME_MF,10\nBroken row with no commas\nFund B,OTHER_MF,20,extra\nFund C,OTHER_MF,30\n"

	got := parseInstruments(raw)
	if len(got) != 2 {
		t.Fatalf("mismatched rows must be dropped, got %d instruments", len(got))
	}
	if got[0].Name != "Fund A" || got[1].Name != "Fund C" {
		t.Errorf("wrong rows survived: %+v", got)
	}
}

func TestParseInstrumentsEmptyInput(t *testing.T) {
	if got := parseInstruments(""); len(got) != 0 {
		t.Errorf("empty input should parse to nothing, got %d", len(got))
	}
	if got := parseInstruments("name,amc\n"); len(got) != 0 {
		t.Errorf("header-only input should parse to nothing, got %d", len(got))
	}
}

func TestParseInstrumentsHandlesCRLF(t *testing.T) {
	raw := "name,amc,last_price\r\nFund A,ACME_MF,10\r\n"
	got := parseInstruments(raw)
	if len(got) != 1 {
		t.Fatalf("CRLF input should parse, got %d instruments", len(got))
	}
	if got[0].LastPrice != 10 {
		t.Errorf("trailing CR corrupted the last field: %+v", got[0])
	}
}
