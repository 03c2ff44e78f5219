package portfolio

import "testing"

func TestSector(t *testing.T) {
	cases := []struct {
		symbol string
		want   string
	}{
		{"INFY", "IT"},
		{"NSE:INFY", "IT"},
		{"BSE:RELIANCE", "Energy"},
		{"HDFCBANK", "Banking"},
		{"SOMENEWIPO", "Other"},
	}
	for _, tc := range cases {
		if got := Sector(tc.symbol); got != tc.want {
			t.Errorf("Sector(%q) = %q, want %q", tc.symbol, got, tc.want)
		}
	}
}

func TestFundCategoryFirstMatchWins(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Axis Bluechip Fund Direct Growth", "Large Cap"},
		{"Kotak Emerging Equity Midcap Fund", "Mid Cap"},
		{"Nippon India Small Cap Fund", "Small Cap"},
		{"Parag Parikh Flexi Cap Fund", "Flexi Cap"},
		{"Mirae Asset Tax Saver Fund", "ELSS"},
		{"UTI Nifty 50 Index Fund", "Index Fund"},
		{"HDFC Corporate Bond Fund", "Debt"},
		{"SBI Liquid Fund", "Liquid"},
		{"ICICI Prudential Balanced Advantage Fund", "Hybrid"},
		{"Quant Momentum Fund", "Other"},
		// "large cap" outranks "index" because rules run in order.
		{"Frank Large Cap Index Fund", "Large Cap"},
	}
	for _, tc := range cases {
		if got := FundCategory(tc.name); got != tc.want {
			t.Errorf("FundCategory(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFundCategoryCaseInsensitive(t *testing.T) {
	if got := FundCategory("AXIS BLUECHIP FUND"); got != "Large Cap" {
		t.Errorf("uppercase name should match: got %q", got)
	}
}
