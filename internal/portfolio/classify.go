package portfolio

import "strings"

// sectorBySymbol is an approximate static mapping for common NSE/BSE listings.
// Anything unknown falls through to "Other".
var sectorBySymbol = map[string]string{
	// IT
	"INFY": "IT", "TCS": "IT", "WIPRO": "IT", "HCLTECH": "IT", "TECHM": "IT",
	"LTIM": "IT", "MPHASIS": "IT", "COFORGE": "IT",
	// Banking
	"HDFCBANK": "Banking", "ICICIBANK": "Banking", "KOTAKBANK": "Banking",
	"SBIN": "Banking", "AXISBANK": "Banking", "INDUSINDBK": "Banking",
	// Financial services
	"BAJFINANCE": "Financial Services", "BAJAJFINSV": "Financial Services", "HDFC": "Financial Services",
	// Pharma
	"SUNPHARMA": "Pharma", "DRREDDY": "Pharma", "CIPLA": "Pharma",
	"DIVISLAB": "Pharma", "APOLLOHOSP": "Pharma",
	// Auto
	"TATAMOTORS": "Auto", "MARUTI": "Auto", "M&M": "Auto", "BAJAJ-AUTO": "Auto",
	"HEROMOTOCO": "Auto", "EICHERMOT": "Auto",
	// FMCG
	"HINDUNILVR": "FMCG", "ITC": "FMCG", "NESTLEIND": "FMCG",
	"BRITANNIA": "FMCG", "DABUR": "FMCG", "TATACONSUM": "FMCG",
	// Energy
	"RELIANCE": "Energy", "ONGC": "Energy", "BPCL": "Energy",
	"IOC": "Energy", "NTPC": "Energy", "POWERGRID": "Energy",
	// Metals
	"TATASTEEL": "Metals", "JSWSTEEL": "Metals", "HINDALCO": "Metals",
	"VEDL": "Metals", "COALINDIA": "Metals",
	// Telecom
	"BHARTIARTL": "Telecom", "IDEA": "Telecom",
	// Cement
	"ULTRACEMCO": "Cement", "GRASIM": "Cement", "SHREECEM": "Cement", "AMBUJACEM": "Cement",
	// Infra
	"LT": "Infrastructure", "ADANIENT": "Infrastructure", "ADANIPORTS": "Infrastructure",
}

// Sector classifies a stock by trading symbol, stripping an NSE:/BSE: prefix
// when present.
func Sector(symbol string) string {
	clean := strings.TrimPrefix(strings.TrimPrefix(symbol, "NSE:"), "BSE:")
	if sector, ok := sectorBySymbol[clean]; ok {
		return sector
	}
	return "Other"
}

// categoryRule maps display-name keywords to a fund category. Rules are
// checked in order; the first hit wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{[]string{"large cap", "largecap", "bluechip"}, "Large Cap"},
	{[]string{"mid cap", "midcap"}, "Mid Cap"},
	{[]string{"small cap", "smallcap"}, "Small Cap"},
	{[]string{"flexi", "flexible"}, "Flexi Cap"},
	{[]string{"multi cap", "multicap"}, "Multi Cap"},
	{[]string{"elss", "tax"}, "ELSS"},
	{[]string{"index", "nifty", "sensex"}, "Index Fund"},
	{[]string{"debt", "bond", "income"}, "Debt"},
	{[]string{"liquid", "money market"}, "Liquid"},
	{[]string{"hybrid", "balanced", "advantage"}, "Hybrid"},
}

// FundCategory infers a mutual fund's category from its display name.
func FundCategory(fundName string) string {
	name := strings.ToLower(fundName)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.category
			}
		}
	}
	return "Other"
}
