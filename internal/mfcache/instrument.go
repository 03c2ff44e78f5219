package mfcache

import (
	"strconv"
	"strings"
)

// Instrument is one tradable mutual-fund scheme from the Kite MF instrument
// dump.
type Instrument struct {
	Tradingsymbol                   string
	AMC                             string
	Name                            string
	PurchaseAllowed                 bool
	RedemptionAllowed               bool
	MinimumPurchaseAmount           float64
	PurchaseAmountMultiplier        float64
	MinimumAdditionalPurchaseAmount float64
	MinimumRedemptionQuantity       float64
	RedemptionQuantityMultiplier    float64
	DividendType                    string
	SchemeType                      string
	Plan                            string
	SettlementType                  string
	LastPrice                       float64
	LastPriceDate                   string
}

// parseInstruments turns the raw CSV dump into instruments. The first line
// names the columns; rows whose field count does not match the header are
// dropped silently. Numeric columns default to 0 on parse failure; boolean
// columns are true only for the literal "1".
func parseInstruments(raw string) []Instrument {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 2 {
		return nil
	}

	headers := strings.Split(strings.TrimRight(lines[0], "\r"), ",")
	instruments := make([]Instrument, 0, len(lines)-1)

	for _, line := range lines[1:] {
		values := strings.Split(strings.TrimRight(line, "\r"), ",")
		if len(values) != len(headers) {
			continue
		}

		var inst Instrument
		for i, header := range headers {
			setField(&inst, header, values[i])
		}
		instruments = append(instruments, inst)
	}

	return instruments
}

func setField(inst *Instrument, header, value string) {
	switch header {
	case "tradingsymbol":
		inst.Tradingsymbol = value
	case "amc":
		inst.AMC = value
	case "name":
		inst.Name = value
	case "purchase_allowed":
		inst.PurchaseAllowed = value == "1"
	case "redemption_allowed":
		inst.RedemptionAllowed = value == "1"
	case "minimum_purchase_amount":
		inst.MinimumPurchaseAmount = parseNumber(value)
	case "purchase_amount_multiplier":
		inst.PurchaseAmountMultiplier = parseNumber(value)
	case "minimum_additional_purchase_amount":
		inst.MinimumAdditionalPurchaseAmount = parseNumber(value)
	case "minimum_redemption_quantity":
		inst.MinimumRedemptionQuantity = parseNumber(value)
	case "redemption_quantity_multiplier":
		inst.RedemptionQuantityMultiplier = parseNumber(value)
	case "dividend_type":
		inst.DividendType = value
	case "scheme_type":
		inst.SchemeType = value
	case "plan":
		inst.Plan = value
	case "settlement_type":
		inst.SettlementType = value
	case "last_price":
		inst.LastPrice = parseNumber(value)
	case "last_price_date":
		inst.LastPriceDate = value
	}
}

func parseNumber(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
