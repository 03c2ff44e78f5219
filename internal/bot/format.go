package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// formatINR renders a rupee amount with Indian digit grouping, e.g.
// 1234567.89 becomes "₹12,34,567.89".
func formatINR(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)

	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	sb.WriteString("₹")
	sb.WriteString(grouped)
	sb.WriteString(".")
	sb.WriteString(fracPart)
	return sb.String()
}

// groupIndian inserts commas under the Indian numbering convention: the last
// three digits form one group, then groups of two.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}

// formatQty trims a float quantity down to a plain number, dropping the
// fractional part when it is whole (mutual fund units are fractional, equity
// quantities are not).
func formatQty(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	return d.Round(3).String()
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02",
}

// formatDate normalises a Kite timestamp string into "02 Jan 2006 15:04".
// Unparseable values are passed through untouched.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if layout == "2006-01-02" {
				return t.Format("02 Jan 2006")
			}
			return t.Format("02 Jan 2006 15:04")
		}
	}
	return s
}

func pnlEmoji(v float64) string {
	if v >= 0 {
		return "🟢"
	}
	return "🔴"
}

func signedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// truncate shortens long display names (fund names routinely exceed Telegram
// line widths) with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
