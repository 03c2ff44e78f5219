package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"
)

func handlerCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func (b *Bot) handleHoldings(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	holdings, err := kiteFrom(c).Holdings(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(holdings) == 0 {
		return c.Send("📭 You have no equity holdings.")
	}

	var sb strings.Builder
	sb.WriteString("📊 *Your Holdings*\n\n")
	var totalInvested, totalCurrent, totalPnL float64
	for _, h := range holdings {
		invested := h.Quantity * h.AveragePrice
		current := h.Quantity * h.LastPrice
		totalInvested += invested
		totalCurrent += current
		totalPnL += h.PnL

		sb.WriteString(fmt.Sprintf("%s *%s* (%s)\n", pnlEmoji(h.PnL), h.Tradingsymbol, h.Exchange))
		sb.WriteString(fmt.Sprintf("   Qty: %s | Avg: %s | LTP: %s\n",
			formatQty(h.Quantity), formatINR(h.AveragePrice), formatINR(h.LastPrice)))
		sb.WriteString(fmt.Sprintf("   P&L: %s\n\n", formatINR(h.PnL)))
	}

	sb.WriteString("━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Invested: %s\n", formatINR(totalInvested)))
	sb.WriteString(fmt.Sprintf("Current: %s\n", formatINR(totalCurrent)))
	pct := 0.0
	if totalInvested > 0 {
		pct = totalPnL / totalInvested * 100
	}
	sb.WriteString(fmt.Sprintf("%s Total P&L: %s (%s)", pnlEmoji(totalPnL), formatINR(totalPnL), signedPct(pct)))

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handlePositions(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	positions, err := kiteFrom(c).Positions(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}

	open := positions.Net[:0:0]
	for _, p := range positions.Net {
		if p.Quantity != 0 {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return c.Send("📭 You have no open positions.")
	}

	var sb strings.Builder
	sb.WriteString("📈 *Open Positions*\n\n")
	var totalPnL float64
	for _, p := range open {
		totalPnL += p.PnL
		side := "LONG"
		if p.Quantity < 0 {
			side = "SHORT"
		}
		sb.WriteString(fmt.Sprintf("%s *%s* (%s, %s)\n", pnlEmoji(p.PnL), p.Tradingsymbol, p.Product, side))
		sb.WriteString(fmt.Sprintf("   Qty: %s | Avg: %s | LTP: %s\n",
			formatQty(p.Quantity), formatINR(p.AveragePrice), formatINR(p.LastPrice)))
		sb.WriteString(fmt.Sprintf("   P&L: %s\n\n", formatINR(p.PnL)))
	}

	sb.WriteString("━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("%s Total P&L: %s", pnlEmoji(totalPnL), formatINR(totalPnL)))

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleBalance(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	margins, err := kiteFrom(c).Margins(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}

	var sb strings.Builder
	sb.WriteString("💰 *Funds & Margins*\n")
	if eq := margins.Equity; eq != nil {
		sb.WriteString("\n*Equity*\n")
		sb.WriteString(fmt.Sprintf("   Available: %s\n", formatINR(eq.Net)))
		sb.WriteString(fmt.Sprintf("   Cash: %s\n", formatINR(eq.Available.Cash)))
		sb.WriteString(fmt.Sprintf("   Utilised: %s\n", formatINR(eq.Utilised.Debits)))
	}
	if cm := margins.Commodity; cm != nil && cm.Enabled {
		sb.WriteString("\n*Commodity*\n")
		sb.WriteString(fmt.Sprintf("   Available: %s\n", formatINR(cm.Net)))
		sb.WriteString(fmt.Sprintf("   Cash: %s\n", formatINR(cm.Available.Cash)))
		sb.WriteString(fmt.Sprintf("   Utilised: %s\n", formatINR(cm.Utilised.Debits)))
	}
	if margins.Equity == nil && margins.Commodity == nil {
		sb.WriteString("\nNo margin data available.")
	}

	return c.Send(sb.String(), tele.ModeMarkdown)
}
