package bot

import (
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/mfcache"
)

const fundNameWidth = 40

func (b *Bot) handleMFHoldings(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	holdings, err := kiteFrom(c).MFHoldings(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(holdings) == 0 {
		return c.Send("📭 You have no mutual fund holdings.")
	}

	var sb strings.Builder
	sb.WriteString("🏦 *Mutual Fund Holdings*\n\n")
	var totalInvested, totalCurrent float64
	for _, h := range holdings {
		invested := h.Quantity * h.AveragePrice
		current := h.Quantity * h.LastPrice
		totalInvested += invested
		totalCurrent += current

		sb.WriteString(fmt.Sprintf("%s *%s*\n", pnlEmoji(h.PnL), truncate(h.Fund, fundNameWidth)))
		sb.WriteString(fmt.Sprintf("   Units: %s | NAV: %s\n", formatQty(h.Quantity), formatINR(h.LastPrice)))
		sb.WriteString(fmt.Sprintf("   Invested: %s | Current: %s\n", formatINR(invested), formatINR(current)))
		sb.WriteString(fmt.Sprintf("   P&L: %s\n\n", formatINR(h.PnL)))
	}

	totalPnL := totalCurrent - totalInvested
	sb.WriteString("━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Invested: %s\n", formatINR(totalInvested)))
	sb.WriteString(fmt.Sprintf("Current: %s\n", formatINR(totalCurrent)))
	sb.WriteString(fmt.Sprintf("%s Total P&L: %s", pnlEmoji(totalPnL), formatINR(totalPnL)))

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleMFOrders(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	orders, err := kiteFrom(c).MFOrders(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(orders) == 0 {
		return c.Send("📭 No mutual fund orders.")
	}

	if len(orders) > recentOrdersShown {
		orders = orders[:recentOrdersShown]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *MF Orders* (last %d)\n\n", len(orders)))
	for _, o := range orders {
		sb.WriteString(fmt.Sprintf("%s *%s*\n", orderStatusEmoji(o.Status), truncate(o.Fund, fundNameWidth)))
		sb.WriteString(fmt.Sprintf("   %s %s | Status: %s\n", o.TransactionType, formatINR(o.Amount), o.Status))
		sb.WriteString(fmt.Sprintf("   %s\n", formatDate(o.OrderTimestamp)))
		sb.WriteString(fmt.Sprintf("   ID: `%s`\n\n", o.OrderID))
	}
	sb.WriteString("Use /mforder ORDER\\_ID for details.")

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleMFOrder(c tele.Context) error {
	orderID := strings.TrimSpace(c.Message().Payload)
	if orderID == "" {
		return c.Send("Usage: /mforder ORDER_ID")
	}

	ctx, cancel := handlerCtx()
	defer cancel()

	o, err := kiteFrom(c).MFOrder(ctx, orderID)
	if err != nil {
		return b.sendKiteError(c, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *MF Order %s*\n\n", orderStatusEmoji(o.Status), o.OrderID))
	sb.WriteString(fmt.Sprintf("Fund: %s\n", o.Fund))
	sb.WriteString(fmt.Sprintf("Type: %s | Status: *%s*\n", o.TransactionType, o.Status))
	if o.Amount > 0 {
		sb.WriteString(fmt.Sprintf("Amount: %s\n", formatINR(o.Amount)))
	}
	if o.Quantity > 0 {
		sb.WriteString(fmt.Sprintf("Units: %s", formatQty(o.Quantity)))
		if o.AveragePrice > 0 {
			sb.WriteString(fmt.Sprintf(" @ %s", formatINR(o.AveragePrice)))
		}
		sb.WriteString("\n")
	}
	if o.Folio != "" {
		sb.WriteString(fmt.Sprintf("Folio: %s\n", o.Folio))
	}
	if o.StatusMessage != "" {
		sb.WriteString(fmt.Sprintf("Note: %s\n", o.StatusMessage))
	}
	sb.WriteString(fmt.Sprintf("Time: %s", formatDate(o.OrderTimestamp)))

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleMFSIPs(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	sips, err := kiteFrom(c).MFSIPs(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}

	active := sips[:0:0]
	for _, s := range sips {
		if strings.EqualFold(s.Status, "ACTIVE") {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return c.Send("📭 You have no active SIPs.")
	}

	var sb strings.Builder
	sb.WriteString("🔄 *Active SIPs*\n\n")
	var monthly float64
	for _, s := range active {
		sb.WriteString(fmt.Sprintf("• *%s*\n", truncate(s.Fund, fundNameWidth)))
		sb.WriteString(fmt.Sprintf("   %s %s | Next: %s\n", formatINR(s.InstalmentAmount), strings.ToLower(s.Frequency), formatDate(s.NextInstalment)))
		sb.WriteString(fmt.Sprintf("   Done: %d | Pending: %d\n\n", s.CompletedInstalments, s.PendingInstalments))
		if strings.EqualFold(s.Frequency, "monthly") {
			monthly += s.InstalmentAmount
		}
	}
	if monthly > 0 {
		sb.WriteString("━━━━━━━━━━━━━━\n")
		sb.WriteString(fmt.Sprintf("Monthly commitment: %s", formatINR(monthly)))
	}

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleMFInstruments(c tele.Context) error {
	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Send("Usage: /mfinstruments QUERY\n\nExample: /mfinstruments nifty index")
	}

	ctx, cancel := handlerCtx()
	defer cancel()

	matches, err := b.cache.Search(ctx, kiteFrom(c).MFInstruments, query, mfcache.DefaultSearchLimit)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(matches) == 0 {
		return c.Send(fmt.Sprintf("🔍 No mutual fund instruments match %q.", query))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔍 *MF Instruments* matching %q\n\n", query))
	for _, in := range matches {
		sb.WriteString(fmt.Sprintf("• *%s*\n", truncate(in.Name, fundNameWidth)))
		sb.WriteString(fmt.Sprintf("   `%s` | %s\n", in.Tradingsymbol, in.AMC))
		sb.WriteString(fmt.Sprintf("   NAV: %s | Min: %s", formatINR(in.LastPrice), formatINR(in.MinimumPurchaseAmount)))
		if !in.PurchaseAllowed {
			sb.WriteString(" | 🚫 purchase closed")
		}
		sb.WriteString("\n\n")
	}

	stats := b.cache.Stats()
	sb.WriteString(fmt.Sprintf("_%d instruments cached, refreshed %s_", stats.Count, stats.FetchedAt.Format("02 Jan 2006 15:04")))

	return c.Send(sb.String(), tele.ModeMarkdown)
}
