package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/kite"
)

const recentOrdersShown = 5

var errOrderUsage = errors.New("invalid order command")

// parseOrderArgs turns the tokens after /buy or /sell into order parameters.
// Layout: SYMBOL QTY [MARKET|LIMIT|SL|SL-M] [PRICE] [CNC|MIS|NRML].
// The symbol may carry an exchange prefix like NSE:INFY; bare numbers after
// the quantity are taken as the limit price.
func parseOrderArgs(side string, args []string) (*kite.OrderParams, error) {
	if len(args) < 2 {
		return nil, errOrderUsage
	}

	params := &kite.OrderParams{
		Exchange:        "NSE",
		TransactionType: side,
		Product:         "CNC",
		OrderType:       "MARKET",
		Validity:        "DAY",
	}

	symbol := strings.ToUpper(args[0])
	if exch, rest, ok := strings.Cut(symbol, ":"); ok {
		params.Exchange = exch
		symbol = rest
	}
	if symbol == "" {
		return nil, errOrderUsage
	}
	params.Tradingsymbol = symbol

	qty, err := strconv.Atoi(args[1])
	if err != nil || qty <= 0 {
		return nil, fmt.Errorf("quantity must be a positive whole number, got %q", args[1])
	}
	params.Quantity = qty

	for _, arg := range args[2:] {
		token := strings.ToUpper(arg)
		switch token {
		case "MARKET", "LIMIT", "SL", "SL-M":
			params.OrderType = token
		case "CNC", "MIS", "NRML":
			params.Product = token
		default:
			price, err := strconv.ParseFloat(arg, 64)
			if err != nil || price <= 0 {
				return nil, fmt.Errorf("unrecognised order argument %q", arg)
			}
			params.Price = price
		}
	}

	if params.OrderType == "LIMIT" && params.Price == 0 {
		return nil, errors.New("LIMIT orders need a price, e.g. /buy INFY 10 LIMIT 1500")
	}
	if params.OrderType == "MARKET" {
		params.Price = 0
	}
	return params, nil
}

func (b *Bot) handlePlaceOrder(c tele.Context) error {
	side := "BUY"
	if strings.HasPrefix(c.Message().Text, "/sell") {
		side = "SELL"
	}

	args := strings.Fields(c.Message().Payload)
	params, err := parseOrderArgs(side, args)
	if errors.Is(err, errOrderUsage) {
		cmd := strings.ToLower(side)
		return c.Send(fmt.Sprintf(
			"Usage: /%s SYMBOL QTY [MARKET|LIMIT|SL|SL-M] [PRICE] [CNC|MIS|NRML]\n\n"+
				"Examples:\n/%s INFY 10\n/%s NSE:INFY 10 LIMIT 1500 CNC", cmd, cmd, cmd))
	}
	if err != nil {
		return c.Send("❌ " + err.Error())
	}

	ctx, cancel := handlerCtx()
	defer cancel()

	resp, err := kiteFrom(c).PlaceOrder(ctx, *params)
	if err != nil {
		return b.sendKiteError(c, err)
	}

	msg := fmt.Sprintf("✅ *%s order placed*\n\n%s x%d (%s, %s)\nOrder ID: `%s`",
		side, params.Tradingsymbol, params.Quantity, params.OrderType, params.Product, resp.OrderID)
	if params.Price > 0 {
		msg += fmt.Sprintf("\nPrice: %s", formatINR(params.Price))
	}
	return c.Send(msg, tele.ModeMarkdown)
}

func (b *Bot) handleListOrders(c tele.Context) error {
	ctx, cancel := handlerCtx()
	defer cancel()

	orders, err := kiteFrom(c).Orders(ctx)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(orders) == 0 {
		return c.Send("📭 No orders today.")
	}

	// Most recent first.
	if len(orders) > recentOrdersShown {
		orders = orders[len(orders)-recentOrdersShown:]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Recent Orders* (last %d)\n\n", len(orders)))
	for i := len(orders) - 1; i >= 0; i-- {
		o := orders[i]
		sb.WriteString(fmt.Sprintf("%s *%s* %s x%s (%s)\n",
			orderStatusEmoji(o.Status), o.Tradingsymbol, o.TransactionType, formatQty(o.Quantity), o.OrderType))
		sb.WriteString(fmt.Sprintf("   Status: %s | %s\n", o.Status, formatDate(o.OrderTimestamp)))
		sb.WriteString(fmt.Sprintf("   ID: `%s`\n\n", o.OrderID))
	}
	sb.WriteString("Use /orderstatus ORDER\\_ID for details.")

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func (b *Bot) handleOrderStatus(c tele.Context) error {
	orderID := strings.TrimSpace(c.Message().Payload)
	if orderID == "" {
		return c.Send("Usage: /orderstatus ORDER_ID")
	}

	ctx, cancel := handlerCtx()
	defer cancel()

	history, err := kiteFrom(c).OrderHistory(ctx, orderID)
	if err != nil {
		return b.sendKiteError(c, err)
	}
	if len(history) == 0 {
		return c.Send("❓ No order found with that ID.")
	}

	// The last history entry is the current state.
	o := history[len(history)-1]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s *Order %s*\n\n", orderStatusEmoji(o.Status), o.OrderID))
	sb.WriteString(fmt.Sprintf("%s %s x%s (%s, %s)\n", o.Tradingsymbol, o.TransactionType, formatQty(o.Quantity), o.OrderType, o.Product))
	sb.WriteString(fmt.Sprintf("Status: *%s*\n", o.Status))
	sb.WriteString(fmt.Sprintf("Filled: %s/%s\n", formatQty(o.FilledQuantity), formatQty(o.Quantity)))
	if o.AveragePrice > 0 {
		sb.WriteString(fmt.Sprintf("Avg price: %s\n", formatINR(o.AveragePrice)))
	}
	if o.StatusMessage != "" {
		sb.WriteString(fmt.Sprintf("Note: %s\n", o.StatusMessage))
	}
	sb.WriteString(fmt.Sprintf("Time: %s", formatDate(o.OrderTimestamp)))

	return c.Send(sb.String(), tele.ModeMarkdown)
}

func orderStatusEmoji(status string) string {
	switch status {
	case "COMPLETE":
		return "✅"
	case "REJECTED", "CANCELLED":
		return "❌"
	default:
		return "⏳"
	}
}
