package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"github.com/akverma/kitegram/internal/ai"
)

// analysisTimeout is generous: a detailed Gemini run over a large portfolio
// can take a while.
const analysisTimeout = 90 * time.Second

const lowCreditWarning = 3

func (b *Bot) handleAnalyze(c tele.Context) error {
	if !b.analyzer.Enabled() {
		return c.Send("🤖 AI analysis is not configured on this bot.")
	}

	payload := strings.TrimSpace(c.Message().Payload)
	switch strings.ToLower(payload) {
	case "help":
		return c.Send("🤖 *AI Analysis*\n\n"+
			"/analyze — quick portfolio analysis\n"+
			"/analyze detailed — in-depth analysis\n"+
			"/analyze credits — check remaining credits\n"+
			"/analyze QUESTION — ask anything about your portfolio\n\n"+
			"Each analysis or question uses one AI credit.", tele.ModeMarkdown)
	case "credits", "balance":
		return b.sendCredits(c)
	}

	balance, err := b.store.Credits(context.Background(), senderID(c))
	if err != nil {
		return err
	}
	if balance.Credits <= 0 {
		return c.Send("😔 You have no AI credits left.\n\nCredits used so far: " +
			fmt.Sprintf("%d", balance.TotalUsed))
	}

	_ = c.Notify(tele.Typing)

	ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
	defer cancel()

	var msg string
	switch strings.ToLower(payload) {
	case "", "brief", "detailed", "full":
		detailed := strings.EqualFold(payload, "detailed") || strings.EqualFold(payload, "full")
		result, err := b.analyzer.Analyze(ctx, kiteFrom(c), detailed)
		if err != nil {
			return b.sendAIError(c, err)
		}
		if result.Empty {
			return c.Send("📭 Your portfolio is empty — nothing to analyze.")
		}
		msg = formatAnalysis(result)
	default:
		result, err := b.analyzer.Ask(ctx, kiteFrom(c), payload)
		if err != nil {
			return b.sendAIError(c, err)
		}
		if result.Empty {
			return c.Send("📭 Your portfolio is empty — nothing to analyze.")
		}
		msg = "🤖 " + result.Answer
	}

	// A credit is spent only on a successful response.
	consumed, err := b.store.ConsumeCredit(context.Background(), senderID(c))
	if err != nil {
		logrus.WithError(err).Warn("credit deduction failed")
	}
	if consumed {
		if after, err := b.store.Credits(context.Background(), senderID(c)); err == nil && after.Credits <= lowCreditWarning {
			msg += fmt.Sprintf("\n\n⚠️ %d AI credits remaining.", after.Credits)
		}
	}

	return c.Send(msg, tele.ModeMarkdown)
}

func (b *Bot) sendCredits(c tele.Context) error {
	balance, err := b.store.Credits(context.Background(), senderID(c))
	if err != nil {
		return err
	}
	return c.Send(fmt.Sprintf("🎟 *AI Credits*\n\nRemaining: %d\nUsed: %d",
		balance.Credits, balance.TotalUsed), tele.ModeMarkdown)
}

func (b *Bot) sendAIError(c tele.Context, err error) error {
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		return c.Send("🤖 AI analysis is not configured on this bot.")
	case errors.Is(err, ai.ErrInvalidAPIKey):
		return c.Send("🤖 The AI service rejected its API key. Please contact the bot admin.")
	case errors.Is(err, ai.ErrRateLimited):
		return c.Send("🤖 The AI service is busy right now. Please try again in a minute.")
	}
	logrus.WithError(err).Error("ai analysis failed")
	return c.Send("🤖 Analysis failed. Please try again later.")
}

func formatAnalysis(result *ai.AnalysisResult) string {
	a := result.Analysis
	s := result.Summary

	var sb strings.Builder
	sb.WriteString("🤖 *Portfolio Analysis*\n\n")
	sb.WriteString(fmt.Sprintf("Value: %s | P&L: %s (%s)\n",
		formatINR(s.TotalValue), formatINR(s.UnrealizedPnL), signedPct(s.UnrealizedPnLPct)))
	sb.WriteString(fmt.Sprintf("Equity %d%% / Mutual funds %d%%\n\n", s.EquityAllocationPct, s.MFAllocationPct))

	sb.WriteString(fmt.Sprintf("*Diversification:* %.1f/10\n", a.DiversificationScore))
	sb.WriteString(fmt.Sprintf("*Risk profile:* %s\n\n", a.RiskProfile))

	if len(a.KeyInsights) > 0 {
		sb.WriteString("*Key insights*\n")
		for _, line := range a.KeyInsights {
			sb.WriteString("• " + line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("*Allocation*\n")
	sb.WriteString("• Equity: " + a.AllocationAnalysis.Equity + "\n")
	sb.WriteString("• Mutual funds: " + a.AllocationAnalysis.MutualFunds + "\n")
	sb.WriteString("• Cash: " + a.AllocationAnalysis.Cash + "\n\n")

	sb.WriteString("*Risk*\n")
	sb.WriteString("• Volatility: " + a.RiskAnalysis.VolatilityRisk + "\n")
	sb.WriteString("• Sector: " + a.RiskAnalysis.SectorRisk + "\n")
	sb.WriteString("• Concentration: " + a.RiskAnalysis.ConcentrationRisk + "\n\n")

	if len(a.ImprovementSuggestions) > 0 {
		sb.WriteString("*Suggestions*\n")
		for _, line := range a.ImprovementSuggestions {
			sb.WriteString("• " + line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("_" + a.Disclaimer + "_")
	return sb.String()
}
