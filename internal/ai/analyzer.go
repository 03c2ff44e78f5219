package ai

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/akverma/kitegram/internal/kite"
	"github.com/akverma/kitegram/internal/portfolio"
)

// PortfolioSource is the slice of the brokerage client the analyzer needs.
// *kite.Client satisfies it.
type PortfolioSource interface {
	Holdings(ctx context.Context) ([]kite.Holding, error)
	Positions(ctx context.Context) (*kite.Positions, error)
	MFHoldings(ctx context.Context) ([]kite.MFHolding, error)
}

// AnalysisResult is the outcome of a structured analysis run.
type AnalysisResult struct {
	Empty    bool
	Summary  portfolio.Summary
	Analysis *Analysis
}

// AnswerResult is the outcome of a free-form question.
type AnswerResult struct {
	Empty   bool
	Summary portfolio.Summary
	Answer  string
}

// Analyzer aggregates the user's portfolio and runs it through Gemini.
type Analyzer struct {
	gemini *Gemini
}

func NewAnalyzer(gemini *Gemini) *Analyzer {
	return &Analyzer{gemini: gemini}
}

// Enabled reports whether the underlying Gemini client is configured.
func (a *Analyzer) Enabled() bool {
	return a.gemini.Enabled()
}

// snapshot fetches holdings, positions and MF holdings, treating each failed
// fetch as an empty list so a partial portfolio still gets analyzed.
func (a *Analyzer) snapshot(ctx context.Context, src PortfolioSource) *portfolio.Snapshot {
	holdings, err := src.Holdings(ctx)
	if err != nil {
		logrus.WithError(err).Warn("holdings unavailable for analysis")
		holdings = nil
	}
	positions, err := src.Positions(ctx)
	if err != nil {
		logrus.WithError(err).Warn("positions unavailable for analysis")
		positions = nil
	}
	mfHoldings, err := src.MFHoldings(ctx)
	if err != nil {
		logrus.WithError(err).Warn("mf holdings unavailable for analysis")
		mfHoldings = nil
	}
	return portfolio.Aggregate(holdings, positions, mfHoldings)
}

// Analyze runs the structured portfolio analysis. An empty portfolio
// short-circuits before any Gemini call.
func (a *Analyzer) Analyze(ctx context.Context, src PortfolioSource, detailed bool) (*AnalysisResult, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}

	snap := a.snapshot(ctx, src)
	if snap.Empty() {
		return &AnalysisResult{Empty: true}, nil
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	analysis, err := a.gemini.AnalyzePortfolio(ctx, string(data), detailed)
	if err != nil {
		return nil, err
	}
	return &AnalysisResult{Summary: snap.Summary, Analysis: analysis}, nil
}

// Ask answers a free-form question about the portfolio.
func (a *Analyzer) Ask(ctx context.Context, src PortfolioSource, question string) (*AnswerResult, error) {
	if !a.Enabled() {
		return nil, ErrNotConfigured
	}

	snap := a.snapshot(ctx, src)
	if snap.Empty() {
		return &AnswerResult{Empty: true}, nil
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	answer, err := a.gemini.AskQuestion(ctx, string(data), question)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{Summary: snap.Summary, Answer: answer}, nil
}
