// Package ai wraps the Gemini API for portfolio analysis. Two model
// configurations share one client: a structured-JSON analysis model and a
// plain-text Q&A model.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Distinguishable upstream failure classes, matched from the SDK error text.
var (
	ErrNotConfigured = errors.New("gemini API is not configured")
	ErrInvalidAPIKey = errors.New("invalid Gemini API key")
	ErrRateLimited   = errors.New("Gemini API rate limit reached, try again later")
)

const analysisSystemPrompt = `You are a SEBI-compliant financial portfolio analysis assistant.
You do NOT give buy or sell recommendations.
You provide educational, risk-based, and diversification insights only.
You must avoid stock-specific price targets.
Your goal is to analyze portfolio structure, risk, diversification, and allocation.
Always respond in valid JSON format matching the specified schema.`

const qaSystemPrompt = `You are a SEBI-compliant financial portfolio analysis assistant.
You do NOT give buy or sell recommendations.
You provide educational, risk-based, and diversification insights only.
You must avoid stock-specific price targets.

FORMATTING RULES (CRITICAL):
- Use PLAIN TEXT only, no markdown syntax
- Use emojis for visual structure
- Use simple bullet points with the "•" character
- Use line breaks for sections
- Keep responses concise (under 300 words)
- Do NOT use asterisks (*), underscores (_), or backticks
- For emphasis, use CAPS or emojis instead of bold/italic

Always end with a brief disclaimer line.`

const defaultDisclaimer = "This is an educational analysis, not investment advice."

// Analysis is the structured response of the analysis model.
type Analysis struct {
	DiversificationScore   float64            `json:"diversification_score"`
	RiskProfile            string             `json:"risk_profile"`
	KeyInsights            []string           `json:"key_insights"`
	AllocationAnalysis     AllocationAnalysis `json:"allocation_analysis"`
	RiskAnalysis           RiskAnalysis       `json:"risk_analysis"`
	ImprovementSuggestions []string           `json:"improvement_suggestions"`
	Disclaimer             string             `json:"disclaimer"`
}

type AllocationAnalysis struct {
	Equity      string `json:"equity"`
	MutualFunds string `json:"mutual_funds"`
	Cash        string `json:"cash"`
}

type RiskAnalysis struct {
	VolatilityRisk    string `json:"volatility_risk"`
	SectorRisk        string `json:"sector_risk"`
	ConcentrationRisk string `json:"concentration_risk"`
}

// analysisSchema constrains the analysis model to the Analysis shape.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"diversification_score": {Type: genai.TypeNumber, Description: "Score from 1-10"},
		"risk_profile":          {Type: genai.TypeString, Enum: []string{"Conservative", "Moderate", "Aggressive"}},
		"key_insights":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"allocation_analysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"equity":       {Type: genai.TypeString},
				"mutual_funds": {Type: genai.TypeString},
				"cash":         {Type: genai.TypeString},
			},
		},
		"risk_analysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"volatility_risk":    {Type: genai.TypeString},
				"sector_risk":        {Type: genai.TypeString},
				"concentration_risk": {Type: genai.TypeString},
			},
		},
		"improvement_suggestions": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"disclaimer":              {Type: genai.TypeString},
	},
	Required: []string{"diversification_score", "risk_profile", "key_insights", "improvement_suggestions", "disclaimer"},
}

// Gemini is the generative-AI collaborator. A Gemini built without an API key
// is disabled: every call returns ErrNotConfigured.
type Gemini struct {
	client   *genai.Client
	analysis *genai.GenerativeModel
	qa       *genai.GenerativeModel
}

// NewGemini builds the client, or a disabled one when apiKey is empty.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return &Gemini{}, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	analysis := client.GenerativeModel(modelName)
	analysis.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(analysisSystemPrompt)}}
	analysis.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   analysisSchema,
	}

	qa := client.GenerativeModel(modelName)
	qa.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(qaSystemPrompt)}}

	return &Gemini{client: client, analysis: analysis, qa: qa}, nil
}

// Enabled reports whether an API key was configured.
func (g *Gemini) Enabled() bool {
	return g.client != nil
}

func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// AnalyzePortfolio asks the analysis model for a structured review of the
// aggregated portfolio data.
func (g *Gemini) AnalyzePortfolio(ctx context.Context, portfolioJSON string, detailed bool) (*Analysis, error) {
	if !g.Enabled() {
		return nil, ErrNotConfigured
	}

	depth := "brief"
	if detailed {
		depth = "detailed"
	}
	prompt := fmt.Sprintf(`Analyze this portfolio and provide insights:

%s

Requested depth: %s.

Provide a comprehensive analysis covering:
1. Diversification quality (score 1-10)
2. Risk profile assessment
3. Key insights about the portfolio structure
4. Allocation analysis (equity vs mutual funds)
5. Risk analysis (volatility, sector concentration, leverage)
6. Specific improvement suggestions

Important: Be educational and risk-focused. Do not provide buy/sell recommendations.`, portfolioJSON, depth)

	text, err := g.generate(ctx, g.analysis, prompt)
	if err != nil {
		return nil, err
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	if analysis.Disclaimer == "" {
		analysis.Disclaimer = defaultDisclaimer
	}
	return &analysis, nil
}

// AskQuestion answers a free-form question about the portfolio in plain text.
func (g *Gemini) AskQuestion(ctx context.Context, portfolioJSON, question string) (string, error) {
	if !g.Enabled() {
		return "", ErrNotConfigured
	}

	prompt := fmt.Sprintf(`Here is the user's portfolio data:

%s

User Question: %s

Answer the question based on the portfolio data above. Be specific and reference actual holdings/values from the data when relevant. Keep your response concise (under 500 words). Do not provide buy/sell recommendations or price targets.`, portfolioJSON, question)

	text, err := g.generate(ctx, g.qa, prompt)
	if err != nil {
		return "", err
	}

	if !strings.Contains(strings.ToLower(text), "disclaimer") && !strings.Contains(text, "not investment advice") {
		text += "\n\n⚠️ Disclaimer: This is educational analysis, not investment advice."
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

// classifyError maps SDK failures onto the package's sentinel errors so
// handlers can show the right message.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
	case strings.Contains(msg, "quota"), strings.Contains(msg, "rate"), strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	default:
		return fmt.Errorf("AI request failed: %w", err)
	}
}
