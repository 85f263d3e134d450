// Package ai wraps the generative backend behind operations that never fail:
// every backend error degrades to a deterministic fallback.
package ai

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/analytics"
	"github.com/NisargaCode/AI-EXPENSE-TRACKER/internal/domain"
)

// Confidence levels for AI-produced suggestions.
const (
	aiConfidence           = 0.9
	invalidLabelConfidence = 0.5
)

// Canned replies for the chat endpoint.
const (
	chatUnavailableMessage = "I'm sorry, AI features are currently unavailable. Please check your API configuration."
	chatFailureMessage     = "I'm sorry, I couldn't process your question right now. Please try again later."
)

// nonNumeric matches everything except digits and periods; used to salvage a
// number out of a chatty prediction response.
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// Service exposes the AI-backed operations. A nil generator means the
// backend is not configured; every operation then takes its fallback path.
type Service struct {
	gen     TextGenerator
	timeout time.Duration
	log     zerolog.Logger
}

// NewService creates the AI service. gen may be nil when no API key is
// configured. timeout bounds each backend call; zero means no deadline.
func NewService(gen TextGenerator, timeout time.Duration, log zerolog.Logger) *Service {
	return &Service{gen: gen, timeout: timeout, log: log}
}

// Available reports whether the generative backend is configured.
func (s *Service) Available() bool {
	return s.gen != nil
}

func (s *Service) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Categorize maps an expense description to a category suggestion. It never
// fails: backend errors and an unconfigured backend both degrade to the
// keyword fallback, and an off-list label becomes Others at reduced
// confidence rather than an error.
func (s *Service) Categorize(ctx context.Context, description string, amount float64) domain.CategorySuggestion {
	if !s.Available() {
		s.log.Warn().Str("description", description).Msg("AI not available, using fallback categorization")
		return FallbackCategorize(description)
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, categorizePrompt(description, amount))
	if err != nil {
		s.log.Error().Err(err).Str("description", description).Msg("AI categorization failed")
		return FallbackCategorize(description)
	}

	label := strings.TrimSpace(text)
	if cat, ok := domain.ParseCategory(label); ok && domain.IsSuggestable(cat) {
		return domain.CategorySuggestion{Category: cat, Confidence: aiConfidence}
	}

	s.log.Warn().Str("label", label).Msg("invalid AI category, falling back to Others")
	return domain.CategorySuggestion{Category: domain.CategoryOthers, Confidence: invalidLabelConfidence}
}

// insightsEnvelope is the JSON shape requested from the model.
type insightsEnvelope struct {
	Insights []domain.Insight `json:"insights"`
}

// GenerateInsights produces spending insights from the aggregates and the
// user's per-category budgets. On any backend failure or an unparsable
// response it returns the rule-based insights instead.
func (s *Service) GenerateInsights(ctx context.Context, agg analytics.Aggregates, budgets map[domain.Category]float64) []domain.Insight {
	fallback := func() []domain.Insight { return analytics.RuleInsights(agg) }

	if !s.Available() {
		return fallback()
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, insightsPrompt(agg, budgets))
	if err != nil {
		s.log.Error().Err(err).Msg("AI insights generation failed")
		return fallback()
	}

	var envelope insightsEnvelope
	if err := json.Unmarshal([]byte(cleanModelJSON(text)), &envelope); err != nil {
		s.log.Warn().Err(err).Msg("unparsable AI insights response")
		return fallback()
	}
	if len(envelope.Insights) == 0 {
		return fallback()
	}

	return envelope.Insights
}

// ChatContext is the per-user context passed along with a chat query.
type ChatContext struct {
	UserID            string `json:"userId"`
	TotalTransactions int    `json:"totalTransactions"`
}

// ChatReply is the answer to a natural-language expense question.
type ChatReply struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat answers a free-form question about the user's spending. The
// transaction list is summarized into aggregates plus the ten most recent
// records before prompting. Failures yield a canned apology, never an error.
func (s *Service) Chat(ctx context.Context, query string, txs []domain.Transaction, userCtx ChatContext) ChatReply {
	reply := ChatReply{Query: query, Timestamp: time.Now()}

	if !s.Available() {
		reply.Response = chatUnavailableMessage
		return reply
	}

	agg := analytics.Compute(txs)
	recent := txs
	if len(recent) > 10 {
		recent = recent[:10]
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, chatPrompt(query, agg, recent, userCtx))
	if err != nil {
		s.log.Error().Err(err).Str("query", query).Msg("AI chat failed")
		reply.Response = chatFailureMessage
		return reply
	}

	reply.Response = strings.TrimSpace(text)
	return reply
}

// PredictNextPeriod predicts next-period spending from the monthly trend.
// Without a configured backend, or when the backend call fails, it returns
// the plain trend average. A response that parses to no number at all
// yields 0 rather than an error.
func (s *Service) PredictNextPeriod(ctx context.Context, trend map[string]float64) float64 {
	if !s.Available() {
		return analytics.TrendAverage(trend)
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	text, err := s.gen.GenerateText(ctx, predictPrompt(trend))
	if err != nil {
		s.log.Error().Err(err).Msg("AI prediction failed")
		return analytics.TrendAverage(trend)
	}

	cleaned := nonNumeric.ReplaceAllString(text, "")
	predicted, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		s.log.Warn().Str("response", text).Msg("non-numeric AI prediction")
		return 0
	}
	return predicted
}
