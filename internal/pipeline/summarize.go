package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/anthropic"
)

const summarySystem = `You are a B2B market intelligence analyst. Given raw
multi-source research data for a query, produce a concise markdown report
covering: intent signals, market trends, key insights, and the most
promising leads with a suggested outreach angle for each.`

// Summarizer turns a pipeline result into a narrative analysis, falling
// back to the deterministic template whenever the model is unavailable.
type Summarizer struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewSummarizer returns a Summarizer. A nil client is valid and always
// produces the template fallback.
func NewSummarizer(client anthropic.Client, cfg config.AnthropicConfig) *Summarizer {
	return &Summarizer{client: client, cfg: cfg}
}

type summaryPayload struct {
	Query     string                   `json:"query"`
	Sources   map[model.SourceType]int `json:"sources"`
	Companies []*model.Company         `json:"companies"`
	Metrics   model.AggregateMetrics   `json:"metrics"`
}

// Summarize produces the analysis text. Never returns an error: any
// failure downgrades to the template.
func (s *Summarizer) Summarize(ctx context.Context, query string, sources map[model.SourceType]int, companies []*model.Company, metrics model.AggregateMetrics) string {
	if s.client == nil {
		return FallbackAnalysis(query, companies, metrics)
	}

	payload, err := json.Marshal(summaryPayload{
		Query:     query,
		Sources:   sources,
		Companies: companies,
		Metrics:   metrics,
	})
	if err != nil {
		zap.L().Warn("summary payload marshal failed, using template", zap.Error(err))
		return FallbackAnalysis(query, companies, metrics)
	}

	resp, err := s.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.cfg.Model,
		MaxTokens: int64(s.cfg.MaxTokens),
		System:    summarySystem,
		Messages: []anthropic.Message{{
			Role:    "user",
			Content: fmt.Sprintf("Research data for %q:\n\n%s", query, payload),
		}},
	})
	if err != nil {
		zap.L().Warn("summarizer unavailable, using template",
			zap.String("query", query),
			zap.Error(err),
		)
		return FallbackAnalysis(query, companies, metrics)
	}
	resp.Usage.LogCost(s.cfg.Model, "summarize")

	if resp.Text == "" {
		return FallbackAnalysis(query, companies, metrics)
	}
	return resp.Text
}
