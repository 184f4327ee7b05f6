// Package pipeline orchestrates a full research run: fan-out source
// fetches, extraction and merge, enrichment, scoring, ranking, metrics,
// and the narrative analysis. Every external boundary degrades to an
// empty or partial result; the core stages themselves cannot fail.
package pipeline

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadgen-cli/internal/config"
	"github.com/sells-group/leadgen-cli/internal/enrich"
	"github.com/sells-group/leadgen-cli/internal/intent"
	"github.com/sells-group/leadgen-cli/internal/merge"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/internal/rank"
	"github.com/sells-group/leadgen-cli/internal/source"
)

// Pipeline wires the source providers and the core stages together.
type Pipeline struct {
	cfg        *config.Config
	providers  []source.Provider
	enricher   enrich.Enricher
	summarizer *Summarizer
	merger     *merge.Merger
	scorer     *intent.Scorer
	ranker     *rank.Ranker
}

// New creates a Pipeline. enricher may be nil when no enrichment
// credentials are configured; summarizer must not be nil (use
// NewSummarizer with a nil client for template-only analysis).
func New(cfg *config.Config, providers []source.Provider, enricher enrich.Enricher, summarizer *Summarizer) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		providers:  providers,
		enricher:   enricher,
		summarizer: summarizer,
		merger:     merge.New(cfg.Gate),
		scorer:     intent.NewScorer(cfg.Scoring),
		ranker:     rank.New(cfg.Pipeline, cfg.Scoring),
	}
}

// Run executes one research run for a query.
func (p *Pipeline) Run(ctx context.Context, query string) (*model.Result, error) {
	log := zap.L().With(zap.String("query", query))
	log.Info("pipeline: starting run", zap.Int("providers", len(p.providers)))

	collections := p.fetchAll(ctx, query)
	companies := p.process(ctx, query, collections)
	metrics := Summarize(collections, companies, p.cfg.Pipeline.HighIntentThreshold, p.cfg.Scoring.ContactConfidenceThreshold)

	sources := make(map[model.SourceType]int, len(collections))
	for src, items := range collections {
		sources[src] = len(items)
	}

	analysis := p.summarizer.Summarize(ctx, query, sources, companies, metrics)

	log.Info("pipeline: run complete",
		zap.Int("companies", len(companies)),
		zap.Int("data_points", metrics.TotalDataPoints),
		zap.String("data_quality", string(metrics.DataQuality)),
	)

	result := &model.Result{
		Query:       query,
		Companies:   make([]model.Company, 0, len(companies)),
		Sources:     sources,
		Metrics:     metrics,
		Analysis:    analysis,
		GeneratedAt: time.Now().UTC(),
	}
	for _, c := range companies {
		result.Companies = append(result.Companies, *c)
	}
	return result, nil
}

// fetchAll issues every provider fetch concurrently and waits for all to
// settle. A failed or timed-out provider resolves to an empty collection;
// one dead source never blocks or fails the others. The returned map has
// an entry for every known source type.
func (p *Pipeline) fetchAll(ctx context.Context, query string) map[model.SourceType][]model.RawMention {
	collections := make(map[model.SourceType][]model.RawMention, len(model.AllSources()))
	for _, src := range model.AllSources() {
		collections[src] = nil
	}

	timeout := time.Duration(p.cfg.Pipeline.SourceTimeoutSecs) * time.Second

	var mu sync.Mutex
	var g errgroup.Group
	for _, prov := range p.providers {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			start := time.Now()
			mentions, err := prov.Fetch(fetchCtx, query)
			if err != nil {
				zap.L().Warn("pipeline: source unavailable",
					zap.String("source", string(prov.Type())),
					zap.Duration("elapsed", time.Since(start)),
					zap.Error(err),
				)
				return nil
			}

			mu.Lock()
			collections[prov.Type()] = append(collections[prov.Type()], mentions...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return collections
}

// process runs the synchronous core: merge, enrich, score, rank. Single
// threaded on purpose; every stage is a pure transformation over already
// collected data and parallelism would only threaten the deterministic
// ordering guarantees.
func (p *Pipeline) process(ctx context.Context, query string, collections map[model.SourceType][]model.RawMention) []*model.Company {
	companies := p.merger.Merge(query, collections)

	for _, c := range companies {
		if p.enricher != nil {
			p.enricher.Enrich(ctx, c)
		}
		p.scorer.Score(c)
	}

	return p.ranker.Rank(companies)
}
