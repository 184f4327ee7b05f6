package main

import (
	"context"
	"os"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/enrich"
	"github.com/sells-group/leadgen-cli/internal/pipeline"
	"github.com/sells-group/leadgen-cli/internal/source"
	"github.com/sells-group/leadgen-cli/internal/store"
	anthropicpkg "github.com/sells-group/leadgen-cli/pkg/anthropic"
	"github.com/sells-group/leadgen-cli/pkg/clearbit"
	"github.com/sells-group/leadgen-cli/pkg/hunter"
	sfpkg "github.com/sells-group/leadgen-cli/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline assembles the research pipeline from config. Enrichment and
// the Claude summary degrade to no-ops when their keys are absent.
func initPipeline() *pipeline.Pipeline {
	providers := source.BuildProviders(cfg.Sources)

	var enricher enrich.Enricher
	if cfg.Clearbit.Key != "" || cfg.Hunter.Key != "" {
		var cb clearbit.Client
		var h hunter.Client
		if cfg.Clearbit.Key != "" {
			cb = clearbit.NewClient(cfg.Clearbit.Key, clearbit.WithBaseURL(cfg.Clearbit.BaseURL))
		}
		if cfg.Hunter.Key != "" {
			h = hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))
		}
		enricher = enrich.NewService(cb, h, cfg.Hunter)
	} else {
		zap.L().Info("no enrichment keys configured, skipping enrichment")
	}

	var anthropicClient anthropicpkg.Client
	if cfg.Anthropic.Key != "" {
		anthropicClient = anthropicpkg.NewClient(cfg.Anthropic.Key)
	} else {
		zap.L().Info("no anthropic key configured, using template analysis")
	}
	summarizer := pipeline.NewSummarizer(anthropicClient, cfg.Anthropic)

	return pipeline.New(cfg, providers, enricher, summarizer)
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (LEADGEN_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}
