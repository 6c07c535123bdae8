package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/rotisserie/eris"

	"github.com/caprae-capital/leadgen-cli/internal/enrich"
	"github.com/caprae-capital/leadgen-cli/internal/outreach"
	"github.com/caprae-capital/leadgen-cli/internal/pipeline"
	"github.com/caprae-capital/leadgen-cli/internal/store"
	"github.com/caprae-capital/leadgen-cli/pkg/peopledata"
)

// initStore opens the configured store backend and runs migrations.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leads.db"
		}
		st, err = store.NewSQLite(dsn)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// buildPipeline assembles the batch pipeline from config: the real
// lookup client when a people-data key is present, the synthetic
// fallback otherwise, and the outreach renderer with any template
// override file.
func buildPipeline() (*pipeline.Pipeline, error) {
	opts := []enrich.Option{
		enrich.WithLookupTimeout(time.Duration(cfg.Enrich.LookupTimeoutSecs) * time.Second),
	}
	if cfg.Enrich.RatePerSecond > 0 {
		opts = append(opts, enrich.WithRateLimit(cfg.Enrich.RatePerSecond))
	}
	if cfg.Enrich.DelayMillis > 0 {
		opts = append(opts, enrich.WithDelay(time.Duration(cfg.Enrich.DelayMillis)*time.Millisecond))
	}
	if cfg.Enrich.Seed != 0 {
		opts = append(opts, enrich.WithSynthesizer(
			enrich.NewSynthesizer(rand.New(rand.NewSource(cfg.Enrich.Seed)))))
	}
	if cfg.Enrich.PeopleDataKey != "" {
		var clientOpts []peopledata.Option
		if cfg.Enrich.PeopleDataBaseURL != "" {
			clientOpts = append(clientOpts, peopledata.WithBaseURL(cfg.Enrich.PeopleDataBaseURL))
		}
		client := peopledata.NewClient(cfg.Enrich.PeopleDataKey, clientOpts...)
		opts = append(opts, enrich.WithLookup(enrich.PeopleDataLookup(client)))
	}
	enricher := enrich.New(opts...)

	var (
		renderer *outreach.Renderer
		err      error
	)
	if cfg.Outreach.TemplateFile != "" {
		renderer, err = outreach.NewRendererFromFile(cfg.Outreach.TemplateFile)
	} else {
		renderer, err = outreach.NewRenderer()
	}
	if err != nil {
		return nil, eris.Wrap(err, "build renderer")
	}

	return pipeline.New(enricher, renderer), nil
}
