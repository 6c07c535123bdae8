package main

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/caprae-capital/leadgen-cli/internal/model"
	"github.com/caprae-capital/leadgen-cli/internal/pipeline"
	"github.com/caprae-capital/leadgen-cli/internal/source"
)

var (
	scrapeSources []string
	scrapeQuery   string
	scrapeDryRun  bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Pull leads from configured sources into the store",
	Long: `Fetches raw leads from one or more lead sources, runs them through
the processing pipeline, and persists the result. Leads whose email
already exists in the store are dropped.

Examples:
  # Pull from every known source
  leadgen scrape

  # Pull from a single source
  leadgen scrape --sources apollo --query "saas founders"`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		tags := scrapeSources
		if len(tags) == 0 {
			tags = source.MockTags()
		}

		// Fetch sources concurrently. An unknown tag is an error up
		// front rather than a silent empty batch.
		adapters := make(map[string]source.Adapter, len(tags))
		for _, tag := range tags {
			a := source.Mock(tag)
			if a == nil {
				return eris.Errorf("scrape: unknown source %q", tag)
			}
			adapters[tag] = a
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(4)

		var mu sync.Mutex
		var raw []model.Lead
		for _, tag := range tags {
			tag := tag
			adapter := adapters[tag]
			g.Go(func() error {
				leads, err := adapter.Fetch(gCtx, scrapeQuery)
				if err != nil {
					return eris.Wrapf(err, "scrape: fetch %s", tag)
				}
				zap.L().Info("scrape: source fetched",
					zap.String("source", tag),
					zap.Int("leads", len(leads)),
				)
				mu.Lock()
				raw = append(raw, leads...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		p, err := buildPipeline()
		if err != nil {
			return err
		}

		if scrapeDryRun {
			result, err := p.ProcessBatch(ctx, raw, pipeline.BatchOptions{})
			if err != nil {
				return err
			}
			return printSummary(result)
		}

		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "scrape: init store")
		}
		defer st.Close()

		existing, err := st.ListEmails(ctx)
		if err != nil {
			return eris.Wrap(err, "scrape: list existing emails")
		}

		result, err := p.ProcessBatch(ctx, raw, pipeline.BatchOptions{ExistingEmails: existing})
		if err != nil {
			return err
		}
		if _, err := st.InsertLeads(ctx, result.Leads); err != nil {
			return eris.Wrap(err, "scrape: insert leads")
		}

		zap.L().Info("scrape: batch stored",
			zap.Int("stored", len(result.Leads)),
			zap.Int("duplicates_dropped", result.Dropped),
		)
		return printSummary(result)
	},
}

func printSummary(result *pipeline.BatchResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(pipeline.Summarize(result.Leads))
}

func init() {
	scrapeCmd.Flags().StringSliceVar(&scrapeSources, "sources", nil, "source tags to pull from (default: all)")
	scrapeCmd.Flags().StringVar(&scrapeQuery, "query", "", "search query passed to each source")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "process and print the summary without persisting")
	rootCmd.AddCommand(scrapeCmd)
}
