package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caprae-capital/leadgen-cli/internal/export"
	"github.com/caprae-capital/leadgen-cli/internal/pipeline"
	"github.com/caprae-capital/leadgen-cli/internal/source"
)

var (
	processCSV     string
	processOutput  string
	processFormat  string
	processCharset string
	processSource  string
	processSave    bool
	processSkipBad bool
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a CSV of raw leads into scored, enriched leads",
	Long: `Reads raw leads from a CSV file, deduplicates them by email,
enriches missing contact fields, scores each lead and selects an
outreach template, then writes the processed batch back out.

Examples:
  # Process a CSV and write the scored output next to it
  leadgen process --csv leads.csv --output scored.csv

  # Write an Excel workbook instead
  leadgen process --csv leads.csv --output scored.xlsx --format xlsx

  # Also persist the batch into the configured store
  leadgen process --csv leads.csv --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		raw, err := source.ReadLeadsCSV(processCSV, source.CSVOptions{
			Charset: processCharset,
			Source:  processSource,
		})
		if err != nil {
			return eris.Wrap(err, "process: read csv")
		}
		zap.L().Info("process: parsed csv",
			zap.Int("leads", len(raw)),
			zap.String("path", processCSV),
		)

		p, err := buildPipeline()
		if err != nil {
			return err
		}

		opts := pipeline.BatchOptions{SkipRenderFailures: processSkipBad}

		if processSave {
			if err := cfg.Validate("store"); err != nil {
				return err
			}
			st, err := initStore(ctx)
			if err != nil {
				return eris.Wrap(err, "process: init store")
			}
			defer st.Close()

			existing, err := st.ListEmails(ctx)
			if err != nil {
				return eris.Wrap(err, "process: list existing emails")
			}
			opts.ExistingEmails = existing

			result, err := p.ProcessBatch(ctx, raw, opts)
			if err != nil {
				return err
			}
			if _, err := st.InsertLeads(ctx, result.Leads); err != nil {
				return eris.Wrap(err, "process: insert leads")
			}
			return writeBatch(result)
		}

		result, err := p.ProcessBatch(ctx, raw, opts)
		if err != nil {
			return err
		}
		return writeBatch(result)
	},
}

// writeBatch writes processed leads to the output path in the requested
// format and prints the batch summary as JSON on stdout.
func writeBatch(result *pipeline.BatchResult) error {
	format := processFormat
	if format == "" {
		if strings.HasSuffix(strings.ToLower(processOutput), ".xlsx") {
			format = "xlsx"
		} else {
			format = "csv"
		}
	}

	f, err := os.Create(processOutput)
	if err != nil {
		return eris.Wrap(err, "process: create output file")
	}
	defer f.Close() //nolint:errcheck

	switch format {
	case "csv":
		err = export.WriteCSV(f, result.Leads)
	case "xlsx":
		err = export.WriteXLSX(f, result.Leads)
	default:
		return eris.Errorf("process: unsupported format %q", format)
	}
	if err != nil {
		return err
	}

	summary := pipeline.Summarize(result.Leads)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func init() {
	processCmd.Flags().StringVar(&processCSV, "csv", "", "path to raw leads CSV (required)")
	processCmd.Flags().StringVar(&processOutput, "output", "processed-leads.csv", "output file path")
	processCmd.Flags().StringVar(&processFormat, "format", "", "output format: csv or xlsx (default from output extension)")
	processCmd.Flags().StringVar(&processCharset, "charset", "", "input charset (default utf-8)")
	processCmd.Flags().StringVar(&processSource, "source", "", "source tag for rows missing one (default \"CSV Upload\")")
	processCmd.Flags().BoolVar(&processSave, "save", false, "also persist the processed batch into the store")
	processCmd.Flags().BoolVar(&processSkipBad, "skip-bad", false, "drop leads whose outreach template cannot render instead of failing")
	_ = processCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(processCmd)
}
