package main

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caprae-capital/leadgen-cli/internal/export"
	"github.com/caprae-capital/leadgen-cli/internal/store"
)

var (
	exportOutput   string
	exportFormat   string
	exportMinScore int
	exportIndustry string
	exportSource   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored leads to CSV or XLSX",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "export: init store")
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			MinScore: exportMinScore,
			Industry: exportIndustry,
			Source:   exportSource,
		})
		if err != nil {
			return eris.Wrap(err, "export: list leads")
		}

		format := exportFormat
		if format == "" {
			if strings.HasSuffix(strings.ToLower(exportOutput), ".xlsx") {
				format = "xlsx"
			} else {
				format = "csv"
			}
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			return eris.Wrap(err, "export: create output file")
		}
		defer f.Close() //nolint:errcheck

		switch format {
		case "csv":
			err = export.WriteCSV(f, leads)
		case "xlsx":
			err = export.WriteXLSX(f, leads)
		default:
			return eris.Errorf("export: unsupported format %q", format)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export: done",
			zap.Int("leads", len(leads)),
			zap.String("path", exportOutput),
			zap.String("format", format),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutput, "output", "leads.csv", "output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or xlsx (default from output extension)")
	exportCmd.Flags().IntVar(&exportMinScore, "min-score", 0, "only leads with score >= this")
	exportCmd.Flags().StringVar(&exportIndustry, "industry", "", "filter by industry substring")
	exportCmd.Flags().StringVar(&exportSource, "source", "", "filter by source substring")
	rootCmd.AddCommand(exportCmd)
}
