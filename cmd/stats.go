package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/caprae-capital/leadgen-cli/internal/pipeline"
	"github.com/caprae-capital/leadgen-cli/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregate statistics over stored leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "stats: init store")
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{})
		if err != nil {
			return eris.Wrap(err, "stats: list leads")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(pipeline.Summarize(leads))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
