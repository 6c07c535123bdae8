package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caprae-capital/leadgen-cli/internal/store"
)

var (
	leadsMinScore int
	leadsIndustry string
	leadsSource   string
	leadsLimit    int
	leadsOffset   int

	leadsDeleteIDs []string
	leadsDeleteAll bool
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "List stored leads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "leads: init store")
		}
		defer st.Close()

		leads, err := st.ListLeads(ctx, store.LeadFilter{
			MinScore: leadsMinScore,
			Industry: leadsIndustry,
			Source:   leadsSource,
			Limit:    leadsLimit,
			Offset:   leadsOffset,
		})
		if err != nil {
			return eris.Wrap(err, "leads: list")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	},
}

var leadsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete leads by ID, or everything with --all",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if len(leadsDeleteIDs) == 0 && !leadsDeleteAll {
			return eris.New("leads delete: pass --ids or --all")
		}

		if err := cfg.Validate("store"); err != nil {
			return err
		}
		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "leads delete: init store")
		}
		defer st.Close()

		if leadsDeleteAll {
			if err := st.DeleteAllLeads(ctx); err != nil {
				return eris.Wrap(err, "leads delete: delete all")
			}
			zap.L().Info("leads delete: cleared store")
			return nil
		}

		deleted, err := st.DeleteLeads(ctx, leadsDeleteIDs)
		if err != nil {
			return eris.Wrap(err, "leads delete: delete")
		}
		zap.L().Info("leads delete: done",
			zap.Int("requested", len(leadsDeleteIDs)),
			zap.Int("deleted", deleted),
		)
		return nil
	},
}

func init() {
	leadsCmd.Flags().IntVar(&leadsMinScore, "min-score", 0, "only leads with score >= this")
	leadsCmd.Flags().StringVar(&leadsIndustry, "industry", "", "filter by industry substring")
	leadsCmd.Flags().StringVar(&leadsSource, "source", "", "filter by source substring")
	leadsCmd.Flags().IntVar(&leadsLimit, "limit", 0, "max leads to return (0 = all)")
	leadsCmd.Flags().IntVar(&leadsOffset, "offset", 0, "number of leads to skip")

	leadsDeleteCmd.Flags().StringSliceVar(&leadsDeleteIDs, "ids", nil, "lead IDs to delete")
	leadsDeleteCmd.Flags().BoolVar(&leadsDeleteAll, "all", false, "delete every stored lead")

	leadsCmd.AddCommand(leadsDeleteCmd)
	rootCmd.AddCommand(leadsCmd)
}
