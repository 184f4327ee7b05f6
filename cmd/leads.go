package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var leadsCmd = &cobra.Command{
	Use:   "leads",
	Short: "Inspect and manage captured leads",
}

var leadsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recently active leads",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		leads, err := st.ListLeads(ctx, limit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(leads)
	},
}

var leadsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate lead statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		stats, err := st.Stats(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

var leadsUnsubEmail string

var leadsUnsubCmd = &cobra.Command{
	Use:   "unsubscribe",
	Short: "Unsubscribe every lead for an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if leadsUnsubEmail == "" {
			return eris.New("--email is required")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Unsubscribe(ctx, leadsUnsubEmail); err != nil {
			return err
		}
		zap.L().Info("lead unsubscribed", zap.String("email", leadsUnsubEmail))
		return nil
	},
}

func init() {
	leadsListCmd.Flags().Int("limit", 50, "maximum leads to list")
	leadsUnsubCmd.Flags().StringVar(&leadsUnsubEmail, "email", "", "email address to unsubscribe (required)")
	leadsCmd.AddCommand(leadsListCmd, leadsStatsCmd, leadsUnsubCmd)
	rootCmd.AddCommand(leadsCmd)
}
