package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/config"
)

var (
	cfg         *config.Config
	weightsFile string
)

var rootCmd = &cobra.Command{
	Use:   "leadgen",
	Short: "Multi-source company intent scoring",
	Long:  "Fetches company mentions from forums, news, social and public filings, scores purchase intent, enriches contacts, and exports ranked leads.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if weightsFile != "" {
			if err := config.ApplyWeightsFile(&cfg.Scoring, weightsFile); err != nil {
				return fmt.Errorf("apply weights file: %w", err)
			}
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&weightsFile, "weights", "", "YAML file overriding scoring weights")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
