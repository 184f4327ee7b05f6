package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	scanFormat     string
	scanXLSX       string
	scanNotion     bool
	scanSalesforce bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <query>",
	Short: "Run an intent scan for a search query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.TrimSpace(strings.Join(args, " "))
		if len(query) < 2 {
			return eris.New("query must be at least 2 characters")
		}

		p := initPipeline()
		result, err := p.Run(ctx, query)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		if err := runExports(ctx, result, scanXLSX, scanNotion, scanSalesforce); err != nil {
			return err
		}

		switch scanFormat {
		case "markdown":
			_, err = os.Stdout.WriteString(result.Analysis + "\n")
			return err
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		default:
			return eris.Errorf("unknown format %q (want json or markdown)", scanFormat)
		}
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "output format: json or markdown")
	scanCmd.Flags().StringVar(&scanXLSX, "xlsx", "", "write results to an XLSX workbook at this path")
	scanCmd.Flags().BoolVar(&scanNotion, "notion", false, "push results to the Notion lead database")
	scanCmd.Flags().BoolVar(&scanSalesforce, "salesforce", false, "push results to Salesforce as Lead records")
	rootCmd.AddCommand(scanCmd)
}
