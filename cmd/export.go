package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/export"
	"github.com/sells-group/leadgen-cli/internal/model"
	"github.com/sells-group/leadgen-cli/pkg/notion"
)

var (
	exportXLSX       string
	exportNotion     bool
	exportSalesforce bool
)

var exportCmd = &cobra.Command{
	Use:   "export <result.json>",
	Short: "Export a saved scan result to XLSX, Notion, or Salesforce",
	Long: `Export reads a result produced by "leadgen scan" (its JSON output saved
to a file) and pushes it to the configured destinations without re-running
the pipeline.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportXLSX == "" && !exportNotion && !exportSalesforce {
			return eris.New("pick at least one destination: --xlsx, --notion, or --salesforce")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "read result file")
		}
		var result model.Result
		if err := json.Unmarshal(data, &result); err != nil {
			return eris.Wrap(err, "parse result file")
		}

		return runExports(cmd.Context(), &result, exportXLSX, exportNotion, exportSalesforce)
	},
}

// runExports pushes a result to each selected destination. Shared by the
// scan and export commands.
func runExports(ctx context.Context, result *model.Result, xlsxPath string, toNotion, toSalesforce bool) error {
	if xlsxPath != "" {
		if err := export.WriteWorkbook(xlsxPath, result); err != nil {
			return err
		}
		zap.L().Info("workbook written", zap.String("path", xlsxPath))
	}

	if toNotion {
		if cfg.Notion.Token == "" || cfg.Notion.LeadDB == "" {
			return eris.New("notion export requires LEADGEN_NOTION_TOKEN and LEADGEN_NOTION_LEAD_DB")
		}
		nc := notion.NewClient(cfg.Notion.Token)
		n, err := export.NewNotionExporter(nc, cfg.Notion.LeadDB).Push(ctx, result)
		if err != nil {
			return err
		}
		zap.L().Info("notion export complete", zap.Int("pages", n))
	}

	if toSalesforce {
		sfClient, err := initSalesforce()
		if err != nil {
			return err
		}
		n, err := export.NewSalesforceExporter(sfClient).Push(ctx, result)
		if err != nil {
			return err
		}
		zap.L().Info("salesforce export complete", zap.Int("leads", n))
	}

	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "write results to an XLSX workbook at this path")
	exportCmd.Flags().BoolVar(&exportNotion, "notion", false, "push results to the Notion lead database")
	exportCmd.Flags().BoolVar(&exportSalesforce, "salesforce", false, "push results to Salesforce as Lead records")
	rootCmd.AddCommand(exportCmd)
}
