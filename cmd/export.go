package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"hrimport/output"
	"hrimport/storage"
)

var (
	exportFormat string
	exportMode   string
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored employees from SQLite to CSV/Excel",
	Long: `Export stored employees from SQLite.

Modes:
- roster: export every stored employee with all normalized fields
- summary: export per-department headcount (license holders, health coverage, children, hire date range)

Output format can be selected explicitly via --format or inferred from --output extension.`,
	Example: `
  # Export the roster to CSV
  hrimport export --mode roster --db ./hrimport.db --output ./roster.csv

  # Export the roster to Excel
  hrimport export --mode roster --db ./hrimport.db --output ./roster.xlsx

  # Export the department headcount
  hrimport export --mode summary --db ./hrimport.db --output ./headcount.csv

  # Force Excel format independent of extension
  hrimport export --mode summary --format excel --db ./hrimport.db --output ./headcount.out
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if strings.TrimSpace(format) == "" {
			format = detectExportFormat(exportOutput)
		}

		store, err := storage.OpenSQLite(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.ListEmployees(cmd.Context())
		if err != nil {
			return err
		}

		mode := strings.TrimSpace(strings.ToLower(exportMode))
		switch mode {
		case "", "roster":
			writer, writerErr := output.WriterForFormat(format)
			if writerErr != nil {
				return writerErr
			}
			if err := writer.Write(exportOutput, records); err != nil {
				return err
			}
			fmt.Printf("Export completed. Employees: %d, Mode: roster, Format: %s, File: %s\n", len(records), format, exportOutput)
		case "summary":
			summaries := output.BuildDepartmentSummaries(records)
			if err := output.WriteDepartmentSummaries(exportOutput, format, summaries); err != nil {
				return err
			}
			fmt.Printf("Export completed. Departments: %d, Mode: summary, Format: %s, File: %s\n", len(summaries), format, exportOutput)
		default:
			return fmt.Errorf("unsupported export mode: %s (supported: roster, summary)", exportMode)
		}
		return nil
	},
}

func detectExportFormat(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return "csv"
	case "xlsx", "xlsm", "xls":
		return "excel"
	default:
		return "csv"
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportMode, "mode", "roster", "Export mode: roster|summary")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: csv|excel (optional, inferred from output extension)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "./hrimport.db", "Path to local SQLite database")

	_ = exportCmd.MarkFlagRequired("output")
}
