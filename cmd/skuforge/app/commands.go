package app

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/skuforge/skuforge/internal/cmd/output"
	"github.com/skuforge/skuforge/internal/export"
	"github.com/skuforge/skuforge/internal/tabular"
	"github.com/skuforge/skuforge/pkg/errors"
)

// NewRunCommand creates the run command, the core reconciliation entry point.
func (a *App) NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reconcile catalog, inventory, and vendor mapping feeds",
		Long: `Run executes one full reconciliation pass: the vendor mapping, inventory,
and catalog feeds are loaded, catalog rows are resolved against inventory,
packaging variants are grouped and folded, and the reconciled table plus
ERP import files are written to the output directory.

Feeds may be CSV or XLSX; the format is detected from the file extension.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPipeline(cmd)
		},
	}

	cmd.Flags().StringVar(&a.config.CatalogFeed, "catalog", a.config.CatalogFeed, "storefront catalog export file")
	cmd.Flags().StringVar(&a.config.InventoryFeed, "inventory", a.config.InventoryFeed, "vendor inventory feed file")
	cmd.Flags().StringVar(&a.config.VendorMapFeed, "vendor-map", a.config.VendorMapFeed, "vendor SKU mapping feed file")
	cmd.Flags().StringVar(&a.config.Vendor, "vendor", a.config.Vendor, "vendor identifier to scope the run to")
	cmd.Flags().StringVar(&a.config.OutDir, "out-dir", a.config.OutDir, "directory output files are written to")
	cmd.Flags().Float64Var(&a.config.Markup, "markup", a.config.Markup, "price markup for inventory without a storefront price")
	cmd.Flags().IntVar(&a.config.ChunkSize, "chunk-size", a.config.ChunkSize, "max data rows per output file (0 disables splitting)")
	cmd.Flags().StringVar(&a.config.LocationRoot, "location-root", a.config.LocationRoot, "root of derived warehouse location paths")
	cmd.Flags().BoolVar(&a.config.ERPFiles, "erp", a.config.ERPFiles, "write ERP import files alongside the reconciled table")
	cmd.Flags().BoolVar(&a.config.Report, "report", a.config.Report, "write run_report.yaml to the output directory")

	return cmd
}

// runPipeline builds the pipeline from config, runs it, and renders the result.
func (a *App) runPipeline(cmd *cobra.Command) error {
	p, err := a.Pipeline()
	if err != nil {
		return err
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if a.config.Report {
		if err := a.writeReport(result); err != nil {
			return err
		}
	}

	formatter := output.NewFormatter(output.DetectFormat(a.config.Format))
	return formatter.Format(cmd.OutOrStdout(), result)
}

// writeReport persists the run summary next to the output files.
func (a *App) writeReport(result any) error {
	data, err := yaml.MarshalWithOptions(result, yaml.Indent(2))
	if err != nil {
		return err
	}

	path := filepath.Join(a.config.OutDir, "run_report.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIOError("write", path, err)
	}

	a.logger.Info().Str("path", path).Msg("Run report written")
	return nil
}

// NewInspectCommand creates the inspect command for examining feed files.
func (a *App) NewInspectCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "inspect <feed-file>",
		Short: "Show the header and leading rows of a feed file",
		Long: `Inspect reads a CSV or XLSX feed file and prints its column header and
the leading data rows, which is useful for checking a feed's shape before
running a reconciliation against it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := tabular.ReadFile(args[0])
			if err != nil {
				return err
			}

			a.logger.Info().
				Str("file", args[0]).
				Int("rows", table.Len()).
				Int("columns", len(table.Header)).
				Msg("Feed loaded")

			data := output.Data{Headers: table.Header}
			for i, row := range table.Rows {
				if rows > 0 && i >= rows {
					break
				}
				line := make([]string, len(table.Header))
				for j, col := range table.Header {
					line[j] = row.Get(col)
				}
				data.Rows = append(data.Rows, line)
			}

			formatter := output.NewFormatter(output.DetectFormat(a.config.Format))
			return formatter.Format(cmd.OutOrStdout(), data)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "number of data rows to show (0 for all)")

	return cmd
}

// NewBarcodesCommand creates the barcodes command, which joins an ERP
// product export against a previously written reconciled table and emits
// barcode update rows.
func (a *App) NewBarcodesCommand() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "barcodes <erp-export-file> <reconciled-file>",
		Short: "Generate barcode updates for an existing ERP product export",
		Long: `Barcodes joins an ERP product export (id, default_code) against a
reconciled output table and writes one update row per product whose
reconciled UPC is non-empty. Products missing from the reconciled table
are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			erpTable, err := tabular.ReadFile(args[0])
			if err != nil {
				return errors.WrapFeed("erp-export", args[0], err)
			}
			reconciled, err := tabular.ReadFile(args[1])
			if err != nil {
				return errors.WrapFeed("reconciled", args[1], err)
			}

			updates := export.BarcodeUpdatesFromRows(erpTable.Rows, reconciled.Rows)
			paths, err := export.WriteChunked(outPath, export.BarcodeHeader, updates, a.config.ChunkSize)
			if err != nil {
				return err
			}

			a.logger.Info().
				Int("products", erpTable.Len()).
				Int("updates", len(updates)).
				Strs("files", paths).
				Msg("Barcode updates written")
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "barcode_updates.csv", "output file path")

	return cmd
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "skuforge version %s\n", a.version)
			fmt.Fprintf(w, "commit: %s\n", a.commit)
			fmt.Fprintf(w, "built: %s\n", a.date)
			fmt.Fprintf(w, "built by: %s\n", a.builtBy)
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
