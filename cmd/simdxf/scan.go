package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/catalog"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

var scanFlags struct {
	recursive bool
	format    string
}

var scanCmd = &cobra.Command{
	Use:   "scan [dir]...",
	Short: "Record files in the catalog",
	Long: `Read every SIMULTAN file below the given directories and record its
version, reference statistics and read errors in the catalog. Unchanged
files are skipped and records of removed files are deleted.

Examples:
  # Scan the current directory
  simdxf scan

  # Scan two project directories without sub directories
  simdxf scan --recursive=false projects/a projects/b`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVarP(&scanFlags.recursive, "recursive", "r", true, "scan sub directories")
	scanCmd.Flags().StringVar(&scanFlags.format, "format", "text", "output format: text, json, csv")
}

type scanRow struct {
	Root string `json:"root"`
	catalog.ScanResult
}

type scanSummary []scanRow

func (s scanSummary) Header() []string {
	return []string{"ROOT", "INDEXED", "SKIPPED", "FAILED", "REMOVED", "DURATION"}
}

func (s scanSummary) Rows() [][]string {
	rows := make([][]string, len(s))
	for i, r := range s {
		rows[i] = []string{
			r.Root,
			strconv.Itoa(r.Indexed),
			strconv.Itoa(r.Skipped),
			strconv.Itoa(r.Failed),
			strconv.FormatInt(r.Removed, 10),
			r.Duration.Round(time.Millisecond).String(),
		}
	}
	return rows
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(scanFlags.format)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
	ctx, span := a.tracer.Start(tracing.ExtractFromEnv(ctx), "simdxf.scan")
	defer span.End()

	scanner := a.newScanner(store)
	summary := make(scanSummary, 0, len(args))
	for _, root := range args {
		res, err := scanner.Scan(ctx, root, scanFlags.recursive)
		if err != nil {
			tracing.SetStatus(span, err)
			return cli.NewCommandError("scan", err)
		}
		a.metrics.RecordScan(res.Indexed, res.Failed, res.Duration)
		summary = append(summary, scanRow{Root: root, ScanResult: res})
	}

	if n, err := store.Count(ctx, &catalog.Query{}); err == nil {
		a.metrics.UpdateCatalogSize(n)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), summary)
}
