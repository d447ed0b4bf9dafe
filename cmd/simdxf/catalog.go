package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/catalog"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

var catalogFlags struct {
	kind       string
	prefix     string
	outdated   bool
	failed     bool
	unresolved bool
	limit      int
	format     string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query and maintain the file catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalogued files",
	Long: `List the files recorded by scan and watch.

Examples:
  # Files convert would upgrade
  simdxf catalog list --outdated

  # Files that could not be read, as CSV
  simdxf catalog list --failed --format csv`,
	Args: cobra.NoArgs,
	RunE: runCatalogList,
}

var catalogPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy now",
	Args:  cobra.NoArgs,
	RunE:  runCatalogPrune,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd, catalogPruneCmd)

	f := catalogListCmd.Flags()
	f.StringVar(&catalogFlags.kind, "kind", "", "only files of this kind")
	f.StringVar(&catalogFlags.prefix, "prefix", "", "only files below this directory")
	f.BoolVar(&catalogFlags.outdated, "outdated", false, "only files older than the current format version")
	f.BoolVar(&catalogFlags.failed, "failed", false, "only files that could not be read")
	f.BoolVar(&catalogFlags.unresolved, "unresolved", false, "only files with unresolved references")
	f.IntVar(&catalogFlags.limit, "limit", 100, "maximum number of records, 0 for all")
	f.StringVar(&catalogFlags.format, "format", "text", "output format: text, json, csv")
}

type recordTable []*catalog.Record

func (t recordTable) Header() []string {
	return []string{"PATH", "KIND", "VERSION", "ENTITIES", "UNRESOLVED", "WARNINGS", "SCANNED", "ERROR"}
}

func (t recordTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, r := range t {
		rows[i] = []string{
			r.Path,
			r.Kind,
			strconv.Itoa(r.FileVersion),
			strconv.Itoa(r.Entities),
			strconv.Itoa(r.Unresolved),
			strconv.Itoa(r.Warnings),
			r.ScannedAt.Local().Format(time.DateTime),
			r.Error,
		}
	}
	return rows
}

func catalogQuery() (*catalog.Query, error) {
	q := &catalog.Query{
		OnlyFailed:     catalogFlags.failed,
		OnlyUnresolved: catalogFlags.unresolved,
		Limit:          catalogFlags.limit,
	}
	if catalogFlags.kind != "" {
		k, err := files.ParseKind(catalogFlags.kind)
		if err != nil {
			return nil, cli.NewConfigError("kind", err.Error())
		}
		q.Kind = k.String()
	}
	if catalogFlags.prefix != "" {
		abs, err := filepath.Abs(catalogFlags.prefix)
		if err != nil {
			return nil, err
		}
		q.PathPrefix = abs + string(filepath.Separator)
	}
	if catalogFlags.outdated {
		v := version.Current
		q.MaxVersion = &v
	}
	return q, nil
}

func runCatalogList(cmd *cobra.Command, _ []string) error {
	format, err := cli.ParseFormat(catalogFlags.format)
	if err != nil {
		return err
	}
	q, err := catalogQuery()
	if err != nil {
		return err
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

	records, err := store.Query(ctx, q)
	if err != nil {
		return cli.NewCommandError("catalog list", err)
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), recordTable(records))
}

func runCatalogPrune(cmd *cobra.Command, _ []string) error {
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

	n, err := a.newPruner(store).Prune(ctx)
	if err != nil {
		return cli.NewCommandError("catalog prune", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pruned %d records\n", n)
	return nil
}
