package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

var convertFlags struct {
	output  string
	outDir  string
	inPlace bool
	public  bool
	kind    string
	format  string
}

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Upgrade files to the current format version",
	Long: `Read files of any supported version, apply the migrations of their
version and write them at the current format version.

Exactly one destination must be chosen: --output for a single file,
--out-dir for any number of files or --in-place.

Examples:
  # Upgrade a file into a new one
  simdxf convert old.codxf -o new.codxf

  # Upgrade a directory of files in place
  simdxf convert --in-place project/*.codxf

  # Export the public part of a project
  simdxf convert --public project.codxf -o project.cpdxf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file (single input only)")
	convertCmd.Flags().StringVar(&convertFlags.outDir, "out-dir", "", "output directory")
	convertCmd.Flags().BoolVar(&convertFlags.inPlace, "in-place", false, "replace the input files")
	convertCmd.Flags().BoolVar(&convertFlags.public, "public", false, "write the public part of component files")
	convertCmd.Flags().StringVar(&convertFlags.kind, "kind", "", "file kind (default: detected from the extension)")
	convertCmd.Flags().StringVar(&convertFlags.format, "format", "text", "summary format: text, json, csv")
}

// convertResult is one row of the convert summary.
type convertResult struct {
	Path       string `json:"path"`
	Output     string `json:"output,omitempty"`
	From       int    `json:"from"`
	To         int    `json:"to"`
	Migrations int    `json:"migrations"`
	Unresolved int    `json:"unresolved"`
	Error      string `json:"error,omitempty"`
}

func (r convertResult) status() string {
	switch {
	case r.Error != "":
		return "failed"
	case r.Unresolved > 0:
		return fmt.Sprintf("%d unresolved", r.Unresolved)
	default:
		return "ok"
	}
}

type convertSummary []convertResult

func (s convertSummary) Header() []string {
	return []string{"PATH", "OUTPUT", "FROM", "TO", "MIGRATIONS", "STATUS"}
}

func (s convertSummary) Rows() [][]string {
	rows := make([][]string, len(s))
	for i, r := range s {
		to := "-"
		if r.Error == "" {
			to = strconv.Itoa(r.To)
		}
		rows[i] = []string{r.Path, r.Output, strconv.Itoa(r.From), to, strconv.Itoa(r.Migrations), r.status()}
	}
	return rows
}

// convertTarget returns where path is written.
func convertTarget(path string, doc *files.Document) string {
	switch {
	case convertFlags.output != "":
		return convertFlags.output
	case convertFlags.inPlace:
		return path
	}
	name := filepath.Base(path)
	if doc != nil && convertFlags.public && doc.Kind == files.KindPublicComponents {
		name = name[:len(name)-len(filepath.Ext(name))] + doc.Kind.Extension()
	}
	return filepath.Join(convertFlags.outDir, name)
}

func checkConvertFlags(n int) error {
	set := 0
	for _, ok := range []bool{convertFlags.output != "", convertFlags.outDir != "", convertFlags.inPlace} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return cli.NewConfigError("", "choose one of --output, --out-dir or --in-place")
	case set > 1:
		return cli.NewConfigError("", "--output, --out-dir and --in-place are mutually exclusive")
	case convertFlags.output != "" && n > 1:
		return cli.NewConfigError("output", "--output takes a single input file, use --out-dir")
	case convertFlags.public && convertFlags.inPlace:
		return cli.NewConfigError("public", "--public cannot replace the input file")
	}
	return nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := checkConvertFlags(len(args)); err != nil {
		return err
	}
	format, err := cli.ParseFormat(convertFlags.format)
	if err != nil {
		return err
	}
	kind, err := parseKind(convertFlags.kind)
	if err != nil {
		return err
	}
	if convertFlags.outDir != "" {
		if err := os.MkdirAll(convertFlags.outDir, 0o755); err != nil {
			return err
		}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
	ctx, span := a.tracer.Start(tracing.ExtractFromEnv(ctx), "simdxf.convert")
	defer span.End()

	var progress cli.ProgressReporter = cli.NopProgress{}
	if len(args) > 1 && format == cli.FormatText {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr())
	}
	progress.Start(int64(len(args)))

	summary := make(convertSummary, 0, len(args))
	var failed, unresolved, unresolvedFiles int
	for i, path := range args {
		if err := ctx.Err(); err != nil {
			progress.Error(err)
			return err
		}
		r := a.convertOne(ctx, path, kind)
		if r.Error != "" {
			failed++
		}
		if r.Unresolved > 0 {
			unresolved += r.Unresolved
			unresolvedFiles++
		}
		summary = append(summary, r)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	switch {
	case failed > 0:
		err = cli.NewCommandError("convert", fmt.Errorf("%d of %d files failed", failed, len(args)))
	case a.strict(nil) && unresolved > 0:
		err = &cli.UnresolvedError{Files: unresolvedFiles, Unresolved: unresolved}
	}
	tracing.SetStatus(span, err)
	return err
}

// convertOne upgrades a single file. Failures are recorded in the result
// so the remaining files are still converted.
func (a *app) convertOne(ctx context.Context, path string, kind files.Kind) convertResult {
	r := convertResult{Path: path, To: version.Current}
	doc, err := a.readFile(ctx, path, kind, nil)
	if err != nil {
		r.Error = err.Error()
		a.log.ErrorContext(ctx, "convert failed", "file", path, "error", err)
		return r
	}
	r.From = doc.FileVersion
	r.Unresolved = len(doc.Unresolved)
	for _, m := range doc.Migrations {
		if m.Changed() {
			r.Migrations++
		}
	}

	if convertFlags.public {
		if doc.Kind != files.KindComponents {
			r.Error = fmt.Sprintf("--public needs a component file, got %s", doc.Kind)
			return r
		}
		doc.Kind = files.KindPublicComponents
	}
	r.Output = convertTarget(path, doc)
	if err := a.writeFile(ctx, r.Output, doc); err != nil {
		r.Error = err.Error()
		a.log.ErrorContext(ctx, "convert failed", "file", path, "output", r.Output, "error", err)
	}
	return r
}
