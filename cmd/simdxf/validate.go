package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

var validateFlags struct {
	kind   string
	format string
	strict bool
	shared bool
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that files can be read",
	Long: `Read files and report lexical, structural and version errors as well
as unresolved references. Nothing is written.

With --shared all files are read into one registry, as the files of one
project are, so references between them resolve.

Examples:
  # Validate a single file
  simdxf validate project.codxf

  # Validate the files of a project together and fail on dangling references
  simdxf validate --shared --strict project.codxf project.gmdxf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.kind, "kind", "", "file kind (default: detected from the extension)")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json, csv")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "fail on unresolved references (default: project.strict_references)")
	validateCmd.Flags().BoolVar(&validateFlags.shared, "shared", false, "resolve references across all files")
}

type validateResult struct {
	Path       string `json:"path"`
	Kind       string `json:"kind"`
	Version    int    `json:"version"`
	Unresolved int    `json:"unresolved"`
	Warnings   int    `json:"warnings"`
	ErrorType  string `json:"error_type,omitempty"`
	Error      string `json:"error,omitempty"`
}

type validateReport struct {
	Files      []validateResult `json:"files"`
	Unresolved []string         `json:"unresolved,omitempty"`
}

func (r validateReport) Header() []string {
	return []string{"PATH", "KIND", "VERSION", "UNRESOLVED", "WARNINGS", "RESULT"}
}

func (r validateReport) Rows() [][]string {
	rows := make([][]string, len(r.Files))
	for i, f := range r.Files {
		result := "ok"
		if f.Error != "" {
			result = f.ErrorType + ": " + f.Error
		}
		rows[i] = []string{f.Path, f.Kind, strconv.Itoa(f.Version), strconv.Itoa(f.Unresolved), strconv.Itoa(f.Warnings), result}
	}
	return rows
}

func runValidate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format)
	if err != nil {
		return err
	}
	kind, err := parseKind(validateFlags.kind)
	if err != nil {
		return err
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := cli.SetupSignalHandler()
	defer stop()
	ctx, span := a.tracer.Start(tracing.ExtractFromEnv(ctx), "simdxf.validate")
	defer span.End()

	var registry *resolve.Registry
	if validateFlags.shared {
		registry = resolve.NewRegistry(a.project,
			resolve.WithLogger(a.log.Slog()),
			resolve.WithMaxIterations(a.cfg.Reader.MaxResolveIterations))
	}

	failures := dxferrors.NewErrorList()
	report := validateReport{Files: make([]validateResult, 0, len(args))}
	unresolvedFiles := 0
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := validateResult{Path: path, Kind: kind.String()}
		doc, err := a.readFile(ctx, path, kind, registry)
		if err != nil {
			r.ErrorType = string(dxferrors.TypeOf(err))
			r.Error = err.Error()
			failures.Add(fmt.Errorf("%s: %w", path, err))
			report.Files = append(report.Files, r)
			continue
		}
		r.Kind = doc.Kind.String()
		r.Version = doc.FileVersion
		r.Warnings = len(doc.Warnings)
		unresolved := doc.Unresolved
		if registry != nil {
			// References into files read later are only final once every
			// file is in the registry.
			unresolved = doc.Dangling
		}
		r.Unresolved = len(unresolved)
		for _, u := range unresolved {
			report.Unresolved = append(report.Unresolved, path+": "+u.Error())
		}
		if r.Unresolved > 0 {
			unresolvedFiles++
		}
		report.Files = append(report.Files, r)
	}

	if registry != nil {
		final := registry.Resolve()
		for _, u := range final.Unresolved {
			report.Unresolved = append(report.Unresolved, u.Error())
		}
		if len(final.Unresolved) > 0 && unresolvedFiles == 0 {
			unresolvedFiles = 1
		}
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if format == cli.FormatText {
		for _, u := range report.Unresolved {
			fmt.Fprintf(cmd.OutOrStdout(), "unresolved: %s\n", u)
		}
	}

	var strictFlag *bool
	if cmd.Flags().Changed("strict") {
		strictFlag = &validateFlags.strict
	}
	switch {
	case failures.HasErrors():
		err = cli.NewCommandError("validate", failures)
	case a.strict(strictFlag) && len(report.Unresolved) > 0:
		err = &cli.UnresolvedError{Files: unresolvedFiles, Unresolved: len(report.Unresolved)}
	}
	tracing.SetStatus(span, err)
	return err
}
