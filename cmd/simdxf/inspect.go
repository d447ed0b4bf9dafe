package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/telemetry/tracing"
)

var inspectFlags struct {
	kind   string
	format string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the content of a file",
	Long: `Read a file and print its format version, the number of entities per
section, reference resolution results, warnings and applied migrations.

Examples:
  # Inspect a component file
  simdxf inspect project.codxf

  # Inspect a file with an unusual extension
  simdxf inspect --kind taxonomies backup.dat

  # Machine readable output
  simdxf inspect --format json project.codxf`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectFlags.kind, "kind", "", "file kind (default: detected from the extension)")
	inspectCmd.Flags().StringVar(&inspectFlags.format, "format", "text", "output format: text, json")
}

// inspectResult describes one read file.
type inspectResult struct {
	File           string            `json:"file"`
	Kind           string            `json:"kind"`
	FileVersion    int               `json:"file_version"`
	CurrentVersion int               `json:"current_version"`
	Sections       map[string]int    `json:"sections"`
	Resolved       int               `json:"resolved"`
	Unresolved     []string          `json:"unresolved,omitempty"`
	Foreign        int               `json:"foreign"`
	Warnings       []string          `json:"warnings,omitempty"`
	Migrations     []migrationResult `json:"migrations,omitempty"`
}

type migrationResult struct {
	Name     string   `json:"name"`
	Removed  int      `json:"removed"`
	Demoted  int      `json:"demoted"`
	Mapped   int      `json:"mapped"`
	Renamed  int      `json:"renamed"`
	Problems []string `json:"problems,omitempty"`
}

func newInspectResult(path string, doc *files.Document) inspectResult {
	r := inspectResult{
		File:           path,
		Kind:           doc.Kind.String(),
		FileVersion:    doc.FileVersion,
		CurrentVersion: version.Current,
		Sections:       doc.Counts,
		Resolved:       doc.Resolved,
		Foreign:        len(doc.Foreign),
	}
	for _, u := range doc.Unresolved {
		r.Unresolved = append(r.Unresolved, u.Error())
	}
	for _, w := range doc.Warnings {
		r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %s: %s", w.Location, w.Context, w.Message))
	}
	for _, m := range doc.Migrations {
		if !m.Changed() && len(m.Problems) == 0 {
			continue
		}
		mr := migrationResult{
			Name:    m.Migration,
			Removed: m.Removed,
			Demoted: m.Demoted,
			Mapped:  m.Mapped,
			Renamed: m.Renamed,
		}
		for _, p := range m.Problems {
			mr.Problems = append(mr.Problems, p.Error())
		}
		r.Migrations = append(r.Migrations, mr)
	}
	return r
}

func (r inspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "File:     %s\n", r.File)
	fmt.Fprintf(&b, "Kind:     %s\n", r.Kind)
	fmt.Fprintf(&b, "Version:  %d", r.FileVersion)
	if r.FileVersion < r.CurrentVersion {
		fmt.Fprintf(&b, " (convert upgrades to %d)", r.CurrentVersion)
	}
	b.WriteString("\n\nSections:\n")
	names := make([]string, 0, len(r.Sections))
	for name := range r.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "  %-24s %d\n", name, r.Sections[name])
	}

	fmt.Fprintf(&b, "\nReferences: %d resolved, %d unresolved, %d in other projects\n",
		r.Resolved, len(r.Unresolved), r.Foreign)
	for _, u := range r.Unresolved {
		fmt.Fprintf(&b, "  ✗ %s\n", u)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintf(&b, "\nWarnings (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  ⚠ %s\n", w)
		}
	}
	if len(r.Migrations) > 0 {
		b.WriteString("\nMigrations:\n")
		for _, m := range r.Migrations {
			fmt.Fprintf(&b, "  %s: %d removed, %d demoted, %d mapped, %d renamed\n",
				m.Name, m.Removed, m.Demoted, m.Mapped, m.Renamed)
			for _, p := range m.Problems {
				fmt.Fprintf(&b, "    ⚠ %s\n", p)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(inspectFlags.format)
	if err != nil {
		return err
	}
	kind, err := parseKind(inspectFlags.kind)
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
	ctx, span := a.tracer.Start(tracing.ExtractFromEnv(ctx), "simdxf.inspect")
	defer span.End()

	doc, err := a.readFile(ctx, args[0], kind, nil)
	tracing.SetStatus(span, err)
	if err != nil {
		return cli.NewCommandError("inspect", err)
	}

	result := newInspectResult(args[0], doc)
	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return err
	}
	if a.strict(nil) && len(doc.Unresolved) > 0 {
		return &cli.UnresolvedError{Files: 1, Unresolved: len(doc.Unresolved)}
	}
	return nil
}
