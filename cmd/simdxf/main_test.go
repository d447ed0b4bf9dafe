package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/cli"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/config"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// testConfig installs a configuration whose catalog lives in a temporary
// directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")
	cfg.Telemetry.Logging.Level = "error"
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
	return cfg
}

// resetFlags restores every flag to its default, since cobra keeps the
// values of earlier runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile[D any](t *testing.T, f *files.Format[D], path string, data *D) {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf, data, files.WriteOptions{FileName: path}); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func danglingProject() *files.ProjectData {
	return &files.ProjectData{
		Assets: []*model.Asset{{ResourceKey: 9, ContainedObjectID: "1"}},
	}
}

func TestVersionCommand(t *testing.T) {
	testConfig(t)
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	want := "Format Version: 31"
	if version.Current != 31 || !strings.Contains(out, want) {
		t.Errorf("output = %q, want it to contain %q", out, want)
	}
	if info := versionInfo(); info.FormatVersion != version.Current || info.Version != Version {
		t.Errorf("versionInfo() = %+v", info)
	}
}

func TestInspect(t *testing.T) {
	testConfig(t)
	path := filepath.Join(t.TempDir(), "tax.txdxf")
	writeFile(t, files.Taxonomies, path, &files.TaxonomyData{})

	out, err := run(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{"Kind:     taxonomies", "Version:  31", "0 resolved, 0 unresolved"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "inspect", "--format", "json", path)
	if err != nil {
		t.Fatalf("inspect --format json error = %v", err)
	}
	var got inspectResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Kind != "taxonomies" || got.FileVersion != version.Current || got.File != path {
		t.Errorf("result = %+v", got)
	}
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "notes.xyz")
	broken := filepath.Join(dir, "broken.codxf")
	if err := os.WriteFile(unknown, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dangling := filepath.Join(dir, "dangling.codxf")
	writeFile(t, files.Components, dangling, danglingProject())

	tests := []struct {
		name     string
		strict   bool
		args     []string
		wantCode int
	}{
		{name: "unknown extension", args: []string{"inspect", unknown}, wantCode: cli.ExitConfig},
		{name: "bad kind flag", args: []string{"inspect", "--kind", "nope", broken}, wantCode: cli.ExitConfig},
		{name: "lexical error", args: []string{"inspect", broken}, wantCode: cli.ExitFormat},
		{name: "unresolved is reported", args: []string{"inspect", dangling}, wantCode: cli.ExitOK},
		{name: "unresolved in strict mode", strict: true, args: []string{"inspect", dangling}, wantCode: cli.ExitUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.Project.StrictReferences = tt.strict
			_, err := run(t, tt.args...)
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (error %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestConvert(t *testing.T) {
	testConfig(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.codxf")
	out := filepath.Join(dir, "out.codxf")
	writeFile(t, files.Components, in, danglingProject())

	summary, err := run(t, "convert", in, "-o", out)
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(summary, "1 unresolved") {
		t.Errorf("summary does not report the unresolved asset:\n%s", summary)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	doc, err := files.ReadDocument(files.KindComponents, f, files.ReadOptions{FileName: out})
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if doc.FileVersion != version.Current {
		t.Errorf("FileVersion = %d, want %d", doc.FileVersion, version.Current)
	}
	if data := doc.Data.(*files.ProjectData); len(data.Assets) != 1 {
		t.Errorf("assets = %d, want 1", len(data.Assets))
	}

	leftovers, _ := filepath.Glob(filepath.Join(dir, ".out.codxf.*"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestConvert_OutDirAndPublic(t *testing.T) {
	testConfig(t)
	dir := t.TempDir()
	outDir := filepath.Join(dir, "public")
	in := filepath.Join(dir, "project.codxf")
	writeFile(t, files.Components, in, &files.ProjectData{})

	if _, err := run(t, "convert", "--public", "--out-dir", outDir, in); err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "project.cpdxf")); err != nil {
		t.Errorf("public file not written: %v", err)
	}
}

func TestConvert_PartialFailure(t *testing.T) {
	testConfig(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txdxf")
	broken := filepath.Join(dir, "broken.txdxf")
	writeFile(t, files.Taxonomies, good, &files.TaxonomyData{})
	if err := os.WriteFile(broken, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "convert", "--format", "csv", "--in-place", good, broken)
	if err == nil {
		t.Fatal("convert succeeded with a broken input")
	}
	if !strings.Contains(out, good+",") || !strings.Contains(out, "failed") {
		t.Errorf("summary = %q", out)
	}
}

func TestCheckConvertFlags(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		outDir  string
		inPlace bool
		public  bool
		files   int
		wantErr bool
	}{
		{name: "no destination", files: 1, wantErr: true},
		{name: "output", output: "a", files: 1},
		{name: "output with many files", output: "a", files: 2, wantErr: true},
		{name: "out dir", outDir: "d", files: 3},
		{name: "two destinations", output: "a", inPlace: true, files: 1, wantErr: true},
		{name: "public in place", inPlace: true, public: true, files: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			convertFlags.output = tt.output
			convertFlags.outDir = tt.outDir
			convertFlags.inPlace = tt.inPlace
			convertFlags.public = tt.public
			err := checkConvertFlags(tt.files)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkConvertFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && cli.ExitCode(err) != cli.ExitConfig {
				t.Errorf("exit code = %d, want %d", cli.ExitCode(err), cli.ExitConfig)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txdxf")
	broken := filepath.Join(dir, "broken.codxf")
	dangling := filepath.Join(dir, "dangling.codxf")
	writeFile(t, files.Taxonomies, good, &files.TaxonomyData{})
	writeFile(t, files.Components, dangling, danglingProject())
	if err := os.WriteFile(broken, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{name: "valid", args: []string{"validate", good}, wantCode: cli.ExitOK, wantOut: "ok"},
		{name: "broken", args: []string{"validate", good, broken}, wantCode: cli.ExitFormat, wantOut: "lexical"},
		{name: "dangling lenient", args: []string{"validate", dangling}, wantCode: cli.ExitOK, wantOut: "unresolved: "},
		{name: "dangling strict", args: []string{"validate", "--strict", dangling}, wantCode: cli.ExitUnresolved},
		{name: "dangling shared strict", args: []string{"validate", "--shared", "--strict", good, dangling}, wantCode: cli.ExitUnresolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testConfig(t)
			out, err := run(t, tt.args...)
			if got := cli.ExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (error %v)", got, tt.wantCode, err)
			}
			if !strings.Contains(out, tt.wantOut) {
				t.Errorf("output missing %q:\n%s", tt.wantOut, out)
			}
		})
	}
}

func TestScanAndCatalog(t *testing.T) {
	testConfig(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txdxf")
	broken := filepath.Join(dir, "sub", "broken.codxf")
	writeFile(t, files.Taxonomies, good, &files.TaxonomyData{})
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("garbage\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "scan", "--format", "csv", dir)
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(out, dir+",1,0,1,0,") {
		t.Errorf("scan summary = %q", out)
	}

	out, err = run(t, "catalog", "list", "--format", "csv")
	if err != nil {
		t.Fatalf("catalog list error = %v", err)
	}
	if !strings.Contains(out, good) || !strings.Contains(out, broken) {
		t.Errorf("catalog list = %q", out)
	}

	out, err = run(t, "catalog", "list", "--failed", "--format", "csv")
	if err != nil {
		t.Fatalf("catalog list --failed error = %v", err)
	}
	if strings.Contains(out, good) || !strings.Contains(out, broken) {
		t.Errorf("catalog list --failed = %q", out)
	}

	out, err = run(t, "catalog", "prune")
	if err != nil {
		t.Fatalf("catalog prune error = %v", err)
	}
	if !strings.Contains(out, "pruned 0 records") {
		t.Errorf("catalog prune = %q", out)
	}
}

func TestCatalogDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Enabled = false
	_, err := run(t, "catalog", "list")
	if got := cli.ExitCode(err); got != cli.ExitConfig {
		t.Errorf("exit code = %d, want %d", got, cli.ExitConfig)
	}
}

func TestInspectResultString(t *testing.T) {
	r := inspectResult{
		File:           "a.codxf",
		Kind:           "components",
		FileVersion:    12,
		CurrentVersion: 31,
		Sections:       map[string]int{"B": 2, "A": 1},
		Unresolved:     []string{"missing"},
		Migrations:     []migrationResult{{Name: "parameters", Renamed: 3}},
	}
	s := r.String()
	for _, want := range []string{"(convert upgrades to 31)", "missing", "parameters: 0 removed, 0 demoted, 0 mapped, 3 renamed"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
	if strings.Index(s, "A ") > strings.Index(s, "B ") {
		t.Errorf("sections are not sorted:\n%s", s)
	}
}

func TestCompletion(t *testing.T) {
	testConfig(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Errorf("completion %s error = %v", shell, err)
		}
		if !strings.Contains(out, "simdxf") {
			t.Errorf("completion %s does not mention simdxf", shell)
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh succeeded")
	}
}
