package files

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/migrate"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

var project = uuid.MustParse("3f6c0a2e-9b1d-4e8f-a5c7-1d2e3f4a5b6c")

var ignoreHandles = cmp.Comparer(func(a, b model.Handle) bool { return true })

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readOpts(name string) ReadOptions {
	return ReadOptions{FileName: name, ProjectID: project, Logger: quiet()}
}

func writeOpts(name string) WriteOptions {
	return WriteOptions{FileName: name, ProjectID: project, Logger: quiet()}
}

func pairs(kv ...any) string {
	var sb strings.Builder
	for i := 0; i < len(kv); i += 2 {
		sb.WriteString(codec.FormatInt(int64(kv[i].(int))))
		sb.WriteString("\n")
		sb.WriteString(kv[i+1].(string))
		sb.WriteString("\n")
	}
	return sb.String()
}

func sampleProject() *ProjectData {
	param := &model.DoubleParameter{
		ParameterBase: model.ParameterBase{
			ID: ids.New(project, 20), Name: "Area", Unit: "m2", AllowedOperations: model.OperationAll,
		},
		Value: 12.5,
	}
	node := &model.FlowNode{ID: ids.New(project, 101), Name: "supply"}
	block := &model.SimNetworkBlock{ID: ids.New(project, 201), Name: "pump"}
	visible := &model.Component{
		ID:         ids.New(project, 10),
		Name:       "room",
		Visibility: model.VisibilityAlwaysVisible,
		Parameters: []model.Parameter{param},
		Instances: []*model.Instance{{
			ID:               ids.New(project, 11),
			PropagateChanges: true,
			Placements: []model.Placement{
				&model.NetworkPlacement{Element: model.RefTo[model.FlowElement](node.ID)},
				&model.SimNetworkPlacement{Block: model.RefTo[*model.SimNetworkBlock](block.ID)},
			},
		}},
	}
	hidden := &model.Component{ID: ids.New(project, 30), Name: "internal"}

	return &ProjectData{
		Components: []*model.Component{visible, hidden},
		FlowNetworks: []*model.FlowNetwork{
			{ID: ids.New(project, 100), Name: "heating", Nodes: []*model.FlowNode{node}},
			{ID: ids.New(project, 110), Name: "unused"},
		},
		SimNetworks: []*model.SimNetwork{
			{ID: ids.New(project, 200), Name: "plant", Blocks: []*model.SimNetworkBlock{block}},
		},
		Resources: []model.ResourceEntry{
			&model.ResourceDirectory{
				ResourceBase: model.ResourceBase{Key: 1, Name: "geometry"},
				Children: []model.ResourceEntry{
					&model.ContainedResourceFile{ResourceBase: model.ResourceBase{Key: 2, Name: "floor.simgeo"}},
					&model.ContainedResourceFile{ResourceBase: model.ResourceBase{Key: 3, Name: "roof.simgeo"}},
				},
			},
		},
		Assets: []*model.Asset{
			{ResourceKey: 2, ContainedObjectID: "7", Components: []model.Ref[*model.Component]{model.RefTo[*model.Component](visible.ID)}},
			{ResourceKey: 3, ContainedObjectID: "8", Components: []model.Ref[*model.Component]{model.RefTo[*model.Component](hidden.ID)}},
		},
		UserLists: []*model.UserComponentList{
			{ID: ids.New(project, 300), Name: "mine", RootComponents: []model.Ref[*model.Component]{
				model.RefTo[*model.Component](visible.ID),
				model.RefTo[*model.Component](hidden.ID),
			}},
		},
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"project/Components.codxf", KindComponents},
		{"Public.CPDXF", KindPublicComponents},
		{"lib.padxf", KindParameterLibrary},
		{"tables.mvdxf", KindMultiValueLibrary},
		{"tools.etdxf", KindExcelTools},
		{"tax.txdxf", KindTaxonomies},
		{"site.spdxf", KindSitePlanner},
		{"map.gmdxf", KindGeoMap},
		{"rel.grdxf", KindGeometryRelations},
		{"Users.usrdxf", KindUsers},
		{"MetaData.metadxf", KindMeta},
		{"links.lidxf", KindLinks},
		{"notes.txt", KindUnknown},
		{"noext", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectKind(tt.path); got != tt.want {
				t.Errorf("DetectKind(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", k.String(), got, err, k)
		}
	}
	if _, err := ParseKind("nope"); err == nil {
		t.Error("ParseKind(nope) succeeded")
	}
}

func TestComponents_RoundTrip(t *testing.T) {
	in := sampleProject()
	var buf bytes.Buffer
	if err := Components.Write(&buf, in, writeOpts("p.codxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), pairs(0, "SECTION", 2, SectionVersion, 0, KindFileVersion, 10, "31", 0, "ENDSEC")) {
		t.Errorf("file does not start with the version section:\n%s", buf.String()[:80])
	}
	if !strings.HasSuffix(buf.String(), pairs(0, "EOF")) {
		t.Error("file does not end with EOF")
	}

	res, err := Components.Read(&buf, readOpts("p.codxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if res.FileVersion != version.Current {
		t.Errorf("FileVersion = %d, want %d", res.FileVersion, version.Current)
	}
	if !res.Complete() {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if diff := cmp.Diff(in, res.Data, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	placement := res.Data.Components[0].Instances[0].Placements[0].(*model.NetworkPlacement)
	if !placement.Element.IsResolved() {
		t.Error("network placement was not resolved")
	}
}

func TestComponents_AssetWithoutResource(t *testing.T) {
	in := &ProjectData{
		Assets: []*model.Asset{{ResourceKey: 9, ContainedObjectID: "1"}},
	}
	var buf bytes.Buffer
	if err := Components.Write(&buf, in, writeOpts("p.codxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	res, err := Components.Read(&buf, readOpts("p.codxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(res.Unresolved) != 1 {
		t.Fatalf("len(Unresolved) = %d, want 1", len(res.Unresolved))
	}
	if got := res.Unresolved[0].RawID; got != "resource 9" {
		t.Errorf("RawID = %q, want %q", got, "resource 9")
	}
	if len(res.Dangling) != 1 || res.Dangling[0] != res.Unresolved[0] {
		t.Errorf("Dangling = %v, want the unresolved asset", res.Dangling)
	}
}

func TestPublicComponents_KeepsVisiblePart(t *testing.T) {
	in := sampleProject()
	var buf bytes.Buffer
	if err := PublicComponents.Write(&buf, in, writeOpts("p.cpdxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	res, err := PublicComponents.Read(&buf, readOpts("p.cpdxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	d := res.Data

	if len(d.Components) != 1 || d.Components[0].Name != "room" {
		t.Errorf("Components = %v, want only room", d.Components)
	}
	if len(d.FlowNetworks) != 1 || d.FlowNetworks[0].Name != "heating" {
		t.Errorf("FlowNetworks = %v, want only heating", d.FlowNetworks)
	}
	if len(d.SimNetworks) != 1 {
		t.Errorf("len(SimNetworks) = %d, want 1", len(d.SimNetworks))
	}
	if len(d.Assets) != 1 || d.Assets[0].ResourceKey != 2 {
		t.Errorf("Assets = %v, want the asset of resource 2", d.Assets)
	}
	var keys []int
	model.WalkResources(d.Resources, func(e model.ResourceEntry) { keys = append(keys, e.Resource().Key) })
	if diff := cmp.Diff([]int{1, 2}, keys); diff != "" {
		t.Errorf("resource keys mismatch (-want +got):\n%s", diff)
	}
	if len(d.UserLists) != 1 || len(d.UserLists[0].RootComponents) != 1 {
		t.Errorf("UserLists = %v, want one list with one root", d.UserLists)
	}
	if !res.Complete() {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}

	// the source data is untouched
	if len(in.Assets[0].Components) != 1 || len(in.UserLists[0].RootComponents) != 2 {
		t.Error("PublicPart modified its input")
	}
}

func TestRead_WithoutVersionSection(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionTaxonomies,
		0, "ENDSEC",
		0, "EOF",
	)
	res, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if res.FileVersion != version.Oldest {
		t.Errorf("FileVersion = %d, want %d", res.FileVersion, version.Oldest)
	}
}

func TestRead_NegativeVersionIsOldest(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionVersion, 0, KindFileVersion, 10, "-4", 0, "ENDSEC",
		0, "SECTION", 2, SectionTaxonomies,
		0, "ENDSEC",
		0, "EOF",
	)
	res, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if res.FileVersion != version.Oldest {
		t.Errorf("FileVersion = %d, want %d", res.FileVersion, version.Oldest)
	}
}

func TestRead_EmptyStreamIsStructural(t *testing.T) {
	_, err := Taxonomies.Read(strings.NewReader(""), readOpts("t.txdxf"))
	var fe *dxferrors.FormatError
	if !errors.As(err, &fe) || fe.Type != dxferrors.ErrorTypeStructural {
		t.Fatalf("Read() error = %v, want structural FormatError", err)
	}
}

func TestRead_UnsupportedVersion(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionVersion, 0, KindFileVersion, 10, "32", 0, "ENDSEC",
		0, "EOF",
	)
	_, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf"))
	var verr *dxferrors.UnsupportedVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("Read() error = %v, want UnsupportedVersionError", err)
	}
}

func TestRead_UnknownSectionIsSkipped(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionVersion, 0, KindFileVersion, 10, "31", 0, "ENDSEC",
		0, "SECTION", 2, "FUTURE_SECTION",
		0, "GADGET", 1, "a", 2, "b",
		0, "ENDSEC",
		0, "SECTION", 2, SectionTaxonomies,
		0, "ENDSEC",
		0, "EOF",
	)
	res, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly one", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0].Message, "FUTURE_SECTION") {
		t.Errorf("Warning = %q, want it to name the section", res.Warnings[0].Message)
	}
}

func TestRead_TruncatedSectionIsStructural(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionVersion, 0, KindFileVersion, 10, "31", 0, "ENDSEC",
		0, "SECTION", 2, SectionTaxonomies,
	)
	_, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf"))
	var ferr *dxferrors.FormatError
	if !errors.As(err, &ferr) || ferr.Type != dxferrors.ErrorTypeStructural {
		t.Fatalf("Read() error = %v, want structural FormatError", err)
	}
}

func TestRead_RepeatedSection(t *testing.T) {
	stream := pairs(
		0, "SECTION", 2, SectionTaxonomies, 0, "ENDSEC",
		0, "SECTION", 2, SectionTaxonomies, 0, "ENDSEC",
		0, "EOF",
	)
	if _, err := Taxonomies.Read(strings.NewReader(stream), readOpts("t.txdxf")); err == nil {
		t.Fatal("Read() succeeded for a repeated section")
	}
}

func TestSingleSection_RejectsSecondEntity(t *testing.T) {
	meta := &model.ProjectMeta{ProjectID: project, Name: "p"}
	var buf bytes.Buffer
	if err := WriteEntity[*model.ProjectMeta](&buf, entities.ProjectMeta, meta, writeOpts("")); err != nil {
		t.Fatalf("WriteEntity() failed: %v", err)
	}
	stream := pairs(0, "SECTION", 2, SectionMeta) + buf.String() + buf.String() + pairs(0, "ENDSEC", 0, "EOF")
	if _, err := Meta.Read(strings.NewReader(stream), readOpts("m.metadxf")); err == nil {
		t.Fatal("Read() succeeded with two meta entities")
	}
}

func TestSharedRegistry_ResolvesAcrossFiles(t *testing.T) {
	table := &model.BigTable{ID: ids.New(project, 500), Name: "loads"}
	mapping := &model.ValueMapping{ID: ids.New(project, 501), Name: "heat", Table: model.RefTo[*model.BigTable](table.ID)}

	var mv, co bytes.Buffer
	if err := MultiValues.Write(&mv, &MultiValueData{BigTables: []*model.BigTable{table}}, writeOpts("v.mvdxf")); err != nil {
		t.Fatalf("Write(mvdxf) failed: %v", err)
	}
	if err := Components.Write(&co, &ProjectData{ValueMappings: []*model.ValueMapping{mapping}}, writeOpts("p.codxf")); err != nil {
		t.Fatalf("Write(codxf) failed: %v", err)
	}

	alone, err := Components.Read(bytes.NewReader(co.Bytes()), readOpts("p.codxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(alone.Unresolved) != 1 {
		t.Errorf("len(Unresolved) = %d without the table file, want 1", len(alone.Unresolved))
	}

	registry := resolve.NewRegistry(project, resolve.WithLogger(quiet()))
	opts := readOpts("")
	opts.Registry = registry
	if _, err := MultiValues.Read(&mv, opts); err != nil {
		t.Fatalf("Read(mvdxf) failed: %v", err)
	}
	res, err := Components.Read(bytes.NewReader(co.Bytes()), opts)
	if err != nil {
		t.Fatalf("Read(codxf) failed: %v", err)
	}
	if !res.Complete() {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
	got, ok := resolve.Deref(registry, res.Data.ValueMappings[0].Table)
	if !ok || got.Name != "loads" {
		t.Errorf("Deref(Table) = %v, %v", got, ok)
	}
}

func TestRead_RunsMigrationsOnGraph(t *testing.T) {
	var seen []string
	engine := migrate.NewEngine(migrate.WithLogger(quiet()))
	engine.Register(migrate.Migration{
		Name:   "collect-names",
		Before: version.Current + 1,
		Run: func(g *migrate.Graph, r *migrate.Report, _ *slog.Logger) {
			for _, c := range g.Components {
				seen = append(seen, c.Name)
			}
			if len(g.References) != 4 {
				t.Errorf("len(References) = %d, want 4", len(g.References))
			}
		},
	})

	var buf bytes.Buffer
	if err := Components.Write(&buf, sampleProject(), writeOpts("p.codxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	opts := readOpts("p.codxf")
	opts.Migrations = engine
	res, err := Components.Read(&buf, opts)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(res.Migrations) != 1 || res.Migrations[0].Migration != "collect-names" {
		t.Errorf("Migrations = %v, want the collect-names report", res.Migrations)
	}
	if diff := cmp.Diff([]string{"room", "internal"}, seen); diff != "" {
		t.Errorf("migrated components mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_CurrentFilesNeedNoDefaultMigrations(t *testing.T) {
	var buf bytes.Buffer
	if err := Components.Write(&buf, sampleProject(), writeOpts("p.codxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	res, err := Components.Read(&buf, readOpts("p.codxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if len(res.Migrations) != 0 {
		t.Errorf("Migrations = %v, want none for a current file", res.Migrations)
	}
}

func TestUsers_Encrypted(t *testing.T) {
	key := StaticKey(bytes.Repeat([]byte{7}, 32))
	in := &UserData{Users: []*model.User{{
		ID:           uuid.MustParse("0b9c4f1e-2d3a-4c5b-8e7f-6a5b4c3d2e1f"),
		Name:         "alice-the-architect",
		PasswordHash: []byte{1, 2, 3},
		Role:         model.RoleArchitecture,
	}}}

	opts := writeOpts("Users.usrdxf")
	opts.Keys = key
	var buf bytes.Buffer
	if err := Users.Write(&buf, in, opts); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("alice-the-architect")) {
		t.Error("user name is stored in plain text")
	}

	ropts := readOpts("Users.usrdxf")
	ropts.Keys = key
	res, err := Users.Read(bytes.NewReader(buf.Bytes()), ropts)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if diff := cmp.Diff(in, res.Data); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	ropts.Keys = StaticKey(bytes.Repeat([]byte{8}, 32))
	if _, err := Users.Read(bytes.NewReader(buf.Bytes()), ropts); !errors.Is(err, ErrDecrypt) {
		t.Errorf("Read() with wrong key error = %v, want ErrDecrypt", err)
	}
	ropts.Keys = nil
	if _, err := Users.Read(bytes.NewReader(buf.Bytes()), ropts); !errors.Is(err, ErrNoKey) {
		t.Errorf("Read() without key error = %v, want ErrNoKey", err)
	}
}

func TestLinks_ForMachineAndResolve(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "plan.pdf")
	if err := os.WriteFile(target, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	data := &LinkData{Links: []*model.LinkedFile{
		{MachineHash: entities.MachineHash("workstation-1"), ResourceKey: 4, Path: target},
		{MachineHash: entities.MachineHash("laptop"), ResourceKey: 4, Path: "/elsewhere/plan.pdf"},
	}}

	var buf bytes.Buffer
	if err := Links.Write(&buf, data, writeOpts("l.lidxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	res, err := Links.Read(&buf, readOpts("l.lidxf"))
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if got := res.Data.ForMachine("Workstation-1"); len(got) != 1 || got[0].Path != target {
		t.Errorf("ForMachine() = %v, want the workstation link", got)
	}

	r := NewLinkResolver(res.Data, "workstation-1")
	if got, ok := r.ResolveLinked("old/location/plan.pdf"); !ok || got != target {
		t.Errorf("ResolveLinked() = %q, %v, want %q", got, ok, target)
	}
	if _, ok := r.ResolveLinked("missing.pdf"); ok {
		t.Error("ResolveLinked(missing.pdf) succeeded")
	}
}

type recordingObserver struct {
	reads  []ReadStats
	writes []WriteStats
}

func (o *recordingObserver) ObserveRead(s ReadStats)   { o.reads = append(o.reads, s) }
func (o *recordingObserver) ObserveWrite(s WriteStats) { o.writes = append(o.writes, s) }

func TestObserver_ReceivesStats(t *testing.T) {
	obs := &recordingObserver{}
	wopts := writeOpts("p.codxf")
	wopts.Observer = obs
	var buf bytes.Buffer
	if err := Components.Write(&buf, sampleProject(), wopts); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	size := int64(buf.Len())

	ropts := readOpts("p.codxf")
	ropts.Observer = obs
	if _, err := Components.Read(&buf, ropts); err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	if _, err := Components.Read(strings.NewReader("garbage"), ropts); err == nil {
		t.Fatal("Read(garbage) succeeded")
	}

	if len(obs.writes) != 1 || obs.writes[0].Bytes != size || obs.writes[0].Kind != KindComponents {
		t.Errorf("writes = %+v, want one write of %d bytes", obs.writes, size)
	}
	if len(obs.reads) != 2 {
		t.Fatalf("len(reads) = %d, want 2", len(obs.reads))
	}
	if r := obs.reads[0]; r.Err != nil || r.FileVersion != version.Current || r.Entities == 0 {
		t.Errorf("reads[0] = %+v", r)
	}
	if obs.reads[1].Err == nil {
		t.Error("reads[1].Err = nil, want the read error")
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	tax := &TaxonomyData{Taxonomies: []*model.Taxonomy{{
		ID:  ids.New(project, 1),
		Key: "slots",
		Localization: model.Localization{Entries: []model.LocalizationEntry{
			{Culture: "", Name: "Slots"},
		}},
		Entries: []*model.TaxonomyEntry{{ID: ids.New(project, 2), Key: "cost"}},
	}}}
	var buf bytes.Buffer
	if err := Taxonomies.Write(&buf, tax, writeOpts("t.txdxf")); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	first := buf.String()

	doc, err := ReadDocument(KindTaxonomies, &buf, readOpts("t.txdxf"))
	if err != nil {
		t.Fatalf("ReadDocument() failed: %v", err)
	}
	if got := doc.Counts[SectionTaxonomies]; got != 1 {
		t.Errorf("Counts[%s] = %d, want 1", SectionTaxonomies, got)
	}

	var out bytes.Buffer
	if err := WriteDocument(&out, doc, writeOpts("t.txdxf")); err != nil {
		t.Fatalf("WriteDocument() failed: %v", err)
	}
	if out.String() != first {
		t.Errorf("rewritten file differs:\n%s\nwant:\n%s", out.String(), first)
	}

	doc.Kind = KindMeta
	if err := WriteDocument(&out, doc, writeOpts("t.txdxf")); err == nil {
		t.Error("WriteDocument() succeeded with mismatched data")
	}
}

func TestReadEntity(t *testing.T) {
	in := &model.GeoMap{
		ImageResourceKey: 5,
		GeoReferences: []model.GeoReference{
			{ImagePosition: model.Point2{X: 0, Y: 0}, Location: model.Point3{X: 16.37, Y: 48.2, Z: 170}},
			{ImagePosition: model.Point2{X: 100, Y: 50}, Location: model.Point3{X: 16.38, Y: 48.21, Z: 171}},
		},
	}
	var buf bytes.Buffer
	if err := WriteEntity[*model.GeoMap](&buf, entities.GeoMap, in, writeOpts("")); err != nil {
		t.Fatalf("WriteEntity() failed: %v", err)
	}
	res, err := ReadEntity[*model.GeoMap](&buf, entities.GeoMap, version.Current, readOpts(""))
	if err != nil {
		t.Fatalf("ReadEntity() failed: %v", err)
	}
	if diff := cmp.Diff(in, *res.Data); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadEntity[*model.GeoMap](strings.NewReader(""), entities.GeoMap, version.Current+1, readOpts("")); err == nil {
		t.Error("ReadEntity() accepted an unsupported version")
	}
}
