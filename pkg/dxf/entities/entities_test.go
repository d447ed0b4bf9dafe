package entities

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

var project = uuid.MustParse("8a1d2b6e-1c3f-4b7a-9e52-2f0c6d4a7b91")

var ignoreHandles = cmp.Comparer(func(a, b model.Handle) bool { return true })

func write[V any](t *testing.T, c descriptor.Codec[V], v V) string {
	t.Helper()
	var buf bytes.Buffer
	w := cursor.NewWriter(codec.NewWriter(&buf))
	if err := c.Write(w, v, descriptor.NewWriterInfo(project)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() failed: %v", err)
	}
	return buf.String()
}

func parse[V any](t *testing.T, c descriptor.Codec[V], stream string, info *descriptor.ParserInfo) (V, error) {
	t.Helper()
	cur := cursor.New(codec.NewReader(strings.NewReader(stream), info.CurrentFile))
	return c.Parse(cur, info)
}

// roundTrip writes v, reads it back at the current version and resolves
// all references.
func roundTrip[V any](t *testing.T, c descriptor.Codec[V], v V) (V, *descriptor.ParserInfo) {
	t.Helper()
	return roundTripWith(t, c, v, nil)
}

// roundTripWith is roundTrip with targets registered before reading, for
// values referencing entities stored elsewhere.
func roundTripWith[V any](t *testing.T, c descriptor.Codec[V], v V, targets map[ids.EntityID]any) (V, *descriptor.ParserInfo) {
	t.Helper()
	info := descriptor.NewParserInfo(version.Current, project, "test.simdxf")
	for id, target := range targets {
		if _, err := info.Registry.Register(id, target); err != nil {
			t.Fatalf("Register(%v) failed: %v", id, err)
		}
	}
	out, err := parse(t, c, write(t, c, v), info)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}
	return out, info
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

func TestParameter_RoundTrip(t *testing.T) {
	in := &model.DoubleParameter{
		ParameterBase: model.ParameterBase{
			ID:                  ids.New(project, 1076741830),
			Name:                "Parameter X",
			Unit:                "Unit",
			Description:         "a parameter",
			TextValue:           "text value with spaces",
			Category:            model.Category(3),
			Propagation:         model.Propagation(2),
			InstancePropagation: true,
			AllowedOperations:   model.OperationAll,
		},
		Value:    45.67,
		MinValue: -12.3,
		MaxValue: math.Inf(1),
	}

	out, info := roundTrip[model.Parameter](t, Parameter, in)
	if diff := cmp.Diff(model.Parameter(in), out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if _, ok := info.Registry.Lookup(in.ID); !ok {
		t.Errorf("parameter %v was not registered", in.ID)
	}
}

func roundTripCase[V any](c descriptor.Codec[V], in V, targets map[ids.EntityID]any) func(*testing.T) {
	return func(t *testing.T) {
		out, _ := roundTripWith(t, c, in, targets)
		if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestRoundTrip_EntityKinds(t *testing.T) {
	var (
		entry   = ids.New(project, 500)
		items   = ids.New(project, 501)
		field   = ids.New(project, 502)
		graph   = ids.New(project, 503)
		mapping = ids.New(project, 504)
	)
	targets := map[ids.EntityID]any{
		entry:   &model.TaxonomyEntry{},
		items:   &model.TaxonomyEntry{},
		field:   &model.Field3D{},
		graph:   &model.FunctionGraph{},
		mapping: &model.ValueMapping{},
	}
	base := func(local uint64, name string) model.ParameterBase {
		return model.ParameterBase{
			ID:                  ids.New(project, local),
			Name:                name,
			NameTaxonomyEntry:   model.RefTo[*model.TaxonomyEntry](entry),
			Unit:                "-",
			Description:         "described",
			TextValue:           "free text",
			Category:            model.CategoryGeneral | model.CategoryLight,
			Propagation:         model.PropagationMixed,
			InstancePropagation: true,
			AllowedOperations:   model.OperationEditValue,
		}
	}
	stamp := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	tests := []struct {
		name string
		run  func(*testing.T)
	}{
		{"string parameter", roundTripCase[model.Parameter](Parameter,
			&model.StringParameter{ParameterBase: base(601, "s"), Value: "a;b\nc"}, targets)},
		{"boolean parameter", roundTripCase[model.Parameter](Parameter,
			&model.BooleanParameter{ParameterBase: base(602, "b"), Value: true}, targets)},
		{"enum parameter", roundTripCase[model.Parameter](Parameter,
			&model.EnumParameter{
				ParameterBase: base(603, "e"),
				Items:         model.RefTo[*model.TaxonomyEntry](items),
				Value:         model.RefTo[*model.TaxonomyEntry](entry),
			}, targets)},
		{"field source", roundTripCase[model.ValueSource](ValueSource,
			&model.Field3DSource{Field: model.RefTo[*model.Field3D](field), X: 1.5, Y: -2, Z: math.Inf(1)}, targets)},
		{"function source", roundTripCase[model.ValueSource](ValueSource,
			&model.FunctionGraphSource{Graph: model.RefTo[*model.FunctionGraph](graph), Function: "f1", X: 0.25, Y: 3}, targets)},
		{"geometric source", roundTripCase[model.ValueSource](ValueSource,
			&model.GeometricSource{
				Property: model.GeometricVolume,
				Filter:   []model.Ref[*model.TaxonomyEntry]{model.RefTo[*model.TaxonomyEntry](entry), model.RefTo[*model.TaxonomyEntry](items)},
			}, targets)},
		{"parameter with geometric source", roundTripCase[model.Parameter](Parameter,
			&model.DoubleParameter{
				ParameterBase: func() model.ParameterBase {
					b := base(604, "area")
					b.ValueSource = &model.GeometricSource{Property: model.GeometricArea}
					return b
				}(),
				Value: 12,
			}, targets)},
		{"geometric relation", roundTripCase[*model.GeometricRelation](GeometricRelation,
			&model.GeometricRelation{
				ID:              ids.New(project, 700),
				RelationType:    model.RefTo[*model.TaxonomyEntry](entry),
				IsAutoGenerated: true,
				Source:          model.GeometryReference{FileID: 3, GeometryID: 1 << 40},
				Target:          model.GeometryReference{FileID: 4, GeometryID: 17},
			}, targets)},
		{"geometry file mapping", roundTripCase[*model.GeometryFileMapping](GeometryFileMapping,
			&model.GeometryFileMapping{FileID: 3, ResourceKey: 12}, nil)},
		{"site planner map", roundTripCase[*model.SitePlannerMap](SitePlannerMap,
			&model.SitePlannerMap{ResourceKey: 5, Elevation: 212.5}, nil)},
		{"site planner building", roundTripCase[*model.SitePlannerBuilding](SitePlannerBuilding,
			&model.SitePlannerBuilding{ResourceKey: 6, CustomColor: 0xFF336699, Offset: model.Point3{X: 1, Y: -2, Z: 0.5}}, nil)},
		{"site planner value mapping", roundTripCase[*model.SitePlannerValueMapping](SitePlannerValueMapping,
			&model.SitePlannerValueMapping{Name: "heat", Mapping: model.RefTo[*model.ValueMapping](mapping)}, targets)},
		{"color marker", roundTripCase[*model.ColorMarker](ColorMarker,
			&model.ColorMarker{Value: -0.5, Color: 0x80FF0000}, nil)},
		{"child project", roundTripCase[*model.ChildProject](ChildProject,
			&model.ChildProject{ProjectID: uuid.MustParse("0b6e2f1a-5c3d-4e8f-9a7b-1c2d3e4f5a6b"), Path: `sub\child project.simultan`}, nil)},
		{"access entry", roundTripCase[*model.AccessEntry](AccessEntry,
			&model.AccessEntry{
				Role:          model.RoleBuildingPhysics,
				Access:        model.AccessRead | model.AccessWrite,
				LastWrite:     stamp,
				LastSupervize: stamp.Add(time.Hour),
			}, nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}

func TestParameter_ValueSource(t *testing.T) {
	table := &model.BigTable{ID: ids.New(project, 40), Name: "t"}
	param := &model.IntegerParameter{
		ParameterBase: model.ParameterBase{
			ID:   ids.New(project, 41),
			Name: "p",
			ValueSource: &model.BigTableSource{
				Table:  model.RefTo[*model.BigTable](table.ID),
				Row:    2,
				Column: 3,
			},
		},
		Value: 7,
	}

	info := descriptor.NewParserInfo(version.Current, project, "test.simdxf")
	if _, err := parse(t, BigTable, write(t, BigTable, table), info); err != nil {
		t.Fatalf("Parse(BigTable) failed: %v", err)
	}
	got, err := parse[model.Parameter](t, Parameter, write[model.Parameter](t, Parameter, param), info)
	if err != nil {
		t.Fatalf("Parse(Parameter) failed: %v", err)
	}
	if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}

	src, ok := got.Base().ValueSource.(*model.BigTableSource)
	if !ok {
		t.Fatalf("ValueSource = %T, want *BigTableSource", got.Base().ValueSource)
	}
	target, ok := resolve.Deref(info.Registry, src.Table)
	if !ok || target.Name != "t" {
		t.Errorf("Deref(Table) = %v, %v", target, ok)
	}
	if src.Row != 2 || src.Column != 3 {
		t.Errorf("source cell = (%d, %d), want (2, 3)", src.Row, src.Column)
	}
}

func TestParameter_LegacyKindIsDouble(t *testing.T) {
	// version 3: untyped parameter, inline value source, no global ids
	stream := pairs(
		0, KindLegacyParameter,
		900, "12",
		1501, "Length",
		1504, "m",
		1507, "0",
		1508, "0",
		1511, "0",
		1520, "0",
		1601, "2,5",
		1602, "0",
		1603, "+Inf",
	)
	info := descriptor.NewParserInfo(3, project, "old.simdxf")
	got, err := parse[model.Parameter](t, Parameter, stream, info)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	p, ok := got.(*model.DoubleParameter)
	if !ok {
		t.Fatalf("Parse() = %T, want *DoubleParameter", got)
	}
	if p.Value != 2.5 || !math.IsInf(p.MaxValue, 1) {
		t.Errorf("values = %v..%v, want 2.5..+Inf", p.Value, p.MaxValue)
	}
	if want := ids.ParameterIDOffset + 12; p.ID.LocalID != uint64(want) {
		t.Errorf("ID = %v, want offset local id %d", p.ID, want)
	}
	if !p.InstancePropagation || p.AllowedOperations != model.OperationAll {
		t.Errorf("defaults not applied: propagation=%v operations=%v", p.InstancePropagation, p.AllowedOperations)
	}
}

// parameterStream writes a double parameter in the layout of fileVersion.
// inline holds the value source fields stored on the record before value
// source blocks, block the nested entity used since.
func parameterStream(fileVersion int, inline, block []any) string {
	kind := KindDoubleParameter
	if fileVersion < version.TypedParameters {
		kind = KindLegacyParameter
	}
	kv := []any{0, kind, 900, "77", 1501, "Parameter X"}
	if fileVersion >= version.TaxonomySlots {
		kv = append(kv, 1502, uuid.Nil.String(), 1503, "0")
	}
	kv = append(kv, 1504, "m²")
	if fileVersion >= version.ParameterDescription {
		kv = append(kv, 1505, "floor area")
	}
	if fileVersion >= version.ParameterTextValue {
		kv = append(kv, 1506, "")
	}
	kv = append(kv, 1507, "1", 1508, "0", 1509, "1")
	if fileVersion >= version.TypedParameters {
		kv = append(kv, 1510, "15")
	}
	kv = append(kv, 1511, "0")
	if fileVersion < version.ValueSourceBlock {
		kv = append(kv, inline...)
	} else {
		kv = append(kv, 1512, "1")
		kv = append(kv, block...)
		kv = append(kv, 0, "SEQEND")
	}
	kv = append(kv, 1601, "45.67", 1602, "-12.3", 1603, "+Inf")
	return pairs(kv...)
}

func TestParameter_SameValueAcrossVersions(t *testing.T) {
	var (
		tableID = ids.New(project, 40)
		fieldID = ids.New(project, 50)
		graphID = ids.New(project, 51)
	)
	sources := []struct {
		name   string
		inline []any
		block  []any
		want   model.ValueSource
	}{
		{
			name:   "table",
			inline: []any{1520, "1", 1521, "40", 1522, "2", 1523, "3", 1524, "0"},
			block:  []any{0, "SOURCE_BIGTABLE", 1701, project.String(), 1702, "40", 1703, "2", 1704, "3"},
			want:   &model.BigTableSource{Table: model.RefTo[*model.BigTable](tableID), Row: 2, Column: 3},
		},
		{
			name:   "field",
			inline: []any{1520, "2", 1521, "50", 1522, "0.5", 1523, "1.5", 1524, "-2"},
			block:  []any{0, "SOURCE_FIELD3D", 1701, project.String(), 1702, "50", 1705, "0.5", 1706, "1.5", 1707, "-2"},
			want:   &model.Field3DSource{Field: model.RefTo[*model.Field3D](fieldID), X: 0.5, Y: 1.5, Z: -2},
		},
		{
			name:   "function",
			inline: []any{1520, "3", 1521, "51", 1522, "4", 1523, "8", 1524, "0"},
			block:  []any{0, "SOURCE_FUNCTION", 1701, project.String(), 1702, "51", 1708, "", 1705, "4", 1706, "8"},
			want:   &model.FunctionGraphSource{Graph: model.RefTo[*model.FunctionGraph](graphID), X: 4, Y: 8},
		},
	}
	versions := []int{
		version.TypedParameters - 1,
		version.TypedParameters,
		version.ParameterDescription,
		version.ValueSourceBlock - 1,
		version.ValueSourceBlock,
		version.ParameterTextValue - 1,
		version.ParameterTextValue,
		version.Current,
	}

	for _, src := range sources {
		for _, v := range versions {
			t.Run(fmt.Sprintf("%s/v%d", src.name, v), func(t *testing.T) {
				info := descriptor.NewParserInfo(v, project, "param.simdxf")
				targets := map[ids.EntityID]any{
					tableID: &model.BigTable{ID: tableID},
					fieldID: &model.Field3D{ID: fieldID},
					graphID: &model.FunctionGraph{ID: graphID},
				}
				for id, target := range targets {
					if _, err := info.Registry.Register(id, target); err != nil {
						t.Fatalf("Register(%v) failed: %v", id, err)
					}
				}

				got, err := parse[model.Parameter](t, Parameter, parameterStream(v, src.inline, src.block), info)
				if err != nil {
					t.Fatalf("Parse() failed: %v", err)
				}
				if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
					t.Fatalf("Unresolved = %v", report.Unresolved)
				}

				want := &model.DoubleParameter{
					ParameterBase: model.ParameterBase{
						ID:                  ids.New(project, 77),
						Name:                "Parameter X",
						Unit:                "m²",
						Category:            model.CategoryGeneral,
						Propagation:         model.PropagationInput,
						InstancePropagation: true,
						AllowedOperations:   model.OperationAll,
						ValueSource:         src.want,
					},
					Value:    45.67,
					MinValue: -12.3,
					MaxValue: math.Inf(1),
				}
				if v >= version.ParameterDescription {
					want.Description = "floor area"
				}
				if diff := cmp.Diff(model.Parameter(want), got, ignoreHandles); diff != "" {
					t.Errorf("parameter mismatch (-want +got):\n%s", diff)
				}

				var target any
				var ok bool
				switch s := got.Base().ValueSource.(type) {
				case *model.BigTableSource:
					target, ok = resolve.Deref(info.Registry, s.Table)
				case *model.Field3DSource:
					target, ok = resolve.Deref(info.Registry, s.Field)
				case *model.FunctionGraphSource:
					target, ok = resolve.Deref(info.Registry, s.Graph)
				}
				if !ok || target == nil {
					t.Errorf("value source target not resolved: %T", got.Base().ValueSource)
				}
			})
		}
	}
}

func TestParameter_LegacyInlineSourceType(t *testing.T) {
	tests := []struct {
		name    string
		inline  []any
		wantErr bool
	}{
		{name: "none", inline: []any{1520, "0"}},
		{name: "unknown type", inline: []any{1520, "7", 1521, "1", 1522, "0", 1523, "0", 1524, "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := descriptor.NewParserInfo(version.ValueSourceBlock-1, project, "param.simdxf")
			got, err := parse[model.Parameter](t, Parameter, parameterStream(version.ValueSourceBlock-1, tt.inline, nil), info)
			if tt.wantErr {
				var fe *dxferrors.FormatError
				if !errors.As(err, &fe) || fe.Type != dxferrors.ErrorTypeStructural {
					t.Fatalf("Parse() error = %v, want structural FormatError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if got.Base().ValueSource != nil {
				t.Errorf("ValueSource = %#v, want nil", got.Base().ValueSource)
			}
		})
	}
}

func TestBigTable_MixedCells(t *testing.T) {
	in := &model.BigTable{
		ID:            ids.New(project, 7),
		Name:          "mixed",
		UnitColumns:   "cols",
		UnitRows:      "rows",
		ColumnHeaders: []model.TableHeader{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}, {Name: "e", Unit: "kg"}},
		RowHeaders:    []model.TableHeader{{Name: "r1"}, {Name: "r2"}, {Name: "r3"}},
		Values: [][]model.Value{
			{model.DoubleValue(1.0), model.IntegerValue(2), model.BooleanValue(true), model.NullValue(), model.StringValue("abc")},
			{model.IntegerValue(-7), model.IntegerValue(8), model.IntegerValue(3), model.DoubleValue(4.0), model.BooleanValue(false)},
			{model.IntegerValue(-1), model.StringValue("a"), model.StringValue("b\n\\\t;\nc"), model.DoubleValue(5.0), model.IntegerValue(6)},
		},
	}

	out, _ := roundTrip[*model.BigTable](t, BigTable, in)
	if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBigTable_LegacyRows(t *testing.T) {
	stream := pairs(
		0, "BIGTABLE",
		900, "3",
		2501, "legacy",
		2502, "",
		2503, "",
		2504, "",
		2505, "",
		2506, "2",
		0, "HEADER", 2511, "x", 2512, "",
		0, "HEADER", 2511, "y", 2512, "",
		0, "SEQEND",
		2507, "1",
		0, "HEADER", 2511, "r", 2512, "",
		0, "SEQEND",
		2508, "1",
		2509, "1.5;-2",
		0, "SEQEND",
	)
	info := descriptor.NewParserInfo(version.TypedTableCells-1, project, "old.simdxf")
	got, err := parse(t, BigTable, stream, info)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	want := [][]model.Value{{model.DoubleValue(1.5), model.DoubleValue(-2)}}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestOversizedListCountIsStructural(t *testing.T) {
	header := []any{0, "HEADER", 2511, "x", 2512, ""}
	table := func(columns, rows string) string {
		kv := []any{0, "BIGTABLE", 900, "3", 2501, "t", 2502, "", 2503, "", 2504, "", 2505, "", 2506, columns}
		kv = append(kv, header...)
		kv = append(kv, 0, "SEQEND", 2507, "1")
		kv = append(kv, header...)
		kv = append(kv, 0, "SEQEND", 2508, rows, 2509, "d:1", 0, "SEQEND")
		return pairs(kv...)
	}

	tests := []struct {
		name  string
		parse func(info *descriptor.ParserInfo) error
	}{
		{
			name: "value list",
			parse: func(info *descriptor.ParserInfo) error {
				_, err := parse(t, BigTable, table("9223372036854775807", "1"), info)
				return err
			},
		},
		{
			name: "table rows",
			parse: func(info *descriptor.ParserInfo) error {
				_, err := parse(t, BigTable, table("1", "1000000000"), info)
				return err
			},
		},
		{
			name: "child list",
			parse: func(info *descriptor.ParserInfo) error {
				stream := pairs(0, "FLOWNETWORK", 900, "1", 2001, "", 2002, "", 2003, "0", 2004, "0", 2005, "1",
					2006, "9223372036854775807", 0, "SEQEND")
				_, err := parse(t, FlowNetwork, stream, info)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := descriptor.NewParserInfo(version.Current, project, "big.simdxf")
			err := tt.parse(info)
			var fe *dxferrors.FormatError
			if !errors.As(err, &fe) || fe.Type != dxferrors.ErrorTypeStructural {
				t.Fatalf("Parse() error = %v, want structural FormatError", err)
			}
		})
	}
}

func TestBigTable_RaggedRowIsStructural(t *testing.T) {
	in := &model.BigTable{
		ID:            ids.New(project, 9),
		ColumnHeaders: []model.TableHeader{{Name: "a"}, {Name: "b"}},
		RowHeaders:    []model.TableHeader{{Name: "r"}},
		Values:        [][]model.Value{{model.IntegerValue(1)}},
	}
	info := descriptor.NewParserInfo(version.Current, project, "test.simdxf")
	_, err := parse(t, BigTable, write(t, BigTable, in), info)
	var fe *dxferrors.FormatError
	if !errors.As(err, &fe) || fe.Type != dxferrors.ErrorTypeStructural {
		t.Fatalf("Parse() error = %v, want structural FormatError", err)
	}
}

func TestComponent_TreeRoundTrip(t *testing.T) {
	slot := &model.TaxonomyEntry{ID: ids.New(project, 500), Key: "cost"}
	param := &model.DoubleParameter{
		ParameterBase: model.ParameterBase{
			ID: ids.New(project, 20), Name: "A", InstancePropagation: true, AllowedOperations: model.OperationAll,
		},
		Value: 1,
	}
	child := &model.Component{
		ID:    ids.New(project, 11),
		Name:  "child",
		Slots: []model.TaxonomySlot{{Entry: model.RefTo[*model.TaxonomyEntry](slot.ID)}},
	}
	in := &model.Component{
		ID:         ids.New(project, 10),
		Name:       "root",
		Visibility: model.VisibilityAlwaysVisible,
		Slots:      []model.TaxonomySlot{{Entry: model.RefTo[*model.TaxonomyEntry](slot.ID)}},
		Parameters: []model.Parameter{param},
		Calculations: []*model.Calculation{{
			ID:         ids.New(project, 30),
			Name:       "double it",
			Expression: "a*2",
			Inputs:     []model.CalculationBinding{{Symbol: "a", Parameter: model.RefTo[model.Parameter](param.ID)}},
			Returns:    []model.CalculationBinding{{Symbol: "out", Parameter: model.RefTo[model.Parameter](param.ID)}},
		}},
		Children: []*model.ChildComponentSlot{{
			Slot:      model.TaxonomySlot{Entry: model.RefTo[*model.TaxonomyEntry](slot.ID)},
			Extension: "0",
			Component: child,
		}},
		References: []*model.ReferenceSlot{{
			Slot:      model.TaxonomySlot{Entry: model.RefTo[*model.TaxonomyEntry](slot.ID)},
			Extension: "1",
			Target:    model.RefTo[*model.Component](child.ID),
		}},
		Instances: []*model.Instance{{
			ID:               ids.New(project, 40),
			Name:             "placed",
			PropagateChanges: true,
			Placements:       []model.Placement{&model.GeometryPlacement{FileID: 2, GeometryID: 17}},
			ParameterValues: []model.InstanceParameterValue{
				{Parameter: model.RefTo[model.Parameter](param.ID), Value: model.DoubleValue(3.5)},
			},
		}},
		ChatItems: []*model.ChatItem{{
			Message:          "check this",
			ExpectsResponses: []model.UserRole{model.RoleArchitecture, model.RoleFireSafety},
			Replies:          []*model.ChatItem{{Message: "done"}},
		}},
	}

	info := descriptor.NewParserInfo(version.Current, project, "test.simdxf")
	taxonomy := &model.Taxonomy{ID: ids.New(project, 499), Key: "slots", Entries: []*model.TaxonomyEntry{slot}}
	if _, err := parse(t, Taxonomy, write(t, Taxonomy, taxonomy), info); err != nil {
		t.Fatalf("Parse(Taxonomy) failed: %v", err)
	}
	out, err := parse(t, Component, write(t, Component, in), info)
	if err != nil {
		t.Fatalf("Parse(Component) failed: %v", err)
	}
	report := info.Registry.Resolve()
	if len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}
	if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	target, ok := resolve.Deref(info.Registry, out.References[0].Target)
	if !ok || target != out.Children[0].Component {
		t.Errorf("reference target = %v, %v, want the child component", target, ok)
	}
	bound, ok := resolve.Deref(info.Registry, out.Calculations[0].Inputs[0].Parameter)
	if !ok || bound != out.Parameters[0] {
		t.Errorf("calculation input = %v, %v, want parameter A", bound, ok)
	}
}

func TestComponent_LegacySlotName(t *testing.T) {
	stream := pairs(
		0, "COMPONENT",
		900, "4",
		1001, "old",
		1002, "",
		1003, "0",
		1005, "0",
		1011, "Kosten",
		1020, "0", 0, "SEQEND",
		1021, "0", 0, "SEQEND",
		1022, "0", 0, "SEQEND",
		1023, "0", 0, "SEQEND",
		1024, "0", 0, "SEQEND",
	)
	got, err := parse(t, Component, stream, descriptor.NewParserInfo(3, project, "old.simdxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	want := []model.TaxonomySlot{{LegacyName: "Kosten"}}
	if diff := cmp.Diff(want, got.Slots, ignoreHandles); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
	if got.Visibility != model.VisibilityVisibleInProject {
		t.Errorf("Visibility = %v, want default", got.Visibility)
	}
}

func TestFlowNetwork_EntryAndExit(t *testing.T) {
	n1 := &model.FlowNode{ID: ids.New(project, 101), Name: "in"}
	n2 := &model.FlowNode{ID: ids.New(project, 102), Name: "out"}
	in := &model.FlowNetwork{
		ID:         ids.New(project, 100),
		Name:       "heating",
		IsDirected: true,
		Nodes:      []*model.FlowNode{n1, n2},
		Edges: []*model.FlowEdge{{
			ID:    ids.New(project, 103),
			Start: model.RefTo[model.FlowElement](n1.ID),
			End:   model.RefTo[model.FlowElement](n2.ID),
		}},
		EntryNode: model.RefTo[model.FlowElement](n1.ID),
		ExitNode:  model.RefTo[model.FlowElement](n2.ID),
	}

	out, info := roundTrip[*model.FlowNetwork](t, FlowNetwork, in)
	if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	entry, ok := resolve.Deref(info.Registry, out.EntryNode)
	if !ok || entry != model.FlowElement(out.Nodes[0]) {
		t.Errorf("EntryNode = %v, %v", entry, ok)
	}
}

func TestFlowNetwork_LegacyScopedIDs(t *testing.T) {
	node := func(id string) []any {
		return []any{0, "FLOWNODE", 900, id, 2001, "", 2002, "", 2003, "0", 2004, "0"}
	}
	network := func(id string) []any {
		kv := []any{0, "FLOWNETWORK", 900, id, 2001, "", 2002, "", 2003, "0", 2004, "0", 2005, "1", 2006, "1"}
		kv = append(kv, node("1")...)
		kv = append(kv, 0, "SEQEND", 2007, "0", 0, "SEQEND", 2008, "0", 0, "SEQEND", 2009, project.String(), 2010, "1", 2011, project.String(), 2012, "1")
		return kv
	}

	info := descriptor.NewParserInfo(version.NetworkGlobalIDs-1, project, "old.simdxf")
	a, err := parse(t, FlowNetwork, pairs(network("1")...), info)
	if err != nil {
		t.Fatalf("Parse(a) failed: %v", err)
	}
	b, err := parse(t, FlowNetwork, pairs(network("2")...), info)
	if err != nil {
		t.Fatalf("Parse(b) failed: %v", err)
	}
	if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}
	if a.Nodes[0].ID == b.Nodes[0].ID {
		t.Errorf("nodes numbered 1 in different networks share id %v", a.Nodes[0].ID)
	}
	entry, ok := resolve.Deref(info.Registry, b.EntryNode)
	if !ok || entry != model.FlowElement(b.Nodes[0]) {
		t.Errorf("EntryNode of b = %v, %v, want b's own node", entry, ok)
	}
}

func TestFlowNetwork_LegacyNestedScopes(t *testing.T) {
	network := func(id string, subnetworks ...[]any) []any {
		kv := []any{0, "FLOWNETWORK", 900, id, 2001, "net " + id, 2002, "", 2003, "0", 2004, "0", 2005, "1",
			2006, "1", 0, "FLOWNODE", 900, "0", 2001, "", 2002, "", 2003, "0", 2004, "0", 0, "SEQEND",
			2007, "0", 0, "SEQEND", 2008, strconv.Itoa(len(subnetworks))}
		for _, sub := range subnetworks {
			kv = append(kv, sub...)
		}
		return append(kv, 0, "SEQEND", 2009, project.String(), 2010, "0", 2011, project.String(), 2012, "0")
	}

	info := descriptor.NewParserInfo(version.NetworkGlobalIDs-1, project, "old.simdxf")
	outer, err := parse(t, FlowNetwork, pairs(network("1", network("3"))...), info)
	if err != nil {
		t.Fatalf("Parse(outer) failed: %v", err)
	}
	top, err := parse(t, FlowNetwork, pairs(network("3")...), info)
	if err != nil {
		t.Fatalf("Parse(top) failed: %v", err)
	}
	if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}

	sub := outer.Subnetworks[0]
	if sub.ID == top.ID {
		t.Errorf("sub network 3 and top-level network 3 share id %v", sub.ID)
	}
	if sub.Nodes[0].ID == top.Nodes[0].ID {
		t.Errorf("node 0 of both networks 3 shares id %v", sub.Nodes[0].ID)
	}
	for _, n := range []*model.FlowNetwork{outer, sub, top} {
		entry, ok := resolve.Deref(info.Registry, n.EntryNode)
		if !ok || entry != model.FlowElement(n.Nodes[0]) {
			t.Errorf("EntryNode of %s = %v, %v, want its own node", n.Name, entry, ok)
		}
	}
}

func TestNetworkPlacement_LegacyNetworkNumber(t *testing.T) {
	network := []any{0, "FLOWNETWORK", 900, "4", 2001, "n", 2002, "", 2003, "0", 2004, "0", 2005, "1",
		2006, "1", 0, "FLOWNODE", 900, "2", 2001, "node", 2002, "", 2003, "0", 2004, "0", 0, "SEQEND",
		2007, "0", 0, "SEQEND", 2008, "0", 0, "SEQEND",
		2009, project.String(), 2010, "2", 2011, project.String(), 2012, "2"}
	placement := []any{0, "PLACEMENT_NETWORK", 1907, "4", 1905, project.String(), 1906, "2"}

	info := descriptor.NewParserInfo(version.NetworkGlobalIDs-1, project, "old.simdxf")
	// placements are read before the networks they point into
	p, err := parse[model.Placement](t, Placement, pairs(placement...), info)
	if err != nil {
		t.Fatalf("Parse(placement) failed: %v", err)
	}
	n, err := parse(t, FlowNetwork, pairs(network...), info)
	if err != nil {
		t.Fatalf("Parse(network) failed: %v", err)
	}
	info.RunLater()
	if report := info.Registry.Resolve(); len(report.Unresolved) != 0 {
		t.Fatalf("Unresolved = %v", report.Unresolved)
	}

	np, ok := p.(*model.NetworkPlacement)
	if !ok {
		t.Fatalf("placement = %T, want *NetworkPlacement", p)
	}
	target, ok := resolve.Deref(info.Registry, np.Element)
	if !ok || target != model.FlowElement(n.Nodes[0]) {
		t.Errorf("Element = %v, %v, want node of network 4", target, ok)
	}
}

func TestSimNetwork_RoundTrip(t *testing.T) {
	out1 := &model.SimNetworkPort{ID: ids.New(project, 201), Name: "o", PortType: model.PortOutput}
	in1 := &model.SimNetworkPort{ID: ids.New(project, 202), Name: "i"}
	in := &model.SimNetwork{
		ID:    ids.New(project, 200),
		Name:  "sim",
		Color: 0xFF00FF00,
		Blocks: []*model.SimNetworkBlock{
			{ID: ids.New(project, 210), Name: "a", Ports: []*model.SimNetworkPort{out1}},
			{ID: ids.New(project, 211), Name: "b", Ports: []*model.SimNetworkPort{in1}},
		},
		Connectors: []*model.SimNetworkConnector{{
			ID:       ids.New(project, 220),
			Source:   model.RefTo[*model.SimNetworkPort](out1.ID),
			Target:   model.RefTo[*model.SimNetworkPort](in1.ID),
			Geometry: []model.Point2{{X: 1, Y: 2}, {X: 3.5, Y: -4}},
		}},
	}
	out, _ := roundTrip[*model.SimNetwork](t, SimNetwork, in)
	if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTaxonomy_LegacyLocalization(t *testing.T) {
	stream := pairs(
		0, "TAXONOMY",
		900, "1",
		2201, "slots",
		2203, "Slots",
		2204, "component slots",
		2205, "1",
		2206, "0",
		2207, "1",
		0, "TAXONOMY_ENTRY",
		900, "2",
		2201, "cost",
		2203, "Kosten",
		2204, "",
		2208, "0",
		0, "SEQEND",
		0, "SEQEND",
	)
	got, err := parse(t, Taxonomy, stream, descriptor.NewParserInfo(version.TaxonomyLocalization-1, project, "old.simdxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if name := got.Localization.Localize("de").Name; name != "Slots" {
		t.Errorf("Localize(de).Name = %q, want invariant fallback", name)
	}
	if e := got.FindEntry("Kosten"); e == nil || e.Key != "cost" {
		t.Errorf("FindEntry(Kosten) = %v", e)
	}
}

func TestResource_TreeRoundTrip(t *testing.T) {
	in := []model.ResourceEntry{
		&model.ResourceDirectory{
			ResourceBase: model.ResourceBase{Key: 1, Name: "docs", Visibility: model.ResourceVisibleToOwner},
			Children: []model.ResourceEntry{
				&model.ContainedResourceFile{ResourceBase: model.ResourceBase{Key: 2, Name: "a.simgeo"}},
				&model.LinkedResourceFile{ResourceBase: model.ResourceBase{Key: 3, Name: "b.pdf"}, Path: "../shared/b.pdf"},
			},
		},
	}
	for _, e := range in {
		out, _ := roundTrip[model.ResourceEntry](t, Resource, e)
		if diff := cmp.Diff(e, out); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

type mapResolver map[string]string

func (m mapResolver) ResolveLinked(path string) (string, bool) {
	p, ok := m[path]
	return p, ok
}

func TestLinkedResource_ResolvedWhileReading(t *testing.T) {
	in := &model.LinkedResourceFile{ResourceBase: model.ResourceBase{Key: 3}, Path: "b.pdf"}
	info := descriptor.NewParserInfo(version.Current, project, "test.simdxf")
	info.Assets = mapResolver{"b.pdf": "/data/b.pdf"}
	got, err := parse[model.ResourceEntry](t, Resource, write[model.ResourceEntry](t, Resource, in), info)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if p := got.(*model.LinkedResourceFile).ResolvedPath; p != "/data/b.pdf" {
		t.Errorf("ResolvedPath = %q", p)
	}
}

func TestField3D_SampleCountChecked(t *testing.T) {
	in := &model.Field3D{
		ID:     ids.New(project, 60),
		AxisX:  []float64{0, 1},
		AxisY:  []float64{0},
		AxisZ:  []float64{0, 1, 2},
		Values: []float64{1, 2, 3, 4, 5, 6},
	}
	out, _ := roundTrip[*model.Field3D](t, Field3D, in)
	if got := out.At(1, 0, 2); got != 6 {
		t.Errorf("At(1, 0, 2) = %v, want 6", got)
	}

	in.Values = in.Values[:5]
	_, err := parse(t, Field3D, write(t, Field3D, in), descriptor.NewParserInfo(version.Current, project, "test.simdxf"))
	var fe *dxferrors.FormatError
	if !errors.As(err, &fe) || fe.Type != dxferrors.ErrorTypeStructural {
		t.Errorf("Parse() error = %v, want structural FormatError", err)
	}
}

func TestFunctionGraph_LegacyRanges(t *testing.T) {
	stream := pairs(
		0, "FUNCTIONGRAPH",
		900, "70",
		2701, "g", 2702, "", 2703, "", 2704, "", 2705, "",
		2710, "1",
		0, "FUNCTION", 2711, "f", 2712, "0;1;0;4;-2;0",
		0, "SEQEND",
	)
	got, err := parse(t, FunctionGraph, stream, descriptor.NewParserInfo(version.FunctionGraphRanges-1, project, "old.simdxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got.RangeX != (model.Range{Min: 0, Max: 4}) || got.RangeY != (model.Range{Min: -2, Max: 1}) {
		t.Errorf("ranges = %v %v", got.RangeX, got.RangeY)
	}
}

func TestGeoMap_LegacyFixedReferences(t *testing.T) {
	ref := func(x string) []any {
		return []any{0, "GEOREF", 3311, x, 3312, "0", 3313, "16.37", 3314, "48.2", 3315, "0"}
	}
	kv := []any{0, "GEOMAP", 3301, "5"}
	kv = append(kv, ref("0")...)
	kv = append(kv, ref("100")...)
	got, err := parse(t, GeoMap, pairs(kv...), descriptor.NewParserInfo(version.GeoReferences-1, project, "old.gmdxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(got.GeoReferences) != 2 || got.GeoReferences[1].ImagePosition.X != 100 {
		t.Errorf("GeoReferences = %+v", got.GeoReferences)
	}
}

func TestSitePlanner_DefaultActiveMapping(t *testing.T) {
	stream := pairs(
		0, "SITEPLANNER",
		3201, "1", 0, "SP_MAP", 3211, "4", 3212, "120.5", 0, "SEQEND",
		3202, "0", 0, "SEQEND",
	)
	got, err := parse(t, SitePlannerProject, stream, descriptor.NewParserInfo(version.SitePlannerMappings-1, project, "old.spdxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got.ActiveValueMapping != -1 {
		t.Errorf("ActiveValueMapping = %d, want -1", got.ActiveValueMapping)
	}
}

func TestLinkedFile_LegacyMachineNameIsHashed(t *testing.T) {
	stream := pairs(0, "LINK", 3604, "ws-042", 3602, "3", 3603, "C:/shared/b.pdf")
	got, err := parse(t, LinkedFile, stream, descriptor.NewParserInfo(version.MachineHashes-1, project, "old.dxf"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got.MachineHash != MachineHash("WS-042") {
		t.Errorf("MachineHash = %q, want hash of the upper cased name", got.MachineHash)
	}
	if strings.Contains(write(t, LinkedFile, got), "ws-042") {
		t.Error("machine name written in clear text")
	}
}

func TestExcelTool_RoundTrip(t *testing.T) {
	in := &model.ExcelTool{
		ID:   ids.New(project, 80),
		Name: "costs",
		InputRules: []*model.ExcelMappingRule{{
			Name:       "components",
			SheetName:  "Input",
			Properties: []string{"Name", "Description"},
			Children:   []*model.ExcelMappingRule{{Name: "params", Subject: model.SubjectParameter}},
		}},
		OutputRules: []*model.ExcelUnmappingRule{{
			Name:  "result",
			Range: model.ExcelRange{Sheet: "Output", Row: 1, Column: 2, RowCount: 1, ColumnCount: 1},
		}},
		OutputRanges: []model.ExcelRange{{Sheet: "Output", RowCount: 3, ColumnCount: 3}},
	}
	out, _ := roundTrip[*model.ExcelTool](t, ExcelTool, in)
	if diff := cmp.Diff(in, out, ignoreHandles); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
