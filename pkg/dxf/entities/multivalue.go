package entities

import (
	"fmt"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeTableName           codec.Code = 2501
	codeTableDescription    codec.Code = 2502
	codeTableUnitColumns    codec.Code = 2503
	codeTableUnitRows       codec.Code = 2504
	codeTableAdditionalInfo codec.Code = 2505
	codeTableColumnHeaders  codec.Code = 2506
	codeTableRowHeaders     codec.Code = 2507
	codeTableRows           codec.Code = 2508
	codeTableRow            codec.Code = 2509
	codeHeaderName          codec.Code = 2511
	codeHeaderUnit          codec.Code = 2512
	codeFieldName           codec.Code = 2601
	codeFieldDescription    codec.Code = 2602
	codeFieldUnitX          codec.Code = 2603
	codeFieldUnitY          codec.Code = 2604
	codeFieldUnitZ          codec.Code = 2605
	codeFieldInterpolate    codec.Code = 2606
	codeFieldAxisX          codec.Code = 2607
	codeFieldAxisY          codec.Code = 2608
	codeFieldAxisZ          codec.Code = 2609
	codeFieldValues         codec.Code = 2610
	codeGraphName           codec.Code = 2701
	codeGraphDescription    codec.Code = 2702
	codeGraphUnitX          codec.Code = 2703
	codeGraphUnitY          codec.Code = 2704
	codeGraphUnitZ          codec.Code = 2705
	codeGraphRangeXMin      codec.Code = 2706
	codeGraphRangeXMax      codec.Code = 2707
	codeGraphRangeYMin      codec.Code = 2708
	codeGraphRangeYMax      codec.Code = 2709
	codeGraphFunctions      codec.Code = 2710
	codeFunctionName        codec.Code = 2711
	codeFunctionPoints      codec.Code = 2712
)

// TableHeader describes model.TableHeader.
var TableHeader = &descriptor.Entity[model.TableHeader]{
	Kind: "HEADER",
	Fields: []*descriptor.Field[model.TableHeader]{
		descriptor.String("Name", codeHeaderName, func(h *model.TableHeader) *string { return &h.Name }),
		descriptor.String("Unit", codeHeaderUnit, func(h *model.TableHeader) *string { return &h.Unit }),
	},
}

// tableRows stores one list-valued pair per row inside a counted list.
func tableRows() *descriptor.Field[model.BigTable] {
	read := func(parse func(string) ([]model.Value, error)) descriptor.ReadFunc[model.BigTable] {
		return func(s *descriptor.State[model.BigTable]) error {
			n, err := s.C.BeginList(codeTableRows, "Values")
			if err != nil {
				return err
			}
			var rows [][]model.Value
			if n > 0 {
				rows = make([][]model.Value, 0, descriptor.Capacity(n))
			}
			for i := 0; i < n; i++ {
				p, err := s.C.ExpectRaw(codeTableRow)
				if err != nil {
					return err
				}
				row, err := parse(p.Value)
				if err != nil {
					return lexicalAt(s.C, p.Location, fmt.Sprintf("row %d of typed cells", i), err)
				}
				rows = append(rows, row)
			}
			s.E.Values = rows
			return s.C.EndList()
		}
	}
	write := func(w *cursor.Writer, t *model.BigTable, _ *descriptor.WriterInfo) error {
		if err := w.BeginList(codeTableRows, "Values", len(t.Values)); err != nil {
			return err
		}
		for _, row := range t.Values {
			w.Raw(codeTableRow, FormatRow(row))
		}
		return w.EndList()
	}
	return descriptor.Custom("Values", codeTableRows, read(ParseRow), write).
		Legacy(version.TypedTableCells, read(ParseLegacyRow))
}

// BigTable describes model.BigTable.
var BigTable = &descriptor.Entity[model.BigTable]{
	Kind:   "BIGTABLE",
	IDKind: ids.KindBigTable,
	Name:   func(t *model.BigTable) string { return t.Name },
	Fields: []*descriptor.Field[model.BigTable]{
		descriptor.OwnID("ID", CodeID, ids.KindBigTable, func(t *model.BigTable) *ids.EntityID { return &t.ID }),
		descriptor.String("Name", codeTableName, func(t *model.BigTable) *string { return &t.Name }),
		descriptor.String("Description", codeTableDescription, func(t *model.BigTable) *string { return &t.Description }),
		descriptor.String("UnitColumns", codeTableUnitColumns, func(t *model.BigTable) *string { return &t.UnitColumns }),
		descriptor.String("UnitRows", codeTableUnitRows, func(t *model.BigTable) *string { return &t.UnitRows }),
		descriptor.String("AdditionalInfo", codeTableAdditionalInfo, func(t *model.BigTable) *string { return &t.AdditionalInfo }),
		descriptor.Values("ColumnHeaders", codeTableColumnHeaders, TableHeader, func(t *model.BigTable) *[]model.TableHeader { return &t.ColumnHeaders }),
		descriptor.Values("RowHeaders", codeTableRowHeaders, TableHeader, func(t *model.BigTable) *[]model.TableHeader { return &t.RowHeaders }),
		tableRows(),
	},
	Finish: func(t *model.BigTable, _ *descriptor.ParserInfo) error {
		if len(t.RowHeaders) != len(t.Values) {
			return fmt.Errorf("big table %q: %d row headers for %d rows", t.Name, len(t.RowHeaders), len(t.Values))
		}
		for i, row := range t.Values {
			if len(row) != len(t.ColumnHeaders) {
				return fmt.Errorf("big table %q: row %d has %d cells for %d columns", t.Name, i, len(row), len(t.ColumnHeaders))
			}
		}
		return nil
	},
}

// Field3D describes model.Field3D.
var Field3D = &descriptor.Entity[model.Field3D]{
	Kind:   "FIELD3D",
	IDKind: ids.KindField3D,
	Name:   func(f *model.Field3D) string { return f.Name },
	Fields: []*descriptor.Field[model.Field3D]{
		descriptor.OwnID("ID", CodeID, ids.KindField3D, func(f *model.Field3D) *ids.EntityID { return &f.ID }),
		descriptor.String("Name", codeFieldName, func(f *model.Field3D) *string { return &f.Name }),
		descriptor.String("Description", codeFieldDescription, func(f *model.Field3D) *string { return &f.Description }),
		descriptor.String("UnitX", codeFieldUnitX, func(f *model.Field3D) *string { return &f.UnitX }),
		descriptor.String("UnitY", codeFieldUnitY, func(f *model.Field3D) *string { return &f.UnitY }),
		descriptor.String("UnitZ", codeFieldUnitZ, func(f *model.Field3D) *string { return &f.UnitZ }),
		descriptor.Bool("CanInterpolate", codeFieldInterpolate, func(f *model.Field3D) *bool { return &f.CanInterpolate }),
		descriptor.DoubleList("AxisX", codeFieldAxisX, func(f *model.Field3D) *[]float64 { return &f.AxisX }),
		descriptor.DoubleList("AxisY", codeFieldAxisY, func(f *model.Field3D) *[]float64 { return &f.AxisY }),
		descriptor.DoubleList("AxisZ", codeFieldAxisZ, func(f *model.Field3D) *[]float64 { return &f.AxisZ }),
		descriptor.Custom("Values", codeFieldValues,
			func(s *descriptor.State[model.Field3D]) error {
				loc := s.C.Location()
				items, err := s.C.ExpectList(codeFieldValues)
				if err != nil {
					return err
				}
				vs, err := descriptor.ParseDoubles(items)
				if err != nil {
					return lexicalAt(s.C, loc, "list of doubles", err)
				}
				f := s.E
				if want := len(f.AxisX) * len(f.AxisY) * len(f.AxisZ); len(vs) != want {
					return s.C.Structural(fmt.Sprintf("%d samples", want), fmt.Sprintf("%d samples", len(vs)))
				}
				f.Values = vs
				return nil
			},
			func(w *cursor.Writer, f *model.Field3D, _ *descriptor.WriterInfo) error {
				return w.List(codeFieldValues, descriptor.FormatDoubles(f.Values))
			}),
	},
}

// GraphFunction describes model.GraphFunction.
var GraphFunction = &descriptor.Entity[model.GraphFunction]{
	Kind: "FUNCTION",
	Name: func(f *model.GraphFunction) string { return f.Name },
	Fields: []*descriptor.Field[model.GraphFunction]{
		descriptor.String("Name", codeFunctionName, func(f *model.GraphFunction) *string { return &f.Name }),
		pointList("Points", codeFunctionPoints, 3,
			func(f *model.GraphFunction) []float64 {
				out := make([]float64, 0, 3*len(f.Points))
				for _, p := range f.Points {
					out = append(out, p.X, p.Y, p.Z)
				}
				return out
			},
			func(f *model.GraphFunction, vs []float64) {
				f.Points = nil
				for i := 0; i+2 < len(vs); i += 3 {
					f.Points = append(f.Points, model.Point3{X: vs[i], Y: vs[i+1], Z: vs[i+2]})
				}
			}),
	},
}

// FunctionGraph describes model.FunctionGraph. Files before explicit
// ranges get ranges spanning all points.
var FunctionGraph = &descriptor.Entity[model.FunctionGraph]{
	Kind:   "FUNCTIONGRAPH",
	IDKind: ids.KindFunctionGraph,
	Name:   func(g *model.FunctionGraph) string { return g.Name },
	Fields: []*descriptor.Field[model.FunctionGraph]{
		descriptor.OwnID("ID", CodeID, ids.KindFunctionGraph, func(g *model.FunctionGraph) *ids.EntityID { return &g.ID }),
		descriptor.String("Name", codeGraphName, func(g *model.FunctionGraph) *string { return &g.Name }),
		descriptor.String("Description", codeGraphDescription, func(g *model.FunctionGraph) *string { return &g.Description }),
		descriptor.String("UnitX", codeGraphUnitX, func(g *model.FunctionGraph) *string { return &g.UnitX }),
		descriptor.String("UnitY", codeGraphUnitY, func(g *model.FunctionGraph) *string { return &g.UnitY }),
		descriptor.String("UnitZ", codeGraphUnitZ, func(g *model.FunctionGraph) *string { return &g.UnitZ }),
		rangeField("RangeX", codeGraphRangeXMin, codeGraphRangeXMax, func(g *model.FunctionGraph) *model.Range { return &g.RangeX }).
			Since(version.FunctionGraphRanges),
		rangeField("RangeY", codeGraphRangeYMin, codeGraphRangeYMax, func(g *model.FunctionGraph) *model.Range { return &g.RangeY }).
			Since(version.FunctionGraphRanges),
		descriptor.Values("Functions", codeGraphFunctions, GraphFunction, func(g *model.FunctionGraph) *[]model.GraphFunction { return &g.Functions }),
	},
	Finish: func(g *model.FunctionGraph, info *descriptor.ParserInfo) error {
		if info.FileVersion < version.FunctionGraphRanges {
			g.RangeX, g.RangeY = pointBounds(g.Functions)
		}
		return nil
	},
}

func pointBounds(fns []model.GraphFunction) (x, y model.Range) {
	first := true
	for _, fn := range fns {
		for _, p := range fn.Points {
			if first {
				x = model.Range{Min: p.X, Max: p.X}
				y = model.Range{Min: p.Y, Max: p.Y}
				first = false
				continue
			}
			x.Min, x.Max = min(x.Min, p.X), max(x.Max, p.X)
			y.Min, y.Max = min(y.Min, p.Y), max(y.Max, p.Y)
		}
	}
	return x, y
}
