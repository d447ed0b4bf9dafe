package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeParamName           codec.Code = 1501
	codeParamNameEntryGUID  codec.Code = 1502
	codeParamNameEntryLocal codec.Code = 1503
	codeParamUnit           codec.Code = 1504
	codeParamDescription    codec.Code = 1505
	codeParamTextValue      codec.Code = 1506
	codeParamCategory       codec.Code = 1507
	codeParamPropagation    codec.Code = 1508
	codeParamInstancePropag codec.Code = 1509
	codeParamOperations     codec.Code = 1510
	codeParamAutoGenerated  codec.Code = 1511
	codeParamValueSource    codec.Code = 1512
	codeParamValue          codec.Code = 1601
	codeParamMin            codec.Code = 1602
	codeParamMax            codec.Code = 1603
	codeParamItemsGUID      codec.Code = 1604
	codeParamItemsLocal     codec.Code = 1605
	codeParamEnumValueGUID  codec.Code = 1606
	codeParamEnumValueLocal codec.Code = 1607
	codeLegacySourceType    codec.Code = 1520
	codeLegacySourceTarget  codec.Code = 1521
	codeLegacySourceA       codec.Code = 1522
	codeLegacySourceB       codec.Code = 1523
	codeLegacySourceC       codec.Code = 1524
	codeSourceTargetGUID    codec.Code = 1701
	codeSourceTargetLocal   codec.Code = 1702
	codeSourceRow           codec.Code = 1703
	codeSourceColumn        codec.Code = 1704
	codeSourceX             codec.Code = 1705
	codeSourceY             codec.Code = 1706
	codeSourceZ             codec.Code = 1707
	codeSourceFunction      codec.Code = 1708
	codeSourceProperty      codec.Code = 1709
	codeSourceFilterCount   codec.Code = 1710
	codeSourceFilterGUID    codec.Code = 1711
	codeSourceFilterLocal   codec.Code = 1712
)

// Entity kinds of the parameter variants. Files before typed parameters
// only know KindLegacyParameter, which is read as a double parameter.
const (
	KindDoubleParameter  = "PARAMETER_DOUBLE"
	KindIntegerParameter = "PARAMETER_INT"
	KindStringParameter  = "PARAMETER_STRING"
	KindBooleanParameter = "PARAMETER_BOOL"
	KindEnumParameter    = "PARAMETER_ENUM"
	KindLegacyParameter  = "PARAMETER"
)

// legacy inline value source types
const (
	legacySourceNone     = 0
	legacySourceTable    = 1
	legacySourceField    = 2
	legacySourceFunction = 3
)

// parameterFields returns the fields of ParameterBase for a variant.
func parameterFields[T any](base func(*T) *model.ParameterBase) []*descriptor.Field[T] {
	return []*descriptor.Field[T]{
		descriptor.OwnID("ID", CodeID, ids.KindParameter, func(e *T) *ids.EntityID { return &base(e).ID }),
		descriptor.String("Name", codeParamName, func(e *T) *string { return &base(e).Name }),
		descriptor.Ref("NameTaxonomyEntry", codeParamNameEntryGUID, codeParamNameEntryLocal, ids.KindTaxonomyEntry,
			func(e *T) *model.Ref[*model.TaxonomyEntry] { return &base(e).NameTaxonomyEntry }).
			Since(version.TaxonomySlots),
		descriptor.String("Unit", codeParamUnit, func(e *T) *string { return &base(e).Unit }),
		descriptor.String("Description", codeParamDescription, func(e *T) *string { return &base(e).Description }).
			Since(version.ParameterDescription),
		descriptor.String("TextValue", codeParamTextValue, func(e *T) *string { return &base(e).TextValue }).
			Since(version.ParameterTextValue),
		descriptor.Flags("Category", codeParamCategory, func(e *T) *model.Category { return &base(e).Category }),
		descriptor.Enum("Propagation", codeParamPropagation, func(e *T) *model.Propagation { return &base(e).Propagation }),
		descriptor.Bool("InstancePropagation", codeParamInstancePropag, func(e *T) *bool { return &base(e).InstancePropagation }).
			Since(version.InstancePropagation).
			Default(func(e *T) { base(e).InstancePropagation = true }),
		descriptor.Flags("AllowedOperations", codeParamOperations, func(e *T) *model.Operations { return &base(e).AllowedOperations }).
			Since(version.TypedParameters).
			Default(func(e *T) { base(e).AllowedOperations = model.OperationAll }),
		descriptor.Bool("IsAutoGenerated", codeParamAutoGenerated, func(e *T) *bool { return &base(e).IsAutoGenerated }),
		descriptor.Single("ValueSource", codeParamValueSource, descriptor.Codec[model.ValueSource](ValueSource),
			func(e *T) *model.ValueSource { return &base(e).ValueSource }).
			Legacy(version.ValueSourceBlock, func(s *descriptor.State[T]) error {
				return readInlineSource(s, base(s.E))
			}),
	}
}

// readInlineSource reads the value source as it was stored on the
// parameter record before value sources became nested blocks.
func readInlineSource[T any](s *descriptor.State[T], p *model.ParameterBase) error {
	typ, err := s.C.ExpectInt(codeLegacySourceType)
	if err != nil {
		return err
	}
	if typ == legacySourceNone {
		return nil
	}
	raw, err := s.C.ExpectInt(codeLegacySourceTarget)
	if err != nil {
		return err
	}
	a, err := s.C.ExpectDouble(codeLegacySourceA)
	if err != nil {
		return err
	}
	b, err := s.C.ExpectDouble(codeLegacySourceB)
	if err != nil {
		return err
	}
	c, err := s.C.ExpectDouble(codeLegacySourceC)
	if err != nil {
		return err
	}

	switch typ {
	case legacySourceTable:
		src := &model.BigTableSource{
			Table:  model.RefTo[*model.BigTable](s.Info.Translate(ids.KindBigTable, ids.Raw{Local: raw})),
			Row:    int(a),
			Column: int(b),
		}
		descriptor.BindLater(s, &src.Table)
		p.ValueSource = src
	case legacySourceField:
		src := &model.Field3DSource{
			Field: model.RefTo[*model.Field3D](s.Info.Translate(ids.KindField3D, ids.Raw{Local: raw})),
			X:     a,
			Y:     b,
			Z:     c,
		}
		descriptor.BindLater(s, &src.Field)
		p.ValueSource = src
	case legacySourceFunction:
		src := &model.FunctionGraphSource{
			Graph: model.RefTo[*model.FunctionGraph](s.Info.Translate(ids.KindFunctionGraph, ids.Raw{Local: raw})),
			X:     a,
			Y:     b,
		}
		descriptor.BindLater(s, &src.Graph)
		p.ValueSource = src
	default:
		return s.C.Structural("value source type 0-3", codec.FormatInt(typ))
	}
	return nil
}

func parameterName[T any](base func(*T) *model.ParameterBase) func(*T) string {
	return func(e *T) string { return base(e).Name }
}

func doubleParameter(kind string) *descriptor.Entity[model.DoubleParameter] {
	base := func(p *model.DoubleParameter) *model.ParameterBase { return &p.ParameterBase }
	fields := parameterFields(base)
	fields = append(fields,
		descriptor.Double("Value", codeParamValue, func(p *model.DoubleParameter) *float64 { return &p.Value }),
		descriptor.Double("MinValue", codeParamMin, func(p *model.DoubleParameter) *float64 { return &p.MinValue }),
		descriptor.Double("MaxValue", codeParamMax, func(p *model.DoubleParameter) *float64 { return &p.MaxValue }),
	)
	return &descriptor.Entity[model.DoubleParameter]{
		Kind:   kind,
		IDKind: ids.KindParameter,
		Fields: fields,
		Name:   parameterName(base),
	}
}

// DoubleParameter describes model.DoubleParameter.
var DoubleParameter = doubleParameter(KindDoubleParameter)

// LegacyParameter reads the untyped parameters of files before typed
// parameters existed.
var LegacyParameter = doubleParameter(KindLegacyParameter)

// IntegerParameter describes model.IntegerParameter.
var IntegerParameter = func() *descriptor.Entity[model.IntegerParameter] {
	base := func(p *model.IntegerParameter) *model.ParameterBase { return &p.ParameterBase }
	fields := append(parameterFields(base),
		descriptor.Int("Value", codeParamValue, func(p *model.IntegerParameter) *int64 { return &p.Value }),
		descriptor.Int("MinValue", codeParamMin, func(p *model.IntegerParameter) *int64 { return &p.MinValue }),
		descriptor.Int("MaxValue", codeParamMax, func(p *model.IntegerParameter) *int64 { return &p.MaxValue }),
	)
	return &descriptor.Entity[model.IntegerParameter]{
		Kind:   KindIntegerParameter,
		IDKind: ids.KindParameter,
		Fields: fields,
		Name:   parameterName(base),
	}
}()

// StringParameter describes model.StringParameter.
var StringParameter = func() *descriptor.Entity[model.StringParameter] {
	base := func(p *model.StringParameter) *model.ParameterBase { return &p.ParameterBase }
	fields := append(parameterFields(base),
		descriptor.String("Value", codeParamValue, func(p *model.StringParameter) *string { return &p.Value }),
	)
	return &descriptor.Entity[model.StringParameter]{
		Kind:   KindStringParameter,
		IDKind: ids.KindParameter,
		Fields: fields,
		Name:   parameterName(base),
	}
}()

// BooleanParameter describes model.BooleanParameter.
var BooleanParameter = func() *descriptor.Entity[model.BooleanParameter] {
	base := func(p *model.BooleanParameter) *model.ParameterBase { return &p.ParameterBase }
	fields := append(parameterFields(base),
		descriptor.Bool("Value", codeParamValue, func(p *model.BooleanParameter) *bool { return &p.Value }),
	)
	return &descriptor.Entity[model.BooleanParameter]{
		Kind:   KindBooleanParameter,
		IDKind: ids.KindParameter,
		Fields: fields,
		Name:   parameterName(base),
	}
}()

// EnumParameter describes model.EnumParameter.
var EnumParameter = func() *descriptor.Entity[model.EnumParameter] {
	base := func(p *model.EnumParameter) *model.ParameterBase { return &p.ParameterBase }
	fields := append(parameterFields(base),
		descriptor.Ref("Items", codeParamItemsGUID, codeParamItemsLocal, ids.KindTaxonomyEntry,
			func(p *model.EnumParameter) *model.Ref[*model.TaxonomyEntry] { return &p.Items }),
		descriptor.Ref("Value", codeParamEnumValueGUID, codeParamEnumValueLocal, ids.KindTaxonomyEntry,
			func(p *model.EnumParameter) *model.Ref[*model.TaxonomyEntry] { return &p.Value }),
	)
	return &descriptor.Entity[model.EnumParameter]{
		Kind:   KindEnumParameter,
		IDKind: ids.KindParameter,
		Fields: fields,
		Name:   parameterName(base),
	}
}()

// Parameter is the union of all parameter variants.
var Parameter = func() *descriptor.Union[model.Parameter] {
	u := descriptor.NewUnion[model.Parameter]("parameter")
	descriptor.AddVariant(u, DoubleParameter)
	descriptor.AddVariant(u, IntegerParameter)
	descriptor.AddVariant(u, StringParameter)
	descriptor.AddVariant(u, BooleanParameter)
	descriptor.AddVariant(u, EnumParameter)
	descriptor.AddVariant(u, LegacyParameter)
	return u
}()

// BigTableSource describes model.BigTableSource.
var BigTableSource = &descriptor.Entity[model.BigTableSource]{
	Kind: "SOURCE_BIGTABLE",
	Fields: []*descriptor.Field[model.BigTableSource]{
		descriptor.Ref("Table", codeSourceTargetGUID, codeSourceTargetLocal, ids.KindBigTable,
			func(s *model.BigTableSource) *model.Ref[*model.BigTable] { return &s.Table }),
		descriptor.Int("Row", codeSourceRow, func(s *model.BigTableSource) *int { return &s.Row }),
		descriptor.Int("Column", codeSourceColumn, func(s *model.BigTableSource) *int { return &s.Column }),
	},
}

// Field3DSource describes model.Field3DSource.
var Field3DSource = &descriptor.Entity[model.Field3DSource]{
	Kind: "SOURCE_FIELD3D",
	Fields: []*descriptor.Field[model.Field3DSource]{
		descriptor.Ref("Field", codeSourceTargetGUID, codeSourceTargetLocal, ids.KindField3D,
			func(s *model.Field3DSource) *model.Ref[*model.Field3D] { return &s.Field }),
		descriptor.Double("X", codeSourceX, func(s *model.Field3DSource) *float64 { return &s.X }),
		descriptor.Double("Y", codeSourceY, func(s *model.Field3DSource) *float64 { return &s.Y }),
		descriptor.Double("Z", codeSourceZ, func(s *model.Field3DSource) *float64 { return &s.Z }),
	},
}

// FunctionGraphSource describes model.FunctionGraphSource.
var FunctionGraphSource = &descriptor.Entity[model.FunctionGraphSource]{
	Kind: "SOURCE_FUNCTION",
	Fields: []*descriptor.Field[model.FunctionGraphSource]{
		descriptor.Ref("Graph", codeSourceTargetGUID, codeSourceTargetLocal, ids.KindFunctionGraph,
			func(s *model.FunctionGraphSource) *model.Ref[*model.FunctionGraph] { return &s.Graph }),
		descriptor.String("Function", codeSourceFunction, func(s *model.FunctionGraphSource) *string { return &s.Function }),
		descriptor.Double("X", codeSourceX, func(s *model.FunctionGraphSource) *float64 { return &s.X }),
		descriptor.Double("Y", codeSourceY, func(s *model.FunctionGraphSource) *float64 { return &s.Y }),
	},
}

// GeometricSource describes model.GeometricSource.
var GeometricSource = &descriptor.Entity[model.GeometricSource]{
	Kind: "SOURCE_GEOMETRIC",
	Fields: []*descriptor.Field[model.GeometricSource]{
		descriptor.Enum("Property", codeSourceProperty, func(s *model.GeometricSource) *model.GeometricProperty { return &s.Property }),
		descriptor.RefList("Filter", codeSourceFilterCount, codeSourceFilterGUID, codeSourceFilterLocal, ids.KindTaxonomyEntry,
			func(s *model.GeometricSource) *[]model.Ref[*model.TaxonomyEntry] { return &s.Filter }),
	},
}

// ValueSource is the union of all value source variants.
var ValueSource = func() *descriptor.Union[model.ValueSource] {
	u := descriptor.NewUnion[model.ValueSource]("value source")
	descriptor.AddVariant(u, BigTableSource)
	descriptor.AddVariant(u, Field3DSource)
	descriptor.AddVariant(u, FunctionGraphSource)
	descriptor.AddVariant(u, GeometricSource)
	return u
}()
