package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// Category is a set of flags describing what a parameter or component is about.
type Category uint32

const (
	CategoryNone          Category = 0
	CategoryGeneral       Category = 1 << 0
	CategoryGeometry      Category = 1 << 1
	CategoryCosts         Category = 1 << 2
	CategoryRegulations   Category = 1 << 3
	CategoryHeating       Category = 1 << 4
	CategoryCooling       Category = 1 << 5
	CategoryHumidity      Category = 1 << 6
	CategoryAir           Category = 1 << 7
	CategoryAcoustics     Category = 1 << 8
	CategoryLight         Category = 1 << 9
	CategoryWater         Category = 1 << 10
	CategoryElectricity   Category = 1 << 11
	CategoryCommunication Category = 1 << 12
)

// Has reports whether all flags in f are set.
func (c Category) Has(f Category) bool {
	return c&f == f
}

// Propagation describes the direction in which a parameter value flows.
type Propagation int

const (
	PropagationInput Propagation = iota
	PropagationOutput
	PropagationMixed
	PropagationReferenceIn
	PropagationCalcIn
	PropagationTypeOnly
)

// Operations is the set of operations a user may perform on a parameter.
type Operations uint32

const (
	OperationNone      Operations = 0
	OperationEditValue Operations = 1 << 0
	OperationEditName  Operations = 1 << 1
	OperationDelete    Operations = 1 << 2
	OperationMove      Operations = 1 << 3
	OperationAll       Operations = OperationEditValue | OperationEditName | OperationDelete | OperationMove
)

// Parameter is the closed union of typed parameters.
type Parameter interface {
	Base() *ParameterBase
	isParameter()
}

// ParameterBase holds what every parameter variant shares.
type ParameterBase struct {
	ID                  ids.EntityID
	Name                string
	NameTaxonomyEntry   Ref[*TaxonomyEntry] // empty when the name is free text
	Unit                string
	Description         string
	TextValue           string
	Category            Category
	Propagation         Propagation
	InstancePropagation bool
	AllowedOperations   Operations
	IsAutoGenerated     bool
	ValueSource         ValueSource // nil when the value is entered directly
}

// Base returns the shared record.
func (b *ParameterBase) Base() *ParameterBase { return b }

// DoubleParameter is a real valued parameter with bounds.
type DoubleParameter struct {
	ParameterBase
	Value    float64
	MinValue float64
	MaxValue float64
}

// IntegerParameter is an integer valued parameter with bounds.
type IntegerParameter struct {
	ParameterBase
	Value    int64
	MinValue int64
	MaxValue int64
}

// StringParameter holds free text.
type StringParameter struct {
	ParameterBase
	Value string
}

// BooleanParameter holds a flag.
type BooleanParameter struct {
	ParameterBase
	Value bool
}

// EnumParameter selects one child of a taxonomy entry.
type EnumParameter struct {
	ParameterBase
	Items Ref[*TaxonomyEntry] // entry whose children are the allowed values
	Value Ref[*TaxonomyEntry]
}

func (*DoubleParameter) isParameter()  {}
func (*IntegerParameter) isParameter() {}
func (*StringParameter) isParameter()  {}
func (*BooleanParameter) isParameter() {}
func (*EnumParameter) isParameter()    {}

// ValueSource is the closed union of places a parameter takes its value from.
type ValueSource interface {
	isValueSource()
}

// BigTableSource points at a cell of a multi-value table.
type BigTableSource struct {
	Table  Ref[*BigTable]
	Row    int
	Column int
}

// Field3DSource points at a position in a 3D field.
type Field3DSource struct {
	Field Ref[*Field3D]
	X     float64
	Y     float64
	Z     float64
}

// FunctionGraphSource points at a function of a function graph.
type FunctionGraphSource struct {
	Graph    Ref[*FunctionGraph]
	Function string
	X        float64
	Y        float64
}

// GeometricProperty selects the geometric quantity a source reads.
type GeometricProperty int

const (
	GeometricArea GeometricProperty = iota
	GeometricLength
	GeometricVolume
	GeometricCount
	GeometricHeight
)

// GeometricSource derives a value from the geometry placed by instances.
type GeometricSource struct {
	Property GeometricProperty
	Filter   []Ref[*TaxonomyEntry]
}

func (*BigTableSource) isValueSource()      {}
func (*Field3DSource) isValueSource()       {}
func (*FunctionGraphSource) isValueSource() {}
func (*GeometricSource) isValueSource()     {}

// ReservedParameterNames maps legacy spellings of names with special
// meaning to their current spelling.
var ReservedParameterNames = map[string]string{
	"NRTotal":  "NRᴛᴏᴛᴀʟ",
	"ARMin":    "Aᴍɪɴ",
	"ARMax":    "Aᴍᴀx",
	"LRMax":    "Lᴍᴀx",
	"BRMax":    "Bᴍᴀx",
	"HRMax":    "Hᴍᴀx",
	"VRTotal":  "Vᴛᴏᴛᴀʟ",
	"CumTotal": "Cᴜᴍᴜʟ",
}
