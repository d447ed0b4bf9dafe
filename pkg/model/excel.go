package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// MappingSubject is what an Excel mapping rule reads from a component.
type MappingSubject int

const (
	SubjectComponent MappingSubject = iota
	SubjectParameter
	SubjectGeometry
	SubjectInstance
)

// MappingDirection is the orientation data is written into the sheet with.
type MappingDirection int

const (
	DirectionHorizontal MappingDirection = iota
	DirectionVertical
)

// ExcelTool is a spreadsheet based calculation tool.
type ExcelTool struct {
	ID           ids.EntityID
	Name         string
	MacroName    string
	LastPath     string
	InputRules   []*ExcelMappingRule
	OutputRules  []*ExcelUnmappingRule
	OutputRanges []ExcelRange
}

// ExcelRange is a rectangular range of a sheet.
type ExcelRange struct {
	Sheet       string
	Row         int
	Column      int
	RowCount    int
	ColumnCount int
}

// ExcelMappingRule writes component data into a sheet. Child rules are
// applied to the components matched by their parent.
type ExcelMappingRule struct {
	Name            string
	SheetName       string
	OffsetRow       int
	OffsetColumn    int
	Subject         MappingSubject
	Direction       MappingDirection
	MaxMatches      int
	Properties      []string
	ParameterFilter []Ref[Parameter]
	Children        []*ExcelMappingRule
}

// ExcelUnmappingRule reads results from a sheet back into a parameter.
type ExcelUnmappingRule struct {
	Name            string
	Range           ExcelRange
	TargetParameter Ref[Parameter]
	Table           Ref[*BigTable] // optional table receiving the whole range
}
