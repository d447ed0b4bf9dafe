package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// ComponentIndexUsage selects whether components map onto rows or columns.
type ComponentIndexUsage int

const (
	IndexUsageRow ComponentIndexUsage = iota
	IndexUsageColumn
)

// PrefilterKind is the aggregation applied before colors are mapped.
type PrefilterKind int

const (
	PrefilterDefault PrefilterKind = iota
	PrefilterMinimum
	PrefilterMaximum
	PrefilterAverage
	PrefilterTimeline
)

// Prefilter reduces table values to one value per component.
type Prefilter struct {
	Kind    PrefilterKind
	Current int // selected timeline column, only used by PrefilterTimeline
}

// ColorMapKind is the interpolation used by a color map.
type ColorMapKind int

const (
	ColorMapLinearGradient ColorMapKind = iota
	ColorMapThreshold
)

// ColorMarker maps a value to an ARGB color.
type ColorMarker struct {
	Value float64
	Color uint32
}

// ColorMap turns values into colors.
type ColorMap struct {
	Kind    ColorMapKind
	Markers []ColorMarker
}

// ValueMapping displays a big table on geometry as colors.
type ValueMapping struct {
	ID                  ids.EntityID
	Name                string
	Table               Ref[*BigTable]
	ComponentIndexUsage ComponentIndexUsage
	Prefilter           Prefilter
	ColorMap            ColorMap
}

// UserComponentList is a named selection of root components.
type UserComponentList struct {
	ID             ids.EntityID
	Name           string
	RootComponents []Ref[*Component]
}
