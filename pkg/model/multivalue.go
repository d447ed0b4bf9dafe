package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// TableHeader names a row or column of a big table.
type TableHeader struct {
	Name string
	Unit string
}

// BigTable is a two dimensional table of typed cells.
type BigTable struct {
	ID             ids.EntityID
	Name           string
	Description    string
	UnitColumns    string
	UnitRows       string
	AdditionalInfo string
	ColumnHeaders  []TableHeader
	RowHeaders     []TableHeader
	Values         [][]Value
}

// Field3D samples a value over three axes.
type Field3D struct {
	ID             ids.EntityID
	Name           string
	Description    string
	UnitX          string
	UnitY          string
	UnitZ          string
	CanInterpolate bool
	AxisX          []float64
	AxisY          []float64
	AxisZ          []float64
	Values         []float64 // x varies fastest, then y, then z
}

// At returns the sample at the given axis indices.
func (f *Field3D) At(x, y, z int) float64 {
	return f.Values[(z*len(f.AxisY)+y)*len(f.AxisX)+x]
}

// Range is a closed interval.
type Range struct {
	Min float64
	Max float64
}

// FunctionGraph holds piecewise linear functions over a common axis range.
type FunctionGraph struct {
	ID          ids.EntityID
	Name        string
	Description string
	UnitX       string
	UnitY       string
	UnitZ       string
	RangeX      Range
	RangeY      Range
	Functions   []GraphFunction
}

// GraphFunction is one polyline of a function graph.
type GraphFunction struct {
	Name   string
	Points []Point3
}
