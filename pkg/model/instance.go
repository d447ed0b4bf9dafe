package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// Instance is a placement of a component in geometry or networks.
type Instance struct {
	ID               ids.EntityID
	Name             string
	InstanceType     InstanceType
	PropagateChanges bool
	Realized         bool
	Placements       []Placement
	ParameterValues  []InstanceParameterValue
}

// InstanceParameterValue is the per instance value of a component parameter.
type InstanceParameterValue struct {
	Parameter Ref[Parameter]
	Value     Value
}

// Placement is the closed union of places an instance is placed in.
type Placement interface {
	isPlacement()
}

// PlacementState tells whether the placed target still exists.
type PlacementState int

const (
	PlacementValid PlacementState = iota
	PlacementMissing
)

// GeometryPlacement places an instance on a geometry object.
type GeometryPlacement struct {
	FileID     int
	GeometryID uint64
	RelatedID  uint64 // secondary geometry, e.g. the face for a volume placement
	State      PlacementState
}

// NetworkPlacement places an instance on a flow network node or edge.
type NetworkPlacement struct {
	Element Ref[FlowElement]
}

// SimNetworkPlacement places an instance on a simulation network block.
type SimNetworkPlacement struct {
	Block Ref[*SimNetworkBlock]
}

func (*GeometryPlacement) isPlacement()   {}
func (*NetworkPlacement) isPlacement()    {}
func (*SimNetworkPlacement) isPlacement() {}
