package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// FlowElement is the closed union of things a flow edge can connect and an
// instance can be placed on.
type FlowElement interface {
	ElementID() ids.EntityID
	isFlowElement()
}

// FlowNetwork is a graph of nodes, edges and nested sub networks.
type FlowNetwork struct {
	ID          ids.EntityID
	Name        string
	Description string
	Position    Point2
	IsDirected  bool
	EntryNode   Ref[FlowElement]
	ExitNode    Ref[FlowElement]
	Nodes       []*FlowNode
	Edges       []*FlowEdge
	Subnetworks []*FlowNetwork
}

// FlowNode is a vertex of a flow network.
type FlowNode struct {
	ID          ids.EntityID
	Name        string
	Description string
	Position    Point2
}

// FlowEdge connects two nodes or sub networks.
type FlowEdge struct {
	ID          ids.EntityID
	Name        string
	Description string
	Start       Ref[FlowElement]
	End         Ref[FlowElement]
}

// ElementID returns the network id.
func (n *FlowNetwork) ElementID() ids.EntityID { return n.ID }

// ElementID returns the node id.
func (n *FlowNode) ElementID() ids.EntityID { return n.ID }

// ElementID returns the edge id.
func (e *FlowEdge) ElementID() ids.EntityID { return e.ID }

func (*FlowNetwork) isFlowElement() {}
func (*FlowNode) isFlowElement()    {}
func (*FlowEdge) isFlowElement()    {}

// PortType is the direction of a simulation network port.
type PortType int

const (
	PortInput PortType = iota
	PortOutput
)

// SimNetwork is a block diagram used to set up simulations.
type SimNetwork struct {
	ID          ids.EntityID
	Name        string
	Position    Point2
	Width       float64
	Height      float64
	Color       uint32
	Ports       []*SimNetworkPort
	Blocks      []*SimNetworkBlock
	Subnetworks []*SimNetwork
	Connectors  []*SimNetworkConnector
}

// SimNetworkBlock is a block of a simulation network.
type SimNetworkBlock struct {
	ID       ids.EntityID
	Name     string
	Position Point2
	Width    float64
	Height   float64
	Color    uint32
	Ports    []*SimNetworkPort
}

// SimNetworkPort is a connection point of a block or network.
type SimNetworkPort struct {
	ID       ids.EntityID
	Name     string
	PortType PortType
}

// SimNetworkConnector links two ports.
type SimNetworkConnector struct {
	ID       ids.EntityID
	Name     string
	Source   Ref[*SimNetworkPort]
	Target   Ref[*SimNetworkPort]
	Geometry []Point2
}
