package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeNetworkName        codec.Code = 2001
	codeNetworkDescription codec.Code = 2002
	codeNetworkX           codec.Code = 2003
	codeNetworkY           codec.Code = 2004
	codeNetworkDirected    codec.Code = 2005
	codeNetworkNodes       codec.Code = 2006
	codeNetworkEdges       codec.Code = 2007
	codeNetworkSubnetworks codec.Code = 2008
	codeNetworkEntryGUID   codec.Code = 2009
	codeNetworkEntryLocal  codec.Code = 2010
	codeNetworkExitGUID    codec.Code = 2011
	codeNetworkExitLocal   codec.Code = 2012
	codeEdgeStartGUID      codec.Code = 2020
	codeEdgeStartLocal     codec.Code = 2021
	codeEdgeEndGUID        codec.Code = 2022
	codeEdgeEndLocal       codec.Code = 2023
	codeSimName            codec.Code = 2101
	codeSimX               codec.Code = 2102
	codeSimY               codec.Code = 2103
	codeSimWidth           codec.Code = 2104
	codeSimHeight          codec.Code = 2105
	codeSimColor           codec.Code = 2106
	codeSimPorts           codec.Code = 2107
	codeSimBlocks          codec.Code = 2108
	codeSimSubnetworks     codec.Code = 2109
	codeSimConnectors      codec.Code = 2110
	codeSimPortType        codec.Code = 2111
	codeConnSourceGUID     codec.Code = 2112
	codeConnSourceLocal    codec.Code = 2113
	codeConnTargetGUID     codec.Code = 2114
	codeConnTargetLocal    codec.Code = 2115
	codeConnGeometry       codec.Code = 2116
)

// FlowNode describes model.FlowNode.
var FlowNode = &descriptor.Entity[model.FlowNode]{
	Kind:   "FLOWNODE",
	IDKind: ids.KindFlowNode,
	Name:   func(n *model.FlowNode) string { return n.Name },
	Fields: []*descriptor.Field[model.FlowNode]{
		descriptor.OwnID("ID", CodeID, ids.KindFlowNode, func(n *model.FlowNode) *ids.EntityID { return &n.ID }),
		descriptor.String("Name", codeNetworkName, func(n *model.FlowNode) *string { return &n.Name }),
		descriptor.String("Description", codeNetworkDescription, func(n *model.FlowNode) *string { return &n.Description }),
		point2("Position", codeNetworkX, codeNetworkY, func(n *model.FlowNode) *model.Point2 { return &n.Position }),
	},
}

// FlowEdge describes model.FlowEdge. Start and end are nodes or sub
// networks of the same network.
var FlowEdge = &descriptor.Entity[model.FlowEdge]{
	Kind:   "FLOWEDGE",
	IDKind: ids.KindFlowEdge,
	Name:   func(e *model.FlowEdge) string { return e.Name },
	Fields: []*descriptor.Field[model.FlowEdge]{
		descriptor.OwnID("ID", CodeID, ids.KindFlowEdge, func(e *model.FlowEdge) *ids.EntityID { return &e.ID }),
		descriptor.String("Name", codeNetworkName, func(e *model.FlowEdge) *string { return &e.Name }),
		descriptor.String("Description", codeNetworkDescription, func(e *model.FlowEdge) *string { return &e.Description }),
		descriptor.Ref("Start", codeEdgeStartGUID, codeEdgeStartLocal, ids.KindFlowNode,
			func(e *model.FlowEdge) *model.Ref[model.FlowElement] { return &e.Start }),
		descriptor.Ref("End", codeEdgeEndGUID, codeEdgeEndLocal, ids.KindFlowNode,
			func(e *model.FlowEdge) *model.Ref[model.FlowElement] { return &e.End }),
	},
}

// FlowNetwork describes model.FlowNetwork. Children of a network are read
// in the network's legacy numbering scope; entry and exit node follow the
// children so the scope is known when they are read.
var FlowNetwork = &descriptor.Entity[model.FlowNetwork]{
	Kind:   "FLOWNETWORK",
	IDKind: ids.KindFlowNetwork,
	Name:   func(n *model.FlowNetwork) string { return n.Name },
	ChildInfo: func(n *model.FlowNetwork, info *descriptor.ParserInfo) *descriptor.ParserInfo {
		return info.EnterNetwork(n.ID)
	},
}

// SimNetworkPort describes model.SimNetworkPort.
var SimNetworkPort = &descriptor.Entity[model.SimNetworkPort]{
	Kind:   "SIMPORT",
	IDKind: ids.KindSimPort,
	Name:   func(p *model.SimNetworkPort) string { return p.Name },
	Fields: []*descriptor.Field[model.SimNetworkPort]{
		descriptor.OwnID("ID", CodeID, ids.KindSimPort, func(p *model.SimNetworkPort) *ids.EntityID { return &p.ID }),
		descriptor.String("Name", codeSimName, func(p *model.SimNetworkPort) *string { return &p.Name }),
		descriptor.Enum("PortType", codeSimPortType, func(p *model.SimNetworkPort) *model.PortType { return &p.PortType }),
	},
}

// SimNetworkBlock describes model.SimNetworkBlock.
var SimNetworkBlock = &descriptor.Entity[model.SimNetworkBlock]{
	Kind:   "SIMBLOCK",
	IDKind: ids.KindSimBlock,
	Name:   func(b *model.SimNetworkBlock) string { return b.Name },
	Fields: []*descriptor.Field[model.SimNetworkBlock]{
		descriptor.OwnID("ID", CodeID, ids.KindSimBlock, func(b *model.SimNetworkBlock) *ids.EntityID { return &b.ID }),
		descriptor.String("Name", codeSimName, func(b *model.SimNetworkBlock) *string { return &b.Name }),
		point2("Position", codeSimX, codeSimY, func(b *model.SimNetworkBlock) *model.Point2 { return &b.Position }),
		descriptor.Double("Width", codeSimWidth, func(b *model.SimNetworkBlock) *float64 { return &b.Width }),
		descriptor.Double("Height", codeSimHeight, func(b *model.SimNetworkBlock) *float64 { return &b.Height }),
		descriptor.Uint("Color", codeSimColor, func(b *model.SimNetworkBlock) *uint32 { return &b.Color }),
		descriptor.List("Ports", codeSimPorts, descriptor.Codec[*model.SimNetworkPort](SimNetworkPort),
			func(b *model.SimNetworkBlock) *[]*model.SimNetworkPort { return &b.Ports }),
	},
}

// SimNetworkConnector describes model.SimNetworkConnector.
var SimNetworkConnector = &descriptor.Entity[model.SimNetworkConnector]{
	Kind:   "SIMCONNECTOR",
	IDKind: ids.KindSimConnector,
	Name:   func(c *model.SimNetworkConnector) string { return c.Name },
	Fields: []*descriptor.Field[model.SimNetworkConnector]{
		descriptor.OwnID("ID", CodeID, ids.KindSimConnector, func(c *model.SimNetworkConnector) *ids.EntityID { return &c.ID }),
		descriptor.String("Name", codeSimName, func(c *model.SimNetworkConnector) *string { return &c.Name }),
		descriptor.Ref("Source", codeConnSourceGUID, codeConnSourceLocal, ids.KindSimPort,
			func(c *model.SimNetworkConnector) *model.Ref[*model.SimNetworkPort] { return &c.Source }),
		descriptor.Ref("Target", codeConnTargetGUID, codeConnTargetLocal, ids.KindSimPort,
			func(c *model.SimNetworkConnector) *model.Ref[*model.SimNetworkPort] { return &c.Target }),
		pointList("Geometry", codeConnGeometry, 2,
			func(c *model.SimNetworkConnector) []float64 {
				out := make([]float64, 0, 2*len(c.Geometry))
				for _, p := range c.Geometry {
					out = append(out, p.X, p.Y)
				}
				return out
			},
			func(c *model.SimNetworkConnector, vs []float64) {
				c.Geometry = nil
				for i := 0; i+1 < len(vs); i += 2 {
					c.Geometry = append(c.Geometry, model.Point2{X: vs[i], Y: vs[i+1]})
				}
			}),
	},
}

// SimNetwork describes model.SimNetwork.
var SimNetwork = &descriptor.Entity[model.SimNetwork]{
	Kind:   "SIMNETWORK",
	IDKind: ids.KindSimNetwork,
	Name:   func(n *model.SimNetwork) string { return n.Name },
}

func init() {
	FlowNetwork.Fields = []*descriptor.Field[model.FlowNetwork]{
		descriptor.OwnID("ID", CodeID, ids.KindFlowNetwork, func(n *model.FlowNetwork) *ids.EntityID { return &n.ID }),
		descriptor.String("Name", codeNetworkName, func(n *model.FlowNetwork) *string { return &n.Name }),
		descriptor.String("Description", codeNetworkDescription, func(n *model.FlowNetwork) *string { return &n.Description }),
		point2("Position", codeNetworkX, codeNetworkY, func(n *model.FlowNetwork) *model.Point2 { return &n.Position }),
		descriptor.Bool("IsDirected", codeNetworkDirected, func(n *model.FlowNetwork) *bool { return &n.IsDirected }),
		descriptor.List("Nodes", codeNetworkNodes, descriptor.Codec[*model.FlowNode](FlowNode),
			func(n *model.FlowNetwork) *[]*model.FlowNode { return &n.Nodes }),
		descriptor.List("Edges", codeNetworkEdges, descriptor.Codec[*model.FlowEdge](FlowEdge),
			func(n *model.FlowNetwork) *[]*model.FlowEdge { return &n.Edges }),
		descriptor.List("Subnetworks", codeNetworkSubnetworks, descriptor.Codec[*model.FlowNetwork](FlowNetwork),
			func(n *model.FlowNetwork) *[]*model.FlowNetwork { return &n.Subnetworks }),
		descriptor.ChildRef("EntryNode", codeNetworkEntryGUID, codeNetworkEntryLocal, ids.KindFlowNode,
			func(n *model.FlowNetwork) *model.Ref[model.FlowElement] { return &n.EntryNode }),
		descriptor.ChildRef("ExitNode", codeNetworkExitGUID, codeNetworkExitLocal, ids.KindFlowNode,
			func(n *model.FlowNetwork) *model.Ref[model.FlowElement] { return &n.ExitNode }),
	}

	SimNetwork.Fields = []*descriptor.Field[model.SimNetwork]{
		descriptor.OwnID("ID", CodeID, ids.KindSimNetwork, func(n *model.SimNetwork) *ids.EntityID { return &n.ID }),
		descriptor.String("Name", codeSimName, func(n *model.SimNetwork) *string { return &n.Name }),
		point2("Position", codeSimX, codeSimY, func(n *model.SimNetwork) *model.Point2 { return &n.Position }),
		descriptor.Double("Width", codeSimWidth, func(n *model.SimNetwork) *float64 { return &n.Width }),
		descriptor.Double("Height", codeSimHeight, func(n *model.SimNetwork) *float64 { return &n.Height }),
		descriptor.Uint("Color", codeSimColor, func(n *model.SimNetwork) *uint32 { return &n.Color }),
		descriptor.List("Ports", codeSimPorts, descriptor.Codec[*model.SimNetworkPort](SimNetworkPort),
			func(n *model.SimNetwork) *[]*model.SimNetworkPort { return &n.Ports }),
		descriptor.List("Blocks", codeSimBlocks, descriptor.Codec[*model.SimNetworkBlock](SimNetworkBlock),
			func(n *model.SimNetwork) *[]*model.SimNetworkBlock { return &n.Blocks }),
		descriptor.List("Subnetworks", codeSimSubnetworks, descriptor.Codec[*model.SimNetwork](SimNetwork),
			func(n *model.SimNetwork) *[]*model.SimNetwork { return &n.Subnetworks }),
		descriptor.List("Connectors", codeSimConnectors, descriptor.Codec[*model.SimNetworkConnector](SimNetworkConnector),
			func(n *model.SimNetwork) *[]*model.SimNetworkConnector { return &n.Connectors }),
	}
}
