package entities

import (
	"fmt"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeInstanceName        codec.Code = 1801
	codeInstanceType        codec.Code = 1802
	codeInstancePropagate   codec.Code = 1803
	codeInstanceRealized    codec.Code = 1804
	codeInstancePlacements  codec.Code = 1805
	codeInstanceParameters  codec.Code = 1806
	codeInstParamGUID       codec.Code = 1811
	codeInstParamLocal      codec.Code = 1812
	codeInstParamKind       codec.Code = 1813
	codeInstParamValue      codec.Code = 1814
	codePlacementFile       codec.Code = 1901
	codePlacementGeometry   codec.Code = 1902
	codePlacementRelated    codec.Code = 1903
	codePlacementState      codec.Code = 1904
	codePlacementElemGUID   codec.Code = 1905
	codePlacementElemLocal  codec.Code = 1906
	codePlacementNetwork    codec.Code = 1907
	codePlacementBlockGUID  codec.Code = 1908
	codePlacementBlockLocal codec.Code = 1909
)

// InstanceParameterValue describes model.InstanceParameterValue.
var InstanceParameterValue = &descriptor.Entity[model.InstanceParameterValue]{
	Kind: "INSTANCE_PARAMETER",
	Fields: []*descriptor.Field[model.InstanceParameterValue]{
		descriptor.Ref("Parameter", codeInstParamGUID, codeInstParamLocal, ids.KindParameter,
			func(p *model.InstanceParameterValue) *model.Ref[model.Parameter] { return &p.Parameter }),
		valueField("Value", codeInstParamKind, codeInstParamValue,
			func(p *model.InstanceParameterValue) *model.Value { return &p.Value }, version.TypedParameters),
	},
}

// GeometryPlacement describes model.GeometryPlacement.
var GeometryPlacement = &descriptor.Entity[model.GeometryPlacement]{
	Kind: "PLACEMENT_GEOMETRY",
	Fields: []*descriptor.Field[model.GeometryPlacement]{
		descriptor.Int("FileID", codePlacementFile, func(p *model.GeometryPlacement) *int { return &p.FileID }),
		descriptor.Uint("GeometryID", codePlacementGeometry, func(p *model.GeometryPlacement) *uint64 { return &p.GeometryID }),
		descriptor.Uint("RelatedID", codePlacementRelated, func(p *model.GeometryPlacement) *uint64 { return &p.RelatedID }),
		descriptor.Enum("State", codePlacementState, func(p *model.GeometryPlacement) *model.PlacementState { return &p.State }),
	},
}

// NetworkPlacement describes model.NetworkPlacement. Before network ids
// became global the element was numbered inside its network, which is
// stored in front of it.
var NetworkPlacement = &descriptor.Entity[model.NetworkPlacement]{
	Kind: "PLACEMENT_NETWORK",
	Fields: []*descriptor.Field[model.NetworkPlacement]{
		descriptor.Ref("Element", codePlacementElemGUID, codePlacementElemLocal, ids.KindFlowNode,
			func(p *model.NetworkPlacement) *model.Ref[model.FlowElement] { return &p.Element }).
			Legacy(version.NetworkGlobalIDs, readLegacyNetworkPlacement),
	},
}

// readLegacyNetworkPlacement reads a placement that names its network by
// number. The element is decoded once the network section has been read.
func readLegacyNetworkPlacement(s *descriptor.State[model.NetworkPlacement]) error {
	network, err := s.C.ExpectInt(codePlacementNetwork)
	if err != nil {
		return err
	}
	raw, err := descriptor.ReadRawID(s.C, s.Info, codePlacementElemGUID, codePlacementElemLocal)
	if err != nil {
		return err
	}
	if raw.Local < 0 {
		return nil
	}

	info, loc := s.Info, s.C.Location()
	s.DeferOn(func(p *model.NetworkPlacement, h resolve.Holder) {
		info.Later(func() {
			scope, ok := info.Networks.Network(network)
			if !ok {
				info.Warn(loc, h.String(), fmt.Sprintf("placement names unknown network %d", network))
				scope = info.Networks.ID(0, network)
			}
			p.Element = model.RefTo[model.FlowElement](info.WithScope(scope).Translate(ids.KindFlowNode, raw))
			resolve.Bind(info.Registry, h, &p.Element)
		})
	})
	return nil
}

// SimNetworkPlacement describes model.SimNetworkPlacement.
var SimNetworkPlacement = &descriptor.Entity[model.SimNetworkPlacement]{
	Kind: "PLACEMENT_SIMNETWORK",
	Fields: []*descriptor.Field[model.SimNetworkPlacement]{
		descriptor.Ref("Block", codePlacementBlockGUID, codePlacementBlockLocal, ids.KindSimBlock,
			func(p *model.SimNetworkPlacement) *model.Ref[*model.SimNetworkBlock] { return &p.Block }),
	},
}

// Placement is the union of all placement variants.
var Placement = func() *descriptor.Union[model.Placement] {
	u := descriptor.NewUnion[model.Placement]("placement")
	descriptor.AddVariant(u, GeometryPlacement)
	descriptor.AddVariant(u, NetworkPlacement)
	descriptor.AddVariant(u, SimNetworkPlacement)
	return u
}()

// Instance describes model.Instance.
var Instance = &descriptor.Entity[model.Instance]{
	Kind:   "INSTANCE",
	IDKind: ids.KindInstance,
	Name:   func(i *model.Instance) string { return i.Name },
	Fields: []*descriptor.Field[model.Instance]{
		descriptor.OwnID("ID", CodeID, ids.KindInstance, func(i *model.Instance) *ids.EntityID { return &i.ID }),
		descriptor.String("Name", codeInstanceName, func(i *model.Instance) *string { return &i.Name }),
		descriptor.Enum("InstanceType", codeInstanceType, func(i *model.Instance) *model.InstanceType { return &i.InstanceType }),
		descriptor.Bool("PropagateChanges", codeInstancePropagate, func(i *model.Instance) *bool { return &i.PropagateChanges }).
			Since(version.InstancePropagation).
			Default(func(i *model.Instance) { i.PropagateChanges = true }),
		descriptor.Bool("Realized", codeInstanceRealized, func(i *model.Instance) *bool { return &i.Realized }).
			Since(version.InstanceSizes),
		descriptor.List("Placements", codeInstancePlacements, descriptor.Codec[model.Placement](Placement),
			func(i *model.Instance) *[]model.Placement { return &i.Placements }),
		descriptor.Values("ParameterValues", codeInstanceParameters, InstanceParameterValue,
			func(i *model.Instance) *[]model.InstanceParameterValue { return &i.ParameterValues }),
	},
}
