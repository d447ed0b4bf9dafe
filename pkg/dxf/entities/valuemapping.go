package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeMappingName       codec.Code = 2801
	codeMappingTableGUID  codec.Code = 2802
	codeMappingTableLocal codec.Code = 2803
	codeMappingIndexUsage codec.Code = 2804
	codeMappingPrefilter  codec.Code = 2805
	codeMappingTimeline   codec.Code = 2806
	codeMappingColorMap   codec.Code = 2807
	codeMappingMarkers    codec.Code = 2808
	codeMarkerValue       codec.Code = 2811
	codeMarkerColor       codec.Code = 2812
	codeUserListName      codec.Code = 2901
	codeUserListRoots     codec.Code = 2902
	codeUserListRootGUID  codec.Code = 2903
	codeUserListRootLocal codec.Code = 2904
)

// ColorMarker describes model.ColorMarker.
var ColorMarker = &descriptor.Entity[model.ColorMarker]{
	Kind: "COLOR_MARKER",
	Fields: []*descriptor.Field[model.ColorMarker]{
		descriptor.Double("Value", codeMarkerValue, func(m *model.ColorMarker) *float64 { return &m.Value }),
		descriptor.Uint("Color", codeMarkerColor, func(m *model.ColorMarker) *uint32 { return &m.Color }),
	},
}

// ValueMapping describes model.ValueMapping.
var ValueMapping = &descriptor.Entity[model.ValueMapping]{
	Kind:   "VALUEMAPPING",
	IDKind: ids.KindValueMapping,
	Name:   func(m *model.ValueMapping) string { return m.Name },
	Fields: []*descriptor.Field[model.ValueMapping]{
		descriptor.OwnID("ID", CodeID, ids.KindValueMapping, func(m *model.ValueMapping) *ids.EntityID { return &m.ID }),
		descriptor.String("Name", codeMappingName, func(m *model.ValueMapping) *string { return &m.Name }),
		descriptor.Ref("Table", codeMappingTableGUID, codeMappingTableLocal, ids.KindBigTable,
			func(m *model.ValueMapping) *model.Ref[*model.BigTable] { return &m.Table }),
		descriptor.Enum("ComponentIndexUsage", codeMappingIndexUsage,
			func(m *model.ValueMapping) *model.ComponentIndexUsage { return &m.ComponentIndexUsage }),
		descriptor.Enum("Prefilter", codeMappingPrefilter, func(m *model.ValueMapping) *model.PrefilterKind { return &m.Prefilter.Kind }).
			Since(version.ValueMappingPrefilters),
		descriptor.Int("TimelineColumn", codeMappingTimeline, func(m *model.ValueMapping) *int { return &m.Prefilter.Current }).
			Since(version.ValueMappingPrefilters),
		descriptor.Enum("ColorMap", codeMappingColorMap, func(m *model.ValueMapping) *model.ColorMapKind { return &m.ColorMap.Kind }),
		descriptor.Values("Markers", codeMappingMarkers, ColorMarker,
			func(m *model.ValueMapping) *[]model.ColorMarker { return &m.ColorMap.Markers }),
	},
}

// UserComponentList describes model.UserComponentList.
var UserComponentList = &descriptor.Entity[model.UserComponentList]{
	Kind:   "USERCOMPONENTLIST",
	IDKind: ids.KindUserList,
	Name:   func(l *model.UserComponentList) string { return l.Name },
	Fields: []*descriptor.Field[model.UserComponentList]{
		descriptor.OwnID("ID", CodeID, ids.KindUserList, func(l *model.UserComponentList) *ids.EntityID { return &l.ID }),
		descriptor.String("Name", codeUserListName, func(l *model.UserComponentList) *string { return &l.Name }),
		descriptor.RefList("RootComponents", codeUserListRoots, codeUserListRootGUID, codeUserListRootLocal, ids.KindComponent,
			func(l *model.UserComponentList) *[]model.Ref[*model.Component] { return &l.RootComponents }),
	},
}
