package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeSiteMaps          codec.Code = 3201
	codeSiteBuildings     codec.Code = 3202
	codeSiteValueMappings codec.Code = 3203
	codeSiteActiveMapping codec.Code = 3204
	codeSiteMapResource   codec.Code = 3211
	codeSiteMapElevation  codec.Code = 3212
	codeBuildingResource  codec.Code = 3213
	codeBuildingColor     codec.Code = 3214
	codeBuildingOffsetX   codec.Code = 3215
	codeBuildingOffsetY   codec.Code = 3216
	codeBuildingOffsetZ   codec.Code = 3217
	codeSiteMappingName   codec.Code = 3218
	codeSiteMappingGUID   codec.Code = 3219
	codeSiteMappingLocal  codec.Code = 3220
	codeGeoMapImage       codec.Code = 3301
	codeGeoMapReferences  codec.Code = 3302
	codeGeoRefImageX      codec.Code = 3311
	codeGeoRefImageY      codec.Code = 3312
	codeGeoRefLongitude   codec.Code = 3313
	codeGeoRefLatitude    codec.Code = 3314
	codeGeoRefHeight      codec.Code = 3315
)

// legacyGeoReferences is the fixed number of references of old geo maps.
const legacyGeoReferences = 2

// SitePlannerMap describes model.SitePlannerMap.
var SitePlannerMap = &descriptor.Entity[model.SitePlannerMap]{
	Kind: "SP_MAP",
	Fields: []*descriptor.Field[model.SitePlannerMap]{
		descriptor.Int("ResourceKey", codeSiteMapResource, func(m *model.SitePlannerMap) *int { return &m.ResourceKey }),
		descriptor.Double("Elevation", codeSiteMapElevation, func(m *model.SitePlannerMap) *float64 { return &m.Elevation }),
	},
}

// SitePlannerBuilding describes model.SitePlannerBuilding.
var SitePlannerBuilding = &descriptor.Entity[model.SitePlannerBuilding]{
	Kind: "SP_BUILDING",
	Fields: []*descriptor.Field[model.SitePlannerBuilding]{
		descriptor.Int("ResourceKey", codeBuildingResource, func(b *model.SitePlannerBuilding) *int { return &b.ResourceKey }),
		descriptor.Uint("CustomColor", codeBuildingColor, func(b *model.SitePlannerBuilding) *uint32 { return &b.CustomColor }),
		point3("Offset", codeBuildingOffsetX, codeBuildingOffsetY, codeBuildingOffsetZ,
			func(b *model.SitePlannerBuilding) *model.Point3 { return &b.Offset }),
	},
}

// SitePlannerValueMapping describes model.SitePlannerValueMapping.
var SitePlannerValueMapping = &descriptor.Entity[model.SitePlannerValueMapping]{
	Kind: "SP_VALUEMAPPING",
	Name: func(m *model.SitePlannerValueMapping) string { return m.Name },
	Fields: []*descriptor.Field[model.SitePlannerValueMapping]{
		descriptor.String("Name", codeSiteMappingName, func(m *model.SitePlannerValueMapping) *string { return &m.Name }),
		descriptor.Ref("Mapping", codeSiteMappingGUID, codeSiteMappingLocal, ids.KindValueMapping,
			func(m *model.SitePlannerValueMapping) *model.Ref[*model.ValueMapping] { return &m.Mapping }),
	},
}

// SitePlannerProject describes model.SitePlannerProject.
var SitePlannerProject = &descriptor.Entity[model.SitePlannerProject]{
	Kind: "SITEPLANNER",
	Fields: []*descriptor.Field[model.SitePlannerProject]{
		descriptor.Values("Maps", codeSiteMaps, SitePlannerMap,
			func(p *model.SitePlannerProject) *[]model.SitePlannerMap { return &p.Maps }),
		descriptor.Values("Buildings", codeSiteBuildings, SitePlannerBuilding,
			func(p *model.SitePlannerProject) *[]model.SitePlannerBuilding { return &p.Buildings }),
		descriptor.Values("ValueMappings", codeSiteValueMappings, SitePlannerValueMapping,
			func(p *model.SitePlannerProject) *[]model.SitePlannerValueMapping { return &p.ValueMappings }).
			Since(version.SitePlannerMappings),
		descriptor.Int("ActiveValueMapping", codeSiteActiveMapping, func(p *model.SitePlannerProject) *int { return &p.ActiveValueMapping }).
			Since(version.SitePlannerMappings).
			Default(func(p *model.SitePlannerProject) { p.ActiveValueMapping = -1 }),
	},
}

// GeoReference describes model.GeoReference.
var GeoReference = &descriptor.Entity[model.GeoReference]{
	Kind: "GEOREF",
	Fields: []*descriptor.Field[model.GeoReference]{
		point2("ImagePosition", codeGeoRefImageX, codeGeoRefImageY, func(r *model.GeoReference) *model.Point2 { return &r.ImagePosition }),
		point3("Location", codeGeoRefLongitude, codeGeoRefLatitude, codeGeoRefHeight,
			func(r *model.GeoReference) *model.Point3 { return &r.Location }),
	},
}

// GeoMap describes model.GeoMap. Old files hold exactly two references
// without a count.
var GeoMap = &descriptor.Entity[model.GeoMap]{
	Kind: "GEOMAP",
	Fields: []*descriptor.Field[model.GeoMap]{
		descriptor.Int("ImageResourceKey", codeGeoMapImage, func(m *model.GeoMap) *int { return &m.ImageResourceKey }),
		descriptor.Values("GeoReferences", codeGeoMapReferences, GeoReference,
			func(m *model.GeoMap) *[]model.GeoReference { return &m.GeoReferences }).
			Legacy(version.GeoReferences, func(s *descriptor.State[model.GeoMap]) error {
				refs := make([]model.GeoReference, legacyGeoReferences)
				for i := range refs {
					if err := GeoReference.ParseInto(s.C, s.Info, &refs[i]); err != nil {
						return err
					}
				}
				s.E.GeoReferences = refs
				return nil
			}),
	},
}
