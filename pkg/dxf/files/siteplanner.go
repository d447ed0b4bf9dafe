package files

import (
	"fmt"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Sections of site and geometry files.
const (
	SectionSitePlanner  = "SITEPLANNER_SECTION"
	SectionGeoMap       = "GEOMAP_SECTION"
	SectionFileMappings = "FILEMAPPING_SECTION"
	SectionGeoRelations = "GEOMETRYRELATION_SECTION"
)

// SitePlannerData is the content of a site planner file.
type SitePlannerData struct {
	Project *model.SitePlannerProject
}

// GeoMapData is the content of a geo map file.
type GeoMapData struct {
	Map *model.GeoMap
}

// GeometryRelationsData is the content of a geometry relations file.
type GeometryRelationsData struct {
	FileMappings []*model.GeometryFileMapping
	Relations    []*model.GeometricRelation
}

// SitePlanner reads and writes .spdxf files.
var SitePlanner = &Format[SitePlannerData]{
	kind: KindSitePlanner,
	sections: []section[SitePlannerData]{
		singleSection(SectionSitePlanner, entities.SitePlannerProject,
			func(d *SitePlannerData) **model.SitePlannerProject { return &d.Project }),
	},
}

// GeoMaps reads and writes .gmdxf files.
var GeoMaps = &Format[GeoMapData]{
	kind: KindGeoMap,
	sections: []section[GeoMapData]{
		singleSection(SectionGeoMap, entities.GeoMap,
			func(d *GeoMapData) **model.GeoMap { return &d.Map }),
	},
}

// GeometryRelations reads and writes .grdxf files.
var GeometryRelations = &Format[GeometryRelationsData]{
	kind: KindGeometryRelations,
	sections: []section[GeometryRelationsData]{
		listSection(SectionFileMappings, descriptor.Codec[*model.GeometryFileMapping](entities.GeometryFileMapping),
			func(d *GeometryRelationsData) *[]*model.GeometryFileMapping { return &d.FileMappings }),
		listSection(SectionGeoRelations, descriptor.Codec[*model.GeometricRelation](entities.GeometricRelation),
			func(d *GeometryRelationsData) *[]*model.GeometricRelation { return &d.Relations }),
	},
	finish: checkFileMappings,
}

// checkFileMappings warns about relations whose geometry file has no
// mapping. Files written before mappings were stored carry none, so the
// check only runs when at least one mapping is present.
func checkFileMappings(d *GeometryRelationsData, info *descriptor.ParserInfo, _ *Result[GeometryRelationsData]) {
	if len(d.FileMappings) == 0 {
		return
	}
	mapped := make(map[int]bool, len(d.FileMappings))
	for _, m := range d.FileMappings {
		mapped[m.FileID] = true
	}
	for _, r := range d.Relations {
		for _, fileID := range []int{r.Source.FileID, r.Target.FileID} {
			if !mapped[fileID] {
				info.Warn(dxferrors.Location{File: info.CurrentFile}, "relation "+r.ID.String(),
					fmt.Sprintf("geometry file %d has no file mapping", fileID))
			}
		}
	}
}
