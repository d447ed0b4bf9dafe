package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeRelationTypeGUID     codec.Code = 3401
	codeRelationTypeLocal    codec.Code = 3402
	codeRelationAutoGen      codec.Code = 3403
	codeRelationSourceFile   codec.Code = 3404
	codeRelationSourceObject codec.Code = 3405
	codeRelationTargetFile   codec.Code = 3406
	codeRelationTargetObject codec.Code = 3407
	codeFileMappingID        codec.Code = 3411
	codeFileMappingResource  codec.Code = 3412
)

func geometryReference(name string, fileCode, objectCode codec.Code, ptr func(*model.GeometricRelation) *model.GeometryReference) []*descriptor.Field[model.GeometricRelation] {
	return []*descriptor.Field[model.GeometricRelation]{
		descriptor.Int(name+"File", fileCode, func(r *model.GeometricRelation) *int { return &ptr(r).FileID }),
		descriptor.Uint(name+"Geometry", objectCode, func(r *model.GeometricRelation) *uint64 { return &ptr(r).GeometryID }),
	}
}

// GeometricRelation describes model.GeometricRelation.
var GeometricRelation = &descriptor.Entity[model.GeometricRelation]{
	Kind:   "GEOMETRIC_RELATION",
	IDKind: ids.KindGeometricRelation,
	Fields: append(append([]*descriptor.Field[model.GeometricRelation]{
		descriptor.OwnID("ID", CodeID, ids.KindGeometricRelation, func(r *model.GeometricRelation) *ids.EntityID { return &r.ID }),
		descriptor.Ref("RelationType", codeRelationTypeGUID, codeRelationTypeLocal, ids.KindTaxonomyEntry,
			func(r *model.GeometricRelation) *model.Ref[*model.TaxonomyEntry] { return &r.RelationType }),
		descriptor.Bool("IsAutoGenerated", codeRelationAutoGen, func(r *model.GeometricRelation) *bool { return &r.IsAutoGenerated }),
	}, geometryReference("Source", codeRelationSourceFile, codeRelationSourceObject,
		func(r *model.GeometricRelation) *model.GeometryReference { return &r.Source })...),
		geometryReference("Target", codeRelationTargetFile, codeRelationTargetObject,
			func(r *model.GeometricRelation) *model.GeometryReference { return &r.Target })...),
}

// GeometryFileMapping describes model.GeometryFileMapping.
var GeometryFileMapping = &descriptor.Entity[model.GeometryFileMapping]{
	Kind: "GEOMETRY_FILE_MAPPING",
	Fields: []*descriptor.Field[model.GeometryFileMapping]{
		descriptor.Int("FileID", codeFileMappingID, func(m *model.GeometryFileMapping) *int { return &m.FileID }),
		descriptor.Int("ResourceKey", codeFileMappingResource, func(m *model.GeometryFileMapping) *int { return &m.ResourceKey }),
	},
}
