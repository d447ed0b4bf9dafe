package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// GeometryReference addresses an object inside a geometry resource.
type GeometryReference struct {
	FileID     int
	GeometryID uint64
}

// GeometricRelation relates two geometry objects, typed by a taxonomy entry.
type GeometricRelation struct {
	ID              ids.EntityID
	RelationType    Ref[*TaxonomyEntry]
	IsAutoGenerated bool
	Source          GeometryReference
	Target          GeometryReference
}

// GeometryFileMapping maps the file ids used by relations to resources.
type GeometryFileMapping struct {
	FileID      int
	ResourceKey int
}
