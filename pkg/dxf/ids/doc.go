// Package ids defines the identifier model shared by every persisted entity
// and the versioned table that translates historical id encodings.
//
// An EntityID pairs the GUID of the owning project with a project-local
// number. A local number of zero is the absent reference.
//
// # Legacy Ids
//
// Older files stored ids differently: parameters carried a large constant
// offset, flow network elements were numbered per network, and no kind
// stored a project GUID. The Table captures these schemes as rules keyed by
// entity kind and the first format version they apply to:
//
//	table := ids.Default()
//	id := table.Translate(ids.KindParameter, raw, ids.Context{
//	    FileVersion: 5,
//	    Project:     projectID,
//	})
//
// The default table is built once and never modified, so it may be shared
// by concurrent reads.
package ids
