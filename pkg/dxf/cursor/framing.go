package cursor

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"

// Structural codes shared by every file kind.
const (
	// CodeEntityStart starts an entity or a marker; the value is its kind.
	CodeEntityStart codec.Code = 0

	// CodeSectionName carries the name of a section after a SECTION marker.
	CodeSectionName codec.Code = 2

	// NoCode is returned by Cursor.Code at the end of the stream.
	NoCode codec.Code = -1
)

// Markers are entity-start values with structural meaning.
const (
	MarkerSection    = "SECTION"
	MarkerEndSection = "ENDSEC"
	MarkerEndList    = "SEQEND"
	MarkerEOF        = "EOF"
)
