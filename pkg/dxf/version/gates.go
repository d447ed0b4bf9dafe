package version

import (
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
)

// Oldest is assumed for files without a version section.
const Oldest = 0

// Current is the version every writer emits.
const Current = 31

// Gates mark the first version with a given layout.
const (
	ChatItems              = 4  // components carry chat items
	InstancePropagation    = 5  // parameters store instance propagation
	GlobalIDs              = 6  // ids carry the project GUID, parameter offset dropped
	ResourceVisibility     = 7  // resource files store their visibility
	ReservedParameterNames = 8  // reserved parameter names use their current spelling
	NetworkGlobalIDs       = 9  // flow network elements use project-wide ids
	TypedParameters        = 10 // integer, string, boolean and enum parameters
	ParameterDescription   = 11 // parameters store a description
	TaxonomySlots          = 12 // slots reference taxonomy entries instead of names
	InstanceSizes          = 13 // instances store their placement state
	ValueSourceBlock       = 14 // value sources are nested blocks with a discriminator
	SimNetworks            = 15 // simulation networks are persisted
	AccessProfiles         = 16 // components store access profiles
	AutoGenerationRemoval  = 17 // auto generated child components are no longer written
	ComponentVisibility    = 18 // components store their visibility
	TypedTableCells        = 19 // big-table cells carry their type
	ChatReplies            = 20 // chat items nest replies
	TaxonomyLocalization   = 21 // taxonomies and entries are localized
	GeometricValueSources  = 22 // geometric value sources exist
	FunctionGraphRanges    = 23 // function graphs store their axis ranges
	ValueMappingPrefilters = 24 // value mappings store their prefilter
	UnmappingRules         = 25 // excel tools store unmapping rules
	ParameterTextValue     = 26 // parameters store a free text value
	SitePlannerMappings    = 27 // site planner projects store value mapping associations
	GeoReferences          = 28 // geo maps store more than two georeferences
	MachineHashes          = 29 // links are keyed by a machine hash
	ChildProjects          = 30 // meta files store child project links
	RelationFileMappings   = 31 // geometry relation files store file mappings
)

// IsSupported reports whether v can be read.
func IsSupported(v int) bool {
	return v <= Current
}

// Check returns an UnsupportedVersionError for versions newer than Current.
// Versions older than any known gate are read with the oldest behavior.
func Check(file string, v int) error {
	if !IsSupported(v) {
		return dxferrors.NewUnsupportedVersionError(file, v, Current)
	}
	return nil
}

// Normalize maps negative versions, which no writer ever produced, onto Oldest.
func Normalize(v int) int {
	if v < Oldest {
		return Oldest
	}
	return v
}
