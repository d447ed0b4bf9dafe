package model

// SitePlannerProject arranges geo maps and building geometry on a site.
type SitePlannerProject struct {
	Maps               []SitePlannerMap
	Buildings          []SitePlannerBuilding
	ValueMappings      []SitePlannerValueMapping
	ActiveValueMapping int // index into ValueMappings, -1 for none
}

// SitePlannerMap references a geo map resource.
type SitePlannerMap struct {
	ResourceKey int
	Elevation   float64
}

// SitePlannerBuilding references a geometry resource placed on the site.
type SitePlannerBuilding struct {
	ResourceKey int
	CustomColor uint32
	Offset      Point3
}

// SitePlannerValueMapping associates a value mapping with the site.
type SitePlannerValueMapping struct {
	Name    string
	Mapping Ref[*ValueMapping]
}

// GeoMap georeferences an image resource.
type GeoMap struct {
	ImageResourceKey int
	GeoReferences    []GeoReference
}

// GeoReference pins an image position to a geographic location.
type GeoReference struct {
	ImagePosition Point2
	Location      Point3 // longitude, latitude, height
}
