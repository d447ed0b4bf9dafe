package files

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies a file kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindComponents
	KindPublicComponents
	KindParameterLibrary
	KindMultiValueLibrary
	KindExcelTools
	KindTaxonomies
	KindSitePlanner
	KindGeoMap
	KindGeometryRelations
	KindUsers
	KindMeta
	KindLinks
)

var kindInfo = map[Kind]struct {
	name string
	ext  string
}{
	KindComponents:        {"components", ".codxf"},
	KindPublicComponents:  {"public-components", ".cpdxf"},
	KindParameterLibrary:  {"parameter-library", ".padxf"},
	KindMultiValueLibrary: {"multivalue-library", ".mvdxf"},
	KindExcelTools:        {"excel-tools", ".etdxf"},
	KindTaxonomies:        {"taxonomies", ".txdxf"},
	KindSitePlanner:       {"siteplanner", ".spdxf"},
	KindGeoMap:            {"geomap", ".gmdxf"},
	KindGeometryRelations: {"geometry-relations", ".grdxf"},
	KindUsers:             {"users", ".usrdxf"},
	KindMeta:              {"meta", ".metadxf"},
	KindLinks:             {"links", ".lidxf"},
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindInfo))
	for k := KindComponents; k <= KindLinks; k++ {
		out = append(out, k)
	}
	return out
}

// String returns the kind name used in logs and metrics labels.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "unknown"
}

// Extension returns the file extension including the dot.
func (k Kind) Extension() string {
	return kindInfo[k].ext
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, info := range kindInfo {
		if info.name == name {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown file kind %q", name)
}

// DetectKind maps a path onto a kind by its extension. Extensions compare
// case-insensitively.
func DetectKind(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	for k, info := range kindInfo {
		if info.ext == ext {
			return k
		}
	}
	return KindUnknown
}
