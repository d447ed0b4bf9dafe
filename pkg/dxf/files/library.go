package files

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Sections of library files.
const (
	SectionParameters     = "PARAMETER_SECTION"
	SectionBigTables      = "BIGTABLE_SECTION"
	SectionFields         = "FIELD3D_SECTION"
	SectionFunctionGraphs = "FUNCTIONGRAPH_SECTION"
	SectionExcelTools     = "EXCEL_SECTION"
	SectionTaxonomies     = "TAXONOMY_SECTION"
)

// ParameterLibraryData is the content of a parameter library.
type ParameterLibraryData struct {
	Parameters []model.Parameter
}

// MultiValueData is the content of a multi-value library.
type MultiValueData struct {
	BigTables      []*model.BigTable
	Fields         []*model.Field3D
	FunctionGraphs []*model.FunctionGraph
}

// ExcelToolData is the content of an excel mapping file.
type ExcelToolData struct {
	Tools []*model.ExcelTool
}

// TaxonomyData is the content of a taxonomy file.
type TaxonomyData struct {
	Taxonomies []*model.Taxonomy
}

// ParameterLibrary reads and writes .padxf files.
var ParameterLibrary = &Format[ParameterLibraryData]{
	kind: KindParameterLibrary,
	sections: []section[ParameterLibraryData]{
		listSection(SectionParameters, descriptor.Codec[model.Parameter](entities.Parameter),
			func(d *ParameterLibraryData) *[]model.Parameter { return &d.Parameters }),
	},
}

// MultiValues reads and writes .mvdxf files.
var MultiValues = &Format[MultiValueData]{
	kind: KindMultiValueLibrary,
	sections: []section[MultiValueData]{
		listSection(SectionBigTables, descriptor.Codec[*model.BigTable](entities.BigTable),
			func(d *MultiValueData) *[]*model.BigTable { return &d.BigTables }),
		listSection(SectionFields, descriptor.Codec[*model.Field3D](entities.Field3D),
			func(d *MultiValueData) *[]*model.Field3D { return &d.Fields }),
		listSection(SectionFunctionGraphs, descriptor.Codec[*model.FunctionGraph](entities.FunctionGraph),
			func(d *MultiValueData) *[]*model.FunctionGraph { return &d.FunctionGraphs }),
	},
}

// ExcelTools reads and writes .etdxf files.
var ExcelTools = &Format[ExcelToolData]{
	kind: KindExcelTools,
	sections: []section[ExcelToolData]{
		listSection(SectionExcelTools, descriptor.Codec[*model.ExcelTool](entities.ExcelTool),
			func(d *ExcelToolData) *[]*model.ExcelTool { return &d.Tools }),
	},
}

// Taxonomies reads and writes .txdxf files.
var Taxonomies = &Format[TaxonomyData]{
	kind: KindTaxonomies,
	sections: []section[TaxonomyData]{
		listSection(SectionTaxonomies, descriptor.Codec[*model.Taxonomy](entities.Taxonomy),
			func(d *TaxonomyData) *[]*model.Taxonomy { return &d.Taxonomies }),
	},
	finish: checkTaxonomyKeys,
}

// checkTaxonomyKeys warns about taxonomies sharing a key, which makes
// lookups by key ambiguous.
func checkTaxonomyKeys(d *TaxonomyData, info *descriptor.ParserInfo, _ *Result[TaxonomyData]) {
	seen := make(map[string]bool, len(d.Taxonomies))
	for _, t := range d.Taxonomies {
		if t.Key == "" {
			continue
		}
		if seen[t.Key] {
			info.Warn(dxferrors.Location{File: info.CurrentFile}, "taxonomy "+t.Key, "duplicate taxonomy key")
		}
		seen[t.Key] = true
	}
}
