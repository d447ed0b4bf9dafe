package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeTaxonomyKey          codec.Code = 2201
	codeTaxonomyLocalization codec.Code = 2202
	codeTaxonomyLegacyName   codec.Code = 2203
	codeTaxonomyLegacyDesc   codec.Code = 2204
	codeTaxonomyReadonly     codec.Code = 2205
	codeTaxonomyDeletable    codec.Code = 2206
	codeTaxonomyEntries      codec.Code = 2207
	codeTaxonomyChildren     codec.Code = 2208
	codeTaxonomyLanguages    codec.Code = 2209
	codeLocalizationCulture  codec.Code = 2210
	codeLocalizationName     codec.Code = 2211
	codeLocalizationDesc     codec.Code = 2212
)

// LocalizationEntry describes model.LocalizationEntry.
var LocalizationEntry = &descriptor.Entity[model.LocalizationEntry]{
	Kind: "LOCALIZATION",
	Fields: []*descriptor.Field[model.LocalizationEntry]{
		descriptor.String("Culture", codeLocalizationCulture, func(l *model.LocalizationEntry) *string { return &l.Culture }),
		descriptor.String("Name", codeLocalizationName, func(l *model.LocalizationEntry) *string { return &l.Name }),
		descriptor.String("Description", codeLocalizationDesc, func(l *model.LocalizationEntry) *string { return &l.Description }),
	},
}

// localizationField stores the localization of a taxonomy or entry. Before
// localized taxonomies there was a single invariant name and description.
func localizationField[T any](ptr func(*T) *model.Localization) *descriptor.Field[T] {
	entries := func(e *T) *[]model.LocalizationEntry { return &ptr(e).Entries }
	return descriptor.Values("Localization", codeTaxonomyLocalization, LocalizationEntry, entries).
		Legacy(version.TaxonomyLocalization, func(s *descriptor.State[T]) error {
			name, err := s.C.ExpectString(codeTaxonomyLegacyName)
			if err != nil {
				return err
			}
			desc, err := s.C.ExpectString(codeTaxonomyLegacyDesc)
			if err != nil {
				return err
			}
			*entries(s.E) = []model.LocalizationEntry{{Name: name, Description: desc}}
			return nil
		})
}

// TaxonomyEntry describes model.TaxonomyEntry.
var TaxonomyEntry = &descriptor.Entity[model.TaxonomyEntry]{
	Kind:   "TAXONOMY_ENTRY",
	IDKind: ids.KindTaxonomyEntry,
	Name:   func(e *model.TaxonomyEntry) string { return e.Key },
}

// Taxonomy describes model.Taxonomy.
var Taxonomy = &descriptor.Entity[model.Taxonomy]{
	Kind:   "TAXONOMY",
	IDKind: ids.KindTaxonomy,
	Name:   func(t *model.Taxonomy) string { return t.Key },
	Fields: []*descriptor.Field[model.Taxonomy]{
		descriptor.OwnID("ID", CodeID, ids.KindTaxonomy, func(t *model.Taxonomy) *ids.EntityID { return &t.ID }),
		descriptor.String("Key", codeTaxonomyKey, func(t *model.Taxonomy) *string { return &t.Key }),
		localizationField(func(t *model.Taxonomy) *model.Localization { return &t.Localization }),
		descriptor.Bool("IsReadonly", codeTaxonomyReadonly, func(t *model.Taxonomy) *bool { return &t.IsReadonly }),
		descriptor.Bool("IsDeletable", codeTaxonomyDeletable, func(t *model.Taxonomy) *bool { return &t.IsDeletable }),
		descriptor.StringList("Languages", codeTaxonomyLanguages, func(t *model.Taxonomy) *[]string { return &t.Languages }).
			Since(version.TaxonomyLocalization),
		descriptor.List("Entries", codeTaxonomyEntries, descriptor.Codec[*model.TaxonomyEntry](TaxonomyEntry),
			func(t *model.Taxonomy) *[]*model.TaxonomyEntry { return &t.Entries }),
	},
}

func init() {
	TaxonomyEntry.Fields = []*descriptor.Field[model.TaxonomyEntry]{
		descriptor.OwnID("ID", CodeID, ids.KindTaxonomyEntry, func(e *model.TaxonomyEntry) *ids.EntityID { return &e.ID }),
		descriptor.String("Key", codeTaxonomyKey, func(e *model.TaxonomyEntry) *string { return &e.Key }),
		localizationField(func(e *model.TaxonomyEntry) *model.Localization { return &e.Localization }),
		descriptor.List("Children", codeTaxonomyChildren, descriptor.Codec[*model.TaxonomyEntry](TaxonomyEntry),
			func(e *model.TaxonomyEntry) *[]*model.TaxonomyEntry { return &e.Children }),
	}
}
