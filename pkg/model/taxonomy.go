package model

import "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"

// SlotTaxonomyKey is the key of the default taxonomy holding component slots.
const SlotTaxonomyKey = "slots"

// Taxonomy is a tree of localized terms.
type Taxonomy struct {
	ID           ids.EntityID
	Key          string
	Localization Localization
	IsReadonly   bool
	IsDeletable  bool
	Languages    []string
	Entries      []*TaxonomyEntry
}

// TaxonomyEntry is a term of a taxonomy.
type TaxonomyEntry struct {
	ID           ids.EntityID
	Key          string
	Localization Localization
	Children     []*TaxonomyEntry
}

// Localization holds a name and description per culture. The empty culture
// is the invariant fallback.
type Localization struct {
	Entries []LocalizationEntry
}

// LocalizationEntry is the text of one culture.
type LocalizationEntry struct {
	Culture     string
	Name        string
	Description string
}

// Localize returns the entry for culture, falling back to the invariant
// culture and then to the first entry.
func (l Localization) Localize(culture string) LocalizationEntry {
	var fallback *LocalizationEntry
	for i := range l.Entries {
		e := &l.Entries[i]
		if e.Culture == culture {
			return *e
		}
		if e.Culture == "" && fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return *fallback
	}
	if len(l.Entries) > 0 {
		return l.Entries[0]
	}
	return LocalizationEntry{}
}

// FindEntry searches the taxonomy for an entry with key or, failing that,
// with an invariant name equal to name.
func (t *Taxonomy) FindEntry(name string) *TaxonomyEntry {
	var found *TaxonomyEntry
	var walk func([]*TaxonomyEntry) bool
	walk = func(entries []*TaxonomyEntry) bool {
		for _, e := range entries {
			if e.Key == name || e.Localization.Localize("").Name == name {
				found = e
				return true
			}
			if walk(e.Children) {
				return true
			}
		}
		return false
	}
	walk(t.Entries)
	return found
}
