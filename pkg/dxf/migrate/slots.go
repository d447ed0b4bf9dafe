package migrate

import (
	"log/slog"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// SlotNamesToTaxonomy returns the migration mapping legacy slot names onto
// entries of the default slot taxonomy. Names without a matching entry are
// kept as they are.
func SlotNamesToTaxonomy() Migration {
	return Migration{
		Name:   "slot-names-to-taxonomy",
		Before: version.TaxonomySlots,
		Run:    slotNamesToTaxonomy,
	}
}

func slotNamesToTaxonomy(g *Graph, r *Report, logger *slog.Logger) {
	var slots *model.Taxonomy
	for _, t := range g.Taxonomies {
		if t.Key == model.SlotTaxonomyKey {
			slots = t
			break
		}
	}

	unknown := make(map[string]bool)
	mapSlot := func(s *model.TaxonomySlot) {
		if !s.Entry.IsEmpty() || s.LegacyName == "" {
			return
		}
		if slots == nil {
			unknown[s.LegacyName] = true
			return
		}
		entry := slots.FindEntry(s.LegacyName)
		if entry == nil {
			unknown[s.LegacyName] = true
			return
		}
		s.Entry = model.RefTo[*model.TaxonomyEntry](entry.ID)
		if g.Registry != nil {
			s.Entry.Handle, _ = g.Registry.Lookup(entry.ID)
		}
		s.LegacyName = ""
		r.Mapped++
	}

	model.WalkAll(g.Components, func(c *model.Component) bool {
		for i := range c.Slots {
			mapSlot(&c.Slots[i])
		}
		for _, s := range c.Children {
			mapSlot(&s.Slot)
		}
		for _, s := range c.References {
			mapSlot(&s.Slot)
		}
		return true
	})

	if slots == nil && len(unknown) > 0 {
		logger.Debug("no slot taxonomy loaded, legacy slot names kept", "names", len(unknown))
	}
	for name := range unknown {
		r.problem(name, "slot name has no entry in the slot taxonomy")
	}
}
