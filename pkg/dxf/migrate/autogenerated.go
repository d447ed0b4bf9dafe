package migrate

import (
	"log/slog"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// RemoveAutoGenerated returns the migration dropping automatically
// generated sub components.
//
// A component is removed only when it is auto-generated, all its
// parameters are auto-generated, no child survives and nothing references
// the component or one of its parameters. Auto-generated components that
// have to stay are demoted to regular components. Root components are
// never removed.
func RemoveAutoGenerated() Migration {
	return Migration{
		Name:   "remove-autogenerated-components",
		Before: version.AutoGenerationRemoval,
		Run:    removeAutoGenerated,
	}
}

func removeAutoGenerated(g *Graph, r *Report, _ *slog.Logger) {
	referenced := referencedIDs(g)

	var prune func(c *model.Component)
	prune = func(c *model.Component) {
		kept := c.Children[:0]
		for _, slot := range c.Children {
			child := slot.Component
			if child == nil {
				kept = append(kept, slot)
				continue
			}
			prune(child)
			if removable(child, referenced) {
				r.Removed++
				continue
			}
			if child.IsAutoGenerated {
				child.IsAutoGenerated = false
				r.Demoted++
			}
			kept = append(kept, slot)
		}
		clear(c.Children[len(kept):])
		c.Children = kept
	}

	for _, root := range g.Components {
		prune(root)
		if root.IsAutoGenerated {
			r.problem(root.Name, "auto-generated root component kept as regular component")
			root.IsAutoGenerated = false
			r.Demoted++
		}
	}
}

func removable(c *model.Component, referenced map[ids.EntityID]bool) bool {
	if !c.IsAutoGenerated || len(c.Children) > 0 || referenced[c.ID] {
		return false
	}
	for _, p := range c.Parameters {
		b := p.Base()
		if !b.IsAutoGenerated || referenced[b.ID] {
			return false
		}
	}
	return true
}

// referencedIDs collects every id a reference inside the component tree or
// in g.References points at.
func referencedIDs(g *Graph) map[ids.EntityID]bool {
	set := make(map[ids.EntityID]bool)
	add := func(id ids.EntityID) {
		if !id.IsEmpty() {
			set[id] = true
		}
	}
	for _, id := range g.References {
		add(id)
	}
	model.WalkAll(g.Components, func(c *model.Component) bool {
		for _, ref := range c.References {
			add(ref.Target.ID)
		}
		for _, calc := range c.Calculations {
			for _, b := range calc.Inputs {
				add(b.Parameter.ID)
			}
			for _, b := range calc.Returns {
				add(b.Parameter.ID)
			}
		}
		for _, inst := range c.Instances {
			for _, v := range inst.ParameterValues {
				add(v.Parameter.ID)
			}
		}
		return true
	})
	return set
}
