package files

import (
	"fmt"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/migrate"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Sections of component files.
const (
	SectionComponents    = "ENTITY_SECTION"
	SectionNetworks      = "NETWORK_SECTION"
	SectionSimNetworks   = "SIMNETWORK_SECTION"
	SectionResources     = "RESOURCE_SECTION"
	SectionAssets        = "ASSET_SECTION"
	SectionValueMappings = "VALUEMAPPING_SECTION"
	SectionUserLists     = "USERLIST_SECTION"
)

// ProjectData is the content of a component file.
type ProjectData struct {
	Components    []*model.Component
	FlowNetworks  []*model.FlowNetwork
	SimNetworks   []*model.SimNetwork
	Resources     []model.ResourceEntry
	Assets        []*model.Asset
	ValueMappings []*model.ValueMapping
	UserLists     []*model.UserComponentList
}

var (
	// Components reads and writes .codxf files.
	Components = newProjectFormat(KindComponents, nil)

	// PublicComponents reads and writes .cpdxf files. Writing keeps only
	// the part of the project selected by PublicPart.
	PublicComponents = newProjectFormat(KindPublicComponents, PublicPart)
)

func newProjectFormat(kind Kind, prepare func(*ProjectData) *ProjectData) *Format[ProjectData] {
	return &Format[ProjectData]{
		kind: kind,
		sections: []section[ProjectData]{
			listSection(SectionComponents, descriptor.Codec[*model.Component](entities.Component),
				func(d *ProjectData) *[]*model.Component { return &d.Components }),
			listSection(SectionNetworks, descriptor.Codec[*model.FlowNetwork](entities.FlowNetwork),
				func(d *ProjectData) *[]*model.FlowNetwork { return &d.FlowNetworks }),
			listSection(SectionSimNetworks, descriptor.Codec[*model.SimNetwork](entities.SimNetwork),
				func(d *ProjectData) *[]*model.SimNetwork { return &d.SimNetworks }),
			listSection(SectionResources, descriptor.Codec[model.ResourceEntry](entities.Resource),
				func(d *ProjectData) *[]model.ResourceEntry { return &d.Resources }),
			listSection(SectionAssets, descriptor.Codec[*model.Asset](entities.Asset),
				func(d *ProjectData) *[]*model.Asset { return &d.Assets }),
			listSection(SectionValueMappings, descriptor.Codec[*model.ValueMapping](entities.ValueMapping),
				func(d *ProjectData) *[]*model.ValueMapping { return &d.ValueMappings }),
			listSection(SectionUserLists, descriptor.Codec[*model.UserComponentList](entities.UserComponentList),
				func(d *ProjectData) *[]*model.UserComponentList { return &d.UserLists }),
		},
		prepare: prepare,
		finish:  validateResources,
		graph:   projectGraph,
	}
}

// validateResources checks that resource keys are unique and that every
// asset points at an existing resource. Dangling assets are reported as
// unresolved references.
func validateResources(d *ProjectData, info *descriptor.ParserInfo, res *Result[ProjectData]) {
	keys := make(map[int]bool)
	model.WalkResources(d.Resources, func(e model.ResourceEntry) {
		b := e.Resource()
		if keys[b.Key] {
			info.Warn(dxferrors.Location{File: info.CurrentFile}, "resource "+b.Name,
				fmt.Sprintf("duplicate resource key %d", b.Key))
		}
		keys[b.Key] = true
	})
	for _, a := range d.Assets {
		if !keys[a.ResourceKey] {
			e := &dxferrors.UnresolvedReferenceError{
				Holder: fmt.Sprintf("ASSET %q", a.ContainedObjectID),
				RawID:  fmt.Sprintf("resource %d", a.ResourceKey),
				Reason: "no resource with this key",
			}
			res.Unresolved = append(res.Unresolved, e)
			res.Dangling = append(res.Dangling, e)
		}
	}
}

func projectGraph(d *ProjectData, info *descriptor.ParserInfo, opts ReadOptions) *migrate.Graph {
	g := &migrate.Graph{
		Components: d.Components,
		Taxonomies: opts.Taxonomies,
		Registry:   info.Registry,
	}
	for _, a := range d.Assets {
		for _, ref := range a.Components {
			g.References = append(g.References, ref.ID)
		}
	}
	for _, l := range d.UserLists {
		for _, ref := range l.RootComponents {
			g.References = append(g.References, ref.ID)
		}
	}
	return g
}

// PublicPart returns the part of d that may leave the project: root
// components whose visibility is AlwaysVisible, the networks their
// instances are placed in, the assets linking them and the resources
// those assets point at. Value mappings are never public. d is not
// modified.
func PublicPart(d *ProjectData) *ProjectData {
	out := &ProjectData{}
	exported := make(map[ids.EntityID]bool)
	elements := make(map[ids.EntityID]bool)
	for _, c := range d.Components {
		if c.Visibility != model.VisibilityAlwaysVisible {
			continue
		}
		out.Components = append(out.Components, c)
		c.Walk(func(sub *model.Component) bool {
			exported[sub.ID] = true
			for _, inst := range sub.Instances {
				for _, p := range inst.Placements {
					switch p := p.(type) {
					case *model.NetworkPlacement:
						elements[p.Element.ID] = true
					case *model.SimNetworkPlacement:
						elements[p.Block.ID] = true
					}
				}
			}
			return true
		})
	}

	for _, n := range d.FlowNetworks {
		if flowNetworkContains(n, elements) {
			out.FlowNetworks = append(out.FlowNetworks, n)
		}
	}
	for _, n := range d.SimNetworks {
		if simNetworkContains(n, elements) {
			out.SimNetworks = append(out.SimNetworks, n)
		}
	}

	resourceKeys := make(map[int]bool)
	for _, a := range d.Assets {
		refs := publicRefs(a.Components, exported)
		if len(refs) == 0 {
			continue
		}
		cp := *a
		cp.Components = refs
		out.Assets = append(out.Assets, &cp)
		resourceKeys[a.ResourceKey] = true
	}
	out.Resources = filterResources(d.Resources, resourceKeys)

	for _, l := range d.UserLists {
		refs := publicRefs(l.RootComponents, exported)
		if len(refs) == 0 {
			continue
		}
		cp := *l
		cp.RootComponents = refs
		out.UserLists = append(out.UserLists, &cp)
	}
	return out
}

func publicRefs(refs []model.Ref[*model.Component], exported map[ids.EntityID]bool) []model.Ref[*model.Component] {
	var out []model.Ref[*model.Component]
	for _, r := range refs {
		if exported[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func flowNetworkContains(n *model.FlowNetwork, elements map[ids.EntityID]bool) bool {
	if elements[n.ID] {
		return true
	}
	for _, node := range n.Nodes {
		if elements[node.ID] {
			return true
		}
	}
	for _, e := range n.Edges {
		if elements[e.ID] {
			return true
		}
	}
	for _, sub := range n.Subnetworks {
		if flowNetworkContains(sub, elements) {
			return true
		}
	}
	return false
}

func simNetworkContains(n *model.SimNetwork, elements map[ids.EntityID]bool) bool {
	for _, b := range n.Blocks {
		if elements[b.ID] {
			return true
		}
	}
	for _, sub := range n.Subnetworks {
		if simNetworkContains(sub, elements) {
			return true
		}
	}
	return false
}

// filterResources keeps the files whose key is in keys and the
// directories leading to them.
func filterResources(entries []model.ResourceEntry, keys map[int]bool) []model.ResourceEntry {
	var out []model.ResourceEntry
	for _, e := range entries {
		switch e := e.(type) {
		case *model.ResourceDirectory:
			children := filterResources(e.Children, keys)
			if len(children) == 0 && !keys[e.Key] {
				continue
			}
			cp := *e
			cp.Children = children
			out = append(out, &cp)
		default:
			if keys[e.Resource().Key] {
				out = append(out, e)
			}
		}
	}
	return out
}
