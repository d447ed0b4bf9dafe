package migrate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

var project = uuid.MustParse("5d8f0c3a-7b21-4e6d-a9c4-1e2f3a4b5c6d")

func id(n uint64) ids.EntityID { return ids.New(project, n) }

func param(n uint64, name string, auto bool) *model.DoubleParameter {
	return &model.DoubleParameter{ParameterBase: model.ParameterBase{ID: id(n), Name: name, IsAutoGenerated: auto}}
}

func child(c *model.Component) *model.ChildComponentSlot {
	return &model.ChildComponentSlot{Component: c}
}

// legacyTree builds a root with four auto-generated children:
// removable, one with a user parameter, one referenced from outside and
// one whose parameter is bound by a calculation.
func legacyTree() *model.Component {
	bound := param(31, "bound", true)
	return &model.Component{
		ID:   id(1),
		Name: "root",
		Calculations: []*model.Calculation{{
			ID:     id(90),
			Inputs: []model.CalculationBinding{{Symbol: "x", Parameter: model.RefTo[model.Parameter](bound.ID)}},
		}},
		Children: []*model.ChildComponentSlot{
			child(&model.Component{ID: id(10), Name: "removable", IsAutoGenerated: true,
				Parameters: []model.Parameter{param(11, "auto", true)}}),
			child(&model.Component{ID: id(20), Name: "user param", IsAutoGenerated: true,
				Parameters: []model.Parameter{param(21, "typed by user", false)}}),
			child(&model.Component{ID: id(30), Name: "bound param", IsAutoGenerated: true,
				Parameters: []model.Parameter{bound}}),
			child(&model.Component{ID: id(40), Name: "referenced", IsAutoGenerated: true}),
		},
	}
}

func names(c *model.Component) []string {
	var out []string
	for _, s := range c.Children {
		out = append(out, s.Component.Name)
	}
	return out
}

func TestRemoveAutoGenerated(t *testing.T) {
	root := legacyTree()
	g := &Graph{Components: []*model.Component{root}, References: []ids.EntityID{id(40)}}

	reports := Default(WithLogger(discard())).Apply(g, version.AutoGenerationRemoval-1)
	r := reports[0]
	if r.Migration != "remove-autogenerated-components" {
		t.Fatalf("first report = %q", r.Migration)
	}
	if r.Removed != 1 || r.Demoted != 3 {
		t.Errorf("Removed, Demoted = %d, %d, want 1, 3", r.Removed, r.Demoted)
	}
	want := []string{"user param", "bound param", "referenced"}
	if diff := cmp.Diff(want, names(root)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	for _, s := range root.Children {
		if s.Component.IsAutoGenerated {
			t.Errorf("%s still auto-generated", s.Component.Name)
		}
	}
}

func TestRemoveAutoGenerated_NestedChainRemovedBottomUp(t *testing.T) {
	leaf := &model.Component{ID: id(3), Name: "leaf", IsAutoGenerated: true}
	mid := &model.Component{ID: id(2), Name: "mid", IsAutoGenerated: true, Children: []*model.ChildComponentSlot{child(leaf)}}
	root := &model.Component{ID: id(1), Name: "root", Children: []*model.ChildComponentSlot{child(mid)}}

	var r Report
	removeAutoGenerated(&Graph{Components: []*model.Component{root}}, &r, discard())
	if r.Removed != 2 || len(root.Children) != 0 {
		t.Errorf("Removed = %d, children = %d, want 2, 0", r.Removed, len(root.Children))
	}
}

func TestRemoveAutoGenerated_RootIsDemotedWithProblem(t *testing.T) {
	root := &model.Component{ID: id(1), Name: "generated root", IsAutoGenerated: true}
	r := Report{Migration: "remove-autogenerated-components"}
	removeAutoGenerated(&Graph{Components: []*model.Component{root}}, &r, discard())
	if root.IsAutoGenerated || r.Demoted != 1 {
		t.Errorf("root IsAutoGenerated = %v, Demoted = %d", root.IsAutoGenerated, r.Demoted)
	}
	if len(r.Problems) != 1 || r.Problems[0].Subject != "generated root" {
		t.Errorf("Problems = %v, want one for the root", r.Problems)
	}
}

func TestSlotNamesToTaxonomy(t *testing.T) {
	cost := &model.TaxonomyEntry{
		ID:           id(501),
		Key:          "cost",
		Localization: model.Localization{Entries: []model.LocalizationEntry{{Name: "Kosten"}}},
	}
	slots := &model.Taxonomy{ID: id(500), Key: model.SlotTaxonomyKey, Entries: []*model.TaxonomyEntry{cost}}
	reg := resolve.NewRegistry(project)
	if _, err := reg.Register(cost.ID, cost); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	sub := &model.Component{ID: id(2), Slots: []model.TaxonomySlot{{LegacyName: "Unbekannt"}}}
	root := &model.Component{
		ID:       id(1),
		Slots:    []model.TaxonomySlot{{LegacyName: "Kosten"}},
		Children: []*model.ChildComponentSlot{{Slot: model.TaxonomySlot{LegacyName: "cost"}, Component: sub}},
	}
	g := &Graph{Components: []*model.Component{root}, Taxonomies: []*model.Taxonomy{slots}, Registry: reg}

	var r Report
	slotNamesToTaxonomy(g, &r, discard())
	if r.Mapped != 2 {
		t.Errorf("Mapped = %d, want 2", r.Mapped)
	}
	if got := root.Slots[0].Entry; got.ID != cost.ID || !got.IsResolved() {
		t.Errorf("root slot = %+v, want resolved ref to %v", got, cost.ID)
	}
	if sub.Slots[0].LegacyName != "Unbekannt" || !sub.Slots[0].Entry.IsEmpty() {
		t.Errorf("unknown slot changed: %+v", sub.Slots[0])
	}
	if len(r.Problems) != 1 {
		t.Errorf("Problems = %v, want one for the unknown name", r.Problems)
	}
}

func TestRenameReservedParameters(t *testing.T) {
	root := &model.Component{ID: id(1), Parameters: []model.Parameter{param(2, "NRTotal", false), param(3, "Length", false)}}
	var r Report
	renameReservedParameters(&Graph{Components: []*model.Component{root}}, &r, discard())
	if r.Renamed != 1 {
		t.Errorf("Renamed = %d, want 1", r.Renamed)
	}
	if got := root.Parameters[0].Base().Name; got != "NRᴛᴏᴛᴀʟ" {
		t.Errorf("Name = %q", got)
	}
}

func TestEngine_Gates(t *testing.T) {
	tests := []struct {
		fileVersion int
		want        []string
	}{
		{0, []string{"remove-autogenerated-components", "slot-names-to-taxonomy", "rename-reserved-parameters"}},
		{version.ReservedParameterNames, []string{"remove-autogenerated-components", "slot-names-to-taxonomy"}},
		{version.TaxonomySlots, []string{"remove-autogenerated-components"}},
		{version.AutoGenerationRemoval, nil},
		{version.Current, nil},
	}
	for _, tt := range tests {
		var got []string
		for _, r := range Default(WithLogger(discard())).Apply(&Graph{}, tt.fileVersion) {
			got = append(got, r.Migration)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Apply(v%d) migrations mismatch (-want +got):\n%s", tt.fileVersion, diff)
		}
	}
}

func TestEngine_Idempotent(t *testing.T) {
	build := func() (*model.Component, *Graph) {
		root := legacyTree()
		root.Parameters = []model.Parameter{param(5, "ARMin", false)}
		root.Slots = []model.TaxonomySlot{{LegacyName: "nowhere"}}
		return root, &Graph{Components: []*model.Component{root}, References: []ids.EntityID{id(40)}}
	}
	e := Default(WithLogger(discard()))

	once, g1 := build()
	e.Apply(g1, 0)

	twice, g2 := build()
	e.Apply(g2, 0)
	for _, r := range e.Apply(g2, 0) {
		if r.Changed() {
			t.Errorf("second run of %s changed the graph: %+v", r.Migration, r)
		}
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second run changed the graph (-once +twice):\n%s", diff)
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
