package ids

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

// ParameterIDOffset was subtracted from parameter ids before version 6.
const ParameterIDOffset = 1076741824

// legacyNetworkScope marks local ids derived from per-network numbering so
// they cannot collide with project-wide ids.
const legacyNetworkScope = uint64(1) << 62

// Raw is an id as it was read from the stream, before interpretation.
type Raw struct {
	Global uuid.UUID // uuid.Nil when the file stored no project
	Local  int64
}

// Context carries what a decoder needs besides the raw value.
type Context struct {
	FileVersion int
	Project     uuid.UUID // calling project, substituted for missing GUIDs
	Scope       uint64    // scope of the enclosing network, for per-network numbering
	Scopes      *Scopes   // numbering of per-network ids within one read
}

// Decoder interprets a raw id.
type Decoder func(raw Raw, ctx Context) EntityID

// Rule applies Decode to files with version >= FromVersion, until a rule
// with a higher FromVersion supersedes it.
type Rule struct {
	FromVersion int
	Decode      Decoder
}

// Table maps entity kinds to their legacy rules. Rules are only ever added.
type Table struct {
	rules    map[Kind][]Rule
	fallback []Rule
}

// NewTable creates a table whose kinds without own rules use fallback.
func NewTable(fallback ...Rule) *Table {
	t := &Table{rules: make(map[Kind][]Rule)}
	t.fallback = sortRules(fallback)
	return t
}

// Add registers rules for kind.
func (t *Table) Add(kind Kind, rules ...Rule) {
	t.rules[kind] = sortRules(append(t.rules[kind], rules...))
}

// Translate decodes raw for kind as it was written by a file of
// ctx.FileVersion.
func (t *Table) Translate(kind Kind, raw Raw, ctx Context) EntityID {
	rules, ok := t.rules[kind]
	if !ok {
		rules = t.fallback
	}
	// rules are sorted by descending FromVersion
	for _, r := range rules {
		if ctx.FileVersion >= r.FromVersion {
			return r.Decode(raw, ctx)
		}
	}
	return DecodeGlobal(raw, ctx)
}

func sortRules(rules []Rule) []Rule {
	out := append([]Rule(nil), rules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].FromVersion > out[j].FromVersion })
	return out
}

// DecodeGlobal is the current scheme: project GUID plus local id, with the
// calling project substituted when the GUID is missing.
func DecodeGlobal(raw Raw, ctx Context) EntityID {
	if raw.Local <= 0 {
		return Empty
	}
	return New(raw.Global, uint64(raw.Local)).WithProject(ctx.Project)
}

// DecodeLocal ignores any stored GUID and places the id in the calling project.
func DecodeLocal(raw Raw, ctx Context) EntityID {
	if raw.Local <= 0 {
		return Empty
	}
	return New(ctx.Project, uint64(raw.Local))
}

// DecodeParameterOffset adds back ParameterIDOffset.
func DecodeParameterOffset(raw Raw, ctx Context) EntityID {
	local := raw.Local + ParameterIDOffset
	if local <= 0 {
		return Empty
	}
	return New(ctx.Project, uint64(local))
}

// DecodeNetworkScoped maps per-network numbering, where negative values meant
// "no element", into the project id space. Each number gets a dense id per
// scope from ctx.Scopes. Without Scopes the scope and the low 24 bits of the
// number are packed, which is only unique for small numbers.
func DecodeNetworkScoped(raw Raw, ctx Context) EntityID {
	if raw.Local < 0 {
		return Empty
	}
	if ctx.Scopes != nil {
		return New(ctx.Project, legacyNetworkScope|ctx.Scopes.ID(ctx.Scope, raw.Local))
	}
	local := legacyNetworkScope | ctx.Scope<<24 | uint64(raw.Local)&0xFFFFFF
	return New(ctx.Project, local)
}

// LegacyScope returns the scope the children of a network with id are
// numbered in. ok is false for ids that were not decoded from per-network
// numbering.
func LegacyScope(id EntityID) (scope uint64, ok bool) {
	if id.LocalID&legacyNetworkScope == 0 {
		return 0, false
	}
	return id.LocalID &^ legacyNetworkScope, true
}

type scopedNumber struct {
	scope  uint64
	number int64
}

// Scopes numbers the elements of legacy flow networks during one read.
// Element numbers were only unique inside their network, so every (scope,
// number) pair gets its own dense id. The dense id of a network is the
// scope its children are numbered in; scope 0 holds top-level networks.
type Scopes struct {
	ids      map[scopedNumber]uint64
	keys     []scopedNumber // by dense id - 1
	networks []uint64
	entered  map[uint64]bool
}

// NewScopes creates an empty numbering.
func NewScopes() *Scopes {
	return &Scopes{
		ids:     make(map[scopedNumber]uint64),
		entered: make(map[uint64]bool),
	}
}

// ID returns the dense id of number within scope, assigning the next one
// on first use.
func (s *Scopes) ID(scope uint64, number int64) uint64 {
	k := scopedNumber{scope: scope, number: number}
	if id, ok := s.ids[k]; ok {
		return id
	}
	s.keys = append(s.keys, k)
	id := uint64(len(s.keys))
	s.ids[k] = id
	return id
}

// Enter records that scope belongs to a network.
func (s *Scopes) Enter(scope uint64) {
	if s.entered[scope] {
		return
	}
	s.entered[scope] = true
	s.networks = append(s.networks, scope)
}

// Network returns the scope of the network stored under number. Top-level
// networks win over sub networks with the same number; among sub networks
// the first one read wins. ok is false when no such network was entered.
func (s *Scopes) Network(number int64) (scope uint64, ok bool) {
	for _, n := range s.networks {
		if n == 0 || n > uint64(len(s.keys)) {
			continue
		}
		k := s.keys[n-1]
		if k.number != number {
			continue
		}
		if k.scope == 0 {
			return n, true
		}
		if !ok {
			scope, ok = n, true
		}
	}
	return scope, ok
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the shared table with every historical scheme.
func Default() *Table {
	defaultOnce.Do(func() {
		t := NewTable(
			Rule{FromVersion: version.Oldest, Decode: DecodeLocal},
			Rule{FromVersion: version.GlobalIDs, Decode: DecodeGlobal},
		)
		t.Add(KindParameter,
			Rule{FromVersion: version.Oldest, Decode: DecodeParameterOffset},
			Rule{FromVersion: version.GlobalIDs, Decode: DecodeGlobal},
		)
		for _, k := range []Kind{KindFlowNode, KindFlowEdge, KindFlowNetwork} {
			t.Add(k,
				Rule{FromVersion: version.Oldest, Decode: DecodeNetworkScoped},
				Rule{FromVersion: version.NetworkGlobalIDs, Decode: DecodeGlobal},
			)
		}
		defaultTable = t
	})
	return defaultTable
}
