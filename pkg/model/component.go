package model

import (
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
)

// Visibility controls where a component may be shown.
type Visibility int

const (
	VisibilityVisibleInProject Visibility = iota
	VisibilityAlwaysVisible
	VisibilityHidden
)

// InstanceType describes what instances of a component are placed in.
type InstanceType int

const (
	InstanceTypeNone InstanceType = iota
	InstanceTypeAttributes
	InstanceTypeGeometricVolume
	InstanceTypeGeometricSurface
	InstanceTypeNetworkNode
	InstanceTypeNetworkEdge
	InstanceTypeGroup
	InstanceTypeSimNetworkBlock
)

// Component is a node of the component tree.
type Component struct {
	ID              ids.EntityID
	Name            string
	Description     string
	IsAutoGenerated bool
	Visibility      Visibility
	InstanceType    InstanceType
	Slots           []TaxonomySlot
	Parameters      []Parameter
	Calculations    []*Calculation
	Children        []*ChildComponentSlot
	References      []*ReferenceSlot
	Instances       []*Instance
	ChatItems       []*ChatItem
	AccessProfile   []AccessEntry
}

// TaxonomySlot classifies a component by a taxonomy entry. Files written
// before slots became taxonomy entries store only LegacyName.
type TaxonomySlot struct {
	Entry      Ref[*TaxonomyEntry]
	LegacyName string
}

// IsEmpty reports whether the slot carries neither an entry nor a name.
func (s TaxonomySlot) IsEmpty() bool {
	return s.Entry.IsEmpty() && s.LegacyName == ""
}

// ChildComponentSlot owns a sub component.
type ChildComponentSlot struct {
	Slot      TaxonomySlot
	Extension string
	Component *Component // nil for an empty slot
}

// ReferenceSlot references a component elsewhere in this or another project.
type ReferenceSlot struct {
	Slot      TaxonomySlot
	Extension string
	Target    Ref[*Component]
}

// Calculation computes return parameters from input parameters.
type Calculation struct {
	ID         ids.EntityID
	Name       string
	Expression string
	Inputs     []CalculationBinding
	Returns    []CalculationBinding
}

// CalculationBinding binds an expression symbol to a parameter.
type CalculationBinding struct {
	Symbol    string
	Parameter Ref[Parameter]
}

// ChatItemType is the role of a chat item in a discussion.
type ChatItemType int

const (
	ChatQuestion ChatItemType = iota
	ChatAnswer
	ChatVotingSession
	ChatVote
)

// ChatItemState is the lifecycle state of a chat item.
type ChatItemState int

const (
	ChatOpen ChatItemState = iota
	ChatClosed
)

// ChatItem is a message attached to a component.
type ChatItem struct {
	Type             ChatItemType
	Author           UserRole
	GitCommitKey     string
	Timestamp        time.Time
	Message          string
	State            ChatItemState
	ExpectsResponses []UserRole
	Replies          []*ChatItem
}

// Access is the set of rights a role has on a component.
type Access uint32

const (
	AccessNone      Access = 0
	AccessRead      Access = 1 << 0
	AccessWrite     Access = 1 << 1
	AccessSupervize Access = 1 << 2
	AccessRelease   Access = 1 << 3
)

// AccessEntry grants a role access to a component.
type AccessEntry struct {
	Role          UserRole
	Access        Access
	LastWrite     time.Time
	LastSupervize time.Time
	LastRelease   time.Time
}

// Walk calls fn for c and every sub component below it, depth first.
// Returning false from fn skips the children of that component.
func (c *Component) Walk(fn func(*Component) bool) {
	if !fn(c) {
		return
	}
	for _, child := range c.Children {
		if child.Component != nil {
			child.Component.Walk(fn)
		}
	}
}

// WalkAll walks every component of a forest.
func WalkAll(roots []*Component, fn func(*Component) bool) {
	for _, c := range roots {
		c.Walk(fn)
	}
}
