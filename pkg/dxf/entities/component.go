package entities

import (
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeComponentName          codec.Code = 1001
	codeComponentDescription   codec.Code = 1002
	codeComponentAutoGenerated codec.Code = 1003
	codeComponentVisibility    codec.Code = 1004
	codeComponentInstanceType  codec.Code = 1005
	codeComponentSlots         codec.Code = 1010
	codeComponentLegacySlot    codec.Code = 1011
	codeComponentParameters    codec.Code = 1020
	codeComponentCalculations  codec.Code = 1021
	codeComponentChildren      codec.Code = 1022
	codeComponentReferences    codec.Code = 1023
	codeComponentInstances     codec.Code = 1024
	codeComponentChatItems     codec.Code = 1025
	codeComponentAccess        codec.Code = 1026
	codeSlotEntryGUID          codec.Code = 1101
	codeSlotEntryLocal         codec.Code = 1102
	codeSlotLegacyName         codec.Code = 1103
	codeSlotExtension          codec.Code = 1104
	codeSlotComponent          codec.Code = 1105
	codeSlotTargetGUID         codec.Code = 1106
	codeSlotTargetLocal        codec.Code = 1107
	codeCalcExpression         codec.Code = 1201
	codeCalcInputs             codec.Code = 1202
	codeCalcReturns            codec.Code = 1203
	codeCalcName               codec.Code = 1204
	codeBindingSymbol          codec.Code = 1211
	codeBindingParamGUID       codec.Code = 1212
	codeBindingParamLocal      codec.Code = 1213
	codeChatType               codec.Code = 1301
	codeChatAuthor             codec.Code = 1302
	codeChatCommit             codec.Code = 1303
	codeChatTimestamp          codec.Code = 1304
	codeChatMessage            codec.Code = 1305
	codeChatState              codec.Code = 1306
	codeChatExpects            codec.Code = 1307
	codeChatReplies            codec.Code = 1308
	codeAccessRole             codec.Code = 1401
	codeAccessRights           codec.Code = 1402
	codeAccessLastWrite        codec.Code = 1403
	codeAccessLastSupervize    codec.Code = 1404
	codeAccessLastRelease      codec.Code = 1405
)

var (
	// Component describes model.Component. Sub components are nested
	// through ChildSlot.
	Component = &descriptor.Entity[model.Component]{
		Kind:   "COMPONENT",
		IDKind: ids.KindComponent,
		Name:   func(c *model.Component) string { return c.Name },
	}

	// ChildSlot describes model.ChildComponentSlot.
	ChildSlot = &descriptor.Entity[model.ChildComponentSlot]{
		Kind: "CHILD_SLOT",
		Name: func(s *model.ChildComponentSlot) string { return s.Extension },
	}

	// ChatItem describes model.ChatItem with its nested replies.
	ChatItem = &descriptor.Entity[model.ChatItem]{
		Kind: "CHAT_ITEM",
	}
)

// TaxonomySlot describes model.TaxonomySlot. Files before taxonomy slots
// carry only the slot name.
var TaxonomySlot = &descriptor.Entity[model.TaxonomySlot]{
	Kind: "SLOT",
	Fields: []*descriptor.Field[model.TaxonomySlot]{
		descriptor.Ref("Entry", codeSlotEntryGUID, codeSlotEntryLocal, ids.KindTaxonomyEntry,
			func(s *model.TaxonomySlot) *model.Ref[*model.TaxonomyEntry] { return &s.Entry }).
			Since(version.TaxonomySlots),
		descriptor.String("LegacyName", codeSlotLegacyName, func(s *model.TaxonomySlot) *string { return &s.LegacyName }),
	},
}

// slotFields stores a slot inline in the holding entity.
func slotFields[T any](slot func(*T) *model.TaxonomySlot) []*descriptor.Field[T] {
	return []*descriptor.Field[T]{
		descriptor.Ref("SlotEntry", codeSlotEntryGUID, codeSlotEntryLocal, ids.KindTaxonomyEntry,
			func(e *T) *model.Ref[*model.TaxonomyEntry] { return &slot(e).Entry }).
			Since(version.TaxonomySlots),
		descriptor.String("SlotName", codeSlotLegacyName, func(e *T) *string { return &slot(e).LegacyName }),
	}
}

// ReferenceSlot describes model.ReferenceSlot.
var ReferenceSlot = &descriptor.Entity[model.ReferenceSlot]{
	Kind: "REFERENCE_SLOT",
	Name: func(s *model.ReferenceSlot) string { return s.Extension },
	Fields: append(slotFields(func(s *model.ReferenceSlot) *model.TaxonomySlot { return &s.Slot }),
		descriptor.String("Extension", codeSlotExtension, func(s *model.ReferenceSlot) *string { return &s.Extension }),
		descriptor.Ref("Target", codeSlotTargetGUID, codeSlotTargetLocal, ids.KindComponent,
			func(s *model.ReferenceSlot) *model.Ref[*model.Component] { return &s.Target }),
	),
}

// CalculationBinding describes model.CalculationBinding.
var CalculationBinding = &descriptor.Entity[model.CalculationBinding]{
	Kind: "CALC_PARAMETER",
	Name: func(b *model.CalculationBinding) string { return b.Symbol },
	Fields: []*descriptor.Field[model.CalculationBinding]{
		descriptor.String("Symbol", codeBindingSymbol, func(b *model.CalculationBinding) *string { return &b.Symbol }),
		descriptor.Ref("Parameter", codeBindingParamGUID, codeBindingParamLocal, ids.KindParameter,
			func(b *model.CalculationBinding) *model.Ref[model.Parameter] { return &b.Parameter }),
	},
}

// Calculation describes model.Calculation.
var Calculation = &descriptor.Entity[model.Calculation]{
	Kind:   "CALCULATION",
	IDKind: ids.KindCalculation,
	Name:   func(c *model.Calculation) string { return c.Name },
	Fields: []*descriptor.Field[model.Calculation]{
		descriptor.OwnID("ID", CodeID, ids.KindCalculation, func(c *model.Calculation) *ids.EntityID { return &c.ID }),
		descriptor.String("Name", codeCalcName, func(c *model.Calculation) *string { return &c.Name }),
		descriptor.String("Expression", codeCalcExpression, func(c *model.Calculation) *string { return &c.Expression }),
		descriptor.Values("Inputs", codeCalcInputs, CalculationBinding, func(c *model.Calculation) *[]model.CalculationBinding { return &c.Inputs }),
		descriptor.Values("Returns", codeCalcReturns, CalculationBinding, func(c *model.Calculation) *[]model.CalculationBinding { return &c.Returns }),
	},
}

// AccessEntry describes model.AccessEntry.
var AccessEntry = &descriptor.Entity[model.AccessEntry]{
	Kind: "ACCESS_PROFILE_ENTRY",
	Fields: []*descriptor.Field[model.AccessEntry]{
		descriptor.Enum("Role", codeAccessRole, func(a *model.AccessEntry) *model.UserRole { return &a.Role }),
		descriptor.Flags("Access", codeAccessRights, func(a *model.AccessEntry) *model.Access { return &a.Access }),
		descriptor.Time("LastWrite", codeAccessLastWrite, func(a *model.AccessEntry) *time.Time { return &a.LastWrite }),
		descriptor.Time("LastSupervize", codeAccessLastSupervize, func(a *model.AccessEntry) *time.Time { return &a.LastSupervize }),
		descriptor.Time("LastRelease", codeAccessLastRelease, func(a *model.AccessEntry) *time.Time { return &a.LastRelease }),
	},
}

func init() {
	Component.Fields = []*descriptor.Field[model.Component]{
		descriptor.OwnID("ID", CodeID, ids.KindComponent, func(c *model.Component) *ids.EntityID { return &c.ID }),
		descriptor.String("Name", codeComponentName, func(c *model.Component) *string { return &c.Name }),
		descriptor.String("Description", codeComponentDescription, func(c *model.Component) *string { return &c.Description }),
		descriptor.Bool("IsAutoGenerated", codeComponentAutoGenerated, func(c *model.Component) *bool { return &c.IsAutoGenerated }),
		descriptor.Enum("Visibility", codeComponentVisibility, func(c *model.Component) *model.Visibility { return &c.Visibility }).
			Since(version.ComponentVisibility),
		descriptor.Enum("InstanceType", codeComponentInstanceType, func(c *model.Component) *model.InstanceType { return &c.InstanceType }),
		descriptor.Values("Slots", codeComponentSlots, TaxonomySlot, func(c *model.Component) *[]model.TaxonomySlot { return &c.Slots }).
			Legacy(version.TaxonomySlots, readLegacySlot),
		descriptor.List("Parameters", codeComponentParameters, descriptor.Codec[model.Parameter](Parameter),
			func(c *model.Component) *[]model.Parameter { return &c.Parameters }),
		descriptor.List("Calculations", codeComponentCalculations, descriptor.Codec[*model.Calculation](Calculation),
			func(c *model.Component) *[]*model.Calculation { return &c.Calculations }),
		descriptor.List("Children", codeComponentChildren, descriptor.Codec[*model.ChildComponentSlot](ChildSlot),
			func(c *model.Component) *[]*model.ChildComponentSlot { return &c.Children }),
		descriptor.List("References", codeComponentReferences, descriptor.Codec[*model.ReferenceSlot](ReferenceSlot),
			func(c *model.Component) *[]*model.ReferenceSlot { return &c.References }),
		descriptor.List("Instances", codeComponentInstances, descriptor.Codec[*model.Instance](Instance),
			func(c *model.Component) *[]*model.Instance { return &c.Instances }),
		descriptor.List("ChatItems", codeComponentChatItems, descriptor.Codec[*model.ChatItem](ChatItem),
			func(c *model.Component) *[]*model.ChatItem { return &c.ChatItems }).
			Since(version.ChatItems),
		descriptor.Values("AccessProfile", codeComponentAccess, AccessEntry, func(c *model.Component) *[]model.AccessEntry { return &c.AccessProfile }).
			Since(version.AccessProfiles),
	}

	ChildSlot.Fields = append(slotFields(func(s *model.ChildComponentSlot) *model.TaxonomySlot { return &s.Slot }),
		descriptor.String("Extension", codeSlotExtension, func(s *model.ChildComponentSlot) *string { return &s.Extension }),
		descriptor.Single("Component", codeSlotComponent, descriptor.Codec[*model.Component](Component),
			func(s *model.ChildComponentSlot) **model.Component { return &s.Component }),
	)

	ChatItem.Fields = []*descriptor.Field[model.ChatItem]{
		descriptor.Enum("Type", codeChatType, func(c *model.ChatItem) *model.ChatItemType { return &c.Type }),
		descriptor.Enum("Author", codeChatAuthor, func(c *model.ChatItem) *model.UserRole { return &c.Author }),
		descriptor.String("GitCommitKey", codeChatCommit, func(c *model.ChatItem) *string { return &c.GitCommitKey }),
		descriptor.Time("Timestamp", codeChatTimestamp, func(c *model.ChatItem) *time.Time { return &c.Timestamp }),
		descriptor.String("Message", codeChatMessage, func(c *model.ChatItem) *string { return &c.Message }),
		descriptor.Enum("State", codeChatState, func(c *model.ChatItem) *model.ChatItemState { return &c.State }),
		descriptor.IntList("ExpectsResponses", codeChatExpects, func(c *model.ChatItem) *[]model.UserRole { return &c.ExpectsResponses }),
		descriptor.List("Replies", codeChatReplies, descriptor.Codec[*model.ChatItem](ChatItem),
			func(c *model.ChatItem) *[]*model.ChatItem { return &c.Replies }).
			Since(version.ChatReplies),
	}
}

// readLegacySlot reads the single slot name of files before taxonomy slots.
func readLegacySlot(s *descriptor.State[model.Component]) error {
	name, err := s.C.ExpectString(codeComponentLegacySlot)
	if err != nil {
		return err
	}
	if name != "" {
		s.E.Slots = []model.TaxonomySlot{{LegacyName: name}}
	}
	return nil
}
