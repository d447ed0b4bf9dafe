package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeToolName            codec.Code = 3101
	codeToolMacro           codec.Code = 3102
	codeToolLastPath        codec.Code = 3103
	codeToolInputRules      codec.Code = 3104
	codeToolOutputRules     codec.Code = 3105
	codeToolOutputRanges    codec.Code = 3106
	codeRangeSheet          codec.Code = 3111
	codeRangeRow            codec.Code = 3112
	codeRangeColumn         codec.Code = 3113
	codeRangeRowCount       codec.Code = 3114
	codeRangeColumnCount    codec.Code = 3115
	codeRuleName            codec.Code = 3121
	codeRuleSheet           codec.Code = 3122
	codeRuleOffsetRow       codec.Code = 3123
	codeRuleOffsetColumn    codec.Code = 3124
	codeRuleSubject         codec.Code = 3125
	codeRuleDirection       codec.Code = 3126
	codeRuleMaxMatches      codec.Code = 3127
	codeRuleProperties      codec.Code = 3128
	codeRuleFilterCount     codec.Code = 3129
	codeRuleFilterGUID      codec.Code = 3130
	codeRuleFilterLocal     codec.Code = 3131
	codeRuleChildren        codec.Code = 3132
	codeUnmappingName       codec.Code = 3141
	codeUnmappingParamGUID  codec.Code = 3142
	codeUnmappingParamLocal codec.Code = 3143
	codeUnmappingTableGUID  codec.Code = 3144
	codeUnmappingTableLocal codec.Code = 3145
)

func excelRangeFields[T any](ptr func(*T) *model.ExcelRange) []*descriptor.Field[T] {
	return []*descriptor.Field[T]{
		descriptor.String("Sheet", codeRangeSheet, func(e *T) *string { return &ptr(e).Sheet }),
		descriptor.Int("Row", codeRangeRow, func(e *T) *int { return &ptr(e).Row }),
		descriptor.Int("Column", codeRangeColumn, func(e *T) *int { return &ptr(e).Column }),
		descriptor.Int("RowCount", codeRangeRowCount, func(e *T) *int { return &ptr(e).RowCount }),
		descriptor.Int("ColumnCount", codeRangeColumnCount, func(e *T) *int { return &ptr(e).ColumnCount }),
	}
}

// ExcelRange describes model.ExcelRange.
var ExcelRange = &descriptor.Entity[model.ExcelRange]{
	Kind:   "EXCEL_RANGE",
	Fields: excelRangeFields(func(r *model.ExcelRange) *model.ExcelRange { return r }),
}

// ExcelMappingRule describes model.ExcelMappingRule and its child rules.
var ExcelMappingRule = &descriptor.Entity[model.ExcelMappingRule]{
	Kind: "EXCEL_RULE",
	Name: func(r *model.ExcelMappingRule) string { return r.Name },
}

// ExcelUnmappingRule describes model.ExcelUnmappingRule.
var ExcelUnmappingRule = &descriptor.Entity[model.ExcelUnmappingRule]{
	Kind: "EXCEL_UNMAPPING",
	Name: func(r *model.ExcelUnmappingRule) string { return r.Name },
	Fields: append([]*descriptor.Field[model.ExcelUnmappingRule]{
		descriptor.String("Name", codeUnmappingName, func(r *model.ExcelUnmappingRule) *string { return &r.Name }),
	}, append(excelRangeFields(func(r *model.ExcelUnmappingRule) *model.ExcelRange { return &r.Range }),
		descriptor.Ref("TargetParameter", codeUnmappingParamGUID, codeUnmappingParamLocal, ids.KindParameter,
			func(r *model.ExcelUnmappingRule) *model.Ref[model.Parameter] { return &r.TargetParameter }),
		descriptor.Ref("Table", codeUnmappingTableGUID, codeUnmappingTableLocal, ids.KindBigTable,
			func(r *model.ExcelUnmappingRule) *model.Ref[*model.BigTable] { return &r.Table }),
	)...),
}

// ExcelTool describes model.ExcelTool.
var ExcelTool = &descriptor.Entity[model.ExcelTool]{
	Kind:   "EXCEL_TOOL",
	IDKind: ids.KindExcelTool,
	Name:   func(t *model.ExcelTool) string { return t.Name },
	Fields: []*descriptor.Field[model.ExcelTool]{
		descriptor.OwnID("ID", CodeID, ids.KindExcelTool, func(t *model.ExcelTool) *ids.EntityID { return &t.ID }),
		descriptor.String("Name", codeToolName, func(t *model.ExcelTool) *string { return &t.Name }),
		descriptor.String("MacroName", codeToolMacro, func(t *model.ExcelTool) *string { return &t.MacroName }),
		descriptor.String("LastPath", codeToolLastPath, func(t *model.ExcelTool) *string { return &t.LastPath }),
		descriptor.List("InputRules", codeToolInputRules, descriptor.Codec[*model.ExcelMappingRule](ExcelMappingRule),
			func(t *model.ExcelTool) *[]*model.ExcelMappingRule { return &t.InputRules }),
		descriptor.List("OutputRules", codeToolOutputRules, descriptor.Codec[*model.ExcelUnmappingRule](ExcelUnmappingRule),
			func(t *model.ExcelTool) *[]*model.ExcelUnmappingRule { return &t.OutputRules }).
			Since(version.UnmappingRules),
		descriptor.Values("OutputRanges", codeToolOutputRanges, ExcelRange,
			func(t *model.ExcelTool) *[]model.ExcelRange { return &t.OutputRanges }),
	},
}

func init() {
	ExcelMappingRule.Fields = []*descriptor.Field[model.ExcelMappingRule]{
		descriptor.String("Name", codeRuleName, func(r *model.ExcelMappingRule) *string { return &r.Name }),
		descriptor.String("SheetName", codeRuleSheet, func(r *model.ExcelMappingRule) *string { return &r.SheetName }),
		descriptor.Int("OffsetRow", codeRuleOffsetRow, func(r *model.ExcelMappingRule) *int { return &r.OffsetRow }),
		descriptor.Int("OffsetColumn", codeRuleOffsetColumn, func(r *model.ExcelMappingRule) *int { return &r.OffsetColumn }),
		descriptor.Enum("Subject", codeRuleSubject, func(r *model.ExcelMappingRule) *model.MappingSubject { return &r.Subject }),
		descriptor.Enum("Direction", codeRuleDirection, func(r *model.ExcelMappingRule) *model.MappingDirection { return &r.Direction }),
		descriptor.Int("MaxMatches", codeRuleMaxMatches, func(r *model.ExcelMappingRule) *int { return &r.MaxMatches }),
		descriptor.StringList("Properties", codeRuleProperties, func(r *model.ExcelMappingRule) *[]string { return &r.Properties }),
		descriptor.RefList("ParameterFilter", codeRuleFilterCount, codeRuleFilterGUID, codeRuleFilterLocal, ids.KindParameter,
			func(r *model.ExcelMappingRule) *[]model.Ref[model.Parameter] { return &r.ParameterFilter }),
		descriptor.List("Children", codeRuleChildren, descriptor.Codec[*model.ExcelMappingRule](ExcelMappingRule),
			func(r *model.ExcelMappingRule) *[]*model.ExcelMappingRule { return &r.Children }),
	}
}
