package entities

import (
	"fmt"
	"strings"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

func formatTypedValue(v model.Value) string {
	switch v.Kind {
	case model.ValueDouble:
		return codec.FormatDouble(v.Double)
	case model.ValueInteger:
		return codec.FormatInt(v.Integer)
	case model.ValueBoolean:
		return codec.FormatBool(v.Boolean)
	case model.ValueString:
		return v.String
	default:
		return ""
	}
}

func parseTypedValue(kind model.ValueKind, raw string) (model.Value, error) {
	switch kind {
	case model.ValueNull:
		return model.NullValue(), nil
	case model.ValueDouble:
		d, err := codec.ParseDouble(raw)
		return model.DoubleValue(d), err
	case model.ValueInteger:
		n, err := codec.ParseInt(raw)
		return model.IntegerValue(n), err
	case model.ValueBoolean:
		b, err := codec.ParseBool(raw)
		return model.BooleanValue(b), err
	case model.ValueString:
		return model.StringValue(raw), nil
	default:
		return model.Value{}, fmt.Errorf("unknown value kind %d", int(kind))
	}
}

// Cell prefixes tag the type of a big-table cell.
const (
	cellNull    = "n:"
	cellDouble  = "d:"
	cellInteger = "i:"
	cellBoolean = "b:"
	cellString  = "s:"
)

// FormatCell renders a table cell with its type tag. The result still has
// to be escaped before it is joined into a row.
func FormatCell(v model.Value) string {
	switch v.Kind {
	case model.ValueDouble:
		return cellDouble + codec.FormatDouble(v.Double)
	case model.ValueInteger:
		return cellInteger + codec.FormatInt(v.Integer)
	case model.ValueBoolean:
		return cellBoolean + codec.FormatBool(v.Boolean)
	case model.ValueString:
		return cellString + v.String
	default:
		return cellNull
	}
}

// ParseCell parses a cell produced by FormatCell.
func ParseCell(raw string) (model.Value, error) {
	if len(raw) < 2 {
		return model.Value{}, fmt.Errorf("cell %q has no type tag", raw)
	}
	tag, text := raw[:2], raw[2:]
	switch tag {
	case cellNull:
		return model.NullValue(), nil
	case cellDouble:
		return parseTypedValue(model.ValueDouble, text)
	case cellInteger:
		return parseTypedValue(model.ValueInteger, text)
	case cellBoolean:
		return parseTypedValue(model.ValueBoolean, text)
	case cellString:
		return model.StringValue(text), nil
	default:
		return model.Value{}, fmt.Errorf("cell %q has unknown type tag %q", raw, strings.TrimSuffix(tag, ":"))
	}
}

// FormatRow renders a table row as one list-valued field value.
func FormatRow(row []model.Value) string {
	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = FormatCell(v)
	}
	return codec.JoinEscaped(cells)
}

// ParseRow parses a row of typed cells.
func ParseRow(raw string) ([]model.Value, error) {
	cells, err := codec.SplitUnescaped(raw)
	if err != nil {
		return nil, err
	}
	row := make([]model.Value, len(cells))
	for i, c := range cells {
		if row[i], err = ParseCell(c); err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
	}
	return row, nil
}

// ParseLegacyRow parses a row written before cells were typed: doubles only.
func ParseLegacyRow(raw string) ([]model.Value, error) {
	cells, err := codec.SplitUnescaped(raw)
	if err != nil {
		return nil, err
	}
	row := make([]model.Value, len(cells))
	for i, c := range cells {
		d, err := codec.ParseDouble(c)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		row[i] = model.DoubleValue(d)
	}
	return row, nil
}
