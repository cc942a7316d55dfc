package core

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Column types
const (
	TypeString  = "string"
	TypeLong    = "long"
	TypeDouble  = "double"
	TypeBoolean = "boolean"
	TypeDate    = "date"
)

var columnTypes = []string{TypeString, TypeLong, TypeDouble, TypeBoolean, TypeDate}

// Layouts tried for date columns without a format
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Column selects one output field: either the field at Index of the input
// row or the constant Value, converted to Type. Format is a Go time layout
// used by date columns.
type Column struct {
	Index  *int    `mapstructure:"index"`
	Value  *string `mapstructure:"value"`
	Type   string  `mapstructure:"type"`
	Format string  `mapstructure:"format"`
}

func (c Column) validate() error {
	if strings.TrimSpace(c.Type) == "" {
		return fmt.Errorf("%w: type", ErrRequiredValue)
	}
	if !slices.Contains(columnTypes, strings.ToLower(c.Type)) {
		return fmt.Errorf("%w: type %q", ErrIllegalValue, c.Type)
	}
	if c.Index == nil && c.Value == nil {
		return ErrNoIndexValue
	}
	if c.Index != nil && c.Value != nil {
		return ErrMixedIndexValue
	}
	if c.Index != nil && *c.Index < 0 {
		return fmt.Errorf("%w: index must be >= 0, got %d", ErrIllegalValue, *c.Index)
	}
	return nil
}

// Field is one typed value of a Record. Value is nil for null fields and
// otherwise a string, int64, float64, bool or time.Time.
type Field struct {
	Type  string
	Value any
}

// String renders the field as text; null renders as "".
func (f Field) String() string {
	switch v := f.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

// Record is one decoded row
type Record []Field

// RecordDecoder turns raw CSV rows into typed records
type RecordDecoder struct {
	columns    []Column
	nullFormat string
}

// NewRecordDecoder returns a decoder for the given columns. With no columns
// every field is kept as a string.
func NewRecordDecoder(columns []Column, nullFormat string) *RecordDecoder {
	return &RecordDecoder{columns: columns, nullFormat: nullFormat}
}

// Decode converts one row. Failures wrap ErrDirtyRecord.
func (d *RecordDecoder) Decode(row []string) (Record, error) {
	if len(d.columns) == 0 {
		rec := make(Record, len(row))
		for i, s := range row {
			rec[i] = d.field(TypeString, s)
		}
		return rec, nil
	}

	rec := make(Record, 0, len(d.columns))
	for _, c := range d.columns {
		var raw string
		switch {
		case c.Value != nil:
			raw = *c.Value
		case *c.Index < len(row):
			raw = row[*c.Index]
		default:
			return nil, fmt.Errorf("%w: index %d out of range, row has %d fields", ErrDirtyRecord, *c.Index, len(row))
		}

		f, err := d.convert(c, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDirtyRecord, err)
		}
		rec = append(rec, f)
	}

	return rec, nil
}

func (d *RecordDecoder) field(typ, raw string) Field {
	if d.nullFormat != "" && raw == d.nullFormat {
		return Field{Type: typ}
	}
	return Field{Type: typ, Value: raw}
}

func (d *RecordDecoder) convert(c Column, raw string) (Field, error) {
	typ := strings.ToLower(c.Type)
	f := d.field(typ, raw)
	if f.Value == nil || typ == TypeString {
		return f, nil
	}

	s := strings.TrimSpace(raw)
	switch typ {
	case TypeLong:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, fmt.Errorf("long %q: %w", raw, err)
		}
		f.Value = n
	case TypeDouble:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return f, fmt.Errorf("double %q: %w", raw, err)
		}
		f.Value = n
	case TypeBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("boolean %q: %w", raw, err)
		}
		f.Value = b
	case TypeDate:
		t, err := parseDate(s, c.Format)
		if err != nil {
			return f, err
		}
		f.Value = t
	}

	return f, nil
}

func parseDate(s, layout string) (time.Time, error) {
	if layout != "" {
		t, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q: %w", s, err)
		}
		return t, nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q: no matching layout", s)
}
