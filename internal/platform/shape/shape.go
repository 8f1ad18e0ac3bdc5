// Package shape turns loosely-typed rows from the clinical database into the
// stable nested JSON payloads the exchange consumers expect. Every endpoint
// declares a Plan per payload instead of hand-mapping columns.
package shape

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the declared output type of a shaped field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
	KindDateTime
)

// Field maps exactly one source column to one output field. When joined
// result sets carry colliding column names, the query must alias them so a
// field never depends on join order.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Plan is the ordered field mapping for one payload or sub-resource list.
type Plan []Field

func Str(name string) Field               { return Field{Name: name, Column: name, Kind: KindString} }
func StrFrom(name, column string) Field   { return Field{Name: name, Column: column, Kind: KindString} }
func Num(name string) Field               { return Field{Name: name, Column: name, Kind: KindNumber} }
func NumFrom(name, column string) Field   { return Field{Name: name, Column: column, Kind: KindNumber} }
func Date(name string) Field              { return Field{Name: name, Column: name, Kind: KindDate} }
func DateFrom(name, column string) Field  { return Field{Name: name, Column: column, Kind: KindDate} }
func DateTime(name string) Field          { return Field{Name: name, Column: name, Kind: KindDateTime} }

// Map shapes one row through the plan. The per-field rule is uniform across
// all endpoints: date and time values render as ISO-8601 strings; nil, empty
// string, and numeric zero all render as null; everything else is coerced to
// the declared kind.
//
// Collapsing zero into null is a legacy compatibility rule inherited from the
// consumers of this API: a count of 0 and an absent value are
// indistinguishable in the output. Do not "fix" this without coordinating a
// contract change.
func Map(row map[string]any, plan Plan) map[string]any {
	out := make(map[string]any, len(plan))
	for _, f := range plan {
		out[f.Name] = shapeValue(row[f.Column], f.Kind)
	}
	return out
}

// MapAll shapes each row independently. An empty result set yields an empty
// sequence, never nil, so sub-resource lists serialize as [].
func MapAll(rows []map[string]any, plan Plan) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, Map(row, plan))
	}
	return out
}

func shapeValue(v any, kind Kind) any {
	if v == nil {
		return nil
	}

	if t, ok := v.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		return formatTime(t, kind)
	}

	switch kind {
	case KindNumber:
		return shapeNumber(v)
	default:
		return shapeString(v)
	}
}

func formatTime(t time.Time, kind Kind) string {
	switch kind {
	case KindDateTime:
		return t.Format("2006-01-02T15:04:05")
	case KindDate:
		return t.Format("2006-01-02")
	default:
		// Undeclared date column: keep the time part only when one exists.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02T15:04:05")
	}
}

func shapeString(v any) any {
	s := stringify(v)
	if s == "" {
		return nil
	}
	return s
}

func shapeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return nullIfZero(float64(n))
	case int8:
		return nullIfZero(float64(n))
	case int16:
		return nullIfZero(float64(n))
	case int32:
		return nullIfZero(float64(n))
	case int64:
		return nullIfZero(float64(n))
	case uint:
		return nullIfZero(float64(n))
	case uint32:
		return nullIfZero(float64(n))
	case uint64:
		return nullIfZero(float64(n))
	case float32:
		return nullIfZero(float64(n))
	case float64:
		return nullIfZero(n)
	}

	s := stringify(v)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return s
	}
	return nullIfZero(f)
}

func nullIfZero(f float64) any {
	if f == 0 {
		return nil
	}
	return f
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
