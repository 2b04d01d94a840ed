// Package record provides typed access to loosely-typed upstream quote records.
//
// An upstream provider hands back a mapping of field name to a value that may be
// a number, a string, a boolean, a nested list or object, or null. Record wraps
// that mapping so callers never have to type-switch on interface{} values and so
// that an absent field and a null field behave the same way.
package record

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"

	"github.com/guregu/null/v6"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
	KindList
	KindObject
)

// Value is a tagged union over the JSON value space. The zero Value is null.
type Value struct {
	kind  Kind
	num   float64
	str   string
	flag  bool
	items []Value
	obj   Record
}

// Null is the unknown marker. It serializes as JSON null.
var Null = Value{}

// Number wraps a float. NaN and infinities cannot be represented in JSON and
// become Null.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null
	}
	return Value{kind: KindNumber, num: f}
}

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// List wraps a sequence of values.
func List(items ...Value) Value { return Value{kind: KindList, items: items} }

// Object wraps a nested record.
func Object(r Record) Value { return Value{kind: KindObject, obj: r} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Items returns the list payload, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return v.items
}

// Record returns the object payload and whether the value is an object.
func (v Value) Record() (Record, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// NullFloat converts a numeric value to null.Float. Every other kind is invalid.
func (v Value) NullFloat() null.Float {
	if f, ok := v.Float(); ok {
		return null.FloatFrom(f)
	}
	return null.Float{}
}

// Truthy reports whether the value would count as set in a boolean context:
// non-null, non-zero, non-empty.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	case KindBool:
		return v.flag
	case KindList:
		return len(v.items) > 0
	case KindObject:
		return len(v.obj) > 0
	default:
		return false
	}
}

// FromAny converts a value produced by encoding/json (or a plain Go literal)
// into a Value. Unsupported types become Null.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null
	case Value:
		return t
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return String(t.String())
		}
		return Number(f)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, it := range t {
			items = append(items, FromAny(it))
		}
		return List(items...)
	case map[string]any:
		return Object(FromMap(t))
	case Record:
		return Object(t)
	default:
		return Null
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return marshalString(v.str)
	case KindBool:
		return json.Marshal(v.flag)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		return v.obj.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// MarshalJSON writes the record with keys in sorted order so output is stable.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("{}"), nil
	}
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString quotes s without HTML escaping, so URLs keep a literal '&'.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
