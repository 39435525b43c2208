package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/spf13/cast"
)

// Kind identifies the type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed setting.
// The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array returns an array value holding a copy of vs.
func Array(vs ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value{}, vs...)}
}

// Object returns an object value holding a copy of m.
func Object(m map[string]Value) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// ValueOf converts decoded data (from JSON, YAML or viper) into a Value.
// Unrecognised types are stored as their string form.
func ValueOf(v interface{}) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Int(cast.ToInt64(x))
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		f, _ := x.Float64()
		return Float(f)
	case []interface{}:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = ValueOf(e)
		}
		return Value{kind: KindArray, arr: arr}
	case []string:
		arr := make([]Value, len(x))
		for i, e := range x {
			arr[i] = String(e)
		}
		return Value{kind: KindArray, arr: arr}
	case map[string]interface{}:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			obj[k] = ValueOf(e)
		}
		return Value{kind: KindObject, obj: obj}
	case map[interface{}]interface{}:
		obj := make(map[string]Value, len(x))
		for k, e := range x {
			obj[fmt.Sprint(k)] = ValueOf(e)
		}
		return Value{kind: KindObject, obj: obj}
	default:
		return String(cast.ToString(x))
	}
}

// ParseValue interprets raw as JSON when it is valid JSON and as a plain string otherwise.
// Integral JSON numbers become Int.
func ParseValue(raw string) Value {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return String(raw)
	}
	// Reject trailing data such as `1 2`.
	if dec.More() {
		return String(raw)
	}
	return ValueOf(decoded)
}

// Kind returns the type held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString converts scalars to text. Null becomes "null"; arrays and objects fail.
func (v Value) AsString() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	case KindNull:
		return "null", nil
	case KindInt:
		return cast.ToStringE(v.i)
	case KindFloat:
		return cast.ToStringE(v.f)
	case KindBool:
		return cast.ToStringE(v.b)
	default:
		return "", conversionError(v, "string")
	}
}

// AsInt converts to an integer. Floats are truncated, booleans become 0 or 1,
// and strings must parse as an integer.
func (v Value) AsInt() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		return int64(v.f), nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindString:
		i, err := cast.ToInt64E(strings.TrimSpace(v.s))
		if err != nil {
			return 0, conversionError(v, "int")
		}
		return i, nil
	default:
		return 0, conversionError(v, "int")
	}
}

// AsFloat converts numbers and numeric strings to a float.
func (v Value) AsFloat() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindString:
		f, err := cast.ToFloat64E(strings.TrimSpace(v.s))
		if err != nil {
			return 0, conversionError(v, "float")
		}
		return f, nil
	default:
		return 0, conversionError(v, "float")
	}
}

// AsBool converts to a boolean. Integers are true when non-zero; strings accept
// true/yes/1/on and false/no/0/off in any case.
func (v Value) AsBool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true", "yes", "1", "on":
			return true, nil
		case "false", "no", "0", "off":
			return false, nil
		}
		return false, conversionError(v, "bool")
	default:
		return false, conversionError(v, "bool")
	}
}

// AsArray returns the elements of an array value.
func (v Value) AsArray() ([]Value, error) {
	if v.kind != KindArray {
		return nil, conversionError(v, "array")
	}
	return append([]Value{}, v.arr...), nil
}

// AsObject returns the members of an object value.
func (v Value) AsObject() (map[string]Value, error) {
	if v.kind != KindObject {
		return nil, conversionError(v, "object")
	}
	out := make(map[string]Value, len(v.obj))
	for k, e := range v.obj {
		out[k] = e
	}
	return out, nil
}

// Interface returns v as plain Go data suitable for encoding.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindArray:
		out := make([]interface{}, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]interface{}, len(v.obj))
		for k, e := range v.obj {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON encodes v as the equivalent JSON value.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes any JSON value into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded interface{}
	if err := dec.Decode(&decoded); err != nil {
		return err
	}
	*v = ValueOf(decoded)
	return nil
}

// String renders v as JSON, or the raw text for strings.
func (v Value) String() string {
	if v.kind == KindString {
		return v.s
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%s>", v.kind)
	}
	return string(data)
}

// Equal reports whether v and o hold the same data.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.s == o.s
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindBool:
		return v.b == o.b
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, e := range v.obj {
			oe, ok := o.obj[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

func conversionError(v Value, target string) error {
	return errors.Newf(errors.ErrConfig, "Cannot convert %s value %s to %s", v.kind, v, target)
}
