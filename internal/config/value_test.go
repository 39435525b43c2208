package config

import (
	"encoding/json"
	"testing"

	"github.com/seregonwar/CoreBaseApplication/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
		want Value
	}{
		{"42", KindInt, Int(42)},
		{"-7", KindInt, Int(-7)},
		{"3.5", KindFloat, Float(3.5)},
		{"true", KindBool, Bool(true)},
		{"null", KindNull, Null()},
		{`"quoted"`, KindString, String("quoted")},
		{"plain text", KindString, String("plain text")},
		{"1 2", KindString, String("1 2")},
		{"[1, \"a\"]", KindArray, Array(Int(1), String("a"))},
		{`{"k": false}`, KindObject, Object(map[string]Value{"k": Bool(false)})},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseValue(tt.raw)
			assert.Equal(t, tt.kind, got.Kind())
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestValueAsString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"string", String("hi"), "hi"},
		{"null", Null(), "null"},
		{"int", Int(12), "12"},
		{"float", Float(1.5), "1.5"},
		{"bool", Bool(true), "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AsString()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Array(Int(1)).AsString()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Cannot convert array value [1] to string")
}

func TestValueAsInt(t *testing.T) {
	tests := []struct {
		name    string
		v       Value
		want    int64
		wantErr bool
	}{
		{"int", Int(9), 9, false},
		{"float truncates", Float(3.9), 3, false},
		{"negative float truncates toward zero", Float(-3.9), -3, false},
		{"true", Bool(true), 1, false},
		{"false", Bool(false), 0, false},
		{"numeric string", String(" 15 "), 15, false},
		{"non-numeric string", String("abc"), 0, true},
		{"null", Null(), 0, true},
		{"object", Object(nil), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.v.AsInt()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValueAsFloat(t *testing.T) {
	f, err := Int(2).AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	f, err = String("2.25").AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.25, f)

	_, err = Bool(true).AsFloat()
	assert.Error(t, err)
	_, err = String("x").AsFloat()
	assert.Error(t, err)
}

func TestValueAsBool(t *testing.T) {
	truthy := []string{"true", "YES", "1", "On"}
	for _, s := range truthy {
		b, err := String(s).AsBool()
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}

	falsy := []string{"false", "no", "0", "OFF"}
	for _, s := range falsy {
		b, err := String(s).AsBool()
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}

	b, err := Int(3).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	_, err = String("maybe").AsBool()
	assert.Error(t, err)
	_, err = Float(1).AsBool()
	assert.Error(t, err)
}

func TestValueContainers(t *testing.T) {
	arr := Array(Int(1), Int(2))
	items, err := arr.AsArray()
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Mutating the result must not affect the value.
	items[0] = String("changed")
	again, _ := arr.AsArray()
	assert.True(t, Int(1).Equal(again[0]))

	obj := Object(map[string]Value{"a": Bool(true)})
	members, err := obj.AsObject()
	require.NoError(t, err)
	assert.True(t, Bool(true).Equal(members["a"]))

	_, err = obj.AsArray()
	assert.Error(t, err)
	_, err = arr.AsObject()
	assert.Error(t, err)
}

func TestValueOf(t *testing.T) {
	v := ValueOf(map[string]interface{}{
		"port":    8080,
		"ratio":   0.5,
		"name":    "svc",
		"enabled": true,
		"tags":    []interface{}{"a", "b"},
		"nothing": nil,
	})
	require.Equal(t, KindObject, v.Kind())

	obj, _ := v.AsObject()
	assert.Equal(t, KindInt, obj["port"].Kind())
	assert.Equal(t, KindFloat, obj["ratio"].Kind())
	assert.Equal(t, KindString, obj["name"].Kind())
	assert.Equal(t, KindBool, obj["enabled"].Kind())
	assert.Equal(t, KindArray, obj["tags"].Kind())
	assert.True(t, obj["nothing"].IsNull())

	assert.Equal(t, KindInt, ValueOf(uint16(5)).Kind())
	assert.Equal(t, KindArray, ValueOf([]string{"x"}).Kind())
}

func TestValueJSON(t *testing.T) {
	v := Object(map[string]Value{
		"n":    Int(1),
		"list": Array(String("a"), Null()),
	})

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1,"list":["a",null]}`, string(data))

	var decoded Value
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, v.Equal(decoded))

	assert.Equal(t, "text", String("text").String())
	assert.Equal(t, "[1,2]", Array(Int(1), Int(2)).String())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Int(1).Equal(Float(1)))
	assert.False(t, Array(Int(1)).Equal(Array(Int(1), Int(2))))
	assert.False(t, Object(map[string]Value{"a": Int(1)}).Equal(Object(map[string]Value{"b": Int(1)})))
}
