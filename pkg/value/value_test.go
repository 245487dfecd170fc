package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "<unknown kind>", Kind(99).String())
}

func TestNilValueBehavesAsNull(t *testing.T) {
	var v *Value
	assert.Equal(t, Null, v.Kind())
	assert.Equal(t, "null", v.String())
	assert.Equal(t, 0, v.Len())
	_, ok := v.Get("x")
	assert.False(t, ok)
	_, ok = v.At(0)
	assert.False(t, ok)
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	v := NewObject(
		Field{Key: "z", Value: NewNumber("1")},
		Field{Key: "a", Value: NewNumber("2")},
		Field{Key: "m", Value: NewNumber("3")},
	)
	fields := v.Fields()
	require.Len(t, fields, 3)
	assert.Equal(t, []string{"z", "a", "m"}, []string{fields[0].Key, fields[1].Key, fields[2].Key})
}

func TestGetAndAt(t *testing.T) {
	obj := NewObject(Field{Key: "bla", Value: NewBool(true)})
	got, ok := obj.Get("bla")
	require.True(t, ok)
	assert.True(t, got.BoolVal())
	_, ok = obj.Get("missing")
	assert.False(t, ok)

	arr := NewArray(NewString("x"), NewString("y"))
	got, ok = arr.At(1)
	require.True(t, ok)
	assert.Equal(t, "y", got.StringVal())
	_, ok = arr.At(2)
	assert.False(t, ok)
	_, ok = arr.At(-1)
	assert.False(t, ok)

	// Wrong-kind access never resolves.
	_, ok = arr.Get("bla")
	assert.False(t, ok)
	_, ok = obj.At(0)
	assert.False(t, ok)
}

func TestStringCanonicalForm(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{NewNull(), "null"},
		{NewBool(true), "true"},
		{NewBool(false), "false"},
		{NewNumber("1.5"), "1.5"},
		{NewNumber("42"), "42"},
		{NewString("bla"), `"bla"`},
		{NewString(`quote " here`), `"quote \" here"`},
		{NewArray(), "[]"},
		{NewObject(), "{}"},
		{
			NewObject(
				Field{Key: "a", Value: NewArray(NewNumber("1"), NewNull())},
				Field{Key: "b", Value: NewString("x")},
			),
			`{"a":[1,null],"b":"x"}`,
		},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.v.String())
	}
}

func TestFloat64(t *testing.T) {
	f, err := NewNumber("2.5").Float64()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
	_, err = NewString("nope").Float64()
	assert.Error(t, err)
}
