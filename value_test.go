package jtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	var c Counter
	arr, err := NewArray(&c)
	require.NoError(t, err)
	obj, err := NewObject(&c)
	require.NoError(t, err)

	tst := []struct {
		v    Value
		kind Kind
		typ  string
	}{
		{v: NullValue(), kind: KindNull, typ: "null"},
		{v: BoolValue(true), kind: KindBool, typ: "boolean"},
		{v: NumberValue(1.5), kind: KindNumber, typ: "number"},
		{v: StringValue(newTestString(t, &c, "s")), kind: KindString, typ: "string"},
		{v: ArrayValue(arr), kind: KindArray, typ: "array"},
		{v: ObjectValue(obj), kind: KindObject, typ: "object"},
	}
	for _, tt := range tst {
		v := tt.v
		assert.Equal(t, tt.kind, v.Kind())
		assert.Equal(t, tt.typ, v.Type())
		assert.Equal(t, tt.kind == KindNull, v.IsNull())

		_, ok := v.AsBool()
		assert.Equal(t, tt.kind == KindBool, ok)
		_, ok = v.AsNumber()
		assert.Equal(t, tt.kind == KindNumber, ok)
		_, ok = v.AsString()
		assert.Equal(t, tt.kind == KindString, ok)
		_, ok = v.AsArray()
		assert.Equal(t, tt.kind == KindArray, ok)
		_, ok = v.AsObject()
		assert.Equal(t, tt.kind == KindObject, ok)

		v.Dispose()
		assert.True(t, v.IsNull())
	}
	assert.Equal(t, int64(0), c.Live())
}

func TestValueSetters(t *testing.T) {
	var c Counter
	v, err := NewValue(&c)
	require.NoError(t, err)
	assert.True(t, v.IsNull())

	v.SetString(newTestString(t, &c, "text"))
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "text", s.String())

	arr, err := NewArray(&c)
	require.NoError(t, err)
	require.NoError(t, arr.Append(StringValue(newTestString(t, &c, "elem"))))
	v.SetArray(arr)
	_, ok = v.AsString()
	assert.False(t, ok)

	obj, err := NewObject(&c)
	require.NoError(t, err)
	require.NoError(t, obj.Put("k", NumberValue(1)))
	v.SetObject(obj)

	v.SetNumber(42)
	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 42.0, n)
	assert.Equal(t, int64(valueSize), c.Live())

	v.SetBool(true)
	b, _ := v.AsBool()
	assert.True(t, b)
	v.SetNull()
	assert.True(t, v.IsNull())

	v.Destroy()
	assert.Equal(t, int64(0), c.Live())
	assert.Equal(t, int64(0), c.Blocks())
}

func TestValueTake(t *testing.T) {
	var c Counter
	root, err := Decode([]byte(`{"a":[1,2]}`), OpAllocator(&c))
	require.NoError(t, err)

	obj, ok := root.AsObject()
	require.True(t, ok)
	a, ok := obj.Get("a")
	require.True(t, ok)

	dst, err := NewArray(&c)
	require.NoError(t, err)
	tmp, err := NewValue(&c)
	require.NoError(t, err)
	tmp.SetString(newTestString(t, &c, "moved"))
	require.NoError(t, dst.Append(tmp.Take()))
	assert.True(t, tmp.IsNull())
	tmp.Destroy()

	arr, _ := a.AsArray()
	old, err := arr.Swap(0, NullValue())
	require.NoError(t, err)
	require.NoError(t, dst.Append(old))
	dv := ArrayValue(dst)
	assert.Equal(t, `["moved",1]`, dv.String())

	dst.Destroy()
	root.Destroy()
	assert.Equal(t, int64(0), c.Live())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "unknown", Kind(100).String())
	assert.Equal(t, "boolean", KindBool.String())
}
