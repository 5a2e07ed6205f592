// Package jtree is the AST centered JSON parser.
//
// Decode builds a mutable tree of Value nodes from a byte buffer. Every allocation made by the tree is
// admitted and released through an Allocator, so callers can bound, account and check the memory used by
// a document. The grammar is strict JSON with opt-in extensions (comments, octal and hexadecimal literals,
// trailing decimals, lenient Unicode handling and others).
package jtree

// Kind is the type of a Value
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns Kind name: "number", "string", "object", "array", "boolean" or "null"
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON datum. Exactly one payload matching the kind is populated.
// The zero Value is null.
//
// A Value either lives inside an Array or an Object (or in a variable of the caller), or is heap allocated
// by NewValue or Decode. Dispose releases the payload only, Destroy also releases the heap slot.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  *String
	arr  *Array
	obj  *Object
	// heap slot owner, nil for embedded values
	alloc Allocator
}

// NumberValue returns a number Value
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// BoolValue returns a boolean Value
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NullValue returns a null Value
func NullValue() Value { return Value{} }

// StringValue returns a string Value owning s
func StringValue(s *String) Value { return Value{kind: KindString, str: s} }

// ArrayValue returns an array Value owning a
func ArrayValue(a *Array) Value { return Value{kind: KindArray, arr: a} }

// ObjectValue returns an object Value owning o
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// NewValue returns a heap allocated null Value. Release it with Destroy
func NewValue(alloc Allocator) (*Value, error) {
	alloc = allocOrDefault(alloc)
	if err := alloc.Allocate(valueSize); err != nil {
		return nil, allocError(err)
	}
	return &Value{alloc: alloc}, nil
}

// Kind returns the active variant
func (v *Value) Kind() Kind { return v.kind }

// Type returns the Kind name
func (v *Value) Type() string { return v.kind.String() }

// IsNull reports whether the value is null
func (v *Value) IsNull() bool { return v.kind == KindNull }

// AsObject returns the object payload
func (v *Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// AsArray returns the array payload
func (v *Value) AsArray() (*Array, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// AsNumber returns the number payload
func (v *Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString returns the string payload
func (v *Value) AsString() (*String, bool) {
	if v.kind != KindString {
		return nil, false
	}
	return v.str, true
}

// AsBool returns the boolean payload
func (v *Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// SetObject releases the current payload and takes ownership of o
func (v *Value) SetObject(o *Object) {
	v.Dispose()
	v.kind, v.obj = KindObject, o
}

// SetArray releases the current payload and takes ownership of a
func (v *Value) SetArray(a *Array) {
	v.Dispose()
	v.kind, v.arr = KindArray, a
}

// SetString releases the current payload and takes ownership of s
func (v *Value) SetString(s *String) {
	v.Dispose()
	v.kind, v.str = KindString, s
}

// SetNumber releases the current payload and stores n
func (v *Value) SetNumber(n float64) {
	v.Dispose()
	v.kind, v.num = KindNumber, n
}

// SetBool releases the current payload and stores b
func (v *Value) SetBool(b bool) {
	v.Dispose()
	v.kind, v.b = KindBool, b
}

// SetNull releases the current payload
func (v *Value) SetNull() { v.Dispose() }

// Dispose recursively releases the payload and leaves a null value. The heap slot, if any, is kept
func (v *Value) Dispose() {
	switch v.kind {
	case KindString:
		if v.str != nil {
			v.str.Free()
		}
	case KindArray:
		if v.arr != nil {
			v.arr.Destroy()
		}
	case KindObject:
		if v.obj != nil {
			v.obj.Destroy()
		}
	}
	*v = Value{alloc: v.alloc}
}

// Destroy disposes the value and releases its heap slot. For values which are not heap allocated
// it is equivalent to Dispose. A destroyed heap value must not be used afterwards
func (v *Value) Destroy() {
	v.Dispose()
	if v.alloc != nil {
		v.alloc.Release(valueSize)
		v.alloc = nil
	}
}

// Take moves the payload out leaving a null value behind. Use it to insert the content of a heap
// allocated value into a container; the heap slot itself is still released with Destroy
func (v *Value) Take() Value {
	out := *v
	out.alloc = nil
	*v = Value{alloc: v.alloc}
	return out
}

// embedded returns a copy suitable for container storage
func (v Value) embedded() Value {
	v.alloc = nil
	return v
}
