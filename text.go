package jtree

import (
	"math"

	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/pretty"
)

func (v *Value) write(w *jwriter.Writer) {
	switch v.kind {
	case KindNull:
		w.RawString("null")
	case KindBool:
		w.Bool(v.b)
	case KindNumber:
		// infinities have no JSON representation
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			w.RawString("null")
		} else {
			w.Float64(v.num)
		}
	case KindString:
		w.String(v.str.String())
	case KindArray:
		w.RawByte('[')
		v.arr.Each(func(i int, elem *Value) bool {
			if i != 0 {
				w.RawByte(',')
			}
			elem.write(w)
			return true
		})
		w.RawByte(']')
	case KindObject:
		w.RawByte('{')
		first := true
		v.obj.Each(func(key string, elem *Value) bool {
			if !first {
				w.RawByte(',')
			}
			first = false
			w.String(key)
			w.RawByte(':')
			elem.write(w)
			return true
		})
		w.RawByte('}')
	}
}

// AppendText appends the compact JSON text of the value to dst. Object keys appear in bucket order.
// Infinite numbers are written as null
func (v *Value) AppendText(dst []byte) []byte {
	w := jwriter.Writer{NoEscapeHTML: true}
	v.write(&w)
	b, _ := w.BuildBytes()
	return append(dst, b...)
}

// String returns the compact JSON text of the value
func (v *Value) String() string { return string(v.AppendText(nil)) }

// MarshalJSON implements json.Marshaler
func (v *Value) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{NoEscapeHTML: true}
	v.write(&w)
	return w.BuildBytes()
}

// Indent returns the JSON text of the value with one element per line. Each line starts with prefix
// followed by one copy of indent per nesting level. If sortKeys is true object keys are sorted.
// The output ends with a newline
func (v *Value) Indent(prefix, indent string, sortKeys bool) []byte {
	return pretty.PrettyOptions(v.AppendText(nil), &pretty.Options{
		Prefix:   prefix,
		Indent:   indent,
		SortKeys: sortKeys,
	})
}
