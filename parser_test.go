package jtree

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxErrors(t *testing.T) {
	strict := []Option{OpExtensions(ExtNone)}
	anyTop := []Option{OpExtensions(ExtAnyTopLevel)}
	tst := []struct {
		src  string
		op   []Option
		kind ErrorKind
		row  int
		col  int
	}{
		{src: ``, kind: ErrEOF, row: 1, col: 1},
		{src: "  \n", kind: ErrEOF, row: 2, col: 1},
		{src: `[1, 2,]`, kind: ErrBadArray, row: 1, col: 7},
		{src: `[1 2]`, kind: ErrBadArray, row: 1, col: 4},
		{src: `[1,2`, kind: ErrUnclosedArray, row: 1, col: 5},
		{src: `[`, kind: ErrUnclosedArray, row: 1, col: 2},
		{src: `[[1]`, kind: ErrUnclosedArray, row: 1, col: 5},
		{src: `{"a":1,}`, kind: ErrBadObject, row: 1, col: 8},
		{src: `{1:2}`, kind: ErrBadKey, row: 1, col: 2},
		{src: `{"a" 1}`, kind: ErrBadObject, row: 1, col: 6},
		{src: `{"a":1 "b":2}`, kind: ErrBadObject, row: 1, col: 8},
		{src: `{"a":1`, kind: ErrUnclosedObject, row: 1, col: 7},
		{src: `{"a":`, kind: ErrUnclosedObject, row: 1, col: 6},
		{src: `{`, kind: ErrUnclosedObject, row: 1, col: 2},
		{src: `{"a":1,"a":2}`, op: strict, kind: ErrDuplicateKey, row: 1, col: 8},
		{src: `0123`, kind: ErrLeadingZero, row: 1, col: 2},
		{src: `0x1F`, kind: ErrTrailingData, row: 1, col: 2},
		{src: `0x`, op: []Option{OpExtensions(ExtDefault | ExtHexLiterals)}, kind: ErrBadHex, row: 1, col: 3},
		{src: `0x1.5`, op: []Option{OpExtensions(ExtDefault | ExtHexLiterals)}, kind: ErrBadHex, row: 1, col: 4},
		{src: `019`, op: []Option{OpExtensions(ExtDefault | ExtOctalLiterals)}, kind: ErrBadOctal, row: 1, col: 3},
		{src: `01.5`, op: []Option{OpExtensions(ExtDefault | ExtOctalLiterals)}, kind: ErrBadOctal, row: 1, col: 3},
		{src: `1.`, kind: ErrBadFrac, row: 1, col: 3},
		{src: `[1.]`, kind: ErrBadFrac, row: 1, col: 4},
		{src: `1.e5`, op: []Option{OpExtensions(ExtDefault | ExtTrailingDecimal)}, kind: ErrTrailingData, row: 1, col: 3},
		{src: `1e`, kind: ErrBadExp, row: 1, col: 3},
		{src: `1e+`, kind: ErrBadExp, row: 1, col: 4},
		{src: `-`, kind: ErrBadInt, row: 1, col: 2},
		{src: `-a`, kind: ErrBadInt, row: 1, col: 2},
		{src: `tru`, kind: ErrBadLiteral, row: 1, col: 1},
		{src: `[nul]`, kind: ErrBadLiteral, row: 1, col: 2},
		{src: `@`, kind: ErrUnexpectedChar, row: 1, col: 1},
		{src: `"abc`, kind: ErrUnclosedString, row: 1, col: 5},
		{src: `"a\qb"`, kind: ErrBadEscape, row: 1, col: 4},
		{src: `"\u12"`, kind: ErrBadEscape, row: 1, col: 6},
		{src: `"\u12`, kind: ErrUnclosedString, row: 1, col: 6},
		{src: "\"a\x01\"", kind: ErrControlChar, row: 1, col: 3},
		{src: `"\ud800"`, kind: ErrEncoding, row: 1, col: 2},
		{src: `"\udc00\ud800"`, kind: ErrEncoding, row: 1, col: 2},
		{src: "\"\xff\"", kind: ErrEncoding, row: 1, col: 2},
		{src: "[\"\xc3\xa9\", x]", kind: ErrUnexpectedChar, row: 1, col: 7},
		{src: `1`, op: strict, kind: ErrTopLevel, row: 1, col: 1},
		{src: ` "a"`, op: strict, kind: ErrTopLevel, row: 1, col: 2},
		{src: `[1] x`, kind: ErrTrailingData, row: 1, col: 5},
		{src: "[1]\x00\x00", kind: ErrTrailingData, row: 1, col: 4},
		{src: "\xef\xbb\xbf[1]", op: anyTop, kind: ErrUnexpectedChar, row: 1, col: 1},
		{src: "// c\n[1]", kind: ErrUnexpectedChar, row: 1, col: 1},
		{src: "/* x", op: []Option{OpExtensions(ExtComments)}, kind: ErrUnclosedComment, row: 1, col: 1},
		{src: "[1, /* a\n b */ 2 // c\n,]", op: []Option{OpExtensions(ExtComments)}, kind: ErrBadArray, row: 3, col: 2},
		{src: "[1,\n\t2,]", kind: ErrBadArray, row: 2, col: 7},
		{src: "[1,\n\t2,]", op: []Option{OpTabWidth(8)}, kind: ErrBadArray, row: 2, col: 11},
		{src: "[1,\r\n 2 x]", kind: ErrBadArray, row: 2, col: 4},
		{src: "[1,\r 2 x]", kind: ErrBadArray, row: 2, col: 4},
		{src: `[[[1]]]`, op: []Option{OpMaxDepth(2)}, kind: ErrDepth, row: 1, col: 3},
		{src: `{"a":{"b":{}}}`, op: []Option{OpMaxDepth(2)}, kind: ErrDepth, row: 1, col: 11},
		{src: `[]`, op: []Option{OpMaxDepth(0)}, kind: ErrDepth, row: 1, col: 1},
	}
	for _, tt := range tst {
		t.Run(tt.src, func(t *testing.T) {
			v, err := Decode([]byte(tt.src), tt.op...)
			require.Error(t, err)
			assert.Nil(t, v)
			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.kind, se.Kind, se.Kind.String())
			assert.Equal(t, tt.row, se.Row, "row")
			assert.Equal(t, tt.col, se.Col, "col")
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestScalars(t *testing.T) {
	ext := func(e Extension) []Option { return []Option{OpExtensions(ExtDefault | e)} }
	tst := []struct {
		src    string
		op     []Option
		expect any
	}{
		{src: `null`, expect: nil},
		{src: `true`, expect: true},
		{src: `false`, expect: false},
		{src: `0`, expect: 0.0},
		{src: `-0`, expect: 0.0},
		{src: `123`, expect: 123.0},
		{src: `-17`, expect: -17.0},
		{src: `1E3`, expect: 1000.0},
		{src: `-0.5e2`, expect: -50.0},
		{src: `25e-2`, expect: 0.25},
		{src: `0e999`, expect: 0.0},
		{src: `12345678901234567890123`, expect: 1.2345678901234567e22},
		{src: `0123`, op: ext(ExtOctalLiterals), expect: 83.0},
		{src: `-010`, op: ext(ExtOctalLiterals), expect: -8.0},
		{src: `0x1F`, op: ext(ExtHexLiterals), expect: 31.0},
		{src: `0XfF`, op: ext(ExtHexLiterals), expect: 255.0},
		{src: `[1.]`, op: ext(ExtTrailingDecimal), expect: []any{1.0}},
		{src: `"abc"`, expect: "abc"},
		{src: `"\"\\\/\b\f\n\r\t"`, expect: "\"\\/\b\f\n\r\t"},
		{src: `"é中"`, expect: "é中"},
		{src: `"😀"`, expect: "😀"},
		{src: `"\ud800"`, op: ext(ExtUnicodeReplacement), expect: "�"},
		{src: `"\ud800x"`, op: ext(ExtUnicodeReplacement), expect: "�x"},
		{src: `"\ud800A"`, op: ext(ExtUnicodeReplacement), expect: "�A"},
		{src: "\"a\xffb\"", op: ext(ExtUnicodeReplacement), expect: "a�b"},
		{src: "\"日本\"", expect: "日本"},
		{src: "\xef\xbb\xbf[1]", expect: []any{1.0}},
		{src: "[1]\x00", expect: []any{1.0}},
		{src: " [ ] ", expect: []any{}},
		{src: `{ }`, expect: map[string]any{}},
		{src: "// c\n[1] /* d */", op: ext(ExtComments), expect: []any{1.0}},
		{src: `{"a":1,"a":2}`, expect: map[string]any{"a": 2.0}},
		{src: `{"a":[1,{"b":null}],"c":"d"}`, expect: map[string]any{"a": []any{1.0, map[string]any{"b": nil}}, "c": "d"}},
	}
	for _, tt := range tst {
		t.Run(tt.src, func(t *testing.T) {
			v, err := Decode([]byte(tt.src), tt.op...)
			require.NoError(t, err)
			defer v.Destroy()
			got := v.Interface()
			if f, ok := tt.expect.(float64); ok {
				assert.InEpsilon(t, f+1, got.(float64)+1, 1e-12)
			} else {
				assert.Equal(t, tt.expect, got)
			}
		})
	}
}

func TestNumberApproximation(t *testing.T) {
	tst := []struct {
		src    string
		expect float64
	}{
		{src: `123.456`, expect: 123.456},
		{src: `1e308`, expect: 1e308},
		{src: `-2.5E-3`, expect: -0.0025},
		{src: `0.1`, expect: 0.1},
		{src: `3.14159265358979323846`, expect: 3.141592653589793},
		{src: `0.00000000000000000001`, expect: 1e-20},
		{src: `0.000000000000000000015`, expect: 1.5e-20},
		{src: `-0.000000000000000000000000000000123`, expect: -1.23e-31},
		{src: `0.12345678901234567890123`, expect: 0.12345678901234568},
		{src: `98765432109876543210.5`, expect: 9.876543210987654e19},
		{src: "1" + strings.Repeat("0", 400) + "e-390", expect: 1e10},
		{src: "0." + strings.Repeat("0", 400) + "1e405", expect: 1e4},
		{src: `1e-308`, expect: 1e-308},
		{src: `-1E-308`, expect: -1e-308},
		{src: `2.2250738585072014e-308`, expect: 2.2250738585072014e-308},
		{src: `4.9e-324`, expect: math.SmallestNonzeroFloat64},
	}
	for _, tt := range tst {
		v, err := Decode([]byte(tt.src))
		require.NoError(t, err)
		n, ok := v.AsNumber()
		require.True(t, ok)
		assert.InEpsilon(t, tt.expect, n, 1e-12, tt.src)
		v.Destroy()
	}
}

func TestNegativeZero(t *testing.T) {
	tst := []struct {
		src string
		neg bool
	}{
		{src: `-0`, neg: true},
		{src: `-0.0`, neg: true},
		{src: `-0e5`, neg: true},
		{src: `-0.000`, neg: true},
		{src: `0`},
		{src: `0.0`},
	}
	for _, tt := range tst {
		v, err := Decode([]byte(tt.src))
		require.NoError(t, err)
		n, ok := v.AsNumber()
		require.True(t, ok)
		assert.Zero(t, n, tt.src)
		assert.Equal(t, tt.neg, math.Signbit(n), tt.src)
		v.Destroy()
	}
}

func TestDecodeReuse(t *testing.T) {
	dec := NewDecoder(OpExtensions(ExtAll))
	for _, src := range []string{`[0x10]`, `// x` + "\n" + `{"a":010}`, `[1.]`} {
		v, err := dec.Decode([]byte(src))
		require.NoError(t, err, src)
		v.Destroy()
	}
	assert.Equal(t, ExtAll, dec.Config().Extensions)
}
