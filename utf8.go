package jtree

import "unicode/utf8"

// DecodeRune decodes one UTF-8 encoded code point from the beginning of b.
// On a malformed sequence it returns ErrDecoding along with the number of bytes which belong to the
// invalid prefix (at least one) so the caller can skip or substitute them
func DecodeRune(b []byte) (r rune, n int, err error) {
	if len(b) == 0 {
		return 0, 0, ErrDecoding
	}
	c := b[0]
	var (
		size int
		lo   rune
	)
	switch {
	case c < 0x80:
		return rune(c), 1, nil
	case c&0xe0 == 0xc0:
		size, lo, r = 2, 0x80, rune(c&0x1f)
	case c&0xf0 == 0xe0:
		size, lo, r = 3, 0x800, rune(c&0x0f)
	case c&0xf8 == 0xf0:
		size, lo, r = 4, 0x10000, rune(c&0x07)
	default:
		// continuation byte or 0xf8..0xff
		return 0, 1, ErrDecoding
	}
	for n = 1; n < size; n++ {
		if n >= len(b) || b[n]&0xc0 != 0x80 {
			return 0, n, ErrDecoding
		}
		r = r<<6 | rune(b[n]&0x3f)
	}
	if r < lo || !utf8.ValidRune(r) {
		// overlong form, surrogate half or beyond U+10FFFF
		return 0, n, ErrDecoding
	}
	return r, n, nil
}

// EncodeRune writes the UTF-8 encoding of r into b and returns the number of bytes written
func EncodeRune(b []byte, r rune) (int, error) {
	if !utf8.ValidRune(r) {
		return 0, ErrEncoding
	}
	if len(b) < utf8.RuneLen(r) {
		return 0, ErrBufLen
	}
	return utf8.EncodeRune(b, r), nil
}
