package jtree

import (
	"unicode/utf16"
)

const replacementChar = '�'

// str parses a string literal at the cursor into a new String. The cursor is on the opening quote
func (p *parser) str() (*String, *SyntaxError) {
	c := p.c
	s, err := NewString(p.alloc)
	if err != nil {
		return nil, p.modelError(err)
	}
	c.advance(1)
	fail := func(e *SyntaxError) (*String, *SyntaxError) {
		s.Free()
		return nil, e
	}
	for {
		if c.eof() {
			return fail(c.fail(ErrUnclosedString))
		}
		ch := c.peek()
		switch {
		case ch == '"':
			c.advance(1)
			return s, nil

		case ch == '\\':
			if e := p.escape(s); e != nil {
				return fail(e)
			}

		case ch < 0x20:
			return fail(c.fail(ErrControlChar))

		case ch < 0x80:
			// plain ASCII run
			n := 1
			for n < len(c.data) && c.data[n] >= 0x20 && c.data[n] < 0x80 && c.data[n] != '"' && c.data[n] != '\\' {
				n++
			}
			if err := s.appendValid(c.data[:n]); err != nil {
				return fail(p.modelError(err))
			}
			c.advance(n)

		default:
			_, n, err := DecodeRune(c.data)
			if err != nil {
				if c.ext&ExtUnicodeReplacement == 0 {
					return fail(c.fail(ErrEncoding))
				}
				if err := s.AppendRune(replacementChar); err != nil {
					return fail(p.modelError(err))
				}
				c.advanceChar(n)
				continue
			}
			if err := s.appendValid(c.data[:n]); err != nil {
				return fail(p.modelError(err))
			}
			c.advanceChar(n)
		}
	}
}

// escape decodes one escape sequence. The cursor is on the backslash
func (p *parser) escape(s *String) *SyntaxError {
	c := p.c
	row, col := c.row, c.col
	c.advance(1)
	if c.eof() {
		return c.fail(ErrUnclosedString)
	}
	var r rune
	switch ch := c.peek(); ch {
	case '"', '\\', '/':
		r = rune(ch)
	case 'b':
		r = '\b'
	case 'f':
		r = '\f'
	case 'n':
		r = '\n'
	case 'r':
		r = '\r'
	case 't':
		r = '\t'
	case 'u':
		c.advance(1)
		var e *SyntaxError
		if r, e = p.hex4(); e != nil {
			return e
		}
		if utf16.IsSurrogate(r) {
			if r, e = p.surrogate(r); e != nil {
				return e
			}
			if r == replacementChar && c.ext&ExtUnicodeReplacement == 0 {
				return &SyntaxError{Kind: ErrEncoding, Row: row, Col: col}
			}
		}
		if err := s.AppendRune(r); err != nil {
			return p.modelError(err)
		}
		return nil
	default:
		return c.fail(ErrBadEscape)
	}
	c.advance(1)
	if err := s.AppendRune(r); err != nil {
		return p.modelError(err)
	}
	return nil
}

// surrogate completes a pair started by hi. A lone half yields U+FFFD and leaves the input following it untouched
func (p *parser) surrogate(hi rune) (rune, *SyntaxError) {
	c := p.c
	if hi >= 0xdc00 || len(c.data) < 2 || c.data[0] != '\\' || c.data[1] != 'u' {
		return replacementChar, nil
	}
	if len(c.data) < 6 {
		// let the outer loop report the truncated escape
		return replacementChar, nil
	}
	var lo rune
	for _, ch := range c.data[2:6] {
		d := hexDigit(ch)
		if d < 0 {
			return replacementChar, nil
		}
		lo = lo<<4 | rune(d)
	}
	r := utf16.DecodeRune(hi, lo)
	if r == replacementChar {
		return replacementChar, nil
	}
	c.advance(6)
	return r, nil
}

func (p *parser) hex4() (rune, *SyntaxError) {
	c := p.c
	var r rune
	for i := 0; i < 4; i++ {
		if c.eof() {
			return 0, c.fail(ErrUnclosedString)
		}
		d := hexDigit(c.peek())
		if d < 0 {
			return 0, c.fail(ErrBadEscape)
		}
		r = r<<4 | rune(d)
		c.advance(1)
	}
	return r, nil
}
