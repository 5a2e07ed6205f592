package jtree

import (
	"errors"
)

// parser builds a Value tree from the cursor input. Every failure leaves nothing allocated
type parser struct {
	c     *cursor
	cfg   *Config
	alloc Allocator
	depth int
}

func newParser(data []byte, cfg *Config) *parser {
	return &parser{
		c:     newCursor(data, cfg),
		cfg:   cfg,
		alloc: allocOrDefault(cfg.Allocator),
	}
}

// modelError converts a failure of the value model into a positioned syntax error
func (p *parser) modelError(err error) *SyntaxError {
	e := p.c.fail(ErrInternal)
	var ae *AllocError
	var kind ErrorKind
	switch {
	case errors.As(err, &ae):
		e.Kind, e.Err = ErrOutOfMemory, ae.Err
	case errors.As(err, &kind):
		e.Kind = kind
	default:
		e.Err = err
	}
	return e
}

func (p *parser) enter() *SyntaxError {
	if p.cfg.MaxDepth >= 0 && p.depth >= p.cfg.MaxDepth {
		return p.c.fail(ErrDepth)
	}
	p.depth++
	return nil
}

func (p *parser) leave() { p.depth-- }

// value dispatches on the first byte of a value. Insignificant input is already skipped
func (p *parser) value() (Value, *SyntaxError) {
	c := p.c
	if c.eof() {
		return Value{}, c.fail(ErrEOF)
	}
	switch ch := c.peek(); {
	case ch == '{':
		return p.object()
	case ch == '[':
		return p.array()
	case ch == '"':
		s, e := p.str()
		if e != nil {
			return Value{}, e
		}
		return StringValue(s), nil
	case ch == '-' || isDigit(ch):
		n, e := scanNumber(c, c.ext)
		if e != nil {
			return Value{}, e
		}
		return NumberValue(n), nil
	case ch == 't':
		return p.literal("true", BoolValue(true))
	case ch == 'f':
		return p.literal("false", BoolValue(false))
	case ch == 'n':
		return p.literal("null", NullValue())
	}
	return Value{}, c.fail(ErrUnexpectedChar)
}

func (p *parser) literal(lit string, v Value) (Value, *SyntaxError) {
	c := p.c
	if len(c.data) < len(lit) || string(c.data[:len(lit)]) != lit {
		return Value{}, c.fail(ErrBadLiteral)
	}
	c.advance(len(lit))
	return v, nil
}

func (p *parser) array() (Value, *SyntaxError) {
	c := p.c
	if e := p.enter(); e != nil {
		return Value{}, e
	}
	defer p.leave()

	arr, err := NewArray(p.alloc)
	if err != nil {
		return Value{}, p.modelError(err)
	}
	c.advance(1)
	arr.SetGrowth(p.cfg.Growth)
	fail := func(e *SyntaxError) (Value, *SyntaxError) {
		arr.Destroy()
		return Value{}, e
	}

	if e := c.skip(); e != nil {
		return fail(e)
	}
	if c.eof() {
		return fail(c.fail(ErrUnclosedArray))
	}
	if c.peek() == ']' {
		c.advance(1)
		return ArrayValue(arr), nil
	}
	for {
		if c.eof() {
			return fail(c.fail(ErrUnclosedArray))
		}
		if c.peek() == ']' {
			// after a comma
			return fail(c.fail(ErrBadArray))
		}
		v, e := p.value()
		if e != nil {
			return fail(e)
		}
		if err := arr.Append(v); err != nil {
			v.Dispose()
			return fail(p.modelError(err))
		}
		if e := c.skip(); e != nil {
			return fail(e)
		}
		if c.eof() {
			return fail(c.fail(ErrUnclosedArray))
		}
		switch c.peek() {
		case ',':
			c.advance(1)
			if e := c.skip(); e != nil {
				return fail(e)
			}
		case ']':
			c.advance(1)
			return ArrayValue(arr), nil
		default:
			return fail(c.fail(ErrBadArray))
		}
	}
}

func (p *parser) object() (Value, *SyntaxError) {
	c := p.c
	if e := p.enter(); e != nil {
		return Value{}, e
	}
	defer p.leave()

	obj, err := NewObject(p.alloc)
	if err != nil {
		return Value{}, p.modelError(err)
	}
	c.advance(1)
	obj.SetGrowth(p.cfg.Growth)
	fail := func(e *SyntaxError) (Value, *SyntaxError) {
		obj.Destroy()
		return Value{}, e
	}

	if e := c.skip(); e != nil {
		return fail(e)
	}
	if c.eof() {
		return fail(c.fail(ErrUnclosedObject))
	}
	if c.peek() == '}' {
		c.advance(1)
		return ObjectValue(obj), nil
	}
	for {
		if c.eof() {
			return fail(c.fail(ErrUnclosedObject))
		}
		switch c.peek() {
		case '"':
		case '}':
			// after a comma
			return fail(c.fail(ErrBadObject))
		default:
			return fail(c.fail(ErrBadKey))
		}
		row, col := c.row, c.col
		key, e := p.str()
		if e != nil {
			return fail(e)
		}
		if c.ext&ExtAllowDuplicateKeys == 0 && obj.Has(key.String()) {
			key.Free()
			return fail(&SyntaxError{Kind: ErrDuplicateKey, Row: row, Col: col})
		}
		v, e := p.member()
		if e != nil {
			key.Free()
			return fail(e)
		}
		if err := obj.PutString(key, v); err != nil {
			key.Free()
			v.Dispose()
			return fail(p.modelError(err))
		}

		if e := c.skip(); e != nil {
			return fail(e)
		}
		if c.eof() {
			return fail(c.fail(ErrUnclosedObject))
		}
		switch c.peek() {
		case ',':
			c.advance(1)
			if e := c.skip(); e != nil {
				return fail(e)
			}
		case '}':
			c.advance(1)
			return ObjectValue(obj), nil
		default:
			return fail(c.fail(ErrBadObject))
		}
	}
}

// member parses the colon and the value following a key
func (p *parser) member() (Value, *SyntaxError) {
	c := p.c
	if e := c.skip(); e != nil {
		return Value{}, e
	}
	if c.eof() {
		return Value{}, c.fail(ErrUnclosedObject)
	}
	if c.peek() != ':' {
		return Value{}, c.fail(ErrBadObject)
	}
	c.advance(1)
	if e := c.skip(); e != nil {
		return Value{}, e
	}
	if c.eof() {
		return Value{}, c.fail(ErrUnclosedObject)
	}
	return p.value()
}

// document parses one top level value followed by insignificant input
func (p *parser) document() (Value, *SyntaxError) {
	c := p.c
	if c.ext&ExtIgnoreBOM != 0 {
		c.skipBOM()
	}
	if e := c.skip(); e != nil {
		return Value{}, e
	}
	if c.eof() {
		return Value{}, c.fail(ErrEOF)
	}
	if c.ext&ExtAnyTopLevel == 0 && c.peek() != '{' && c.peek() != '[' {
		return Value{}, c.fail(ErrTopLevel)
	}
	v, e := p.value()
	if e != nil {
		return Value{}, e
	}
	if e := c.skip(); e != nil {
		v.Dispose()
		return Value{}, e
	}
	if !c.eof() && !(len(c.data) == 1 && c.data[0] == 0) {
		v.Dispose()
		return Value{}, c.fail(ErrTrailingData)
	}
	return v, nil
}
