package jtree

import (
	"unicode/utf8"
)

// String is an owned growable buffer of UTF-8 text
type String struct {
	buf    []byte
	alloc  Allocator
	growth Growth
}

var stringGrowth = Growth{Initial: 16, Factor: 2}

// NewString returns new empty String bound to the allocator
func NewString(alloc Allocator) (*String, error) {
	alloc = allocOrDefault(alloc)
	if err := alloc.Allocate(stringSize); err != nil {
		return nil, allocError(err)
	}
	return &String{alloc: alloc, growth: stringGrowth}, nil
}

// NewStringFrom returns new String holding a copy of s
func NewStringFrom(alloc Allocator, s string) (*String, error) {
	str, err := NewString(alloc)
	if err != nil {
		return nil, err
	}
	if err := str.AppendString(s); err != nil {
		str.Free()
		return nil, err
	}
	return str, nil
}

func (s *String) allocator() Allocator { return allocOrDefault(s.alloc) }

// Len returns the length in bytes
func (s *String) Len() int { return len(s.buf) }

// Cap returns the capacity in bytes
func (s *String) Cap() int { return cap(s.buf) }

// Bytes returns the content. The slice is valid until the next mutation
func (s *String) Bytes() []byte { return s.buf }

// String returns a copy of the content
func (s *String) String() string { return string(s.buf) }

// SetGrowth sets the capacity policy
func (s *String) SetGrowth(g Growth) { s.growth = g }

func (s *String) reserve(n int) error {
	if n <= cap(s.buf) {
		return nil
	}
	c := s.growth.next(cap(s.buf), n)
	var err error
	if s.buf == nil {
		err = s.allocator().Allocate(c)
	} else {
		err = s.allocator().Reallocate(cap(s.buf), c)
	}
	if err != nil {
		return allocError(err)
	}
	buf := make([]byte, len(s.buf), c)
	copy(buf, s.buf)
	s.buf = buf
	return nil
}

// AppendRune appends the UTF-8 encoding of a code point. Surrogate halves and values beyond U+10FFFF
// fail with ErrEncoding
func (s *String) AppendRune(r rune) error {
	if !utf8.ValidRune(r) {
		return ErrEncoding
	}
	if err := s.reserve(len(s.buf) + utf8.RuneLen(r)); err != nil {
		return err
	}
	s.buf = utf8.AppendRune(s.buf, r)
	return nil
}

// AppendBytes appends a copy of b which must be valid UTF-8
func (s *String) AppendBytes(b []byte) error {
	if !utf8.Valid(b) {
		return ErrEncoding
	}
	return s.appendValid(b)
}

// AppendString appends s which must be valid UTF-8
func (s *String) AppendString(str string) error {
	if !utf8.ValidString(str) {
		return ErrEncoding
	}
	if err := s.reserve(len(s.buf) + len(str)); err != nil {
		return err
	}
	s.buf = append(s.buf, str...)
	return nil
}

func (s *String) appendValid(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if err := s.reserve(len(s.buf) + len(b)); err != nil {
		return err
	}
	s.buf = append(s.buf, b...)
	return nil
}

// Clear truncates the content to zero length. If release is true the backing buffer is returned
// to the allocator as well
func (s *String) Clear(release bool) {
	if !release {
		s.buf = s.buf[:0]
		return
	}
	if s.buf != nil {
		s.allocator().Release(cap(s.buf))
	}
	s.buf = nil
}

// Clone returns a deep copy bound to the same allocator
func (s *String) Clone() (*String, error) {
	out, err := NewString(s.alloc)
	if err != nil {
		return nil, err
	}
	out.growth = s.growth
	if err := out.appendValid(s.buf); err != nil {
		out.Free()
		return nil, err
	}
	return out, nil
}

// Free releases the buffer and the String itself. The String must not be used afterwards
func (s *String) Free() {
	s.Clear(true)
	s.allocator().Release(stringSize)
}

func (s *String) equal(key string) bool { return string(s.buf) == key }
