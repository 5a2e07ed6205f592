package jtree

import (
	"fmt"
)

// ErrorKind is the closed set of failures reported by the decoder and the value model.
// ErrorKind implements error so it can be used as a sentinel with errors.Is
type ErrorKind uint8

const (
	// ErrDecoding is returned when a byte sequence is not well formed UTF-8
	ErrDecoding ErrorKind = iota + 1
	// ErrEncoding is returned when text is not valid Unicode where it must be
	ErrEncoding
	// ErrBufLen is returned when an output buffer is too short
	ErrBufLen
	ErrInternal
	ErrOutOfMemory
	ErrEOF
	ErrTrailingData
	ErrUnclosedObject
	ErrUnclosedArray
	ErrBadInt
	ErrLeadingZero
	ErrBadFrac
	ErrBadExp
	ErrBadOctal
	ErrBadHex
	ErrBadArray
	ErrBadObject
	ErrBadKey
	ErrUnclosedString
	ErrUnclosedComment
	ErrBadEscape
	ErrControlChar
	ErrBadLiteral
	ErrUnexpectedChar
	ErrDuplicateKey
	ErrDepth
	ErrTopLevel
	ErrOutOfBounds
	ErrInputTooLarge
)

var errorText = [...]string{
	ErrDecoding:        "character decoding error",
	ErrEncoding:        "character encoding error",
	ErrBufLen:          "buffer too short",
	ErrInternal:        "internal error",
	ErrOutOfMemory:     "out of memory",
	ErrEOF:             "unexpected end of file",
	ErrTrailingData:    "unexpected data after json-text",
	ErrUnclosedObject:  "expected closing '}' for '{'",
	ErrUnclosedArray:   "expected closing ']' for '['",
	ErrBadInt:          "expected [0-9]",
	ErrLeadingZero:     "leading zero not permissible in int",
	ErrBadFrac:         "expected [0-9] after '.'",
	ErrBadExp:          "expected [0-9] after 'e'",
	ErrBadOctal:        "expected [0-7] after '0'",
	ErrBadHex:          "expected [0-9a-fA-F] after '0x'",
	ErrBadArray:        "expected ',' or ']' after array element",
	ErrBadObject:       "expected ',' or '}' after object member",
	ErrBadKey:          "expected string key",
	ErrUnclosedString:  "expected closing '\"' for '\"'",
	ErrUnclosedComment: "expected closing '*/' for '/*'",
	ErrBadEscape:       "invalid escape sequence",
	ErrControlChar:     "unescaped control character in string",
	ErrBadLiteral:      "expected 'true', 'false' or 'null'",
	ErrUnexpectedChar:  "unexpected character",
	ErrDuplicateKey:    "duplicate object key",
	ErrDepth:           "maximum nesting depth exceeded",
	ErrTopLevel:        "expected object or array at top level",
	ErrOutOfBounds:     "index out of bounds",
	ErrInputTooLarge:   "input exceeds size limit",
}

// String returns the human readable description of the error kind
func (k ErrorKind) String() string {
	if int(k) < len(errorText) && errorText[k] != "" {
		return errorText[k]
	}
	return "unknown error"
}

func (k ErrorKind) Error() string { return "jtree: " + k.String() }

// SyntaxError is returned by Decode. Row and Col are 1-based, Col is expanded by the configured tab width
type SyntaxError struct {
	Kind ErrorKind
	Row  int
	Col  int
	// Err holds the allocator's failure for ErrOutOfMemory
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jtree: %d:%d: %v: %v", e.Row, e.Col, e.Kind.String(), e.Err)
	}
	return fmt.Sprintf("jtree: %d:%d: %v", e.Row, e.Col, e.Kind.String())
}

// Unwrap returns the error kind and the allocator cause, if any
func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// AllocError is returned by the value model when the allocator refuses an allocation.
// It matches ErrOutOfMemory with errors.Is
type AllocError struct {
	Err error
}

func (e *AllocError) Error() string { return ErrOutOfMemory.Error() + ": " + e.Err.Error() }

// Unwrap returns ErrOutOfMemory and the allocator's error
func (e *AllocError) Unwrap() []error { return []error{ErrOutOfMemory, e.Err} }

func allocError(err error) error { return &AllocError{Err: err} }
