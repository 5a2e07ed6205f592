package jtree

import (
	"context"
	"fmt"
	"io"

	"github.com/dolmen-go/contextio"
)

// Unmarshal decodes data and stores the result into the Go value pointed to by v.
// The decoded tree is released before returning
func Unmarshal(data []byte, v any, op ...Option) error {
	root, err := Decode(data, op...)
	if err != nil {
		return err
	}
	defer root.Destroy()
	return root.Decode(v, op...)
}

// DecodeReader reads r to the end and decodes the content. Reading stops early if ctx is done
// or the input exceeds the OpMaxInput limit
func DecodeReader(ctx context.Context, r io.Reader, op ...Option) (*Value, error) {
	dec := NewDecoder(op...)
	limit := dec.cfg.MaxInput
	src := contextio.NewReader(ctx, r)
	if limit > 0 {
		src = io.LimitReader(src, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("jtree: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrInputTooLarge
	}
	return dec.Decode(data)
}
