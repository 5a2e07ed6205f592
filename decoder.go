package jtree

import (
	"log/slog"
)

// Decoder decodes byte buffers into Value trees using a fixed configuration.
// A Decoder is safe for concurrent use as long as its allocator is
type Decoder struct {
	cfg Config
}

// NewDecoder returns new Decoder configured by the options
func NewDecoder(op ...Option) *Decoder {
	return &Decoder{cfg: newOptions(op).cfg}
}

// Config returns a copy of the decoder configuration
func (d *Decoder) Config() Config { return d.cfg }

// Decode parses data into a heap allocated Value. The caller releases the result with Destroy.
// On failure nothing stays allocated and the error is a *SyntaxError
func (d *Decoder) Decode(data []byte) (*Value, error) {
	p := newParser(data, &d.cfg)
	v, e := p.document()
	if e == nil {
		root, err := NewValue(p.alloc)
		if err == nil {
			alloc := root.alloc
			*root = v
			root.alloc = alloc
			return root, nil
		}
		v.Dispose()
		e = p.modelError(err)
	}
	if l := d.cfg.Logger; l != nil {
		l.Debug("json decode failed",
			slog.String("error", e.Kind.String()),
			slog.Int("row", e.Row),
			slog.Int("col", e.Col),
			slog.Int("size", len(data)))
	}
	return nil, e
}

// Decode parses data into a heap allocated Value. See Decoder.Decode
func Decode(data []byte, op ...Option) (*Value, error) {
	return NewDecoder(op...).Decode(data)
}
