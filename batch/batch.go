// Package batch decodes many independent JSON documents concurrently on a worker pool
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ecadlabs/jtree/v2"
	"github.com/panjf2000/ants/v2"
)

// Result is the outcome of decoding one document. The caller owns Value and releases it with Destroy
type Result struct {
	Value *jtree.Value
	Err   error
}

// Decoder decodes documents in parallel using one shared configuration
type Decoder struct {
	pool *ants.Pool
	dec  *jtree.Decoder
	log  *slog.Logger
}

type poolLogger struct {
	log *slog.Logger
}

func (l poolLogger) Printf(format string, args ...any) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

// New returns new Decoder running at most workers decodes at a time
func New(workers int, op ...jtree.Option) (*Decoder, error) {
	dec := jtree.NewDecoder(op...)
	log := dec.Config().Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	pool, err := ants.NewPool(workers,
		ants.WithLogger(poolLogger{log: log}),
		ants.WithPanicHandler(func(p any) {
			log.Error("batch worker panic", slog.Any("panic", p))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	return &Decoder{pool: pool, dec: dec, log: log}, nil
}

// Decode decodes every document and returns the results in input order. Documents not started
// before ctx is done fail with the context error
func (d *Decoder) Decode(ctx context.Context, docs [][]byte) []Result {
	res := make([]Result, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			res[i].Err = err
			continue
		}
		r := &res[i]
		wg.Add(1)
		err := d.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				r.Err = err
				return
			}
			r.Value, r.Err = d.dec.Decode(doc)
		})
		if err != nil {
			wg.Done()
			r.Err = fmt.Errorf("batch: %w", err)
		}
	}
	wg.Wait()

	var failed int
	for i := range res {
		if res[i].Err != nil {
			failed++
		}
	}
	d.log.Debug("batch decoded", slog.Int("documents", len(docs)), slog.Int("failed", failed))
	return res
}

// Close stops the worker pool. Decode must not be called afterwards
func (d *Decoder) Close() {
	d.pool.Release()
}
