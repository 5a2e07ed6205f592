package jtree

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Allocator admits, accounts and releases every allocation performed by the value model.
// The receiver plays the role of the allocator context. Sizes are in bytes.
//
// A structure keeps the allocator it was created with for its whole lifetime: growth, shrinking
// and release of a String, Array or Object always go through that same allocator.
// An Allocator shared between concurrent Decode calls must be safe for concurrent use.
type Allocator interface {
	// Allocate admits a new block of the given size
	Allocate(size int) error
	// Reallocate resizes a block previously admitted with oldSize
	Reallocate(oldSize, newSize int) error
	// Release returns a block of the given size
	Release(size int)
}

type heap struct{}

func (heap) Allocate(int) error        { return nil }
func (heap) Reallocate(int, int) error { return nil }
func (heap) Release(int)               {}

// Heap is the default pass-through allocator backed by the Go runtime
var Heap Allocator = heap{}

func allocOrDefault(a Allocator) Allocator {
	if a == nil {
		return Heap
	}
	return a
}

// ErrBudgetExceeded is returned by Limit when an allocation doesn't fit into the budget
var ErrBudgetExceeded = errors.New("jtree: allocation budget exceeded")

// Counter wraps another allocator and keeps track of live bytes and blocks. It is safe for concurrent use
type Counter struct {
	// Next receives the calls after accounting. Heap is used if nil
	Next Allocator

	live   atomic.Int64
	blocks atomic.Int64
	allocs atomic.Int64
	frees  atomic.Int64
}

// Allocate implements Allocator
func (c *Counter) Allocate(size int) error {
	if err := allocOrDefault(c.Next).Allocate(size); err != nil {
		return err
	}
	c.live.Add(int64(size))
	c.blocks.Add(1)
	c.allocs.Add(1)
	return nil
}

// Reallocate implements Allocator
func (c *Counter) Reallocate(oldSize, newSize int) error {
	if err := allocOrDefault(c.Next).Reallocate(oldSize, newSize); err != nil {
		return err
	}
	c.live.Add(int64(newSize - oldSize))
	return nil
}

// Release implements Allocator
func (c *Counter) Release(size int) {
	allocOrDefault(c.Next).Release(size)
	c.live.Add(-int64(size))
	c.blocks.Add(-1)
	c.frees.Add(1)
}

// Live returns the number of bytes currently admitted
func (c *Counter) Live() int64 { return c.live.Load() }

// Blocks returns the number of blocks currently admitted
func (c *Counter) Blocks() int64 { return c.blocks.Load() }

// Allocs returns the total number of Allocate calls that succeeded
func (c *Counter) Allocs() int64 { return c.allocs.Load() }

// Frees returns the total number of Release calls
func (c *Counter) Frees() int64 { return c.frees.Load() }

// Limit fails allocations once the number of live bytes would exceed Budget. It is safe for concurrent use
type Limit struct {
	Budget int64
	// Next receives the calls which fit into the budget. Heap is used if nil
	Next Allocator

	used atomic.Int64
}

// NewLimit returns new Limit allocator with the given budget in bytes
func NewLimit(budget int64, next Allocator) *Limit {
	return &Limit{Budget: budget, Next: next}
}

func (l *Limit) reserve(n int64) error {
	for {
		cur := l.used.Load()
		if cur+n > l.Budget {
			return fmt.Errorf("%w: %d + %d > %d", ErrBudgetExceeded, cur, n, l.Budget)
		}
		if l.used.CompareAndSwap(cur, cur+n) {
			return nil
		}
	}
}

// Allocate implements Allocator
func (l *Limit) Allocate(size int) error {
	if err := l.reserve(int64(size)); err != nil {
		return err
	}
	if err := allocOrDefault(l.Next).Allocate(size); err != nil {
		l.used.Add(-int64(size))
		return err
	}
	return nil
}

// Reallocate implements Allocator
func (l *Limit) Reallocate(oldSize, newSize int) error {
	delta := int64(newSize - oldSize)
	if delta > 0 {
		if err := l.reserve(delta); err != nil {
			return err
		}
	} else {
		l.used.Add(delta)
	}
	if err := allocOrDefault(l.Next).Reallocate(oldSize, newSize); err != nil {
		l.used.Add(-delta)
		return err
	}
	return nil
}

// Release implements Allocator
func (l *Limit) Release(size int) {
	allocOrDefault(l.Next).Release(size)
	l.used.Add(-int64(size))
}

// Used returns the number of bytes currently admitted
func (l *Limit) Used() int64 { return l.used.Load() }

// block sizes used for accounting
var (
	valueSize  = int(unsafe.Sizeof(Value{}))
	stringSize = int(unsafe.Sizeof(String{}))
	arraySize  = int(unsafe.Sizeof(Array{}))
	objectSize = int(unsafe.Sizeof(Object{}))
	entrySize  = int(unsafe.Sizeof(entry{}))
	bucketSize = int(unsafe.Sizeof((*entry)(nil)))
)
