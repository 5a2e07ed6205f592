package jtree

// Array is a growable sequence of values. It owns every element
type Array struct {
	elems  []Value
	alloc  Allocator
	growth Growth
}

// NewArray returns new empty Array bound to the allocator
func NewArray(alloc Allocator) (*Array, error) {
	alloc = allocOrDefault(alloc)
	if err := alloc.Allocate(arraySize); err != nil {
		return nil, allocError(err)
	}
	return &Array{alloc: alloc}, nil
}

func (a *Array) allocator() Allocator { return allocOrDefault(a.alloc) }

// Len returns the number of elements
func (a *Array) Len() int { return len(a.elems) }

// Cap returns the number of elements the array can hold without growing
func (a *Array) Cap() int { return cap(a.elems) }

// SetGrowth sets the capacity policy
func (a *Array) SetGrowth(g Growth) { a.growth = g }

// Get returns i'th element. The pointer stays valid until the array grows or shrinks
func (a *Array) Get(i int) (*Value, bool) {
	if i < 0 || i >= len(a.elems) {
		return nil, false
	}
	return &a.elems[i], true
}

// Each calls fn for every element in order until fn returns false
func (a *Array) Each(fn func(i int, v *Value) bool) {
	for i := range a.elems {
		if !fn(i, &a.elems[i]) {
			return
		}
	}
}

func (a *Array) resize(c int) error {
	var err error
	switch {
	case a.elems == nil:
		err = a.allocator().Allocate(c * valueSize)
	default:
		err = a.allocator().Reallocate(cap(a.elems)*valueSize, c*valueSize)
	}
	if err != nil {
		return allocError(err)
	}
	elems := make([]Value, len(a.elems), c)
	copy(elems, a.elems)
	a.elems = elems
	return nil
}

// Reserve makes sure the array can hold at least n elements
func (a *Array) Reserve(n int) error {
	if n <= cap(a.elems) {
		return nil
	}
	return a.resize(n)
}

// Append takes ownership of v. On failure the caller keeps it
func (a *Array) Append(v Value) error {
	if len(a.elems) == cap(a.elems) {
		if err := a.resize(a.growth.next(cap(a.elems), len(a.elems)+1)); err != nil {
			return err
		}
	}
	a.elems = append(a.elems, v.embedded())
	return nil
}

// Replace releases i'th element and stores v in its place. If i is out of bounds ErrOutOfBounds is
// returned and the caller keeps v
func (a *Array) Replace(i int, v Value) error {
	old, err := a.Swap(i, v)
	if err != nil {
		return err
	}
	old.Dispose()
	return nil
}

// Swap stores v in place of i'th element and hands the previous element over to the caller
func (a *Array) Swap(i int, v Value) (Value, error) {
	if i < 0 || i >= len(a.elems) {
		return Value{}, ErrOutOfBounds
	}
	old := a.elems[i]
	a.elems[i] = v.embedded()
	return old, nil
}

// Truncate releases the elements beyond n
func (a *Array) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= len(a.elems) {
		return
	}
	for i := n; i < len(a.elems); i++ {
		a.elems[i].Dispose()
	}
	a.elems = a.elems[:n]
}

// ShrinkToFit reduces the capacity to the number of elements. The storage of an empty array is released
func (a *Array) ShrinkToFit() error {
	if cap(a.elems) == len(a.elems) {
		return nil
	}
	if len(a.elems) == 0 {
		a.release()
		return nil
	}
	return a.resize(len(a.elems))
}

func (a *Array) release() {
	if a.elems != nil {
		a.allocator().Release(cap(a.elems) * valueSize)
	}
	a.elems = nil
}

// Dispose releases every element and the storage. The array stays usable and empty
func (a *Array) Dispose() {
	for i := range a.elems {
		a.elems[i].Dispose()
	}
	a.release()
}

// Destroy disposes the array and releases the array itself
func (a *Array) Destroy() {
	a.Dispose()
	a.allocator().Release(arraySize)
}
