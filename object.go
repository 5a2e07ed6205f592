package jtree

import (
	"hash/maphash"
)

var hashSeed = maphash.MakeSeed()

type entry struct {
	key   *String
	value Value
	next  *entry
}

// Entry is a key-value pair detached from an Object. The caller owns both
type Entry struct {
	Key   *String
	Value Value
}

// Object maps unique string keys to values. Keys are hashed into a bucket table, colliding entries are
// chained with the most recently inserted entry first. The order of keys is not significant.
type Object struct {
	buckets []*entry
	size    int
	alloc   Allocator
	growth  Growth
}

// NewObject returns new empty Object bound to the allocator
func NewObject(alloc Allocator) (*Object, error) {
	alloc = allocOrDefault(alloc)
	if err := alloc.Allocate(objectSize); err != nil {
		return nil, allocError(err)
	}
	return &Object{alloc: alloc}, nil
}

func (o *Object) allocator() Allocator { return allocOrDefault(o.alloc) }

// Len returns the number of entries
func (o *Object) Len() int { return o.size }

// Cap returns the number of buckets
func (o *Object) Cap() int { return len(o.buckets) }

// SetGrowth sets the capacity policy
func (o *Object) SetGrowth(g Growth) { o.growth = g }

func (o *Object) bucket(key string) int {
	return int(maphash.String(hashSeed, key) % uint64(len(o.buckets)))
}

func (o *Object) find(key string) (*entry, **entry) {
	if len(o.buckets) == 0 {
		return nil, nil
	}
	link := &o.buckets[o.bucket(key)]
	for e := *link; e != nil; e = e.next {
		if e.key.equal(key) {
			return e, link
		}
		link = &e.next
	}
	return nil, nil
}

// Get returns the value stored under key
func (o *Object) Get(key string) (*Value, bool) {
	e, _ := o.find(key)
	if e == nil {
		return nil, false
	}
	return &e.value, true
}

// Has reports whether key is present
func (o *Object) Has(key string) bool {
	e, _ := o.find(key)
	return e != nil
}

// Keys returns all keys in bucket order
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.size)
	o.Each(func(key string, _ *Value) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Each calls fn for every entry in bucket order until fn returns false
func (o *Object) Each(fn func(key string, v *Value) bool) {
	for _, e := range o.buckets {
		for ; e != nil; e = e.next {
			if !fn(e.key.String(), &e.value) {
				return
			}
		}
	}
}

// rehash redistributes every entry over a table of c buckets
func (o *Object) rehash(c int) error {
	var err error
	if o.buckets == nil {
		err = o.allocator().Allocate(c * bucketSize)
	} else {
		err = o.allocator().Reallocate(len(o.buckets)*bucketSize, c*bucketSize)
	}
	if err != nil {
		return allocError(err)
	}
	old := o.buckets
	o.buckets = make([]*entry, c)
	for _, e := range old {
		for e != nil {
			next := e.next
			i := o.bucket(e.key.String())
			e.next = o.buckets[i]
			o.buckets[i] = e
			e = next
		}
	}
	return nil
}

// insert links a new entry. The key must be absent
func (o *Object) insert(key *String, v Value) error {
	if o.size+1 > len(o.buckets) {
		if err := o.rehash(o.growth.next(len(o.buckets), o.size+1)); err != nil {
			return err
		}
	}
	if err := o.allocator().Allocate(entrySize); err != nil {
		return allocError(err)
	}
	i := o.bucket(key.String())
	o.buckets[i] = &entry{key: key, value: v.embedded(), next: o.buckets[i]}
	o.size++
	return nil
}

func (o *Object) put(key string, owned *String, v Value) (old Value, replaced bool, err error) {
	if e, _ := o.find(key); e != nil {
		old, e.value = e.value, v.embedded()
		if owned != nil {
			owned.Free()
		}
		return old, true, nil
	}
	k := owned
	if k == nil {
		if k, err = NewStringFrom(o.alloc, key); err != nil {
			return Value{}, false, err
		}
	}
	if err = o.insert(k, v); err != nil {
		if owned == nil {
			k.Free()
		}
		return Value{}, false, err
	}
	return Value{}, false, nil
}

// Put stores v under a copy of key. A previous value stored under the same key is released.
// On failure the object is unchanged and the caller keeps v
func (o *Object) Put(key string, v Value) error {
	old, _, err := o.put(key, nil, v)
	if err != nil {
		return err
	}
	old.Dispose()
	return nil
}

// PutString stores v under key taking ownership of the key. If the key is already present the previous
// value is released along with the passed key. On failure the caller keeps both key and v
func (o *Object) PutString(key *String, v Value) error {
	old, _, err := o.put(key.String(), key, v)
	if err != nil {
		return err
	}
	old.Dispose()
	return nil
}

// Swap stores v under a copy of key and hands the previous value, if any, over to the caller
func (o *Object) Swap(key string, v Value) (old Value, replaced bool, err error) {
	return o.put(key, nil, v)
}

// Detach removes the entry and hands its key and value over to the caller
func (o *Object) Detach(key string) (Entry, bool) {
	e, link := o.find(key)
	if e == nil {
		return Entry{}, false
	}
	*link = e.next
	o.size--
	o.allocator().Release(entrySize)
	return Entry{Key: e.key, Value: e.value}, true
}

// Remove removes and releases the entry. It returns false if the key is absent
func (o *Object) Remove(key string) bool {
	ent, ok := o.Detach(key)
	if !ok {
		return false
	}
	ent.Key.Free()
	ent.Value.Dispose()
	return true
}

// Dispose releases every entry and the bucket table. The object stays usable and empty
func (o *Object) Dispose() {
	for i, e := range o.buckets {
		for e != nil {
			next := e.next
			e.key.Free()
			e.value.Dispose()
			o.allocator().Release(entrySize)
			e = next
		}
		o.buckets[i] = nil
	}
	if o.buckets != nil {
		o.allocator().Release(len(o.buckets) * bucketSize)
	}
	o.buckets = nil
	o.size = 0
}

// Destroy disposes the object and releases the object itself
func (o *Object) Destroy() {
	o.Dispose()
	o.allocator().Release(objectSize)
}
