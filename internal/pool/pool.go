// Package pool is a free list of reusable objects addressed by
// generation-checked handles. A handle to a freed object stops resolving
// even after the object is handed out again.
package pool

// Handle refers to an object obtained from a Pool.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the handle was never assigned.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

// Pool owns objects of type T.
type Pool[T any] struct {
	items []*T
	gens  []uint32
	live  []bool
	free  []uint32
	reset func(*T)
}

// New creates a pool. reset is called on every object when it is freed.
func New[T any](reset func(*T)) *Pool[T] {
	return &Pool[T]{reset: reset}
}

// Obtain returns a free object, allocating one if none is available.
func (p *Pool[T]) Obtain() (*T, Handle) {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.items))
		p.items = append(p.items, new(T))
		p.gens = append(p.gens, 0)
		p.live = append(p.live, false)
	}
	p.gens[idx]++
	p.live[idx] = true
	return p.items[idx], Handle{index: idx, gen: p.gens[idx]}
}

// Free returns the object behind h to the pool. It reports false when h is stale.
func (p *Pool[T]) Free(h Handle) bool {
	if !p.valid(h) {
		return false
	}
	p.live[h.index] = false
	if p.reset != nil {
		p.reset(p.items[h.index])
	}
	p.free = append(p.free, h.index)
	return true
}

// Get resolves h, returning nil when the object was freed since h was issued.
func (p *Pool[T]) Get(h Handle) *T {
	if !p.valid(h) {
		return nil
	}
	return p.items[h.index]
}

// Len returns the number of objects currently handed out.
func (p *Pool[T]) Len() int {
	return len(p.items) - len(p.free)
}

func (p *Pool[T]) valid(h Handle) bool {
	return h.gen != 0 && int(h.index) < len(p.items) && p.live[h.index] && p.gens[h.index] == h.gen
}
