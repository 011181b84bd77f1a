package slice

import (
	"sync"

	"github.com/dm-vev/worldslice/world"
)

// Pool pools Slice instances for one world. Slices hold large arrays, so
// consumers should get a Slice from a Pool, load it with CopyData, query it
// and put it back rather than allocating new instances.
//
// The Pool also forms the handoff boundary between goroutines: a Slice put
// back may be handed out to a different goroutine, which observes all data
// written before the Put.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a Pool producing Slices of the World passed.
func NewPool(w *world.World) *Pool {
	return &Pool{pool: sync.Pool{New: func() any {
		return New(w)
	}}}
}

// Get returns a Slice from the Pool, allocating a new one if the Pool is
// empty. The Slice holds no snapshot until CopyData is called on it.
func (p *Pool) Get() *Slice {
	return p.pool.Get().(*Slice)
}

// Put returns a Slice to the Pool. The caller must not use the Slice after
// Put.
func (p *Pool) Put(s *Slice) {
	p.pool.Put(s)
}
