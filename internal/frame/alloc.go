package frame

import "sync"

// Allocator provides storage for w×h pictures of a given format.
type Allocator interface {
	Alloc(format PixelFormat, w, h int) (*Buffer, error)
}

// HeapAllocator allocates fresh planes on every call and lets the garbage
// collector reclaim them once the buffer is released.
type HeapAllocator struct{}

// Alloc implements Allocator.
func (HeapAllocator) Alloc(format PixelFormat, w, h int) (*Buffer, error) {
	linesizes, heights, err := format.PlaneLayout(w, h)
	if err != nil {
		return nil, err
	}
	var data Planes
	for i := 0; i < format.NumPlanes(); i++ {
		data[i] = make([]byte, linesizes[i]*heights[i])
	}
	return NewBuffer(format, w, h, data, linesizes, dropPlanes), nil
}

func dropPlanes(b *Buffer) {
	b.Data = Planes{}
}

type poolKey struct {
	format PixelFormat
	w, h   int
}

// DefaultPoolIdle is the number of idle plane sets a Pool keeps per size
// when NewPool is given a non-positive limit.
const DefaultPoolIdle = 8

// PoolStats counts how a Pool satisfied its requests.
type PoolStats struct {
	Allocs uint64
	Reuses uint64
	Idle   int
}

// Pool is an Allocator that recycles plane storage of released buffers for
// later requests of the same format and size.
type Pool struct {
	mu      sync.Mutex
	free    map[poolKey][]Planes
	maxIdle int
	allocs  uint64
	reuses  uint64
}

// NewPool creates an empty pool keeping at most maxIdle released plane sets
// per format and size.
func NewPool(maxIdle int) *Pool {
	if maxIdle <= 0 {
		maxIdle = DefaultPoolIdle
	}
	return &Pool{
		free:    make(map[poolKey][]Planes),
		maxIdle: maxIdle,
	}
}

// Alloc implements Allocator.
func (p *Pool) Alloc(format PixelFormat, w, h int) (*Buffer, error) {
	linesizes, heights, err := format.PlaneLayout(w, h)
	if err != nil {
		return nil, err
	}
	key := poolKey{format: format, w: w, h: h}

	p.mu.Lock()
	var data Planes
	if idle := p.free[key]; len(idle) > 0 {
		data = idle[len(idle)-1]
		p.free[key] = idle[:len(idle)-1]
		p.reuses++
	} else {
		for i := 0; i < format.NumPlanes(); i++ {
			data[i] = make([]byte, linesizes[i]*heights[i])
		}
		p.allocs++
	}
	p.mu.Unlock()

	return NewBuffer(format, w, h, data, linesizes, func(b *Buffer) {
		p.put(key, b.Data)
		b.Data = Planes{}
	}), nil
}

func (p *Pool) put(key poolKey, data Planes) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free[key]) < p.maxIdle {
		p.free[key] = append(p.free[key], data)
	}
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	idle := 0
	for _, sets := range p.free {
		idle += len(sets)
	}
	return PoolStats{Allocs: p.allocs, Reuses: p.reuses, Idle: idle}
}
