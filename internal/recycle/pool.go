package recycle

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/charmbracelet/recycle/internal/metrics"
	"github.com/eapache/queue"
)

// Instance is a visual instance together with the type it was created from.
type Instance struct {
	Cell Cell
	Type int
	Size Size
}

// Entry is an active instance bound to an index.
type Entry struct {
	Index int
	// Offset is the leading edge along the sliding axis when the entry was
	// last placed.
	Offset   float64
	Position Vec2
	Instance
}

func (e Entry) extent(axis Axis) float64 {
	return axis.main(e.Instance.Size)
}

func (e Entry) end(axis Axis) float64 {
	return e.Offset + e.extent(axis)
}

// Pool owns every instance: the active set, kept sorted ascending by index
// without duplicates, and the free list grouped by visual type.
type Pool struct {
	source  DataSource
	factory CellFactory
	protos  *prototypes
	metrics *metrics.Metrics

	active []Entry
	free   map[int]*queue.Queue
	nfree  int
}

func newPool(source DataSource, factory CellFactory, derive func(typ int) Zygote, m *metrics.Metrics) *Pool {
	return &Pool{
		source:  source,
		factory: factory,
		protos:  newPrototypes(derive),
		metrics: m,
		free:    make(map[int]*queue.Queue),
	}
}

// Zygote returns the prototype for the visual type of index, deriving it on
// first reference.
func (p *Pool) Zygote(index int) Zygote {
	return p.protos.get(p.source.TypeOf(index))
}

// Acquire returns an unbound instance matching the visual type of index,
// reusing a free one when available. The active set is left untouched.
func (p *Pool) Acquire(index int) Instance {
	typ := p.source.TypeOf(index)
	if q, ok := p.free[typ]; ok && q.Length() > 0 {
		p.nfree--
		p.metrics.RecordAcquire(true)
		return q.Remove().(Instance)
	}
	z := p.protos.get(typ)
	p.metrics.RecordAcquire(false)
	return Instance{
		Cell: p.factory.Create(z),
		Type: typ,
		Size: z.Size,
	}
}

// search returns the position of index in the active set and whether an
// entry with that index is present.
func (p *Pool) search(index int) (int, bool) {
	return slices.BinarySearchFunc(p.active, index, func(e Entry, target int) int {
		return cmp.Compare(e.Index, target)
	})
}

// Admit inserts e into the active set keeping it sorted by index.
func (p *Pool) Admit(e Entry) error {
	i, found := p.search(e.Index)
	if found {
		return fmt.Errorf("%w: index %d is already active", ErrInvariant, e.Index)
	}
	p.active = slices.Insert(p.active, i, e)
	p.metrics.RecordAdmit()
	return nil
}

// Evict removes the entry for e.Index from the active set and returns its
// stored instance to the free list.
func (p *Pool) Evict(e Entry) error {
	i, found := p.search(e.Index)
	if !found {
		return fmt.Errorf("%w: index %d is not active", ErrInvariant, e.Index)
	}
	p.release(p.active[i].Instance)
	p.active = slices.Delete(p.active, i, i+1)
	p.metrics.RecordEvict()
	return nil
}

// EvictAll moves every active instance to the free list.
func (p *Pool) EvictAll() {
	for _, e := range p.active {
		p.release(e.Instance)
		p.metrics.RecordEvict()
	}
	p.active = p.active[:0]
}

func (p *Pool) release(inst Instance) {
	q, ok := p.free[inst.Type]
	if !ok {
		q = queue.New()
		p.free[inst.Type] = q
	}
	q.Add(inst)
	p.nfree++
}

// Smallest returns the active entry with the lowest index. ok is false when
// the active set is empty, in which case the zero Entry is returned.
func (p *Pool) Smallest() (e Entry, ok bool) {
	if len(p.active) == 0 {
		return Entry{}, false
	}
	return p.active[0], true
}

// Largest returns the active entry with the highest index. ok is false when
// the active set is empty, in which case the zero Entry is returned.
func (p *Pool) Largest() (e Entry, ok bool) {
	if len(p.active) == 0 {
		return Entry{}, false
	}
	return p.active[len(p.active)-1], true
}

// Contains reports whether index is active.
func (p *Pool) Contains(index int) bool {
	_, found := p.search(index)
	return found
}

// Active returns a copy of the active set in index order.
func (p *Pool) Active() []Entry {
	return slices.Clone(p.active)
}

// Len returns the number of active entries.
func (p *Pool) Len() int {
	return len(p.active)
}

// FreeLen returns the number of pooled instances across all types.
func (p *Pool) FreeLen() int {
	return p.nfree
}

// Prototypes returns the number of memoized prototypes.
func (p *Pool) Prototypes() int {
	return p.protos.len()
}

// Reset destroys every instance, active or free, and clears the prototype
// cache.
func (p *Pool) Reset() {
	n := 0
	for _, e := range p.active {
		p.factory.Destroy(e.Instance.Cell)
		n++
	}
	p.active = nil
	for typ, q := range p.free {
		for q.Length() > 0 {
			p.factory.Destroy(q.Remove().(Instance).Cell)
			n++
		}
		delete(p.free, typ)
	}
	p.nfree = 0
	p.protos.clear()
	p.metrics.RecordDestroy(n)
}
