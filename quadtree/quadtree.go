package quadtree

import (
	"github.com/pkg/errors"
)

// DefaultMaxDepth bounds how many times a region may be split below the root
const DefaultMaxDepth = 32

// ErrInvalidCapacity is returned when a tree is built with a capacity below one
var ErrInvalidCapacity = errors.New("quadtree capacity must be at least 1")

// Option configures a Tree at construction
type Option func(*options)

type options struct {
	maxDepth int
}

// WithMaxDepth caps subdivision depth. A full node at the cap keeps accepting
// points past its capacity instead of splitting again.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth >= 0 {
			o.maxDepth = depth
		}
	}
}

// Tree is a point quadtree over a fixed region. Each node stores up to capacity
// points itself and, once full, owns four children covering its quadrants.
// A Tree is not safe for concurrent use.
type Tree[T any] struct {
	region   Region
	capacity int
	depth    int
	maxDepth int
	points   []*Point[T]

	divided   bool
	northwest *Tree[T]
	northeast *Tree[T]
	southwest *Tree[T]
	southeast *Tree[T]
}

// New creates an empty root tree covering region
func New[T any](region Region, capacity int, opts ...Option) (*Tree[T], error) {
	if capacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "[New] capacity: %d", capacity)
	}
	if region.HalfWidth < 0 || region.HalfHeight < 0 {
		return nil, errors.Wrapf(ErrNegativeExtent, "[New] region: %s", region)
	}

	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}
	return newNode[T](region, capacity, 0, o.maxDepth), nil
}

func newNode[T any](region Region, capacity, depth, maxDepth int) *Tree[T] {
	return &Tree[T]{
		region:   region,
		capacity: capacity,
		depth:    depth,
		maxDepth: maxDepth,
		points:   make([]*Point[T], 0, capacity),
	}
}

// Region returns the area covered by this node
func (q *Tree[T]) Region() Region {
	return q.region
}

// Capacity returns the number of points a node holds before it subdivides
func (q *Tree[T]) Capacity() int {
	return q.capacity
}

// Divided reports whether this node has been split into quadrants
func (q *Tree[T]) Divided() bool {
	return q.divided
}

// Points returns the points held directly by this node, not its children
func (q *Tree[T]) Points() []*Point[T] {
	return q.points
}

// Children returns the NW, NE, SW and SE children, all nil for a leaf
func (q *Tree[T]) Children() (nw, ne, sw, se *Tree[T]) {
	return q.northwest, q.northeast, q.southwest, q.southeast
}

// Insert stores p in the tree. It returns false when p lies outside the tree's
// region or when no quadrant accepted it after a split.
func (q *Tree[T]) Insert(p *Point[T]) bool {
	if !Contains(q.region, p) {
		return false
	}
	if len(q.points) < q.capacity {
		q.points = append(q.points, p)
		return true
	}
	if !q.divided {
		if q.depth >= q.maxDepth {
			q.points = append(q.points, p)
			return true
		}
		q.subdivide()
	}

	return q.northwest.Insert(p) ||
		q.northeast.Insert(p) ||
		q.southwest.Insert(p) ||
		q.southeast.Insert(p)
}

// subdivide must only be called once per node
func (q *Tree[T]) subdivide() {
	nw, ne, sw, se := q.region.Quadrants()
	q.northwest = newNode[T](nw, q.capacity, q.depth+1, q.maxDepth)
	q.northeast = newNode[T](ne, q.capacity, q.depth+1, q.maxDepth)
	q.southwest = newNode[T](sw, q.capacity, q.depth+1, q.maxDepth)
	q.southeast = newNode[T](se, q.capacity, q.depth+1, q.maxDepth)
	q.divided = true
}

// Query returns every point in the tree inside r. The returned pointers alias
// the stored points.
func (q *Tree[T]) Query(r Region) []*Point[T] {
	return q.query(r, nil)
}

// QueryAppend is Query that appends matches to dst, letting callers reuse a buffer
func (q *Tree[T]) QueryAppend(r Region, dst []*Point[T]) []*Point[T] {
	return q.query(r, dst)
}

func (q *Tree[T]) query(r Region, found []*Point[T]) []*Point[T] {
	if !q.region.Intersects(r) {
		return found
	}
	for _, p := range q.points {
		if Contains(r, p) {
			found = append(found, p)
		}
	}
	if !q.divided {
		return found
	}

	found = q.northwest.query(r, found)
	found = q.northeast.query(r, found)
	found = q.southeast.query(r, found)
	found = q.southwest.query(r, found)
	return found
}

// Walk calls fn for every point in the tree: a node's own points first, then its
// children in NW, NE, SE, SW order.
func (q *Tree[T]) Walk(fn func(p *Point[T])) {
	for _, p := range q.points {
		fn(p)
	}
	if !q.divided {
		return
	}

	q.northwest.Walk(fn)
	q.northeast.Walk(fn)
	q.southeast.Walk(fn)
	q.southwest.Walk(fn)
}

// Len returns the number of points stored in the tree
func (q *Tree[T]) Len() (count int) {
	q.Walk(func(*Point[T]) { count++ })
	return
}

// Depth returns the number of levels below this node, zero for a leaf
func (q *Tree[T]) Depth() int {
	if !q.divided {
		return 0
	}
	return 1 + max(
		q.northwest.Depth(),
		q.northeast.Depth(),
		q.southeast.Depth(),
		q.southwest.Depth(),
	)
}
