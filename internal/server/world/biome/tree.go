package biome

import (
	"cmp"
	"math"
	"slices"
)

// Leaf is a tree node holding one value.
type Leaf[T any] struct {
	n *node[T]
}

// Value returns the leaf's payload.
func (l *Leaf[T]) Value() T { return l.n.value }

// Region returns the bounds the leaf was built from.
func (l *Leaf[T]) Region() [Dimensions]ParameterRange { return l.n.space }

type node[T any] struct {
	space    [Dimensions]ParameterRange
	children []*node[T]
	value    T
	leaf     *Leaf[T]
}

// SearchTree finds the entry whose region lies closest to a climate point.
// It is immutable and safe for concurrent use; a search hint belongs to its
// caller.
type SearchTree[T any] struct {
	root *node[T]
}

// NewSearchTree builds the tree over values and their regions. It panics when
// there are no entries.
func NewSearchTree[T any](values []T, regions []Hypercube) *SearchTree[T] {
	if len(values) != len(regions) {
		panic("biome: values and regions differ in length")
	}
	leaves := make([]*node[T], len(values))
	for i, v := range values {
		n := &node[T]{space: regions[i].space(), value: v}
		n.leaf = &Leaf[T]{n: n}
		leaves[i] = n
	}
	return &SearchTree[T]{root: build(leaves)}
}

// NewBiomeTree builds a tree over biome entries.
func NewBiomeTree(entries []Entry) *SearchTree[Biome] {
	values := make([]Biome, len(entries))
	regions := make([]Hypercube, len(entries))
	for i, e := range entries {
		values[i] = e.Biome
		regions[i] = e.Parameters
	}
	return NewSearchTree(values, regions)
}

func newBranch[T any](children []*node[T]) *node[T] {
	n := &node[T]{children: children}
	n.space = children[0].space
	for _, c := range children[1:] {
		for i := range n.space {
			n.space[i] = n.space[i].Combine(c.space[i])
		}
	}
	return n
}

func build[T any](children []*node[T]) *node[T] {
	switch {
	case len(children) == 0:
		panic("biome: need at least one child to build a node")
	case len(children) == 1:
		return children[0]
	case len(children) <= 6:
		slices.SortStableFunc(children, func(a, b *node[T]) int {
			return cmp.Compare(centerMagnitude(a), centerMagnitude(b))
		})
		return newBranch(children)
	}

	bestCost := int64(math.MaxInt64)
	bestAxis := -1
	var bestBuckets []*node[T]
	for axis := range Dimensions {
		sortByAxis(children, axis, false)
		buckets := bucketize(children)
		var cost int64
		for _, b := range buckets {
			cost += spaceCost(b.space)
		}
		if bestCost > cost {
			bestCost, bestAxis, bestBuckets = cost, axis, buckets
		}
	}
	sortByAxis(bestBuckets, bestAxis, true)
	out := make([]*node[T], len(bestBuckets))
	for i, b := range bestBuckets {
		out[i] = build(slices.Clone(b.children))
	}
	return newBranch(out)
}

func centerMagnitude[T any](n *node[T]) int64 {
	var sum int64
	for _, r := range n.space {
		sum += abs64(r.mid())
	}
	return sum
}

// sortByAxis orders nodes by their center on axis, then on each following
// axis in turn.
func sortByAxis[T any](nodes []*node[T], axis int, absolute bool) {
	key := func(n *node[T], a int) int64 {
		m := n.space[a].mid()
		if absolute {
			return abs64(m)
		}
		return m
	}
	slices.SortStableFunc(nodes, func(x, y *node[T]) int {
		for i := range Dimensions {
			a := (axis + i) % Dimensions
			if c := cmp.Compare(key(x, a), key(y, a)); c != 0 {
				return c
			}
		}
		return 0
	})
}

func bucketize[T any](nodes []*node[T]) []*node[T] {
	size := int(math.Pow(6, math.Floor(math.Log(float64(len(nodes))-0.01)/math.Log(6))))
	var out []*node[T]
	var bucket []*node[T]
	for _, n := range nodes {
		bucket = append(bucket, n)
		if len(bucket) >= size {
			out = append(out, newBranch(bucket))
			bucket = nil
		}
	}
	if len(bucket) > 0 {
		out = append(out, newBranch(bucket))
	}
	return out
}

func spaceCost(space [Dimensions]ParameterRange) int64 {
	var sum int64
	for _, r := range space {
		sum += abs64(r.Max - r.Min)
	}
	return sum
}

func (n *node[T]) distance(p *[Dimensions]int64) int64 {
	var sum int64
	for i, r := range n.space {
		d := r.Distance(p[i])
		sum += d * d
	}
	return sum
}

func (n *node[T]) search(p *[Dimensions]int64, best *node[T]) *node[T] {
	if n.children == nil {
		return n
	}
	dist := int64(math.MaxInt64)
	if best != nil {
		dist = best.distance(p)
	}
	for _, c := range n.children {
		d := c.distance(p)
		if dist <= d {
			continue
		}
		found := c.search(p, best)
		fd := d
		if found != c {
			fd = found.distance(p)
		}
		if dist > fd {
			dist, best = fd, found
		}
	}
	return best
}

// Search returns the leaf nearest to p. hint, usually the previous result,
// seeds the best distance; nil is always correct.
func (t *SearchTree[T]) Search(p NoisePoint, hint *Leaf[T]) *Leaf[T] {
	a := p.Array()
	var start *node[T]
	if hint != nil {
		start = hint.n
	}
	return t.root.search(&a, start).leaf
}

// Get returns the value nearest to p.
func (t *SearchTree[T]) Get(p NoisePoint) T { return t.Search(p, nil).Value() }

// Leaves returns every leaf in tree order.
func (t *SearchTree[T]) Leaves() []*Leaf[T] {
	var out []*Leaf[T]
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n.children == nil {
			out = append(out, n.leaf)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Searcher remembers its last result to speed up nearby lookups. It is not
// safe for concurrent use.
type Searcher[T any] struct {
	tree *SearchTree[T]
	last *Leaf[T]
}

func (t *SearchTree[T]) NewSearcher() *Searcher[T] { return &Searcher[T]{tree: t} }

func (s *Searcher[T]) Get(p NoisePoint) T {
	s.last = s.tree.Search(p, s.last)
	return s.last.Value()
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
