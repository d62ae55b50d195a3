package model

import (
	"github.com/sheikhrachel/go-gol-quadtree/quadtree"
)

// DefaultNeighborhoodHalfExtent covers the 8-neighborhood of a cell on a unit lattice
const DefaultNeighborhoodHalfExtent = 1.5

// NeighborOptions controls how UpdateNeighbors counts
type NeighborOptions struct {
	// HalfExtent of the square neighborhood queried around each cell
	HalfExtent float64
	// CountSelf adds a live cell's own state to its neighbor count, as the
	// neighborhood query returns the cell itself. Off gives standard Life.
	CountSelf bool
}

// DefaultNeighborOptions returns standard Game of Life counting
func DefaultNeighborOptions() NeighborOptions {
	return NeighborOptions{HalfExtent: DefaultNeighborhoodHalfExtent}
}

// UpdateNeighbors stores the number of live cells around every cell in root.
// No Alive flag is written, so counts do not depend on traversal order.
func UpdateNeighbors(root *Population, opts NeighborOptions) {
	if root == nil {
		return
	}
	if opts.HalfExtent <= 0 {
		opts.HalfExtent = DefaultNeighborhoodHalfExtent
	}

	var found []*Cell
	root.Walk(func(c *Cell) {
		found = root.QueryAppend(quadtree.Square(c.X, c.Y, opts.HalfExtent), found[:0])
		live := 0
		for _, n := range found {
			if n == c && !opts.CountSelf {
				continue
			}
			if n.Data.Alive {
				live++
			}
		}
		c.Data.LiveNeighbors = live
	})
}

// UpdateState applies the Conway transition to every cell using the counts
// left by UpdateNeighbors
func UpdateState(root *Population) {
	if root == nil {
		return
	}
	root.Walk(func(c *Cell) {
		c.Data = c.Data.Next()
	})
}

// Tick advances the population one generation. Neighbor counting finishes for
// every cell before any cell changes state.
func Tick(root *Population, opts NeighborOptions) {
	UpdateNeighbors(root, opts)
	UpdateState(root)
}
