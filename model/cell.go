package model

import (
	"github.com/sheikhrachel/go-gol-quadtree/quadtree"
	"github.com/sheikhrachel/go-gol-quadtree/rules"
)

// CellState is the simulation payload attached to every point in the tree
type CellState struct {
	Alive bool
	// LiveNeighbors is only meaningful between the two phases of a tick
	LiveNeighbors int
}

// Cell is a point in the population tree carrying a CellState
type Cell = quadtree.Point[CellState]

// Population is the spatial index the simulation runs over
type Population = quadtree.Tree[CellState]

// NewCell returns a cell at (x, y)
func NewCell(x, y float64, alive bool) *Cell {
	return quadtree.NewPoint(x, y, CellState{Alive: alive})
}

// Next returns the state after applying the Conway rule to LiveNeighbors.
// The count is carried over unchanged.
func (s CellState) Next() CellState {
	return CellState{
		Alive:         rules.ApplyConwayRules(s.LiveNeighbors, s.Alive),
		LiveNeighbors: s.LiveNeighbors,
	}
}
