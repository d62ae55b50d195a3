package model

import (
	"crypto/md5"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-quadtree/quadtree"
	"github.com/sheikhrachel/go-gol-quadtree/utils"
)

// historySize is how many recent generation hashes are kept for cycle detection
const historySize = 5

// World is a width x height unit lattice of cells stored in a quadtree.
// Every lattice site holds exactly one cell, dead or alive; cells are never
// added or removed after construction.
type World struct {
	width      int
	height     int
	tree       *Population
	neighbors  NeighborOptions
	rng        *rand.Rand
	generation int
	history    []string // Store recent generation hashes for cycle detection
}

// NewWorld builds a world from config with every cell dead
func NewWorld(config utils.Config) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "[NewWorld] invalid config")
	}

	region, err := quadtree.NewRegion(
		float64(config.Width-1)/2,
		float64(config.Height-1)/2,
		float64(config.Width)/2,
		float64(config.Height)/2,
	)
	if err != nil {
		return nil, errors.Wrap(err, "[NewWorld] failed to build root region")
	}
	tree, err := quadtree.New[CellState](region, config.Capacity, quadtree.WithMaxDepth(config.MaxDepth))
	if err != nil {
		return nil, errors.Wrap(err, "[NewWorld] failed to build tree")
	}

	for y := range config.Height {
		for x := range config.Width {
			if !tree.Insert(NewCell(float64(x), float64(y), false)) {
				return nil, errors.Errorf("[NewWorld] cell (%d,%d) rejected by region %s", x, y, region)
			}
		}
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &World{
		width:  config.Width,
		height: config.Height,
		tree:   tree,
		neighbors: NeighborOptions{
			HalfExtent: config.NeighborHalfExtent,
			CountSelf:  config.CountSelf,
		},
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetWidth returns the width of the world
func (w *World) GetWidth() int {
	return w.width
}

// GetHeight returns the height of the world
func (w *World) GetHeight() int {
	return w.height
}

// Generation returns the number of ticks applied since the last reset
func (w *World) Generation() int {
	return w.generation
}

// Tree exposes the population for read-only consumers
func (w *World) Tree() *Population {
	return w.tree
}

func (w *World) cellAt(x, y int) *Cell {
	found := w.tree.Query(quadtree.Square(float64(x), float64(y), 0))
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// Set sets a cell to alive (true) or dead (false). Sites off the lattice are ignored.
func (w *World) Set(x, y int, alive bool) {
	if c := w.cellAt(x, y); c != nil {
		c.Data.Alive = alive
	}
}

// Get returns the state of a cell
func (w *World) Get(x, y int) bool {
	c := w.cellAt(x, y)
	return c != nil && c.Data.Alive
}

// Clear kills every cell and forgets history
func (w *World) Clear() {
	w.tree.Walk(func(c *Cell) {
		c.Data = CellState{}
	})
	w.history = nil
	w.generation = 0
}

// Step advances the world one generation
func (w *World) Step() {
	Tick(w.tree, w.neighbors)
	w.generation++
}

// CountLivingCells returns the total number of living cells
func (w *World) CountLivingCells() (count int) {
	w.tree.Walk(func(c *Cell) {
		if c.Data.Alive {
			count++
		}
	})
	return
}

// GetBoundingBoxSize returns the lattice area spanned by living cells
func (w *World) GetBoundingBoxSize() int {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	w.tree.Walk(func(c *Cell) {
		if !c.Data.Alive {
			return
		}
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	})
	if math.IsInf(minX, 1) {
		return 0
	}
	return int(maxX-minX+1) * int(maxY-minY+1)
}

// GetHash returns an MD5 hash of the alive flags in traversal order.
// Traversal order is fixed for a given tree, so hashes compare generations of one world.
func (w *World) GetHash() string {
	h := md5.New()
	w.tree.Walk(func(c *Cell) {
		if c.Data.Alive {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	})
	return fmt.Sprintf("%x", h.Sum(nil))
}

// UpdateHistory adds current state to history and maintains size
func (w *World) UpdateHistory() {
	w.history = append(w.history, w.GetHash())
	if len(w.history) > historySize {
		w.history = w.history[1:]
	}
}

// IsStagnant reports whether the current state repeats one of the last three
// recorded generations, which catches still lifes and period 2 and 3 oscillators
func (w *World) IsStagnant() bool {
	if len(w.history) < 3 {
		return false
	}

	current := w.GetHash()
	for _, past := range w.history[len(w.history)-3:] {
		if past == current {
			return true
		}
	}
	return false
}

// InjectRandomLife adds some random cells to break stagnation
func (w *World) InjectRandomLife(count int) {
	for range count {
		w.Set(w.rng.Intn(w.width), w.rng.Intn(w.height), true)
	}
}

// Randomize brings cells to life with probability density, leaving others untouched
func (w *World) Randomize(density float64) {
	w.tree.Walk(func(c *Cell) {
		if w.rng.Float64() < density {
			c.Data.Alive = true
		}
	})
}

// AddGlider adds a glider heading south-east (decreasing y) with its top-left at (startX, startY)
func (w *World) AddGlider(startX, startY int) {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for row, cells := range pattern {
		for col, alive := range cells {
			w.Set(startX+col, startY-row, alive)
		}
	}
}

// AddOscillator adds a horizontal blinker starting at (startX, startY)
func (w *World) AddOscillator(startX, startY int) {
	w.Set(startX, startY, true)
	w.Set(startX+1, startY, true)
	w.Set(startX+2, startY, true)
}

// ResetWithInterestingPatterns clears the world and seeds gliders, blinkers and random life
func (w *World) ResetWithInterestingPatterns(config utils.Config) {
	w.Clear()

	if w.width >= 10 && w.height >= 10 {
		w.AddGlider(5, w.height-6)
		if w.width >= 20 && w.height >= 15 {
			w.AddGlider(w.width-8, w.height-6)
		}

		w.AddOscillator(w.width/4, w.height/4)
		if w.width >= 30 {
			w.AddOscillator(3*w.width/4, 3*w.height/4)
		}
	}

	w.Randomize(config.RandomDensity)
}
