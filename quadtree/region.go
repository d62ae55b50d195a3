package quadtree

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNegativeExtent is returned when a region is built with a negative half width or height
var ErrNegativeExtent = errors.New("region half extents must be non-negative")

// Region is an axis-aligned rectangle described by its center and half extents.
// All four edges are part of the region.
type Region struct {
	CenterX    float64
	CenterY    float64
	HalfWidth  float64
	HalfHeight float64
}

// NewRegion validates and returns a region
func NewRegion(centerX, centerY, halfWidth, halfHeight float64) (Region, error) {
	if halfWidth < 0 || halfHeight < 0 {
		return Region{}, errors.Wrapf(ErrNegativeExtent, "[NewRegion] half extents %v x %v", halfWidth, halfHeight)
	}
	return Region{
		CenterX:    centerX,
		CenterY:    centerY,
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
	}, nil
}

// Square returns a region centered on (x, y) with the same half extent on both axes
func Square(x, y, halfExtent float64) Region {
	return Region{CenterX: x, CenterY: y, HalfWidth: halfExtent, HalfHeight: halfExtent}
}

// MinX returns the west edge
func (r Region) MinX() float64 { return r.CenterX - r.HalfWidth }

// MaxX returns the east edge
func (r Region) MaxX() float64 { return r.CenterX + r.HalfWidth }

// MinY returns the south edge
func (r Region) MinY() float64 { return r.CenterY - r.HalfHeight }

// MaxY returns the north edge
func (r Region) MaxY() float64 { return r.CenterY + r.HalfHeight }

// ContainsXY reports whether (x, y) lies inside the closed rectangle
func (r Region) ContainsXY(x, y float64) bool {
	return r.MinX() <= x && x <= r.MaxX() &&
		r.MinY() <= y && y <= r.MaxY()
}

// Contains reports whether p lies inside the closed rectangle
func Contains[T any](r Region, p *Point[T]) bool {
	return r.ContainsXY(p.X, p.Y)
}

// Intersects reports whether the two closed rectangles overlap. Touching edges count.
func (r Region) Intersects(other Region) bool {
	if r.MinX() > other.MaxX() ||
		r.MaxX() < other.MinX() ||
		r.MinY() > other.MaxY() ||
		r.MaxY() < other.MinY() {
		return false
	}
	return true
}

// Quadrants splits the region into its NW, NE, SW and SE quarters.
// North is the direction of increasing Y.
func (r Region) Quadrants() (nw, ne, sw, se Region) {
	w := r.HalfWidth / 2
	h := r.HalfHeight / 2
	nw = Region{CenterX: r.CenterX - w, CenterY: r.CenterY + h, HalfWidth: w, HalfHeight: h}
	ne = Region{CenterX: r.CenterX + w, CenterY: r.CenterY + h, HalfWidth: w, HalfHeight: h}
	sw = Region{CenterX: r.CenterX - w, CenterY: r.CenterY - h, HalfWidth: w, HalfHeight: h}
	se = Region{CenterX: r.CenterX + w, CenterY: r.CenterY - h, HalfWidth: w, HalfHeight: h}
	return
}

func (r Region) String() string {
	return fmt.Sprintf("x:(%.3f,%.3f) y:(%.3f,%.3f)", r.MinX(), r.MaxX(), r.MinY(), r.MaxY())
}
