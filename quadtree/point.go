package quadtree

import "strconv"

// Point is a position in the plane carrying a payload of type T.
// Coordinates are fixed once the point is inserted; Data may be mutated in place.
type Point[T any] struct {
	X    float64
	Y    float64
	Data T
}

// NewPoint returns a point at (x, y) holding data
func NewPoint[T any](x, y float64, data T) *Point[T] {
	return &Point[T]{X: x, Y: y, Data: data}
}

func (p *Point[T]) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', 3, 64) + "," + strconv.FormatFloat(p.Y, 'f', 3, 64) + ")"
}
