package geometry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

// ErrDegenerateCircle is returned when no single circle passes through the given points,
// or when the fit is too ill-conditioned to trust.
var ErrDegenerateCircle = errors.New("degenerate circle")

// collinearTolerance bounds the normalized area of the triangle formed by three points.
// Triples flatter than this are treated as collinear.
const collinearTolerance = 1e-12

// A Circle is a center and radius.
type Circle struct {
	Origin XY
	Radius float64
}

// factor is half the difference of the squared norms of a and b.
func factor(a, b XY) float64 {
	return ((a.X*a.X - b.X*b.X) + (a.Y*a.Y - b.Y*b.Y)) / 2
}

// FromThreePoints returns the circle circumscribing p1, p2 and p3.
//
// The origin o is equidistant from all three points, so
//
//	(p1 - p2) . o = factor(p1, p2)
//	(p1 - p3) . o = factor(p1, p3)
func FromThreePoints(p1, p2, p3 XY) (Circle, error) {
	d12 := p1.Sub(p2)
	d13 := p1.Sub(p3)

	scale := math.Max(d12.X*d12.X+d12.Y*d12.Y, d13.X*d13.X+d13.Y*d13.Y)
	cross := d12.X*d13.Y - d12.Y*d13.X
	if scale == 0 || scalar.EqualWithinAbs(cross/scale, 0, collinearTolerance) {
		return Circle{}, fmt.Errorf("%w: points %v, %v, %v are collinear", ErrDegenerateCircle, p1, p2, p3)
	}

	a := mat.NewDense(2, 2, []float64{
		d12.X, d12.Y,
		d13.X, d13.Y,
	})
	b := mat.NewVecDense(2, []float64{factor(p1, p2), factor(p1, p3)})

	var o mat.VecDense
	if err := o.SolveVec(a, b); err != nil {
		return Circle{}, fmt.Errorf("%w: %v", ErrDegenerateCircle, err)
	}

	origin := XY{X: o.AtVec(0), Y: o.AtVec(1)}
	radius := p1.Distance(origin)
	if !origin.Finite() || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return Circle{}, fmt.Errorf("%w: non-finite fit", ErrDegenerateCircle)
	}

	return Circle{Origin: origin, Radius: radius}, nil
}

// Angle returns the angular position of p about the circle's origin.
//
// Only a two-quadrant correction is applied: the result lies in (-pi/2, 3pi/2).
// SampleBetween depends on this range to pick its sweep direction.
func (c Circle) Angle(p XY) float64 {
	dx := p.X - c.Origin.X
	ang := math.Atan((p.Y - c.Origin.Y) / dx)
	if dx < 0 {
		ang += math.Pi
	}
	return ang
}

// Query returns the point on the circle at angle.
func (c Circle) Query(angle float64) XY {
	return XY{
		X: c.Origin.X + c.Radius*math.Cos(angle),
		Y: c.Origin.Y + c.Radius*math.Sin(angle),
	}
}

// SampleBetween returns resolution-1 points evenly spaced by angle strictly between p1 and p2,
// sweeping counter-clockwise from p1.
func (c Circle) SampleBetween(p1, p2 XY, resolution int) []XY {
	if resolution <= 1 {
		return nil
	}

	ang1 := c.Angle(p1)
	ang2 := c.Angle(p2)
	if ang2 < ang1 {
		ang2 += 2 * math.Pi
	}
	dAng := ang2 - ang1

	result := make([]XY, 0, resolution-1)
	for i := 1; i < resolution; i++ {
		result = append(result, c.Query(float64(i)/float64(resolution)*dAng+ang1))
	}
	return result
}
