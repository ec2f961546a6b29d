package geometry

import "math"

// XY is a point in the plane.
type XY struct {
	X, Y float64
}

// Transform returns the point reached by moving dist in the direction angle.
// Angles are radians counter-clockwise from the positive X axis.
func (xy XY) Transform(dist, angle float64) XY {
	return XY{
		X: dist*math.Cos(angle) + xy.X,
		Y: dist*math.Sin(angle) + xy.Y,
	}
}

// Sub returns xy - o.
func (xy XY) Sub(o XY) XY {
	return XY{X: xy.X - o.X, Y: xy.Y - o.Y}
}

func (xy XY) Distance(o XY) float64 {
	return math.Hypot(xy.X-o.X, xy.Y-o.Y)
}

// Rescale scales xy about the origin and then moves it by offset.
func Rescale(xy XY, scale float64, offset XY) XY {
	return XY{
		X: xy.X*scale + offset.X,
		Y: xy.Y*scale + offset.Y,
	}
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func (xy XY) Finite() bool {
	return !math.IsNaN(xy.X) && !math.IsInf(xy.X, 0) &&
		!math.IsNaN(xy.Y) && !math.IsInf(xy.Y, 0)
}
