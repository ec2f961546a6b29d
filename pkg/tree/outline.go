package tree

import (
	"math"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
)

// Outline returns the closed polygon approximating the silhouette of b.
//
// Each side is a circular arc through the base, mid and tail cross-sections on
// that side, so the polygon tapers smoothly instead of with straight edges.
// The points run base right, base left, up the left side, tail left, tail right,
// then back down the right side.
func (b *Branch) Outline() []geometry.XY {
	left := b.Rotation + math.Pi/2
	right := b.Rotation - math.Pi/2

	baseRight := b.Start.Transform(b.BaseThickness/2, right)
	baseLeft := b.Start.Transform(b.BaseThickness/2, left)

	mid := b.Start.Transform(b.Length/2, b.Rotation)
	midLeft := mid.Transform(b.MidThickness/2, left)
	midRight := mid.Transform(b.MidThickness/2, right)

	tailLeft := b.End.Transform(b.EndThickness/2, left)
	tailRight := b.End.Transform(b.EndThickness/2, right)

	resolution := b.Config.CurveResolution

	result := make([]geometry.XY, 0, 2*resolution+4)
	result = append(result, baseRight, baseLeft)
	// The right side is fit tail first so that both arcs sweep counter-clockwise
	// and bulge away from the centerline.
	result = append(result, b.side(baseLeft, midLeft, tailLeft, resolution)...)
	result = append(result, tailLeft, tailRight)
	result = append(result, b.side(tailRight, midRight, baseRight, resolution)...)

	return result
}

// side returns the interior points of the edge from p1 through p2 to p3.
// A flat edge collapses to its middle point.
func (b *Branch) side(p1, p2, p3 geometry.XY, resolution int) []geometry.XY {
	c, err := geometry.FromThreePoints(p1, p2, p3)
	if err != nil {
		Logger().Debug("straight edge",
			"start", b.Start,
			"rotation", b.Rotation,
			"err", err,
		)
		return []geometry.XY{p2}
	}

	return c.SampleBetween(p1, p3, resolution)
}
