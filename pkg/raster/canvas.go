// Package raster fills tree outlines onto an in-memory image.
package raster

import (
	"image"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/vector"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
	"github.com/willbeason/tree-silhouette/pkg/paint"
)

// A Canvas is an image that polygons can be filled onto.
//
// Polygon coordinates have Y pointing up: the view transform is applied and
// the result is flipped so that Y = 0 is the bottom row of the image.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer

	scale  float64
	offset geometry.XY
}

// NewCanvas returns a width by height canvas filled with background.
func NewCanvas(width, height int, background paint.Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background.Opaque()), image.Point{}, draw.Src)

	return &Canvas{
		img:   img,
		z:     vector.NewRasterizer(width, height),
		scale: 1.0,
	}
}

// SetView scales points about the origin and then moves them by offset before drawing.
func (c *Canvas) SetView(scale float64, offset geometry.XY) {
	c.scale = scale
	c.offset = offset
}

// Fit sets the view so the box from lo to hi fills the canvas, less margin pixels on each side,
// keeping its aspect ratio and centering it.
func (c *Canvas) Fit(lo, hi geometry.XY, margin float64) {
	w := float64(c.img.Bounds().Dx()) - 2*margin
	h := float64(c.img.Bounds().Dy()) - 2*margin
	bw, bh := hi.X-lo.X, hi.Y-lo.Y
	if w <= 0 || h <= 0 || bw <= 0 || bh <= 0 {
		return
	}

	scale := math.Min(w/bw, h/bh)
	c.SetView(scale, geometry.XY{
		X: margin + (w-bw*scale)/2 - lo.X*scale,
		Y: margin + (h-bh*scale)/2 - lo.Y*scale,
	})
}

// Pixel returns the image position of p.
func (c *Canvas) Pixel(p geometry.XY) (float32, float32) {
	v := geometry.Rescale(p, c.scale, c.offset)
	return float32(v.X), float32(float64(c.img.Bounds().Dy()) - v.Y)
}

// FillPolygon fills the closed polygon through points with an opaque col.
// Fewer than three points draw nothing.
func (c *Canvas) FillPolygon(points []geometry.XY, col paint.Color) {
	if len(points) < 3 {
		return
	}

	xs := make([]float32, len(points))
	ys := make([]float32, len(points))
	for i, p := range points {
		xs[i], ys[i] = c.Pixel(p)
	}

	// Rasterize only the part of the image the polygon can touch.
	box := image.Rect(
		int(math.Floor(float64(slices.Min(xs)))),
		int(math.Floor(float64(slices.Min(ys)))),
		int(math.Ceil(float64(slices.Max(xs)))),
		int(math.Ceil(float64(slices.Max(ys)))),
	)
	clip := box.Intersect(c.img.Bounds())
	if clip.Empty() {
		return
	}

	// Path segments outside the rasterizer's bounds are clipped by the rasterizer.
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	c.z.Reset(clip.Dx(), clip.Dy())
	c.z.MoveTo(xs[0]-ox, ys[0]-oy)
	for i := 1; i < len(xs); i++ {
		c.z.LineTo(xs[i]-ox, ys[i]-oy)
	}
	c.z.ClosePath()

	c.z.Draw(c.img, clip, image.NewUniform(col.Opaque()), image.Point{})
}

// Image returns the canvas contents. It is not a copy.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}
