package tree

import (
	"sort"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
	"github.com/willbeason/tree-silhouette/pkg/paint"
)

// A Rasterizer fills simple closed polygons.
type Rasterizer interface {
	FillPolygon(points []geometry.XY, c paint.Color)
}

// Collect returns b and every branch below it, parents before children.
func (b *Branch) Collect() []*Branch {
	return b.collect(make([]*Branch, 0, 64))
}

func (b *Branch) collect(result []*Branch) []*Branch {
	result = append(result, b)
	for _, child := range b.Children {
		result = child.collect(result)
	}
	return result
}

// Ordered returns the branches of the tree rooted at b in drawing order:
// deepest first, so shallower branches are painted over them.
// Branches of equal depth keep their Collect order.
func (b *Branch) Ordered() []*Branch {
	result := b.Collect()
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Depth > result[j].Depth
	})
	return result
}

// Color returns the fill color of b.
func (b *Branch) Color() paint.Color {
	return b.Config.BranchColor.ScaleIntensity(b.Depth)
}

// Render draws the whole tree rooted at b onto r, back to front.
func (b *Branch) Render(r Rasterizer) {
	ordered := b.Ordered()
	for _, branch := range ordered {
		r.FillPolygon(branch.Outline(), branch.Color())
	}

	Logger().Debug("rendered tree", "branches", len(ordered))
}
