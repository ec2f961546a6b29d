package tree

import (
	"math"
	"math/rand"

	"github.com/willbeason/tree-silhouette/pkg/paint"
)

// Default returns the configuration of the classic two-way branching tree.
func Default(color paint.Color) Config {
	return Config{
		ThicknessDecay:                0.8,
		MidThicknessMultiplier:        0.8,
		BranchColor:                   color,
		NumChildRange:                 IntRange{Min: 2, Max: 2},
		ChildThicknessMultiplierRange: Range{Min: 0.6, Max: 0.75},
		MinThickness:                  1,
		MinLength:                     10,
		ChildLengthDecay:              Range{Min: 0.8, Max: 0.95},
		RotationRange:                 Range{Min: -math.Pi / 6, Max: math.Pi / 6},
		DepthRange:                    Range{Min: -0.15, Max: 0.15},
		CurveResolution:               20,
	}
}

// Symmetric returns a configuration where children deviate up to angle either
// way from their parent, and depth does not vary so every branch has the same color.
//
// Symmetric(0) grows a single straight stem of stacked branches.
func Symmetric(angle float64, color paint.Color) Config {
	result := Default(color)
	result.RotationRange = Range{Min: -angle, Max: angle}
	result.DepthRange = Range{}
	return result
}

// RandomBalanced returns a configuration with its shape parameters drawn from r.
// Decay factors stay below 1 so the tree is always finite.
func RandomBalanced(r *rand.Rand, color paint.Color) Config {
	angle := math.Pi / 3.0 * (r.Float64()*0.6 + 0.2)
	lengthDecay := r.Float64()*0.1 + 0.75

	result := Default(color)
	result.ThicknessDecay = r.Float64()*0.15 + 0.7
	result.MidThicknessMultiplier = r.Float64()*0.3 + 0.7
	result.NumChildRange = IntRange{Min: 1 + r.Intn(2), Max: 2}
	result.ChildLengthDecay = Range{Min: lengthDecay, Max: lengthDecay + 0.1}
	result.RotationRange = Range{Min: -angle, Max: angle}
	return result
}
