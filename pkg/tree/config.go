package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/willbeason/tree-silhouette/pkg/paint"
)

const (
	// DefaultMaxGenerations is the recursion ceiling used when Config.MaxGenerations is zero.
	DefaultMaxGenerations = 64

	// DefaultMaxBranches is the branch count ceiling used when Config.MaxBranches is zero.
	DefaultMaxBranches = 1 << 20
)

var (
	ErrInvalidConfig  = errors.New("invalid tree config")
	ErrInvalidRoot    = errors.New("invalid root branch")
	ErrRecursionLimit = errors.New("recursion limit exceeded")
	ErrBranchLimit    = errors.New("branch limit exceeded")
)

// A Source produces the random numbers used to grow a tree.
// *rand.Rand from math/rand satisfies Source.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Range is a half-open interval [Min, Max) of reals.
type Range struct {
	Min, Max float64
}

// Sample returns a uniformly distributed value in the range.
func (r Range) Sample(src Source) float64 {
	return src.Float64()*(r.Max-r.Min) + r.Min
}

func (r Range) validate(name string) error {
	if !finite(r.Min) || !finite(r.Max) {
		return fmt.Errorf("%w: %s must be finite, got [%v, %v)", ErrInvalidConfig, name, r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %v is greater than max %v", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}

// IntRange is a closed interval [Min, Max] of integers.
type IntRange struct {
	Min, Max int
}

// Sample returns a uniformly distributed integer in the range, including both ends.
func (r IntRange) Sample(src Source) int {
	return r.Min + src.Intn(r.Max-r.Min+1)
}

// Config holds the parameters shared by every branch of a tree.
// A Config must not be modified while a tree grown from it is in use.
type Config struct {
	// ThicknessDecay is the fraction of a branch's base thickness left at its tail.
	ThicknessDecay float64
	// MidThicknessMultiplier scales the tail thickness to get the thickness at the midpoint.
	// Values below 1 pinch the branch in the middle.
	MidThicknessMultiplier float64

	// BranchColor is scaled by each branch's depth when rendering.
	BranchColor paint.Color

	// NumChildRange is the number of child candidates for each branch.
	NumChildRange IntRange

	// ChildThicknessMultiplierRange is reserved. Children inherit the parent's tail
	// thickness unchanged.
	ChildThicknessMultiplierRange Range

	// Candidates at or below these thresholds are discarded.
	MinThickness float64
	MinLength    float64

	// ChildLengthDecay is sampled and multiplied into the parent's length.
	ChildLengthDecay Range
	// RotationRange is sampled and added to the parent's rotation, in radians.
	RotationRange Range
	// DepthRange is sampled and added to the parent's depth.
	DepthRange Range

	// CurveResolution is the number of angular steps along each curved side of an outline.
	CurveResolution int

	// MaxGenerations caps how many levels of children may be grown.
	// Zero means DefaultMaxGenerations.
	MaxGenerations int
	// MaxBranches caps the total number of branches in a tree.
	// Zero means DefaultMaxBranches.
	MaxBranches int
}

// Validate reports the first problem found with c, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if !finite(c.ThicknessDecay) || c.ThicknessDecay <= 0 {
		return fmt.Errorf("%w: thickness decay must be positive, got %v", ErrInvalidConfig, c.ThicknessDecay)
	}
	if !finite(c.MidThicknessMultiplier) || c.MidThicknessMultiplier <= 0 {
		return fmt.Errorf("%w: mid thickness multiplier must be positive, got %v", ErrInvalidConfig, c.MidThicknessMultiplier)
	}

	if c.NumChildRange.Min < 0 {
		return fmt.Errorf("%w: child count min must not be negative, got %d", ErrInvalidConfig, c.NumChildRange.Min)
	}
	if c.NumChildRange.Min > c.NumChildRange.Max {
		return fmt.Errorf("%w: child count min %d is greater than max %d",
			ErrInvalidConfig, c.NumChildRange.Min, c.NumChildRange.Max)
	}
	if c.NumChildRange.Max-c.NumChildRange.Min >= math.MaxInt {
		return fmt.Errorf("%w: child count range [%d, %d] is too wide",
			ErrInvalidConfig, c.NumChildRange.Min, c.NumChildRange.Max)
	}

	if !finite(c.MinThickness) || c.MinThickness < 0 {
		return fmt.Errorf("%w: min thickness must not be negative, got %v", ErrInvalidConfig, c.MinThickness)
	}
	if !finite(c.MinLength) || c.MinLength < 0 {
		return fmt.Errorf("%w: min length must not be negative, got %v", ErrInvalidConfig, c.MinLength)
	}

	ranges := []struct {
		name string
		r    Range
	}{
		{"child thickness multiplier range", c.ChildThicknessMultiplierRange},
		{"child length decay", c.ChildLengthDecay},
		{"rotation range", c.RotationRange},
		{"depth range", c.DepthRange},
	}
	for _, r := range ranges {
		if err := r.r.validate(r.name); err != nil {
			return err
		}
	}

	if c.CurveResolution < 1 {
		return fmt.Errorf("%w: curve resolution must be positive, got %d", ErrInvalidConfig, c.CurveResolution)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("%w: max generations must not be negative, got %d", ErrInvalidConfig, c.MaxGenerations)
	}
	if c.MaxBranches < 0 {
		return fmt.Errorf("%w: max branches must not be negative, got %d", ErrInvalidConfig, c.MaxBranches)
	}

	return nil
}

func (c *Config) maxGenerations() int {
	if c.MaxGenerations == 0 {
		return DefaultMaxGenerations
	}
	return c.MaxGenerations
}

func (c *Config) maxBranches() int {
	if c.MaxBranches == 0 {
		return DefaultMaxBranches
	}
	return c.MaxBranches
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
