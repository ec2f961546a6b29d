package tree

import (
	"fmt"
	"math"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
)

// Root describes the first branch of a tree.
type Root struct {
	BaseThickness float64
	Length        float64
	Start         geometry.XY
	// Rotation is the direction the root grows in, in radians counter-clockwise from +X.
	Rotation float64
}

func (r Root) validate() error {
	if !finite(r.BaseThickness) || r.BaseThickness <= 0 {
		return fmt.Errorf("%w: base thickness must be positive, got %v", ErrInvalidRoot, r.BaseThickness)
	}
	if !finite(r.Length) || r.Length <= 0 {
		return fmt.Errorf("%w: length must be positive, got %v", ErrInvalidRoot, r.Length)
	}
	if !r.Start.Finite() || !finite(r.Rotation) {
		return fmt.Errorf("%w: start %v and rotation %v must be finite", ErrInvalidRoot, r.Start, r.Rotation)
	}
	return nil
}

// A Branch is one tapered segment of a tree.
//
// Each Branch exclusively owns its Children; the structure is a finite tree.
type Branch struct {
	BaseThickness float64
	Length        float64
	Start         geometry.XY

	// Rotation is absolute, not relative to the parent.
	Rotation float64

	// Depth accumulates a random offset per generation. It sets draw order and
	// color intensity; it is not the recursion level.
	Depth float64

	Config *Config

	EndThickness float64
	MidThickness float64
	End          geometry.XY

	Children []*Branch
}

func newBranch(cfg *Config, baseThickness, length float64, start geometry.XY, rotation, depth float64) *Branch {
	endThickness := baseThickness * cfg.ThicknessDecay

	return &Branch{
		BaseThickness: baseThickness,
		Length:        length,
		Start:         start,
		Rotation:      rotation,
		Depth:         depth,
		Config:        cfg,
		EndThickness:  endThickness,
		MidThickness:  endThickness * cfg.MidThicknessMultiplier,
		End:           start.Transform(length, rotation),
	}
}

// Grow validates cfg and root and grows a complete tree from them.
//
// Growth stops on a path once a child candidate would be no thicker than
// cfg.MinThickness or no longer than cfg.MinLength. Trees that would exceed
// the generation or branch ceilings fail with ErrRecursionLimit or ErrBranchLimit.
func Grow(cfg *Config, root Root, src Source) (*Branch, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := root.validate(); err != nil {
		return nil, err
	}

	g := &grower{
		cfg:            cfg,
		src:            src,
		maxGenerations: cfg.maxGenerations(),
		maxBranches:    cfg.maxBranches(),
		count:          1,
	}

	result := newBranch(cfg, root.BaseThickness, root.Length, root.Start, root.Rotation, 0)
	if err := g.recurse(result, 0); err != nil {
		return nil, err
	}

	Logger().Debug("grew tree",
		"branches", g.count,
		"generations", g.deepest,
	)

	return result, nil
}

type grower struct {
	cfg *Config
	src Source

	maxGenerations int
	maxBranches    int

	count   int
	deepest int
}

// recurse grows the children of b, which is at the given generation.
func (g *grower) recurse(b *Branch, generation int) error {
	nChildren := g.cfg.NumChildRange.Sample(g.src)

	for i := 0; i < nChildren; i++ {
		childThickness := b.EndThickness
		childLength := b.Length * g.cfg.ChildLengthDecay.Sample(g.src)

		if childThickness <= g.cfg.MinThickness || childLength <= g.cfg.MinLength {
			continue
		}

		if generation+1 > g.maxGenerations {
			return fmt.Errorf("%w: more than %d generations", ErrRecursionLimit, g.maxGenerations)
		}
		if g.count >= g.maxBranches {
			return fmt.Errorf("%w: more than %d branches", ErrBranchLimit, g.maxBranches)
		}

		rotation := b.Rotation + g.cfg.RotationRange.Sample(g.src)
		depth := b.Depth + g.cfg.DepthRange.Sample(g.src)

		child := newBranch(g.cfg, childThickness, childLength, b.End, rotation, depth)
		b.Children = append(b.Children, child)
		g.count++
		g.deepest = max(g.deepest, generation+1)

		if err := g.recurse(child, generation+1); err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of branches in the tree rooted at b.
func (b *Branch) Count() int {
	n := 1
	for _, child := range b.Children {
		n += child.Count()
	}
	return n
}

// Generations returns the number of levels below b.
func (b *Branch) Generations() int {
	deepest := 0
	for _, child := range b.Children {
		deepest = max(deepest, child.Generations()+1)
	}
	return deepest
}

// Bounds returns the corners of a box containing every branch's centerline,
// padded by half of the root's base thickness.
func (b *Branch) Bounds() (geometry.XY, geometry.XY) {
	lo := geometry.XY{X: math.Inf(1), Y: math.Inf(1)}
	hi := geometry.XY{X: math.Inf(-1), Y: math.Inf(-1)}

	for _, branch := range b.Collect() {
		for _, p := range []geometry.XY{branch.Start, branch.End} {
			lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
			hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
		}
	}

	pad := b.BaseThickness / 2
	lo.X, lo.Y = lo.X-pad, lo.Y-pad
	hi.X, hi.Y = hi.X+pad, hi.Y+pad
	return lo, hi
}
