// Package settings reads scene descriptions from TOML and YAML files.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
	"github.com/willbeason/tree-silhouette/pkg/paint"
	"github.com/willbeason/tree-silhouette/pkg/tree"
)

var (
	ErrUnknownExtension = errors.New("unknown settings file extension")
	ErrInvalidScene     = errors.New("invalid scene")
)

// Scene is everything needed to grow and draw one tree.
type Scene struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Seed is used when set; otherwise the caller picks one.
	Seed *int64 `toml:"seed" yaml:"seed"`

	Background string `toml:"background" yaml:"background"`

	Root   Root   `toml:"root" yaml:"root"`
	Branch Branch `toml:"branch" yaml:"branch"`
}

type Root struct {
	BaseThickness float64 `toml:"base_thickness" yaml:"base_thickness"`
	Length        float64 `toml:"length" yaml:"length"`
	X             float64 `toml:"x" yaml:"x"`
	Y             float64 `toml:"y" yaml:"y"`
	Rotation      float64 `toml:"rotation" yaml:"rotation"`
}

// Branch mirrors tree.Config. Ranges are written as two-element arrays.
type Branch struct {
	ThicknessDecay                float64   `toml:"thickness_decay" yaml:"thickness_decay"`
	MidThicknessMultiplier        float64   `toml:"mid_thickness_multiplier" yaml:"mid_thickness_multiplier"`
	Color                         string    `toml:"color" yaml:"color"`
	NumChildRange                 []int     `toml:"num_child_range" yaml:"num_child_range"`
	ChildThicknessMultiplierRange []float64 `toml:"child_thickness_multiplier_range" yaml:"child_thickness_multiplier_range"`
	MinThickness                  float64   `toml:"min_thickness" yaml:"min_thickness"`
	MinLength                     float64   `toml:"min_length" yaml:"min_length"`
	ChildLengthDecay              []float64 `toml:"child_length_decay" yaml:"child_length_decay"`
	RotationRange                 []float64 `toml:"rotation_range" yaml:"rotation_range"`
	DepthRange                    []float64 `toml:"depth_range" yaml:"depth_range"`
	CurveResolution               int       `toml:"curve_resolution" yaml:"curve_resolution"`
	MaxGenerations                int       `toml:"max_generations" yaml:"max_generations"`
	MaxBranches                   int       `toml:"max_branches" yaml:"max_branches"`
}

// Default returns the scene of the classic tree: a 1200x800 image with the
// trunk rising from the middle of the bottom edge.
func Default(color paint.Color) Scene {
	return FromConfig(1200, 800, tree.Root{
		BaseThickness: 20,
		Length:        100,
		Start:         geometry.XY{X: 600, Y: 0},
		Rotation:      math.Pi / 2,
	}, tree.Default(color))
}

// FromConfig builds a Scene from already constructed values.
func FromConfig(width, height int, root tree.Root, cfg tree.Config) Scene {
	return Scene{
		Width:      width,
		Height:     height,
		Background: paint.Black.Hex(),
		Root: Root{
			BaseThickness: root.BaseThickness,
			Length:        root.Length,
			X:             root.Start.X,
			Y:             root.Start.Y,
			Rotation:      root.Rotation,
		},
		Branch: Branch{
			ThicknessDecay:                cfg.ThicknessDecay,
			MidThicknessMultiplier:        cfg.MidThicknessMultiplier,
			Color:                         cfg.BranchColor.Hex(),
			NumChildRange:                 []int{cfg.NumChildRange.Min, cfg.NumChildRange.Max},
			ChildThicknessMultiplierRange: rangeSlice(cfg.ChildThicknessMultiplierRange),
			MinThickness:                  cfg.MinThickness,
			MinLength:                     cfg.MinLength,
			ChildLengthDecay:              rangeSlice(cfg.ChildLengthDecay),
			RotationRange:                 rangeSlice(cfg.RotationRange),
			DepthRange:                    rangeSlice(cfg.DepthRange),
			CurveResolution:               cfg.CurveResolution,
			MaxGenerations:                cfg.MaxGenerations,
			MaxBranches:                   cfg.MaxBranches,
		},
	}
}

func rangeSlice(r tree.Range) []float64 {
	return []float64{r.Min, r.Max}
}

// Load reads a scene from path. Files ending in .toml are read as TOML,
// files ending in .yaml or .yml as YAML.
func Load(path string) (Scene, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".yaml", ".yml":
	default:
		return Scene{}, fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}

	var s Scene
	if ext == ".toml" {
		var md toml.MetaData
		md, err = toml.Decode(string(data), &s)
		if err == nil && len(md.Undecoded()) > 0 {
			err = fmt.Errorf("unknown keys %v", md.Undecoded())
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&s)
	}
	if err != nil {
		return Scene{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return s, nil
}

// Config converts the branch settings into a validated tree.Config.
func (s Scene) Config() (tree.Config, error) {
	b := s.Branch

	color, err := paint.ParseHex(b.Color)
	if err != nil {
		return tree.Config{}, fmt.Errorf("%w: branch color: %w", ErrInvalidScene, err)
	}

	numChildren, err := intRange("num_child_range", b.NumChildRange)
	if err != nil {
		return tree.Config{}, err
	}

	ranges := make([]tree.Range, 4)
	for i, r := range []struct {
		name string
		v    []float64
	}{
		{"child_thickness_multiplier_range", b.ChildThicknessMultiplierRange},
		{"child_length_decay", b.ChildLengthDecay},
		{"rotation_range", b.RotationRange},
		{"depth_range", b.DepthRange},
	} {
		ranges[i], err = floatRange(r.name, r.v)
		if err != nil {
			return tree.Config{}, err
		}
	}

	cfg := tree.Config{
		ThicknessDecay:                b.ThicknessDecay,
		MidThicknessMultiplier:        b.MidThicknessMultiplier,
		BranchColor:                   color,
		NumChildRange:                 numChildren,
		ChildThicknessMultiplierRange: ranges[0],
		MinThickness:                  b.MinThickness,
		MinLength:                     b.MinLength,
		ChildLengthDecay:              ranges[1],
		RotationRange:                 ranges[2],
		DepthRange:                    ranges[3],
		CurveResolution:               b.CurveResolution,
		MaxGenerations:                b.MaxGenerations,
		MaxBranches:                   b.MaxBranches,
	}

	return cfg, cfg.Validate()
}

// TreeRoot returns the root branch description.
func (s Scene) TreeRoot() tree.Root {
	return tree.Root{
		BaseThickness: s.Root.BaseThickness,
		Length:        s.Root.Length,
		Start:         geometry.XY{X: s.Root.X, Y: s.Root.Y},
		Rotation:      s.Root.Rotation,
	}
}

// BackgroundColor returns the parsed background, black if unset.
func (s Scene) BackgroundColor() (paint.Color, error) {
	if s.Background == "" {
		return paint.Black, nil
	}

	c, err := paint.ParseHex(s.Background)
	if err != nil {
		return paint.Color{}, fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
	}
	return c, nil
}

// Validate checks the parts of the scene that tree.Grow does not.
func (s Scene) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %dx%d", ErrInvalidScene, s.Width, s.Height)
	}
	_, err := s.BackgroundColor()
	return err
}

func floatRange(name string, v []float64) (tree.Range, error) {
	if len(v) != 2 {
		return tree.Range{}, fmt.Errorf("%w: %s must have two elements, got %v", ErrInvalidScene, name, v)
	}
	return tree.Range{Min: v[0], Max: v[1]}, nil
}

func intRange(name string, v []int) (tree.IntRange, error) {
	if len(v) != 2 {
		return tree.IntRange{}, fmt.Errorf("%w: %s must have two elements, got %v", ErrInvalidScene, name, v)
	}
	return tree.IntRange{Min: v[0], Max: v[1]}, nil
}
