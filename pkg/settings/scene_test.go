package settings

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/tree-silhouette/pkg/geometry"
	"github.com/willbeason/tree-silhouette/pkg/paint"
	"github.com/willbeason/tree-silhouette/pkg/tree"
)

func TestLoad(t *testing.T) {
	for _, name := range []string{"default.toml", "default.yaml"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)
			require.NoError(t, s.Validate())

			assert.Equal(t, 1200, s.Width)
			assert.Equal(t, 800, s.Height)
			require.NotNil(t, s.Seed)
			assert.Equal(t, int64(1337), *s.Seed)

			cfg, err := s.Config()
			require.NoError(t, err)
			assert.Equal(t, tree.Default(paint.Purple), cfg)

			assert.Equal(t, tree.Root{
				BaseThickness: 20,
				Length:        100,
				Start:         geometry.XY{X: 600, Y: 0},
				Rotation:      math.Pi / 2,
			}, s.TreeRoot())

			bg, err := s.BackgroundColor()
			require.NoError(t, err)
			assert.Equal(t, paint.Black, bg)
		})
	}
}

func TestLoad_MatchesDefault(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "default.toml"))
	require.NoError(t, err)

	want := Default(paint.Purple)
	want.Seed = s.Seed
	want.Branch.Color = s.Branch.Color
	assert.Equal(t, want, s)
}

func TestLoad_UnknownKeys(t *testing.T) {
	for _, name := range []string{"unknown.toml", "unknown.yaml"} {
		_, err := Load(filepath.Join("testdata", name))
		assert.Error(t, err, name)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "default.json"))
	assert.ErrorIs(t, err, ErrUnknownExtension)
}

func TestScene_Config_BadRange(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "bad_range.toml"))
	require.NoError(t, err)

	_, err = s.Config()
	assert.ErrorIs(t, err, ErrInvalidScene)
}

func TestScene_Config_Invalid(t *testing.T) {
	s := Default(paint.Blue)
	s.Branch.RotationRange = []float64{1, -1}
	_, err := s.Config()
	assert.ErrorIs(t, err, tree.ErrInvalidConfig)

	s = Default(paint.Blue)
	s.Branch.Color = "purple"
	_, err = s.Config()
	assert.ErrorIs(t, err, paint.ErrInvalidHex)
}

func TestScene_Validate(t *testing.T) {
	s := Default(paint.Blue)
	assert.NoError(t, s.Validate())

	s.Width = 0
	assert.ErrorIs(t, s.Validate(), ErrInvalidScene)

	s = Default(paint.Blue)
	s.Background = "nope"
	assert.ErrorIs(t, s.Validate(), ErrInvalidScene)
}

func TestFromConfig_RoundTrip(t *testing.T) {
	cfg := tree.Symmetric(0.25, paint.Blue)
	cfg.MaxGenerations = 30

	root := tree.Root{BaseThickness: 5, Length: 40, Start: geometry.XY{X: 1, Y: 2}, Rotation: 0.5}
	s := FromConfig(300, 200, root, cfg)

	got, err := s.Config()
	require.NoError(t, err)
	// Hex keeps alpha, so colors survive exactly.
	assert.Equal(t, cfg, got)
	assert.Equal(t, root, s.TreeRoot())
}
