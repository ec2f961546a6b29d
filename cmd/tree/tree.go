package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbeason/tree-silhouette/pkg/paint"
	"github.com/willbeason/tree-silhouette/pkg/raster"
	"github.com/willbeason/tree-silhouette/pkg/settings"
	"github.com/willbeason/tree-silhouette/pkg/tree"
)

const (
	flagConfig  = "config"
	flagPreset  = "preset"
	flagAngle   = "angle"
	flagSeed    = "seed"
	flagColor   = "color"
	flagWidth   = "width"
	flagHeight  = "height"
	flagFit     = "fit"
	flagOut     = "out"
	flagVerbose = "verbose"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Grow a random branching tree and render its silhouette to an image",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	cmd.Flags().String(flagConfig, "", "scene file (.toml, .yaml or .yml); overrides --preset")
	cmd.Flags().String(flagPreset, "default", "branch preset: default, symmetric, straight or random")
	cmd.Flags().Float64(flagAngle, 0.4, "maximum child deviation in radians for the symmetric preset")
	cmd.Flags().Int64(flagSeed, 0, "random seed; defaults to the scene's seed or the current time")
	cmd.Flags().String(flagColor, "random", "branch color: purple, blue, random or a #rrggbb hex value")
	cmd.Flags().Int(flagWidth, 0, "image width in pixels; overrides the scene")
	cmd.Flags().Int(flagHeight, 0, "image height in pixels; overrides the scene")
	cmd.Flags().Bool(flagFit, false, "scale the tree to fit inside the image")
	cmd.Flags().StringP(flagOut, "o", "out.png", "output image; the extension picks png, tiff or bmp")
	cmd.Flags().BoolP(flagVerbose, "v", false, "log debug output")

	return cmd
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	flags := cmd.Flags()

	level := slog.LevelInfo
	if verbose, _ := flags.GetBool(flagVerbose); verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	tree.SetLogger(logger)

	colorName, _ := flags.GetString(flagColor)

	seed := time.Now().UnixNano()
	if flags.Changed(flagSeed) {
		seed, _ = flags.GetInt64(flagSeed)
	}

	scene, err := loadScene(cmd, seed)
	if err != nil {
		return err
	}

	if scene.Seed != nil && !flags.Changed(flagSeed) {
		seed = *scene.Seed
	}
	r := rand.New(rand.NewSource(seed))

	if flags.Changed(flagColor) || scene.Branch.Color == "" {
		color, err := pickColor(colorName, r)
		if err != nil {
			return err
		}
		scene.Branch.Color = color.Hex()
	}

	if width, _ := flags.GetInt(flagWidth); width > 0 {
		scene.Width = width
	}
	if height, _ := flags.GetInt(flagHeight); height > 0 {
		scene.Height = height
	}

	err = scene.Validate()
	if err != nil {
		return err
	}

	cfg, err := scene.Config()
	if err != nil {
		return err
	}

	start := time.Now()
	root, err := tree.Grow(&cfg, scene.TreeRoot(), r)
	if err != nil {
		return err
	}
	logger.Info("grew tree",
		"seed", seed,
		"branches", root.Count(),
		"generations", root.Generations(),
		"elapsed", time.Since(start),
	)

	background, err := scene.BackgroundColor()
	if err != nil {
		return err
	}

	canvas := raster.NewCanvas(scene.Width, scene.Height, background)

	lo, hi := root.Bounds()
	if fit, _ := flags.GetBool(flagFit); fit {
		canvas.Fit(lo, hi, 10)
	} else if lo.X < 0 || lo.Y < 0 || hi.X > float64(scene.Width) || hi.Y > float64(scene.Height) {
		logger.Warn("tree extends past the image; use --fit to scale it",
			"min", lo,
			"max", hi,
		)
	}

	root.Render(canvas)

	out, _ := flags.GetString(flagOut)
	err = canvas.Save(out)
	if err != nil {
		return err
	}
	logger.Info("wrote image", "path", out)

	return nil
}

// loadScene reads the scene file if one was given, or builds one from the preset.
// Preset scenes have no branch color; the caller picks one.
func loadScene(cmd *cobra.Command, seed int64) (settings.Scene, error) {
	flags := cmd.Flags()

	if path, _ := flags.GetString(flagConfig); path != "" {
		scene, err := settings.Load(path)
		if err != nil {
			return settings.Scene{}, err
		}
		if scene.Width == 0 && scene.Height == 0 {
			scene.Width, scene.Height = 1200, 800
		}
		return scene, nil
	}

	preset, _ := flags.GetString(flagPreset)
	scene := settings.Default(paint.Color{})

	var cfg tree.Config
	switch preset {
	case "default":
		cfg = tree.Default(paint.Color{})
	case "symmetric":
		angle, _ := flags.GetFloat64(flagAngle)
		cfg = tree.Symmetric(angle, paint.Color{})
	case "straight":
		cfg = tree.Symmetric(0, paint.Color{})
	case "random":
		// Drawn from its own source so the tree's random stream does not depend on the preset.
		cfg = tree.RandomBalanced(rand.New(rand.NewSource(seed)), paint.Color{})
	default:
		return settings.Scene{}, fmt.Errorf("unknown preset %q", preset)
	}

	scene = settings.FromConfig(scene.Width, scene.Height, scene.TreeRoot(), cfg)
	scene.Branch.Color = ""
	return scene, nil
}

// pickColor resolves a color name or hex value. "random" picks purple or blue.
func pickColor(name string, r *rand.Rand) (paint.Color, error) {
	switch strings.ToLower(name) {
	case "purple":
		return paint.Purple, nil
	case "blue":
		return paint.Blue, nil
	case "random", "":
		if r.Float64() > 0.5 {
			return paint.Blue, nil
		}
		return paint.Purple, nil
	default:
		return paint.ParseHex(name)
	}
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
