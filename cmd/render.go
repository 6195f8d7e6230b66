package cmd

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/watcher"
)

// watchDebounce collapses the burst of events an editor produces on save
const watchDebounce = 200 * time.Millisecond

// renderConfig holds the render command line flags
type renderConfig struct {
	output         string
	samples        int
	maxDepth       int
	width          int
	height         int
	workers        int
	seed           int64
	singleThreaded bool
	fov            float64
	aperture       float64
	focalLength    float64
	aspectRatio    string
	sceneOutput    string
	watch          bool
}

func defaultRenderConfig() renderConfig {
	camera := renderer.DefaultCameraSettings()
	opts := renderer.DefaultOptions()
	return renderConfig{
		output:      "out.png",
		samples:     opts.Samples,
		maxDepth:    opts.MaxDepth,
		width:       camera.Width,
		fov:         camera.VFov,
		aperture:    camera.Aperture,
		focalLength: camera.FocalLength,
		aspectRatio: "3x2",
	}
}

var renderCfg = defaultRenderConfig()

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an image",
	Long: `Render a built-in scene by name, or a YAML scene file with "render file".
Camera flags override the scene's suggested camera only when given explicitly.`,
}

var renderFileCmd = &cobra.Command{
	Use:   "file <scene.yaml>",
	Short: "Render a YAML scene file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderFile(cmd.Context(), cmd.Flags(), renderCfg, args[0])
	},
}

func addRenderFlags(fs *pflag.FlagSet, cfg *renderConfig) {
	fs.StringVarP(&cfg.output, "output", "o", cfg.output, "output image (.png, .bmp, .tiff or .ppm)")
	fs.IntVarP(&cfg.samples, "samples", "s", cfg.samples, "number of samples per pixel")
	fs.IntVarP(&cfg.maxDepth, "max-depth", "m", cfg.maxDepth, "maximum number of bounces")
	fs.IntVarP(&cfg.width, "width", "w", cfg.width, "image width in pixels")
	fs.IntVar(&cfg.height, "height", cfg.height, "image height in pixels (replaces --width or --aspect-ratio)")
	fs.IntVar(&cfg.workers, "workers", cfg.workers, "number of render workers (0 = one per CPU)")
	fs.Int64Var(&cfg.seed, "seed", cfg.seed, "random seed for scene generation and sampling (0 = clock)")
	fs.BoolVar(&cfg.singleThreaded, "single-threaded", cfg.singleThreaded, "render on a single goroutine")
	fs.Float64Var(&cfg.fov, "camera-fov", cfg.fov, "vertical field of view in degrees")
	fs.Float64Var(&cfg.aperture, "camera-aperture", cfg.aperture, "lens aperture")
	fs.Float64Var(&cfg.focalLength, "camera-focal-length", cfg.focalLength, "camera focal length")
	fs.StringVar(&cfg.aspectRatio, "aspect-ratio", cfg.aspectRatio, fmt.Sprintf("aspect ratio, one of %v", renderer.AspectRatioNames()))
	fs.StringVar(&cfg.sceneOutput, "scene-output", cfg.sceneOutput, "also write the generated scene to this YAML file")
}

func init() {
	addRenderFlags(renderCmd.PersistentFlags(), &renderCfg)
	renderFileCmd.Flags().BoolVar(&renderCfg.watch, "watch", false, "re-render whenever the scene file changes")

	for _, b := range scene.Builtins() {
		renderCmd.AddCommand(builtinCommand(b))
	}
	renderCmd.AddCommand(renderFileCmd)
	rootCmd.AddCommand(renderCmd)
}

func builtinCommand(b scene.Builtin) *cobra.Command {
	return &cobra.Command{
		Use:   b.Name,
		Short: b.Description,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderBuiltin(cmd.Context(), cmd.Flags(), renderCfg, b)
		},
	}
}

func renderBuiltin(ctx context.Context, flags *pflag.FlagSet, cfg renderConfig, b scene.Builtin) error {
	random := rand.New(rand.NewSource(seedOrClock(cfg.seed)))
	d := b.Generate(random)

	if cfg.sceneOutput != "" {
		if err := scene.SaveFile(cfg.sceneOutput, d); err != nil {
			return err
		}
		logger.Noticef("scene saved to %s", cfg.sceneOutput)
	}

	return renderDescription(ctx, flags, cfg, d, "")
}

func renderFile(ctx context.Context, flags *pflag.FlagSet, cfg renderConfig, path string) error {
	render := func(ctx context.Context) error {
		d, err := scene.LoadFile(path)
		if err != nil {
			return err
		}
		return renderDescription(ctx, flags, cfg, d, filepath.Dir(path))
	}

	err := render(ctx)
	if !cfg.watch {
		return err
	}
	if err != nil {
		logger.Errorf("%v", err)
	}
	return watchAndRender(ctx, path, render)
}

// watchAndRender re-renders on every change to path until ctx is cancelled.
// A change during a render cancels it and starts over.
func watchAndRender(ctx context.Context, path string, render func(context.Context) error) error {
	fw, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	var (
		mu       sync.Mutex
		renderMu sync.Mutex
		cancel   context.CancelFunc = func() {}
	)

	err = fw.Watch([]string{path}, func(string) {
		mu.Lock()
		cancel()
		renderCtx, renderCancel := context.WithCancel(ctx)
		cancel = renderCancel
		mu.Unlock()

		renderMu.Lock()
		defer renderMu.Unlock()
		if err := render(renderCtx); err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Infof("render superseded")
				return
			}
			logger.Errorf("%v", err)
		}
	})
	if err != nil {
		return err
	}
	fw.Start()

	logger.Noticef("watching %s for changes, interrupt to stop", path)
	<-ctx.Done()

	mu.Lock()
	cancel()
	mu.Unlock()
	return nil
}

func renderDescription(ctx context.Context, flags *pflag.FlagSet, cfg renderConfig, d *scene.Description, baseDir string) error {
	s, err := d.Build(baseDir)
	if err != nil {
		return err
	}

	settings, err := cameraSettings(flags, cfg, d.Camera)
	if err != nil {
		return err
	}
	camera, pos, err := settings.Build()
	if err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}

	fb, stats, err := renderer.Render(ctx, renderer.Frame{Camera: camera, Position: pos, Scene: s}, renderOptions(cfg))
	if err != nil {
		return err
	}

	if err := renderer.SaveImage(cfg.output, renderer.ToImage(fb, stats.Samples)); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", stats.Table())
	logger.Noticef("image saved to %s", cfg.output)
	return nil
}

// cameraSettings starts from the defaults, applies the scene's suggested camera
// and then any camera flag that was given explicitly
func cameraSettings(flags *pflag.FlagSet, cfg renderConfig, spec *scene.CameraSpec) (renderer.CameraSettings, error) {
	s := renderer.DefaultCameraSettings()
	s.VFov = cfg.fov
	s.Aperture = cfg.aperture
	s.FocalLength = cfg.focalLength
	s.Width = cfg.width

	ratio, err := renderer.ParseAspectRatio(cfg.aspectRatio)
	if err != nil {
		return s, err
	}
	s.AspectRatio = ratio

	if spec != nil {
		s.LookFrom = spec.LookFrom.Vec3()
		s.LookAt = spec.LookAt.Vec3()
		if spec.Up != nil {
			s.Up = spec.Up.Vec3()
		}
		s.FocusDistance = spec.FocusDistance

		if spec.VFov > 0 && !flags.Changed("camera-fov") {
			s.VFov = spec.VFov
		}
		if spec.Aperture > 0 && !flags.Changed("camera-aperture") {
			s.Aperture = spec.Aperture
		}
		if spec.FocalLength > 0 && !flags.Changed("camera-focal-length") {
			s.FocalLength = spec.FocalLength
		}
		if spec.AspectRatio != "" && !flags.Changed("aspect-ratio") {
			if s.AspectRatio, err = renderer.ParseAspectRatio(spec.AspectRatio); err != nil {
				return s, fmt.Errorf("scene camera: %w", err)
			}
		}
	}

	// Exactly two of width, height and aspect ratio reach the camera builder.
	// Giving all three explicitly is left for the builder to reject.
	if flags.Changed("height") {
		s.Height = cfg.height
		switch {
		case flags.Changed("width") && flags.Changed("aspect-ratio"):
		case flags.Changed("width"):
			s.AspectRatio = 0
		default:
			s.Width = 0
		}
	}

	return s, nil
}

func renderOptions(cfg renderConfig) renderer.Options {
	return renderer.Options{
		Samples:        cfg.samples,
		MaxDepth:       cfg.maxDepth,
		Workers:        cfg.workers,
		Seed:           cfg.seed,
		SingleThreaded: cfg.singleThreaded,
		Progress:       log.Printer{Logger: logger},
	}
}

func seedOrClock(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}
