// Package renderer turns a scene and a camera into an image.
package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Options contains render settings
type Options struct {
	Samples        int   // samples per pixel
	MaxDepth       int   // maximum bounces per path
	Workers        int   // parallel workers, 0 means one per CPU
	Seed           int64 // 0 seeds from the clock
	SingleThreaded bool  // render every scanline on the calling goroutine

	// Integrator overrides the default path tracer
	Integrator integrator.Integrator

	// Progress, when set, receives a line every progressStep percent of scanlines
	Progress core.Logger
}

// progressStep is the percentage of scanlines between progress reports
const progressStep = 10

// DefaultOptions returns the default render settings
func DefaultOptions() Options {
	return Options{
		Samples:  100,
		MaxDepth: integrator.DefaultMaxDepth,
		Workers:  runtime.NumCPU(),
	}
}

// Frame is everything needed to render one image
type Frame struct {
	Camera   *Camera
	Position CameraPosition
	Scene    *scene.Scene
}

// scanlineRenderer renders whole scanlines with one random source and one BVH workspace
type scanlineRenderer struct {
	frame      Frame
	integrator integrator.Integrator
	samples    int
	random     *rand.Rand
	workspace  *bvh.Workspace
}

func newScanlineRenderer(frame Frame, opts Options, seed int64) *scanlineRenderer {
	return &scanlineRenderer{
		frame:      frame,
		integrator: opts.Integrator,
		samples:    opts.Samples,
		random:     rand.New(rand.NewSource(seed)),
		workspace:  bvh.NewWorkspace(),
	}
}

// render accumulates samples for every pixel of scanline y into row
func (r *scanlineRenderer) render(y int, row []core.Color) {
	cam := r.frame.Camera
	for x := range row {
		var c core.Color
		for s := 0; s < r.samples; s++ {
			px := float64(x) + r.random.Float64()
			py := float64(y) + r.random.Float64()
			ray := cam.PixelRay(r.random, r.frame.Position, px, py)
			c = c.Add(r.integrator.RayColor(r.frame.Scene, r.workspace, r.random, ray))
		}
		row[x] = c
	}
}

// normalize fills in defaults and clamps invalid settings
func (o Options) normalize() Options {
	if o.Samples <= 0 {
		logger.Warningf("samples set to %d, using 1", o.Samples)
		o.Samples = 1
	}
	if o.MaxDepth < 0 {
		o.MaxDepth = 0
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.SingleThreaded {
		o.Workers = 1
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Integrator == nil {
		o.Integrator = integrator.NewPathTracer(o.MaxDepth)
	}
	if o.Progress == nil {
		o.Progress = core.NopLogger{}
	}
	return o
}

// progress reports completed scanlines in progressStep increments
type progress struct {
	out   core.Logger
	total int
	next  int
}

func newProgress(out core.Logger, total int) *progress {
	return &progress{out: out, total: total, next: progressStep}
}

func (p *progress) update(done int) {
	if p.total == 0 {
		return
	}
	percent := done * 100 / p.total
	if percent < p.next {
		return
	}
	p.out.Printf("%d%% of scanlines rendered (%d/%d)", percent, done, p.total)
	p.next = percent - percent%progressStep + progressStep
}

// Render traces every pixel of the frame and returns the unnormalized framebuffer.
// Cancelling ctx stops scheduling new scanlines and returns ctx.Err().
func Render(ctx context.Context, frame Frame, opts Options) (*Framebuffer, RenderStats, error) {
	if frame.Camera == nil || frame.Scene == nil {
		return nil, RenderStats{}, fmt.Errorf("frame needs a camera and a scene")
	}
	opts = opts.normalize()

	fb := NewFramebuffer(frame.Camera.Width, frame.Camera.Height)
	stats := RenderStats{
		Width:     fb.Width,
		Height:    fb.Height,
		Samples:   opts.Samples,
		MaxDepth:  opts.MaxDepth,
		Workers:   opts.Workers,
		Objects:   frame.Scene.Len(),
		Unbounded: frame.Scene.Unbounded(),
		Tree:      frame.Scene.TreeStats(),
	}

	logger.Infof("rendering %dx%d, %d samples, max depth %d, %d workers",
		fb.Width, fb.Height, opts.Samples, opts.MaxDepth, opts.Workers)

	start := time.Now()
	var err error
	if opts.SingleThreaded {
		err = renderSingleThreaded(ctx, frame, opts, fb)
	} else {
		err = renderParallel(ctx, frame, opts, fb)
	}
	stats.Duration = time.Since(start)
	if err != nil {
		return nil, stats, err
	}

	logger.Infof("render finished in %v", stats.Duration)
	return fb, stats, nil
}

func renderSingleThreaded(ctx context.Context, frame Frame, opts Options, fb *Framebuffer) error {
	r := newScanlineRenderer(frame, opts, opts.Seed)
	prog := newProgress(opts.Progress, fb.Height)
	for y := 0; y < fb.Height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.render(y, fb.Row(y))
		logger.Debugf("scanline %d/%d done", y+1, fb.Height)
		prog.update(y + 1)
	}
	return nil
}

func renderParallel(ctx context.Context, frame Frame, opts Options, fb *Framebuffer) error {
	pool := NewWorkerPool(ctx, frame, opts, fb)
	pool.Start()
	prog := newProgress(opts.Progress, fb.Height)

	for y := 0; y < fb.Height; y++ {
		pool.SubmitTask(ScanlineTask{Line: y})
	}

	var firstErr error
	for i := 0; i < fb.Height; i++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		done := int(pool.Completed())
		logger.Debugf("scanline %d done (%d/%d)", result.Line, done, fb.Height)
		prog.update(done)
	}

	pool.Stop()
	return firstErr
}
