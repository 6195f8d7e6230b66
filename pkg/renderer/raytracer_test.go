package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-pathtracer/pkg/bvh"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func testFrame(t *testing.T, s *scene.Scene, width, height int) Frame {
	t.Helper()
	camera, err := CameraBuilder{VFov: 60, Width: width, Height: height}.Build()
	if err != nil {
		t.Fatal(err)
	}
	pos := LookAt(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0))
	return Frame{Camera: camera, Position: pos, Scene: s}
}

func TestRender_EmptySceneIsSky(t *testing.T) {
	s := scene.NewBuilder().SetSkybox(scene.Flat(core.NewVec3(0.25, 0.5, 1))).Finalize()
	frame := testFrame(t, s, 8, 6)

	for _, single := range []bool{true, false} {
		opts := Options{Samples: 3, MaxDepth: 5, Workers: 4, Seed: 1, SingleThreaded: single}
		fb, stats, err := Render(context.Background(), frame, opts)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if stats.TotalSamples() != 8*6*3 {
			t.Errorf("Expected %d samples, got %d", 8*6*3, stats.TotalSamples())
		}
		for i, c := range fb.Pixels {
			if !c.Equals(core.NewVec3(0.75, 1.5, 3)) {
				t.Fatalf("single=%v: pixel %d is %v, expected sky times samples", single, i, c)
			}
		}
	}
}

func TestRender_ZeroSamplesClampedToOne(t *testing.T) {
	s := scene.NewBuilder().SetSkybox(scene.Flat(core.NewVec3(1, 1, 1))).Finalize()
	fb, stats, err := Render(context.Background(), testFrame(t, s, 2, 2), Options{Samples: 0, MaxDepth: 1, SingleThreaded: true})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if stats.Samples != 1 {
		t.Errorf("Expected samples clamped to 1, got %d", stats.Samples)
	}
	if !fb.At(0, 0).Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Expected one sample of sky, got %v", fb.At(0, 0))
	}
}

func TestRender_SingleThreadedMatchesParallel(t *testing.T) {
	s := scene.NewBuilder().
		Add(geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewLambertianColor(core.NewVec3(0.6, 0.4, 0.2))).
		Add(geometry.NewSphere(core.NewVec3(0, -101, -3), 100), material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.3)).
		Finalize()
	frame := testFrame(t, s, 16, 12)

	single, _, err := Render(context.Background(), frame, Options{Samples: 16, MaxDepth: 10, Seed: 5, SingleThreaded: true})
	if err != nil {
		t.Fatal(err)
	}
	parallel, _, err := Render(context.Background(), frame, Options{Samples: 16, MaxDepth: 10, Seed: 9, Workers: 4})
	if err != nil {
		t.Fatal(err)
	}

	a := CalculateAverageLuminance(ToImage(single, 16))
	b := CalculateAverageLuminance(ToImage(parallel, 16))
	if math.Abs(a-b) > 0.05 {
		t.Errorf("Expected statistically equivalent renders, got mean luminance %f vs %f", a, b)
	}
}

func TestRender_SeededParallelIsDeterministic(t *testing.T) {
	s := scene.NewBuilder().
		Add(geometry.NewSphere(core.NewVec3(0, 0, -3), 1), material.NewLambertianColor(core.NewVec3(0.5, 0.5, 0.5))).
		Finalize()
	frame := testFrame(t, s, 6, 4)

	// One worker renders scanlines in submission order, so the stream is reproducible
	opts := Options{Samples: 4, MaxDepth: 5, Seed: 11, Workers: 1}
	a, _, err := Render(context.Background(), frame, opts)
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Render(context.Background(), frame, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pixels {
		if a.Pixels[i] != b.Pixels[i] {
			t.Fatalf("Pixel %d differs between identical seeded renders", i)
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	s := scene.NewBuilder().Finalize()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, single := range []bool{true, false} {
		_, _, err := Render(ctx, testFrame(t, s, 4, 4), Options{Samples: 1, MaxDepth: 1, SingleThreaded: single})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("single=%v: expected context.Canceled, got %v", single, err)
		}
	}
}

func TestRender_RequiresCameraAndScene(t *testing.T) {
	if _, _, err := Render(context.Background(), Frame{}, DefaultOptions()); err == nil {
		t.Error("Expected error for empty frame")
	}
}

// constantIntegrator returns red for every ray
type constantIntegrator struct{}

func (constantIntegrator) RayColor(_ *scene.Scene, _ *bvh.Workspace, _ *rand.Rand, _ core.Ray) core.Color {
	return core.NewVec3(1, 0, 0)
}

func TestRender_CustomIntegrator(t *testing.T) {
	s := scene.NewBuilder().Finalize()
	fb, _, err := Render(context.Background(), testFrame(t, s, 3, 3), Options{Samples: 5, Workers: 2, Integrator: constantIntegrator{}})
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range fb.Pixels {
		if !c.Equals(core.NewVec3(5, 0, 0)) {
			t.Fatalf("Pixel %d: expected one red per sample, got %v", i, c)
		}
	}
}

func TestWorkerPool_RendersEveryLine(t *testing.T) {
	s := scene.NewBuilder().SetSkybox(scene.Flat(core.NewVec3(1, 1, 1))).Finalize()
	frame := testFrame(t, s, 4, 10)
	fb := NewFramebuffer(4, 10)

	pool := NewWorkerPool(context.Background(), frame, Options{Samples: 1, MaxDepth: 1, Workers: 3, Seed: 1}, fb)
	if pool.GetNumWorkers() != 3 {
		t.Fatalf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start()
	for y := 0; y < fb.Height; y++ {
		pool.SubmitTask(ScanlineTask{Line: y})
	}

	seen := make(map[int]bool)
	for i := 0; i < fb.Height; i++ {
		result, ok := pool.GetResult()
		if !ok || result.Error != nil {
			t.Fatalf("Unexpected result %+v, ok=%v", result, ok)
		}
		seen[result.Line] = true
	}
	pool.Stop()

	if len(seen) != fb.Height || pool.Completed() != int64(fb.Height) {
		t.Errorf("Expected %d lines, saw %d, completed %d", fb.Height, len(seen), pool.Completed())
	}
	for i, c := range fb.Pixels {
		if !c.Equals(core.NewVec3(1, 1, 1)) {
			t.Fatalf("Pixel %d not rendered: %v", i, c)
		}
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestRender_ReportsProgress(t *testing.T) {
	s := scene.NewBuilder().SetSkybox(scene.Flat(core.NewVec3(1, 1, 1))).Finalize()

	for _, single := range []bool{true, false} {
		rec := &recordingLogger{}
		opts := Options{Samples: 1, MaxDepth: 1, Workers: 3, Seed: 1, SingleThreaded: single, Progress: rec}
		if _, _, err := Render(context.Background(), testFrame(t, s, 2, 20), opts); err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		if len(rec.lines) == 0 || len(rec.lines) > 100/progressStep {
			t.Fatalf("single=%v: expected between 1 and %d progress lines, got %d", single, 100/progressStep, len(rec.lines))
		}
		if last := rec.lines[len(rec.lines)-1]; !strings.HasPrefix(last, "100%") {
			t.Errorf("single=%v: expected final report at 100%%, got %q", single, last)
		}
	}
}

func TestProgress_Steps(t *testing.T) {
	rec := &recordingLogger{}
	p := newProgress(rec, 4)
	for done := 1; done <= 4; done++ {
		p.update(done)
	}
	if len(rec.lines) != 4 {
		t.Errorf("Expected a report at 25, 50, 75 and 100 percent, got %v", rec.lines)
	}

	empty := newProgress(rec, 0)
	empty.update(0)
	if len(rec.lines) != 4 {
		t.Error("Expected no report for an empty frame")
	}
}
