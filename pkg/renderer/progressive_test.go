package renderer

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// silentLogger discards progress output
type silentLogger struct{}

func (silentLogger) Printf(format string, args ...interface{}) {}

// panickingPrimitive fails for rays pointing right of the threshold and is
// never hit otherwise
type panickingPrimitive struct {
	threshold float64
}

func (p panickingPrimitive) Intersect(ray core.Ray) (float64, float64, bool) {
	if ray.Direction.X > p.threshold {
		panic("bad primitive")
	}
	return 0, 0, false
}
func (p panickingPrimitive) NormalAt(point core.Vec3) core.Vec3 { return core.Vec3{} }
func (p panickingPrimitive) GetMaterial() core.Material        { return core.Material{} }

// createSphereScene renders a fully lit red sphere on white at 8x8
func createSphereScene(refine bool) *MockScene {
	red := core.Material{Color: core.NewVec3(255, 0, 0), Specular: core.NonSpecular}
	return &MockScene{
		primitives: []core.Primitive{geometry.NewSphere(core.NewVec3(0, 0, 3), 1, red)},
		ambient:    1.0,
		depth:      3,
		camera: core.CameraConfig{
			ViewframeWidth:    1,
			ViewframeHeight:   1,
			ViewframeDistance: 1,
			Width:             8,
			Height:            8,
		},
		sampling: core.SamplingConfig{
			SamplesPerPixel: 1,
			RefineEnabled:   refine,
			RefineSamples:   2,
			RefineThreshold: 10,
		},
	}
}

func newTestProgressive(scene core.Scene) *ProgressiveRaytracer {
	return NewProgressiveRaytracer(scene, ProgressiveConfig{NumWorkers: 3}, silentLogger{})
}

func TestProgressiveRaytracer_TotalPasses(t *testing.T) {
	if got := newTestProgressive(createSphereScene(false)).TotalPasses(); got != BasePass {
		t.Errorf("Expected %d pass without refinement, got %d", BasePass, got)
	}
	if got := newTestProgressive(createSphereScene(true)).TotalPasses(); got != RefinePass {
		t.Errorf("Expected %d passes with refinement, got %d", RefinePass, got)
	}
}

func TestProgressiveRaytracer_BasePass(t *testing.T) {
	pr := newTestProgressive(createSphereScene(false))
	defer pr.workerPool.Stop()

	result, err := pr.RenderPass(BasePass)
	if err != nil {
		t.Fatalf("Base pass failed: %v", err)
	}

	if !result.IsLast {
		t.Error("Expected base pass to be last without refinement")
	}
	if result.Stats.TotalPixels != 64 || result.Stats.TotalSamples != 64 {
		t.Errorf("Expected one ray for each of 64 pixels, got %+v", result.Stats)
	}

	// The center ray hits the sphere, the corner ray misses it
	centerColumn, centerRow := ScreenToRaster(0, 0, 8, 8)
	if got := result.Image.RGBAAt(centerColumn, centerRow); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected red center pixel, got %v", got)
	}
	if got := result.Image.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Expected white corner pixel, got %v", got)
	}
}

func TestProgressiveRaytracer_RefineRequiresBase(t *testing.T) {
	pr := newTestProgressive(createSphereScene(true))
	defer pr.workerPool.Stop()

	if _, err := pr.RenderPass(RefinePass); err == nil {
		t.Error("Expected refinement before the base pass to fail")
	}
}

func TestProgressiveRaytracer_RefinePassOnlyTouchesCandidates(t *testing.T) {
	pr := newTestProgressive(createSphereScene(true))
	defer pr.workerPool.Stop()

	base, err := pr.RenderPass(BasePass)
	if err != nil {
		t.Fatalf("Base pass failed: %v", err)
	}
	frozen := base.Frame.Clone()
	candidates := FindRefinementCandidates(frozen, 10)
	if len(candidates) == 0 {
		t.Fatal("Expected the sphere edge to produce refinement candidates")
	}

	refined, err := pr.RenderPass(RefinePass)
	if err != nil {
		t.Fatalf("Refine pass failed: %v", err)
	}

	if len(refined.Refined) != len(candidates) {
		t.Errorf("Expected %d refined pixels, got %d", len(candidates), len(refined.Refined))
	}

	isCandidate := make(map[[2]int]bool)
	for _, p := range candidates {
		isCandidate[[2]int{p.X, p.Y}] = true
	}

	for y := range frozen {
		for x := range frozen[y] {
			if base.Frame[y][x] != frozen[y][x] {
				t.Fatalf("Base frame changed at (%d, %d) during refinement", x, y)
			}

			got := refined.Frame[y][x]
			if isCandidate[[2]int{x, y}] {
				if got.SampleCount != 1+SamplesFor(2) {
					t.Errorf("Expected refined pixel (%d, %d) to have %d samples, got %d", x, y, 1+SamplesFor(2), got.SampleCount)
				}
			} else if got != frozen[y][x] {
				t.Errorf("Expected pixel (%d, %d) to keep its base value", x, y)
			}
		}
	}
}

func TestProgressiveRaytracer_RenderWritesSink(t *testing.T) {
	pr := newTestProgressive(createSphereScene(true))
	canvas := NewCanvas(8, 8)

	result, err := pr.Render(context.Background(), canvas)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if result.Final.PassNumber != RefinePass || !result.Final.IsLast {
		t.Errorf("Expected final result from pass %d, got pass %d", RefinePass, result.Final.PassNumber)
	}
	if len(result.SinkErrors) != 0 {
		t.Errorf("Expected no sink errors, got %v", result.SinkErrors)
	}
	if canvas.Image().RGBAAt(ScreenToRaster(0, 0, 8, 8)) != (color.RGBA{255, 0, 0, 255}) {
		t.Error("Expected red center pixel in sink")
	}
}

func TestProgressiveRaytracer_FailedPixelsDoNotAbortFrame(t *testing.T) {
	scene := createSphereScene(false)
	// Only the rightmost column (x=3, direction 0.375) reaches past 0.3
	scene.primitives = append(scene.primitives, panickingPrimitive{threshold: 0.3})
	pr := newTestProgressive(scene)
	defer pr.workerPool.Stop()

	result, err := pr.RenderPass(BasePass)
	if err != nil {
		t.Fatalf("Base pass failed: %v", err)
	}

	if result.Stats.FailedPixels != 8 || len(result.PixelErrors) != 8 {
		t.Errorf("Expected 8 failed pixels, got %d (%d errors)", result.Stats.FailedPixels, len(result.PixelErrors))
	}
	for _, pe := range result.PixelErrors {
		if pe.X != 3 {
			t.Errorf("Unexpected failure at (%d, %d)", pe.X, pe.Y)
		}
	}
	if got := result.Image.RGBAAt(ScreenToRaster(0, 0, 8, 8)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Expected the rest of the frame to render, got center %v", got)
	}
}

func TestProgressiveRaytracer_CancelledBeforeStart(t *testing.T) {
	pr := newTestProgressive(createSphereScene(true))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	passChan, errChan := pr.RenderProgressive(ctx)
	for range passChan {
		t.Error("Expected no passes after cancellation")
	}
	if err := <-errChan; !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
