package renderer

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// Raytracer turns screen pixels into colors. It holds no mutable state and
// is shared by all workers of a render.
type Raytracer struct {
	scene      core.Scene
	camera     *Camera
	integrator integrator.Integrator
}

// NewRaytracer creates a raytracer for the scene's camera
func NewRaytracer(scene core.Scene, integratorInst integrator.Integrator) *Raytracer {
	return &Raytracer{
		scene:      scene,
		camera:     NewCamera(scene.GetCameraConfig()),
		integrator: integratorInst,
	}
}

// SamplePixel traces an n×n grid of rays through the pixel at screen
// coordinates (x, y) and returns their equally weighted average. Sub-ray
// offsets are the centers of the grid cells, so n=1 traces the pixel center.
func (rt *Raytracer) SamplePixel(x, y, n int) core.Vec3 {
	if n <= 1 {
		return rt.integrator.RayColor(rt.camera.GetRay(float64(x), float64(y)), rt.scene)
	}

	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	step := 1.0 / float64(n)

	for sampleY := 0; sampleY < n; sampleY++ {
		for sampleX := 0; sampleX < n; sampleX++ {
			offsetX := (float64(sampleX)+0.5)*step - 0.5
			offsetY := (float64(sampleY)+0.5)*step - 0.5

			ray := rt.camera.GetRay(float64(x)+offsetX, float64(y)+offsetY)
			colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.scene))
		}
	}

	return colorAccum.Divide(float64(n * n))
}

// RenderPixel samples a pixel and converts a panic inside the trace into a
// PixelError so that one bad pixel cannot abort the frame. Failed pixels get
// the background color.
func (rt *Raytracer) RenderPixel(x, y, n int) (color core.Vec3, err *PixelError) {
	defer func() {
		if r := recover(); r != nil {
			color = core.BackgroundColor
			err = &PixelError{X: x, Y: y, Reason: fmt.Sprintf("trace failed: %v", r)}
		}
	}()

	return rt.SamplePixel(x, y, n), nil
}

// SamplesFor returns the number of camera rays SamplePixel traces for grid size n
func SamplesFor(n int) int {
	if n <= 1 {
		return 1
	}
	return n * n
}
