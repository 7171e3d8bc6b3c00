package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// DefaultRecursionLimit is the number of mirror bounces traced when a scene does not say otherwise
const DefaultRecursionLimit = 3

// Scene contains all the elements needed for rendering. It implements
// core.Scene and must not be modified once a render has started.
type Scene struct {
	Primitives     []core.Primitive // Objects in the scene, in tie-break order
	Lights         []lights.Light   // Lights in the scene
	AmbientLight   float64          // Shading factor every surface receives
	RecursionLimit int              // Maximum reflection depth
	CameraConfig   core.CameraConfig
	SamplingConfig core.SamplingConfig
}

// DefaultCameraConfig returns a camera at the origin looking down +Z through
// a 16:9 viewframe one unit away
func DefaultCameraConfig() core.CameraConfig {
	return core.CameraConfig{
		Position:          core.NewVec3(0, 0, 0),
		ViewframeWidth:    2.0,
		ViewframeHeight:   1.125,
		ViewframeDistance: 1.0,
		Width:             800,
		Height:            450,
	}
}

// DefaultSamplingConfig returns the recommended sampling for built-in scenes
func DefaultSamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		SamplesPerPixel: 2,
		RefineEnabled:   true,
		RefineSamples:   4,
		RefineThreshold: 10,
	}
}

// NewScene creates an empty scene with default camera and sampling
func NewScene() *Scene {
	return &Scene{
		Primitives:     make([]core.Primitive, 0),
		Lights:         make([]lights.Light, 0),
		RecursionLimit: DefaultRecursionLimit,
		CameraConfig:   DefaultCameraConfig(),
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, material core.Material) {
	s.Primitives = append(s.Primitives, geometry.NewSphere(center, radius, material))
}

// AddPlane adds an infinite plane to the scene
func (s *Scene) AddPlane(point, normal core.Vec3, material core.Material) {
	s.Primitives = append(s.Primitives, geometry.NewPlane(point, normal, material))
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// AddDirectionalLight adds a directional light to the scene
func (s *Scene) AddDirectionalLight(direction core.Vec3, intensity float64) {
	s.Lights = append(s.Lights, lights.NewDirectionalLight(direction, intensity))
}

// Validate checks that every field the renderer depends on is populated.
// Degenerate primitives are not rejected.
func (s *Scene) Validate() error {
	camera := s.CameraConfig
	if camera.Width <= 0 || camera.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", camera.Width, camera.Height)
	}
	if camera.ViewframeWidth <= 0 || camera.ViewframeHeight <= 0 {
		return fmt.Errorf("viewframe size must be positive, got %gx%g", camera.ViewframeWidth, camera.ViewframeHeight)
	}
	if camera.ViewframeDistance <= 0 {
		return fmt.Errorf("viewframe distance must be positive, got %g", camera.ViewframeDistance)
	}
	if s.RecursionLimit < 0 {
		return fmt.Errorf("recursion limit must not be negative, got %d", s.RecursionLimit)
	}

	sampling := s.SamplingConfig
	if sampling.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", sampling.SamplesPerPixel)
	}
	if sampling.RefineEnabled {
		if sampling.RefineSamples < 1 {
			return fmt.Errorf("refine samples must be at least 1, got %d", sampling.RefineSamples)
		}
		if sampling.RefineThreshold < 0 {
			return fmt.Errorf("refine threshold must not be negative, got %g", sampling.RefineThreshold)
		}
	}

	return nil
}

// GetPrimitives returns the scene's primitives
func (s *Scene) GetPrimitives() []core.Primitive {
	return s.Primitives
}

// GetLights returns the scene's lights
func (s *Scene) GetLights() []core.Light {
	result := make([]core.Light, len(s.Lights))
	for i, light := range s.Lights {
		result[i] = light
	}
	return result
}

// GetAmbientLight returns the ambient shading factor
func (s *Scene) GetAmbientLight() float64 {
	return s.AmbientLight
}

// GetRecursionLimit returns the maximum reflection depth
func (s *Scene) GetRecursionLimit() int {
	return s.RecursionLimit
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() core.CameraConfig {
	return s.CameraConfig
}

// GetSamplingConfig returns the recommended sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// CountLights returns the number of lights of each type
func (s *Scene) CountLights() map[lights.LightType]int {
	counts := make(map[lights.LightType]int)
	for _, light := range s.Lights {
		counts[light.Type()]++
	}
	return counts
}
