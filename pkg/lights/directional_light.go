package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DirectionalLight shines from infinitely far away along a fixed direction
type DirectionalLight struct {
	Direction core.Vec3 // Direction toward the light
	Intensity float64
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(direction core.Vec3, intensity float64) DirectionalLight {
	return DirectionalLight{Direction: direction, Intensity: intensity}
}

// Type returns the light kind
func (dl DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// DirectionFrom returns the fixed direction; shadow rays are unbounded
func (dl DirectionalLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	return dl.Direction, core.Infinity
}

// Attenuation is constant for directional lights
func (dl DirectionalLight) Attenuation(point core.Vec3) float64 {
	return 1.0
}

// GetIntensity returns the light intensity
func (dl DirectionalLight) GetIntensity() float64 {
	return dl.Intensity
}
