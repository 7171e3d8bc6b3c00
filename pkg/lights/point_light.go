package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits from a single position and falls off with distance
type PointLight struct {
	Position  core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, intensity float64) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Type returns the light kind
func (pl PointLight) Type() LightType {
	return LightTypePoint
}

// DirectionFrom returns the full displacement from point to the light.
// Since the direction spans the whole distance, shadow rays stop at t=1.
func (pl PointLight) DirectionFrom(point core.Vec3) (core.Vec3, float64) {
	return pl.Position.Subtract(point), 1.0
}

// Attenuation falls off as 1/sqrt(distance), not the inverse square
func (pl PointLight) Attenuation(point core.Vec3) float64 {
	return 1.0 / math.Sqrt(pl.Position.Subtract(point).Length())
}

// GetIntensity returns the light intensity
func (pl PointLight) GetIntensity() float64 {
	return pl.Intensity
}
