package core

import "math"

const (
	// Epsilon is the lower parametric bound for secondary rays, keeping them off the surface they start on
	Epsilon = 1e-10

	// Infinity is the upper parametric bound for unbounded rays
	Infinity = math.MaxFloat64

	// NonSpecular marks a material without a specular highlight
	NonSpecular = -1.0
)

// BackgroundColor is returned for rays that hit nothing
var BackgroundColor = Vec3{X: 255, Y: 255, Z: 255}

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material holds the surface properties shared by every primitive kind
type Material struct {
	Color      Vec3    // Base color, 0-255 per channel
	Specular   float64 // Specular exponent, NonSpecular to disable
	Reflective float64 // Blend factor in [0,1] for the reflected color, 1 is a mirror
}

// IsSpecular reports whether the material contributes a specular highlight
func (m Material) IsSpecular() bool {
	return m.Specular != NonSpecular
}

// Primitive is a renderable shape. Implementations are immutable values so that
// copies returned from ClosestHit are owned by the caller.
type Primitive interface {
	// Intersect returns the parametric roots where the ray meets the surface.
	// The two roots are equal for a single (tangent or planar) intersection.
	Intersect(ray Ray) (t1, t2 float64, ok bool)

	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point Vec3) Vec3

	GetMaterial() Material
}

// Light illuminates a point in the scene
type Light interface {
	// DirectionFrom returns the direction from point toward the light and the
	// parametric extent of that direction used to bound shadow rays.
	DirectionFrom(point Vec3) (direction Vec3, tMax float64)

	// Attenuation returns the falloff factor applied to diffuse light at point
	Attenuation(point Vec3) float64

	GetIntensity() float64
}

// Rotation is a fixed camera orientation expressed as Euler angles in degrees
type Rotation struct {
	Roll  float64 `json:"roll"`  // About the X axis
	Pitch float64 `json:"pitch"` // About the Y axis
	Yaw   float64 `json:"yaw"`   // About the Z axis
}

// CameraConfig describes the camera and the viewframe it looks through
type CameraConfig struct {
	Position          Vec3     // Ray origin for primary rays
	Rotation          Rotation // Fixed orientation applied to viewframe directions
	ViewframeWidth    float64  // Viewframe width in world units
	ViewframeHeight   float64  // Viewframe height in world units
	ViewframeDistance float64  // Distance from the camera to the viewframe
	Width             int      // Canvas width in pixels
	Height            int      // Canvas height in pixels
}

// SamplingConfig contains per-pixel sampling configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Grid size n; each pixel traces n×n rays
	RefineEnabled   bool    // Run the adaptive refinement pass
	RefineSamples   int     // Grid size used when re-rendering a refined pixel
	RefineThreshold float64 // Neighbor color distance (0-255 units) that triggers refinement
}

// Scene is the read-only snapshot consumed by the renderer
type Scene interface {
	GetPrimitives() []Primitive
	GetLights() []Light
	GetAmbientLight() float64
	GetRecursionLimit() int
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
}
