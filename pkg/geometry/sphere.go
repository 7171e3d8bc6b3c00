package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect solves |O + tD - C|² = r² for t.
// The ray direction must be nonzero; its length does not matter.
func (s Sphere) Intersect(ray core.Ray) (float64, float64, bool) {
	// Vector from sphere center to ray origin
	co := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * co.Dot(ray.Direction)
	c := co.Dot(co) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	twoA := 2 * a

	return (-b - sqrtD) / twoA, (-b + sqrtD) / twoA, true
}

// NormalAt returns the outward unit normal for a point on the surface
func (s Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// GetMaterial returns the sphere's surface properties
func (s Sphere) GetMaterial() core.Material {
	return s.Material
}
