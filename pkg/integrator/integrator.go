package integrator

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the color seen along a primary ray
	RayColor(ray core.Ray, scene core.Scene) core.Vec3
}
