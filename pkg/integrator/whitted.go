package integrator

import "github.com/df07/go-whitted-raytracer/pkg/core"

// WhittedIntegrator traces primary rays with local shading and mirror reflection
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor traces a camera ray with the scene's recursion limit
func (wi *WhittedIntegrator) RayColor(ray core.Ray, scene core.Scene) core.Vec3 {
	return wi.Trace(scene, ray, core.Epsilon, core.Infinity, scene.GetRecursionLimit())
}

// Trace returns the color seen along ray within (tMin, tMax). Reflective
// surfaces blend their local color with the color of the mirrored ray,
// recursing until depth reaches zero.
func (wi *WhittedIntegrator) Trace(scene core.Scene, ray core.Ray, tMin, tMax float64, depth int) core.Vec3 {
	hit, isHit := core.ClosestHit(ray, scene.GetPrimitives(), tMin, tMax)
	if !isHit {
		return core.BackgroundColor
	}

	material := hit.Primitive.GetMaterial()
	localColor := material.Color.Multiply(ComputeLighting(scene, hit.Point, hit.Primitive))

	reflective := material.Reflective
	if depth <= 0 || reflective <= 0 {
		return localColor
	}

	reflected := core.Reflect(ray.Direction.Negate(), hit.Primitive.NormalAt(hit.Point))
	reflectedColor := wi.Trace(scene, core.NewRay(hit.Point, reflected), core.Epsilon, core.Infinity, depth-1)

	return localColor.Multiply(1 - reflective).Add(reflectedColor.Multiply(reflective))
}
