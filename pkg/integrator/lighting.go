package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ComputeLighting returns the unitless shading factor at a surface point:
// the scene's ambient light plus the unshadowed diffuse and specular
// contributions of every light. The factor is unbounded above.
//
// The viewer is assumed to sit at the world origin, so the direction back to
// the camera is -point.
func ComputeLighting(scene core.Scene, point core.Vec3, primitive core.Primitive) float64 {
	lighting := scene.GetAmbientLight()
	normal := primitive.NormalAt(point)
	material := primitive.GetMaterial()
	primitives := scene.GetPrimitives()

	for _, light := range scene.GetLights() {
		lightDir, tMax := light.DirectionFrom(point)

		// A shadowed light contributes neither diffuse nor specular
		shadowRay := core.NewRay(point, lightDir)
		if _, blocked := core.ClosestHit(shadowRay, primitives, core.Epsilon, tMax); blocked {
			continue
		}

		intensity := light.GetIntensity()

		// Diffuse reflection
		nDotL := normal.Dot(lightDir)
		if nDotL > 0 {
			lighting += light.Attenuation(point) * intensity * nDotL / (normal.Length() * lightDir.Length())
		}

		// Specular reflection
		if material.IsSpecular() {
			toCamera := point.Negate()
			r := core.Reflect(lightDir, normal)
			rDotV := r.Dot(toCamera)
			if rDotV > 0 {
				lighting += intensity * math.Pow(rDotV/(r.Length()*toCamera.Length()), material.Specular)
			}
		}
	}

	return lighting
}
