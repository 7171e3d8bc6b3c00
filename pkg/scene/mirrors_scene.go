package scene

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewMirrorsScene creates two facing mirror spheres with a red ball between
// them on a glossy floor. Reflections bounce between the mirrors until the
// recursion limit cuts them off.
func NewMirrorsScene() *Scene {
	s := NewScene()
	s.AmbientLight = 0.1
	s.RecursionLimit = 6

	mirror := core.Material{Color: core.NewVec3(220, 220, 230), Specular: 1000, Reflective: 0.9}
	red := core.Material{Color: core.NewVec3(230, 40, 40), Specular: 200, Reflective: 0.1}
	floor := core.Material{Color: core.NewVec3(140, 140, 140), Specular: 50, Reflective: 0.3}

	s.AddSphere(core.NewVec3(-1.6, 0, 5), 1, mirror)
	s.AddSphere(core.NewVec3(1.6, 0, 5), 1, mirror)
	s.AddSphere(core.NewVec3(0, -0.6, 4.5), 0.4, red)
	s.AddPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), floor)

	s.AddPointLight(core.NewVec3(0, 5, 1), 1.2)
	s.AddDirectionalLight(core.NewVec3(-1, 3, -2), 0.2)

	return s
}
