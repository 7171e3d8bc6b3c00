package scene

import "github.com/df07/go-whitted-raytracer/pkg/core"

// NewDefaultScene creates three unit spheres resting on a huge yellow ground
// sphere, lit by a point light and a weak directional light. The blue sphere
// is a perfect mirror.
func NewDefaultScene() *Scene {
	s := NewScene()
	s.AmbientLight = 0.2

	red := core.Material{Color: core.NewVec3(255, 0, 0), Specular: 500, Reflective: 0}
	blue := core.Material{Color: core.NewVec3(0, 0, 255), Specular: 500, Reflective: 1.0}
	green := core.Material{Color: core.NewVec3(0, 255, 0), Specular: 10, Reflective: 0}
	yellow := core.Material{Color: core.NewVec3(255, 255, 0), Specular: 1000, Reflective: 0}

	s.AddSphere(core.NewVec3(0, -1, 3), 1, red)
	s.AddSphere(core.NewVec3(2, 0, 4), 1, blue)
	s.AddSphere(core.NewVec3(-2, 0, 4), 1, green)
	s.AddSphere(core.NewVec3(0, -5001, 0), 5000, yellow) // Ground

	s.AddPointLight(core.NewVec3(-10, 10, -10), 2.0)
	s.AddDirectionalLight(core.NewVec3(1, 4, 4), 0.2)

	return s
}
