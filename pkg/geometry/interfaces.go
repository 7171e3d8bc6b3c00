package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

var (
	_ core.Primitive = Sphere{}
	_ core.Primitive = Plane{}
)
