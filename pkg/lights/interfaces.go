package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light is a core.Light that also reports its kind
type Light interface {
	core.Light
	Type() LightType
}

var (
	_ Light = PointLight{}
	_ Light = DirectionalLight{}
)
