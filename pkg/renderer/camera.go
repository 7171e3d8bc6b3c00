package renderer

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays through a viewframe placed in front of the camera
type Camera struct {
	position core.Vec3
	rotation mgl64.Mat3
	scaleX   float64 // Viewframe units per pixel, horizontal
	scaleY   float64 // Viewframe units per pixel, vertical
	distance float64
}

// NewCamera creates a camera from its configuration.
// The rotation is applied as yaw (Z) · pitch (Y) · roll (X).
func NewCamera(config core.CameraConfig) *Camera {
	rotation := mgl64.Rotate3DZ(mgl64.DegToRad(config.Rotation.Yaw)).
		Mul3(mgl64.Rotate3DY(mgl64.DegToRad(config.Rotation.Pitch))).
		Mul3(mgl64.Rotate3DX(mgl64.DegToRad(config.Rotation.Roll)))

	return &Camera{
		position: config.Position,
		rotation: rotation,
		scaleX:   config.ViewframeWidth / float64(config.Width),
		scaleY:   config.ViewframeHeight / float64(config.Height),
		distance: config.ViewframeDistance,
	}
}

// GetRay returns the ray through screen coordinates (x, y), where (0, 0) is
// the canvas center, x grows right and y grows up. Fractional coordinates
// address points inside a pixel.
func (c *Camera) GetRay(x, y float64) core.Ray {
	viewframe := mgl64.Vec3{x * c.scaleX, y * c.scaleY, c.distance}
	direction := c.rotation.Mul3x1(viewframe)

	return core.NewRay(c.position, core.NewVec3(direction[0], direction[1], direction[2]))
}
