package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelSink receives finished pixels in screen coordinates, where (0, 0) is
// the image center, x grows right and y grows up.
type PixelSink interface {
	PutPixel(x, y int, color core.Vec3) error
}

// PixelError reports a single pixel that could not be traced or written.
// It never aborts the rest of the frame.
type PixelError struct {
	X, Y   int // Screen coordinates
	Reason string
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("pixel (%d, %d): %s", e.X, e.Y, e.Reason)
}

// Canvas is a PixelSink backed by an RGBA image
type Canvas struct {
	img *image.RGBA
}

// NewCanvas creates a canvas of the given raster size
func NewCanvas(width, height int) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// PutPixel clamps and rounds the color and writes it at the raster position
// matching screen coordinates (x, y)
func (c *Canvas) PutPixel(x, y int, col core.Vec3) error {
	bounds := c.img.Bounds()
	column, row := ScreenToRaster(x, y, bounds.Dx(), bounds.Dy())

	if !(image.Point{X: column, Y: row}).In(bounds) {
		return &PixelError{X: x, Y: y, Reason: fmt.Sprintf("raster position (%d, %d) outside %dx%d image", column, row, bounds.Dx(), bounds.Dy())}
	}

	c.img.SetRGBA(column, row, vec3ToColor(col))
	return nil
}

// Image returns the backing image
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// ScreenToRaster maps center-origin screen coordinates to raster coordinates
func ScreenToRaster(x, y, width, height int) (column, row int) {
	return width/2 + x, height/2 - y - 1
}

// RasterToScreen is the inverse of ScreenToRaster
func RasterToScreen(column, row, width, height int) (x, y int) {
	return column - width/2, height/2 - 1 - row
}

// vec3ToColor converts a 0-255 color to RGBA, clamping and rounding each channel
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	return color.RGBA{
		R: channelToUint8(colorVec.X),
		G: channelToUint8(colorVec.Y),
		B: channelToUint8(colorVec.Z),
		A: 255,
	}
}

func channelToUint8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(max(0, min(255, v))))
}

// WriteFrame sends every pixel of frame to sink, collecting rejected writes
func WriteFrame(frame Frame, sink PixelSink) []*PixelError {
	var errs []*PixelError
	width, height := frame.Width(), frame.Height()

	for row := range frame {
		for column := range frame[row] {
			x, y := RasterToScreen(column, row, width, height)
			if err := sink.PutPixel(x, y, frame[row][column].Color); err != nil {
				errs = append(errs, asPixelError(x, y, err))
			}
		}
	}

	return errs
}

func asPixelError(x, y int, err error) *PixelError {
	var pe *PixelError
	if errors.As(err, &pe) {
		return pe
	}
	return &PixelError{X: x, Y: y, Reason: err.Error()}
}
