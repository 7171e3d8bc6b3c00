package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalSamples   int     // Total number of camera rays traced
	AverageSamples float64 // Average camera rays per pixel
	MinSamples     int     // Fewest rays traced for any pixel
	MaxSamplesUsed int     // Most rays traced for any pixel
	RefinedPixels  int     // Pixels re-rendered by the refinement pass
	FailedPixels   int     // Pixels whose trace failed
}

// PixelStats tracks the color and sampling cost of a single pixel
type PixelStats struct {
	Color       core.Vec3 // Averaged, unclamped color
	SampleCount int       // Camera rays traced for this pixel across all passes
}

// Frame is a grid of pixel stats indexed [row][column] in raster order
type Frame [][]PixelStats

// NewFrame allocates an empty frame
func NewFrame(width, height int) Frame {
	frame := make(Frame, height)
	for y := range frame {
		frame[y] = make([]PixelStats, width)
	}
	return frame
}

// Clone returns a deep copy of the frame
func (f Frame) Clone() Frame {
	clone := make(Frame, len(f))
	for y := range f {
		clone[y] = append([]PixelStats(nil), f[y]...)
	}
	return clone
}

// Width returns the frame width in pixels
func (f Frame) Width() int {
	if len(f) == 0 {
		return 0
	}
	return len(f[0])
}

// Height returns the frame height in pixels
func (f Frame) Height() int {
	return len(f)
}

// computeStats summarizes the frame after a pass
func computeStats(frame Frame, refined []image.Point, failed int) RenderStats {
	stats := RenderStats{
		TotalPixels:   frame.Width() * frame.Height(),
		RefinedPixels: len(refined),
		FailedPixels:  failed,
	}
	if stats.TotalPixels == 0 {
		return stats
	}

	stats.MinSamples = frame[0][0].SampleCount
	for y := range frame {
		for x := range frame[y] {
			count := frame[y][x].SampleCount
			stats.TotalSamples += count
			stats.MinSamples = min(stats.MinSamples, count)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, count)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}
