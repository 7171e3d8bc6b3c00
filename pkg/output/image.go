package output

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

// RenderFilename returns output/<scene>/render_<timestamp>_<id>.png under outputDir
func RenderFilename(outputDir, sceneName string, timestamp time.Time, renderID string) string {
	name := fmt.Sprintf("render_%s_%s.png", timestamp.Format("20060102_150405"), renderID)
	return filepath.Join(outputDir, sceneName, name)
}

// SaveImage writes img to path, creating parent directories. The format
// follows the file extension.
func SaveImage(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to width pixels wide, keeping the aspect ratio.
// Images already narrower than width are returned unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if img.Bounds().Dx() <= int(width) {
		return img
	}
	return resize.Resize(width, 0, img, resize.Lanczos3)
}

// RefinementOverlay returns a copy of img with every refined raster position
// tinted magenta
func RefinementOverlay(img image.Image, refined []image.Point) image.Image {
	dc := gg.NewContextForImage(img)
	dc.SetRGBA(1, 0, 1, 0.6)
	for _, p := range refined {
		dc.DrawRectangle(float64(p.X), float64(p.Y), 1, 1)
	}
	dc.Fill()
	return dc.Image()
}
