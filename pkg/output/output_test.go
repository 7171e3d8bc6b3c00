package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/config"
)

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderFilename(t *testing.T) {
	timestamp := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := RenderFilename("output", "default", timestamp, "abc")
	expected := filepath.Join("output", "default", "render_20240305_140709_abc.png")
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestSaveImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	img := solidImage(3, 2, color.RGBA{10, 20, 30, 255})

	if err := SaveImage(img, path); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Saved file missing: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Saved file is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 3 || decoded.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Expected (10, 20, 30), got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
}

func TestSaveImage_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.xyz")
	if err := SaveImage(solidImage(1, 1, color.RGBA{A: 255}), path); err == nil {
		t.Error("Expected unknown extension to fail")
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(solidImage(4, 4, color.RGBA{255, 0, 0, 255}))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 4 {
		t.Errorf("Expected width 4, got %d", decoded.Bounds().Dx())
	}
}

func TestThumbnail(t *testing.T) {
	img := solidImage(200, 100, color.RGBA{0, 0, 255, 255})

	thumb := Thumbnail(img, 100)
	if thumb.Bounds().Dx() != 100 || thumb.Bounds().Dy() != 50 {
		t.Errorf("Expected 100x50 thumbnail, got %v", thumb.Bounds())
	}

	if small := Thumbnail(img, 400); small != image.Image(img) {
		t.Error("Expected narrow image to be returned unchanged")
	}
}

func TestRefinementOverlay(t *testing.T) {
	img := solidImage(4, 4, color.RGBA{255, 255, 255, 255})

	overlay := RefinementOverlay(img, []image.Point{{X: 1, Y: 2}})

	_, g, _, _ := overlay.At(1, 2).RGBA()
	if g>>8 > 200 {
		t.Errorf("Expected refined pixel to be tinted, got green %d", g>>8)
	}
	r, g, b, _ := overlay.At(0, 0).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("Expected untouched pixel to stay white, got (%d, %d, %d)", r>>8, g>>8, b>>8)
	}
	if img.RGBAAt(1, 2) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Expected the source image to be left unchanged")
	}
}

func TestRenderKey(t *testing.T) {
	if got := RenderKey("mirrors", "1234"); got != "renders/mirrors/1234.png" {
		t.Errorf("Unexpected key %q", got)
	}
}

func TestNewUploader(t *testing.T) {
	if _, err := NewUploader(&config.Config{}); err == nil {
		t.Error("Expected uploader without bucket to fail")
	}

	uploader, err := NewUploader(&config.Config{
		S3Bucket:    "frames",
		S3Region:    "us-east-1",
		S3Endpoint:  "http://localhost:9000",
		S3AccessKey: "key",
		S3SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("NewUploader failed: %v", err)
	}
	if uploader.bucket != "frames" {
		t.Errorf("Expected bucket frames, got %q", uploader.bucket)
	}
}
