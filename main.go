package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// renderOverrides holds command line settings that replace scene defaults.
// Negative values and unset flags leave the scene's value alone.
type renderOverrides struct {
	width, height   int
	samples         int
	refine          *bool
	refineSamples   int
	refineThreshold float64
	depth           int
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Scene: built-in name ("+strings.Join(scene.Names(), ", ")+"), scene file name or path to a .json file")
	sceneFile := flag.String("file", "", "Path to a JSON scene file (overrides -scene)")
	width := flag.Int("width", -1, "Image width in pixels")
	height := flag.Int("height", -1, "Image height in pixels")
	samples := flag.Int("samples", -1, "Supersampling grid size n (n×n rays per pixel)")
	refine := flag.Bool("refine", true, "Run the adaptive refinement pass")
	refineSamples := flag.Int("refine-samples", -1, "Grid size for refined pixels")
	refineThreshold := flag.Float64("refine-threshold", -1, "Neighbor color distance that triggers refinement")
	depth := flag.Int("depth", -1, "Reflection recursion limit")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	outPath := flag.String("out", "", "Output file (default <output dir>/<scene>/render_<timestamp>_<id>.png)")
	thumb := flag.Uint("thumb", 0, "Also save a thumbnail this many pixels wide")
	overlay := flag.Bool("overlay", false, "Also save the image with refined pixels highlighted")
	upload := flag.Bool("upload", false, "Upload the render to S3 (requires S3_BUCKET and S3_REGION)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	cfg, err := config.Load(os.Getenv("RAYTRACER_ROOT_DIR"))
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *sceneFile != "" {
		*sceneType = *sceneFile
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(*sceneType, cfg.ScenesDir)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}

	overrides := renderOverrides{
		width:           *width,
		height:          *height,
		samples:         *samples,
		refineSamples:   *refineSamples,
		refineThreshold: *refineThreshold,
		depth:           *depth,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "refine" {
			overrides.refine = refine
		}
	})
	applyOverrides(selectedScene, overrides)

	if err := selectedScene.Validate(); err != nil {
		fmt.Printf("Invalid scene configuration: %v\n", err)
		os.Exit(1)
	}

	renderID := uuid.NewString()
	name := sceneName(*sceneType)
	filename := *outPath
	if filename == "" {
		filename = output.RenderFilename(cfg.OutputDir, name, time.Now(), renderID[:8])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := render(ctx, selectedScene, *workers, filename, *thumb, *overlay); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if *upload {
		if err := uploadRender(ctx, cfg, filename, name, renderID); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println("  <name>   - scenes/<name>.json")
	fmt.Println("  <path>   - any .json scene file")
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>_<id>.png")
	fmt.Println("Settings such as RAYTRACER_OUTPUT_DIR and S3_BUCKET are read from the environment or .env")
}

// createScene resolves sceneType as a built-in scene, a path to a JSON file
// or the name of a JSON file in scenesDir
func createScene(sceneType, scenesDir string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}

	if s, err := scene.Create(sceneType); err == nil {
		fmt.Printf("Using %s scene...\n", sceneType)
		return s, nil
	}

	if s := tryLoadSceneFile(sceneType, scenesDir); s != nil {
		return s, nil
	}

	return nil, fmt.Errorf("unknown scene %q: not a built-in scene (%s) or a scene file",
		sceneType, strings.Join(scene.Names(), ", "))
}

// tryLoadSceneFile loads sceneType as a .json path or as a name in scenesDir,
// returning nil when no file matches
func tryLoadSceneFile(sceneType, scenesDir string) *scene.Scene {
	var path string
	if strings.HasSuffix(sceneType, ".json") {
		path = sceneType
	} else {
		path = filepath.Join(scenesDir, sceneType+".json")
	}

	if _, err := os.Stat(path); err != nil {
		return nil
	}

	s, err := scene.LoadFile(path)
	if err != nil {
		fmt.Printf("Error loading scene file %s: %v\n", path, err)
		return nil
	}

	fmt.Printf("Using scene file %s...\n", path)
	return s
}

// sceneName returns the directory name used for a scene's output
func sceneName(sceneType string) string {
	if strings.HasSuffix(sceneType, ".json") {
		return strings.TrimSuffix(filepath.Base(sceneType), ".json")
	}
	return sceneType
}

// applyOverrides replaces scene defaults with values given on the command line
func applyOverrides(s *scene.Scene, o renderOverrides) {
	if o.width > 0 {
		s.CameraConfig.Width = o.width
	}
	if o.height > 0 {
		s.CameraConfig.Height = o.height
	}
	if o.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = o.samples
	}
	if o.refine != nil {
		s.SamplingConfig.RefineEnabled = *o.refine
	}
	if o.refineSamples > 0 {
		s.SamplingConfig.RefineSamples = o.refineSamples
	}
	if o.refineThreshold >= 0 {
		s.SamplingConfig.RefineThreshold = o.refineThreshold
	}
	if o.depth >= 0 {
		s.RecursionLimit = o.depth
	}
}

// render runs every pass and saves the final image plus any extra outputs
func render(ctx context.Context, s *scene.Scene, workers int, filename string, thumbWidth uint, overlay bool) error {
	camera := s.CameraConfig
	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.NumWorkers = workers

	raytracer := renderer.NewProgressiveRaytracer(s, progressiveConfig, renderer.NewDefaultLogger())
	canvas := renderer.NewCanvas(camera.Width, camera.Height)

	startTime := time.Now()
	result, err := raytracer.Render(ctx, canvas)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	stats := result.Final.Stats
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Rays per pixel: %.2f (range %d - %d), %d refined, %d failed\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed, stats.RefinedPixels, stats.FailedPixels)
	for _, pixelErr := range append(result.Final.PixelErrors, result.SinkErrors...) {
		fmt.Printf("Warning: %v\n", pixelErr)
	}

	img := canvas.Image()
	if err := output.SaveImage(img, filename); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	if thumbWidth > 0 {
		thumbFile := base + "_thumb.png"
		if err := output.SaveImage(output.Thumbnail(img, thumbWidth), thumbFile); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbFile)
	}
	if overlay {
		overlayFile := base + "_refined.png"
		if err := output.SaveImage(output.RefinementOverlay(img, result.Final.Refined), overlayFile); err != nil {
			return err
		}
		fmt.Printf("Refinement overlay saved as %s\n", overlayFile)
	}

	return nil
}

// uploadRender stores the saved render in S3
func uploadRender(ctx context.Context, cfg *config.Config, filename, name, renderID string) error {
	uploader, err := output.NewUploader(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read render: %w", err)
	}

	return uploader.Upload(ctx, output.RenderKey(name, renderID), data)
}
