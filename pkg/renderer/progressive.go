package renderer

import (
	"context"
	"fmt"
	"image"
	"sort"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

const (
	// BasePass renders every pixel at the configured sample count
	BasePass = 1
	// RefinePass re-renders pixels that differ sharply from their neighbors
	RefinePass = 2
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber  int
	Frame       Frame         // Unclamped colors after this pass
	Image       *image.RGBA   // Frame written through a Canvas
	Stats       RenderStats   // Statistics for the frame so far
	Refined     []image.Point // Raster positions re-rendered in this pass
	PixelErrors []*PixelError // Failed traces and rejected writes
	IsLast      bool
}

// RenderResult is the outcome of a complete render
type RenderResult struct {
	Final      PassResult
	SinkErrors []*PixelError // Writes rejected by the caller's sink
}

// ProgressiveRaytracer renders a base pass and, when enabled, a refinement
// pass that starts only after the base frame is complete
type ProgressiveRaytracer struct {
	scene         core.Scene
	width, height int
	sampling      core.SamplingConfig
	raytracer     *Raytracer
	workerPool    *WorkerPool
	logger        core.Logger
	base          Frame // Frozen result of the base pass
}

// NewProgressiveRaytracer creates a new progressive raytracer
func NewProgressiveRaytracer(scene core.Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	cameraConfig := scene.GetCameraConfig()
	raytracer := NewRaytracer(scene, integrator.NewWhittedIntegrator())

	return &ProgressiveRaytracer{
		scene:      scene,
		width:      cameraConfig.Width,
		height:     cameraConfig.Height,
		sampling:   scene.GetSamplingConfig(),
		raytracer:  raytracer,
		workerPool: NewWorkerPool(raytracer, cameraConfig.Height, config.NumWorkers),
		logger:     logger,
	}
}

// TotalPasses returns the number of passes this render will run
func (pr *ProgressiveRaytracer) TotalPasses() int {
	if pr.sampling.RefineEnabled {
		return RefinePass
	}
	return BasePass
}

// RenderPass renders a single pass using parallel processing.
// The refinement pass requires the base pass to have completed.
func (pr *ProgressiveRaytracer) RenderPass(passNumber int) (PassResult, error) {
	pr.workerPool.Start()

	var (
		frame   Frame
		refined []image.Point
		tasks   []RowTask
	)

	switch passNumber {
	case BasePass:
		samples := pr.sampling.SamplesPerPixel
		pr.logger.Printf("Pass %d: %d rays per pixel (using %d workers)...\n",
			passNumber, SamplesFor(samples), pr.workerPool.GetNumWorkers())

		frame = NewFrame(pr.width, pr.height)
		for row := 0; row < pr.height; row++ {
			tasks = append(tasks, RowTask{TaskID: len(tasks), Row: row, Samples: samples, Target: frame})
		}

	case RefinePass:
		if pr.base == nil {
			return PassResult{}, fmt.Errorf("refinement pass requires a completed base pass")
		}

		samples := pr.sampling.RefineSamples
		refined = FindRefinementCandidates(pr.base, pr.sampling.RefineThreshold)
		pr.logger.Printf("Pass %d: refining %d pixels at %d rays per pixel (using %d workers)...\n",
			passNumber, len(refined), SamplesFor(samples), pr.workerPool.GetNumWorkers())

		// Workers write into a copy; the base frame stays frozen
		frame = pr.base.Clone()
		rows := groupByRow(refined)
		rowNumbers := make([]int, 0, len(rows))
		for row := range rows {
			rowNumbers = append(rowNumbers, row)
		}
		sort.Ints(rowNumbers)
		for _, row := range rowNumbers {
			tasks = append(tasks, RowTask{TaskID: len(tasks), Row: row, Columns: rows[row], Samples: samples, Target: frame})
		}

	default:
		return PassResult{}, fmt.Errorf("unknown pass %d", passNumber)
	}

	for _, task := range tasks {
		pr.workerPool.SubmitTask(task)
	}

	// Wait for all rows; the pass is a barrier
	var pixelErrors []*PixelError
	for range tasks {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return PassResult{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		pixelErrors = append(pixelErrors, result.Errors...)
	}

	if passNumber == BasePass {
		pr.base = frame
	}

	canvas := NewCanvas(pr.width, pr.height)
	failed := len(pixelErrors)
	pixelErrors = append(pixelErrors, WriteFrame(frame, canvas)...)

	return PassResult{
		PassNumber:  passNumber,
		Frame:       frame,
		Image:       canvas.Image(),
		Stats:       computeStats(frame, refined, failed),
		Refined:     refined,
		PixelErrors: pixelErrors,
		IsLast:      passNumber == pr.TotalPasses(),
	}, nil
}

// RenderProgressive renders with channel-based communication.
// The caller should read from both channels; each pass is delivered when complete.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.workerPool.Stop()

		pr.logger.Printf("Starting render with %d passes...\n", pr.TotalPasses())

		for pass := BasePass; pass <= pr.TotalPasses(); pass++ {
			// Check for cancellation before starting this pass
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			result, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}

			pr.logger.Printf("Pass %d completed in %v (%.2f rays/pixel, %d refined, %d failed)\n",
				pass, time.Since(startTime), result.Stats.AverageSamples,
				result.Stats.RefinedPixels, result.Stats.FailedPixels)

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}

// Render runs every pass and writes the final frame to sink
func (pr *ProgressiveRaytracer) Render(ctx context.Context, sink PixelSink) (RenderResult, error) {
	passChan, errChan := pr.RenderProgressive(ctx)

	var final PassResult
	for result := range passChan {
		final = result
	}
	if err := <-errChan; err != nil {
		return RenderResult{}, err
	}
	if final.Frame == nil {
		return RenderResult{}, fmt.Errorf("render produced no passes")
	}

	return RenderResult{
		Final:      final,
		SinkErrors: WriteFrame(final.Frame, sink),
	}, nil
}
