package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Scene id from /api/scenes
	Width           int     `json:"width"`           // Image width
	Height          int     `json:"height"`          // Image height
	Samples         int     `json:"samples"`         // Base pass grid size
	Refine          bool    `json:"refine"`          // Run the refinement pass
	RefineSamples   int     `json:"refineSamples"`   // Refinement grid size
	RefineThreshold float64 `json:"refineThreshold"` // Neighbor distance that triggers refinement
	Depth           int     `json:"depth"`           // Reflection recursion limit
	Preview         int     `json:"preview"`         // Max preview width, 0 sends full size
	Upload          bool    `json:"upload"`          // Upload the final image to S3
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "passComplete", "uploaded", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// PassUpdate is the payload of a passComplete event
type PassUpdate struct {
	RenderID       string  `json:"renderId"`
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	IsLast         bool    `json:"isLast"`
	ElapsedMs      int64   `json:"elapsedMs"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	RefinedPixels  int     `json:"refinedPixels"`
	FailedPixels   int     `json:"failedPixels"`
	PrimitiveCount int     `json:"primitiveCount"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene        *scene.Scene
	Raytracer    *renderer.ProgressiveRaytracer
	Logger       *WebLogger
	PreviewWidth int // Max preview width, 0 sends full size
}

// handleRender handles progressive rendering with pass streaming via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)

	// Start single SSE writer goroutine; the handler waits for it to drain
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	// Console streaming stops before the event channel is closed
	consoleCtx, stopConsole := context.WithCancel(ctx)
	var consoleWG sync.WaitGroup
	defer func() {
		stopConsole()
		consoleWG.Wait()
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleWG.Add(1)
	go func() {
		defer consoleWG.Done()
		s.streamConsoleMessages(consoleCtx, consoleChan, sseEventChan)
	}()

	pipeline := s.setupRenderingPipeline(sceneObj, webLogger)
	pipeline.PreviewWidth = req.Preview

	// Start rendering and stream events
	startTime := time.Now()
	passChan, errChan := pipeline.Raytracer.RenderProgressive(ctx)

	final, ok := s.handleRenderingEvents(ctx, sseEventChan, passChan, errChan, pipeline, startTime)
	if !ok {
		return
	}

	if req.Upload {
		s.handleUpload(ctx, sseEventChan, pipeline, req.Scene, final)
	}

	// Send completion event
	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(NewRenderID(), consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Client disconnected; keep draining so senders never block
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages handles the console message streaming goroutine
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			// Send console message as SSE event
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			// Send to unified SSE channel
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			// Flush whatever the render logged before it finished
			for {
				select {
				case consoleMsg := <-consoleChan:
					if data, err := json.Marshal(consoleMsg); err == nil {
						select {
						case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
						default:
						}
					}
				default:
					return
				}
			}
		}
	}
}

// setupRenderingPipeline creates the raytracer for a configured scene
func (s *Server) setupRenderingPipeline(sceneObj *scene.Scene, logger *WebLogger) *RenderingPipeline {
	config := renderer.DefaultProgressiveConfig() // Auto-detect workers
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewProgressiveRaytracer(sceneObj, config, logger),
		Logger:    logger,
	}
}

// handleRenderingEvents forwards every pass to the client and returns the
// final pass. It reports false when the render failed or the client left.
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan SSEEvent,
	passChan <-chan renderer.PassResult, errChan <-chan error,
	pipeline *RenderingPipeline, startTime time.Time) (renderer.PassResult, bool) {

	var final renderer.PassResult

	for passChan != nil {
		select {
		case passResult, ok := <-passChan:
			if !ok {
				passChan = nil // Channel closed
				continue
			}
			final = passResult
			s.handlePassComplete(ctx, sseEventChan, passResult, pipeline, startTime)

		case <-ctx.Done():
			// Client disconnected
			return final, false
		}
	}

	if err := <-errChan; err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return final, false
	}
	return final, true
}

// handlePassComplete processes and sends pass completion events
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan SSEEvent, passResult renderer.PassResult, pipeline *RenderingPipeline, startTime time.Time) {
	for _, pixelErr := range passResult.PixelErrors {
		pipeline.Logger.Warnf("%v\n", pixelErr)
	}

	imageData, err := s.encodePreview(passResult, pipeline.PreviewWidth)
	if err != nil {
		log.Printf("Error encoding pass %d image: %v", passResult.PassNumber, err)
		return
	}

	stats := passResult.Stats
	update := PassUpdate{
		RenderID:       pipeline.Logger.RenderID(),
		PassNumber:     passResult.PassNumber,
		TotalPasses:    pipeline.Raytracer.TotalPasses(),
		IsLast:         passResult.IsLast,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		ImageData:      imageData,
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
		RefinedPixels:  stats.RefinedPixels,
		FailedPixels:   stats.FailedPixels,
		PrimitiveCount: len(pipeline.Scene.Primitives),
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "passComplete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// encodePreview converts a pass image to a base64 PNG no wider than maxWidth
func (s *Server) encodePreview(passResult renderer.PassResult, maxWidth int) (string, error) {
	var preview image.Image = passResult.Image
	if maxWidth > 0 {
		preview = output.Thumbnail(passResult.Image, uint(maxWidth))
	}

	data, err := output.EncodePNG(preview)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// handleUpload stores the final image in S3 and reports the object key
func (s *Server) handleUpload(ctx context.Context, sseEventChan chan SSEEvent, pipeline *RenderingPipeline, sceneName string, final renderer.PassResult) {
	if s.uploader == nil {
		s.handleError(ctx, sseEventChan, "Upload requested but S3 is not configured")
		return
	}

	data, err := output.EncodePNG(final.Image)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	key := output.RenderKey(sceneName, pipeline.Logger.RenderID())
	if err := s.uploader.Upload(ctx, key, data); err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Upload failed: %v", err))
		return
	}

	payload, _ := json.Marshal(map[string]string{"key": key})
	select {
	case sseEventChan <- SSEEvent{Type: "uploaded", Data: string(payload)}:
	case <-ctx.Done():
	}
}

// parseRenderRequest parses request parameters, using the scene's own
// settings as defaults, and returns the configured scene
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	camera := sceneObj.CameraConfig
	sampling := sceneObj.SamplingConfig

	// Parse and validate all parameters using helper functions
	if req.Width, err = parseIntParam(query, "width", camera.Width, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(query, "height", camera.Height, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", sampling.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.Refine, err = parseBoolParam(query, "refine", sampling.RefineEnabled); err != nil {
		return nil, nil, err
	}
	if req.RefineSamples, err = parseIntParam(query, "refineSamples", max(sampling.RefineSamples, 1), 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.RefineThreshold, err = parseFloatParam(query, "refineThreshold", sampling.RefineThreshold, 0, 442); err != nil {
		return nil, nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", sceneObj.RecursionLimit, 0, maxDepth); err != nil {
		return nil, nil, err
	}
	if req.Preview, err = parseIntParam(query, "preview", 0, 0, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Upload, err = parseBoolParam(query, "upload", false); err != nil {
		return nil, nil, err
	}

	sceneObj.CameraConfig.Width = req.Width
	sceneObj.CameraConfig.Height = req.Height
	sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	sceneObj.SamplingConfig.RefineEnabled = req.Refine
	sceneObj.SamplingConfig.RefineSamples = req.RefineSamples
	sceneObj.SamplingConfig.RefineThreshold = req.RefineThreshold
	sceneObj.RecursionLimit = req.Depth

	if err := sceneObj.Validate(); err != nil {
		return nil, nil, err
	}

	// Performance warning
	if req.Width*req.Height > 1920*1080 && req.Samples > 4 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
