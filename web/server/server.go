package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Request limits shared by render and inspect requests
const (
	minDimension = 16
	maxDimension = 4000
	maxSamples   = 16
	maxDepth     = 50
)

// Server handles web requests for the raytracer
type Server struct {
	port     int
	cfg      *config.Config
	uploader *output.Uploader // nil when S3 is not configured
}

// NewServer creates a new web server. Uploads are enabled when cfg carries
// S3 settings.
func NewServer(cfg *config.Config) *Server {
	s := &Server{port: cfg.Port, cfg: cfg}

	if cfg.UploadEnabled() {
		uploader, err := output.NewUploader(cfg)
		if err != nil {
			log.Printf("S3 upload disabled: %v", err)
		} else {
			s.uploader = uploader
		}
	}

	return s
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":        "ok",
		"uploadEnabled": s.uploader != nil,
	})
}

// handleScenes lists built-in scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.cfg.ScenesDir)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	camera := sceneObj.GetCameraConfig()
	sampling := sceneObj.GetSamplingConfig()
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           camera.Width,
			"height":          camera.Height,
			"samples":         sampling.SamplesPerPixel,
			"refine":          sampling.RefineEnabled,
			"refineSamples":   sampling.RefineSamples,
			"refineThreshold": sampling.RefineThreshold,
			"depth":           sceneObj.GetRecursionLimit(),
		},
		"limits": map[string]interface{}{
			"width":         map[string]int{"min": minDimension, "max": maxDimension},
			"height":        map[string]int{"min": minDimension, "max": maxDimension},
			"samples":       map[string]int{"min": 1, "max": maxSamples},
			"refineSamples": map[string]int{"min": 1, "max": maxSamples},
			"depth":         map[string]int{"min": 0, "max": maxDepth},
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// createScene resolves a built-in scene name or a "file:<name>" id from /api/scenes
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if name, ok := strings.CutPrefix(sceneName, "file:"); ok {
		// Reject anything that could escape the scenes directory
		if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			return nil, fmt.Errorf("invalid scene file name: %s", name)
		}
		return scene.LoadFile(filepath.Join(s.cfg.ScenesDir, name+".json"))
	}
	return scene.Create(sceneName)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter from URL query
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
