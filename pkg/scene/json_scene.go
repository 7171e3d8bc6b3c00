package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// vector is a JSON triple such as [0, -1, 3]
type vector [3]float64

func (v vector) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// FileConfig is the on-disk form of a scene
type FileConfig struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Ambient        float64        `json:"ambient"`
	RecursionLimit *int           `json:"recursionLimit,omitempty"` // Defaults to DefaultRecursionLimit
	Camera         CameraFileCfg  `json:"camera"`
	Sampling       *SamplingCfg   `json:"sampling,omitempty"`
	Primitives     []PrimitiveCfg `json:"primitives"`
	Lights         []LightCfg     `json:"lights"`
}

// CameraFileCfg holds camera fields; zero values fall back to DefaultCameraConfig
type CameraFileCfg struct {
	Position  vector        `json:"position"`
	Rotation  core.Rotation `json:"rotation"` // Degrees
	Viewframe struct {
		Width    float64 `json:"width"`
		Height   float64 `json:"height"`
		Distance float64 `json:"distance"`
	} `json:"viewframe"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SamplingCfg replaces the default sampling when present
type SamplingCfg struct {
	SamplesPerPixel int     `json:"samplesPerPixel"`
	Refine          bool    `json:"refine"`
	RefineSamples   int     `json:"refineSamples,omitempty"`
	RefineThreshold float64 `json:"refineThreshold,omitempty"`
}

type PrimitiveCfg struct {
	Type string `json:"type"` // "sphere" or "plane"

	Center vector  `json:"center,omitempty"` // sphere
	Radius float64 `json:"radius,omitempty"` // sphere
	Point  vector  `json:"point,omitempty"`  // plane
	Normal vector  `json:"normal,omitempty"` // plane

	Color      vector   `json:"color"`
	Specular   *float64 `json:"specular,omitempty"` // Omitted means no highlight
	Reflective float64  `json:"reflective,omitempty"`
}

type LightCfg struct {
	Type      lights.LightType `json:"type"`
	Position  vector           `json:"position,omitempty"`  // point
	Direction vector           `json:"direction,omitempty"` // directional
	Intensity float64          `json:"intensity"`
}

func (p PrimitiveCfg) material() core.Material {
	specular := core.NonSpecular
	if p.Specular != nil {
		specular = *p.Specular
	}
	return core.Material{Color: p.Color.toVec3(), Specular: specular, Reflective: p.Reflective}
}

// LoadFile reads a JSON scene file and returns a validated scene
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	return s, nil
}

// Build converts the file form into a scene, filling defaults
func (cfg FileConfig) Build() (*Scene, error) {
	s := NewScene()
	s.AmbientLight = cfg.Ambient
	if cfg.RecursionLimit != nil {
		s.RecursionLimit = *cfg.RecursionLimit
	}

	camera := DefaultCameraConfig()
	camera.Position = cfg.Camera.Position.toVec3()
	camera.Rotation = cfg.Camera.Rotation
	if cfg.Camera.Viewframe.Width > 0 {
		camera.ViewframeWidth = cfg.Camera.Viewframe.Width
	}
	if cfg.Camera.Viewframe.Height > 0 {
		camera.ViewframeHeight = cfg.Camera.Viewframe.Height
	}
	if cfg.Camera.Viewframe.Distance > 0 {
		camera.ViewframeDistance = cfg.Camera.Viewframe.Distance
	}
	if cfg.Camera.Width > 0 {
		camera.Width = cfg.Camera.Width
	}
	if cfg.Camera.Height > 0 {
		camera.Height = cfg.Camera.Height
	}
	s.CameraConfig = camera

	if cfg.Sampling != nil {
		s.SamplingConfig = core.SamplingConfig{
			SamplesPerPixel: cfg.Sampling.SamplesPerPixel,
			RefineEnabled:   cfg.Sampling.Refine,
			RefineSamples:   cfg.Sampling.RefineSamples,
			RefineThreshold: cfg.Sampling.RefineThreshold,
		}
	}

	for i, p := range cfg.Primitives {
		switch p.Type {
		case "sphere":
			s.AddSphere(p.Center.toVec3(), p.Radius, p.material())
		case "plane":
			s.AddPlane(p.Point.toVec3(), p.Normal.toVec3(), p.material())
		default:
			return nil, fmt.Errorf("primitive %d: unknown type %q", i, p.Type)
		}
	}

	for i, l := range cfg.Lights {
		switch l.Type {
		case lights.LightTypePoint:
			s.AddPointLight(l.Position.toVec3(), l.Intensity)
		case lights.LightTypeDirectional:
			s.AddDirectionalLight(l.Direction.toVec3(), l.Intensity)
		default:
			return nil, fmt.Errorf("light %d: unknown type %q", i, l.Type)
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
