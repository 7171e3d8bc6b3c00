package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Index        int                    `json:"index"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Lighting     float64                `json:"lighting"` // Shading factor before the material color is applied
	Color        string                 `json:"color"`    // Traced pixel color
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes the first primitive seen through a pixel
type InspectResult struct {
	Hit          bool
	Intersection core.Hit
	Color        core.Vec3
}

// inspectPixel casts the ray through the center of raster pixel (column, row)
// and returns the nearest hit along with the color the tracer would produce
func inspectPixel(sceneObj *scene.Scene, column, row int) InspectResult {
	camera := sceneObj.GetCameraConfig()
	x, y := renderer.RasterToScreen(column, row, camera.Width, camera.Height)
	ray := renderer.NewCamera(camera).GetRay(float64(x), float64(y))

	color := integrator.NewWhittedIntegrator().RayColor(ray, sceneObj)

	hit, isHit := core.ClosestHit(ray, sceneObj.GetPrimitives(), core.Epsilon, core.Infinity)
	if !isHit {
		return InspectResult{Hit: false, Color: color}
	}

	return InspectResult{Hit: true, Intersection: hit, Color: color}
}

// extractMaterialInfo reports the surface properties of a material
func (s *Server) extractMaterialInfo(mat core.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":      hexColor(mat.Color),
		"rgb":        [3]float64{mat.Color.X, mat.Color.Y, mat.Color.Z},
		"reflective": mat.Reflective,
	}
	if mat.IsSpecular() {
		properties["specular"] = mat.Specular
	} else {
		properties["specular"] = "none"
	}
	return properties
}

// extractGeometryInfo extracts detailed geometry information
func (s *Server) extractGeometryInfo(primitive core.Primitive) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := primitive.(type) {
	case geometry.Sphere:
		properties["center"] = [3]float64{geom.Center.X, geom.Center.Y, geom.Center.Z}
		properties["radius"] = geom.Radius
		return "sphere", properties

	case geometry.Plane:
		properties["point"] = [3]float64{geom.Point.X, geom.Point.Y, geom.Point.Z}
		properties["normal"] = [3]float64{geom.Normal.X, geom.Normal.Y, geom.Normal.Z}
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// hexColor formats a 0-255 color as #rrggbb, clamping each channel
func hexColor(c core.Vec3) string {
	channel := func(v float64) int {
		return int(min(max(v, 0), 255) + 0.5)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	// Scene, size and depth parse the same way as for a render
	inspectReq, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid x coordinate"})
		return
	}

	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid y coordinate"})
		return
	}

	// Validate pixel coordinates
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)

	if !result.Hit {
		response := InspectResponse{Hit: false, Index: -1, Color: hexColor(result.Color)}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(response)
		return
	}

	hit := result.Intersection
	normal := hit.Primitive.NormalAt(hit.Point)
	geometryType, geometryProps := s.extractGeometryInfo(hit.Primitive)

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Index:        hit.Index,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{normal.X, normal.Y, normal.Z},
		Distance:     hit.T,
		Lighting:     integrator.ComputeLighting(sceneObj, hit.Point, hit.Primitive),
		Color:        hexColor(result.Color),
		Properties: map[string]interface{}{
			"material": s.extractMaterialInfo(hit.Primitive.GetMaterial()),
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
