package server

import (
	"net/http"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	N1           float64                `json:"n1"`
	N2           float64                `json:"n2"`
	Color        [3]float64             `json:"color"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult contains the shading state at the surface seen through a pixel
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the primary ray through a pixel and prepares the
// computations at its hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, maxBounces, pixelX, pixelY int) InspectResult {
	ray := camera.RayForPixel(pixelX, pixelY)
	xs := sceneObj.World.IntersectWorld(ray)
	hit, ok := geometry.Hit(xs)
	if !ok {
		return InspectResult{}
	}

	comps, ok := geometry.PrepareComputations(hit, ray, sceneObj.World.Registry, xs)
	if !ok {
		return InspectResult{}
	}
	return InspectResult{
		Hit:   true,
		Comps: comps,
		Color: sceneObj.World.ShadeHit(comps, maxBounces),
	}
}

// geometryType names the concrete shape
func geometryType(s geometry.Shape) string {
	switch s.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Plane:
		return "plane"
	default:
		return "unknown"
	}
}

// extractMaterialInfo lists the Phong and optical parameters of a material
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           tuple3(m.Color.R, m.Color.G, m.Color.B),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}
	if m.Pattern != nil {
		properties["pattern"] = map[string]interface{}{
			"type": m.Pattern.Kind.String(),
			"a":    tuple3(m.Pattern.A.R, m.Pattern.A.G, m.Pattern.A.B),
			"b":    tuple3(m.Pattern.B.R, m.Pattern.B.G, m.Pattern.B.B),
		}
	}
	return properties
}

func tuple3(x, y, z float64) [3]float64 {
	return [3]float64{x, y, z}
}

// handleInspect reports what the primary ray through pixel (x, y) hits
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query()
	x, err := parseIntParam(query, "x", 0, 0, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", 0, 0, maxImageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	camera := renderer.NewCameraFromConfig(sceneObj.CameraConfig)
	result := inspectPixel(sceneObj, camera, req.MaxBounces, x, y)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{ObjectID: -1})
		return
	}

	c := result.Comps
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectID:     c.Object.Data().ID(),
		GeometryType: geometryType(c.Object),
		Point:        tuple3(c.Point.X, c.Point.Y, c.Point.Z),
		Normal:       tuple3(c.NormalV.X, c.NormalV.Y, c.NormalV.Z),
		Distance:     c.T,
		Inside:       c.Inside,
		N1:           c.N1,
		N2:           c.N2,
		Color:        tuple3(result.Color.R, result.Color.G, result.Color.B),
		Properties:   extractMaterialInfo(c.Object.Data().Material),
	})
}
