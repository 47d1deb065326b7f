package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/material"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

// InspectResponse represents the JSON response for pixel inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	BVH          *BVHStats              `json:"bvh,omitempty"`
}

// BVHStats mirrors accel.Stats for JSON
type BVHStats struct {
	Nodes        int     `json:"nodes"`
	Leaves       int     `json:"leaves"`
	MaxDepth     int     `json:"maxDepth"`
	Instances    int     `json:"instances"`
	AvgLeafDepth float64 `json:"avgLeafDepth"`
}

// extractMaterialInfo extracts material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vec(m.Albedo)
		properties["color"] = fmt.Sprintf("#%02x%02x%02x",
			int(m.Albedo.X*255), int(m.Albedo.Y*255), int(m.Albedo.Z*255))
		return "lambertian", properties
	case nil:
		return "none", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts the camera ray through the pixel centre and returns the first hit
func inspectPixel(sc *scene.Scene, x, y int) (core.Intersection, bool) {
	return sc.Intersect(sc.Camera().Ray(x, y))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	sceneName, settings, err := s.parseSettings(c.QueryParams())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
	}

	pixelX, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
	}
	pixelY, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
	}
	if pixelX < 0 || pixelX >= settings.ScreenWidth || pixelY < 0 || pixelY >= settings.ScreenHeight {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
	}

	sc, err := scene.Build(sceneName, settings.SceneConfig())
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	response := InspectResponse{}
	if bvh, ok := sc.Structure().(*accel.BVH); ok {
		stats := bvh.Stats()
		response.BVH = &BVHStats{
			Nodes:        stats.Nodes,
			Leaves:       stats.Leaves,
			MaxDepth:     stats.MaxDepth,
			Instances:    stats.Instances,
			AvgLeafDepth: stats.AvgLeafDepth,
		}
	}

	hit, ok := inspectPixel(sc, pixelX, pixelY)
	if ok {
		materialType, properties := extractMaterialInfo(hit.Material)
		response.Hit = true
		response.MaterialType = materialType
		response.Point = vec(hit.Point)
		response.Normal = vec(hit.Normal)
		response.Distance = hit.T
		response.Properties = properties
	}

	return c.JSON(http.StatusOK, response)
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
