package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/material"
	"github.com/df07/go-raytracer-kernel/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ShaderType   string                 `json:"shaderType"`
	GeometryType string                 `json:"geometryType"`
	PrimID       int                    `json:"primId"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Color        [3]float64             `json:"color"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	clamp := func(f float64) int { return int(max(0, min(1, f)) * 255) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.X), clamp(c.Y), clamp(c.Z))
}

// extractShaderInfo describes the shader bound at the hit
func extractShaderInfo(state *geometry.ShadingState) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch sh := state.Shader.(type) {
	case *material.Wireframe:
		properties["lineColor"] = hexColor(sh.LineColor())
		properties["fillColor"] = hexColor(sh.FillColor())
		properties["width"] = sh.Width()
		edge, onLine := sh.EdgeAt(state)
		properties["onLine"] = onLine
		if onLine {
			properties["edge"] = edge
		}
		return "wireframe", properties

	case *material.Constant:
		switch src := sh.Source.(type) {
		case *material.SolidColor:
			properties["source"] = "solid"
		case *material.ImageTexture:
			properties["source"] = "texture"
			properties["size"] = [2]int{src.Width, src.Height}
		default:
			properties["source"] = "unknown"
		}
		return "constant", properties

	case material.UVShader:
		return "uv", properties

	case nil:
		return "none", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes the primitive list of the hit instance
func extractGeometryInfo(state *geometry.ShadingState) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if state.Instance == nil {
		return "unknown", properties
	}

	switch geom := state.Instance.Geometry.(type) {
	case *geometry.Plane:
		properties["center"] = vec(geom.Center())
		properties["normal"] = vec(geom.Normal())
		properties["uvAxis"] = geom.Axis().String()
		return "plane", properties

	case *geometry.Sphere:
		properties["center"] = vec(geom.Center())
		properties["radius"] = geom.Radius()
		return "sphere", properties

	case *geometry.TriangleMesh:
		properties["triangleCount"] = geom.NumPrimitives()
		if points, ok := geom.TrianglePoints(state.PrimID); ok {
			properties["triangle"] = [3][3]float64{vec(points[0]), vec(points[1]), vec(points[2])}
		}
		if box, ok := state.Instance.WorldBounds(); ok {
			properties["boundingBox"] = map[string]interface{}{
				"min": vec(box.Min),
				"max": vec(box.Max),
			}
		}
		return "triangle_mesh", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel traces the ray through the center of pixel (x, y), with y
// counted from the top, and returns the prepared shading state of the hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (*geometry.ShadingState, bool) {
	s := (float64(pixelX) + 0.5) / float64(width)
	t := 1 - (float64(pixelY)+0.5)/float64(height)
	ray := sceneObj.Camera.GetRay(s, t)

	var istate geometry.IntersectionState
	sceneObj.Intersect(&ray, &istate)
	if !istate.Hit() {
		return nil, false
	}

	state := geometry.NewShadingState(ray, &istate, sceneObj.Camera.WorldToCamera())
	state.Prepare()
	return state, true
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseCommonSceneParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	state, hit := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	// Shade before describing: the modifier may rewrite the state
	color := state.Shade()
	shaderType, shaderProps := extractShaderInfo(state)
	geometryType, geometryProps := extractGeometryInfo(state)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ShaderType:   shaderType,
		GeometryType: geometryType,
		PrimID:       state.PrimID,
		Point:        vec(state.Point),
		Normal:       vec(state.Normal),
		UV:           [2]float64{state.UV.U, state.UV.V},
		Color:        vec(color),
		Distance:     state.Ray.TMax * state.Ray.Direction.Length(),
		Properties: map[string]interface{}{
			"shader":   shaderProps,
			"geometry": geometryProps,
		},
	})
}
