package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-raytracer-kernel/pkg/scene"
)

// Server serves preview renders of the built-in and PLY scenes
type Server struct {
	port    int
	meshDir string
}

// NewServer creates a server listening on port. PLY scenes are looked up
// in meshDir.
func NewServer(port int, meshDir string) *Server {
	return &Server{port: port, meshDir: meshDir}
}

// RenderRequest holds the parsed query parameters shared by every endpoint
type RenderRequest struct {
	Scene       string  `json:"scene"`       // Scene name accepted by scene.Create
	Width       int     `json:"width"`       // Output width, 0 for the scene default
	Height      int     `json:"height"`      // Derived from the scene aspect ratio
	Supersample int     `json:"supersample"` // Samples per pixel axis
	LineWidth   float64 `json:"lineWidth"`   // Wireframe half-width in radians, 0 for default
	Format      string  `json:"format"`      // "png" or "webp"
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/render", s.handleRender)
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
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by the meshes in meshDir
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.ListBuiltinScenes()
	meshes, err := scene.ListPLYScenes(s.meshDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, append(scenes, meshes...))
}

// parseCommonSceneParams reads the scene and image parameters
func (s *Server) parseCommonSceneParams(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 16, 2000); err != nil {
		return nil, err
	}
	if req.Supersample, err = parseIntParam(query, "supersample", 1, 1, 4); err != nil {
		return nil, err
	}
	if req.LineWidth, err = parseFloatParam(query, "lineWidth", 0, 1e-6, 0.5); err != nil {
		return nil, err
	}

	req.Format = query.Get("format")
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "webp":
	default:
		return nil, fmt.Errorf("format must be png or webp, got: %s", req.Format)
	}
	return req, nil
}

// createScene builds the requested scene and fills in the image size
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	sceneObj, err := scene.Create(req.Scene, s.meshDir, scene.Options{LineWidth: req.LineWidth})
	if err != nil {
		return nil, err
	}
	req.Width, req.Height = sceneObj.ImageSize(req.Width)
	return sceneObj, nil
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

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
