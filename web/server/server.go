package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultTileSize is the tile edge used by parallel renders
	DefaultTileSize = 32

	maxImageSize  = 4096
	maxBounceSize = 16
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	metrics   *requestMetrics
}

// NewServer creates a new web server. Scene files are served from scenesDir.
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		metrics:   newRequestMetrics(),
	}
}

// RenderRequest represents a render request from the client. Zero sizes and
// field of view keep the scene's own camera.
type RenderRequest struct {
	Scene       string  `json:"scene"`      // Preset name or scene file ID
	Width       int     `json:"width"`      // Image width
	Height      int     `json:"height"`     // Image height
	FieldOfView float64 `json:"fov"`        // Radians
	MaxBounces  int     `json:"maxBounces"` // Reflection/refraction budget
	NumWorkers  int     `json:"numWorkers"` // 0 = one per CPU
	TileSize    int     `json:"tileSize"`   // Tile edge in pixels
}

// Handler returns the server's routes wrapped with request metrics
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/region", s.handleRegion)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return s.metrics.wrap(mux)
}

// Start starts the web server
func (s *Server) Start() error {
	if err := s.metrics.register(); err != nil {
		return xerrors.Errorf("while registering request metrics: %w", err)
	}

	addr := fmt.Sprintf(":%d", s.port)
	glog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the presets and the scene files that can be rendered
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.FieldOfView, err = parseFloatParam(query, "fov", 0, 0.01, 3.14); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "maxBounces", scene.MaxBounces, 0, maxBounceSize); err != nil {
		return nil, err
	}
	if req.NumWorkers, err = parseIntParam(query, "numWorkers", 0, 0, 256); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(query, "tileSize", DefaultTileSize, 1, maxImageSize); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, xerrors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, xerrors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
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
			return 0, xerrors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, xerrors.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves the requested scene with the request's camera overrides
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	overrides := scene.CameraConfig{
		Width:       req.Width,
		Height:      req.Height,
		FieldOfView: req.FieldOfView,
	}
	return loaders.ResolveScene(req.Scene, s.scenesDir, overrides)
}

// sceneErrorStatus maps scene resolution errors to HTTP status codes
func sceneErrorStatus(err error) int {
	if xerrors.Is(err, loaders.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
