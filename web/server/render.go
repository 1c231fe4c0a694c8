package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	BlackPixels     int     `json:"blackPixels"`
	TotalTiles      int     `json:"totalTiles"`
	PixelsPerSecond float64 `json:"pixelsPerSecond"`
}

// RenderComplete is the final event of a streamed render
type RenderComplete struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	Stats          Stats  `json:"stats"`
	ElapsedMs      int64  `json:"elapsedMs"`
	ConsoleDropped int64  `json:"consoleDropped"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// setupRenderingPipeline creates the scene, camera and raytracer for a request
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		return nil, err
	}

	camera := renderer.NewCameraFromConfig(sceneObj.CameraConfig)
	config := renderer.RenderConfig{
		TileSize:   req.TileSize,
		NumWorkers: req.NumWorkers,
		MaxBounces: req.MaxBounces,
	}
	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewRaytracer(sceneObj.World, camera, config, logger),
	}, nil
}

// handleRender renders in parallel, streaming log lines and then the finished
// image as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// A single writer goroutine owns w until the event channel closes
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, console := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	pipeline, err := s.setupRenderingPipeline(req, console)
	if err != nil {
		close(consoleChan)
		<-consoleDone
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	startTime := time.Now()
	canvas, stats, err := pipeline.Raytracer.RenderParallel(ctx)
	close(consoleChan)
	<-consoleDone
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}
	if dropped := console.Dropped(); dropped > 0 {
		glog.Warningf("Dropped %d console lines for a slow client", dropped)
	}

	imageData, err := s.imageToBase64PNG(canvas.ToRGBA())
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Error encoding image: %v", err))
		return
	}

	complete := RenderComplete{
		Width:          canvas.Width,
		Height:         canvas.Height,
		ImageData:      imageData,
		Stats:          toStats(stats),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		ConsoleDropped: console.Dropped(),
	}
	data, err := json.Marshal(complete)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}
	s.sendEvent(ctx, sseEventChan, "complete", string(data))
}

// handleImage renders the requested scene and responds with a PNG
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	canvas, _, err := pipeline.Raytracer.RenderParallel(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas.ToRGBA()); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(buf.Bytes())
}

// handleRegion renders one rectangle of the image and responds with its raw
// row-major RGBA8 bytes. The region is clipped to the image; the clipped size
// is reported in the X-Region-Width and X-Region-Height headers.
func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query()
	var x, y, rw, rh int
	for _, p := range []struct {
		dst          *int
		key          string
		defaultValue int
		min          int
	}{
		{&x, "x", 0, 0},
		{&y, "y", 0, 0},
		{&rw, "w", DefaultTileSize, 1},
		{&rh, "h", DefaultTileSize, 1},
	} {
		if *p.dst, err = parseIntParam(query, p.key, p.defaultValue, p.min, maxImageSize); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	pipeline, err := s.setupRenderingPipeline(req, nil)
	if err != nil {
		writeError(w, sceneErrorStatus(err), err)
		return
	}

	config := pipeline.Scene.CameraConfig
	clipped := image.Rect(x, y, x+rw, y+rh).Intersect(image.Rect(0, 0, config.Width, config.Height))
	pixels := pipeline.Raytracer.RenderRegion(x, y, rw, rh)

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Region-Width", strconv.Itoa(clipped.Dx()))
	w.Header().Set("X-Region-Height", strconv.Itoa(clipped.Dy()))
	w.Write(pixels)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates the console stream for one render
func (s *Server) setupConsoleLogging() (chan ConsoleLine, *RenderConsole) {
	consoleChan := make(chan ConsoleLine, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewRenderConsole(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel closes or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console lines as SSE events until
// consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleLine, sseEventChan chan<- SSEEvent) {
	for line := range consoleChan {
		data, err := json.Marshal(line)
		if err != nil {
			glog.Errorf("Error marshaling console line: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, "console", string(data))
	}
}

// sendEvent queues an event, giving up if the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:     stats.TotalPixels,
		BlackPixels:     stats.BlackPixels,
		TotalTiles:      stats.TotalTiles,
		PixelsPerSecond: stats.PixelsPerSecond(),
	}
}
