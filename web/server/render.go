package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/renderer"
	"github.com/df07/go-raytracer-kernel/pkg/scene"
)

// DefaultTileSize is the tile edge used for server renders
const DefaultTileSize = 32

// SSEEvent is one server-sent event, written by a single goroutine
type SSEEvent struct {
	Type string `json:"type"` // "console", "complete" or "error"
	Data string `json:"data"` // JSON-encoded data
}

// RenderUpdate is the payload of the "complete" event
type RenderUpdate struct {
	ImageData      string  `json:"imageData"` // Base64 encoded image in the requested format
	Format         string  `json:"format"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	TotalSamples   int     `json:"totalSamples"`
	HitRatio       float64 `json:"hitRatio"`
	PrimitiveCount int     `json:"primitiveCount"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// render traces req's scene at its requested size
func (s *Server) render(ctx context.Context, sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	preview := renderer.NewPreview(sceneObj, req.Width, req.Height, renderer.PreviewConfig{
		TileSize:    DefaultTileSize,
		Supersample: req.Supersample,
	}, logger)
	return preview.Render(ctx)
}

// handleImage renders a scene and responds with the encoded image
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseCommonSceneParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger := NewWebLogger(newRenderID(), nil)
	img, stats, err := s.render(r.Context(), sceneObj, req, logger)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Rendering failed: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/"+req.Format)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Hits", strconv.Itoa(stats.Hits))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Error writing image: %v", err)
	}
}

// handleRender renders a scene, streaming console output as SSE events and
// finishing with a "complete" event that carries the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseCommonSceneParams(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	startTime := time.Now()
	img, stats, err := s.render(ctx, sceneObj, req, webLogger)
	// Every worker has returned, so nothing logs after this
	close(consoleChan)
	<-consoleDone
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := imageToBase64(img, req.Format)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderUpdate{
		ImageData:      imageData,
		Format:         req.Format,
		Width:          req.Width,
		Height:         req.Height,
		TotalSamples:   stats.TotalSamples,
		HitRatio:       stats.HitRatio(),
		PrimitiveCount: sceneObj.GetPrimitiveCount(),
		ElapsedMs:      time.Since(startTime).Milliseconds(),
	})
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode update: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
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

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	return consoleChan, NewWebLogger(newRenderID(), consoleChan)
}

// writeSSEEvents writes every event until the channel is closed or the
// client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
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

// streamConsoleMessages forwards console messages as SSE events until
// consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}
			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}

// imageToBase64 encodes img in format and returns it as base64
func imageToBase64(img image.Image, format string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Encode(&buf, img, format); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
