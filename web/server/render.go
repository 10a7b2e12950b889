package server

import (
	"bytes"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/imaging"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// webTileSize matches the CLI default; larger tiles only help very wide images
const webTileSize = renderer.DefaultTileSize

// SceneRequest holds the parameters shared by render and inspect
type SceneRequest struct {
	Scene    string  `json:"scene"`    // Built-in scene ID or "file:<name>"
	Width    int     `json:"width"`    // Image width, 0 keeps the scene default
	Seed     int64   `json:"seed"`     // Random scene layout and tile seed
	Aperture float64 `json:"aperture"` // Lens diameter, 0 keeps the scene default
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	Samples int            `json:"samples"` // Samples per pixel
	Depth   int            `json:"depth"`   // Maximum bounces
	Format  imaging.Format `json:"format"`  // Output encoding
}

// parseSceneRequest parses the scene selection parameters
func parseSceneRequest(r *http.Request) (SceneRequest, error) {
	values := r.URL.Query()
	req := SceneRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, 16, 2000); err != nil {
		return req, err
	}
	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return req, err
	}
	req.Seed = int64(seed)
	if req.Aperture, err = parseFloatParam(values, "aperture", 0, 0, 10); err != nil {
		return req, err
	}
	return req, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	sceneReq, err := parseSceneRequest(r)
	if err != nil {
		return nil, err
	}
	req := &RenderRequest{SceneRequest: sceneReq}

	values := r.URL.Query()
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 50, 0, 1000); err != nil {
		return nil, err
	}

	req.Format = imaging.FormatPNG
	if name := values.Get("format"); name != "" {
		if req.Format, err = imaging.ParseFormat(name); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// createScene builds the requested scene with the web overrides applied
func (s *Server) createScene(req SceneRequest) (*scene.Scene, error) {
	override := geometry.CameraConfig{Width: req.Width, Aperture: req.Aperture}
	return scene.CreateByID(req.Scene, s.scenesDir, req.Seed, override)
}

// handleRender renders the whole image and returns it encoded in the requested format.
// A client disconnect cancels the render through the request context.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req.SceneRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	sceneObj.SamplingConfig.MaxDepth = req.Depth

	renderID := uuid.NewString()
	config := renderer.RenderConfig{TileSize: webTileSize, Seed: req.Seed}
	raytracer := renderer.NewRaytracer(sceneObj, config, NewWebLogger(renderID, s.console))

	ctx := r.Context()
	startTime := time.Now()
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		if ctx.Err() != nil {
			log.Printf("Render %s cancelled by client: %v", renderID, err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Render error: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, errors.Wrap(err, "failed to encode image").Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(time.Since(startTime).Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Render %s: failed to write response: %v", renderID, err)
	}
}
