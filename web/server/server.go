package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-chunk-raytracer/pkg/accel"
	"github.com/df07/go-chunk-raytracer/pkg/core"
	"github.com/df07/go-chunk-raytracer/pkg/log"
	"github.com/df07/go-chunk-raytracer/pkg/renderer"
	"github.com/df07/go-chunk-raytracer/pkg/scene"
	"github.com/labstack/echo/v4"
)

var logger = log.New("server")

// Server streams chunked renders to browsers
type Server struct {
	port     int
	defaults renderer.Settings
}

// NewServer creates a new web server. Request parameters that are not given
// fall back to defaults.
func NewServer(port int, defaults renderer.Settings) *Server {
	return &Server{port: port, defaults: defaults}
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(corsMiddleware)

	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	return e
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)

	server := &http.Server{Addr: addr, Handler: s.Handler()}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		return next(c)
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the accepted option values
func (s *Server) handleScenes(c echo.Context) error {
	kinds := make([]string, 0, len(accel.Kinds()))
	for _, kind := range accel.Kinds() {
		kinds = append(kinds, string(kind))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenes":     scene.Names(),
		"accels":     kinds,
		"modes":      []scene.Mode{scene.ModeRadiance, scene.ModeNormals, scene.ModeDistance},
		"techniques": []string{core.Grid.String(), core.Random.String(), core.Stratified.String()},
		"defaults": map[string]interface{}{
			"width":        s.defaults.ScreenWidth,
			"height":       s.defaults.ScreenHeight,
			"chunkWidth":   s.defaults.ChunkWidth,
			"chunkHeight":  s.defaults.ChunkHeight,
			"threads":      s.defaults.Threads,
			"accel":        s.defaults.Accel,
			"aaSamples":    s.defaults.AASamples,
			"lightSamples": s.defaults.LightSamples,
			"indirect":     s.defaults.Indirect,
		},
	})
}

// parseSettings overlays query parameters on the server defaults
func (s *Server) parseSettings(values url.Values) (string, renderer.Settings, error) {
	settings := s.defaults

	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	if _, err := scene.Lookup(sceneName); err != nil {
		return "", settings, err
	}

	var err error
	if settings.ScreenWidth, err = parseIntParam(values, "width", settings.ScreenWidth, 1, 4000); err != nil {
		return "", settings, err
	}
	if settings.ScreenHeight, err = parseIntParam(values, "height", settings.ScreenHeight, 1, 4000); err != nil {
		return "", settings, err
	}
	if settings.ChunkWidth, err = parseIntParam(values, "chunkWidth", settings.ChunkWidth, 1, 4000); err != nil {
		return "", settings, err
	}
	if settings.ChunkHeight, err = parseIntParam(values, "chunkHeight", settings.ChunkHeight, 1, 4000); err != nil {
		return "", settings, err
	}
	if settings.Threads, err = parseIntParam(values, "threads", settings.Threads, 1, 256); err != nil {
		return "", settings, err
	}
	if settings.AASamples, err = parseIntParam(values, "aa", settings.AASamples, 1, 16); err != nil {
		return "", settings, err
	}
	if settings.LightSamples, err = parseIntParam(values, "lightSamples", settings.LightSamples, 1, 64); err != nil {
		return "", settings, err
	}
	if settings.Indirect, err = parseIntParam(values, "indirect", settings.Indirect, 0, 64); err != nil {
		return "", settings, err
	}

	if value := values.Get("accel"); value != "" {
		if settings.Accel, err = accel.ParseKind(value); err != nil {
			return "", settings, err
		}
	}
	if value := values.Get("mode"); value != "" {
		if settings.Mode, err = scene.ParseMode(value); err != nil {
			return "", settings, err
		}
	}
	if value := values.Get("technique"); value != "" {
		if settings.LightTechnique, err = core.ParseTechnique(value); err != nil {
			return "", settings, err
		}
	}

	return sceneName, settings, settings.Validate()
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
