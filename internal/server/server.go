package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/discourse/internal/core/model"
	"github.com/agenthands/discourse/internal/data"
	"github.com/agenthands/discourse/internal/logger"
	"github.com/agenthands/discourse/internal/pages"
	"github.com/agenthands/discourse/internal/render"
	"github.com/agenthands/discourse/internal/ui"
)

const (
	RequestIDHeader = "X-Request-ID"
	Brand           = "Decoding Democracy"
)

type Server struct {
	Registry  *pages.Registry
	Renderer  *ui.Renderer
	AssetsDir string
}

func NewServer(reg *pages.Registry, renderer *ui.Renderer, assetsDir string) *Server {
	return &Server{Registry: reg, Renderer: renderer, AssetsDir: assetsDir}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger())
	r.SetHTMLTemplate(s.Renderer.Template())

	r.GET("/health", s.Health)

	api := r.Group("/api/pages")
	api.GET("", s.ListPages)
	api.GET("/:slug/layout", s.PageLayout)
	api.POST("/:slug/callbacks", s.Callback)
	api.GET("/:slug/figures/:output", s.Figure)

	if s.AssetsDir != "" {
		r.Static("/assets", s.AssetsDir)
	}

	for _, p := range s.Registry.Pages() {
		r.GET(p.Path, s.PageHTML(p))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString("request_id"),
		)
	}
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, pages.ErrUnknownPage),
		errors.Is(err, pages.ErrUnknownOutput),
		errors.Is(err, data.ErrUnknownKeyword),
		errors.Is(err, data.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, render.ErrUnsupportedFigure):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err, "request_id", c.GetString("request_id"))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type PageSummary struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func (s *Server) ListPages(c *gin.Context) {
	list := s.Registry.Pages()
	out := make([]PageSummary, len(list))
	for i, p := range list {
		out[i] = PageSummary{Slug: p.Slug, Name: p.Name, Path: p.Path}
	}
	c.JSON(http.StatusOK, gin.H{"pages": out})
}

type LayoutResponse struct {
	PageSummary
	Layout   ui.Component     `json:"layout"`
	Bindings []ui.BindingView `json:"bindings"`
	Defaults pages.Values     `json:"defaults"`
}

func (s *Server) PageLayout(c *gin.Context) {
	p, err := s.Registry.Lookup(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, LayoutResponse{
		PageSummary: PageSummary{Slug: p.Slug, Name: p.Name, Path: p.Path},
		Layout:      p.Layout(),
		Bindings:    p.BindingViews(),
		Defaults:    p.Defaults(),
	})
}

func (s *Server) Callback(c *gin.Context) {
	p, err := s.Registry.Lookup(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	var req pages.CallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	res, err := p.Call(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Figure runs a figure callback with inputs taken from the query string and
// returns the figure as JSON, or as PNG with ?format=png.
func (s *Server) Figure(c *gin.Context) {
	p, err := s.Registry.Lookup(c.Param("slug"))
	if err != nil {
		fail(c, err)
		return
	}

	inputs := pages.Values{}
	for key, vals := range c.Request.URL.Query() {
		if key == "format" || len(vals) == 0 {
			continue
		}
		inputs[key] = vals[0]
	}

	res, err := p.Call(c.Request.Context(), pages.CallbackRequest{Output: c.Param("output"), Inputs: inputs, State: inputs})
	if err != nil {
		fail(c, err)
		return
	}
	fig, ok := res.Value.(*model.Figure)
	if !ok {
		fail(c, fmt.Errorf("%w: %s is not a figure", pages.ErrUnknownOutput, res.Output))
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, fig)
	case "png":
		var buf bytes.Buffer
		if err := render.PNG(fig, &buf); err != nil {
			fail(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	default:
		fail(c, render.ErrUnsupportedFigure)
	}
}

func (s *Server) PageHTML(p *pages.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := ui.NewView(Brand, p.Name, s.Registry.Nav(p.Slug), p.Layout(),
			"/api/pages/"+p.Slug+"/callbacks", p.BindingViews())
		c.HTML(http.StatusOK, ui.PageTemplate, view)
	}
}
