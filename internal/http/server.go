// Package http provides the optional HTTP listener for annocheck: health,
// Prometheus metrics, and a small validation API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/annocheck/internal/relevance"
	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

// Server provides HTTP endpoints for annocheck.
type Server struct {
	echo     *echo.Echo
	validate *validate.Service
	logger   *zap.Logger
	addr     string
}

// NewServer creates a new HTTP server listening on addr.
func NewServer(addr string, validateSvc *validate.Service, logger *zap.Logger) (*Server, error) {
	if addr == "" {
		return nil, fmt.Errorf("listen address is required")
	}
	if validateSvc == nil {
		return nil, fmt.Errorf("validate service is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:     e,
		validate: validateSvc,
		logger:   logger.Named("http"),
		addr:     addr,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/validate", s.handleValidate)
}

// ValidateRequest is the request body for POST /api/v1/validate.
type ValidateRequest struct {
	SupportingText  string   `json:"supporting_text"`
	Reference       string   `json:"reference"`
	DiseaseKeywords []string `json:"disease_keywords"`
}

// ValidateResponse is the response body for POST /api/v1/validate.
type ValidateResponse struct {
	Found           bool     `json:"found"`
	SimilarityScore float64  `json:"similarity_score"`
	DiseaseRelevant bool     `json:"disease_relevant"`
	RelevanceScore  float64  `json:"relevance_score"`
	Context         string   `json:"context,omitempty"`
	Suggestions     []string `json:"suggestions,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// HealthResponse is the response body for GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleValidate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid validate request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SupportingText == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "supporting_text field is required")
	}
	if req.Reference == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reference field is required")
	}

	ks := relevance.FromTerms(req.DiseaseKeywords)
	entry := s.validate.ValidateText(c.Request().Context(), req.SupportingText, req.Reference, ks)

	return c.JSON(http.StatusOK, ValidateResponse{
		Found:           entry.Found,
		SimilarityScore: entry.Similarity,
		DiseaseRelevant: entry.Relevant,
		RelevanceScore:  entry.Relevance,
		Context:         entry.Context,
		Suggestions:     entry.Suggestions,
		Error:           entry.Err,
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.addr))
	return s.echo.Start(s.addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
