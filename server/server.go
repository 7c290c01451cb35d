package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/rera-insights/config"
	"github.com/imkonsowa/rera-insights/metrics"
	"github.com/imkonsowa/rera-insights/models"
	"github.com/imkonsowa/rera-insights/web"
)

const (
	ListingsFailureDetail  = "An error occurred while fetching RERA listings."
	ValuationFailureDetail = "An error occurred while generating the valuation report."
)

type Analyzer interface {
	FindListings(ctx context.Context, req models.AnalysisRequest) (*models.ListingsResponse, error)
	ValuationReport(ctx context.Context, req models.AnalysisRequest) (*models.ValuationReport, error)
}

type Server struct {
	config   *config.Config
	analyzer Analyzer
	metrics  *metrics.Metrics
	engine   *gin.Engine
}

func New(cfg *config.Config, analyzer Analyzer, m *metrics.Metrics) *Server {
	s := &Server{
		config:   cfg,
		analyzer: analyzer,
		metrics:  m,
	}
	s.engine = s.routes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.metrics), corsMiddleware())
	r.SetHTMLTemplate(web.Templates())

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": s.config.Server.Name + " is running"})
	})

	r.GET("/app", func(ctx *gin.Context) {
		ctx.HTML(http.StatusOK, web.Page, web.PageData{
			ServiceName: s.config.Server.Name,
			MapsAPIKey:  s.config.Client.MapsAPIKey,
			BackendURL:  s.config.Client.BackendURL,
		})
	})

	if s.config.Metrics.Address == "" {
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := r.Group("/api")
	api.POST("/find-rera-listings", s.findListings)
	api.POST("/valuation-report", s.valuationReport)

	return r
}

func (s *Server) findListings(ctx *gin.Context) {
	var req models.AnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, ListingsFailureDetail, req.Address, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err))
		return
	}

	listings, err := s.analyzer.FindListings(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, ListingsFailureDetail, req.Address, err)
		return
	}

	ctx.JSON(http.StatusOK, listings)
}

func (s *Server) valuationReport(ctx *gin.Context) {
	var req models.AnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, ValuationFailureDetail, req.Address, fmt.Errorf("%w: %v", models.ErrInvalidRequest, err))
		return
	}

	report, err := s.analyzer.ValuationReport(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, ValuationFailureDetail, req.Address, err)
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// fail logs the real cause and answers with the fixed detail only.
func fail(ctx *gin.Context, detail, address string, err error) {
	slog.Error("analysis request failed", "route", ctx.FullPath(), "address", address, "error", err)
	ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": detail})
}

// Run serves until ctx is cancelled, then shuts down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	return serve(ctx, s.config.Server.Address(), s.engine, s.config.Server.ShutdownTimeout)
}

// RunMetrics serves /metrics on its own listener; it is a no-op without an address.
func (s *Server) RunMetrics(ctx context.Context) error {
	if s.config.Metrics.Address == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())

	return serve(ctx, s.config.Metrics.Address, mux, s.config.Server.ShutdownTimeout)
}

func serve(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", addr, err)
	}

	return nil
}
