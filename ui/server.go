// Package ui exposes the analysis engine over a thin request/response HTTP
// surface for the reporting and recommendation collaborators. Dashboard push
// transports are deliberately out of scope.
package ui

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"convsig/app"
	"convsig/internal"
	"convsig/internal/hypothesis"
)

// Server represents the web server fronting the analysis engine
type Server struct {
	router  *gin.Engine
	service *app.AnalysisService
	suite   *hypothesis.Suite
	http    *http.Server
}

// NewServer creates a new web server instance around an analysis service.
func NewServer(service *app.AnalysisService) *Server {
	opts := service.Options()
	s := &Server{
		router:  gin.Default(),
		service: service,
		suite: hypothesis.NewSuite(hypothesis.Config{
			Alpha:              opts.AlphaLevel,
			BootstrapSamples:   opts.BootstrapSamples,
			PermutationSamples: opts.PermutationSamples,
		}),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/analyze/batch", s.handleAnalyzeBatch)
		api.POST("/analyze/report", s.handleAnalyzeReport)
		api.POST("/analyze/export", s.handleAnalyzeExport)

		api.POST("/tests/welch", s.handleWelch)
		api.POST("/tests/mannwhitney", s.handleMannWhitney)
		api.POST("/tests/wilson", s.handleWilson)
		api.POST("/tests/permutation", s.handlePermutation)
		api.POST("/tests/bootstrap", s.handleBootstrap)
		api.POST("/corrections", s.handleCorrections)

		api.GET("/cache/stats", s.handleCacheStats)
		api.DELETE("/cache", s.handleCacheInvalidate)
	}
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		internal.DefaultLogger.Info("significance engine listening on %s", addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"cache":  s.service.CacheStats(),
	})
}
