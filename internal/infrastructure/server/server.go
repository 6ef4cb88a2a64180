// Package server exposes an analyzer over the HateShield backend HTTP contract.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doeshing/hateshield/internal/ports"
)

const (
	statusMessage   = "HateShield backend running"
	shutdownTimeout = 5 * time.Second
)

type analyzeRequest struct {
	Text string `json:"text"`
}

// Server serves GET / and POST /analyze.
type Server struct {
	analyzer ports.Analyzer
	log      ports.Logger
	engine   *gin.Engine
}

func New(analyzer ports.Analyzer, log ports.Logger) *Server {
	s := &Server{analyzer: analyzer, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/", s.handleStatus)
	r.POST("/analyze", s.handleAnalyze)
	s.engine = r
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("backend listening", map[string]interface{}{"addr": addr, "analyzer": s.analyzer.Name()})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusMessage})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		s.log.Error("analyze request failed", err, map[string]interface{}{"analyzer": s.analyzer.Name()})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result.OriginalText = req.Text
	result.ProcessingTimeMS = time.Since(start).Milliseconds()
	c.JSON(http.StatusOK, result)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request", map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
	}
}

