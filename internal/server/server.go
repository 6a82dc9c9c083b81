// Package server serves previews, compliance reports and the archive of a
// finished theme over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/v0xg/themeforge/internal/compliance"
	"github.com/v0xg/themeforge/internal/export"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/preview"
	"github.com/v0xg/themeforge/internal/theme"
)

// Server holds one immutable theme. Handlers only read it.
type Server struct {
	theme    *theme.Structure
	renderer *preview.Renderer
	report   compliance.Report
	name     string
	log      *logging.Logger
}

// New prepares a server for s. The compliance report is computed once.
func New(s *theme.Structure, name string, log *logging.Logger) *Server {
	v := &compliance.Validator{Log: log}
	return &Server{
		theme:    s,
		renderer: preview.New(s),
		report:   v.Validate(s, nil),
		name:     name,
		log:      log,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"files":     s.theme.Count(),
			"timestamp": time.Now().Unix(),
		})
	})
	router.GET("/preview/:pageType", s.preview)
	router.GET("/compliance", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.report)
	})
	router.GET("/export", s.export)
	return router
}

func (s *Server) preview(c *gin.Context) {
	vp := preview.Viewport(c.DefaultQuery("viewport", string(preview.Desktop)))
	out, err := s.renderer.Render(c.Param("pageType"), vp)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(out))
}

func (s *Server) export(c *gin.Context) {
	data, err := export.Bytes(s.theme)
	if err != nil {
		s.log.Error(err, "export failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+s.name+`.zip"`)
	c.Data(http.StatusOK, "application/zip", data)
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("preview server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("preview server shutting down")
	return srv.Shutdown(shutdownCtx)
}
