// Package server serves the portfolio pages, the contact endpoint, the
// background and parallax APIs and the admin dashboard.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server wires the HTTP routes to their collaborators.
type Server struct {
	cfg     *config.Config
	engine  *gin.Engine
	store   *store.Store
	sender  contact.Sender
	limiter *contact.Limiter
	logger  *zap.Logger
	admin   *adminAuth
}

// New builds a Server. The sender is the mail transport for the contact
// form.
func New(cfg *config.Config, st *store.Store, sender contact.Sender, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	admin, err := newAdminAuth(cfg.Admin, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:     cfg,
		engine:  gin.New(),
		store:   st,
		sender:  sender,
		limiter: contact.NewLimiter(cfg.Contact.RatePerMinute, cfg.Contact.Burst),
		logger:  logger.Named("http"),
		admin:   admin,
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.Use(requestLogger(s.logger), gin.Recovery(), s.visitorTracking())
	s.routes()
	return s, nil
}

// PruneLimiter drops contact rate-limit entries for clients that have gone
// quiet and returns how many were removed.
func (s *Server) PruneLimiter() int { return s.limiter.Prune() }

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) routes() {
	r := s.engine
	r.Static("/images", s.cfg.Server.ImagesDir)
	r.Static("/static", s.cfg.Server.StaticDir)

	r.GET("/", s.index)
	r.GET("/projects", s.projects)
	r.GET("/docs", s.docs)
	r.GET("/examples", s.examples)
	r.GET("/examples/:slug", s.example)
	r.GET("/contact-form", s.contactForm)
	r.POST("/contact", s.submitContact)

	r.GET("/backgrounds/:file", s.backgroundPNG)
	api := r.Group("/api")
	api.GET("/backgrounds/:section", s.backgroundJSON)
	api.GET("/parallax/:section", s.parallax)

	r.GET("/healthz", s.health)

	s.adminRoutes()

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Page not found"})
	})
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"profile":    content.Me,
		"about":      content.AboutMe,
		"skills":     content.Skills,
		"education":  content.Schooling,
		"projects":   content.Projects,
		"categories": content.Categories,
		"filter":     content.AllCategory,
		"resume":     content.ResumePath,
		"animation":  content.AnimationPath,
	})
}

// projects returns the project grid for one filter tab as an HTMX fragment.
func (s *Server) projects(c *gin.Context) {
	filter := c.DefaultQuery("filter", content.AllCategory)
	status := http.StatusOK
	if !content.ValidCategory(filter) {
		status = http.StatusBadRequest
	}
	c.HTML(status, "projects.html", gin.H{
		"projects":   content.FilterProjects(content.Projects, filter),
		"categories": content.Categories,
		"filter":     filter,
	})
}

func (s *Server) docs(c *gin.Context) {
	c.HTML(http.StatusOK, "docs.html", gin.H{"sections": content.Docs})
}

func (s *Server) examples(c *gin.Context) {
	c.HTML(http.StatusOK, "examples.html", gin.H{"examples": content.Examples})
}

func (s *Server) example(c *gin.Context) {
	ex, ok := content.LookupExample(c.Param("slug"))
	if !ok {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"error": "Example not found"})
		return
	}
	c.HTML(http.StatusOK, "examples.html", gin.H{"examples": []content.Example{ex}})
}

func (s *Server) health(c *gin.Context) {
	if s.store != nil {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Warn("Request failed", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Debug("Request", fields...)
	}
}
