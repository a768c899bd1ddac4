package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

const adminCookie = "admin_token"

// adminAuth holds the per-process session token and the salt used to hash
// visitor IPs.
type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(cfg config.AdminConfig, logger *zap.Logger) (*adminAuth, error) {
	token, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := randomHex(32)
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	logger.Info("Admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		logger.Debug("Admin token (dev only)", zap.String("token", token))
		if cfg.Username == "admin" || cfg.Password == "admin123" {
			logger.Warn("Using default admin credentials. Set ADMIN_USERNAME and ADMIN_PASSWORD.")
		}
	}
	logger.Info("Visitor tracking enabled with hashed IP addresses")

	return &adminAuth{token: token, salt: salt, username: cfg.Username, password: cfg.Password}, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashIP is stable for one IP within a process lifetime.
func (a *adminAuth) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + a.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/healthz", "/api/", "/backgrounds/"}

// visitorTracking records page views with a hashed IP. Static assets, admin
// pages and requests carrying DNT: 1 are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if s.store == nil || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		hashed := s.admin.hashIP(c.ClientIP())
		ua := c.GetHeader("User-Agent")
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.store.RecordVisit(ctx, hashed, ua, path); err != nil {
				s.logger.Error("Error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

func (s *Server) adminRoutes() {
	r := s.engine

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{"title": "Privacy Policy"})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", s.adminLogin)
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		s.logger.Info("Admin logout", zap.String("from", s.admin.hashIP(c.ClientIP())))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())
	admin.GET("/dashboard", s.adminDashboard)
	admin.GET("/api/stats", s.adminStats)
	admin.GET("/visitors", s.adminVisitors)
	admin.GET("/messages", s.adminMessages)
	admin.DELETE("/messages/:id", s.adminDeleteMessage)
	admin.POST("/privacy/delete-visitor-data", s.adminCleanup)
	admin.GET("/export/stats", s.adminExport)
}

func (s *Server) adminLogin(c *gin.Context) {
	from := s.admin.hashIP(c.ClientIP())
	if !s.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
		s.logger.Warn("Failed admin login attempt", zap.String("from", from))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}
	c.SetCookie(adminCookie, s.admin.token, 3600*24, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
	s.logger.Info("Admin login successful", zap.String("from", from))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

var errNoStore = errors.New("no database configured")

func (s *Server) stats(ctx context.Context) (*store.Stats, error) {
	if s.store == nil {
		return nil, errNoStore
	}
	return s.store.Stats(ctx)
}

func (s *Server) adminError(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}

func (s *Server) adminDashboard(c *gin.Context) {
	st, err := s.stats(c.Request.Context())
	if err != nil {
		s.adminError(c, "Failed to load statistics", err)
		return
	}
	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{"stats": st})
}

func (s *Server) adminStats(c *gin.Context) {
	st, err := s.stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) adminVisitors(c *gin.Context) {
	if s.store == nil {
		s.adminError(c, "Failed to load visitors", errNoStore)
		return
	}
	vs, err := s.store.Visitors(c.Request.Context(), 200)
	if err != nil {
		s.adminError(c, "Failed to load visitors", err)
		return
	}
	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{"visitors": vs})
}

func (s *Server) adminMessages(c *gin.Context) {
	if s.store == nil {
		s.adminError(c, "Failed to load messages", errNoStore)
		return
	}
	ms, err := s.store.Messages(c.Request.Context(), 200)
	if err != nil {
		s.adminError(c, "Failed to load messages", err)
		return
	}
	c.HTML(http.StatusOK, "admin-messages.html", gin.H{"messages": ms})
}

func (s *Server) adminDeleteMessage(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errNoStore.Error()})
		return
	}
	id := c.Param("id")
	err := s.store.DeleteMessage(c.Request.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
	case err != nil:
		s.logger.Error("Error deleting message", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
	default:
		s.logger.Info("Message deleted by admin", zap.String("id", id), zap.String("from", s.admin.hashIP(c.ClientIP())))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	}
}

func (s *Server) adminCleanup(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": errNoStore.Error()})
		return
	}
	n, err := s.store.CleanupVisitors(c.Request.Context(), s.cfg.Database.Retention)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete", "removed": n})
}

func (s *Server) adminExport(c *gin.Context) {
	st, err := s.stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	s.logger.Info("Admin stats exported", zap.String("from", s.admin.hashIP(c.ClientIP())))
	c.JSON(http.StatusOK, st)
}
