// Package http provides the API server, router setup and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	docHTTP "github.com/allisson/docshare/internal/document/http"
	userHTTP "github.com/allisson/docshare/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	db     *sql.DB
}

// NewServer creates a new API server. The router starts empty; call
// SetupRouter before Start to register routes.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		logger: logger,
		db:     db,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and per-route middleware the router needs.
// Nil middleware entries are skipped, so optional features (CORS, rate
// limiting, HTTP metrics) stay out of the chain when disabled.
type RouterConfig struct {
	UserHandler     *userHTTP.UserHandler
	DocumentHandler *docHTTP.DocumentHandler

	// Authentication resolves bearer values to users without aborting;
	// RequireUser and RequireVerified gate the routes that need an identity.
	Authentication  gin.HandlerFunc
	RequireUser     gin.HandlerFunc
	RequireVerified gin.HandlerFunc

	RateLimit   gin.HandlerFunc
	HTTPMetrics gin.HandlerFunc

	CORSEnabled      bool
	CORSAllowOrigins string
}

// SetupRouter builds the gin engine and registers every route.
//
// All /v1 routes run behind AuthenticationMiddleware so the domain policy can
// distinguish anonymous from identified callers. Mutating document routes sit
// behind the verified gate; the user verification request route only requires
// an identity, since an unverified account is exactly who calls it.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if cfg.HTTPMetrics != nil {
		router.Use(cfg.HTTPMetrics)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(cfg.Authentication)
	if cfg.RateLimit != nil {
		v1.Use(cfg.RateLimit)
	}

	// Account lifecycle. The token-bearing confirmation routes are open: the
	// emailed token value is the credential.
	v1.POST("/users", cfg.UserHandler.RegisterHandler)
	v1.POST("/login", cfg.UserHandler.LoginHandler)
	v1.GET("/users/:id", cfg.UserHandler.GetUserHandler)
	v1.PUT("/users/verification", cfg.UserHandler.ConfirmVerificationHandler)
	v1.POST("/users/password", cfg.UserHandler.RequestPasswordResetHandler)
	v1.PUT("/users/password", cfg.UserHandler.ResetPasswordHandler)

	me := v1.Group("")
	me.Use(cfg.RequireUser)
	me.GET("/me", cfg.UserHandler.MeHandler)
	me.PUT("/me", cfg.UserHandler.UpdateMeHandler)
	me.DELETE("/me", cfg.UserHandler.DeleteMeHandler)
	me.POST("/users/verification", cfg.UserHandler.RequestVerificationHandler)

	// Document reads are open; the authorization policy decides per document.
	v1.GET("/documents", cfg.DocumentHandler.ListHandler)
	v1.GET("/documents/:id", cfg.DocumentHandler.GetHandler)

	docs := v1.Group("/documents")
	docs.Use(cfg.RequireVerified)
	docs.POST("", cfg.DocumentHandler.CreateHandler)
	docs.PUT("/:id", cfg.DocumentHandler.UpdateContentHandler)
	docs.PUT("/:id/privacy", cfg.DocumentHandler.UpdatePrivacyHandler)
	docs.PUT("/:id/members/:userId", cfg.DocumentHandler.AddMemberHandler)
	docs.DELETE("/:id/members/:userId", cfg.DocumentHandler.RemoveMemberHandler)
	docs.DELETE("/:id", cfg.DocumentHandler.DeleteHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can take traffic, checking the
// database connection.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK
	overall := "ready"

	if s.db == nil {
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("readiness database ping failed", slog.String("error", err.Error()))
		components["database"] = "error"
		status = http.StatusServiceUnavailable
		overall = "not_ready"
	} else {
		components["database"] = "ok"
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// GetHandler returns the configured router, or nil before SetupRouter runs.
// Used by tests to mount the full route table on an httptest server.
func (s *Server) GetHandler() http.Handler {
	if s.router == nil {
		return nil
	}
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
