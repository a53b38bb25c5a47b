// Package api exposes the gateway's HTTP surface: the shutter command
// endpoint plus device listing, status and health routes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shutter-control/shuttergw/internal/models"
	"github.com/shutter-control/shuttergw/pkg/identity"
)

// ShutterController is the service surface the HTTP layer depends on.
type ShutterController interface {
	Send(ctx context.Context, pattern, command string) (*models.TransmitResult, error)
	Devices() []models.DeviceSummary
	Stats() []models.DeviceStats
}

// Server represents the HTTP API server.
type Server struct {
	app        *gin.Engine
	httpServer *http.Server
	shutter    ShutterController
	deviceInfo identity.DeviceInfoInterface
	logger     zerolog.Logger
	startTime  time.Time
}

// NewServer creates a new API server with routes and middleware registered.
func NewServer(shutter ShutterController, deviceInfo identity.DeviceInfoInterface, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		app:        gin.New(),
		shutter:    shutter,
		deviceInfo: deviceInfo,
		logger:     logger,
		startTime:  time.Now(),
	}

	s.app.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	s.app.Use(cors.New(corsConfig))

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := s.app.Group("/api/v1")
	{
		api.POST("/commands", s.handleCommand)
		api.GET("/devices", s.handleDevices)
		api.GET("/status", s.handleStatus)
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start(addr string, readTimeout, writeTimeout, idleTimeout time.Duration) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	s.logger.Info().Str("addr", addr).Msg("HTTP server listening")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.app
}
