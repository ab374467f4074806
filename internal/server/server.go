package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"gator-threads/internal/handlers"
	"gator-threads/internal/middleware"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Config holds what the HTTP server needs beyond the handlers.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Debug           bool
}

type APIServer struct {
	config Config
	router *gin.Engine
	server *http.Server
}

// NewAPIServer builds the gin engine, installs middleware and registers the
// handler route table. It fails if the table is ambiguous.
func NewAPIServer(cfg Config, h *handlers.Server) (*APIServer, error) {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestLogger(h.Metrics))
	router.Use(gin.CustomRecovery(recoverJSON))
	router.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      cfg.Debug,
	}))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	if err := handlers.Register(router, h.Routes()); err != nil {
		return nil, fmt.Errorf("invalid route table: %w", err)
	}

	s := &APIServer{
		config: cfg,
		router: router,
	}
	s.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) Addr() string {
	return s.server.Addr
}

// Run serves until ctx is canceled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *APIServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *APIServer) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logrus.WithField("address", listener.Addr().String()).Info("starting http API server")
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start http API server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("turning down http API server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("error during HTTP API server shutdown")
			return err
		}
		logrus.Info("http API server stopped")
		return nil
	})

	return g.Wait()
}

func recoverJSON(c *gin.Context, recovered interface{}) {
	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"panic":      recovered,
	}).Error("recovered from panic")
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
