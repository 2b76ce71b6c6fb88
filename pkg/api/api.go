package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashokpds15/Myself/pkg/apiresponses"
	"github.com/ashokpds15/Myself/pkg/config"
	"github.com/ashokpds15/Myself/pkg/metrics"
	"github.com/ashokpds15/Myself/pkg/ratelimit"
	"github.com/ashokpds15/Myself/pkg/system"
	"github.com/ashokpds15/Myself/pkg/version"
)

type APIController interface {
	BasePath() string
	Register(rg *gin.RouterGroup) error
	Handlers() []gin.HandlerFunc
}

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	gin               *gin.Engine
	config            config.Config
	log               *zap.SugaredLogger
	ready             ReadinessChecker
	publicRateLimiter *ratelimit.IPRateLimiter
	http              *http.Server
	now               func() time.Time
}

func NewServer(log *zap.Logger, cfg config.Config, debug bool, ready ReadinessChecker) *Server {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	accessLog := redactingLogger{log: log}
	engine := gin.New()
	engine.Use(
		ginzap.GinzapWithConfig(accessLog, &ginzap.Config{
			TimeFormat:   time.RFC3339,
			UTC:          true,
			DefaultLevel: zapcore.InfoLevel,
		}),
		ginzap.RecoveryWithZap(accessLog, true),
		system.RequestLogger(log.Sugar().Named("http")),
		cors.New(corsConfig(cfg.Server.AllowedOrigins)),
	)
	if len(cfg.Server.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, ignoring", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	if cfg.Frontend.Dir != "" {
		engine.NoRoute(ServeSPA("/", cfg.Frontend.Dir))
	} else {
		engine.NoRoute(func(c *gin.Context) {
			apiresponses.RespondNotFound(c, "Not found")
		})
	}

	s := &Server{
		gin:    engine,
		config: cfg,
		log:    log.Sugar().Named("server"),
		ready:  ready,
		publicRateLimiter: ratelimit.New(ratelimit.DefaultPublicConfig().
			WithOverrides(cfg.Server.PublicRateLimit, cfg.Server.PublicBurst)),
		now: time.Now,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.ListenAddress,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	engine.GET("api/health", s.getHealth)
	engine.GET("api/ready", s.getReady)
	engine.GET("api/config", s.getConfig)
	engine.GET("api/version", s.getVersion)
	engine.GET("metrics", gin.WrapH(metrics.MetricsHandler()))

	return s
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", system.RequestIDHeader},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// PublicRateLimit returns the per-IP limiter middleware for unauthenticated routes.
func (s *Server) PublicRateLimit() gin.HandlerFunc {
	return s.publicRateLimiter.Middleware()
}

func (s *Server) RegisterAll(controllers []APIController) error {
	r := s.gin.Group("api")
	for _, c := range controllers {
		if err := c.Register(r.Group(c.BasePath(), c.Handlers()...)); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the underlying http.Handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Listen serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Listen() error {
	var err error
	if s.config.Server.TLSCertFile != "" && s.config.Server.TLSKeyFile != "" {
		s.log.Infow("Listening with TLS", "address", s.http.Addr)
		err = s.http.ListenAndServeTLS(s.config.Server.TLSCertFile, s.config.Server.TLSKeyFile)
	} else {
		s.log.Infow("Listening", "address", s.http.Addr)
		err = s.http.ListenAndServe()
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits for in-flight requests,
// including running notification fan-outs, until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.Close()
	return s.http.Shutdown(ctx)
}

// Close stops background workers owned by the server.
func (s *Server) Close() {
	if s.publicRateLimiter != nil {
		s.publicRateLimiter.Stop()
	}
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *Server) getHealth(c *gin.Context) {
	apiresponses.RespondOK(c, HealthResponse{Status: "OK", Timestamp: s.now().UTC()})
}

func (s *Server) getReady(c *gin.Context) {
	if s.ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.ready.Ping(ctx); err != nil {
			system.GetReqLogger(c, s.log).Warnw("Readiness check failed", "error", err)
			apiresponses.RespondServiceUnavailable(c, "database")
			return
		}
	}
	apiresponses.RespondOK(c, gin.H{"status": "ready"})
}

type FrontendConfig struct {
	BrandingName string `json:"brandingName"`
	BackendURL   string `json:"backendURL"`
}

func (s *Server) getConfig(c *gin.Context) {
	apiresponses.RespondOK(c, FrontendConfig{
		BrandingName: s.config.Frontend.BrandingName,
		BackendURL:   s.config.Frontend.BaseURL,
	})
}

func (s *Server) getVersion(c *gin.Context) {
	apiresponses.RespondOK(c, version.GetBuildInfo())
}
