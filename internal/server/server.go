// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"memeverse/internal/bootstrap"
	"memeverse/internal/caption"
	"memeverse/internal/config"
	"memeverse/internal/featureflags"
	"memeverse/internal/feed"
	"memeverse/internal/hosting"
	"memeverse/internal/memesource"
	"memeverse/internal/middleware"
	"memeverse/internal/service"
	"memeverse/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager

	memeSvc        *service.MemeService
	commentSvc     *service.CommentService
	uploadSvc      *service.UploadService
	profileSvc     *service.ProfileService
	leaderboardSvc *service.LeaderboardService
	captionSvc     *service.CaptionService
	renderer       *caption.Renderer
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{
		SeedDemoData: cfg.SeedDemoData,
	})
	if err != nil {
		return nil, err
	}

	source := memesource.NewHTTPSource(cfg.MemeAPIURL)
	host := hosting.NewHTTPHost(cfg.ImageHostURL, cfg.ImageHostKey)

	return NewServerWithDeps(cfg, db, redisClient, source, host)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and wants
// to substitute the outbound clients.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, source memesource.Source, host hosting.Host) (*Server, error) {
	renderer, err := caption.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("caption renderer init failed: %w", err)
	}

	prom := middleware.InitMetrics("memeverse-api")

	kv := store.NewKV(db)
	interactions := store.NewInteractions(kv)

	normalizer := memesource.NewNormalizer(rand.NewSource(time.Now().UnixNano()), time.Now)
	composer := feed.NewComposer(rand.NewSource(time.Now().UnixNano()))

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		renderer:       renderer,
	}
	server.memeSvc = service.NewMemeService(source, normalizer, composer, interactions)
	server.commentSvc = service.NewCommentService(interactions, server.memeSvc, time.Now)
	server.uploadSvc = service.NewUploadService(renderer, host, interactions, time.Now)
	server.profileSvc = service.NewProfileService(interactions)
	server.leaderboardSvc = service.NewLeaderboardService(server.memeSvc, nil)
	server.captionSvc = service.NewCaptionService(rand.NewSource(time.Now().UnixNano()))

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Distributed tracing (before the context middleware so the trace ID
	// local is populated when it runs)
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context middleware to propagate request and trace IDs
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "MemeVerse Metrics Dashboard",
	}))

	// Meme browsing
	memes := api.Group("/memes")
	memes.Get("/", s.GetFeed)
	memes.Get("/liked", s.GetLikedMemes)
	// Specific /:id/:resource routes BEFORE generic /:id route
	memes.Get("/:id/comments", s.GetComments)
	memes.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	memes.Post("/:id/like", s.ToggleLike)
	memes.Get("/:id", s.GetMeme)

	// Uploads
	uploads := api.Group("/uploads")
	uploads.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "upload"), s.UploadMeme)
	uploads.Get("/", s.GetUploads)
	uploads.Delete("/:id", s.DeleteUpload)

	// Profile
	profile := api.Group("/profile")
	profile.Get("/", s.GetProfile)
	profile.Put("/", s.UpdateProfile)

	// Leaderboard
	api.Get("/leaderboard", s.GetLeaderboard)

	// Feature flags
	api.Get("/feature-flags", s.GetFeatureFlags)

	// Caption tooling
	captions := api.Group("/captions")
	captions.Get("/suggest", s.SuggestCaption)
	captions.Post("/preview", middleware.RateLimit(
		s.redis, 20, time.Minute, "caption_preview"), s.PreviewCaption)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is a soft dependency: the app degrades to uncached reads.
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-held resources
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}
