// Package server contains the HTTP handlers for the team and friendship API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "foilctf/docs" // swagger docs
	"foilctf/internal/cache"
	"foilctf/internal/config"
	"foilctf/internal/database"
	"foilctf/internal/featureflags"
	"foilctf/internal/middleware"
	"foilctf/internal/models"
	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"
	"foilctf/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	app               *fiber.App
	promMiddleware    *fiberprometheus.FiberPrometheus
	store             *repository.Store
	notifier          *notifications.Notifier
	featureFlags      *featureflags.Manager
	teamService       *service.TeamService
	membershipService *service.MembershipService
	friendService       *service.FriendService
	notificationService *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil redis client disables notification publishing; rows are still written.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("foilctf-user"),
		store:          repository.NewStore(db),
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	dispatcher := notifications.NewDispatcher(server.notifier)
	server.teamService = service.NewTeamService(server.store, dispatcher)
	server.membershipService = service.NewMembershipService(server.store, dispatcher, server.featureFlags)
	server.friendService = service.NewFriendService(server.store, dispatcher)
	server.notificationService = service.NewNotificationService(server.store)

	for _, w := range server.featureFlags.Warnings() {
		observability.GlobalLogger.Warn("feature flag config", slog.String("detail", w))
	}

	return server, nil
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:      "FoilCTF User API",
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))

	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)

	protected := api.Group("", middleware.AuthRequired, middleware.ContextMiddleware())

	// Team routes. Fixed segments are registered before /:teamName.
	// Team names never contain "/", so only single-segment literals can
	// shadow one.
	teams := protected.Group("/teams")
	teams.Post("/", s.CreateTeam)
	teams.Get("/", s.ListTeams)
	teams.Patch("/", s.UpdateTeam)
	teams.Get("/requests/sent", s.GetSentJoinRequests)
	teams.Get("/:teamName/members", s.GetTeamMembers)
	teams.Delete("/:teamName/members/me", s.LeaveTeam)
	teams.Delete("/:teamName/members/:username", s.DeleteMember)
	teams.Patch("/:teamName/captain/:username", s.HandOverLeadership)
	teams.Get("/:teamName/requests", s.GetTeamJoinRequests)
	teams.Post("/:teamName/requests", s.SendJoinRequest)
	teams.Delete("/:teamName/requests", s.CancelJoinRequest)
	teams.Post("/:teamName/requests/:username/accept", s.AcceptJoinRequest)
	teams.Post("/:teamName/requests/:username/decline", s.DeclineJoinRequest)
	teams.Get("/:teamName", s.GetTeam)
	teams.Delete("/:teamName", s.DeleteTeam)

	// Caller-scoped reads
	me := protected.Group("/me")
	me.Get("/team", s.GetMyTeam)
	me.Get("/notifications", s.GetNotifications)
	me.Get("/feature-flags", s.GetFeatureFlags)

	// Friend routes
	friends := protected.Group("/friends")
	friends.Get("/", s.GetFriends)
	friends.Get("/requests", s.GetFriendRequests)
	friends.Get("/requests/sent", s.GetSentFriendRequests)
	friends.Post("/requests/:username", s.SendFriendRequest)
	friends.Delete("/requests/:username", s.CancelFriendRequest)
	friends.Post("/requests/:username/accept", s.AcceptFriendRequest)
	friends.Post("/requests/:username/reject", s.RejectFriendRequest)
	friends.Get("/status/:username", s.GetFriendshipStatus)
	friends.Delete("/:username", s.RemoveFriend)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only degrades
// notification delivery, so it is reported but does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

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
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	observability.GlobalLogger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.GlobalLogger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			observability.GlobalLogger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			observability.GlobalLogger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	observability.GlobalLogger.Info("server shutdown complete")
	return nil
}
