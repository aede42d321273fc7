// Package main runs the concertation platform HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/agora-concertations/backend/config"
	"github.com/agora-concertations/backend/internal/auth"
	"github.com/agora-concertations/backend/internal/bookings"
	"github.com/agora-concertations/backend/internal/contributions"
	"github.com/agora-concertations/backend/internal/events"
	"github.com/agora-concertations/backend/internal/export"
	"github.com/agora-concertations/backend/internal/middleware"
	"github.com/agora-concertations/backend/pkg/database"
	"github.com/agora-concertations/backend/pkg/queue"
	"github.com/agora-concertations/backend/pkg/redis"
	"github.com/agora-concertations/backend/pkg/response"
	"github.com/agora-concertations/backend/pkg/storage"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ExportsBucket:        cfg.AWS.ExportsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	jobQueue := queue.NewQueue(rdb.Client, logger)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, logger)

	// Events
	eventRepo := events.NewRepository(pool)
	eventHandler := events.NewHandler(eventRepo, authRepo, rdb, logger)

	// Bookings
	bookingRepo := bookings.NewRepository(pool)
	bookingHandler := bookings.NewHandler(bookingRepo, eventRepo, authRepo, jobQueue, logger)

	// Contributions
	contributionRepo := contributions.NewRepository(pool)
	contributionHandler := contributions.NewHandler(contributionRepo, eventRepo, logger)

	// Booking exports
	exportHandler := export.NewHandler(bookingRepo, s3Client, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Auth (public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}
	router.GET("/auth/me", middleware.JWT(jwtService), authHandler.Me)

	// Public browsing. Detail pages are reachable by direct link whatever the
	// publication status; only the listings are restricted to public items.
	router.GET("/events", eventHandler.List)
	router.GET("/events/:id", eventHandler.Detail)
	router.GET("/events/:id/contributions", contributionHandler.ListByEvent)
	router.GET("/contributions", contributionHandler.ListPublic)
	router.GET("/contributions/:id", middleware.OptionalJWT(jwtService), contributionHandler.Detail)

	// Participant (JWT required)
	participant := router.Group("")
	participant.Use(middleware.JWT(jwtService))
	{
		participant.POST("/events/:id/register", bookingHandler.Register)
		participant.GET("/events/:id/my-booking", bookingHandler.MyBooking)
		participant.DELETE("/bookings/:id", bookingHandler.Unregister)
	}

	// Organizer (JWT + organizer role; per-event routes additionally scoped to
	// events the actor manages, mismatches yield 404)
	organizer := router.Group("/organizer")
	organizer.Use(middleware.JWT(jwtService), middleware.RequireOrganizer())
	{
		organizer.GET("/events", eventHandler.Dashboard)
		organizer.POST("/events", eventHandler.Create)

		managed := organizer.Group("/events/:id")
		managed.Use(events.RequireManageAccess(eventRepo))
		{
			managed.GET("", eventHandler.ManagedDetail)
			managed.PATCH("", eventHandler.Update)
			managed.POST("/organizers", eventHandler.AddOrganizer)
			managed.GET("/bookings", bookingHandler.ListByEvent)
			managed.GET("/contributions", contributionHandler.ListManaged)
			managed.POST("/contributions", contributionHandler.Create)
			managed.GET("/bookings/export", exportHandler.Download)
			managed.POST("/bookings/export/archive", exportHandler.Archive)
		}

		organizer.POST("/bookings/:id/accept", bookingHandler.Accept)
		organizer.POST("/bookings/:id/decline", bookingHandler.Decline)
		organizer.PATCH("/contributions/:id", contributionHandler.Update)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
