package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inarawedding/site-server-go/internal/auth"
	"github.com/inarawedding/site-server-go/internal/config"
	"github.com/inarawedding/site-server-go/internal/database"
	"github.com/inarawedding/site-server-go/internal/handler"
	"github.com/inarawedding/site-server-go/internal/middleware"
	"github.com/inarawedding/site-server-go/internal/redis"
	"github.com/inarawedding/site-server-go/internal/repository"
	"github.com/inarawedding/site-server-go/internal/service"
	"github.com/inarawedding/site-server-go/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), config.DBPingTimeout)
	if err := db.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	cancel()
	log.Info().Msg("database connected")

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected")

	var store storage.ObjectStore
	if cfg.StorageConfigured() {
		minioStore, err := storage.NewMinioStore(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to init object storage")
		}
		bucketCtx, bucketCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := minioStore.EnsureBucket(bucketCtx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure storage bucket")
		}
		bucketCancel()
		store = minioStore
		log.Info().Str("bucket", minioStore.Bucket()).Msg("object storage connected")
	} else {
		log.Warn().Msg("object storage not configured: image uploads disabled")
	}

	adminRepo := repository.NewAdminRepository(db.DB)
	templateRepo := repository.NewTemplateRepository(db.DB)
	hantaranRepo := repository.NewHantaranRepository(db.DB)
	serviceRepo := repository.NewWeddingServiceRepository(db.DB)
	postRepo := repository.NewBlogPostRepository(db.DB)
	testimonialRepo := repository.NewTestimonialRepository(db.DB)

	codec := auth.NewTokenCodec(cfg.AdminTokenSecret, config.SessionTTL)

	authService := service.NewAuthService(adminRepo, codec)
	catalogService := service.NewCatalogService(templateRepo, hantaranRepo, serviceRepo)
	blogService := service.NewBlogService(postRepo, testimonialRepo)
	adminService := service.NewAdminService(
		adminRepo, templateRepo, hantaranRepo, serviceRepo, postRepo, testimonialRepo,
	)

	isProduction := cfg.IsProduction()

	gate := middleware.NewSessionGate(codec)
	loginRateLimiter := middleware.NewLoginRateLimiter(redisClient.Client)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	// Image uploads are the largest accepted bodies.
	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(config.MaxUploadBytes)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)

	authHandler := handler.NewAuthHandler(authService, loginRateLimiter, isProduction)
	publicHandler := handler.NewPublicHandler(catalogService, blogService)
	adminHandler := handler.NewAdminHandler(adminService, catalogService, blogService)
	uploadHandler := handler.NewUploadHandler(store, cfg.StoragePublicBaseURL)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.ServerRequestTimeout))
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Route("/admin", func(r chi.Router) {
			r.Use(csrfMiddleware.Handler)
			r.Use(gate.API)
			r.Post("/uploads", uploadHandler.Upload)
			r.Mount("/", adminHandler.Routes())
		})

		r.Mount("/", publicHandler.Routes())
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(securityHeadersMiddleware.Handler)
		r.Use(csrfMiddleware.Handler)
		r.Use(gate.Pages)

		spa := handler.NewSPAHandler("static/admin")
		r.Handle("/", spa)
		r.Handle("/*", spa)
	})

	server := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     r,
		ReadTimeout: config.ServerReadTimeout,
		IdleTimeout: config.ServerIdleTimeout,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
