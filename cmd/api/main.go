package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/touristtalks/backend/internal/adapters/cache"
	"github.com/touristtalks/backend/internal/adapters/database"
	"github.com/touristtalks/backend/internal/api/handlers"
	"github.com/touristtalks/backend/internal/api/middleware"
	"github.com/touristtalks/backend/internal/api/routes"
	"github.com/touristtalks/backend/internal/application/services"
	"github.com/touristtalks/backend/internal/domain/providers"
	"github.com/touristtalks/backend/internal/domain/repositories"
	"github.com/touristtalks/backend/internal/infrastructure/clients/postgres"
	"github.com/touristtalks/backend/internal/infrastructure/clients/redis"
	"github.com/touristtalks/backend/internal/infrastructure/observability"
	"github.com/touristtalks/backend/internal/infrastructure/security"
	"github.com/touristtalks/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Logging.Env, cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Str("database", cfg.Database.Database).Msg("PostgreSQL client initialized")

	// Redis is optional; without it every read goes to PostgreSQL
	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	// Initialize adapters
	var placeRepo repositories.PlaceRepository = database.NewPlaceAdapter(pgClient)
	var revokedRepo repositories.RevokedTokenRepository = database.NewRevokedTokenAdapter(pgClient)
	if cacheProvider != nil {
		placeRepo = database.NewCachedPlaceAdapter(placeRepo, cacheProvider)
		revokedRepo = database.NewCachedRevokedTokenAdapter(revokedRepo, cacheProvider)
	}
	reviewRepo := database.NewReviewAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	tokens, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token issuer")
	}
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Initialize services
	placeService := services.NewPlaceService(placeRepo)
	reviewService := services.NewReviewService(reviewRepo, userRepo)
	userService := services.NewUserService(userRepo, hasher)
	authService := services.NewAuthService(userRepo, revokedRepo, hasher, tokens, cfg.Auth.EnforceRevocation)

	router := routes.NewRouter(
		handlers.NewHealthHandler(pgClient),
		handlers.NewPlaceHandler(placeService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewUserHandler(userService),
		handlers.NewAuthHandler(authService, userService),
		middleware.NewAuthGuard(authService, metrics),
		metrics,
		cfg.Server.AllowedOrigins,
		cfg.RateLimit,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
