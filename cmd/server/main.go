package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"myflix/internal/api"
	"myflix/internal/app/service"
	"myflix/internal/common/security"
	"myflix/internal/domain/repository"
	"myflix/internal/platform/cache"
	"myflix/internal/platform/config"
	"myflix/internal/platform/database"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	// 1. Load Configuration
	cfg := config.Load()
	log.Info().Msg("Configuration loaded")

	ctx := context.Background()

	// 2. Connect to the document store
	db, closeDB, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to MongoDB")
	}
	defer closeDB()
	log.Info().Msg("MongoDB connected")

	// 3. Connect to Redis (catalog read cache)
	movieCache, err := cache.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Redis")
	}
	defer movieCache.Close()
	log.Info().Msg("Redis connected")

	// 4. Initialize Repositories
	userRepo := repository.NewMongoUserRepository(db)
	movieRepo := repository.NewMongoMovieRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Could not create user indexes")
	}
	if err := movieRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Could not create movie indexes")
	}

	// 5. Initialize Security Primitives
	hasher := security.NewPasswordHasher(cfg.BcryptCost)
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher)
	movieService := service.NewMovieService(movieRepo, movieCache, cfg.MovieCacheTTL)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(tokens, authService, userService, movieService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Could not start server")
		}
	}()

	<-stop // Wait for interrupt signal

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
