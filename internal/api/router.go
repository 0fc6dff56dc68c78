package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"

	"myflix/internal/api/handler"
	"myflix/internal/api/middleware"
	"myflix/internal/app/service"
	"myflix/internal/common/security"
)

func NewRouter(
	tokens *security.TokenManager,
	authService *service.AuthService,
	userService *service.UserService,
	movieService *service.MovieService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	// Parses a token from "Authorization: Bearer T" and stores the
	// result in the context; enforcement happens in Authenticator.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Registration and login are unauthenticated by necessity.
	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	// Account routes (authenticated, self-scoped)
	userHandler := handler.NewUserHandler(userService)
	r.Route("/users/{username}", func(ur chi.Router) {
		ur.Use(middleware.Authenticator)
		userHandler.RegisterRoutes(ur)
	})

	// Catalog routes (listing public, the rest authenticated)
	movieHandler := handler.NewMovieHandler(movieService)
	r.Route("/movies", movieHandler.RegisterRoutes)

	return r
}
