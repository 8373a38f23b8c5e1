package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/ai"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/attractions"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/auth"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/itinerary"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/share"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/trip"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/weather"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/middleware"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/pkg/config"
)

type AppHandlers struct {
	Auth    *auth.Handler
	Trip    *trip.Handler
	Share   *share.Handler
	Weather *weather.Handler
}

// Setup wires repositories, services and handlers, then registers routes.
func Setup(r *gin.Engine, dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) error {
	handlers, err := setupDependencies(dbPool, cfg, log)
	if err != nil {
		return err
	}
	setupRouter(r, handlers, cfg, log)
	return nil
}

func setupDependencies(dbPool *pgxpool.Pool, cfg *config.Config, log *zap.Logger) (*AppHandlers, error) {
	gateway, err := ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	searchService := attractions.NewService(gateway, log)
	generatorService := itinerary.NewService(gateway, log)

	shareRepo := share.NewRepository(dbPool, log)
	shareService := share.NewService(shareRepo, log)

	tripService := trip.NewService(searchService, generatorService, shareService, log)
	tripManager := trip.NewManager()

	weatherService := weather.NewService(log)
	sessionManager := auth.NewSessionManager(cfg.LoginDelay, log)

	sessionManager.Subscribe(func(s models.Session) {
		log.Info("Session changed", zap.String("kind", string(s.Kind)), zap.String("uid", s.UID))
	})

	// Logging out drops the planner state along with the session.
	return &AppHandlers{
		Auth:    auth.NewHandler(sessionManager, cfg.JWT, log, tripManager.Drop),
		Trip:    trip.NewHandler(tripService, shareService, tripManager, log),
		Share:   share.NewHandler(shareService, log),
		Weather: weather.NewHandler(weatherService, log),
	}, nil
}

func setupRouter(r *gin.Engine, h *AppHandlers, cfg *config.Config, log *zap.Logger) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/google", h.Auth.LoginWithGoogle)
		authGroup.POST("/microsoft", h.Auth.LoginWithMicrosoft)
		authGroup.POST("/guest", h.Auth.LoginAsGuest)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/session", h.Auth.Session)
	}

	// Shared links and weather are public: the link itself is the capability.
	public := r.Group("/api")
	{
		public.GET("/shared/:id", h.Share.GetShared)
		public.GET("/weather", h.Weather.GetWeather)
	}

	// The planner requires a signed-in or guest session.
	planner := r.Group("/api")
	planner.Use(middleware.AuthMiddleware(cfg.JWT))
	{
		planner.POST("/search", h.Trip.Search)
		planner.GET("/trip", h.Trip.GetTrip)
		planner.POST("/trip/select", h.Trip.Toggle)
		planner.POST("/trip/generate", h.Trip.Generate)
		planner.POST("/trip/reset", h.Trip.Reset)
		planner.GET("/trip/pdf", h.Trip.ExportPDF)
		planner.POST("/share", h.Trip.Share)
	}

	log.Info("Routes registered")
}
