package router

import (
	"time"

	"github.com/Trend4Media/AffenMitWaffen/internal/auth"
	"github.com/Trend4Media/AffenMitWaffen/internal/handlers"
	"github.com/Trend4Media/AffenMitWaffen/internal/middleware"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// New wires the API routes. Stores and the token service are built once
// at startup and injected here.
func New(users *store.UserStore, tracker *store.TrackerStore, tokens *auth.TokenService, clientURL string) *gin.Engine {
	r := gin.Default()

	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL != "" {
		origins = append(origins, clientURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handlers.AuthHandler{Users: users, Tokens: tokens}
	systemsHandler := &handlers.SystemsHandler{Tracker: tracker}
	adminHandler := &handlers.AdminHandler{Users: users}

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		systems := api.Group("/systems", middleware.RequireAuth(tokens))
		{
			systems.GET("", systemsHandler.ListSystems)
			systems.POST("", systemsHandler.UpsertSystem)
			systems.POST("/initialize", systemsHandler.InitializeSystems)
			systems.PATCH("/:systemId", systemsHandler.UpdateSystem)
			systems.PATCH("/:systemId/planets/:planetId", systemsHandler.UpdatePlanet)
		}

		admin := api.Group("/admin", middleware.RequireAuth(tokens), middleware.RequireAdmin(users))
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PATCH("/users/:id/activate", adminHandler.SetActive)
			admin.PATCH("/users/:id/admin", adminHandler.SetAdmin)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}
	}

	return r
}
