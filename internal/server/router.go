package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/contentforge-backend/internal/handlers"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	DocumentHandler     *handlers.DocumentHandler
	PresentationHandler *handlers.PresentationHandler
	PosterHandler       *handlers.PosterHandler
	CalendarHandler     *handlers.CalendarHandler

	AllowOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "user_id"},
		ExposeHeaders:    []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	router.POST("/auth/save-token", cfg.AuthHandler.SaveToken)

	documents := router.Group("/documents")
	{
		documents.POST("/generate", cfg.DocumentHandler.Generate)
	}

	presentations := router.Group("/presentations")
	{
		presentations.POST("/generate", cfg.PresentationHandler.Generate)
	}

	posters := router.Group("/posters")
	{
		posters.POST("/generate", cfg.PosterHandler.Generate)
	}

	calendar := router.Group("/calendar")
	{
		calendar.POST("/events", cfg.CalendarHandler.CreateEvent)
		calendar.GET("/events", cfg.CalendarHandler.ListEvents)
	}

	return router
}
