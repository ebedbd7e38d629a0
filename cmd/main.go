package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/yungbote/contentforge-backend/internal/handlers"
	"github.com/yungbote/contentforge-backend/internal/pkg/logger"
	"github.com/yungbote/contentforge-backend/internal/platform/envutil"
	"github.com/yungbote/contentforge-backend/internal/platform/gcp"
	"github.com/yungbote/contentforge-backend/internal/platform/openai"
	"github.com/yungbote/contentforge-backend/internal/server"
	"github.com/yungbote/contentforge-backend/internal/services"
	"github.com/yungbote/contentforge-backend/internal/slideops"
)

func main() {
	// Logger
	log, err := logger.FromEnv()
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Platform clients
	log.Info("Setting up platform clients from main...")
	openaiClient, err := openai.NewClient(log)
	if err != nil {
		log.Error("Could not init OpenAI client", "error", err)
		os.Exit(1)
	}
	bucketService, err := gcp.NewBucketService(log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}

	// Services
	log.Info("Setting up services from main...")
	tokenStore := services.NewMemoryTokenStore(log)
	imageChecker := slideops.NewImageURLChecker(log, bucketService.Host())
	slideCompiler := slideops.NewCompiler(imageChecker)

	coverCardService, err := services.NewCoverCardService(log, bucketService)
	if err != nil {
		log.Error("Could not init CoverCardService", "error", err)
		os.Exit(1)
	}
	documentService := services.NewDocumentService(log, openaiClient, tokenStore, bucketService)
	presentationService := services.NewPresentationService(log, openaiClient, tokenStore, bucketService, slideCompiler, coverCardService)
	posterService := services.NewPosterService(log, openaiClient, tokenStore, bucketService)
	calendarService := services.NewCalendarService(log, openaiClient, tokenStore)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(tokenStore)
	documentHandler := handlers.NewDocumentHandler(documentService)
	presentationHandler := handlers.NewPresentationHandler(presentationService)
	posterHandler := handlers.NewPosterHandler(posterService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)

	// Router
	log.Info("Setting up router from main...")
	var origins []string
	if raw := envutil.Str("CORS_ALLOW_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		DocumentHandler:     documentHandler,
		PresentationHandler: presentationHandler,
		PosterHandler:       posterHandler,
		CalendarHandler:     calendarHandler,
		AllowOrigins:        origins,
	})

	port := envutil.Str("PORT", "8080")
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
