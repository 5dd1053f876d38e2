package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kindredapp/kindred-backend/internal/db"
	"github.com/kindredapp/kindred-backend/internal/handlers"
	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/middleware"
	"github.com/kindredapp/kindred-backend/internal/observability"
	"github.com/kindredapp/kindred-backend/internal/repos"
	"github.com/kindredapp/kindred-backend/internal/semantics"
	"github.com/kindredapp/kindred-backend/internal/server"
	"github.com/kindredapp/kindred-backend/internal/services"
	"github.com/kindredapp/kindred-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	serviceToken := utils.GetEnv("SERVICE_TOKEN", "", log)
	embedDim := utils.GetEnvAsInt("EMBED_DIM", semantics.DefaultEmbeddingDim, log)
	port := utils.GetEnv("PORT", "8080", log)

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "kindred-vectorization",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOtel != nil {
		defer func() { _ = shutdownOtel(context.Background()) }()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	psychProfileRepo := repos.NewPsychProfileRepo(thePG, log)
	promptAnswerRepo := repos.NewPromptAnswerRepo(thePG, log)
	profileEmbeddingRepo := repos.NewProfileEmbeddingRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Info("OpenAI client not configured, embeddings use the deterministic fallback", "reason", err)
		openaiClient = nil
	}
	provider := services.NewEmbeddingProvider(log, openaiClient, embedDim)

	pipelineLock, err := services.NewRedisPipelineLock(log)
	if err != nil {
		log.Warn("Redis pipeline lock unavailable, relying on in-process serialization only", "error", err)
		pipelineLock = nil
	} else {
		defer pipelineLock.Close()
	}

	vectorizationService := services.NewVectorizationService(
		log,
		userRepo,
		profileRepo,
		psychProfileRepo,
		promptAnswerRepo,
		profileEmbeddingRepo,
		provider,
		pipelineLock,
	)
	matchScoreService := services.NewMatchScoreService(log, profileEmbeddingRepo)

	// Handlers
	vectorizationHandler := handlers.NewVectorizationHandler(vectorizationService, matchScoreService)
	serviceAuth := middleware.NewServiceAuthMiddleware(log, serviceToken)

	// Router
	router := server.NewRouter(server.RouterConfig{
		VectorizationHandler: vectorizationHandler,
		ServiceAuth:          serviceAuth,
	})

	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
