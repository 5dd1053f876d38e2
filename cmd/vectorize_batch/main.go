package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/kindredapp/kindred-backend/internal/db"
	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/repos"
	"github.com/kindredapp/kindred-backend/internal/semantics"
	"github.com/kindredapp/kindred-backend/internal/services"
	"github.com/kindredapp/kindred-backend/internal/utils"
)

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

// One-shot batch vectorization over an explicit list of user ids. Selection
// policy stays with the caller; there is no implicit "all users" mode.
func main() {
	var users idList
	flag.Var(&users, "user", "user id to vectorize (repeatable)")
	flag.Parse()

	ids := make([]uuid.UUID, 0, len(users))
	for _, s := range users {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err == nil && id != uuid.Nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		fmt.Println("no valid -user values provided")
		os.Exit(1)
	}

	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	userRepo := repos.NewUserRepo(thePG, log)
	profileRepo := repos.NewProfileRepo(thePG, log)
	psychProfileRepo := repos.NewPsychProfileRepo(thePG, log)
	promptAnswerRepo := repos.NewPromptAnswerRepo(thePG, log)
	profileEmbeddingRepo := repos.NewProfileEmbeddingRepo(thePG, log)

	openaiClient, err := services.NewOpenAIClient(log)
	if err != nil {
		log.Info("OpenAI client not configured, embeddings use the deterministic fallback", "reason", err)
		openaiClient = nil
	}
	embedDim := utils.GetEnvAsInt("EMBED_DIM", semantics.DefaultEmbeddingDim, log)
	provider := services.NewEmbeddingProvider(log, openaiClient, embedDim)

	vectorizationService := services.NewVectorizationService(
		log,
		userRepo,
		profileRepo,
		psychProfileRepo,
		promptAnswerRepo,
		profileEmbeddingRepo,
		provider,
		nil,
	)

	summary, err := vectorizationService.VectorizeBatch(context.Background(), ids)
	if err != nil {
		log.Error("Batch run failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("batch complete: total=%d processed=%d skipped=%d not_found=%d failed=%d\n",
		summary.Total, summary.Processed, summary.Skipped, summary.NotFound, summary.Failed)
}
