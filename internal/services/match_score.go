package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/repos"
	"github.com/kindredapp/kindred-backend/internal/semantics"
	"github.com/kindredapp/kindred-backend/internal/types"
)

// MatchScoreService exposes the pairwise similarity signal the match-ranking
// pipeline consumes. It only reads vectors this engine persisted.
type MatchScoreService interface {
	// Score returns the cosine similarity between two users' stored vectors.
	// ok is false when either user has no embedding yet; the score is then 0.
	Score(ctx context.Context, userA, userB uuid.UUID) (score float64, ok bool, err error)
}

type matchScoreService struct {
	log        *logger.Logger
	embeddings repos.ProfileEmbeddingRepo
}

func NewMatchScoreService(log *logger.Logger, embeddings repos.ProfileEmbeddingRepo) MatchScoreService {
	return &matchScoreService{
		log:        log.With("service", "MatchScoreService"),
		embeddings: embeddings,
	}
}

func (s *matchScoreService) Score(ctx context.Context, userA, userB uuid.UUID) (float64, bool, error) {
	embA, err := s.embeddings.GetByUserID(ctx, nil, userA)
	if err != nil {
		return 0, false, fmt.Errorf("load embedding for %s: %w", userA, err)
	}
	embB, err := s.embeddings.GetByUserID(ctx, nil, userB)
	if err != nil {
		return 0, false, fmt.Errorf("load embedding for %s: %w", userB, err)
	}
	if embA == nil || embB == nil {
		return 0, false, nil
	}
	return semantics.CosineSimilarity(comparableVector(embA), comparableVector(embB)), true, nil
}

// comparableVector prefers the enriched vector when one exists; callers never
// branch on which was used.
func comparableVector(emb *types.ProfileEmbedding) []float32 {
	if enriched := emb.EnrichedVector.Slice(); len(enriched) > 0 {
		return enriched
	}
	return emb.Vector.Slice()
}
