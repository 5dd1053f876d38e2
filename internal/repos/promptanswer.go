package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
)

type PromptAnswerRepo interface {
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PromptAnswer, error)
}

type promptAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPromptAnswerRepo(db *gorm.DB, baseLog *logger.Logger) PromptAnswerRepo {
	repoLog := baseLog.With("repo", "PromptAnswerRepo")
	return &promptAnswerRepo{db: db, log: repoLog}
}

// ListByUserID returns answers in answer order (oldest first). Order matters:
// the compiled profile text and its fingerprint depend on it.
func (par *promptAnswerRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.PromptAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = par.db
	}

	var results []*types.PromptAnswer
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
