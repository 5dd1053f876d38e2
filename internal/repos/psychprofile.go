package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
)

type PsychProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PsychProfile, error)
}

type psychProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPsychProfileRepo(db *gorm.DB, baseLog *logger.Logger) PsychProfileRepo {
	repoLog := baseLog.With("repo", "PsychProfileRepo")
	return &psychProfileRepo{db: db, log: repoLog}
}

func (pr *psychProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.PsychProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PsychProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}
