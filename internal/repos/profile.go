package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
)

type ProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	repoLog := baseLog.With("repo", "ProfileRepo")
	return &profileRepo{db: db, log: repoLog}
}

func (pr *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.Profile
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
