package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
)

type UserRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	UpdateSemanticTags(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tags []string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateSemanticTags(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tags []string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"semantic_tags": pq.StringArray(tags),
			"updated_at":    time.Now().UTC(),
		}).Error
}
