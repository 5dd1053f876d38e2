package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kindredapp/kindred-backend/internal/logger"
	"github.com/kindredapp/kindred-backend/internal/types"
)

type ProfileEmbeddingRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ProfileEmbedding, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.ProfileEmbedding) error
}

type profileEmbeddingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileEmbeddingRepo(db *gorm.DB, baseLog *logger.Logger) ProfileEmbeddingRepo {
	repoLog := baseLog.With("repo", "ProfileEmbeddingRepo")
	return &profileEmbeddingRepo{db: db, log: repoLog}
}

func (per *profileEmbeddingRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.ProfileEmbedding, error) {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	var result types.ProfileEmbedding
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

// Upsert writes vector, fingerprint, enriched vector, enrichment time and tags
// in a single statement keyed on user_id. Vector and fingerprint must never be
// updated separately: a stale fingerprint next to a fresh vector (or the other
// way around) would wrongly suppress or force future recomputation.
func (per *profileEmbeddingRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.ProfileEmbedding) error {
	transaction := tx
	if transaction == nil {
		transaction = per.db
	}

	if row == nil {
		return errors.New("nil profile embedding row")
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"vector", "fingerprint", "enriched_vector", "enriched_at", "tags", "updated_at",
			}),
		}).
		Create(row).Error
}
