package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// ProfileEmbedding is the persisted output of the vectorization pipeline.
// Exactly one row per user (upsert keyed on user_id). Owned exclusively by the
// vectorization service; nothing else writes it.
type ProfileEmbedding struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Vector pgvector.Vector `gorm:"type:vector(1536);column:vector" json:"-"`

	// Fingerprint is "v1:" + hex sha256 of the compiled semantic profile text.
	// The version prefix changes when the compiled-text format changes, which
	// forces one recomputation pass for every user.
	Fingerprint string `gorm:"not null;column:fingerprint" json:"fingerprint"`

	// EnrichedVector mirrors Vector until an enrichment step exists.
	EnrichedVector pgvector.Vector `gorm:"type:vector(1536);column:enriched_vector" json:"-"`
	EnrichedAt     time.Time       `gorm:"column:enriched_at" json:"enriched_at"`

	Tags pq.StringArray `gorm:"type:text[];column:tags" json:"tags"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ProfileEmbedding) TableName() string { return "profile_embedding" }
