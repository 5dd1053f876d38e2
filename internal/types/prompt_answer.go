package types

import (
	"time"

	"github.com/google/uuid"
)

// PromptAnswer is one answered profile prompt. Tag and Label feed the semantic
// profile text; Value is the raw answer value used in derived tag composites.
type PromptAnswer struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	PromptID uuid.UUID `gorm:"type:uuid;not null;index" json:"prompt_id"`

	Value    string  `gorm:"not null;column:value" json:"value"`
	Label    string  `gorm:"column:label" json:"label"`
	Tag      string  `gorm:"column:tag" json:"tag"`
	Category string  `gorm:"column:category" json:"category"`
	Weight   float64 `gorm:"not null;default:1;column:weight" json:"weight"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PromptAnswer) TableName() string { return "prompt_answer" }
