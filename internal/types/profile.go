package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Bio        string `gorm:"type:text;column:bio" json:"bio"`
	Interests  string `gorm:"type:text;column:interests" json:"interests"`
	Occupation string `gorm:"column:occupation" json:"occupation"`
	Education  string `gorm:"column:education" json:"education"`
	Drinking   string `gorm:"column:drinking" json:"drinking"`
	Smoking    string `gorm:"column:smoking" json:"smoking"`
	Children   string `gorm:"column:children" json:"children"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Profile) TableName() string { return "profile" }
