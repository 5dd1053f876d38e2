package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PsychProfile holds the psychometric questionnaire results. Scale fields are
// 0-10 and nullable: a nil scale means the user never answered that section,
// which is different from scoring 0.
type PsychProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`

	Sociability        *float64 `gorm:"column:sociability" json:"sociability,omitempty"`
	Spontaneity        *float64 `gorm:"column:spontaneity" json:"spontaneity,omitempty"`
	Adventurousness    *float64 `gorm:"column:adventurousness" json:"adventurousness,omitempty"`
	Planning           *float64 `gorm:"column:planning" json:"planning,omitempty"`
	RelationshipIntent *float64 `gorm:"column:relationship_intent" json:"relationship_intent,omitempty"`
	FamilyImportance   *float64 `gorm:"column:family_importance" json:"family_importance,omitempty"`
	CareerImportance   *float64 `gorm:"column:career_importance" json:"career_importance,omitempty"`
	Openness           *float64 `gorm:"column:openness" json:"openness,omitempty"`
	EmotionalStability *float64 `gorm:"column:emotional_stability" json:"emotional_stability,omitempty"`
	Empathy            *float64 `gorm:"column:empathy" json:"empathy,omitempty"`
	Ambition           *float64 `gorm:"column:ambition" json:"ambition,omitempty"`

	ConflictStyle      string `gorm:"column:conflict_style" json:"conflict_style"`
	CommunicationStyle string `gorm:"column:communication_style" json:"communication_style"`
	AttachmentStyle    string `gorm:"column:attachment_style" json:"attachment_style"`
	ChildrenPreference string `gorm:"column:children_preference" json:"children_preference"`
	RelationshipGoal   string `gorm:"column:relationship_goal" json:"relationship_goal"`

	// LoveLanguages is a JSONB map of {words,time,gifts,acts,touch} scores.
	LoveLanguages datatypes.JSON `gorm:"type:jsonb;column:love_languages" json:"love_languages"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (PsychProfile) TableName() string { return "psych_profile" }
