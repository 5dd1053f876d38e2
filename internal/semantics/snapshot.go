package semantics

import (
	"github.com/google/uuid"
)

// ProfileSnapshot is the assembled, read-only view of everything about a user
// that feeds vectorization. It is built per pipeline run and never persisted.
// Absent optional fields stay empty/nil and are omitted from the compiled
// text rather than rendered as placeholders.
type ProfileSnapshot struct {
	UserID uuid.UUID

	Bio        string
	Interests  string
	Occupation string
	Education  string
	Drinking   string
	Smoking    string
	Children   string

	Psych *PsychSnapshot

	// Answers are in answer order (oldest first); the compiled text depends
	// on this order.
	Answers []AnswerSnapshot

	// ExistingTags is the user's current denormalized tag list.
	ExistingTags []string
}

// PsychSnapshot mirrors the psychometric record. Scales are 0-10; nil means
// the scale was never answered.
type PsychSnapshot struct {
	Sociability        *float64
	Spontaneity        *float64
	Adventurousness    *float64
	Planning           *float64
	RelationshipIntent *float64
	FamilyImportance   *float64
	CareerImportance   *float64
	Openness           *float64
	EmotionalStability *float64
	Empathy            *float64
	Ambition           *float64

	ConflictStyle      string
	CommunicationStyle string
	AttachmentStyle    string
	ChildrenPreference string
	RelationshipGoal   string

	// LoveLanguages holds scores keyed by words/time/gifts/acts/touch.
	LoveLanguages map[string]float64
}

type AnswerSnapshot struct {
	Value    string
	Label    string
	Tag      string
	Category string
	Weight   float64
}
