package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName string     `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string     `gorm:"column:last_name" json:"last_name"`
	Birthdate *time.Time `gorm:"column:birthdate" json:"birthdate,omitempty"`
	Onboarded bool       `gorm:"not null;default:false;column:onboarded" json:"onboarded"`

	// SemanticTags is a denormalized mirror of the tag set derived by the
	// vectorization engine. Single writer: the vectorization service. Read by
	// match filtering elsewhere in the product.
	SemanticTags pq.StringArray `gorm:"type:text[];column:semantic_tags" json:"semantic_tags"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
