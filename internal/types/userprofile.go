package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile holds the one-time onboarding answers. Its primary key is the
// owning user's ID: a row existing for a user is the signal that onboarding
// is complete.
type UserProfile struct {
	gorm.Model
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	User              *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ID;references:ID" json:"-"`
	AddictionType     string    `gorm:"not null;column:addiction_type" json:"addiction_type"`
	AddictionDuration string    `gorm:"not null;column:addiction_duration" json:"addiction_duration"`
	MainTrigger       string    `gorm:"not null;column:main_trigger" json:"main_trigger"`
	MainGoal          string    `gorm:"not null;column:main_goal" json:"main_goal"`
	CreatedAt         time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profile"
}
