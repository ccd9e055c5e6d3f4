package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trigger is a standalone craving/trigger log entry, independent of any
// relapse. Intensity is a 1-10 self rating.
type Trigger struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TriggerType string    `gorm:"not null;column:trigger_type" json:"trigger_type"`
	Intensity   int       `gorm:"not null;column:intensity" json:"intensity"`
	Notes       string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Trigger) TableName() string {
	return "triggers"
}
