package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Streak is a contiguous clean period. At most one row per user has
// IsActive true; rotation closes the old row instead of deleting it.
type Streak struct {
	gorm.Model
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"index;not null" json:"user_id"`
	User      *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	StartDate time.Time  `gorm:"not null;column:start_date" json:"start_date"`
	EndDate   *time.Time `gorm:"column:end_date" json:"end_date,omitempty"`
	DaysCount int        `gorm:"not null;default:0;column:days_count" json:"days_count"`
	IsActive  bool       `gorm:"index;not null;default:false;column:is_active" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null;default:now()" json:"created_at"`
}

func (Streak) TableName() string {
	return "streaks"
}
