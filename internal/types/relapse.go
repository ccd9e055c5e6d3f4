package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relapse is an append-only event record; rows are never updated or deleted.
type Relapse struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	RelapseDate time.Time `gorm:"not null;column:relapse_date" json:"relapse_date"`
	Trigger     string    `gorm:"column:trigger" json:"trigger,omitempty"`
	Notes       string    `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Relapse) TableName() string {
	return "relapses"
}
