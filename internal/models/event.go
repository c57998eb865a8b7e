package models

import (
	"time"

	"github.com/lucasmrt/planify-api/internal/crypt"
)

type Event struct {
	ID         uint64                `gorm:"primarykey" json:"id"`
	Name       crypt.EncryptedString `gorm:"type:text" json:"name"`
	Place      crypt.EncryptedString `gorm:"type:text" json:"place"`
	StartDate  time.Time             `gorm:"not null" json:"start_date"`
	EndDate    time.Time             `gorm:"not null" json:"end_date"`
	PlanningID uint64                `gorm:"not null;index" json:"planning_id"`
	OwnerID    uint64                `gorm:"not null" json:"owner_id"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`

	// Relations
	Planning Planning          `gorm:"foreignKey:PlanningID" json:"planning,omitempty"`
	Owner    User              `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members  []EventMembership `gorm:"foreignKey:EventID" json:"members,omitempty"`
}
