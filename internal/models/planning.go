package models

import (
	"time"

	"github.com/lucasmrt/planify-api/internal/crypt"
)

type Planning struct {
	ID   uint64                `gorm:"primarykey" json:"id"`
	Name crypt.EncryptedString `gorm:"type:text" json:"name"`
	// Planning names are unique within a company, not globally.
	NameKey   string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_plannings_company_name" json:"-"`
	CompanyID uint64    `gorm:"not null;uniqueIndex:idx_plannings_company_name" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Events  []Event `gorm:"foreignKey:PlanningID" json:"events,omitempty"`
}
