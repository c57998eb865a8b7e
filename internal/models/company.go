package models

import (
	"time"

	"github.com/lucasmrt/planify-api/internal/crypt"
)

type Company struct {
	ID      uint64                `gorm:"primarykey" json:"id"`
	Name    crypt.EncryptedString `gorm:"type:text" json:"name"`
	NameKey string                `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	Website crypt.EncryptedString `gorm:"type:text" json:"website"`
	City    crypt.EncryptedString `gorm:"type:text" json:"city"`
	Country crypt.EncryptedString `gorm:"type:text" json:"country"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users     []User     `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Plannings []Planning `gorm:"foreignKey:CompanyID" json:"plannings,omitempty"`
}
