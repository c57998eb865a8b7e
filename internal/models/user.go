package models

import (
	"time"

	"github.com/lucasmrt/planify-api/internal/crypt"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleMaintainer Role = "maintainer"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleMaintainer:
		return true
	}
	return false
}

type User struct {
	ID        uint64                `gorm:"primarykey" json:"id"`
	FirstName crypt.EncryptedString `gorm:"type:text" json:"first_name"`
	LastName  crypt.EncryptedString `gorm:"type:text" json:"last_name"`
	Email     crypt.EncryptedString `gorm:"type:text" json:"email"`
	// EmailKey is the deterministic lookup digest backing the uniqueness of
	// Email; the ciphertext itself cannot be indexed.
	EmailKey     string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	CompanyID    *uint64   `gorm:"index" json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Company     *Company          `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Memberships []EventMembership `gorm:"foreignKey:UserID" json:"-"`
}
