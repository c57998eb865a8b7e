package models

import "time"

type Notification struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	UserID    uint64     `gorm:"not null;index" json:"user_id"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
