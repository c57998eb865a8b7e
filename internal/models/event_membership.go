package models

import "time"

// EventMembership is the participation record for a (user, event) pair.
// A row with Accepted=false is a pending invitation; removal deletes the row,
// there is no declined state.
type EventMembership struct {
	EventID   uint64    `gorm:"primarykey" json:"event_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	Accepted  bool      `gorm:"not null;default:false" json:"accepted"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
