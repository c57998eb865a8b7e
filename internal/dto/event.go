package dto

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// EventMemberDTO represents a participation record in API responses
type EventMemberDTO struct {
	User      UserDTO `json:"user"`
	Accepted  bool    `json:"accepted"`
	AddedAt   int64   `json:"added_at"`
	UpdatedAt int64   `json:"updated_at"`
}

// EventDTO represents an event in API responses
type EventDTO struct {
	ID         uint64           `json:"id"`
	Name       string           `json:"name"`
	Place      string           `json:"place"`
	StartDate  int64            `json:"start_date"`
	EndDate    int64            `json:"end_date"`
	PlanningID uint64           `json:"planning_id"`
	CompanyID  uint64           `json:"company_id"`
	OwnerID    uint64           `json:"owner_id"`
	MembersNb  int              `json:"members_nb"`
	Members    []EventMemberDTO `json:"members,omitempty"`
	CreatedAt  int64            `json:"created_at"`
	UpdatedAt  int64            `json:"updated_at"`
}

// EventListResponse represents a paginated list of events
type EventListResponse struct {
	Events   []EventDTO `json:"events"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ToEventMemberDTO converts a participation record to DTO
func ToEventMemberDTO(membership models.EventMembership, includeEmail bool) EventMemberDTO {
	return EventMemberDTO{
		User:      ToUserDTO(membership.User, includeEmail),
		Accepted:  membership.Accepted,
		AddedAt:   membership.AddedAt.Unix(),
		UpdatedAt: membership.UpdatedAt.Unix(),
	}
}

// ToEventDTO converts an event with its members to DTO. The event's company
// comes from the preloaded planning; emailVisible decides per-member whether
// the email field is included.
func ToEventDTO(event models.Event, members []models.EventMembership, emailVisible func(memberID uint64) bool) EventDTO {
	memberDTOs := make([]EventMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToEventMemberDTO(member, emailVisible(member.UserID))
	}

	return EventDTO{
		ID:         event.ID,
		Name:       event.Name.String(),
		Place:      event.Place.String(),
		StartDate:  event.StartDate.Unix(),
		EndDate:    event.EndDate.Unix(),
		PlanningID: event.PlanningID,
		CompanyID:  event.Planning.CompanyID,
		OwnerID:    event.OwnerID,
		MembersNb:  len(members),
		Members:    memberDTOs,
		CreatedAt:  event.CreatedAt.Unix(),
		UpdatedAt:  event.UpdatedAt.Unix(),
	}
}
