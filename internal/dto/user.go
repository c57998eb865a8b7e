package dto

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// UserDTO represents a user in API responses. Email is omitted when the
// caller is not allowed to see it.
type UserDTO struct {
	ID        uint64      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email,omitempty"`
	Role      models.Role `json:"role"`
	CompanyID *uint64     `json:"company_id"`
	CreatedAt int64       `json:"created_at"`
	UpdatedAt int64       `json:"updated_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserDTO `json:"users"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// ToUserDTO converts a user to DTO, including the email only when allowed
func ToUserDTO(user models.User, includeEmail bool) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName.String(),
		LastName:  user.LastName.String(),
		Role:      user.Role,
		CompanyID: user.CompanyID,
		CreatedAt: user.CreatedAt.Unix(),
		UpdatedAt: user.UpdatedAt.Unix(),
	}
	if includeEmail {
		dto.Email = user.Email.String()
	}
	return dto
}
