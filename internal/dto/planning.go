package dto

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// PlanningDTO represents a planning in API responses
type PlanningDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	CompanyID uint64 `json:"company_id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// PlanningListResponse represents a paginated list of plannings
type PlanningListResponse struct {
	Plannings []PlanningDTO `json:"plannings"`
	Page      int           `json:"page"`
	PageSize  int           `json:"page_size"`
}

// ToPlanningDTO converts a planning to DTO
func ToPlanningDTO(planning models.Planning) PlanningDTO {
	return PlanningDTO{
		ID:        planning.ID,
		Name:      planning.Name.String(),
		CompanyID: planning.CompanyID,
		CreatedAt: planning.CreatedAt.Unix(),
		UpdatedAt: planning.UpdatedAt.Unix(),
	}
}
