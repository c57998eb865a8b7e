package dto

import (
	"github.com/lucasmrt/planify-api/internal/models"
)

// CompanyDTO represents a company in API responses
type CompanyDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Website   string `json:"website"`
	City      string `json:"city"`
	Country   string `json:"country"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// CompanyDetailDTO represents a company with its members and plannings
type CompanyDetailDTO struct {
	CompanyDTO
	Users     []UserDTO     `json:"users"`
	Plannings []PlanningDTO `json:"plannings"`
}

// CompanyListResponse represents a paginated list of companies
type CompanyListResponse struct {
	Companies []CompanyDTO `json:"companies"`
	Page      int          `json:"page"`
	PageSize  int          `json:"page_size"`
}

// ToCompanyDTO converts a company to DTO
func ToCompanyDTO(company models.Company) CompanyDTO {
	return CompanyDTO{
		ID:        company.ID,
		Name:      company.Name.String(),
		Website:   company.Website.String(),
		City:      company.City.String(),
		Country:   company.Country.String(),
		CreatedAt: company.CreatedAt.Unix(),
		UpdatedAt: company.UpdatedAt.Unix(),
	}
}

// ToCompanyDetailDTO converts a company with members and plannings to a
// detailed DTO; member emails are included only when allowed.
func ToCompanyDetailDTO(company models.Company, users []models.User, plannings []models.Planning, includeEmails bool) CompanyDetailDTO {
	userDTOs := make([]UserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = ToUserDTO(user, includeEmails)
	}

	planningDTOs := make([]PlanningDTO, len(plannings))
	for i, planning := range plannings {
		planningDTOs[i] = ToPlanningDTO(planning)
	}

	return CompanyDetailDTO{
		CompanyDTO: ToCompanyDTO(company),
		Users:      userDTOs,
		Plannings:  planningDTOs,
	}
}
