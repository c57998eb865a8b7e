package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/dto"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/lucasmrt/planify-api/internal/utils"
)

type CompanyHandler struct {
	companyService *services.CompanyService
}

func NewCompanyHandler(companyService *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// ListCompanies returns the companies visible to the caller
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	companies, err := h.companyService.List(caller, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	companyDTOs := make([]dto.CompanyDTO, len(companies))
	for i, company := range companies {
		companyDTOs[i] = dto.ToCompanyDTO(company)
	}

	c.JSON(http.StatusOK, dto.CompanyListResponse{
		Companies: companyDTOs,
		Page:      params.Page,
		PageSize:  params.Limit,
	})
}

// GetCompany returns one company with its members and plannings
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company id")
		return
	}

	detail, err := h.companyService.Get(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	includeEmails := policy.CanSeeCompanyMemberEmail(caller, detail.Company.ID)
	c.JSON(http.StatusOK, dto.ToCompanyDetailDTO(detail.Company, detail.Users, detail.Plannings, includeEmails))
}

// CreateCompanyRequest represents the company creation request body
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Website string `json:"website"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// CreateCompany creates a new company. Maintainer only.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(caller, services.CreateCompanyInput{
		Name:    req.Name,
		Website: req.Website,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company))
}

// UpdateCompanyRequest represents a partial company patch
type UpdateCompanyRequest struct {
	Name    *string `json:"name"`
	Website *string `json:"website"`
	City    *string `json:"city"`
	Country *string `json:"country"`
}

// UpdateCompany patches a company. Maintainer only.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company id")
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Update(caller, id, services.UpdateCompanyInput{
		Name:    req.Name,
		Website: req.Website,
		City:    req.City,
		Country: req.Country,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// DeleteCompany removes a company, cascading to its plannings and events,
// and returns the pre-deletion snapshot. Maintainer only.
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid company id")
		return
	}

	company, err := h.companyService.Delete(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyDTO(*company))
}

// AddUserRequest represents the company assignment request body
type AddUserRequest struct {
	UserID    uint64 `json:"user_id" binding:"required"`
	CompanyID uint64 `json:"company_id" binding:"required"`
}

// AddUser assigns a user to a company. Maintainer only.
func (h *CompanyHandler) AddUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.companyService.AddUser(caller, req.UserID, req.CompanyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, true))
}

// RemoveUser detaches a user from their company. Maintainer only.
func (h *CompanyHandler) RemoveUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.companyService.RemoveUser(caller, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, true))
}
