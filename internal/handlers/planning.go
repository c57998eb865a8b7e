package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/dto"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/lucasmrt/planify-api/internal/utils"
)

type PlanningHandler struct {
	planningService *services.PlanningService
}

func NewPlanningHandler(planningService *services.PlanningService) *PlanningHandler {
	return &PlanningHandler{planningService: planningService}
}

// ListPlannings returns the plannings visible to the caller. Maintainers may
// narrow to one company with ?company_id=.
func (h *PlanningHandler) ListPlannings(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	companyID, err := optionalUintQuery(c, "company_id")
	if err != nil {
		apierrors.BadRequest(c, "Invalid company_id")
		return
	}

	params := utils.GetPaginationParams(c)
	plannings, err := h.planningService.List(caller, companyID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	planningDTOs := make([]dto.PlanningDTO, len(plannings))
	for i, planning := range plannings {
		planningDTOs[i] = dto.ToPlanningDTO(planning)
	}

	c.JSON(http.StatusOK, dto.PlanningListResponse{
		Plannings: planningDTOs,
		Page:      params.Page,
		PageSize:  params.Limit,
	})
}

// CreatePlanningRequest represents the planning creation request body.
// CompanyID is required for maintainers and ignored for admins.
type CreatePlanningRequest struct {
	Name      string  `json:"name" binding:"required"`
	CompanyID *uint64 `json:"company_id"`
}

// CreatePlanning creates a planning. Admin (own company) or maintainer.
func (h *PlanningHandler) CreatePlanning(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	planning, err := h.planningService.Create(caller, services.CreatePlanningInput{
		Name:      req.Name,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlanningDTO(*planning))
}

// UpdatePlanningRequest represents a partial planning patch
type UpdatePlanningRequest struct {
	Name *string `json:"name"`
}

// UpdatePlanning patches a planning. Admin (own company) or maintainer.
func (h *PlanningHandler) UpdatePlanning(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid planning id")
		return
	}

	var req UpdatePlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	planning, err := h.planningService.Update(caller, id, services.UpdatePlanningInput{
		Name: req.Name,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanningDTO(*planning))
}

// DeletePlanning removes a planning, cascading to its events, and returns
// the pre-deletion snapshot. Admin (own company) or maintainer.
func (h *PlanningHandler) DeletePlanning(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid planning id")
		return
	}

	planning, err := h.planningService.Delete(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanningDTO(*planning))
}

// optionalUintQuery parses an optional unsigned integer query parameter.
func optionalUintQuery(c *gin.Context, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
