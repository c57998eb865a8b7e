package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/dto"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/lucasmrt/planify-api/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents returns the events visible to the caller. Maintainers may
// narrow to one company with ?company_id=.
func (h *EventHandler) ListEvents(c *gin.Context) {
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
	details, err := h.eventService.List(caller, companyID, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	eventDTOs := make([]dto.EventDTO, len(details))
	for i, detail := range details {
		eventDTOs[i] = toEventDTO(caller, detail)
	}

	c.JSON(http.StatusOK, dto.EventListResponse{
		Events:   eventDTOs,
		Page:     params.Page,
		PageSize: params.Limit,
	})
}

// GetEvent returns one event with its members
func (h *EventHandler) GetEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event id")
		return
	}

	detail, err := h.eventService.Get(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventDTO(caller, *detail))
}

// CreateEventRequest represents the event creation request body. Dates are
// unix epoch seconds.
type CreateEventRequest struct {
	Name       string `json:"name" binding:"required"`
	Place      string `json:"place"`
	StartDate  int64  `json:"start_date" binding:"required"`
	EndDate    int64  `json:"end_date" binding:"required"`
	PlanningID uint64 `json:"planning_id" binding:"required"`
}

// CreateEvent creates an event; the caller becomes its owner and an
// accepted member.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	detail, err := h.eventService.Create(caller, services.CreateEventInput{
		Name:       req.Name,
		Place:      req.Place,
		StartDate:  time.Unix(req.StartDate, 0).UTC(),
		EndDate:    time.Unix(req.EndDate, 0).UTC(),
		PlanningID: req.PlanningID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEventDTO(caller, *detail))
}

// UpdateEventRequest represents a partial event patch; dates are unix epoch
// seconds.
type UpdateEventRequest struct {
	Name       *string `json:"name"`
	Place      *string `json:"place"`
	StartDate  *int64  `json:"start_date"`
	EndDate    *int64  `json:"end_date"`
	PlanningID *uint64 `json:"planning_id"`
}

// UpdateEvent patches an event. Owner or maintainer.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event id")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	input := services.UpdateEventInput{
		Name:       req.Name,
		Place:      req.Place,
		PlanningID: req.PlanningID,
	}
	if req.StartDate != nil {
		start := time.Unix(*req.StartDate, 0).UTC()
		input.StartDate = &start
	}
	if req.EndDate != nil {
		end := time.Unix(*req.EndDate, 0).UTC()
		input.EndDate = &end
	}

	detail, err := h.eventService.Update(caller, id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventDTO(caller, *detail))
}

// DeleteEvent removes an event and returns the pre-deletion snapshot.
// Owner or maintainer.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event id")
		return
	}

	event, err := h.eventService.Delete(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEventDTO(caller, services.EventDetail{Event: *event}))
}

// AddUser invites a user to an event (self-invite joins directly)
func (h *EventHandler) AddUser(c *gin.Context) {
	caller, eventID, userID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	if err := h.eventService.Invite(caller, eventID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User added to event"})
}

// RemoveUser removes a user's participation record from an event
func (h *EventHandler) RemoveUser(c *gin.Context) {
	caller, eventID, userID, ok := h.membershipParams(c)
	if !ok {
		return
	}

	if err := h.eventService.Remove(caller, eventID, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User removed from event"})
}

// AcceptInvite accepts the caller's pending invitation
func (h *EventHandler) AcceptInvite(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event id")
		return
	}

	if err := h.eventService.Accept(caller, eventID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
}

// membershipParams extracts the caller, :eventId path parameter and userId
// query parameter shared by the membership endpoints. An omitted userId
// targets the caller, so members can join or leave without naming themselves.
func (h *EventHandler) membershipParams(c *gin.Context) (policy.Caller, uint64, uint64, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return policy.Caller{}, 0, 0, false
	}

	eventID, err := strconv.ParseUint(c.Param("eventId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid event id")
		return policy.Caller{}, 0, 0, false
	}

	userID := caller.ID
	if raw := c.Query("userId"); raw != "" {
		userID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid user id")
			return policy.Caller{}, 0, 0, false
		}
	}

	return caller, eventID, userID, true
}

func toEventDTO(caller policy.Caller, detail services.EventDetail) dto.EventDTO {
	return dto.ToEventDTO(detail.Event, detail.Members, func(memberID uint64) bool {
		return policy.CanSeeEventMemberEmail(caller, memberID)
	})
}
