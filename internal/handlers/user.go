package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/dto"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/models"
	"github.com/lucasmrt/planify-api/internal/policy"
	"github.com/lucasmrt/planify-api/internal/services"
	"github.com/lucasmrt/planify-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns the users visible to the caller
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	users, err := h.userService.List(caller, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	userDTOs := make([]dto.UserDTO, len(users))
	for i := range users {
		userDTOs[i] = dto.ToUserDTO(users[i], policy.CanSeeUserEmail(caller, &users[i]))
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Users:    userDTOs,
		Page:     params.Page,
		PageSize: params.Limit,
	})
}

// SearchUser looks up a single user by id (?id= query parameter)
func (h *UserHandler) SearchUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Query("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userService.Search(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, policy.CanSeeUserEmail(caller, user)))
}

// CreateUserRequest represents the user creation request body
type CreateUserRequest struct {
	FirstName string      `json:"first_name" binding:"required"`
	LastName  string      `json:"last_name" binding:"required"`
	Email     string      `json:"email" binding:"required,email"`
	Password  string      `json:"password" binding:"required"`
	Role      models.Role `json:"role"`
	CompanyID *uint64     `json:"company_id"`
}

// CreateUser registers a new user. Maintainer only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Register(caller, services.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		CompanyID: req.CompanyID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user, true))
}

// UpdateUserRequest represents a partial user patch; absent fields are
// left unchanged.
type UpdateUserRequest struct {
	FirstName *string      `json:"first_name"`
	LastName  *string      `json:"last_name"`
	Email     *string      `json:"email" binding:"omitempty,email"`
	Password  *string      `json:"password"`
	Role      *models.Role `json:"role"`
}

// UpdateUser patches a user. Self or maintainer.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Update(caller, id, services.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, policy.CanSeeUserEmail(caller, user)))
}

// DeleteUser removes a user and returns the pre-deletion snapshot.
// Maintainer only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userService.Delete(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user, true))
}
