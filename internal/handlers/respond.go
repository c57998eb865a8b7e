package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	apierrors "github.com/lucasmrt/planify-api/internal/errors"
	"github.com/lucasmrt/planify-api/internal/services"
)

// respondServiceError maps a service sentinel error to its HTTP response.
// Unrecognized errors become opaque 500s; the detail goes to the log only.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, "")

	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, 400, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))

	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrPlanningNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())

	case errors.Is(err, services.ErrInvalidEventRange):
		apierrors.InvalidRange(c, err.Error())

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMaintainerHasCompany),
		errors.Is(err, services.ErrCompanyExists),
		errors.Is(err, services.ErrInvalidCompanyName),
		errors.Is(err, services.ErrUserNotInCompany),
		errors.Is(err, services.ErrPlanningExists),
		errors.Is(err, services.ErrInvalidPlanningName),
		errors.Is(err, services.ErrCompanyIDRequired),
		errors.Is(err, services.ErrInvalidEventName),
		errors.Is(err, services.ErrEmptyNotification):
		apierrors.BadRequest(c, err.Error())

	case errors.Is(err, services.ErrAlreadyInEvent),
		errors.Is(err, services.ErrNotInEvent),
		errors.Is(err, services.ErrAlreadyAccepted):
		apierrors.Conflict(c, err.Error())

	default:
		log.Printf("unexpected service error: %v", err)
		apierrors.InternalError(c, "")
	}
}
