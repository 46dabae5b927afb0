package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// serviceErrorResponse maps the service error taxonomy onto 4xx responses
// with machine-readable codes. Anything unmapped is a 500.
func serviceErrorResponse(c echo.Context, err error) error {
	var tooSoon *service.WateringTooSoonError
	if errors.As(err, &tooSoon) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: errorPayload{Code: "watering_too_soon", Message: tooSoon.Error()},
		})
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", err.Error()))
	case errors.Is(err, service.ErrActiveSessionExists):
		return c.JSON(http.StatusConflict, NewErrorResponse("active_session_exists", err.Error()))
	case errors.Is(err, service.ErrNoActiveSession):
		return c.JSON(http.StatusNotFound, NewErrorResponse("no_active_session", err.Error()))
	case errors.Is(err, service.ErrSessionNotActive):
		return c.JSON(http.StatusConflict, NewErrorResponse("session_not_active", err.Error()))
	case errors.Is(err, service.ErrUnknownRewardType):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("unknown_reward_type", err.Error()))
	case errors.Is(err, service.ErrUnknownManifestation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("unknown_manifestation", err.Error()))
	case errors.Is(err, service.ErrRewardNotFound):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("reward_not_found", err.Error()))
	case errors.Is(err, service.ErrInvalidCode):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_code", err.Error()))
	case errors.Is(err, service.ErrSelfReferral):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("self_referral", err.Error()))
	case errors.Is(err, service.ErrDuplicateReferral):
		return c.JSON(http.StatusConflict, NewErrorResponse("duplicate_referral", err.Error()))
	case errors.Is(err, service.ErrAlreadyFed):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_fed", err.Error()))
	case errors.Is(err, service.ErrCannotFeedOwnPlant):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("cannot_feed_own_plant", err.Error()))
	case errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, NewErrorResponse("email_taken", err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("invalid_credentials", err.Error()))
	case errors.Is(err, service.ErrAccountDisabled):
		return c.JSON(http.StatusForbidden, NewErrorResponse("account_disabled", err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
}
