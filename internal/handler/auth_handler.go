package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	ReferralCode *string `json:"referralCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Points       int64   `json:"points"`
	ReferralCode *string `json:"referralCode,omitempty"`
	Admin        bool    `json:"admin"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Points:       u.Points,
		ReferralCode: u.ReferralCode,
		Admin:        u.Admin,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.Name, req.ReferralCode)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(u)})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	u, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(u)})
}
