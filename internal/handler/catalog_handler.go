package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type CatalogHandler struct {
	svc service.CatalogService
}

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) Products(c echo.Context) error {
	list, err := h.svc.Products(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) Services(c echo.Context) error {
	list, err := h.svc.Services(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) Classes(c echo.Context) error {
	list, err := h.svc.Classes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CatalogHandler) Retreats(c echo.Context) error {
	list, err := h.svc.Retreats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	return c.JSON(http.StatusOK, list)
}
