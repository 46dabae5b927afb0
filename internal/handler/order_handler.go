package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createOrderRequest struct {
	SubtotalCents int64 `json:"subtotalCents"`
	TotalCents    int64 `json:"totalCents"`
}

type orderResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	SubtotalCents int64   `json:"subtotalCents"`
	TotalCents    int64   `json:"totalCents"`
	Status        string  `json:"status"`
	CompletedAt   *string `json:"completedAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toOrderResponse(o *model.Order) orderResponse {
	var completedAt *string
	if o.CompletedAt != nil {
		val := o.CompletedAt.Format(time.RFC3339)
		completedAt = &val
	}
	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		SubtotalCents: o.SubtotalCents,
		TotalCents:    o.TotalCents,
		Status:        string(o.Status),
		CompletedAt:   completedAt,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
}

func (h *OrderHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	o, err := h.svc.Create(c.Request().Context(), uid, req.SubtotalCents, req.TotalCents)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

func (h *OrderHandler) Complete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	admin, _ := c.Get("admin").(bool)
	o, err := h.svc.Complete(c.Request().Context(), c.Param("id"), uid, admin)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

func (h *OrderHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	resp := make([]orderResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toOrderResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
