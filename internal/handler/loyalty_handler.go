package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type LoyaltyHandler struct {
	loyalty   service.LoyaltyService
	referrals service.ReferralService
}

func NewLoyaltyHandler(loyalty service.LoyaltyService, referrals service.ReferralService) *LoyaltyHandler {
	return &LoyaltyHandler{loyalty: loyalty, referrals: referrals}
}

type loyaltyStatsResponse struct {
	Points           int64        `json:"points"`
	CurrentTier      model.Tier   `json:"currentTier"`
	NextTier         *model.Tier  `json:"nextTier,omitempty"`
	PointsToNextTier int64        `json:"pointsToNextTier"`
	ProgressToNext   int          `json:"progressToNextTier"`
	ReferralCode     *string      `json:"referralCode,omitempty"`
	ReferralCount    int64        `json:"referralCount"`
	OrderCount       int64        `json:"orderCount"`
	AllTiers         []model.Tier `json:"allTiers"`
}

func (h *LoyaltyHandler) Tiers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.loyalty.Tiers())
}

func (h *LoyaltyHandler) Settings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.loyalty.Settings())
}

func (h *LoyaltyHandler) Stats(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	stats, err := h.loyalty.Stats(c.Request().Context(), uid)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, loyaltyStatsResponse{
		Points:           stats.Points,
		CurrentTier:      stats.CurrentTier,
		NextTier:         stats.NextTier,
		PointsToNextTier: stats.PointsToNextTier,
		ProgressToNext:   stats.ProgressToNext,
		ReferralCode:     stats.ReferralCode,
		ReferralCount:    stats.ReferralCount,
		OrderCount:       stats.OrderCount,
		AllTiers:         h.loyalty.Tiers(),
	})
}

func (h *LoyaltyHandler) GenerateReferralCode(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	code, err := h.referrals.GenerateCode(c.Request().Context(), uid)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"referralCode": code})
}

func (h *LoyaltyHandler) DailyLogin(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	awarded, err := h.loyalty.DailySignIn(c.Request().Context(), uid)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"awarded": awarded,
	})
}
