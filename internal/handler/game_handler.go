package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/service"
)

type GameHandler struct {
	game    service.GameService
	cfg     service.GameConfigService
	catalog service.CatalogService
}

func NewGameHandler(game service.GameService, cfg service.GameConfigService, catalog service.CatalogService) *GameHandler {
	return &GameHandler{game: game, cfg: cfg, catalog: catalog}
}

type rewardTypeResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetDays int    `json:"targetDays"`
}

type manifestationResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PlantType    string `json:"plantType"`
	PlantImage   string `json:"plantImage"`
	DisplayOrder int    `json:"displayOrder"`
}

type plantResponse struct {
	ID                string  `json:"id"`
	RewardType        string  `json:"rewardType"`
	RewardID          string  `json:"rewardId"`
	RewardName        string  `json:"rewardName"`
	TargetDays        int     `json:"targetDays"`
	ManifestationID   string  `json:"manifestationId"`
	ManifestationName string  `json:"manifestationName"`
	PlantType         string  `json:"plantType"`
	PlantImage        string  `json:"plantImage"`
	GrowthPercentage  int     `json:"growthPercentage"`
	WaterCount        int     `json:"waterCount"`
	PlantFood         int     `json:"plantFood"`
	Status            string  `json:"status"`
	StartDate         string  `json:"startDate"`
	EndDate           string  `json:"endDate"`
	LastWateredAt     *string `json:"lastWateredAt,omitempty"`
	CanWater          bool    `json:"canWater"`
	TimeUntilWater    int64   `json:"timeUntilWater"`
	IsComplete        bool    `json:"isComplete"`
	IsExpired         bool    `json:"isExpired"`
}

func toPlantResponse(st *service.PlantStatus) plantResponse {
	s := st.Session
	var lastWatered *string
	if s.LastWateredAt != nil {
		val := s.LastWateredAt.Format(time.RFC3339)
		lastWatered = &val
	}
	return plantResponse{
		ID:                s.ID,
		RewardType:        s.RewardType,
		RewardID:          s.RewardID,
		RewardName:        s.RewardName,
		TargetDays:        s.TargetDays,
		ManifestationID:   s.ManifestationID,
		ManifestationName: s.ManifestationName,
		PlantType:         s.PlantType,
		PlantImage:        s.PlantImage,
		GrowthPercentage:  s.GrowthPercentage,
		WaterCount:        s.WaterCount,
		PlantFood:         s.PlantFood,
		Status:            string(s.Status),
		StartDate:         s.StartDate.Format(time.RFC3339),
		EndDate:           s.EndDate.Format(time.RFC3339),
		LastWateredAt:     lastWatered,
		CanWater:          st.CanWater,
		TimeUntilWater:    st.TimeUntilWater,
		IsComplete:        st.IsComplete,
		IsExpired:         st.IsExpired,
	}
}

func (h *GameHandler) RewardTypes(c echo.Context) error {
	list, err := h.cfg.RewardTypes(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	resp := make([]rewardTypeResponse, 0, len(list))
	for _, rt := range list {
		resp = append(resp, rewardTypeResponse{ID: rt.ID, Name: rt.Name, TargetDays: rt.TargetDays})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *GameHandler) Manifestations(c echo.Context) error {
	list, err := h.cfg.Manifestations(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", err.Error()))
	}
	resp := make([]manifestationResponse, 0, len(list))
	for _, m := range list {
		resp = append(resp, manifestationResponse{
			ID:           m.ID,
			Name:         m.Name,
			Description:  m.Description,
			PlantType:    m.PlantType,
			PlantImage:   m.PlantImage,
			DisplayOrder: m.DisplayOrder,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Rewards lists the selectable items for one reward type, for the start-game
// picker.
func (h *GameHandler) Rewards(c echo.Context) error {
	rewardType := strings.ToLower(c.Param("type"))
	list, err := h.catalog.Rewards(c.Request().Context(), rewardType)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *GameHandler) CurrentPlant(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	st, err := h.game.Current(c.Request().Context(), uid)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	if st == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, toPlantResponse(st))
}

type startGameRequest struct {
	RewardType      string `json:"rewardType"`
	RewardID        string `json:"rewardId"`
	RewardName      string `json:"rewardName"`
	ManifestationID string `json:"manifestationId"`
}

func (h *GameHandler) StartGame(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req startGameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	sess, err := h.game.Start(c.Request().Context(), uid, service.StartGameInput{
		RewardType:      strings.ToLower(strings.TrimSpace(req.RewardType)),
		RewardID:        strings.TrimSpace(req.RewardID),
		RewardName:      strings.TrimSpace(req.RewardName),
		ManifestationID: strings.ToLower(strings.TrimSpace(req.ManifestationID)),
	})
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	st := &service.PlantStatus{Session: sess, CanWater: true}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"game":    toPlantResponse(st),
	})
}

func (h *GameHandler) WaterPlant(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	res, err := h.game.Water(c.Request().Context(), uid)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"growthAdded": res.GrowthAdded,
		"newGrowth":   res.NewGrowth,
		"waterCount":  res.WaterCount,
		"completed":   res.Completed,
	})
}

type feedRequest struct {
	VisitorID string `json:"visitorId"`
}

// FeedPlant lands a shared link: the code identifies whose plant to feed, the
// visitor is the authenticated uid or an anonymous id from the client.
func (h *GameHandler) FeedPlant(c echo.Context) error {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if code == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "missing code"))
	}
	feeder, _ := c.Get("uid").(string)
	if feeder == "" {
		var req feedRequest
		_ = c.Bind(&req)
		feeder = strings.TrimSpace(req.VisitorID)
	}
	if feeder == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "visitorId is required"))
	}
	res, err := h.game.Feed(c.Request().Context(), code, feeder)
	if err != nil {
		return serviceErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"growthAdded": res.GrowthAdded,
		"newGrowth":   res.NewGrowth,
		"completed":   res.Completed,
	})
}

type saveRewardTypeRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TargetDays int    `json:"targetDays"`
}

func (h *GameHandler) SaveRewardType(c echo.Context) error {
	var req saveRewardTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}
	rt := &model.RewardType{ID: req.ID, Name: req.Name, TargetDays: req.TargetDays}
	if err := h.cfg.SaveRewardType(c.Request().Context(), rt); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, rewardTypeResponse{ID: rt.ID, Name: rt.Name, TargetDays: rt.TargetDays})
}

type saveManifestationRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PlantType    string `json:"plantType"`
	PlantImage   string `json:"plantImage"`
	DisplayOrder int    `json:"displayOrder"`
}

func (h *GameHandler) SaveManifestation(c echo.Context) error {
	var req saveManifestationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if id := c.Param("id"); id != "" {
		req.ID = id
	}
	m := &model.Manifestation{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		PlantType:    req.PlantType,
		PlantImage:   req.PlantImage,
		DisplayOrder: req.DisplayOrder,
	}
	if err := h.cfg.SaveManifestation(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, manifestationResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		PlantType:    m.PlantType,
		PlantImage:   m.PlantImage,
		DisplayOrder: m.DisplayOrder,
	})
}
