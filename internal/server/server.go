package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mothernatural/wellness-backend/internal/config"
	"github.com/mothernatural/wellness-backend/internal/handler"
	appmw "github.com/mothernatural/wellness-backend/internal/middleware"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"github.com/mothernatural/wellness-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(db *gorm.DB, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if host == "mothernatural.com" || strings.HasSuffix(host, ".mothernatural.com") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	pointRepo := repository.NewPointRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	sessionRepo := repository.NewGrowthSessionRepository(db)
	cfgRepo := repository.NewGameConfigRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	loyaltySvc := service.NewLoyaltyService(userRepo, pointRepo, referralRepo, orderRepo)
	gameSvc := service.NewGameService(sessionRepo, cfgRepo, catalogRepo, userRepo)
	referralSvc := service.NewReferralService(userRepo, referralRepo, loyaltySvc, gameSvc)
	gameCfgSvc := service.NewGameConfigService(cfgRepo)
	catalogSvc := service.NewCatalogService(catalogRepo)
	orderSvc := service.NewOrderService(orderRepo, loyaltySvc, gameSvc)
	authSvc := service.NewAuthService(userRepo, referralSvc, loyaltySvc, cfg.JWTSecret)

	authHandler := handler.NewAuthHandler(authSvc)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltySvc, referralSvc)
	gameHandler := handler.NewGameHandler(gameSvc, gameCfgSvc, catalogSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	orderHandler := handler.NewOrderHandler(orderSvc)

	authMw := appmw.NewAuthMiddleware(cfg.JWTSecret)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/loyalty/tiers", loyaltyHandler.Tiers)
	api.GET("/loyalty/settings", loyaltyHandler.Settings)
	api.GET("/loyalty/user-stats", loyaltyHandler.Stats, authMw.RequireAuth)
	api.POST("/loyalty/generate-referral-code", loyaltyHandler.GenerateReferralCode, authMw.RequireAuth)
	api.POST("/loyalty/daily-login", loyaltyHandler.DailyLogin, authMw.RequireAuth)

	api.GET("/game/reward-types", gameHandler.RewardTypes)
	api.GET("/game/manifestations", gameHandler.Manifestations)
	api.GET("/game/rewards/:type", gameHandler.Rewards)
	api.GET("/game/plant", gameHandler.CurrentPlant, authMw.RequireAuth)
	api.POST("/game/plant/start", gameHandler.StartGame, authMw.RequireAuth)
	api.POST("/game/plant/water", gameHandler.WaterPlant, authMw.RequireAuth)
	api.POST("/game/feed/:code", gameHandler.FeedPlant, authMw.OptionalAuth)

	api.GET("/products", catalogHandler.Products)
	api.GET("/services", catalogHandler.Services)
	api.GET("/classes", catalogHandler.Classes)
	api.GET("/retreats", catalogHandler.Retreats)

	api.POST("/orders", orderHandler.Create, authMw.RequireAuth)
	api.GET("/me/orders", orderHandler.ListMine, authMw.RequireAuth)
	api.POST("/orders/:id/complete", orderHandler.Complete, authMw.RequireAuth)

	admin := api.Group("/admin", authMw.RequireAdmin)
	admin.POST("/game/reward-types", gameHandler.SaveRewardType)
	admin.PUT("/game/reward-types/:id", gameHandler.SaveRewardType)
	admin.POST("/game/manifestations", gameHandler.SaveManifestation)
	admin.PUT("/game/manifestations/:id", gameHandler.SaveManifestation)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// Echo exposes the router for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
