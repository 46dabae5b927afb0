package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mothernatural/wellness-backend/internal/db"
	"github.com/mothernatural/wellness-backend/internal/model"
	"github.com/mothernatural/wellness-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Each test gets its own in-memory database to avoid cross-test interference.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.SeedGameDefaults(gdb))
	return gdb
}

func createUser(t *testing.T, gdb *gorm.DB, name string, code *string) *model.User {
	t.Helper()
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		PasswordHash: "x",
		Name:         name,
		ReferralCode: code,
		Active:       true,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func createClass(t *testing.T, gdb *gorm.DB, name string) *model.Class {
	t.Helper()
	cl := &model.Class{
		ID:         uuid.NewString(),
		Name:       name,
		PriceCents: 25_00,
		Active:     true,
	}
	require.NoError(t, gdb.Create(cl).Error)
	return cl
}

type fixture struct {
	gdb      *gorm.DB
	users    repository.UserRepository
	points   repository.PointRepository
	refs     repository.ReferralRepository
	sessions repository.GrowthSessionRepository
	cfg      repository.GameConfigRepository
	catalog  repository.CatalogRepository
	orders   repository.OrderRepository

	loyalty  LoyaltyService
	game     GameService
	referral ReferralService
	order    OrderService

	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := setupDB(t)
	f := &fixture{
		gdb:      gdb,
		users:    repository.NewUserRepository(gdb),
		points:   repository.NewPointRepository(gdb),
		refs:     repository.NewReferralRepository(gdb),
		sessions: repository.NewGrowthSessionRepository(gdb),
		cfg:      repository.NewGameConfigRepository(gdb),
		catalog:  repository.NewCatalogRepository(gdb),
		orders:   repository.NewOrderRepository(gdb),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	f.loyalty = NewLoyaltyService(f.users, f.points, f.refs, f.orders)
	f.loyalty.(*loyaltyService).now = clock
	f.game = NewGameService(f.sessions, f.cfg, f.catalog, f.users)
	f.game.(*gameService).now = clock
	f.referral = NewReferralService(f.users, f.refs, f.loyalty, f.game)
	f.order = NewOrderService(f.orders, f.loyalty, f.game)
	f.order.(*orderService).now = clock
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *fixture) startGame(t *testing.T, userID string) *model.GrowthSession {
	t.Helper()
	cl := createClass(t, f.gdb, "Sunrise Yoga")
	sess, err := f.game.Start(context.Background(), userID, StartGameInput{
		RewardType:      "class",
		RewardID:        cl.ID,
		RewardName:      cl.Name,
		ManifestationID: "abundance",
	})
	require.NoError(t, err)
	return sess
}

func (f *fixture) setGrowth(t *testing.T, sessionID string, pct int) {
	t.Helper()
	require.NoError(t, f.gdb.Model(&model.GrowthSession{}).
		Where("id = ?", sessionID).
		Update("growth_percentage", pct).Error)
}
