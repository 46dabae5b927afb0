package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mothernatural/wellness-backend/internal/config"
	"github.com/mothernatural/wellness-backend/internal/db"
	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.SeedGameDefaults(gdb); err != nil {
		return fmt.Errorf("seed game defaults: %w", err)
	}
	log.Printf("seeded %d reward types and %d manifestations", len(db.DefaultRewardTypes), len(db.DefaultManifestations))

	canSeed, err := shouldSeedCatalog(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("catalog already populated; skipping sample catalog (set FORCE_SEED=true to override)")
		return nil
	}
	if err := seedCatalog(gdb); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Printf("seeded sample catalog")
	return nil
}

func shouldSeedCatalog(gdb *gorm.DB) (bool, error) {
	if os.Getenv("FORCE_SEED") == "true" {
		return true, nil
	}
	var n int64
	if err := gdb.Model(&model.Product{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

func seedCatalog(gdb *gorm.DB) error {
	products := []model.Product{
		{ID: uuid.NewString(), Name: "Sacred Sage Bundle", Description: "Hand-tied white sage for clearing.", PriceCents: 18_00},
		{ID: uuid.NewString(), Name: "Healing Crystal Set", Description: "Seven stones for the seven chakras.", PriceCents: 45_00},
		{ID: uuid.NewString(), Name: "Herbal Tea Ritual Kit", Description: "Loose-leaf blends for morning and night.", PriceCents: 32_00},
	}
	services := []model.ServiceOffering{
		{ID: uuid.NewString(), Name: "Reiki Session", Description: "One-on-one energy work.", PriceCents: 90_00, DurationMin: 60},
		{ID: uuid.NewString(), Name: "Sound Bath", Description: "Crystal bowl immersion.", PriceCents: 65_00, DurationMin: 45},
	}
	classes := []model.Class{
		{ID: uuid.NewString(), Name: "Sunrise Yoga", Description: "All-levels vinyasa flow.", PriceCents: 25_00, Schedule: "Mon/Wed/Fri 7:00"},
		{ID: uuid.NewString(), Name: "Breathwork Circle", Description: "Guided group breathwork.", PriceCents: 30_00, Schedule: "Thu 18:30"},
	}
	retreats := []model.Retreat{
		{ID: uuid.NewString(), Name: "Mountain Renewal Weekend", Description: "Three days of stillness in the hills.", PriceCents: 450_00, Location: "Blue Ridge"},
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		for i := range products {
			if err := tx.Create(&products[i]).Error; err != nil {
				return err
			}
		}
		for i := range services {
			if err := tx.Create(&services[i]).Error; err != nil {
				return err
			}
		}
		for i := range classes {
			if err := tx.Create(&classes[i]).Error; err != nil {
				return err
			}
		}
		for i := range retreats {
			if err := tx.Create(&retreats[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
