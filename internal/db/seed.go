package db

import (
	"github.com/mothernatural/wellness-backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultRewardTypes and DefaultManifestations are the launch configuration;
// admins adjust them from the back office afterwards.
var DefaultRewardTypes = []model.RewardType{
	{ID: "class", Name: "Class Pass", TargetDays: 60},
	{ID: "retreat", Name: "Retreat", TargetDays: 90},
	{ID: "product", Name: "Product", TargetDays: 28},
	{ID: "service", Name: "Service", TargetDays: 28},
}

var DefaultManifestations = []model.Manifestation{
	{ID: "abundance", Name: "Abundance", Description: "Call in prosperity and overflow.", PlantType: "Money Tree", PlantImage: "https://images.unsplash.com/photo-1614594975525-e45190c55d0b?w=600", DisplayOrder: 1},
	{ID: "healing", Name: "Healing", Description: "Soothe and restore body and spirit.", PlantType: "Aloe Plant", PlantImage: "https://images.unsplash.com/photo-1509587584298-0f3b3a3a1797?w=600", DisplayOrder: 2},
	{ID: "love", Name: "Love", Description: "Open the heart to giving and receiving.", PlantType: "Rose Bush", PlantImage: "https://images.unsplash.com/photo-1496062031456-07b8f162a322?w=600", DisplayOrder: 3},
	{ID: "peace", Name: "Peace", Description: "Invite calm and ease into each day.", PlantType: "Lavender", PlantImage: "https://images.unsplash.com/photo-1499002238440-d264edd596ec?w=600", DisplayOrder: 4},
	{ID: "growth", Name: "Growth", Description: "Steady expansion, one node at a time.", PlantType: "Bamboo", PlantImage: "https://images.unsplash.com/photo-1512428813834-c702c7702b78?w=600", DisplayOrder: 5},
}

// SeedGameDefaults installs the default reward types and manifestations
// without clobbering admin edits to existing rows.
func SeedGameDefaults(db *gorm.DB) error {
	for i := range DefaultRewardTypes {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&DefaultRewardTypes[i]).Error; err != nil {
			return err
		}
	}
	for i := range DefaultManifestations {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&DefaultManifestations[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
