package model

import "time"

// Catalog rows are managed by the storefront admin screens, which live
// outside this service. They are read here to populate and validate game
// reward selections.

type Product struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"column:price_cents;not null" json:"priceCents"`
	ImageURL    *string   `gorm:"size:512" json:"imageUrl,omitempty"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type ServiceOffering struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"column:price_cents;not null" json:"priceCents"`
	DurationMin int       `gorm:"column:duration_min" json:"durationMin"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ServiceOffering) TableName() string { return "services" }

type Class struct {
	ID          string    `gorm:"primaryKey;size:64" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"column:price_cents;not null" json:"priceCents"`
	Schedule    string    `gorm:"size:255" json:"schedule"`
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Class) TableName() string { return "classes" }

type Retreat struct {
	ID          string     `gorm:"primaryKey;size:64" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	PriceCents  int64      `gorm:"column:price_cents;not null" json:"priceCents"`
	Location    string     `gorm:"size:255" json:"location"`
	StartDate   *time.Time `gorm:"column:start_date" json:"startDate,omitempty"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Retreat) TableName() string { return "retreats" }
