package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// Order is the minimal record the payment collaborator finalizes. Loyalty
// credits points off SubtotalCents (pre-discount); TotalCents is what was
// actually charged.
type Order struct {
	ID            string      `gorm:"primaryKey;size:64"`
	UserID        string      `gorm:"column:user_id;size:64;index;not null"`
	SubtotalCents int64       `gorm:"column:subtotal_cents;not null"`
	TotalCents    int64       `gorm:"column:total_cents;not null"`
	Status        OrderStatus `gorm:"column:status;size:16;not null"`
	CompletedAt   *time.Time  `gorm:"column:completed_at"`
	CreatedAt     time.Time   `gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
