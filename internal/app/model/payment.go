package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a settlement attempt for an order, one per order.
// Gateway integration happens elsewhere; only the outcome is stored.
type Payment struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	OrderID   uint            `gorm:"not null;uniqueIndex" json:"order_id"`
	Method    string          `gorm:"type:varchar(50);not null" json:"method"`
	Amount    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status    PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt    time.Time       `gorm:"autoCreateTime" json:"paid_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
