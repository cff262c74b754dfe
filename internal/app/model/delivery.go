package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusShipped   DeliveryStatus = "shipped"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusReturned  DeliveryStatus = "returned"
)

// Delivery is the shipment record optionally attached to an order
// (the FK lives on Order).
type Delivery struct {
	ID                    uint            `gorm:"primarykey" json:"id"`
	Method                string          `gorm:"type:varchar(50);not null" json:"method"`
	Carrier               *string         `gorm:"type:varchar(100)" json:"carrier,omitempty"` // e.g. DHL, La Poste
	TrackingNumber        *string         `gorm:"type:varchar(128)" json:"tracking_number,omitempty"`
	Status                DeliveryStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ShippingAddress       string          `gorm:"type:text;not null" json:"shipping_address"`
	EstimatedDeliveryDate *time.Time      `json:"estimated_delivery_date,omitempty"`
	DeliveredAt           *time.Time      `json:"delivered_at,omitempty"`
	ShippingCost          decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"shipping_cost"`
	CreatedAt             time.Time       `json:"created_at"`
	DeletedAt             gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Delivery) TableName() string {
	return "deliveries"
}
