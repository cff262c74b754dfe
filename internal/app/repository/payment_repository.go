package repository

import (
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	FindByOrderID(orderID uint) (*model.Payment, error)
	UpdateStatus(id uint, status model.PaymentStatus) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create inserts the payment; a second payment for the same order fails
// on the unique order_id index.
func (r *paymentRepository) Create(payment *model.Payment) error {
	logger.Debug("Creating payment in database", map[string]interface{}{
		"order_id": payment.OrderID,
		"method":   payment.Method,
		"amount":   payment.Amount,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create payment in database", err, map[string]interface{}{
			"order_id": payment.OrderID,
		})
		return err
	}
	return nil
}

func (r *paymentRepository) FindByOrderID(orderID uint) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		logger.Error("Failed to find payment by order ID in database", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatus(id uint, status model.PaymentStatus) error {
	logger.Debug("Updating payment status in database", map[string]interface{}{
		"payment_id": id,
		"status":     status,
	})

	if err := r.db.Model(&model.Payment{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update payment status in database", err, map[string]interface{}{
			"payment_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}
