package repository

import (
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(delivery *model.Delivery) error
	FindByID(id uint) (*model.Delivery, error)
	Update(delivery *model.Delivery) error
	UpdateStatus(id uint, status model.DeliveryStatus) error
	Delete(id uint) error
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *model.Delivery) error {
	logger.Debug("Creating delivery in database", map[string]interface{}{
		"method":  delivery.Method,
		"carrier": delivery.Carrier,
	})

	if err := r.db.Create(delivery).Error; err != nil {
		logger.Error("Failed to create delivery in database", err, map[string]interface{}{
			"method": delivery.Method,
		})
		return err
	}
	return nil
}

func (r *deliveryRepository) FindByID(id uint) (*model.Delivery, error) {
	var delivery model.Delivery
	if err := r.db.First(&delivery, id).Error; err != nil {
		logger.Error("Failed to find delivery by ID in database", err, map[string]interface{}{
			"delivery_id": id,
		})
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) Update(delivery *model.Delivery) error {
	if err := r.db.Save(delivery).Error; err != nil {
		logger.Error("Failed to update delivery in database", err, map[string]interface{}{
			"delivery_id": delivery.ID,
		})
		return err
	}
	return nil
}

// UpdateStatus sets the status and stamps DeliveredAt when the shipment
// reaches the delivered state.
func (r *deliveryRepository) UpdateStatus(id uint, status model.DeliveryStatus) error {
	logger.Debug("Updating delivery status in database", map[string]interface{}{
		"delivery_id": id,
		"status":      status,
	})

	updates := map[string]interface{}{"status": status}
	if status == model.DeliveryStatusDelivered {
		updates["delivered_at"] = time.Now()
	}

	if err := r.db.Model(&model.Delivery{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		logger.Error("Failed to update delivery status in database", err, map[string]interface{}{
			"delivery_id": id,
			"status":      status,
		})
		return err
	}
	return nil
}

// Delete removes the delivery and detaches it from its order; the order
// itself survives with a NULL delivery reference.
func (r *deliveryRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Order{}).
			Where("delivery_id = ?", id).
			Update("delivery_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Delivery{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete delivery from database", err, map[string]interface{}{
			"delivery_id": id,
		})
		return err
	}
	return nil
}
