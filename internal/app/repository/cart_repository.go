package repository

import (
	"errors"
	"time"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindByCustomerID(customerID uint) (*model.Cart, error)
	FindOrCreateByCustomerID(customerID uint) (*model.Cart, error)
	FindItem(cartID, productID uint) (*model.CartItem, error)
	CreateItem(item *model.CartItem) error
	UpdateItem(item *model.CartItem) error
	DeleteItem(id uint) error
	ClearItems(cartID uint) error
	MarkOrdered(cartID uint, at time.Time) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByCustomerID(customerID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Where("customer_id = ?", customerID).
		Preload("Items.Product").
		First(&cart).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find cart by customer ID in database", err, map[string]interface{}{
				"customer_id": customerID,
			})
		}
		return nil, err
	}
	return &cart, nil
}

// FindOrCreateByCustomerID returns the customer's cart, creating the 1:1
// row on first use.
func (r *cartRepository) FindOrCreateByCustomerID(customerID uint) (*model.Cart, error) {
	cart, err := r.FindByCustomerID(customerID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	logger.Debug("Creating cart in database", map[string]interface{}{
		"customer_id": customerID,
	})

	cart = &model.Cart{CustomerID: customerID}
	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}
	return cart, nil
}

func (r *cartRepository) FindItem(cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find cart item in database", err, map[string]interface{}{
				"cart_id":    cartID,
				"product_id": productID,
			})
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts the row; a duplicate (cart, product) pair fails on
// the unique index.
func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}
	return nil
}

func (r *cartRepository) ClearItems(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to clear cart items from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) MarkOrdered(cartID uint, at time.Time) error {
	err := r.db.Model(&model.Cart{}).Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"ordered":      true,
			"ordered_date": at,
		}).Error
	if err != nil {
		logger.Error("Failed to mark cart as ordered in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}
