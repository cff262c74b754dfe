package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOrderHasDelivery  = errors.New("order already has a delivery")
	ErrDeliveryNotFound  = errors.New("delivery not found")
)

type DeliveryInput struct {
	Method                string
	Carrier               *string
	TrackingNumber        *string
	ShippingAddress       string
	EstimatedDeliveryDate *time.Time
	ShippingCost          decimal.Decimal
}

type OrderService interface {
	CreateOrderFromCart(customerID uint) (*model.Order, error)
	GetOrder(customerID, orderID uint) (*model.Order, error)
	GetCustomerOrders(customerID uint) ([]model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
	RecordPayment(orderID uint, method string, status model.PaymentStatus) (*model.Payment, error)
	ArrangeDelivery(orderID uint, input DeliveryInput) (*model.Delivery, error)
	UpdateDeliveryStatus(deliveryID uint, status model.DeliveryStatus) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	paymentRepo  repository.PaymentRepository
	deliveryRepo repository.DeliveryRepository
	db           *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	deliveryRepo repository.DeliveryRepository,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		paymentRepo:  paymentRepo,
		deliveryRepo: deliveryRepo,
		db:           db,
	}
}

// CreateOrderFromCart converts the customer's cart into an order in one
// transaction: stock is decremented with a guarded UPDATE, unit prices
// are captured onto the order items, and the cart is flagged ordered and
// emptied. Item prices are snapshots and never follow later product
// price changes.
func (s *orderService) CreateOrderFromCart(customerID uint) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"customer_id": customerID,
	})

	cart, err := s.cartRepo.FindByCustomerID(customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		Number:     uuid.NewString(),
		CustomerID: customerID,
		Status:     model.OrderStatusPending,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero

		for _, cartItem := range cart.Items {
			var product model.Product
			if err := tx.First(&product, cartItem.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			// Guarded decrement: fails the order when stock ran out
			// since the cart was filled.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", product.ID, cartItem.Quantity).
				Update("stock", gorm.Expr("stock - ?", cartItem.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				logger.Warn("Order creation failed: insufficient stock", map[string]interface{}{
					"customer_id": customerID,
					"product_id":  product.ID,
					"requested":   cartItem.Quantity,
					"available":   product.Stock,
				})
				return ErrInsufficientStock
			}

			if err := tx.Model(&model.Product{}).Where("id = ?", product.ID).
				Update("times_purchased", gorm.Expr("times_purchased + ?", cartItem.Quantity)).Error; err != nil {
				return err
			}

			order.Items = append(order.Items, model.OrderItem{
				ProductID: product.ID,
				Quantity:  cartItem.Quantity,
				Price:     product.Price,
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
		}

		order.TotalPrice = total
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&model.Cart{}).Where("id = ?", cart.ID).
			Updates(map[string]interface{}{"ordered": true, "ordered_date": now}).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		logger.Error("Failed to create order from cart", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return nil, err
	}

	logger.Info("Order created from cart", map[string]interface{}{
		"order_id":    order.ID,
		"number":      order.Number,
		"customer_id": customerID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.Items),
	})
	return s.orderRepo.FindByID(order.ID)
}

func (s *orderService) GetOrder(customerID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) GetCustomerOrders(customerID uint) ([]model.Order, error) {
	return s.orderRepo.FindByCustomerID(customerID)
}

// Terminal states never transition; everything else may move forward or
// be cancelled.
func validTransition(from, to model.OrderStatus) bool {
	if from == model.OrderStatusDelivered || from == model.OrderStatusCancelled {
		return false
	}
	if to == model.OrderStatusCancelled {
		return true
	}
	rank := map[model.OrderStatus]int{
		model.OrderStatusPending:    0,
		model.OrderStatusProcessing: 1,
		model.OrderStatusShipped:    2,
		model.OrderStatusDelivered:  3,
	}
	fromRank, ok1 := rank[from]
	toRank, ok2 := rank[to]
	return ok1 && ok2 && toRank > fromRank
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	if !validTransition(order.Status, status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return ErrInvalidTransition
	}

	return s.orderRepo.UpdateStatus(orderID, status)
}

// RecordPayment stores the settlement outcome for an order, amount taken
// from the order total. One payment per order; a duplicate surfaces the
// unique-index violation.
func (s *orderService) RecordPayment(orderID uint, method string, status model.PaymentStatus) (*model.Payment, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	payment := &model.Payment{
		OrderID: order.ID,
		Method:  method,
		Amount:  order.TotalPrice,
		Status:  status,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	logger.Info("Payment recorded", map[string]interface{}{
		"order_id":   order.ID,
		"payment_id": payment.ID,
		"method":     method,
		"status":     status,
	})
	return payment, nil
}

// ArrangeDelivery creates the shipment record and attaches it to the
// order (1:1).
func (s *orderService) ArrangeDelivery(orderID uint, input DeliveryInput) (*model.Delivery, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.DeliveryID != nil {
		return nil, ErrOrderHasDelivery
	}

	delivery := &model.Delivery{
		Status:                model.DeliveryStatusPending,
		Method:                input.Method,
		Carrier:               input.Carrier,
		TrackingNumber:        input.TrackingNumber,
		ShippingAddress:       input.ShippingAddress,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
		ShippingCost:          input.ShippingCost,
	}
	if err := s.deliveryRepo.Create(delivery); err != nil {
		return nil, err
	}
	if err := s.orderRepo.AttachDelivery(order.ID, delivery.ID); err != nil {
		return nil, err
	}

	logger.Info("Delivery arranged", map[string]interface{}{
		"order_id":    order.ID,
		"delivery_id": delivery.ID,
		"method":      delivery.Method,
	})
	return delivery, nil
}

func (s *orderService) UpdateDeliveryStatus(deliveryID uint, status model.DeliveryStatus) error {
	if _, err := s.deliveryRepo.FindByID(deliveryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDeliveryNotFound
		}
		return err
	}
	return s.deliveryRepo.UpdateStatus(deliveryID, status)
}
