package service

import (
	"errors"

	"github.com/kingoftech-v01/shop-backend/internal/app/model"
	"github.com/kingoftech-v01/shop-backend/internal/app/repository"
	"github.com/kingoftech-v01/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient product stock")
)

type CartService interface {
	GetCart(customerID uint) (*model.Cart, error)
	AddToCart(customerID, productID uint, quantity int) error
	UpdateQuantity(customerID, productID uint, quantity int) error
	RemoveFromCart(customerID, productID uint) error
	ClearCart(customerID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(customerID uint) (*model.Cart, error) {
	return s.cartRepo.FindOrCreateByCustomerID(customerID)
}

// AddToCart puts quantity of a product into the customer's cart. If the
// product is already there the quantities merge into the existing row;
// the (cart, product) unique index never sees a second insert.
func (s *cartService) AddToCart(customerID, productID uint, quantity int) error {
	logger.Info("Adding product to cart", map[string]interface{}{
		"customer_id": customerID,
		"product_id":  productID,
		"quantity":    quantity,
	})

	if quantity < 1 {
		return ErrInvalidQuantity
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	cart, err := s.cartRepo.FindOrCreateByCustomerID(customerID)
	if err != nil {
		return err
	}

	existing, err := s.cartRepo.FindItem(cart.ID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if product.Stock < requested {
		logger.Warn("Insufficient stock for cart", map[string]interface{}{
			"product_id": productID,
			"requested":  requested,
			"available":  product.Stock,
		})
		return ErrInsufficientStock
	}

	if existing != nil {
		existing.Quantity = requested
		return s.cartRepo.UpdateItem(existing)
	}

	return s.cartRepo.CreateItem(&model.CartItem{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (s *cartService) UpdateQuantity(customerID, productID uint, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	cart, err := s.cartRepo.FindOrCreateByCustomerID(customerID)
	if err != nil {
		return err
	}

	item, err := s.cartRepo.FindItem(cart.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return err
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	item.Quantity = quantity
	return s.cartRepo.UpdateItem(item)
}

func (s *cartService) RemoveFromCart(customerID, productID uint) error {
	cart, err := s.cartRepo.FindOrCreateByCustomerID(customerID)
	if err != nil {
		return err
	}

	item, err := s.cartRepo.FindItem(cart.ID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	return s.cartRepo.DeleteItem(item.ID)
}

func (s *cartService) ClearCart(customerID uint) error {
	cart, err := s.cartRepo.FindOrCreateByCustomerID(customerID)
	if err != nil {
		return err
	}
	return s.cartRepo.ClearItems(cart.ID)
}
