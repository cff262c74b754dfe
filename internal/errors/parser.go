package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo carries a stable code plus a human-readable message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies a storage error into a stable code and message.
// Constraint names come from the schema in internal/app/model; both the
// Postgres and SQLite phrasings of a violation are recognized so tests
// against the in-memory database behave like production.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "an internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: context + " not found",
		}
	}

	// 2. Unique constraint violation (Postgres 23505 / SQLite "UNIQUE constraint failed")
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// 3. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "a referenced record is missing or still in use",
		}
	}

	// 4. Not null constraint violation (23502 / SQLite "NOT NULL constraint failed")
	if strings.Contains(errStrLower, "not-null constraint") ||
		strings.Contains(errStrLower, "not null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "a required field is missing",
		}
	}

	// 5. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalid,
			Message: "a field value is out of range",
		}
	}

	// 6. Connection-level failures
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "storage backend is unreachable",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "an internal error occurred",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	// one like per (customer, product)
	case strings.Contains(errLower, "idx_product_likes_customer_product") ||
		strings.Contains(errLower, "product_likes"):
		return ErrorInfo{
			Code:    LikeAlreadyExists,
			Message: "this customer already likes this product",
		}

	// one row per (cart, product)
	case strings.Contains(errLower, "idx_cart_items_cart_product") ||
		strings.Contains(errLower, "cart_items"):
		return ErrorInfo{
			Code:    CartItemAlreadyExists,
			Message: "this product is already in the cart",
		}

	case strings.Contains(errLower, "idx_discount_codes_code") ||
		strings.Contains(errLower, "discount_codes"):
		return ErrorInfo{
			Code:    DiscountCodeExists,
			Message: "this discount code already exists",
		}

	case strings.Contains(errLower, "idx_products_slug") ||
		strings.Contains(errLower, "products.slug"):
		return ErrorInfo{
			Code:    ProductSlugExists,
			Message: "this product slug is already taken",
		}

	case strings.Contains(errLower, "idx_tags_name") ||
		strings.Contains(errLower, "tags.name"):
		return ErrorInfo{
			Code:    TagNameExists,
			Message: "this tag name already exists",
		}

	// one customer profile per user, one cart per customer, one payment
	// per order, one order per delivery
	case strings.Contains(errLower, "customers"):
		return ErrorInfo{
			Code:    CustomerAlreadyExists,
			Message: "a customer profile already exists for this user",
		}
	case strings.Contains(errLower, "carts"):
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "this customer already has a cart",
		}
	case strings.Contains(errLower, "payments"):
		return ErrorInfo{
			Code:    PaymentAlreadyExists,
			Message: "this order already has a payment",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "a record with these values already exists",
	}
}

func notFoundCode(context string) string {
	switch {
	case strings.Contains(context, "product"):
		return ProductNotFound
	case strings.Contains(context, "category"):
		return CategoryNotFound
	case strings.Contains(context, "customer"):
		return CustomerNotFound
	case strings.Contains(context, "cart"):
		return CartNotFound
	case strings.Contains(context, "order"):
		return OrderNotFound
	case strings.Contains(context, "discount"):
		return DiscountNotFound
	case strings.Contains(context, "review"):
		return ReviewNotFound
	}
	return ResourceNotFound
}
