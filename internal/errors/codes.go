package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// Consumers map these codes to display messages.

const (
	// ==================== Catalog (PRODUCT_ / CATEGORY_) ====================
	ProductNotFound    = "PRODUCT_NOT_FOUND"
	ProductSlugExists  = "PRODUCT_SLUG_EXISTS"
	ProductOutOfStock  = "PRODUCT_OUT_OF_STOCK"
	CategoryNotFound   = "CATEGORY_NOT_FOUND"
	CategoryInUse      = "CATEGORY_IN_USE"
	TagNotFound        = "TAG_NOT_FOUND"
	TagNameExists      = "TAG_NAME_EXISTS"

	// ==================== Customer (CUSTOMER_) ====================
	CustomerNotFound      = "CUSTOMER_NOT_FOUND"
	CustomerAlreadyExists = "CUSTOMER_ALREADY_EXISTS"

	// ==================== Review / Like (REVIEW_ / LIKE_) ====================
	ReviewNotFound     = "REVIEW_NOT_FOUND"
	ReviewRatingRange  = "REVIEW_RATING_OUT_OF_RANGE"
	LikeAlreadyExists  = "LIKE_ALREADY_EXISTS"
	LikeNotFound       = "LIKE_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartNotFound          = "CART_NOT_FOUND"
	CartItemAlreadyExists = "CART_ITEM_ALREADY_EXISTS"
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartEmpty             = "CART_EMPTY"
	CartAlreadyOrdered    = "CART_ALREADY_ORDERED"

	// ==================== Order / Payment / Delivery (ORDER_) ====================
	OrderNotFound        = "ORDER_NOT_FOUND"
	OrderInvalidStatus   = "ORDER_INVALID_STATUS"
	PaymentNotFound      = "PAYMENT_NOT_FOUND"
	PaymentAlreadyExists = "PAYMENT_ALREADY_EXISTS"
	DeliveryNotFound     = "DELIVERY_NOT_FOUND"

	// ==================== Discount (DISCOUNT_) ====================
	DiscountNotFound     = "DISCOUNT_NOT_FOUND"
	DiscountCodeNotFound = "DISCOUNT_CODE_NOT_FOUND"
	DiscountCodeExists   = "DISCOUNT_CODE_EXISTS"
	DiscountCodeInvalid  = "DISCOUNT_CODE_INVALID"
	DiscountCodeExhausted = "DISCOUNT_CODE_EXHAUSTED"

	// ==================== Validation (VALIDATION_) ====================
	ValidationRequired = "VALIDATION_REQUIRED_FIELD"
	ValidationInvalid  = "VALIDATION_INVALID_VALUE"

	// ==================== Generic resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API_ERROR"
)
