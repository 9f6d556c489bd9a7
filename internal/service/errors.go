package service

import "errors"

// 业务错误定义；handler 层通过 errors.Is 映射为响应码
var (
	ErrNotFound              = errors.New("record not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInvalidPassword       = errors.New("invalid password")
	ErrEmailTaken            = errors.New("email already registered")
	ErrUsernameTaken         = errors.New("username already taken")
	ErrUserDisabled          = errors.New("user disabled")
	ErrInvalidLineTarget     = errors.New("invalid line target")
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrInvalidDiscountConfig = errors.New("discount amount and percentage are mutually exclusive")
	ErrInvalidPrice          = errors.New("invalid price")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrOwnershipViolation    = errors.New("resource owned by another user")
	ErrPriceIndeterminate    = errors.New("price cannot be determined")
	ErrTargetNotAvailable    = errors.New("target not available for sale")
	ErrOrderStatusInvalid    = errors.New("invalid order status transition")
	ErrBarcodeTaken          = errors.New("barcode already in use")
	ErrIMEITaken             = errors.New("imei already in use")
	ErrSerialNumberTaken     = errors.New("serial number already in use")
	ErrDepartmentInUse       = errors.New("department still referenced")
	ErrLocationInUse         = errors.New("location still referenced")
	ErrNameTaken             = errors.New("name already in use")
)
