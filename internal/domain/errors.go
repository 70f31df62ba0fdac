package domain

import "errors"

// Domain errors
var (
	ErrNotFound               = errors.New("resource not found")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternalError          = errors.New("internal error")
	ErrInvalidPeriodMode      = errors.New("invalid period mode")
	ErrMalformedDateParam     = errors.New("malformed date parameter")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrPayeeNotFound          = errors.New("payee not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrSubcategoryNotFound    = errors.New("subcategory not found")
	ErrDescriptionRequired    = errors.New("description is required")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidClassification  = errors.New("invalid classification")
)
