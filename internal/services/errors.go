package services

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrForbidden          = errors.New("account does not own this resource")
	ErrInvalidStatus      = errors.New("invalid order status for this operation")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientPoints = errors.New("insufficient point balance")
)
