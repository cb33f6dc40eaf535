package domain

import "errors"

var (
	ErrNotFound     = errors.New("customer_not_found")
	ErrInvalidID    = errors.New("invalid_customer_id")
	ErrInvalidName  = errors.New("invalid_customer_name")
	ErrInvalidEmail = errors.New("invalid_customer_email")
)
