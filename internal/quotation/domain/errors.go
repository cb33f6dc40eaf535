package domain

import "errors"

var (
	ErrNotFound           = errors.New("quotation_not_found")
	ErrInvalidID          = errors.New("invalid_quotation_id")
	ErrNoCustomerSelected = errors.New("no_customer_selected")
	ErrCustomerNotFound   = errors.New("quotation_customer_not_found")
	ErrNoValidItems       = errors.New("no_valid_items")
	ErrInvalidTaxRate     = errors.New("invalid_tax_rate")
	ErrUnknownStatus      = errors.New("unknown_quotation_status")
	ErrStatusTransition   = errors.New("quotation_status_transition_not_allowed")
	ErrTerminalStatus     = errors.New("quotation_in_terminal_status")
)
