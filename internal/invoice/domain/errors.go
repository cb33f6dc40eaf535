package domain

import "errors"

var (
	ErrNotFound           = errors.New("invoice_not_found")
	ErrInvalidID          = errors.New("invalid_invoice_id")
	ErrNoCustomerSelected = errors.New("no_customer_selected")
	ErrCustomerNotFound   = errors.New("invoice_customer_not_found")
	ErrNoValidItems       = errors.New("no_valid_items")
	ErrInvalidTaxRate     = errors.New("invalid_tax_rate")
	ErrUnknownStatus      = errors.New("unknown_invoice_status")
	ErrStatusTransition   = errors.New("invoice_status_transition_not_allowed")
	ErrTerminalStatus     = errors.New("invoice_in_terminal_status")
	ErrQuotationNotFound  = errors.New("conversion_quotation_not_found")
)
