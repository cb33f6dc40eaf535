package domain

import "errors"

var (
	ErrNotFound    = errors.New("company_profile_not_found")
	ErrInvalidName = errors.New("invalid_company_name")
)
