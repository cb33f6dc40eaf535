package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/billora/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Company   string `json:"company"`
	GSTNumber string `json:"gst_number"`
}

type UpdateCustomerRequest struct {
	ID        string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Company   string `json:"company"`
	GSTNumber string `json:"gst_number"`
}

type GetCustomerRequest struct {
	ID string
}

type ListCustomerRequest struct {
	PageToken   string
	PageSize    int32
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type ListCustomerResponse struct {
	Customers []Customer          `json:"customers"`
	PageInfo  pagination.PageInfo `json:"page_info"`
}

type ListCustomerFilter struct {
	Name        string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest) (Customer, error)
	Update(ctx context.Context, req UpdateCustomerRequest) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	GetByID(ctx context.Context, req GetCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
}
