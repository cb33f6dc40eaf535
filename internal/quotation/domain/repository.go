package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, quotation *Quotation) error
	ReplaceItems(ctx context.Context, db *gorm.DB, quotation *Quotation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Quotation, error)
	List(ctx context.Context, db *gorm.DB, filter ListQuotationFilter, page pagination.Pagination) ([]*Quotation, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status QuotationStatus) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	NextSequence(ctx context.Context, db *gorm.DB, issueDate time.Time) (int64, error)
}
