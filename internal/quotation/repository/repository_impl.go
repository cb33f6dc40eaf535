package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/billora/internal/quotation/domain"
	"github.com/smallbiznis/billora/pkg/db/option"
	"github.com/smallbiznis/billora/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, quotation *domain.Quotation) error {
	return db.WithContext(ctx).Create(quotation).Error
}

// ReplaceItems persists the quotation header and swaps its item rows for
// the ones attached to the model.
func (r *repo) ReplaceItems(ctx context.Context, db *gorm.DB, quotation *domain.Quotation) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("quotation_id = ?", quotation.ID).
			Delete(&domain.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.
			Session(&gorm.Session{FullSaveAssociations: true}).
			Save(quotation).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Quotation, error) {
	var quotation domain.Quotation
	err := db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		}).
		Where("id = ?", id).
		Limit(1).
		Find(&quotation).Error
	if err != nil {
		return nil, err
	}
	if quotation.ID == 0 {
		return nil, nil
	}
	return &quotation, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListQuotationFilter, page pagination.Pagination) ([]*domain.Quotation, error) {
	var quotations []*domain.Quotation
	stmt := db.WithContext(ctx).
		Model(&domain.Quotation{}).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position asc")
		})
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != "" {
		stmt = stmt.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.CreatedFrom != nil {
		stmt = option.ApplyOperator(option.Condition{Field: "created_at", Operator: option.GTE, Value: *filter.CreatedFrom}).Apply(stmt)
	}
	if filter.CreatedTo != nil {
		stmt = option.ApplyOperator(option.Condition{Field: "created_at", Operator: option.LTE, Value: *filter.CreatedTo}).Apply(stmt)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&quotations).Error
	if err != nil {
		return nil, err
	}
	return quotations, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.QuotationStatus) error {
	return db.WithContext(ctx).
		Model(&domain.Quotation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("quotation_id = ?", id).
			Delete(&domain.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.
			Where("id = ?", id).
			Delete(&domain.Quotation{}).Error
	})
}

// NextSequence returns the next per-day number sequence for quotations
// issued on the same calendar day as issueDate (UTC).
func (r *repo) NextSequence(ctx context.Context, db *gorm.DB, issueDate time.Time) (int64, error) {
	dayStart := time.Date(issueDate.Year(), issueDate.Month(), issueDate.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Quotation{}).
		Where("issue_date >= ? AND issue_date < ?", dayStart, dayEnd).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
