// Package option provides composable gorm query options for repository
// list methods.
package option

import (
	"time"

	"github.com/smallbiznis/billora/pkg/db/pagination"
	"gorm.io/gorm"
)

type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type queryFn func(*gorm.DB) *gorm.DB

func (f queryFn) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// Operator names the supported comparison operators for conditions.
type Operator string

const (
	GTE Operator = ">="
	LTE Operator = "<="
)

// Condition applies a single field comparison.
type Condition struct {
	Field    string
	Operator Operator
	Value    any
}

func ApplyOperator(cond Condition) QueryOption {
	return queryFn(func(db *gorm.DB) *gorm.DB {
		return db.Where(cond.Field+" "+string(cond.Operator)+" ?", cond.Value)
	})
}

// ApplyPagination decodes the cursor token and limits the result to one
// row beyond the page size so callers can detect a further page.
func ApplyPagination(page pagination.Pagination) QueryOption {
	return queryFn(func(db *gorm.DB) *gorm.DB {
		size := page.PageSize
		if size <= 0 {
			size = 10
		}

		if page.PageToken != "" {
			cursor, err := pagination.DecodeCursor(page.PageToken)
			if err == nil && cursor != nil && cursor.CreatedAt != "" {
				if ts, terr := time.Parse(time.RFC3339, cursor.CreatedAt); terr == nil {
					db = db.Where("(created_at < ?) OR (created_at = ? AND id < ?)", ts, ts, cursor.ID)
				}
			}
		}

		return db.Limit(size + 1)
	})
}
