package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, profile *Profile) error
	Update(ctx context.Context, db *gorm.DB, profile *Profile) error
	Find(ctx context.Context, db *gorm.DB) (*Profile, error)
}
