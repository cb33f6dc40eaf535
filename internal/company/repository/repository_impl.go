package repository

import (
	"context"

	"github.com/smallbiznis/billora/internal/company/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, profile *domain.Profile) error {
	return db.WithContext(ctx).Save(profile).Error
}

func (r *repo) Find(ctx context.Context, db *gorm.DB) (*domain.Profile, error) {
	var profile domain.Profile
	err := db.WithContext(ctx).
		Order("created_at asc").
		Limit(1).
		Find(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == 0 {
		return nil, nil
	}
	return &profile, nil
}
